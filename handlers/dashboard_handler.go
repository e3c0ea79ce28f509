package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/patiponrmutl/BECollege/database"
	"github.com/patiponrmutl/BECollege/models"
)

type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler { return &DashboardHandler{} }

// GET /teacher/dashboard/daily?date=YYYY-MM-DD&division=A
// คืน { holiday: {...}, rows: [...] } สำหรับหน้าสรุปรายวัน
func (h *DashboardHandler) Daily(c echo.Context) error {
	date := strings.TrimSpace(c.QueryParam("date"))
	division := strings.ToUpper(strings.TrimSpace(c.QueryParam("division")))

	if date == "" {
		// default: วันนี้ (เขตเวลาของเครื่องรัน)
		date = time.Now().Format("2006-01-02")
	}
	if !validDate(date) {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_DATE"})
	}

	// 1) ตรวจวันหยุด
	holiday := map[string]any{"isHoliday": false, "name": ""}
	var hd models.Holiday
	if err := database.DB.Where("date = ?", date).First(&hd).Error; err == nil {
		holiday["isHoliday"] = true
		holiday["name"] = hd.Name
	}

	// 2) โหลดเรคคอร์ดของวันนั้น (กรอง division ผ่าน join students)
	type row struct {
		ID          uint                    `json:"id"`
		StudentID   uint                    `json:"student_id"`
		RollNumber  string                  `json:"roll_number"`
		StudentName string                  `json:"student_name"`
		SubjectID   *uint                   `json:"subject_id"`
		Period      *int                    `json:"period"`
		SessionType string                  `json:"session_type"`
		Status      models.AttendanceStatus `json:"status"`
		Remarks     string                  `json:"remarks"`
		Locked      bool                    `json:"locked"`
	}

	tx := database.DB.Table("attendances AS a").
		Select("a.id, a.student_id, s.roll_number, "+
			"s.first_name || ' ' || s.last_name AS student_name, "+
			"a.subject_id, a.period, a.session_type, a.status, a.remarks, a.locked").
		Joins("JOIN students s ON s.id = a.student_id").
		Where("a.date = ?", date)
	if division != "" {
		tx = tx.Where("s.division = ?", division)
	}

	var rows []row
	if err := tx.Order("s.roll_number ASC, a.period ASC, a.id ASC").
		Scan(&rows).Error; err != nil && err != gorm.ErrRecordNotFound {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	// 3) ใบลาที่อนุมัติแล้วและคลุมวันนี้ — ให้ FE โชว์ธง "on leave" ข้างชื่อ
	var leaves []models.LeaveRequest
	_ = database.DB.
		Where("status = ?", models.LeaveApproved).
		Where("from_date <= ? AND to_date >= ?", date, date).
		Find(&leaves).Error
	onLeave := map[uint]string{}
	for _, lv := range leaves {
		onLeave[lv.StudentID] = lv.Type
	}

	return c.JSON(http.StatusOK, map[string]any{
		"date":     date,
		"holiday":  holiday,
		"rows":     rows,
		"on_leave": onLeave,
	})
}
