package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/patiponrmutl/BECollege/attendance"
	"github.com/patiponrmutl/BECollege/database"
	"github.com/patiponrmutl/BECollege/models"
)

type ReportHandler struct{}

func NewReportHandler() *ReportHandler { return &ReportHandler{} }

func fmtPct(p float64) string { return strconv.FormatFloat(p, 'f', 2, 64) }

// เปิด response เป็น CSV attachment แล้วคืน writer
func csvResponse(c echo.Context, filename string) *csv.Writer {
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Response().WriteHeader(http.StatusOK)
	return csv.NewWriter(c.Response())
}

/* ====================== Subject report ====================== */

// GET /teacher/reports/subject?subject_id=&from=&to=&format=csv
// คอลัมน์: roll_number, name, total, present, percentage
func (h *ReportHandler) Subject(c echo.Context) error {
	subjectID := uint(atoiOr(strings.TrimSpace(c.QueryParam("subject_id")), 0))
	if subjectID == 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_SUBJECT"})
	}
	from := strings.TrimSpace(c.QueryParam("from"))
	to := strings.TrimSpace(c.QueryParam("to"))
	if (from != "" && !validDate(from)) || (to != "" && !validDate(to)) {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_DATE"})
	}

	rows, err := attendance.NewScanner(database.DB).SubjectReport(subjectID, from, to)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	if c.QueryParam("format") != "csv" {
		return c.JSON(http.StatusOK, rows)
	}

	w := csvResponse(c, fmt.Sprintf("subject_report_%d.csv", subjectID))
	_ = w.Write([]string{"roll_number", "name", "total", "present", "percentage"})
	for _, r := range rows {
		_ = w.Write([]string{
			r.RollNumber, r.Name,
			strconv.Itoa(r.Total), strconv.Itoa(r.Present), fmtPct(r.Percentage),
		})
	}
	w.Flush()
	return w.Error()
}

/* ====================== Defaulters ====================== */

// GET /teacher/reports/defaulters?threshold=75&format=csv
// คอลัมน์: roll_number, name, batch, division, percentage — เรียงเปอร์เซ็นต์น้อยก่อน
func (h *ReportHandler) Defaulters(c echo.Context) error {
	threshold := floatOr(strings.TrimSpace(c.QueryParam("threshold")), 75)
	if threshold < 0 || threshold > 100 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_THRESHOLD"})
	}

	rows, err := attendance.NewScanner(database.DB).Scan(threshold)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	if c.QueryParam("format") != "csv" {
		return c.JSON(http.StatusOK, map[string]any{"threshold": threshold, "defaulters": rows})
	}

	w := csvResponse(c, "defaulters.csv")
	_ = w.Write([]string{"roll_number", "name", "batch", "division", "percentage"})
	for _, r := range rows {
		_ = w.Write([]string{r.RollNumber, r.Name, r.Batch, r.Division, fmtPct(r.Percentage)})
	}
	w.Flush()
	return w.Error()
}

/* ====================== Monthly grid ====================== */

// ตัวย่อของสถานะในตาราง grid/CSV
var statusCell = map[models.AttendanceStatus]string{
	models.StatusPresent:   "P",
	models.StatusAbsent:    "A",
	models.StatusLate:      "L",
	models.StatusEarlyExit: "EE",
	models.StatusOD:        "OD",
	models.StatusML:        "ML",
	models.StatusEL:        "EL",
	models.StatusHoliday:   "HLY",
}

type monthlyRow struct {
	StudentID  uint              `json:"student_id"`
	RollNumber string            `json:"roll_number"`
	Name       string            `json:"name"`
	Days       map[string]string `json:"days"` // "01".."31" → cell (ว่าง = ไม่มีเรคคอร์ด)
	Present    int               `json:"present"`
	Absent     int               `json:"absent"`
}

// GET /teacher/reports/monthly?month=YYYY-MM&format=csv
// grid รายวันทั้งเดือนของนักศึกษา active ทุกคน; วันหยุดทับสถานะเป็น HLY
func (h *ReportHandler) Monthly(c echo.Context) error {
	month := strings.TrimSpace(c.QueryParam("month"))
	mt, err := time.Parse("2006-01", month)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_MONTH"})
	}
	daysInMonth := time.Date(mt.Year(), mt.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()

	var students []models.Student
	if err := database.DB.Where("is_active = ?", true).
		Order("roll_number ASC").Find(&students).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	// โหลดทั้งเดือนครั้งเดียว แล้วค่อยกระจายเข้า grid ใน memory (เลี่ยง query รายคน)
	var records []models.Attendance
	if err := database.DB.Where("date LIKE ?", month+"-%").Find(&records).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	byStudentDay := map[uint]map[string]models.AttendanceStatus{}
	for _, r := range records {
		if byStudentDay[r.StudentID] == nil {
			byStudentDay[r.StudentID] = map[string]models.AttendanceStatus{}
		}
		// วันเดียวกันหลายคาบ: ถ้าคาบไหนมาเรียนถือว่าวันนั้นมา
		prev, seen := byStudentDay[r.StudentID][r.Date]
		if !seen || (!attendance.CountsPresent(prev) && attendance.CountsPresent(r.Status)) {
			byStudentDay[r.StudentID][r.Date] = r.Status
		}
	}

	var holidayRows []models.Holiday
	if err := database.DB.Where("date LIKE ?", month+"-%").Find(&holidayRows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	holidays := map[string]bool{}
	for _, hd := range holidayRows {
		holidays[hd.Date] = true
	}

	rows := make([]monthlyRow, 0, len(students))
	for _, st := range students {
		row := monthlyRow{
			StudentID:  st.ID,
			RollNumber: st.RollNumber,
			Name:       st.FullName(),
			Days:       map[string]string{},
		}
		for day := 1; day <= daysInMonth; day++ {
			date := fmt.Sprintf("%s-%02d", month, day)
			dd := fmt.Sprintf("%02d", day)
			if holidays[date] {
				row.Days[dd] = statusCell[models.StatusHoliday]
				continue
			}
			status, ok := byStudentDay[st.ID][date]
			if !ok {
				row.Days[dd] = ""
				continue
			}
			row.Days[dd] = statusCell[status]
			if attendance.CountsPresent(status) {
				row.Present++
			} else if status == models.StatusAbsent {
				row.Absent++
			}
		}
		rows = append(rows, row)
	}

	if c.QueryParam("format") != "csv" {
		return c.JSON(http.StatusOK, map[string]any{
			"month":    month,
			"days":     daysInMonth,
			"holidays": holidayRows,
			"rows":     rows,
		})
	}

	w := csvResponse(c, fmt.Sprintf("attendance_report_%s.csv", month))
	header := []string{"roll_number", "name"}
	for day := 1; day <= daysInMonth; day++ {
		header = append(header, fmt.Sprintf("%02d", day))
	}
	header = append(header, "present", "absent")
	_ = w.Write(header)
	for _, r := range rows {
		rec := []string{r.RollNumber, r.Name}
		for day := 1; day <= daysInMonth; day++ {
			rec = append(rec, r.Days[fmt.Sprintf("%02d", day)])
		}
		rec = append(rec, strconv.Itoa(r.Present), strconv.Itoa(r.Absent))
		_ = w.Write(rec)
	}
	w.Flush()
	return w.Error()
}

/* ====================== Student summary ====================== */

type subjectBreakdown struct {
	SubjectID   *uint             `json:"subject_id"`
	SubjectName string            `json:"subject_name"`
	Result      attendance.Result `json:"result"`
}

// GET /student/summary?from=&to= — ภาพรวมของตัวเอง + แยกรายวิชา
func (h *ReportHandler) MySummary(c echo.Context) error {
	studentID, ok := currentStudentID(c)
	if !ok {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "NO_STUDENT_RECORD"})
	}

	q := attendance.Query{
		StudentID: studentID,
		From:      strings.TrimSpace(c.QueryParam("from")),
		To:        strings.TrimSpace(c.QueryParam("to")),
	}
	records, err := attendance.NewStore(database.DB).Filter(q)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	// แยกกลุ่มตามวิชาใน memory แล้วคำนวณด้วยตัวคิดเปอร์เซ็นต์ตัวเดียวกับรายงานครู
	bySubject := map[uint][]models.Attendance{}
	var general []models.Attendance // เรคคอร์ดที่ไม่ผูกวิชา
	for _, r := range records {
		if r.SubjectID == nil {
			general = append(general, r)
			continue
		}
		bySubject[*r.SubjectID] = append(bySubject[*r.SubjectID], r)
	}

	subjectIDs := make([]uint, 0, len(bySubject))
	for id := range bySubject {
		subjectIDs = append(subjectIDs, id)
	}
	names := map[uint]string{}
	if len(subjectIDs) > 0 {
		var subjects []models.Subject
		if err := database.DB.Where("id IN ?", subjectIDs).Find(&subjects).Error; err == nil {
			for _, s := range subjects {
				names[s.ID] = s.Name
			}
		}
	}

	sort.Slice(subjectIDs, func(i, j int) bool { return subjectIDs[i] < subjectIDs[j] })
	breakdown := make([]subjectBreakdown, 0, len(bySubject)+1)
	for _, id := range subjectIDs {
		sid := id
		breakdown = append(breakdown, subjectBreakdown{
			SubjectID:   &sid,
			SubjectName: names[id],
			Result:      attendance.Compute(bySubject[id]),
		})
	}
	if len(general) > 0 {
		breakdown = append(breakdown, subjectBreakdown{
			SubjectName: "General",
			Result:      attendance.Compute(general),
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"overall":  attendance.Compute(records),
		"subjects": breakdown,
	})
}
