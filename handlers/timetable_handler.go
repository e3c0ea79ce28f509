package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/patiponrmutl/BECollege/database"
	"github.com/patiponrmutl/BECollege/models"
)

type TimetableHandler struct{}

func NewTimetableHandler() *TimetableHandler { return &TimetableHandler{} }

type timetablePayload struct {
	SubjectID   uint   `json:"subject_id" validate:"required"`
	TeacherID   uint   `json:"teacher_id" validate:"required"`
	DayOfWeek   int    `json:"day_of_week" validate:"min=0,max=6"`
	Period      int    `json:"period" validate:"required,min=1,max=12"`
	SessionType string `json:"session_type" validate:"required,oneof=theory practical"`
	Semester    int    `json:"semester" validate:"required,min=1,max=12"`
	Division    string `json:"division" validate:"required,max=2"`
}

// GET /admin/timetables?semester=&division=&teacher_id=
func (h *TimetableHandler) List(c echo.Context) error {
	tx := database.DB.Model(&models.Timetable{})

	if sem := strings.TrimSpace(c.QueryParam("semester")); sem != "" {
		tx = tx.Where("semester = ?", atoiOr(sem, 0))
	}
	if div := strings.TrimSpace(c.QueryParam("division")); div != "" {
		tx = tx.Where("division = ?", strings.ToUpper(div))
	}
	if tid := strings.TrimSpace(c.QueryParam("teacher_id")); tid != "" {
		tx = tx.Where("teacher_id = ?", atoiOr(tid, 0))
	}

	var rows []models.Timetable
	if err := tx.Order("day_of_week ASC, period ASC").Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /teacher/timetable — เฉพาะคาบของครูที่ login อยู่
func (h *TimetableHandler) Mine(c echo.Context) error {
	teacherID, ok := currentTeacherID(c)
	if !ok {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "NO_TEACHER_RECORD"})
	}
	var rows []models.Timetable
	if err := database.DB.
		Where("teacher_id = ?", teacherID).
		Order("day_of_week ASC, period ASC").Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /admin/timetables
func (h *TimetableHandler) Create(c echo.Context) error {
	var p timetablePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	p.Division = strings.ToUpper(strings.TrimSpace(p.Division))
	if err := c.Validate(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "detail": err.Error()})
	}

	row := models.Timetable{
		SubjectID: p.SubjectID, TeacherID: p.TeacherID,
		DayOfWeek: p.DayOfWeek, Period: p.Period,
		SessionType: p.SessionType, Semester: p.Semester, Division: p.Division,
	}
	if err := database.DB.Create(&row).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, row)
}

// PUT /admin/timetables/:id
func (h *TimetableHandler) Update(c echo.Context) error {
	var existing models.Timetable
	if err := database.DB.First(&existing, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	var p timetablePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	p.Division = strings.ToUpper(strings.TrimSpace(p.Division))
	if err := c.Validate(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "detail": err.Error()})
	}

	existing.SubjectID = p.SubjectID
	existing.TeacherID = p.TeacherID
	existing.DayOfWeek = p.DayOfWeek
	existing.Period = p.Period
	existing.SessionType = p.SessionType
	existing.Semester = p.Semester
	existing.Division = p.Division
	if err := database.DB.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, existing)
}

// DELETE /admin/timetables/:id
func (h *TimetableHandler) Delete(c echo.Context) error {
	if err := database.DB.Delete(&models.Timetable{}, "id = ?", c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
