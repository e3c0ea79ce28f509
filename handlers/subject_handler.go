package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/patiponrmutl/BECollege/database"
	"github.com/patiponrmutl/BECollege/models"
)

type SubjectHandler struct{}

func NewSubjectHandler() *SubjectHandler { return &SubjectHandler{} }

type subjectPayload struct {
	Code      string `json:"code" validate:"required,max=20"`
	Name      string `json:"name" validate:"required,max=100"`
	ProgramID uint   `json:"program_id" validate:"required"`
	Semester  int    `json:"semester" validate:"required,min=1,max=12"`
}

func (p *subjectPayload) normalize() {
	p.Code = strings.ToUpper(strings.TrimSpace(p.Code))
	p.Name = strings.TrimSpace(p.Name)
}

// GET /subjects?semester=&program_id=&q=
func (h *SubjectHandler) List(c echo.Context) error {
	tx := database.DB.Model(&models.Subject{})

	if sem := strings.TrimSpace(c.QueryParam("semester")); sem != "" {
		tx = tx.Where("semester = ?", atoiOr(sem, 0))
	}
	if pid := strings.TrimSpace(c.QueryParam("program_id")); pid != "" {
		tx = tx.Where("program_id = ?", atoiOr(pid, 0))
	}
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(code) LIKE ? OR LOWER(name) LIKE ?", like, like)
	}

	var rows []models.Subject
	if err := tx.Order("code ASC").Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /admin/subjects
func (h *SubjectHandler) Create(c echo.Context) error {
	var p subjectPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if err := c.Validate(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "detail": err.Error()})
	}

	row := models.Subject{Code: p.Code, Name: p.Name, ProgramID: p.ProgramID, Semester: p.Semester}
	if err := database.DB.Create(&row).Error; err != nil {
		return c.JSON(http.StatusConflict, map[string]any{"error": "SUBJECT_EXISTS"})
	}
	return c.JSON(http.StatusCreated, row)
}

// PUT /admin/subjects/:id
func (h *SubjectHandler) Update(c echo.Context) error {
	var existing models.Subject
	if err := database.DB.First(&existing, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	var p subjectPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if err := c.Validate(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "detail": err.Error()})
	}

	existing.Code = p.Code
	existing.Name = p.Name
	existing.ProgramID = p.ProgramID
	existing.Semester = p.Semester
	if err := database.DB.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, existing)
}

// DELETE /admin/subjects/:id
func (h *SubjectHandler) Delete(c echo.Context) error {
	if err := database.DB.Delete(&models.Subject{}, "id = ?", c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
