package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/patiponrmutl/BECollege/database"
	"github.com/patiponrmutl/BECollege/models"
)

type ProgramHandler struct{}

func NewProgramHandler() *ProgramHandler { return &ProgramHandler{} }

type programPayload struct {
	Code string `json:"code" validate:"required,max=20"`
	Name string `json:"name" validate:"required,max=100"`
}

// GET /admin/programs
func (h *ProgramHandler) List(c echo.Context) error {
	var rows []models.Program
	if err := database.DB.Order("code ASC").Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /admin/programs
func (h *ProgramHandler) Create(c echo.Context) error {
	var p programPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	p.Code = strings.ToUpper(strings.TrimSpace(p.Code))
	p.Name = strings.TrimSpace(p.Name)
	if err := c.Validate(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "detail": err.Error()})
	}

	row := models.Program{Code: p.Code, Name: p.Name}
	if err := database.DB.Create(&row).Error; err != nil {
		return c.JSON(http.StatusConflict, map[string]any{"error": "PROGRAM_EXISTS"})
	}
	return c.JSON(http.StatusCreated, row)
}

// DELETE /admin/programs/:id
func (h *ProgramHandler) Delete(c echo.Context) error {
	if err := database.DB.Delete(&models.Program{}, "id = ?", c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
