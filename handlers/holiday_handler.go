package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/patiponrmutl/BECollege/database"
	"github.com/patiponrmutl/BECollege/models"
)

type HolidayHandler struct{}

func NewHolidayHandler() *HolidayHandler { return &HolidayHandler{} }

// GET /holidays?year=YYYY
func (h *HolidayHandler) List(c echo.Context) error {
	tx := database.DB.Model(&models.Holiday{})
	if y := strings.TrimSpace(c.QueryParam("year")); y != "" {
		tx = tx.Where("date LIKE ?", y+"-%")
	}
	var rows []models.Holiday
	if err := tx.Order("date ASC").Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

type holidayPayload struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// POST /admin/holidays
func (h *HolidayHandler) Create(c echo.Context) error {
	var p holidayPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	p.Date = strings.TrimSpace(p.Date)
	if !validDate(p.Date) {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_DATE"})
	}

	row := models.Holiday{Date: p.Date, Name: strings.TrimSpace(p.Name)}
	if err := database.DB.Create(&row).Error; err != nil {
		return c.JSON(http.StatusConflict, map[string]any{"error": "HOLIDAY_EXISTS"})
	}
	return c.JSON(http.StatusCreated, row)
}

// DELETE /admin/holidays/:date
func (h *HolidayHandler) Delete(c echo.Context) error {
	date := c.Param("date")
	res := database.DB.Delete(&models.Holiday{}, "date = ?", date)
	if res.Error != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": res.Error.Error()})
	}
	if res.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	return c.NoContent(http.StatusNoContent)
}
