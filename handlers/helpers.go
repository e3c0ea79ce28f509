package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// แปลง string -> int; ถ้าแปลงไม่ได้ให้คืนค่าเริ่มต้น
func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func floatOr(s string, def float64) float64 {
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}

// "a, b ,c" → ["a","b","c"] (ตัดช่องว่าง/ค่าว่างทิ้ง)
func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

/* ---- identity จาก JWT middleware (RequireAuth แนบไว้ใน context) ---- */

func currentUserID(c echo.Context) (uint, bool) {
	v, ok := c.Get("user_id").(uint)
	return v, ok
}

func currentTeacherID(c echo.Context) (uint, bool) {
	v, ok := c.Get("teacher_id").(uint)
	return v, ok
}

func currentStudentID(c echo.Context) (uint, bool) {
	v, ok := c.Get("student_id").(uint)
	return v, ok
}

func currentRole(c echo.Context) string {
	role, _ := c.Get("role").(string)
	return role
}
