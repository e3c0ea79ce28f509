package middlewares

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// จำกัดบทบาทที่อนุญาต เช่น RequireRole("admin") หรือ RequireRole("teacher","admin")
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := map[string]struct{}{}
	for _, r := range roles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roleAny := c.Get("role")
			role, _ := roleAny.(string)
			if _, ok := allowed[strings.ToLower(role)]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
			}
			return next(c)
		}
	}
}

// RequireStudentRecord: เส้นทาง /student ต้องมี student_id ใน token
// (บัญชี student ที่ยังไม่ถูกผูกกับเรคคอร์ดนักศึกษาใช้งานพอร์ทัลไม่ได้)
func RequireStudentRecord() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := c.Get("student_id").(uint); !ok {
				return echo.NewHTTPError(http.StatusForbidden, map[string]any{"error": "NO_STUDENT_RECORD"})
			}
			return next(c)
		}
	}
}
