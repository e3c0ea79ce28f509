package routes

import (
	"os"

	"github.com/labstack/echo/v4"

	"github.com/patiponrmutl/BECollege/handlers"
	"github.com/patiponrmutl/BECollege/middlewares"
)

// Register wires all HTTP routes.
func Register(e *echo.Echo) {
	// ===== Handlers (shared singletons) =====
	auth := handlers.NewAuthHandler()
	prog := handlers.NewProgramHandler()
	std := handlers.NewStudentHandler()
	tch := handlers.NewTeacherHandler()
	subj := handlers.NewSubjectHandler()
	tt := handlers.NewTimetableHandler()
	att := handlers.NewAttendanceHandler()
	lv := handlers.NewLeaveRequestHandler()
	rep := handlers.NewReportHandler()
	hol := handlers.NewHolidayHandler()
	dash := handlers.NewDashboardHandler()

	// ===== Public =====
	e.GET("/healthz", handlers.Health)
	e.POST("/auth/login", auth.Login)
	e.POST("/auth/teachers/register", auth.TeacherRegister)

	// ===== Protected groups =====
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret"
	}
	authMW := middlewares.RequireAuth(secret)

	// ===== Admin =====
	admin := e.Group("/admin", authMW, middlewares.RequireRole("admin"))

	admin.GET("/teachers/pending", auth.PendingTeachers)
	admin.POST("/teachers/:id/approve", auth.ApproveTeacher)

	admin.GET("/programs", prog.List)
	admin.POST("/programs", prog.Create)
	admin.DELETE("/programs/:id", prog.Delete)

	admin.GET("/teachers", tch.List)
	admin.POST("/teachers", tch.Create)
	admin.PUT("/teachers/:id", tch.Update)
	admin.DELETE("/teachers/:id", tch.Delete)

	admin.GET("/students", std.List)
	admin.GET("/students/:id", std.Get)
	admin.POST("/students", std.Create)
	admin.PUT("/students/:id", std.Update)
	admin.DELETE("/students/:id", std.Delete)
	admin.POST("/students/import", std.Import) // bulk import ทีละ chunk

	admin.GET("/subjects", subj.List)
	admin.POST("/subjects", subj.Create)
	admin.PUT("/subjects/:id", subj.Update)
	admin.DELETE("/subjects/:id", subj.Delete)

	admin.GET("/timetables", tt.List)
	admin.POST("/timetables", tt.Create)
	admin.PUT("/timetables/:id", tt.Update)
	admin.DELETE("/timetables/:id", tt.Delete)

	admin.GET("/holidays", hol.List)
	admin.POST("/holidays", hol.Create)
	admin.DELETE("/holidays/:date", hol.Delete)

	// ล็อก session กันแก้ย้อนหลัง (นโยบายเวลาตัดสินใจฝั่งผู้เรียก/FE)
	admin.POST("/attendance/lock", att.Lock)

	// ===== Teacher =====
	teacher := e.Group("/teacher", authMW, middlewares.RequireRole("teacher", "admin"))

	teacher.GET("/timetable", tt.Mine)
	teacher.GET("/students", std.List)
	teacher.GET("/subjects", subj.List)
	teacher.GET("/holidays", hol.List)

	teacher.GET("/dashboard/daily", dash.Daily)
	teacher.GET("/attendance", att.List)
	teacher.POST("/attendance/mark", att.Mark)
	teacher.POST("/attendance/mark-all", att.MarkAll)

	// Leave requests (ครูตรวจ/อนุมัติ)
	teacher.GET("/leave-requests", lv.List)
	teacher.GET("/leave-requests/pending-count", lv.PendingCount)
	teacher.POST("/leave-requests/:id/approve", lv.Approve)
	teacher.POST("/leave-requests/:id/reject", lv.Reject)

	// Reports
	teacher.GET("/reports/subject", rep.Subject)
	teacher.GET("/reports/defaulters", rep.Defaulters)
	teacher.GET("/reports/monthly", rep.Monthly)

	// ===== Student =====
	student := e.Group("/student", authMW,
		middlewares.RequireRole("student"), middlewares.RequireStudentRecord())

	student.GET("/attendance", att.ListMine)
	student.GET("/summary", rep.MySummary)
	student.GET("/leaves", lv.ListMine)
	student.POST("/leaves", lv.Create)
}
