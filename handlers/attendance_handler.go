package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/patiponrmutl/BECollege/attendance"
	"github.com/patiponrmutl/BECollege/database"
	"github.com/patiponrmutl/BECollege/models"
)

type AttendanceHandler struct{}

func NewAttendanceHandler() *AttendanceHandler { return &AttendanceHandler{} }

/* ====================== DTOs ====================== */

// ฟิลด์ session key ที่ทุก endpoint เขียนใช้ร่วมกัน
type sessionKeyPayload struct {
	SubjectID   *uint  `json:"subject_id"`
	TeacherID   uint   `json:"teacher_id"` // admin ส่งแทนครูได้; ครูปกติใช้ค่าจาก token
	Date        string `json:"date"`
	SessionType string `json:"session_type"`
	Period      *int   `json:"period"`
}

// แปลงเป็น key ของ store + ตรวจความครบถ้วน
func (p *sessionKeyPayload) toKey(c echo.Context) (attendance.SessionKey, string) {
	p.Date = strings.TrimSpace(p.Date)
	p.SessionType = strings.TrimSpace(p.SessionType)

	if !validDate(p.Date) {
		return attendance.SessionKey{}, "INVALID_DATE"
	}
	if p.SessionType != models.SessionTheory && p.SessionType != models.SessionPractical {
		return attendance.SessionKey{}, "INVALID_SESSION_TYPE"
	}

	teacherID := p.TeacherID
	if id, ok := currentTeacherID(c); ok {
		teacherID = id // ครูเช็กชื่อในนามตัวเองเสมอ
	}
	if teacherID == 0 {
		return attendance.SessionKey{}, "MISSING_TEACHER"
	}

	return attendance.SessionKey{
		SubjectID:   p.SubjectID,
		TeacherID:   teacherID,
		Date:        p.Date,
		SessionType: p.SessionType,
		Period:      p.Period,
	}, ""
}

type markEntry struct {
	StudentID uint   `json:"student_id"`
	Status    string `json:"status"`
	Remarks   string `json:"remarks"`
}

type markReq struct {
	sessionKeyPayload
	Marks []markEntry `json:"marks"`
}

type markAllReq struct {
	sessionKeyPayload
	StudentIDs []uint `json:"student_ids"`
	Status     string `json:"status"`
	Remarks    string `json:"remarks"`
}

/* ====================== Handlers ====================== */

// POST /teacher/attendance/mark — เช็กชื่อทั้ง session (แทนที่ของเดิมทั้งก้อน)
func (h *AttendanceHandler) Mark(c echo.Context) error {
	var req markReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if len(req.Marks) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	key, errCode := req.toKey(c)
	if errCode != "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": errCode})
	}

	marks := make([]attendance.SessionMark, 0, len(req.Marks))
	for _, m := range req.Marks {
		if m.StudentID == 0 {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
		}
		status, err := models.ParseAttendanceStatus(strings.TrimSpace(m.Status))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_STATUS"})
		}
		marks = append(marks, attendance.SessionMark{
			StudentID: m.StudentID,
			Status:    status,
			Remarks:   strings.TrimSpace(m.Remarks),
		})
	}

	store := attendance.NewStore(database.DB)
	if err := store.UpsertSession(key, marks); err != nil {
		if errors.Is(err, attendance.ErrLocked) {
			return c.JSON(http.StatusConflict, map[string]any{"error": "SESSION_LOCKED"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true, "marked": len(marks)})
}

// POST /teacher/attendance/mark-all — ทั้งกลุ่มสถานะเดียว (เช่น วันกีฬาสี = OD)
func (h *AttendanceHandler) MarkAll(c echo.Context) error {
	var req markAllReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if len(req.StudentIDs) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	key, errCode := req.toKey(c)
	if errCode != "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": errCode})
	}
	status, err := models.ParseAttendanceStatus(strings.TrimSpace(req.Status))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_STATUS"})
	}

	store := attendance.NewStore(database.DB)
	if err := store.MarkAll(req.StudentIDs, key, status, strings.TrimSpace(req.Remarks)); err != nil {
		if errors.Is(err, attendance.ErrLocked) {
			return c.JSON(http.StatusConflict, map[string]any{"error": "SESSION_LOCKED"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true, "marked": len(req.StudentIDs)})
}

// GET /teacher/attendance?from=&to=&studentId=&subjectId=&statuses=Present,Absent&division=
func (h *AttendanceHandler) List(c echo.Context) error {
	q := attendance.Query{
		From:     strings.TrimSpace(c.QueryParam("from")),
		To:       strings.TrimSpace(c.QueryParam("to")),
		Division: strings.ToUpper(strings.TrimSpace(c.QueryParam("division"))),
	}
	if sid := strings.TrimSpace(c.QueryParam("studentId")); sid != "" {
		q.StudentID = uint(atoiOr(sid, 0))
	}
	if subj := strings.TrimSpace(c.QueryParam("subjectId")); subj != "" {
		id := uint(atoiOr(subj, 0))
		q.SubjectID = &id
	}
	for _, s := range splitCSV(c.QueryParam("statuses")) {
		status, err := models.ParseAttendanceStatus(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_STATUS"})
		}
		q.Statuses = append(q.Statuses, status)
	}

	rows, err := attendance.NewStore(database.DB).Filter(q)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /student/attendance?from=&to=&subjectId= — ดูของตัวเองเท่านั้น
func (h *AttendanceHandler) ListMine(c echo.Context) error {
	studentID, ok := currentStudentID(c)
	if !ok {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "NO_STUDENT_RECORD"})
	}

	q := attendance.Query{
		StudentID: studentID,
		From:      strings.TrimSpace(c.QueryParam("from")),
		To:        strings.TrimSpace(c.QueryParam("to")),
	}
	if subj := strings.TrimSpace(c.QueryParam("subjectId")); subj != "" {
		id := uint(atoiOr(subj, 0))
		q.SubjectID = &id
	}

	rows, err := attendance.NewStore(database.DB).Filter(q)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /admin/attendance/lock — ปิดการแก้ session (นโยบายเวลาอยู่ฝั่งผู้เรียก)
func (h *AttendanceHandler) Lock(c echo.Context) error {
	var req sessionKeyPayload
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	key, errCode := req.toKey(c)
	if errCode != "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": errCode})
	}

	n, err := attendance.NewStore(database.DB).LockSession(key)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"locked": n})
}
