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

type LeaveRequestHandler struct{}

func NewLeaveRequestHandler() *LeaveRequestHandler { return &LeaveRequestHandler{} }

type leaveCreateReq struct {
	Type     string `json:"type"`
	Reason   string `json:"reason"`
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
}

// POST /student/leaves — นักศึกษายื่นใบลาเอง
func (h *LeaveRequestHandler) Create(c echo.Context) error {
	studentID, ok := currentStudentID(c)
	if !ok {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "NO_STUDENT_RECORD"})
	}

	var req leaveCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	req.Type = strings.TrimSpace(req.Type)
	req.FromDate = strings.TrimSpace(req.FromDate)
	req.ToDate = strings.TrimSpace(req.ToDate)
	if req.Type == "" || req.FromDate == "" || req.ToDate == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}
	// ตรวจช่วงวันที่ตั้งแต่ตอนสร้าง — Apply จะถือว่า valid แล้ว
	if err := attendance.ValidateRange(req.FromDate, req.ToDate); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_RANGE"})
	}

	row := models.LeaveRequest{
		StudentID: studentID,
		Type:      req.Type,
		Reason:    strings.TrimSpace(req.Reason),
		FromDate:  req.FromDate,
		ToDate:    req.ToDate,
		Status:    models.LeavePending,
	}
	if err := database.DB.Create(&row).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, row)
}

// GET /student/leaves — ใบลาของตัวเอง
func (h *LeaveRequestHandler) ListMine(c echo.Context) error {
	studentID, ok := currentStudentID(c)
	if !ok {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "NO_STUDENT_RECORD"})
	}
	var rows []models.LeaveRequest
	if err := database.DB.Where("student_id = ?", studentID).
		Order("submitted_at DESC, id DESC").Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /teacher/leave-requests?status=&type=&studentId=&from=&to=&q=&page=&size=
func (h *LeaveRequestHandler) List(c echo.Context) error {
	var rows []models.LeaveRequest

	// filters
	status := strings.TrimSpace(c.QueryParam("status"))
	typ := strings.TrimSpace(c.QueryParam("type"))
	studentID := strings.TrimSpace(c.QueryParam("studentId"))
	from := strings.TrimSpace(c.QueryParam("from"))
	to := strings.TrimSpace(c.QueryParam("to"))
	q := strings.TrimSpace(c.QueryParam("q")) // คีย์เวิร์ดใน reason

	page := atoiOr(c.QueryParam("page"), 1)
	size := atoiOr(c.QueryParam("size"), 10)
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 10
	}

	tx := database.DB.Model(&models.LeaveRequest{})

	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	if typ != "" {
		tx = tx.Where("type = ?", typ)
	}
	if studentID != "" {
		tx = tx.Where("student_id = ?", studentID)
	}
	if from != "" && to != "" {
		// ทับซ้อนช่วง (overlap): (FromDate <= to) AND (ToDate >= from)
		tx = tx.Where("from_date <= ? AND to_date >= ?", to, from)
	}
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(reason) LIKE ?", like)
	}

	// เรียงล่าสุดก่อน
	offset := (page - 1) * size
	if err := tx.Order("submitted_at DESC, id DESC").Offset(offset).Limit(size).Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /teacher/leave-requests/pending-count
func (h *LeaveRequestHandler) PendingCount(c echo.Context) error {
	var n int64
	if err := database.DB.Model(&models.LeaveRequest{}).
		Where("status = ?", models.LeavePending).Count(&n).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"count": n})
}

// POST /teacher/leave-requests/:id/approve
// อนุมัติแล้วเรคคอร์ดเช็กชื่อที่มีอยู่ในช่วงลาจะถูกเขียนทับเป็น OD (ฝั่ง attendance.LeaveEffect)
func (h *LeaveRequestHandler) Approve(c echo.Context) error {
	id := uint(atoiOr(c.Param("id"), 0))
	actorID, _ := currentUserID(c)

	effect := attendance.NewLeaveEffect(database.DB)
	row, err := effect.Apply(id, actorID)
	if err != nil {
		return h.mapLeaveError(c, err)
	}
	return c.JSON(http.StatusOK, row)
}

type rejectReq struct {
	RejectReason string `json:"rejectReason"`
}

// POST /teacher/leave-requests/:id/reject
func (h *LeaveRequestHandler) Reject(c echo.Context) error {
	id := uint(atoiOr(c.Param("id"), 0))
	actorID, _ := currentUserID(c)

	var body rejectReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	reason := strings.TrimSpace(body.RejectReason)
	if reason == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "REJECT_REASON_REQUIRED"})
	}

	effect := attendance.NewLeaveEffect(database.DB)
	row, err := effect.Reject(id, actorID, reason)
	if err != nil {
		return h.mapLeaveError(c, err)
	}
	return c.JSON(http.StatusOK, row)
}

func (h *LeaveRequestHandler) mapLeaveError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, attendance.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	case errors.Is(err, attendance.ErrInvalidState):
		// อนุมัติ/ปฏิเสธซ้ำ — ต้องโดนปัดโดยไม่มี mutation
		return c.JSON(http.StatusConflict, map[string]any{"error": "INVALID_STATE"})
	default:
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
}
