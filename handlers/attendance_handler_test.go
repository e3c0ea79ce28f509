package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patiponrmutl/BECollege/models"
)

func TestMarkWritesWholeSession(t *testing.T) {
	db := setupDB(t)
	a := seedStudentRow(t, db, "CS001")
	b := seedStudentRow(t, db, "CS002")

	body := `{
		"subject_id": 1, "date": "2026-03-02", "session_type": "theory", "period": 1,
		"marks": [
			{"student_id": ` + itoa(a.ID) + `, "status": "Present"},
			{"student_id": ` + itoa(b.ID) + `, "status": "Absent", "remarks": "no show"}
		]
	}`
	c, rec := newJSONCtx(t, http.MethodPost, "/teacher/attendance/mark", body)
	asTeacher(c, 10, 7)

	require.NoError(t, NewAttendanceHandler().Mark(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, decodeBody(t, rec)["marked"])

	var rows []models.Attendance
	require.NoError(t, db.Order("student_id ASC").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, models.StatusPresent, rows[0].Status)
	assert.Equal(t, models.StatusAbsent, rows[1].Status)
	assert.Equal(t, "no show", rows[1].Remarks)
	// ครูถูกอ่านจาก token ไม่ใช่ payload
	assert.EqualValues(t, 7, rows[0].TeacherID)
}

func TestMarkReplacesPreviousSession(t *testing.T) {
	db := setupDB(t)
	a := seedStudentRow(t, db, "CS001")

	mark := func(status string) int {
		body := `{"subject_id": 1, "date": "2026-03-02", "session_type": "theory", "period": 1,
			"marks": [{"student_id": ` + itoa(a.ID) + `, "status": "` + status + `"}]}`
		c, rec := newJSONCtx(t, http.MethodPost, "/teacher/attendance/mark", body)
		asTeacher(c, 10, 7)
		require.NoError(t, NewAttendanceHandler().Mark(c))
		return rec.Code
	}

	require.Equal(t, http.StatusOK, mark("Absent"))
	require.Equal(t, http.StatusOK, mark("Late"))

	// แก้ซ้ำต้องเหลือแถวเดียวด้วยสถานะล่าสุด
	var rows []models.Attendance
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, models.StatusLate, rows[0].Status)
}

func TestMarkLockedSessionConflict(t *testing.T) {
	db := setupDB(t)
	a := seedStudentRow(t, db, "CS001")

	subj := uint(1)
	period := 1
	require.NoError(t, db.Create(&models.Attendance{
		StudentID: a.ID, SubjectID: &subj, TeacherID: 7,
		Date: "2026-03-02", SessionType: models.SessionTheory, Period: &period,
		Status: models.StatusPresent, Locked: true,
	}).Error)

	body := `{"subject_id": 1, "date": "2026-03-02", "session_type": "theory", "period": 1,
		"marks": [{"student_id": ` + itoa(a.ID) + `, "status": "Absent"}]}`
	c, rec := newJSONCtx(t, http.MethodPost, "/teacher/attendance/mark", body)
	asTeacher(c, 10, 7)

	require.NoError(t, NewAttendanceHandler().Mark(c))
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "SESSION_LOCKED", decodeBody(t, rec)["error"])

	// ห้ามมี mutation ใดๆ หลุดออกมา
	var row models.Attendance
	require.NoError(t, db.First(&row).Error)
	assert.Equal(t, models.StatusPresent, row.Status)
}

func TestMarkRejectsUnknownStatus(t *testing.T) {
	setupDB(t)

	body := `{"subject_id": 1, "date": "2026-03-02", "session_type": "theory", "period": 1,
		"marks": [{"student_id": 1, "status": "Sleeping"}]}`
	c, rec := newJSONCtx(t, http.MethodPost, "/teacher/attendance/mark", body)
	asTeacher(c, 10, 7)

	require.NoError(t, NewAttendanceHandler().Mark(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_STATUS", decodeBody(t, rec)["error"])
}

func TestMarkRejectsBadDate(t *testing.T) {
	setupDB(t)

	body := `{"subject_id": 1, "date": "02/03/2026", "session_type": "theory", "period": 1,
		"marks": [{"student_id": 1, "status": "Present"}]}`
	c, rec := newJSONCtx(t, http.MethodPost, "/teacher/attendance/mark", body)
	asTeacher(c, 10, 7)

	require.NoError(t, NewAttendanceHandler().Mark(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_DATE", decodeBody(t, rec)["error"])
}

func TestMarkAllUniform(t *testing.T) {
	db := setupDB(t)
	a := seedStudentRow(t, db, "CS001")
	b := seedStudentRow(t, db, "CS002")

	body := `{"subject_id": 2, "date": "2026-03-05", "session_type": "practical", "period": 3,
		"student_ids": [` + itoa(a.ID) + `,` + itoa(b.ID) + `], "status": "OD", "remarks": "sports day"}`
	c, rec := newJSONCtx(t, http.MethodPost, "/teacher/attendance/mark-all", body)
	asTeacher(c, 10, 7)

	require.NoError(t, NewAttendanceHandler().MarkAll(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []models.Attendance
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, models.StatusOD, r.Status)
		assert.Equal(t, "sports day", r.Remarks)
	}
}

func TestListMineScopedToStudent(t *testing.T) {
	db := setupDB(t)
	a := seedStudentRow(t, db, "CS001")
	b := seedStudentRow(t, db, "CS002")

	subj := uint(1)
	p1, p2 := 1, 2
	require.NoError(t, db.Create(&models.Attendance{
		StudentID: a.ID, SubjectID: &subj, TeacherID: 7,
		Date: "2026-03-02", SessionType: models.SessionTheory, Period: &p1,
		Status: models.StatusPresent,
	}).Error)
	require.NoError(t, db.Create(&models.Attendance{
		StudentID: b.ID, SubjectID: &subj, TeacherID: 7,
		Date: "2026-03-02", SessionType: models.SessionTheory, Period: &p2,
		Status: models.StatusAbsent,
	}).Error)

	c, rec := newJSONCtx(t, http.MethodGet, "/student/attendance", "")
	asStudent(c, 20, a.ID)

	require.NoError(t, NewAttendanceHandler().ListMine(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []models.Attendance
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, a.ID, rows[0].StudentID)
}

func TestLockSession(t *testing.T) {
	db := setupDB(t)
	a := seedStudentRow(t, db, "CS001")

	subj := uint(1)
	period := 1
	require.NoError(t, db.Create(&models.Attendance{
		StudentID: a.ID, SubjectID: &subj, TeacherID: 7,
		Date: "2026-03-02", SessionType: models.SessionTheory, Period: &period,
		Status: models.StatusPresent,
	}).Error)

	body := `{"subject_id": 1, "teacher_id": 7, "date": "2026-03-02", "session_type": "theory", "period": 1}`
	c, rec := newJSONCtx(t, http.MethodPost, "/admin/attendance/lock", body)
	c.Set("user_id", uint(1))
	c.Set("role", "admin")

	require.NoError(t, NewAttendanceHandler().Lock(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decodeBody(t, rec)["locked"])

	var row models.Attendance
	require.NoError(t, db.First(&row).Error)
	assert.True(t, row.Locked)
}
