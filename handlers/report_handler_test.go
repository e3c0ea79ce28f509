package handlers

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/patiponrmutl/BECollege/models"
)

func seedAttendanceRow(t *testing.T, db *gorm.DB, studentID uint, date string, period int, status models.AttendanceStatus) {
	t.Helper()
	subj := uint(1)
	require.NoError(t, db.Create(&models.Attendance{
		StudentID: studentID, SubjectID: &subj, TeacherID: 7,
		Date: date, SessionType: models.SessionTheory, Period: &period,
		Status: status,
	}).Error)
}

func TestDefaultersReportJSON(t *testing.T) {
	db := setupDB(t)
	low := seedStudentRow(t, db, "CS001")
	high := seedStudentRow(t, db, "CS002")

	// low: 1/2 = 50%, high: 2/2 = 100%
	seedAttendanceRow(t, db, low.ID, "2026-03-02", 1, models.StatusPresent)
	seedAttendanceRow(t, db, low.ID, "2026-03-03", 1, models.StatusAbsent)
	seedAttendanceRow(t, db, high.ID, "2026-03-02", 2, models.StatusPresent)
	seedAttendanceRow(t, db, high.ID, "2026-03-03", 2, models.StatusLate)

	c, rec := newJSONCtx(t, http.MethodGet, "/teacher/reports/defaulters?threshold=75", "")
	asTeacher(c, 10, 7)

	require.NoError(t, NewReportHandler().Defaulters(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.EqualValues(t, 75, body["threshold"])
	defaulters := body["defaulters"].([]any)
	require.Len(t, defaulters, 1)
	first := defaulters[0].(map[string]any)
	assert.Equal(t, "CS001", first["roll_number"])
	assert.EqualValues(t, 50, first["percentage"])
}

func TestDefaultersReportCSV(t *testing.T) {
	db := setupDB(t)
	low := seedStudentRow(t, db, "CS001")
	seedAttendanceRow(t, db, low.ID, "2026-03-02", 1, models.StatusAbsent)

	c, rec := newJSONCtx(t, http.MethodGet, "/teacher/reports/defaulters?threshold=75&format=csv", "")
	asTeacher(c, 10, 7)

	require.NoError(t, NewReportHandler().Defaulters(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/csv")
	assert.Contains(t, rec.Body.String(), "roll_number,name,batch,division,percentage")
	assert.Contains(t, rec.Body.String(), "CS001")
}

func TestDefaultersRejectsBadThreshold(t *testing.T) {
	setupDB(t)

	c, rec := newJSONCtx(t, http.MethodGet, "/teacher/reports/defaulters?threshold=150", "")
	asTeacher(c, 10, 7)

	require.NoError(t, NewReportHandler().Defaulters(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_THRESHOLD", decodeBody(t, rec)["error"])
}

func TestSubjectReportRequiresSubject(t *testing.T) {
	setupDB(t)

	c, rec := newJSONCtx(t, http.MethodGet, "/teacher/reports/subject", "")
	asTeacher(c, 10, 7)

	require.NoError(t, NewReportHandler().Subject(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "MISSING_SUBJECT", decodeBody(t, rec)["error"])
}

func TestMySummaryBreakdown(t *testing.T) {
	db := setupDB(t)
	me := seedStudentRow(t, db, "CS001")

	// วิชา 1: 2/3 = 66.67
	seedAttendanceRow(t, db, me.ID, "2026-03-02", 1, models.StatusPresent)
	seedAttendanceRow(t, db, me.ID, "2026-03-03", 1, models.StatusOD)
	seedAttendanceRow(t, db, me.ID, "2026-03-04", 1, models.StatusAbsent)

	c, rec := newJSONCtx(t, http.MethodGet, "/student/summary", "")
	asStudent(c, 20, me.ID)

	require.NoError(t, NewReportHandler().MySummary(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	overall := body["overall"].(map[string]any)
	assert.EqualValues(t, 3, overall["total"])
	assert.EqualValues(t, 2, overall["present"])
	assert.EqualValues(t, 66.67, overall["percentage"])

	subjects := body["subjects"].([]any)
	require.Len(t, subjects, 1)
}

func TestMonthlyReportGrid(t *testing.T) {
	db := setupDB(t)
	me := seedStudentRow(t, db, "CS001")
	seedAttendanceRow(t, db, me.ID, "2026-03-02", 1, models.StatusPresent)
	require.NoError(t, db.Create(&models.Holiday{Date: "2026-03-04", Name: "College Day"}).Error)

	c, rec := newJSONCtx(t, http.MethodGet, "/teacher/reports/monthly?month=2026-03", "")
	asTeacher(c, 10, 7)

	require.NoError(t, NewReportHandler().Monthly(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.EqualValues(t, 31, body["days"])
	rows := body["rows"].([]any)
	require.Len(t, rows, 1)
	days := rows[0].(map[string]any)["days"].(map[string]any)
	assert.Equal(t, "P", days["02"])
	assert.Equal(t, "HLY", days["04"])
	assert.Equal(t, "", days["05"])
	assert.EqualValues(t, 1, rows[0].(map[string]any)["present"])
}
