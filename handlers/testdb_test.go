package handlers

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/patiponrmutl/BECollege/database"
	"github.com/patiponrmutl/BECollege/models"
)

// สลับ database.DB เป็น in-memory sqlite เฉพาะเทสต์นี้ แล้วคืนค่าเดิมตอนจบ
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Program{},
		&models.Student{},
		&models.Teacher{},
		&models.Subject{},
		&models.Timetable{},
		&models.Holiday{},
		&models.Attendance{},
		&models.LeaveRequest{},
		&models.User{},
	))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })
	return db
}

// สร้าง echo.Context พร้อม body JSON และ recorder สำหรับอ่านผลลัพธ์
func newJSONCtx(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func asTeacher(c echo.Context, userID, teacherID uint) {
	c.Set("user_id", userID)
	c.Set("role", "teacher")
	c.Set("teacher_id", teacherID)
}

func asStudent(c echo.Context, userID, studentID uint) {
	c.Set("user_id", userID)
	c.Set("role", "student")
	c.Set("student_id", studentID)
}

func itoa(n uint) string { return strconv.FormatUint(uint64(n), 10) }

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func seedStudentRow(t *testing.T, db *gorm.DB, roll string) models.Student {
	t.Helper()
	st := models.Student{
		RollNumber: roll,
		FirstName:  "Student",
		LastName:   roll,
		ProgramID:  1,
		Semester:   3,
		Batch:      "2024",
		Division:   "A",
		IsActive:   true,
	}
	require.NoError(t, db.Create(&st).Error)
	return st
}
