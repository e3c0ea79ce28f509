package attendance

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/patiponrmutl/BECollege/models"
)

// in-memory sqlite ต่อหนึ่งเทสต์ (ตั้งชื่อ DB ตามเทสต์ กัน connection pool ชนกัน)
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Student{},
		&models.Attendance{},
		&models.LeaveRequest{},
	))
	return db
}

func seedStudent(t *testing.T, db *gorm.DB, roll string, active bool) models.Student {
	t.Helper()
	st := models.Student{
		RollNumber: roll,
		FirstName:  "Student",
		LastName:   roll,
		ProgramID:  1,
		Semester:   3,
		Batch:      "2024",
		Division:   "A",
		IsActive:   active,
	}
	require.NoError(t, db.Create(&st).Error)
	// gorm ข้าม zero value เมื่อมี default tag — เขียน is_active ตรง ๆ อีกรอบ
	require.NoError(t, db.Model(&st).UpdateColumn("is_active", active).Error)
	return st
}

// แถวเช็กชื่อแบบย่อ — วัน+คาบต่างกันพอให้ natural key ไม่ชน
func seedRecord(t *testing.T, db *gorm.DB, studentID uint, date string, period int, status models.AttendanceStatus) models.Attendance {
	t.Helper()
	subj := uint(1)
	rec := models.Attendance{
		StudentID:   studentID,
		SubjectID:   &subj,
		TeacherID:   1,
		Date:        date,
		SessionType: models.SessionTheory,
		Period:      &period,
		Status:      status,
	}
	require.NoError(t, db.Create(&rec).Error)
	return rec
}
