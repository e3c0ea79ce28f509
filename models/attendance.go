package models

import (
	"fmt"
	"time"
)

// AttendanceStatus เป็น enum ปิด — กันพิมพ์ผิดแล้วสถานะหลุดจากชุด "มาเรียน"
type AttendanceStatus string

const (
	StatusPresent   AttendanceStatus = "Present"
	StatusAbsent    AttendanceStatus = "Absent"
	StatusLate      AttendanceStatus = "Late"
	StatusEarlyExit AttendanceStatus = "EarlyExit"
	StatusOD        AttendanceStatus = "OD" // On Duty — ไปกิจกรรมในนามวิทยาลัย นับเป็นมาเรียน
	StatusML        AttendanceStatus = "ML" // Medical Leave
	StatusEL        AttendanceStatus = "EL" // Earned Leave
	StatusHoliday   AttendanceStatus = "Holiday"
)

var validStatuses = map[AttendanceStatus]bool{
	StatusPresent: true, StatusAbsent: true, StatusLate: true, StatusEarlyExit: true,
	StatusOD: true, StatusML: true, StatusEL: true, StatusHoliday: true,
}

func (s AttendanceStatus) Valid() bool { return validStatuses[s] }

// ParseAttendanceStatus validates a raw status string from a request body.
func ParseAttendanceStatus(raw string) (AttendanceStatus, error) {
	s := AttendanceStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown attendance status %q", raw)
	}
	return s, nil
}

// บันทึกการเข้าเรียนรายคาบของนักศึกษา
// natural key: (student_id, subject_id, date, session_type, period) — มีได้แถวเดียว
type Attendance struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	StudentID   uint             `json:"student_id" gorm:"not null;uniqueIndex:idx_attendance_key"`
	SubjectID   *uint            `json:"subject_id" gorm:"uniqueIndex:idx_attendance_key"` // nil = กิจกรรมรวม ไม่ผูกรายวิชา
	TeacherID   uint             `json:"teacher_id" gorm:"index;not null"`
	Date        string           `json:"date" gorm:"size:10;not null;uniqueIndex:idx_attendance_key"` // YYYY-MM-DD
	SessionType string           `json:"session_type" gorm:"size:20;not null;uniqueIndex:idx_attendance_key"`
	Period      *int             `json:"period" gorm:"uniqueIndex:idx_attendance_key"`
	Status      AttendanceStatus `json:"status" gorm:"size:20;not null"`
	Remarks     string           `json:"remarks" gorm:"type:text"`
	Locked      bool             `json:"locked" gorm:"not null;default:false"` // ล็อกแล้วห้ามแก้ทุกกรณี

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
