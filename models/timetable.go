package models

import "time"

// session types ที่ใช้ใน timetable และ attendance key
const (
	SessionTheory    = "theory"
	SessionPractical = "practical"
)

// ตารางสอนรายคาบ: วิชา+ครู+วัน+คาบ ต่อกลุ่มเรียน
type Timetable struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SubjectID   uint      `gorm:"index;not null" json:"subject_id"`
	TeacherID   uint      `gorm:"index;not null" json:"teacher_id"`
	DayOfWeek   int       `gorm:"not null" json:"day_of_week"` // 0=Sunday … 6=Saturday
	Period      int       `gorm:"not null" json:"period"`      // คาบที่ 1..n
	SessionType string    `gorm:"size:20;not null" json:"session_type"`
	Semester    int       `gorm:"not null" json:"semester"`
	Division    string    `gorm:"size:10;not null" json:"division"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
