package models

import "time"

type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"uniqueIndex;size:60;not null"`
	Password string `json:"-" gorm:"not null"`            // เก็บ bcrypt hash
	Role     string `json:"role" gorm:"size:20;not null"` // "admin" | "teacher" | "student"
	Name     string `json:"name" gorm:"size:120"`

	// ลิงก์ไปเรคคอร์ดบุคคลตาม role (ว่างได้สำหรับ admin)
	TeacherID *uint `json:"teacher_id,omitempty" gorm:"index"`
	StudentID *uint `json:"student_id,omitempty" gorm:"index"`

	// ครูสมัครเองต้องรอ admin อนุมัติก่อน login ได้ (admin สร้างให้ = true ทันที)
	Approved bool `json:"approved" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
