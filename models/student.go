package models

import "time"

type Student struct {
	ID         uint   `gorm:"primaryKey"                   json:"id"`
	RollNumber string `gorm:"size:20;uniqueIndex;not null" json:"roll_number"` // รหัสนักศึกษา (แสดงในตาราง/รายงาน)
	FirstName  string `gorm:"size:50;not null"             json:"first_name"`
	LastName   string `gorm:"size:50;not null"             json:"last_name"`
	ProgramID  uint   `gorm:"index;not null"               json:"program_id"`
	Semester   int    `gorm:"not null"                     json:"semester"`
	Batch      string `gorm:"size:20;not null"             json:"batch"`    // เช่น "2024"
	Division   string `gorm:"size:10;not null"             json:"division"` // เช่น "A"
	Email      string `gorm:"size:80"                      json:"email"`
	Phone      string `gorm:"size:15"                      json:"phone"`
	IsActive   bool   `gorm:"not null;default:true"        json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName joins first/last for report rows.
func (s Student) FullName() string {
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}
