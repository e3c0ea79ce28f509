package models

import "time"

// หลักสูตร/สาขาในภาควิชา (ภาควิชาเดียว มีได้หลายหลักสูตร)
type Program struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
