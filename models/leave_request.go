package models

import "time"

const (
	LeavePending  = "pending"
	LeaveApproved = "approved"
	LeaveRejected = "rejected"
)

type LeaveRequest struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	StudentID uint   `json:"student_id" gorm:"index;not null"`
	Type      string `json:"type" gorm:"size:40;not null"` // sick / personal / other
	Reason    string `json:"reason" gorm:"type:text"`
	FromDate  string `json:"from_date" gorm:"size:10;not null"` // YYYY-MM-DD
	ToDate    string `json:"to_date" gorm:"size:10;not null"`   // YYYY-MM-DD

	// pending → approved|rejected ทางเดียว ไม่มี un-approve
	Status       string     `json:"status" gorm:"size:20;not null;default:pending"`
	SubmittedAt  time.Time  `json:"submitted_at" gorm:"autoCreateTime"`
	DecidedAt    *time.Time `json:"decided_at"`
	DecidedBy    *uint      `json:"decided_by"` // user_id ของผู้อนุมัติ/ปฏิเสธ
	RejectReason string     `json:"reject_reason" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
