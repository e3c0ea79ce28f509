package attendance

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/patiponrmutl/BECollege/models"
)

const dateLayout = "2006-01-02"

// ValidateRange ใช้ตอนสร้างใบลา — Apply ถือว่าช่วงวันที่ valid แล้ว
func ValidateRange(from, to string) error {
	f, err := time.Parse(dateLayout, from)
	if err != nil {
		return ErrInvalidRange
	}
	t, err := time.Parse(dateLayout, to)
	if err != nil {
		return ErrInvalidRange
	}
	if f.After(t) {
		return ErrInvalidRange
	}
	return nil
}

// LeaveEffect จัดการ transition ของใบลาและผลข้างเคียงต่อเรคคอร์ดเช็กชื่อ
type LeaveEffect struct {
	db *gorm.DB
}

func NewLeaveEffect(db *gorm.DB) *LeaveEffect { return &LeaveEffect{db: db} }

func (e *LeaveEffect) pendingLeave(tx *gorm.DB, leaveID uint) (*models.LeaveRequest, error) {
	var lv models.LeaveRequest
	if err := tx.First(&lv, "id = ?", leaveID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	// pending → approved|rejected ทางเดียวเท่านั้น; ซ้ำ = ErrInvalidState ไม่มี mutation
	if lv.Status != models.LeavePending {
		return nil, ErrInvalidState
	}
	return &lv, nil
}

// Apply อนุมัติใบลา แล้วไล่เขียนทับเรคคอร์ดของนักศึกษาคนนั้นทีละวัน
// ตั้งแต่ from_date ถึง to_date (รวมปลายทั้งสองข้าง ไม่ข้ามเสาร์-อาทิตย์)
// เป็น OD พร้อม remarks "Leave approved: <type>"
//
// เขียนทับเฉพาะแถวที่มีอยู่แล้วเท่านั้น — วันที่ยังไม่ถูกเช็กชื่อจะไม่ถูกสร้างแถวใหม่
// (กติกาของงานทะเบียน อย่าแก้เองโดยไม่ผ่าน product owner)
// แถวที่ locked จะไม่ถูกแตะ
func (e *LeaveEffect) Apply(leaveID, actorID uint) (*models.LeaveRequest, error) {
	var out *models.LeaveRequest
	err := e.db.Transaction(func(tx *gorm.DB) error {
		lv, err := e.pendingLeave(tx, leaveID)
		if err != nil {
			return err
		}

		now := time.Now()
		lv.Status = models.LeaveApproved
		lv.DecidedAt = &now
		lv.DecidedBy = &actorID
		lv.RejectReason = ""
		if err := tx.Save(lv).Error; err != nil {
			return err
		}

		from, err := time.Parse(dateLayout, lv.FromDate)
		if err != nil {
			return ErrInvalidRange
		}
		to, err := time.Parse(dateLayout, lv.ToDate)
		if err != nil {
			return ErrInvalidRange
		}

		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			err := tx.Model(&models.Attendance{}).
				Where("student_id = ? AND date = ? AND locked = ?",
					lv.StudentID, d.Format(dateLayout), false).
				Updates(map[string]any{
					"status":  models.StatusOD,
					"remarks": "Leave approved: " + lv.Type,
				}).Error
			if err != nil {
				return err
			}
		}

		out = lv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Reject ปฏิเสธใบลา — ไม่มีผลข้างเคียงต่อเรคคอร์ดเช็กชื่อ
func (e *LeaveEffect) Reject(leaveID, actorID uint, reason string) (*models.LeaveRequest, error) {
	var out *models.LeaveRequest
	err := e.db.Transaction(func(tx *gorm.DB) error {
		lv, err := e.pendingLeave(tx, leaveID)
		if err != nil {
			return err
		}

		now := time.Now()
		lv.Status = models.LeaveRejected
		lv.DecidedAt = &now
		lv.DecidedBy = &actorID
		lv.RejectReason = reason
		if err := tx.Save(lv).Error; err != nil {
			return err
		}
		out = lv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
