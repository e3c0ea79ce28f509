package attendance

import (
	"errors"

	"gorm.io/gorm"

	"github.com/patiponrmutl/BECollege/models"
)

// SessionKey ระบุเหตุการณ์เช็กชื่อหนึ่งครั้ง: วิชา+ครู+วัน+ประเภทคาบ+คาบ
// SubjectID/Period เป็น nil ได้ (กิจกรรมรวมที่ไม่ผูกรายวิชา/คาบ)
type SessionKey struct {
	SubjectID   *uint
	TeacherID   uint
	Date        string // YYYY-MM-DD
	SessionType string
	Period      *int
}

// SessionMark คือสถานะของนักศึกษาหนึ่งคนใน session นั้น
type SessionMark struct {
	StudentID uint
	Status    models.AttendanceStatus
	Remarks   string
}

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store { return &Store{db: db} }

// scope แปลง key เป็นเงื่อนไข WHERE (คอลัมน์ nullable ต้องเทียบ IS NULL)
func (k SessionKey) scope(tx *gorm.DB) *gorm.DB {
	tx = tx.Where("teacher_id = ? AND date = ? AND session_type = ?",
		k.TeacherID, k.Date, k.SessionType)
	if k.SubjectID != nil {
		tx = tx.Where("subject_id = ?", *k.SubjectID)
	} else {
		tx = tx.Where("subject_id IS NULL")
	}
	if k.Period != nil {
		tx = tx.Where("period = ?", *k.Period)
	} else {
		tx = tx.Where("period IS NULL")
	}
	return tx
}

// UpsertSession แทนที่ผลเช็กชื่อของ session ทั้งก้อน (delete-then-insert)
// ไม่ใช่ merge รายคน — batch เดิมหายทั้งหมดแล้วแทนด้วย batch ใหม่
// ถ้ามีแถวใด locked จะไม่เขียนอะไรเลยและคืน ErrLocked
func (s *Store) UpsertSession(key SessionKey, marks []SessionMark) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var locked int64
		if err := key.scope(tx.Model(&models.Attendance{})).
			Where("locked = ?", true).Count(&locked).Error; err != nil {
			return err
		}
		if locked > 0 {
			return ErrLocked
		}

		if err := key.scope(tx).Delete(&models.Attendance{}).Error; err != nil {
			return err
		}
		if len(marks) == 0 {
			return nil
		}

		rows := make([]models.Attendance, 0, len(marks))
		for _, m := range marks {
			rows = append(rows, models.Attendance{
				StudentID:   m.StudentID,
				SubjectID:   key.SubjectID,
				TeacherID:   key.TeacherID,
				Date:        key.Date,
				SessionType: key.SessionType,
				Period:      key.Period,
				Status:      m.Status,
				Remarks:     m.Remarks,
			})
		}
		return tx.Create(&rows).Error
	})
}

// MarkAll เช็กชื่อทั้งกลุ่มด้วยสถานะเดียว (ปุ่ม "mark all" ของหน้าเช็กชื่อ)
func (s *Store) MarkAll(studentIDs []uint, key SessionKey, status models.AttendanceStatus, remarks string) error {
	marks := make([]SessionMark, 0, len(studentIDs))
	for _, id := range studentIDs {
		marks = append(marks, SessionMark{StudentID: id, Status: status, Remarks: remarks})
	}
	return s.UpsertSession(key, marks)
}

// FindByKey ดึงเรคคอร์ดตาม natural key (นักศึกษา + session key)
func (s *Store) FindByKey(studentID uint, key SessionKey) (*models.Attendance, error) {
	var rec models.Attendance
	err := key.scope(s.db.Model(&models.Attendance{})).
		Where("student_id = ?", studentID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Query คือ predicate filter ของ Filter (ช่วงวันที่เป็น inclusive ทั้งคู่)
type Query struct {
	StudentID uint  // 0 = ทุกคน
	SubjectID *uint // nil = ทุกวิชา
	From, To  string
	Statuses  []models.AttendanceStatus
	Division  string // กรองผ่าน join students
}

func (s *Store) Filter(q Query) ([]models.Attendance, error) {
	tx := s.db.Model(&models.Attendance{})

	if q.StudentID != 0 {
		tx = tx.Where("attendances.student_id = ?", q.StudentID)
	}
	if q.SubjectID != nil {
		tx = tx.Where("attendances.subject_id = ?", *q.SubjectID)
	}
	if q.From != "" {
		tx = tx.Where("attendances.date >= ?", q.From)
	}
	if q.To != "" {
		tx = tx.Where("attendances.date <= ?", q.To)
	}
	if len(q.Statuses) > 0 {
		tx = tx.Where("attendances.status IN ?", q.Statuses)
	}
	if q.Division != "" {
		tx = tx.Joins("JOIN students s ON s.id = attendances.student_id").
			Where("s.division = ?", q.Division)
	}

	var rows []models.Attendance
	if err := tx.Order("attendances.date ASC, attendances.period ASC, attendances.id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// LockSession ปิดการแก้ไขของ session นี้ (นโยบายว่าจะล็อกเมื่อไรอยู่ฝั่ง caller)
// คืนจำนวนแถวที่ถูกล็อก
func (s *Store) LockSession(key SessionKey) (int64, error) {
	res := key.scope(s.db.Model(&models.Attendance{})).Update("locked", true)
	return res.RowsAffected, res.Error
}
