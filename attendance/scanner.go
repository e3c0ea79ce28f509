package attendance

import (
	"sort"

	"gorm.io/gorm"

	"github.com/patiponrmutl/BECollege/models"
)

// Defaulter คือนักศึกษาที่เปอร์เซ็นต์เข้าเรียนต่ำกว่าเกณฑ์
type Defaulter struct {
	StudentID  uint    `json:"student_id"`
	RollNumber string  `json:"roll_number"`
	Name       string  `json:"name"`
	Batch      string  `json:"batch"`
	Division   string  `json:"division"`
	Percentage float64 `json:"percentage"`
}

type Scanner struct {
	db *gorm.DB
}

func NewScanner(db *gorm.DB) *Scanner { return &Scanner{db: db} }

type studentAgg struct {
	StudentID uint
	Total     int
	Present   int
}

func (s *Scanner) activeStudents() ([]models.Student, error) {
	var students []models.Student
	if err := s.db.Where("is_active = ?", true).Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

// Scan หานักศึกษา active ทุกคนที่เปอร์เซ็นต์ (ทุกเรคคอร์ด ไม่กรองวิชา/วันที่)
// ต่ำกว่า threshold — คนที่ไม่มีเรคคอร์ดเลยนับเป็น 0.0 และติด list เสมอเมื่อ threshold > 0
//
// ทำสองรอบเดียวจบ: (1) grouped aggregate ฝั่ง DB สำหรับคนที่มีเรคคอร์ด
// (2) cohort ศูนย์เรคคอร์ดจากตาราง students แล้ว merge+sort ครั้งเดียว
// ห้ามวน query รายคน (N+1 ของระบบเดิม)
func (s *Scanner) Scan(threshold float64) ([]Defaulter, error) {
	var aggs []studentAgg
	err := s.db.Table("attendances").
		Select("attendances.student_id AS student_id, COUNT(*) AS total, "+
			"SUM(CASE WHEN attendances.status IN ? THEN 1 ELSE 0 END) AS present", presentList).
		Joins("JOIN students ON students.id = attendances.student_id").
		Where("students.is_active = ?", true).
		Group("attendances.student_id").
		Scan(&aggs).Error
	if err != nil {
		return nil, err
	}

	byStudent := make(map[uint]studentAgg, len(aggs))
	for _, a := range aggs {
		byStudent[a.StudentID] = a
	}

	students, err := s.activeStudents()
	if err != nil {
		return nil, err
	}

	out := make([]Defaulter, 0, len(students))
	for _, st := range students {
		pct := 0.0 // ไม่มีเรคคอร์ด = 0.0 โดยนิยาม
		if a, ok := byStudent[st.ID]; ok {
			pct = percentage(a.Present, a.Total)
		}
		if pct >= threshold {
			continue
		}
		out = append(out, Defaulter{
			StudentID:  st.ID,
			RollNumber: st.RollNumber,
			Name:       st.FullName(),
			Batch:      st.Batch,
			Division:   st.Division,
			Percentage: pct,
		})
	}

	// เรียงน้อย→มาก; เท่ากันตัดสินด้วย student id ให้ผลคงที่
	sort.Slice(out, func(i, j int) bool {
		if out[i].Percentage != out[j].Percentage {
			return out[i].Percentage < out[j].Percentage
		}
		return out[i].StudentID < out[j].StudentID
	})
	return out, nil
}
