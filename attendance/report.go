package attendance

import "sort"

// ReportRow คือหนึ่งแถวของรายงานรายวิชา (คอลัมน์ CSV: roll_number, name, total, present, percentage)
type ReportRow struct {
	StudentID  uint    `json:"student_id"`
	RollNumber string  `json:"roll_number"`
	Name       string  `json:"name"`
	Total      int     `json:"total"`
	Present    int     `json:"present"`
	Percentage float64 `json:"percentage"`
}

// SubjectReport สรุปการเข้าเรียนของนักศึกษา active ทุกคนในวิชาหนึ่ง
// from/to เป็น inclusive; ว่าง = ไม่กรอง
// นักศึกษาที่ไม่มีเรคคอร์ดในวิชานั้นยังติดรายงานด้วย total=0, percentage=0.0
func (s *Scanner) SubjectReport(subjectID uint, from, to string) ([]ReportRow, error) {
	tx := s.db.Table("attendances").
		Select("attendances.student_id AS student_id, COUNT(*) AS total, "+
			"SUM(CASE WHEN attendances.status IN ? THEN 1 ELSE 0 END) AS present", presentList).
		Joins("JOIN students ON students.id = attendances.student_id").
		Where("students.is_active = ?", true).
		Where("attendances.subject_id = ?", subjectID)
	if from != "" {
		tx = tx.Where("attendances.date >= ?", from)
	}
	if to != "" {
		tx = tx.Where("attendances.date <= ?", to)
	}

	var aggs []studentAgg
	if err := tx.Group("attendances.student_id").Scan(&aggs).Error; err != nil {
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

	rows := make([]ReportRow, 0, len(students))
	for _, st := range students {
		a := byStudent[st.ID] // zero value = ไม่มีเรคคอร์ด
		rows = append(rows, ReportRow{
			StudentID:  st.ID,
			RollNumber: st.RollNumber,
			Name:       st.FullName(),
			Total:      a.Total,
			Present:    a.Present,
			Percentage: percentage(a.Present, a.Total),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].RollNumber < rows[j].RollNumber })
	return rows, nil
}
