package attendance

import (
	"math"

	"github.com/patiponrmutl/BECollege/models"
)

// Result คือสรุปการเข้าเรียนของ record set ที่กรองมาแล้วชุดหนึ่ง (ไม่ persist)
type Result struct {
	Total      int     `json:"total"`
	Present    int     `json:"present"`
	Percentage float64 `json:"percentage"` // 0..100, ปัด 2 ตำแหน่ง
}

// สถานะที่นับเป็น "มาเรียน": Present, Late, OD เท่านั้น
// ML/EL เป็นการลาก็จริง แต่ไม่นับเป็นมา — กติกาของงานทะเบียน
var presentList = []models.AttendanceStatus{
	models.StatusPresent,
	models.StatusLate,
	models.StatusOD,
}

var presentSet = func() map[models.AttendanceStatus]bool {
	m := make(map[models.AttendanceStatus]bool, len(presentList))
	for _, s := range presentList {
		m[s] = true
	}
	return m
}()

// CountsPresent reports whether a status adds to the present count.
func CountsPresent(s models.AttendanceStatus) bool { return presentSet[s] }

// Compute is a pure pass over an already-filtered record set.
// total == 0 ให้ 0.0 โดยนโยบาย ไม่ใช่ error — มีผลต่อการจัดอันดับ defaulter
func Compute(records []models.Attendance) Result {
	r := Result{Total: len(records)}
	for i := range records {
		if CountsPresent(records[i].Status) {
			r.Present++
		}
	}
	r.Percentage = percentage(r.Present, r.Total)
	return r
}

func percentage(present, total int) float64 {
	if total <= 0 {
		return 0.0
	}
	return round2(float64(present) / float64(total) * 100)
}

func round2(f float64) float64 { return math.Round(f*100) / 100 }
