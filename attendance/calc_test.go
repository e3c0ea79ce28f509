package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/patiponrmutl/BECollege/models"
)

func recs(statuses ...models.AttendanceStatus) []models.Attendance {
	out := make([]models.Attendance, len(statuses))
	for i, s := range statuses {
		out[i] = models.Attendance{Status: s}
	}
	return out
}

func TestComputeScenario(t *testing.T) {
	// (Present, Absent, OD) → 2/3 = 66.67
	r := Compute(recs(models.StatusPresent, models.StatusAbsent, models.StatusOD))
	assert.Equal(t, 3, r.Total)
	assert.Equal(t, 2, r.Present)
	assert.Equal(t, 66.67, r.Percentage)
}

func TestComputeEmptySet(t *testing.T) {
	// ไม่มีเรคคอร์ด = 0.0 ตามนโยบาย ไม่ใช่ NaN/error
	r := Compute(nil)
	assert.Equal(t, 0, r.Total)
	assert.Equal(t, 0, r.Present)
	assert.Equal(t, 0.0, r.Percentage)
}

func TestPresenceSetExact(t *testing.T) {
	// มาเรียน = {Present, Late, OD} เท่านั้น — EL/ML เป็นลาแต่ไม่นับเป็นมา
	cases := map[models.AttendanceStatus]bool{
		models.StatusPresent:   true,
		models.StatusLate:      true,
		models.StatusOD:        true,
		models.StatusAbsent:    false,
		models.StatusEarlyExit: false,
		models.StatusML:        false,
		models.StatusEL:        false,
		models.StatusHoliday:   false,
	}
	for status, want := range cases {
		assert.Equal(t, want, CountsPresent(status), "status %s", status)
		r := Compute(recs(status))
		if want {
			assert.Equal(t, 1, r.Present, "status %s", status)
		} else {
			assert.Equal(t, 0, r.Present, "status %s", status)
			assert.Equal(t, 1, r.Total, "status %s", status)
		}
	}
}

func TestComputeBounds(t *testing.T) {
	all := []models.AttendanceStatus{
		models.StatusPresent, models.StatusAbsent, models.StatusLate, models.StatusEarlyExit,
		models.StatusOD, models.StatusML, models.StatusEL,
	}
	// ทุก mix ขนาด 1..3 ต้องอยู่ใน [0,100]
	for _, a := range all {
		for _, b := range all {
			for _, c := range all {
				r := Compute(recs(a, b, c))
				assert.GreaterOrEqual(t, r.Percentage, 0.0)
				assert.LessOrEqual(t, r.Percentage, 100.0)
			}
		}
	}

	assert.Equal(t, 100.0, Compute(recs(models.StatusPresent, models.StatusLate, models.StatusOD)).Percentage)
	assert.Equal(t, 0.0, Compute(recs(models.StatusAbsent, models.StatusML)).Percentage)
}

func TestComputeRounding(t *testing.T) {
	// 1/3 → 33.33, 2/3 → 66.67
	assert.Equal(t, 33.33, Compute(recs(models.StatusPresent, models.StatusAbsent, models.StatusAbsent)).Percentage)
	assert.Equal(t, 66.67, Compute(recs(models.StatusPresent, models.StatusPresent, models.StatusAbsent)).Percentage)
}
