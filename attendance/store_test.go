package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patiponrmutl/BECollege/models"
)

func theoryKey(date string, period int) SessionKey {
	subj := uint(1)
	return SessionKey{
		SubjectID:   &subj,
		TeacherID:   1,
		Date:        date,
		SessionType: models.SessionTheory,
		Period:      &period,
	}
}

func sessionRows(t *testing.T, store *Store, key SessionKey) []models.Attendance {
	t.Helper()
	rows, err := store.Filter(Query{From: key.Date, To: key.Date})
	require.NoError(t, err)
	return rows
}

func TestUpsertSessionReplacesWholeSession(t *testing.T) {
	db := testDB(t)
	store := NewStore(db)
	key := theoryKey("2024-03-01", 2)

	marks := []SessionMark{
		{StudentID: 1, Status: models.StatusPresent},
		{StudentID: 2, Status: models.StatusAbsent},
		{StudentID: 3, Status: models.StatusLate, Remarks: "bus"},
	}
	require.NoError(t, store.UpsertSession(key, marks))
	assert.Len(t, sessionRows(t, store, key), 3)

	// re-mark โดยตัดคนที่ 3 ออก → แถวเก่าของคนที่ 3 ต้องหาย (full replace ไม่ใช่ merge)
	require.NoError(t, store.UpsertSession(key, marks[:2]))
	rows := sessionRows(t, store, key)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.NotEqual(t, uint(3), r.StudentID)
	}
}

func TestUpsertSessionIdempotent(t *testing.T) {
	db := testDB(t)
	store := NewStore(db)
	key := theoryKey("2024-03-01", 1)

	marks := []SessionMark{
		{StudentID: 1, Status: models.StatusPresent},
		{StudentID: 2, Status: models.StatusOD, Remarks: "sports meet"},
	}
	require.NoError(t, store.UpsertSession(key, marks))
	first := sessionRows(t, store, key)

	require.NoError(t, store.UpsertSession(key, marks))
	second := sessionRows(t, store, key)

	require.Len(t, second, len(first))
	for i := range second {
		assert.Equal(t, first[i].StudentID, second[i].StudentID)
		assert.Equal(t, first[i].Status, second[i].Status)
		assert.Equal(t, first[i].Remarks, second[i].Remarks)
	}
}

func TestUpsertSessionLockedIsAllOrNothing(t *testing.T) {
	db := testDB(t)
	store := NewStore(db)
	key := theoryKey("2024-03-02", 1)

	require.NoError(t, store.UpsertSession(key, []SessionMark{
		{StudentID: 1, Status: models.StatusAbsent},
		{StudentID: 2, Status: models.StatusPresent},
	}))

	n, err := store.LockSession(key)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	// เขียนทับ session ที่ล็อกแล้ว → ErrLocked และข้อมูลเดิมอยู่ครบ
	err = store.UpsertSession(key, []SessionMark{
		{StudentID: 1, Status: models.StatusPresent},
		{StudentID: 2, Status: models.StatusPresent},
	})
	assert.ErrorIs(t, err, ErrLocked)

	rec, err := store.FindByKey(1, key)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAbsent, rec.Status)
	assert.True(t, rec.Locked)
}

func TestFindByKeyNotFound(t *testing.T) {
	db := testDB(t)
	store := NewStore(db)

	_, err := store.FindByKey(99, theoryKey("2024-03-01", 1))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMarkAllUniformStatus(t *testing.T) {
	db := testDB(t)
	store := NewStore(db)
	key := theoryKey("2024-03-03", 4)

	require.NoError(t, store.MarkAll([]uint{1, 2, 3}, key, models.StatusHoliday, "college day"))
	rows := sessionRows(t, store, key)
	require.Len(t, rows, 3)
	for _, r := range rows {
		assert.Equal(t, models.StatusHoliday, r.Status)
		assert.Equal(t, "college day", r.Remarks)
	}
}

func TestFilterPredicates(t *testing.T) {
	db := testDB(t)
	store := NewStore(db)
	st := seedStudent(t, db, "CS-101", true)

	seedRecord(t, db, st.ID, "2024-03-01", 1, models.StatusPresent)
	seedRecord(t, db, st.ID, "2024-03-02", 1, models.StatusAbsent)
	seedRecord(t, db, st.ID, "2024-03-05", 1, models.StatusLate)

	rows, err := store.Filter(Query{StudentID: st.ID, From: "2024-03-01", To: "2024-03-02"})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = store.Filter(Query{
		StudentID: st.ID,
		Statuses:  []models.AttendanceStatus{models.StatusAbsent},
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2024-03-02", rows[0].Date)

	rows, err = store.Filter(Query{StudentID: st.ID, Division: "A"})
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	rows, err = store.Filter(Query{StudentID: st.ID, Division: "B"})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

// duplicate natural key นอกเส้นทาง UpsertSession = programmer error → unique index ต้องกัน
func TestNaturalKeyUniqueIndex(t *testing.T) {
	db := testDB(t)
	st := seedStudent(t, db, "CS-102", true)

	seedRecord(t, db, st.ID, "2024-03-01", 1, models.StatusPresent)

	subj := uint(1)
	period := 1
	dup := models.Attendance{
		StudentID:   st.ID,
		SubjectID:   &subj,
		TeacherID:   2, // teacher ต่างกันก็ยังชน — teacher ไม่อยู่ใน natural key
		Date:        "2024-03-01",
		SessionType: models.SessionTheory,
		Period:      &period,
		Status:      models.StatusAbsent,
	}
	require.Error(t, db.Create(&dup).Error)
}
