package attendance

import "errors"

// Sentinel errors — handler ชั้นนอก map เป็น HTTP code เอง
var (
	// ErrLocked: มีแถวใน session key นี้ถูกล็อกแล้ว เขียนทั้ง batch ไม่ได้ (all-or-nothing)
	ErrLocked = errors.New("attendance: session is locked")

	// ErrInvalidState: ใบลาไม่อยู่สถานะ pending แล้ว (อนุมัติ/ปฏิเสธซ้ำไม่ได้)
	ErrInvalidState = errors.New("attendance: leave request is not pending")

	// ErrInvalidRange: from_date > to_date หรือรูปแบบวันที่ผิด
	ErrInvalidRange = errors.New("attendance: invalid date range")

	ErrNotFound = errors.New("attendance: record not found")
)
