package model

import "time"

// Status kehadiran yang dikenal
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusExcused = "excused"
	StatusLate    = "late"
)

// Jenis absensi
const (
	TypeRegular = "regular"
	TypeCore    = "core"
)

// AttendanceModel: satu catatan kehadiran per (sesi, user, jenis).
// Unique index uq_session_user_type adalah penjaga duplikat yang
// sesungguhnya — pre-check di service hanya untuk pesan error cepat.
// Record tidak pernah di-update setelah dibuat.
type AttendanceModel struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	SessionID      uint      `gorm:"not null;uniqueIndex:uq_session_user_type" json:"session_id"`
	UserID         uint      `gorm:"not null;uniqueIndex:uq_session_user_type" json:"user_id"`
	Status         string    `gorm:"size:50;not null" json:"status"`
	AttendanceType string    `gorm:"size:50;not null;default:'regular';uniqueIndex:uq_session_user_type" json:"attendance_type"`
	Timestamp      time.Time `gorm:"not null" json:"timestamp"`
}

func (AttendanceModel) TableName() string {
	return "attendances"
}

// ValidStatus memastikan status termasuk enum yang dikenal.
func ValidStatus(s string) bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusExcused, StatusLate:
		return true
	}
	return false
}
