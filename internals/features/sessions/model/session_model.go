package model

import (
	"time"
)

// Tipe sesi yang dikenal
const (
	SessionTypeAll   = "all"
	SessionTypeCore  = "core"
	SessionTypeEvent = "event"
)

// SessionModel: pertemuan/kegiatan yang memiliki absensi, notulensi,
// dan penugasan PIC. is_locked hanya bergerak false → true.
type SessionModel struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:150;not null" json:"name"`
	Date        string    `gorm:"size:50;not null" json:"date"`
	SessionType string    `gorm:"size:20;not null;default:'all'" json:"session_type"`
	IsLocked    bool      `gorm:"not null;default:false" json:"is_locked"`
	Description *string   `json:"description,omitempty"`
	PicID       *uint     `gorm:"index" json:"pic_id,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (SessionModel) TableName() string {
	return "sessions"
}

// SetDefaultValues: tipe tak dikenal jatuh ke "all".
func (s *SessionModel) SetDefaultValues() {
	switch s.SessionType {
	case SessionTypeAll, SessionTypeCore, SessionTypeEvent:
	default:
		s.SessionType = SessionTypeAll
	}
}
