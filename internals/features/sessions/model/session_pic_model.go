package model

import "time"

// SessionPicModel: penugasan PIC ke sesi (join table).
// Sepasang (session_id, pic_id) hanya boleh ada satu.
type SessionPicModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SessionID uint      `gorm:"not null;uniqueIndex:uq_session_pic" json:"session_id"`
	PicID     uint      `gorm:"not null;uniqueIndex:uq_session_pic" json:"pic_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (SessionPicModel) TableName() string {
	return "session_pics"
}
