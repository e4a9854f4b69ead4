package model

import "time"

// NotulensiModel: notulen rapat, maksimal satu per sesi.
// Unique index di session_id menutup celah upsert balapan.
type NotulensiModel struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	SessionID uint       `gorm:"not null;uniqueIndex" json:"session_id"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	// Tetap NULL sampai notulen pertama kali di-edit; jangan diisi GORM otomatis.
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updated_at,omitempty"`
}

func (NotulensiModel) TableName() string {
	return "notulensi"
}
