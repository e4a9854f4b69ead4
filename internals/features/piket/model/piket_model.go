package model

import "time"

// JadwalPiketModel: jadwal piket mingguan, satu baris per hari (0=Monday..6=Sunday).
type JadwalPiketModel struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	DayOfWeek int        `gorm:"not null;uniqueIndex" json:"day_of_week"`
	DayName   string     `gorm:"size:20;not null" json:"day_name"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func (JadwalPiketModel) TableName() string {
	return "jadwal_piket"
}

// PiketAssignmentModel: satu user terpasang ke satu hari piket.
type PiketAssignmentModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	JadwalID  uint      `gorm:"not null;uniqueIndex:uq_jadwal_user" json:"jadwal_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:uq_jadwal_user" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (PiketAssignmentModel) TableName() string {
	return "piket_assignments"
}

// Status log reminder
const (
	ReminderSuccess = "success"
	ReminderPartial = "partial"
	ReminderSkipped = "skipped"
	ReminderFailed  = "failed"
)

// EmailReminderLogModel: audit append-only, tepat satu baris per run reminder.
type EmailReminderLogModel struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	DayOfWeek       int       `gorm:"not null" json:"day_of_week"`
	DayName         string    `gorm:"size:20;not null" json:"day_name"`
	RecipientsCount int       `gorm:"not null;default:0" json:"recipients_count"`
	Recipients      string    `gorm:"type:text" json:"recipients"` // JSON array alamat email
	SentAt          time.Time `gorm:"autoCreateTime" json:"sent_at"`
	Status          string    `gorm:"size:20;not null;default:'success'" json:"status"`
	ErrorMessage    *string   `gorm:"type:text" json:"error_message,omitempty"`
}

func (EmailReminderLogModel) TableName() string {
	return "email_reminder_logs"
}
