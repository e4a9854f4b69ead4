package model

import (
	"time"

	"rohisku_backend/internals/constants"
)

// UserModel merepresentasikan tabel users di database.
// Akun baru dibuat dengan kredensial default dan wajib ganti password.
type UserModel struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Email              string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	Password           string    `gorm:"size:200;not null" json:"-"`
	Name               string    `gorm:"size:150;not null" json:"name"`
	Role               string    `gorm:"size:50;not null;default:'member'" json:"role"`
	MustChangePassword bool      `gorm:"not null;default:true" json:"must_change_password"`
	ClassName          *string   `gorm:"size:50" json:"class_name,omitempty"`
	PicID              *uint     `gorm:"index" json:"pic_id,omitempty"`
	CanMarkAttendance  bool      `gorm:"not null;default:false" json:"can_mark_attendance"`
	ProfilePictureData []byte    `gorm:"type:bytea" json:"-"`
	ProfilePictureName *string   `gorm:"size:255" json:"-"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

// SetDefaultValues memastikan nilai default sebelum simpan
func (u *UserModel) SetDefaultValues() {
	if u.Role == "" || !constants.ValidRole(u.Role) {
		u.Role = constants.RoleMember
	}
}

// IsAdministrative: role tingkat pengurus.
func (u *UserModel) IsAdministrative() bool {
	return constants.IsAdministrative(u.Role)
}

// IsCoreUser: boleh tercatat di absensi core.
func (u *UserModel) IsCoreUser() bool {
	return constants.IsCoreUser(u.Role)
}
