package model

import (
	"time"

	memberModel "rohisku_backend/internals/features/users/member/model"
)

// PicModel: divisi/kelompok PIC yang bisa dipasang ke sesi.
// Representatif PIC (user dengan id == pic_id sesi) boleh mengabsen anggotanya.
type PicModel struct {
	ID          uint                    `gorm:"primaryKey" json:"id"`
	Name        string                  `gorm:"size:150;uniqueIndex;not null" json:"name"`
	Description *string                 `json:"description,omitempty"`
	CreatedAt   time.Time               `gorm:"autoCreateTime" json:"created_at"`
	Members     []memberModel.UserModel `gorm:"foreignKey:PicID" json:"members,omitempty"`
}

func (PicModel) TableName() string {
	return "pics"
}
