package service

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rohisku_backend/internals/features/pics/model"
	sessionModel "rohisku_backend/internals/features/sessions/model"
	memberModel "rohisku_backend/internals/features/users/member/model"
	helper "rohisku_backend/internals/helpers"
)

func CreatePic(db *gorm.DB, name, description string) (*model.PicModel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "PIC name is required")
	}

	pic := model.PicModel{Name: name}
	if d := strings.TrimSpace(description); d != "" {
		pic.Description = &d
	}

	if err := db.Create(&pic).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, fiber.NewError(fiber.StatusConflict, "PIC '"+name+"' already exists")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to create PIC")
	}
	return &pic, nil
}

// DeletePic menghapus PIC dalam satu transaksi:
// anggota dilepas (pic_id null) + izin absen dicabut, penugasan sesi dihapus,
// baru PIC-nya. Gagal di tengah → rollback semua.
func DeletePic(db *gorm.DB, picID uint) (*model.PicModel, error) {
	var pic model.PicModel
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&pic, picID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "PIC not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load PIC")
		}

		if err := tx.Model(&memberModel.UserModel{}).
			Where("pic_id = ?", picID).
			Updates(map[string]interface{}{
				"pic_id":              nil,
				"can_mark_attendance": false,
			}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to detach members")
		}

		if err := tx.Where("pic_id = ?", picID).Delete(&sessionModel.SessionPicModel{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to remove session assignments")
		}

		if err := tx.Delete(&pic).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete PIC")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &pic, nil
}
