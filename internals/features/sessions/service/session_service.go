package service

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceModel "rohisku_backend/internals/features/attendance/model"
	notulensiModel "rohisku_backend/internals/features/notulensi/model"
	picModel "rohisku_backend/internals/features/pics/model"
	"rohisku_backend/internals/features/sessions/model"
)

func CreateSession(db *gorm.DB, name, date, sessionType, description string) (*model.SessionModel, error) {
	s := model.SessionModel{
		Name:        name,
		Date:        date,
		SessionType: sessionType,
	}
	if description != "" {
		s.Description = &description
	}
	s.SetDefaultValues()

	if err := db.Create(&s).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to create session")
	}
	return &s, nil
}

// LockSession: gerbang satu arah. Mengunci sesi yang sudah terkunci
// tetap sukses (idempotent), tidak ada operasi unlock.
func LockSession(db *gorm.DB, sessionID uint) (*model.SessionModel, error) {
	var s model.SessionModel
	if err := db.First(&s, sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Session not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load session")
	}

	if !s.IsLocked {
		if err := db.Model(&s).Update("is_locked", true).Error; err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to lock session")
		}
		s.IsLocked = true
	}
	return &s, nil
}

// DeleteSession menghapus sesi beserta penugasan PIC, absensi, dan notulensi
// dalam satu transaksi. Gagal di langkah mana pun → tidak ada yang terhapus.
func DeleteSession(db *gorm.DB, sessionID uint) (string, error) {
	var name string
	err := db.Transaction(func(tx *gorm.DB) error {
		var s model.SessionModel
		if err := tx.First(&s, sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Session not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load session")
		}
		name = s.Name

		if err := tx.Where("session_id = ?", sessionID).Delete(&model.SessionPicModel{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to remove PIC assignments")
		}
		if err := tx.Where("session_id = ?", sessionID).Delete(&attendanceModel.AttendanceModel{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to remove attendance records")
		}
		if err := tx.Where("session_id = ?", sessionID).Delete(&notulensiModel.NotulensiModel{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to remove notulensi")
		}
		if err := tx.Delete(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete session")
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return name, nil
}

// AssignPics mengganti seluruh penugasan PIC sesi secara atomik
// (delete-all lalu insert). ID yang tidak dikenal dilewati diam-diam.
func AssignPics(db *gorm.DB, sessionID uint, picIDs []uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var s model.SessionModel
		if err := tx.First(&s, sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Session not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load session")
		}

		if err := tx.Where("session_id = ?", sessionID).Delete(&model.SessionPicModel{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to clear PIC assignments")
		}

		for _, pid := range picIDs {
			if pid == 0 {
				continue
			}
			var pic picModel.PicModel
			if err := tx.First(&pic, pid).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue // skip id yang tidak resolve
				}
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to load PIC")
			}
			if err := tx.Create(&model.SessionPicModel{SessionID: sessionID, PicID: pid}).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to assign PIC")
			}
		}
		return nil
	})
}

// RemovePic melepas satu penugasan PIC dari sesi.
func RemovePic(db *gorm.DB, sessionID, picID uint) (string, error) {
	var sp model.SessionPicModel
	if err := db.Where("session_id = ? AND pic_id = ?", sessionID, picID).First(&sp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fiber.NewError(fiber.StatusNotFound, "PIC assignment not found")
		}
		return "", fiber.NewError(fiber.StatusInternalServerError, "Failed to load assignment")
	}

	var pic picModel.PicModel
	_ = db.First(&pic, picID).Error

	if err := db.Delete(&sp).Error; err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "Failed to remove assignment")
	}
	return pic.Name, nil
}

// AssignedPics mengembalikan daftar PIC yang terpasang ke sesi.
func AssignedPics(db *gorm.DB, sessionID uint) ([]picModel.PicModel, error) {
	var pics []picModel.PicModel
	err := db.
		Joins("JOIN session_pics ON session_pics.pic_id = pics.id").
		Where("session_pics.session_id = ?", sessionID).
		Order("pics.name").
		Find(&pics).Error
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load assigned PICs")
	}
	return pics, nil
}
