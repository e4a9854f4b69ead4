package service

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rohisku_backend/internals/features/notulensi/model"
	sessionModel "rohisku_backend/internals/features/sessions/model"
	helper "rohisku_backend/internals/helpers"
)

// Placeholder kosong bawaan rich-text editor — dianggap tidak ada isi.
var emptyPlaceholders = map[string]bool{
	"":            true,
	"<p><br></p>": true,
	"<p></p>":     true,
}

func IsEmptyContent(content string) bool {
	return emptyPlaceholders[strings.TrimSpace(content)]
}

// Save membuat atau memperbarui notulen satu sesi (upsert by session_id).
// Update hanya menyentuh content + updated_at; created_at tidak berubah.
func Save(db *gorm.DB, sessionID uint, content string) (*model.NotulensiModel, bool, error) {
	if IsEmptyContent(content) {
		return nil, false, fiber.NewError(fiber.StatusBadRequest, "Notulensi content cannot be empty")
	}

	var session sessionModel.SessionModel
	if err := db.First(&session, sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, fiber.NewError(fiber.StatusNotFound, "Session not found")
		}
		return nil, false, fiber.NewError(fiber.StatusInternalServerError, "Failed to load session")
	}

	var note model.NotulensiModel
	err := db.Where("session_id = ?", sessionID).First(&note).Error
	switch {
	case err == nil:
		now := helper.NowWIB()
		note.Content = content
		note.UpdatedAt = &now
		if err := db.Model(&note).Updates(map[string]any{
			"content":    note.Content,
			"updated_at": note.UpdatedAt,
		}).Error; err != nil {
			return nil, false, fiber.NewError(fiber.StatusInternalServerError, "Failed to update notulensi")
		}
		return &note, false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		note = model.NotulensiModel{SessionID: sessionID, Content: content}
		if err := db.Create(&note).Error; err != nil {
			return nil, false, fiber.NewError(fiber.StatusInternalServerError, "Failed to save notulensi")
		}
		return &note, true, nil
	default:
		return nil, false, fiber.NewError(fiber.StatusInternalServerError, "Failed to load notulensi")
	}
}

// Delete menghapus notulen berdasarkan id catatan (bukan id sesi).
func Delete(db *gorm.DB, noteID uint) error {
	var note model.NotulensiModel
	if err := db.First(&note, noteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Notulensi not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load notulensi")
	}
	if err := db.Delete(&note).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete notulensi")
	}
	return nil
}

// BySession mengambil notulen satu sesi; nil jika belum ada.
func BySession(db *gorm.DB, sessionID uint) (*model.NotulensiModel, error) {
	var note model.NotulensiModel
	err := db.Where("session_id = ?", sessionID).First(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load notulensi")
	}
	return &note, nil
}
