package service

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rohisku_backend/internals/features/piket/model"
	helper "rohisku_backend/internals/helpers"
)

// UpdateDay mengganti daftar petugas piket satu hari (replace-all).
// Jadwal dibuat saat pertama kali hari itu diisi; user_id 0 dilewati.
func UpdateDay(db *gorm.DB, day int, userIDs []uint) (*model.JadwalPiketModel, error) {
	if day < 0 || day > 6 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "day_of_week must be between 0 and 6")
	}

	var jadwal model.JadwalPiketModel
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("day_of_week = ?", day).First(&jadwal).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			jadwal = model.JadwalPiketModel{DayOfWeek: day, DayName: helper.DayNames[day]}
			if err := tx.Create(&jadwal).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to create duty roster")
			}
		} else if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load duty roster")
		}

		if err := tx.Where("jadwal_id = ?", jadwal.ID).
			Delete(&model.PiketAssignmentModel{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to clear duty assignments")
		}

		for _, userID := range userIDs {
			if userID == 0 {
				continue
			}
			assignment := model.PiketAssignmentModel{JadwalID: jadwal.ID, UserID: userID}
			if err := tx.Create(&assignment).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to save duty assignment")
			}
		}

		now := helper.NowWIB()
		jadwal.UpdatedAt = &now
		if err := tx.Model(&jadwal).Update("updated_at", jadwal.UpdatedAt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update duty roster")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &jadwal, nil
}

// ClearDay mengosongkan petugas satu hari. 404 jika jadwal hari itu belum ada.
func ClearDay(db *gorm.DB, day int) (*model.JadwalPiketModel, error) {
	if day < 0 || day > 6 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "day_of_week must be between 0 and 6")
	}

	var jadwal model.JadwalPiketModel
	if err := db.Where("day_of_week = ?", day).First(&jadwal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Hari tanpa jadwal: tidak ada yang perlu dihapus, bukan error
			return nil, nil
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load duty roster")
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("jadwal_id = ?", jadwal.ID).
			Delete(&model.PiketAssignmentModel{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to clear duty assignments")
		}
		now := helper.NowWIB()
		jadwal.UpdatedAt = &now
		return tx.Model(&jadwal).Update("updated_at", jadwal.UpdatedAt).Error
	})
	if err != nil {
		return nil, err
	}
	return &jadwal, nil
}

// DayRoster: satu hari + petugasnya.
type DayRoster struct {
	DayOfWeek int            `json:"day_of_week"`
	DayName   string         `json:"day_name"`
	UpdatedAt *time.Time     `json:"updated_at,omitempty"`
	Members   []RosterMember `json:"members"`
}

type RosterMember struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// Roster mengembalikan tujuh hari penuh; hari tanpa jadwal tetap muncul
// dengan daftar petugas kosong.
func Roster(db *gorm.DB) ([]DayRoster, error) {
	var jadwals []model.JadwalPiketModel
	if err := db.Order("day_of_week").Find(&jadwals).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load duty roster")
	}
	byDay := make(map[int]model.JadwalPiketModel, len(jadwals))
	for _, j := range jadwals {
		byDay[j.DayOfWeek] = j
	}

	roster := make([]DayRoster, 0, len(helper.DayNames))
	for day, name := range helper.DayNames {
		entry := DayRoster{DayOfWeek: day, DayName: name, Members: []RosterMember{}}
		jadwal, ok := byDay[day]
		if !ok {
			roster = append(roster, entry)
			continue
		}
		entry.UpdatedAt = jadwal.UpdatedAt

		var members []RosterMember
		err := db.Model(&model.PiketAssignmentModel{}).
			Select("users.id AS user_id, users.name, users.email").
			Joins("JOIN users ON users.id = piket_assignments.user_id").
			Where("piket_assignments.jadwal_id = ?", jadwal.ID).
			Order("users.name").
			Scan(&members).Error
		if err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load duty assignments")
		}
		if members != nil {
			entry.Members = members
		}
		roster = append(roster, entry)
	}
	return roster, nil
}

// RecentLogs: audit log reminder terbaru, maksimal `limit` baris.
func RecentLogs(db *gorm.DB, limit int) ([]model.EmailReminderLogModel, error) {
	var logs []model.EmailReminderLogModel
	if err := db.Order("sent_at DESC, id DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load reminder logs")
	}
	return logs, nil
}
