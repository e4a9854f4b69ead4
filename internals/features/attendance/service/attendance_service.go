package service

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rohisku_backend/internals/features/attendance/model"
	sessionModel "rohisku_backend/internals/features/sessions/model"
	memberModel "rohisku_backend/internals/features/users/member/model"
	helper "rohisku_backend/internals/helpers"
)

// Mark mencatat kehadiran (sesi, user, jenis). Urutan gerbang tetap:
// validasi input → sesi ada → sesi belum terkunci → otorisasi → duplikat.
// Pre-check duplikat hanya untuk pesan cepat; penjaga sesungguhnya adalah
// unique constraint — pelanggarannya dipetakan ke 409 yang sama.
func Mark(db *gorm.DB, actor *memberModel.UserModel, sessionID, userID uint, status, attendanceType string) (*model.AttendanceModel, error) {
	if sessionID == 0 || userID == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Missing required fields")
	}
	if !model.ValidStatus(status) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid attendance status")
	}
	if attendanceType != model.TypeRegular && attendanceType != model.TypeCore {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid attendance type")
	}

	var session sessionModel.SessionModel
	if err := db.First(&session, sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Session not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load session")
	}

	// Gerbang kunci berlaku untuk semua role, tanpa override.
	if session.IsLocked {
		return nil, fiber.NewError(fiber.StatusForbidden, "Session is locked")
	}

	switch attendanceType {
	case model.TypeRegular:
		if !memberModel.CanMarkAttendance(actor, session.PicID) {
			return nil, fiber.NewError(fiber.StatusForbidden, "No permission to mark attendance")
		}
	case model.TypeCore:
		if actor == nil || !actor.IsCoreUser() {
			return nil, fiber.NewError(fiber.StatusForbidden, "Access denied")
		}
		var target memberModel.UserModel
		if err := db.First(&target, userID).Error; err != nil || !target.IsCoreUser() {
			return nil, fiber.NewError(fiber.StatusBadRequest, "User is not a core member")
		}
	}

	var existing model.AttendanceModel
	err := db.Where("session_id = ? AND user_id = ? AND attendance_type = ?", sessionID, userID, attendanceType).
		First(&existing).Error
	if err == nil {
		return nil, fiber.NewError(fiber.StatusConflict, "Attendance already recorded")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to check attendance")
	}

	att := model.AttendanceModel{
		SessionID:      sessionID,
		UserID:         userID,
		Status:         status,
		AttendanceType: attendanceType,
		Timestamp:      helper.NowWIB(),
	}
	if err := db.Create(&att).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, fiber.NewError(fiber.StatusConflict, "Attendance already recorded")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to record attendance")
	}
	return &att, nil
}

// Summary menghitung rekap status dari kumpulan record.
type Summary struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Excused int `json:"excused"`
	Late    int `json:"late"`
	Total   int `json:"total"`
}

func Summarize(records []model.AttendanceModel) Summary {
	s := Summary{Total: len(records)}
	for _, r := range records {
		switch r.Status {
		case model.StatusPresent:
			s.Present++
		case model.StatusAbsent:
			s.Absent++
		case model.StatusExcused:
			s.Excused++
		case model.StatusLate:
			s.Late++
		}
	}
	return s
}

// History: seluruh record milik satu user.
func History(db *gorm.DB, userID uint) ([]model.AttendanceModel, error) {
	var records []model.AttendanceModel
	if err := db.Where("user_id = ?", userID).Order("timestamp DESC").Find(&records).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load attendance history")
	}
	return records, nil
}

// SessionRecord: record absensi + identitas user, untuk export.
type SessionRecord struct {
	model.AttendanceModel
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func RecordsForSession(db *gorm.DB, sessionID uint) ([]SessionRecord, error) {
	var records []SessionRecord
	err := db.Model(&model.AttendanceModel{}).
		Select("attendances.*, users.name, users.email, users.role").
		Joins("JOIN users ON users.id = attendances.user_id").
		Where("attendances.session_id = ?", sessionID).
		Order("users.name").
		Scan(&records).Error
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load attendance records")
	}
	return records, nil
}
