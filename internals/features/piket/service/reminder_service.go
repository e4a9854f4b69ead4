package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"rohisku_backend/internals/features/piket/model"
	memberModel "rohisku_backend/internals/features/users/member/model"
	helper "rohisku_backend/internals/helpers"
)

// ReminderResult: ringkasan satu run reminder, dikembalikan ke pemanggil
// dan dicatat sebagai satu baris EmailReminderLogModel.
type ReminderResult struct {
	DayOfWeek  int      `json:"day_of_week"`
	DayName    string   `json:"day_name"`
	Status     string   `json:"status"`
	Recipients []string `json:"recipients"`
	Failed     []string `json:"failed,omitempty"`
	Message    string   `json:"message"`
}

func writeLog(db *gorm.DB, result *ReminderResult, errMsg *string) {
	recipientsJSON, _ := json.Marshal(result.Recipients)
	entry := model.EmailReminderLogModel{
		DayOfWeek:       result.DayOfWeek,
		DayName:         result.DayName,
		RecipientsCount: len(result.Recipients),
		Recipients:      string(recipientsJSON),
		SentAt:          helper.NowWIB(),
		Status:          result.Status,
		ErrorMessage:    errMsg,
	}
	// Log audit tidak boleh menggagalkan run — cukup tercatat di stdout
	if err := db.Create(&entry).Error; err != nil {
		log.Println("[ERROR] Failed to write reminder log:", err)
	}
}

// RunReminder menjalankan satu siklus reminder piket untuk waktu `now`:
// hari WIB → jadwal → assignment → alamat unik → kirim. Apapun jalurnya,
// tepat satu baris log ditulis per run.
func RunReminder(db *gorm.DB, mailer Mailer, now time.Time) *ReminderResult {
	return RunReminderForDay(db, mailer, helper.DayOfWeekWIB(now))
}

// RunReminderForDay: siklus yang sama untuk hari tertentu (dipakai endpoint
// test manual). day diasumsikan sudah tervalidasi 0..6.
func RunReminderForDay(db *gorm.DB, mailer Mailer, day int) *ReminderResult {
	result := &ReminderResult{
		DayOfWeek:  day,
		DayName:    helper.DayNames[day],
		Recipients: []string{},
	}

	var jadwal model.JadwalPiketModel
	err := db.Where("day_of_week = ?", day).First(&jadwal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		result.Status = model.ReminderSkipped
		result.Message = fmt.Sprintf("No duty roster for %s", result.DayName)
		writeLog(db, result, nil)
		return result
	}
	if err != nil {
		result.Status = model.ReminderFailed
		result.Message = "Failed to load duty roster"
		msg := err.Error()
		writeLog(db, result, &msg)
		return result
	}

	var assignments []model.PiketAssignmentModel
	if err := db.Where("jadwal_id = ?", jadwal.ID).Find(&assignments).Error; err != nil {
		result.Status = model.ReminderFailed
		result.Message = "Failed to load duty assignments"
		msg := err.Error()
		writeLog(db, result, &msg)
		return result
	}
	if len(assignments) == 0 {
		result.Status = model.ReminderSkipped
		result.Message = fmt.Sprintf("No members assigned for %s", result.DayName)
		writeLog(db, result, nil)
		return result
	}

	userIDs := make([]uint, 0, len(assignments))
	for _, a := range assignments {
		userIDs = append(userIDs, a.UserID)
	}
	var users []memberModel.UserModel
	if err := db.Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		result.Status = model.ReminderFailed
		result.Message = "Failed to load assigned members"
		msg := err.Error()
		writeLog(db, result, &msg)
		return result
	}

	seen := map[string]bool{}
	for _, u := range users {
		if u.Email == "" || seen[u.Email] {
			continue
		}
		seen[u.Email] = true
		result.Recipients = append(result.Recipients, u.Email)
	}
	if len(result.Recipients) == 0 {
		result.Status = model.ReminderFailed
		result.Message = "Assigned members have no email addresses"
		msg := result.Message
		writeLog(db, result, &msg)
		return result
	}

	subject := fmt.Sprintf("Pengingat Piket Rohis — %s", result.DayName)
	body := fmt.Sprintf(
		"Assalamu'alaikum,\n\nHari ini (%s) adalah jadwal piket kamu. Mohon hadir dan laksanakan tugas piket sesuai jadwal.\n\nJazakumullahu khairan,\nRohis",
		result.DayName,
	)

	failed, err := mailer.Send(subject, body, result.Recipients)
	result.Failed = failed
	switch {
	case err != nil:
		result.Status = model.ReminderFailed
		result.Message = "Failed to send reminder emails"
		msg := err.Error()
		writeLog(db, result, &msg)
	case len(failed) > 0:
		result.Status = model.ReminderPartial
		result.Message = fmt.Sprintf("Sent to %d of %d recipients", len(result.Recipients)-len(failed), len(result.Recipients))
		msg := fmt.Sprintf("failed recipients: %v", failed)
		writeLog(db, result, &msg)
	default:
		result.Status = model.ReminderSuccess
		result.Message = fmt.Sprintf("Reminder sent to %d recipients", len(result.Recipients))
		writeLog(db, result, nil)
	}

	log.Printf("[INFO] Piket reminder run: day=%s status=%s recipients=%d\n",
		result.DayName, result.Status, len(result.Recipients))
	return result
}
