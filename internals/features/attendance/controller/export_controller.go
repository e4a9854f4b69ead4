package controller

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"rohisku_backend/internals/features/attendance/model"
	"rohisku_backend/internals/features/attendance/service"
	sessionModel "rohisku_backend/internals/features/sessions/model"
	helper "rohisku_backend/internals/helpers"
)

// ✅ GET /api/export/attendance/:session_id
// Menghasilkan file .xlsx: sheet ringkasan + sheet detail per baris absensi.
func (ctrl *AttendanceController) Export(c *fiber.Ctx) error {
	sessionID, err := parseUintParam(c, "session_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var session sessionModel.SessionModel
	if err := ctrl.DB.First(&session, sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Session not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load session")
	}

	records, err := service.RecordsForSession(ctrl.DB, sessionID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if len(records) == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "No attendance records for this session")
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Attendance"
	f.SetSheetName(f.GetSheetName(0), sheet)

	plain := make([]model.AttendanceModel, 0, len(records))
	for _, r := range records {
		plain = append(plain, r.AttendanceModel)
	}
	summary := service.Summarize(plain)

	// Blok ringkasan di atas, detail di bawahnya
	f.SetCellValue(sheet, "A1", "Session")
	f.SetCellValue(sheet, "B1", session.Name)
	f.SetCellValue(sheet, "A2", "Date")
	f.SetCellValue(sheet, "B2", session.Date)
	f.SetCellValue(sheet, "A3", "Present")
	f.SetCellValue(sheet, "B3", summary.Present)
	f.SetCellValue(sheet, "A4", "Absent")
	f.SetCellValue(sheet, "B4", summary.Absent)
	f.SetCellValue(sheet, "A5", "Excused")
	f.SetCellValue(sheet, "B5", summary.Excused)
	f.SetCellValue(sheet, "A6", "Late")
	f.SetCellValue(sheet, "B6", summary.Late)
	f.SetCellValue(sheet, "A7", "Total")
	f.SetCellValue(sheet, "B7", summary.Total)

	headers := []string{"Name", "Email", "Role", "Status", "Type", "Timestamp"}
	headerRow := 9
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		f.SetCellValue(sheet, cell, h)
	}
	for i, r := range records {
		row := headerRow + 1 + i
		values := []any{r.Name, r.Email, r.Role, r.Status, r.AttendanceType,
			r.Timestamp.In(helper.WIB).Format("2006-01-02 15:04:05")}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Println("[ERROR] Failed to build attendance export:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build export file")
	}

	filename := fmt.Sprintf("attendance_session_%d.xlsx", sessionID)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return c.Send(buf.Bytes())
}
