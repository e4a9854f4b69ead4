package controller

import (
	"crypto/subtle"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rohisku_backend/internals/configs"
	"rohisku_backend/internals/features/piket/model"
	"rohisku_backend/internals/features/piket/service"
	helper "rohisku_backend/internals/helpers"
)

const reminderLogLimit = 100

type PiketController struct {
	DB     *gorm.DB
	Mailer service.Mailer
}

func NewPiketController(db *gorm.DB, mailer service.Mailer) *PiketController {
	return &PiketController{DB: db, Mailer: mailer}
}

type updatePiketRequest struct {
	DayOfWeek *int   `json:"day_of_week"`
	UserIDs   []uint `json:"user_ids"`
}

// ✅ PUT /admin/jadwal-piket
func (ctrl *PiketController) UpdateDay(c *fiber.Ctx) error {
	var body updatePiketRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if body.DayOfWeek == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Missing day_of_week")
	}

	jadwal, err := service.UpdateDay(ctrl.DB, *body.DayOfWeek, body.UserIDs)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	log.Printf("[SUCCESS] Duty roster updated: day=%s assignments=%d\n", jadwal.DayName, len(body.UserIDs))
	return helper.JsonUpdated(c, "Duty roster updated successfully", jadwal)
}

// ✅ DELETE /api/piket/:day_of_week
func (ctrl *PiketController) ClearDay(c *fiber.Ctx) error {
	day, err := strconv.Atoi(c.Params("day_of_week"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid day_of_week")
	}
	jadwal, svcErr := service.ClearDay(ctrl.DB, day)
	if svcErr != nil {
		return helper.FromFiberError(c, svcErr)
	}
	return helper.JsonDeleted(c, "Duty roster cleared successfully", jadwal)
}

// ✅ GET /api/piket
func (ctrl *PiketController) Roster(c *fiber.Ctx) error {
	roster, err := service.Roster(ctrl.DB)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Duty roster fetched successfully", roster)
}

// ✅ GET /api/piket/logs
func (ctrl *PiketController) Logs(c *fiber.Ctx) error {
	logs, err := service.RecentLogs(ctrl.DB, reminderLogLimit)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Reminder logs fetched successfully", logs)
}

type testReminderRequest struct {
	DayOfWeek *int `json:"day_of_week"`
}

// ✅ POST /api/piket/test — kirim manual untuk satu hari (admin)
func (ctrl *PiketController) TestReminder(c *fiber.Ctx) error {
	var body testReminderRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	day := helper.DayOfWeekWIB(helper.NowWIB())
	if body.DayOfWeek != nil {
		day = *body.DayOfWeek
	}
	if day < 0 || day > 6 {
		return helper.JsonError(c, fiber.StatusBadRequest, "day_of_week must be between 0 and 6")
	}

	result := service.RunReminderForDay(ctrl.DB, ctrl.Mailer, day)
	return ctrl.respondReminder(c, result)
}

type cronReminderRequest struct {
	Secret string `json:"secret"`
}

// ✅ POST /api/cron/piket-reminder — dipicu scheduler eksternal.
// Secret via header X-Cron-Secret atau field body; tanpa konfigurasi → 503.
func (ctrl *PiketController) CronReminder(c *fiber.Ctx) error {
	configured := configs.CronSecretToken
	if configured == "" {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Reminder cron is not configured")
	}

	provided := c.Get("X-Cron-Secret")
	if provided == "" {
		var body cronReminderRequest
		if err := c.BodyParser(&body); err == nil {
			provided = body.Secret
		}
	}
	if subtle.ConstantTimeCompare([]byte(provided), []byte(configured)) != 1 {
		log.Println("[WARNING] Piket reminder cron called with invalid secret")
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid cron secret")
	}

	result := service.RunReminder(ctrl.DB, ctrl.Mailer, helper.NowWIB())
	return ctrl.respondReminder(c, result)
}

func (ctrl *PiketController) respondReminder(c *fiber.Ctx, result *service.ReminderResult) error {
	switch result.Status {
	case model.ReminderFailed:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": result.Message,
			"data":    result,
		})
	default:
		return helper.JsonOK(c, result.Message, result)
	}
}
