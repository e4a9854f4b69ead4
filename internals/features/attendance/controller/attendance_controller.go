package controller

import (
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rohisku_backend/internals/constants"
	"rohisku_backend/internals/features/attendance/dto"
	"rohisku_backend/internals/features/attendance/model"
	"rohisku_backend/internals/features/attendance/service"
	memberModel "rohisku_backend/internals/features/users/member/model"
	helper "rohisku_backend/internals/helpers"
	authMw "rohisku_backend/internals/middlewares/auth"
)

var validate = validator.New()

type AttendanceController struct {
	DB *gorm.DB
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{DB: db}
}

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name)
	}
	return uint(v), nil
}

func (ctrl *AttendanceController) mark(c *fiber.Ctx, attendanceType string) error {
	var body dto.MarkAttendanceRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	actor := authMw.CurrentUser(c)
	att, err := service.Mark(ctrl.DB, actor, body.SessionID, body.UserID, body.Status, attendanceType)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	log.Printf("[SUCCESS] Attendance recorded: session=%d user=%d type=%s status=%s\n",
		att.SessionID, att.UserID, att.AttendanceType, att.Status)
	return helper.JsonCreated(c, "Attendance recorded successfully", att)
}

// ✅ POST /api/attendance
func (ctrl *AttendanceController) MarkRegular(c *fiber.Ctx) error {
	return ctrl.mark(c, model.TypeRegular)
}

// ✅ POST /api/attendance/core
func (ctrl *AttendanceController) MarkCore(c *fiber.Ctx) error {
	return ctrl.mark(c, model.TypeCore)
}

// ✅ GET /api/attendance/history — riwayat milik sendiri
func (ctrl *AttendanceController) MyHistory(c *fiber.Ctx) error {
	actor := authMw.CurrentUser(c)
	if actor == nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	return ctrl.historyFor(c, actor.ID)
}

// ✅ GET /api/attendance/history/:user_id — administratif atau diri sendiri
func (ctrl *AttendanceController) UserHistory(c *fiber.Ctx) error {
	userID, err := parseUintParam(c, "user_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	actor := authMw.CurrentUser(c)
	if actor == nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	if actor.ID != userID && !actor.IsAdministrative() {
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorAdministrative("attendance history"))
	}
	return ctrl.historyFor(c, userID)
}

func (ctrl *AttendanceController) historyFor(c *fiber.Ctx, userID uint) error {
	records, err := service.History(ctrl.DB, userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Attendance history fetched successfully", fiber.Map{
		"records": records,
		"summary": service.Summarize(records),
	})
}

// ✅ GET /api/attendance/history/all — rekap per anggota (administratif)
func (ctrl *AttendanceController) AllHistory(c *fiber.Ctx) error {
	var users []memberModel.UserModel
	if err := ctrl.DB.Order("name").Find(&users).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load members")
	}

	var records []model.AttendanceModel
	if err := ctrl.DB.Find(&records).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load attendance records")
	}
	byUser := make(map[uint][]model.AttendanceModel)
	for _, r := range records {
		byUser[r.UserID] = append(byUser[r.UserID], r)
	}

	result := make([]fiber.Map, 0, len(users))
	for _, u := range users {
		result = append(result, fiber.Map{
			"user_id": u.ID,
			"name":    u.Name,
			"email":   u.Email,
			"role":    u.Role,
			"summary": service.Summarize(byUser[u.ID]),
		})
	}
	return helper.JsonOK(c, "Attendance summaries fetched successfully", result)
}
