package controller

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceModel "rohisku_backend/internals/features/attendance/model"
	"rohisku_backend/internals/features/sessions/dto"
	"rohisku_backend/internals/features/sessions/model"
	"rohisku_backend/internals/features/sessions/service"
	helper "rohisku_backend/internals/helpers"
)

type SessionController struct {
	DB *gorm.DB
}

func NewSessionController(db *gorm.DB) *SessionController {
	return &SessionController{DB: db}
}

func (sc *SessionController) serialize(s *model.SessionModel) fiber.Map {
	pics, _ := service.AssignedPics(sc.DB, s.ID)
	assigned := make([]fiber.Map, 0, len(pics))
	for _, p := range pics {
		assigned = append(assigned, fiber.Map{"id": p.ID, "name": p.Name})
	}

	var attendanceCount int64
	_ = sc.DB.Model(&attendanceModel.AttendanceModel{}).Where("session_id = ?", s.ID).Count(&attendanceCount).Error

	return fiber.Map{
		"id":               s.ID,
		"name":             s.Name,
		"date":             s.Date,
		"session_type":     s.SessionType,
		"is_locked":        s.IsLocked,
		"description":      s.Description,
		"created_at":       s.CreatedAt,
		"assigned_pics":    assigned,
		"attendance_count": attendanceCount,
	}
}

// GET /api/sessions
func (sc *SessionController) List(c *fiber.Ctx) error {
	var sessions []model.SessionModel
	if err := sc.DB.Order("date DESC").Find(&sessions).Error; err != nil {
		log.Println("[ERROR] Failed to fetch sessions:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve sessions")
	}

	items := make([]fiber.Map, 0, len(sessions))
	for i := range sessions {
		items = append(items, sc.serialize(&sessions[i]))
	}
	return helper.JsonOK(c, "Sessions fetched successfully", items)
}

// POST /api/sessions
func (sc *SessionController) Create(c *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, err)
	}

	s, err := service.CreateSession(sc.DB, req.Name, req.Date, req.SessionType, req.Description)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, fmt.Sprintf("Session %q created", s.Name), sc.serialize(s))
}

// GET /api/sessions/:session_id/status
func (sc *SessionController) Status(c *fiber.Ctx) error {
	sessionID, err := parseUintParam(c, "session_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	var s model.SessionModel
	if err := sc.DB.First(&s, sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Session not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load session")
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"session_id": s.ID,
		"name":       s.Name,
		"is_locked":  s.IsLocked,
	})
}

// POST /api/sessions/:session_id/lock
func (sc *SessionController) Lock(c *fiber.Ctx) error {
	sessionID, err := parseUintParam(c, "session_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	s, err2 := service.LockSession(sc.DB, sessionID)
	if err2 != nil {
		return helper.FromFiberError(c, err2)
	}
	return helper.JsonUpdated(c, "Session locked", sc.serialize(s))
}

// DELETE /api/sessions/:session_id
func (sc *SessionController) Delete(c *fiber.Ctx) error {
	sessionID, err := parseUintParam(c, "session_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	name, err2 := service.DeleteSession(sc.DB, sessionID)
	if err2 != nil {
		return helper.FromFiberError(c, err2)
	}
	return helper.JsonDeleted(c, fmt.Sprintf("Session %q deleted", name), nil)
}

// GET /api/sessions/:session_id/pics
func (sc *SessionController) GetPics(c *fiber.Ctx) error {
	sessionID, err := parseUintParam(c, "session_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	pics, err2 := service.AssignedPics(sc.DB, sessionID)
	if err2 != nil {
		return helper.FromFiberError(c, err2)
	}

	assigned := make([]fiber.Map, 0, len(pics))
	for _, p := range pics {
		assigned = append(assigned, fiber.Map{"id": p.ID, "name": p.Name, "description": p.Description})
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"session_id":    sessionID,
		"assigned_pics": assigned,
	})
}

// PUT /api/sessions/:session_id/pics — replace-all
func (sc *SessionController) AssignPics(c *fiber.Ctx) error {
	sessionID, err := parseUintParam(c, "session_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	var req dto.AssignPicsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := service.AssignPics(sc.DB, sessionID, req.PicIDs); err != nil {
		return helper.FromFiberError(c, err)
	}

	var s model.SessionModel
	if err := sc.DB.First(&s, sessionID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to reload session")
	}
	return helper.JsonUpdated(c, "PICs updated", sc.serialize(&s))
}

// DELETE /api/sessions/:session_id/pics/:pic_id
func (sc *SessionController) RemovePic(c *fiber.Ctx) error {
	sessionID, err := parseUintParam(c, "session_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}
	picID, err := parseUintParam(c, "pic_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	name, err2 := service.RemovePic(sc.DB, sessionID, picID)
	if err2 != nil {
		return helper.FromFiberError(c, err2)
	}
	return helper.JsonDeleted(c, fmt.Sprintf("Removed %s from session", name), nil)
}

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || v == 0 {
		return 0, fiber.ErrBadRequest
	}
	return uint(v), nil
}
