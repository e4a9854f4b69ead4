package controller

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rohisku_backend/internals/features/notulensi/model"
	"rohisku_backend/internals/features/notulensi/service"
	sessionModel "rohisku_backend/internals/features/sessions/model"
	helper "rohisku_backend/internals/helpers"
	authMw "rohisku_backend/internals/middlewares/auth"
)

type NotulensiController struct {
	DB *gorm.DB
}

func NewNotulensiController(db *gorm.DB) *NotulensiController {
	return &NotulensiController{DB: db}
}

type saveNotulensiRequest struct {
	SessionID uint   `json:"session_id"`
	Content   string `json:"content"`
}

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name)
	}
	return uint(v), nil
}

// ✅ GET /api/notulensi — daftar sesi + status notulen masing-masing
func (ctrl *NotulensiController) List(c *fiber.Ctx) error {
	var sessions []sessionModel.SessionModel
	if err := ctrl.DB.Order("date DESC, id DESC").Find(&sessions).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load sessions")
	}

	var notes []model.NotulensiModel
	if err := ctrl.DB.Find(&notes).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load notulensi")
	}
	bySession := make(map[uint]*model.NotulensiModel, len(notes))
	for i := range notes {
		bySession[notes[i].SessionID] = &notes[i]
	}

	result := make([]fiber.Map, 0, len(sessions))
	for _, s := range sessions {
		entry := fiber.Map{
			"session_id":    s.ID,
			"session_name":  s.Name,
			"session_date":  s.Date,
			"has_notulensi": false,
		}
		if note, ok := bySession[s.ID]; ok {
			entry["has_notulensi"] = true
			entry["notulensi"] = note
		}
		result = append(result, entry)
	}
	return helper.JsonOK(c, "Notulensi list fetched successfully", result)
}

// ✅ GET /api/notulensi/:session_id
func (ctrl *NotulensiController) Get(c *fiber.Ctx) error {
	sessionID, err := parseUintParam(c, "session_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	note, err := service.BySession(ctrl.DB, sessionID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	canEdit := false
	if actor := authMw.CurrentUser(c); actor != nil {
		canEdit = actor.IsAdministrative()
	}
	return helper.JsonOK(c, "Notulensi fetched successfully", fiber.Map{
		"session_id": sessionID,
		"notulensi":  note,
		"can_edit":   canEdit,
	})
}

// ✅ POST /api/notulensi — upsert per sesi (administratif)
func (ctrl *NotulensiController) Save(c *fiber.Ctx) error {
	var body saveNotulensiRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if body.SessionID == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Missing session_id")
	}

	note, created, err := service.Save(ctrl.DB, body.SessionID, body.Content)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	if created {
		log.Printf("[SUCCESS] Notulensi created for session %d\n", body.SessionID)
		return helper.JsonCreated(c, "Notulensi saved successfully", note)
	}
	log.Printf("[SUCCESS] Notulensi updated for session %d\n", body.SessionID)
	return helper.JsonUpdated(c, "Notulensi updated successfully", note)
}

// ✅ DELETE /api/notulensi/by-id/:id
func (ctrl *NotulensiController) Delete(c *fiber.Ctx) error {
	noteID, err := parseUintParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := service.Delete(ctrl.DB, noteID); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Notulensi deleted successfully", fiber.Map{"id": noteID})
}
