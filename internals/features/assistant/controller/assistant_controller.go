package controller

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rohisku_backend/internals/features/assistant/service"
	notulensiModel "rohisku_backend/internals/features/notulensi/model"
	sessionModel "rohisku_backend/internals/features/sessions/model"
	helper "rohisku_backend/internals/helpers"
)

const feedPreviewLen = 150

type AssistantController struct {
	DB        *gorm.DB
	Assistant *service.Assistant
}

func NewAssistantController(db *gorm.DB, assistant *service.Assistant) *AssistantController {
	return &AssistantController{DB: db, Assistant: assistant}
}

type chatbotRequest struct {
	Message string `json:"message"`
}

// ✅ POST /api/chatbot
func (ctrl *AssistantController) Chatbot(c *fiber.Ctx) error {
	var body chatbotRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(body.Message) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Message cannot be empty")
	}

	answer := ctrl.Assistant.Chat(c.Context(), body.Message)
	return helper.JsonOK(c, "Chatbot response generated", fiber.Map{"response": answer})
}

type formatRequest struct {
	Text string `json:"text"`
}

// ✅ POST /api/attendance/format
func (ctrl *AssistantController) FormatAttendance(c *fiber.Ctx) error {
	var body formatRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	result := ctrl.Assistant.Format(c.Context(), body.Text)
	return helper.JsonOK(c, "Attendance formatted", fiber.Map{"result": result})
}

type feedNoteRow struct {
	notulensiModel.NotulensiModel
	SessionName string `json:"session_name"`
	SessionDate string `json:"session_date"`
}

// ✅ GET /api/feed — 3 sesi terdekat + 3 notulen terbaru dengan ringkasan AI.
// Endpoint ini tidak pernah 500: error apapun menurunkan hasil ke list kosong.
func (ctrl *AssistantController) Feed(c *fiber.Ctx) error {
	upcoming := []fiber.Map{}
	recent := []fiber.Map{}

	today := helper.NowWIB().Format("2006-01-02")
	var sessions []sessionModel.SessionModel
	if err := ctrl.DB.Where("date >= ?", today).Order("date ASC").Limit(3).Find(&sessions).Error; err != nil {
		log.Println("[ERROR] Feed: failed to load upcoming sessions:", err)
		sessions = nil
	}
	for _, s := range sessions {
		picNames := "No PIC assigned"
		var names []string
		err := ctrl.DB.Table("session_pics").
			Select("pics.name").
			Joins("JOIN pics ON pics.id = session_pics.pic_id").
			Where("session_pics.session_id = ?", s.ID).
			Scan(&names).Error
		if err == nil && len(names) > 0 {
			picNames = strings.Join(names, ", ")
		}
		upcoming = append(upcoming, fiber.Map{
			"id":   s.ID,
			"name": s.Name,
			"date": s.Date,
			"pic":  picNames,
		})
	}

	var notes []feedNoteRow
	err := ctrl.DB.Model(&notulensiModel.NotulensiModel{}).
		Select("notulensi.*, sessions.name AS session_name, sessions.date AS session_date").
		Joins("JOIN sessions ON sessions.id = notulensi.session_id").
		Order("COALESCE(notulensi.updated_at, notulensi.created_at) DESC").
		Limit(3).
		Scan(&notes).Error
	if err != nil {
		log.Println("[ERROR] Feed: failed to load recent notulensi:", err)
		notes = nil
	}
	for _, n := range notes {
		summary := ctrl.Assistant.Summarize(c.Context(), n.Content)
		if summary == service.SummaryFallback {
			summary = service.PlainPreview(n.Content, feedPreviewLen)
		}
		when := n.CreatedAt
		if n.UpdatedAt != nil {
			when = *n.UpdatedAt
		}
		recent = append(recent, fiber.Map{
			"id":           n.ID,
			"session_name": n.SessionName,
			"session_date": n.SessionDate,
			"summary":      summary,
			"updated_at":   when.In(helper.WIB).Format("02 Jan 2006"),
		})
	}

	return helper.JsonOK(c, "Feed fetched successfully", fiber.Map{
		"upcoming": upcoming,
		"recent":   recent,
	})
}
