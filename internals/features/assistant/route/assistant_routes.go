// file: internals/features/assistant/route/assistant_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "rohisku_backend/internals/features/assistant/controller"
	"rohisku_backend/internals/features/assistant/service"
)

func AssistantRoutes(api fiber.Router, db *gorm.DB, assistant *service.Assistant) {
	ctrl := controller.NewAssistantController(db, assistant)

	api.Post("/chatbot", ctrl.Chatbot)
	api.Post("/attendance/format", ctrl.FormatAttendance)
	api.Get("/feed", ctrl.Feed)
}
