// file: internals/features/sessions/route/session_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rohisku_backend/internals/constants"
	controller "rohisku_backend/internals/features/sessions/controller"
	authMw "rohisku_backend/internals/middlewares/auth"
)

func SessionRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewSessionController(db)

	sessions := api.Group("/sessions")
	sessions.Get("/", ctrl.List)
	sessions.Get("/:session_id/status", ctrl.Status)
	sessions.Get("/:session_id/pics", ctrl.GetPics)

	manage := authMw.RequireCapability(constants.CapManageSessions,
		constants.RoleErrorAdministrative("sesi"))
	sessions.Post("/", manage, ctrl.Create)
	sessions.Post("/:session_id/lock", manage, ctrl.Lock)
	sessions.Delete("/:session_id", manage, ctrl.Delete)
	sessions.Put("/:session_id/pics", manage, ctrl.AssignPics)
	sessions.Delete("/:session_id/pics/:pic_id", manage, ctrl.RemovePic)
}
