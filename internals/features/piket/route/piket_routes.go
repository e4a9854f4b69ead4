// file: internals/features/piket/route/piket_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rohisku_backend/internals/constants"
	controller "rohisku_backend/internals/features/piket/controller"
	"rohisku_backend/internals/features/piket/service"
	authMw "rohisku_backend/internals/middlewares/auth"
)

// PiketRoutes: roster piket + log reminder (butuh auth).
// admin adalah group /admin (path lama PUT /admin/jadwal-piket dipertahankan).
func PiketRoutes(api fiber.Router, admin fiber.Router, db *gorm.DB, mailer service.Mailer) {
	ctrl := controller.NewPiketController(db, mailer)

	piket := api.Group("/piket")
	piket.Get("/", ctrl.Roster)

	manage := authMw.RequireCapability(constants.CapManagePiket,
		constants.RoleErrorAdministrative("jadwal piket"))
	piket.Get("/logs",
		authMw.RequireCapability(constants.CapViewReminderLogs,
			constants.RoleErrorAdministrative("log reminder piket")),
		ctrl.Logs,
	)
	piket.Post("/test",
		authMw.OnlyRoles(constants.RoleErrorAdmin("test reminder piket"), constants.AdminOnly...),
		ctrl.TestReminder,
	)
	piket.Delete("/:day_of_week", manage, ctrl.ClearDay)

	admin.Put("/jadwal-piket", manage, ctrl.UpdateDay)
}

// PiketCronRoutes: endpoint publik ber-secret untuk scheduler eksternal.
func PiketCronRoutes(app *fiber.App, db *gorm.DB, mailer service.Mailer) {
	ctrl := controller.NewPiketController(db, mailer)
	app.Post("/api/cron/piket-reminder", ctrl.CronReminder)
}
