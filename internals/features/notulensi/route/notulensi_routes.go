// file: internals/features/notulensi/route/notulensi_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rohisku_backend/internals/constants"
	controller "rohisku_backend/internals/features/notulensi/controller"
	authMw "rohisku_backend/internals/middlewares/auth"
)

func NotulensiRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewNotulensiController(db)

	notulensi := api.Group("/notulensi")

	// Semua anggota boleh membaca
	notulensi.Get("/", ctrl.List)
	notulensi.Get("/:session_id", ctrl.Get)

	// Tulis/hapus khusus pengurus
	manage := authMw.RequireCapability(constants.CapManageNotulensi,
		constants.RoleErrorAdministrative("notulensi"))
	notulensi.Post("/", manage, ctrl.Save)
	notulensi.Delete("/by-id/:id", manage, ctrl.Delete)
}
