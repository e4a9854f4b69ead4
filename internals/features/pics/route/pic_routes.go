// file: internals/features/pics/route/pic_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rohisku_backend/internals/constants"
	controller "rohisku_backend/internals/features/pics/controller"
	authMw "rohisku_backend/internals/middlewares/auth"
)

func PicRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPicController(db)

	pics := api.Group("/pics")
	pics.Get("/", ctrl.List)

	manage := authMw.RequireCapability(constants.CapManageMembers,
		constants.RoleErrorAdministrative("kelompok PIC"))
	pics.Post("/", manage, ctrl.Create)
	pics.Delete("/:pic_id", manage, ctrl.Delete)
}
