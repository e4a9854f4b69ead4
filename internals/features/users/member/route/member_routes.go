// file: internals/features/users/member/route/member_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rohisku_backend/internals/constants"
	controller "rohisku_backend/internals/features/users/member/controller"
	authMw "rohisku_backend/internals/middlewares/auth"
)

// MemberRoutes: roster anggota + foto profil (router sudah ber-auth).
func MemberRoutes(api fiber.Router, db *gorm.DB) {
	memberCtrl := controller.NewMemberController(db)
	profileCtrl := controller.NewProfileController(db)

	members := api.Group("/members")
	members.Get("/", memberCtrl.List)

	manage := authMw.RequireCapability(constants.CapManageMembers,
		constants.RoleErrorAdministrative("manajemen anggota"))
	members.Post("/", manage, memberCtrl.Create)
	members.Post("/batch-add", manage, memberCtrl.BatchAdd)
	members.Post("/batch-delete", manage, memberCtrl.BatchDelete)
	members.Delete("/:user_id", manage, memberCtrl.Delete)
	members.Put("/:user_id/role", manage, memberCtrl.ChangeRole)
	members.Put("/:user_id/pic", manage, memberCtrl.AssignPic)
	members.Put("/:user_id/attendance-permission", manage, memberCtrl.ToggleAttendancePermission)

	// Foto profil: upload milik sendiri, tampil untuk semua yang login
	api.Post("/profile/picture", profileCtrl.UploadPicture)
	api.Get("/profile/picture/:user_id", profileCtrl.ServePicture)
}
