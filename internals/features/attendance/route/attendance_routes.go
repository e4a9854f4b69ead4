// file: internals/features/attendance/route/attendance_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rohisku_backend/internals/constants"
	controller "rohisku_backend/internals/features/attendance/controller"
	authMw "rohisku_backend/internals/middlewares/auth"
)

// AttendanceRoutes: semua endpoint absensi + export.
// Router yang masuk sudah melewati AuthMiddleware.
func AttendanceRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAttendanceController(db)

	attendance := api.Group("/attendance")

	// Penanda hadir: otorisasi detail (PIC/role) dicek di service
	attendance.Post("/", ctrl.MarkRegular)
	attendance.Post("/core",
		authMw.RequireCapability(constants.CapMarkCoreAttendance,
			constants.RoleErrorAdministrative("absensi inti")),
		ctrl.MarkCore,
	)

	// Riwayat
	attendance.Get("/history", ctrl.MyHistory)
	attendance.Get("/history/all",
		authMw.OnlyRoles(constants.RoleErrorAdministrative("rekap absensi"), constants.AdministrativeRoles...),
		ctrl.AllHistory,
	)
	attendance.Get("/history/:user_id", ctrl.UserHistory)

	// Export xlsx
	api.Get("/export/attendance/:session_id",
		authMw.RequireCapability(constants.CapExportAttendance,
			constants.RoleErrorAdministrative("export absensi")),
		ctrl.Export,
	)
}
