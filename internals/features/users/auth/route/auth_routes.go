// file: internals/features/users/auth/route/auth_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "rohisku_backend/internals/features/users/auth/controller"
	rateLimiter "rohisku_backend/internals/middlewares"
	authMw "rohisku_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	auth := app.Group("/api/auth")

	// 🔓 Public
	auth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)

	// 🔒 Butuh token valid
	protected := auth.Group("", authMw.AuthMiddleware(db))
	protected.Post("/logout", authController.Logout)
	protected.Get("/me", authController.Me)

	app.Put("/api/profile/password", authMw.AuthMiddleware(db), authController.ChangePassword)
}
