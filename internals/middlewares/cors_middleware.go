package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"rohisku_backend/internals/configs"
)

// CorsMiddleware membuat middleware CORS.
// Frontend SPA mengirim cookie, jadi credentials harus diizinkan.
func CorsMiddleware() fiber.Handler {
	origins := configs.GetEnv("FRONTEND_ORIGIN", strings.Join([]string{
		"http://localhost:3000",
		"http://localhost:5173",
	}, ", "))
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Cron-Secret",
		AllowCredentials: true,
	})
}
