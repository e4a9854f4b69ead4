// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	assistantRoute "rohisku_backend/internals/features/assistant/route"
	assistantService "rohisku_backend/internals/features/assistant/service"
	attendanceRoute "rohisku_backend/internals/features/attendance/route"
	notulensiRoute "rohisku_backend/internals/features/notulensi/route"
	picRoute "rohisku_backend/internals/features/pics/route"
	piketRoute "rohisku_backend/internals/features/piket/route"
	piketService "rohisku_backend/internals/features/piket/service"
	sessionRoute "rohisku_backend/internals/features/sessions/route"
	authRoute "rohisku_backend/internals/features/users/auth/route"
	memberRoute "rohisku_backend/internals/features/users/member/route"
	rateLimiter "rohisku_backend/internals/middlewares"
	authMw "rohisku_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	app.Use(rateLimiter.GlobalRateLimiter())

	// Sink eksternal dirakit sekali di sini dan di-share ke route features
	mailer := piketService.NewSendgridMailer()

	var completer assistantService.Completer
	if groq, err := assistantService.NewGroqCompleter(); err != nil {
		log.Println("[WARNING] AI assistant disabled:", err)
	} else {
		completer = groq
	}
	assistant := assistantService.NewAssistant(completer)

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, db)

	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app, db)

	log.Println("[INFO] Setting up cron routes...")
	piketRoute.PiketCronRoutes(app, db, mailer)

	// ===================== PROTECTED =====================
	log.Println("[INFO] Setting up protected /api group...")
	api := app.Group("/api", authMw.AuthMiddleware(db))
	admin := app.Group("/admin", authMw.AuthMiddleware(db))

	log.Println("[INFO] Mounting Member routes...")
	memberRoute.MemberRoutes(api, db)

	log.Println("[INFO] Mounting PIC routes...")
	picRoute.PicRoutes(api, db)

	log.Println("[INFO] Mounting Session routes...")
	sessionRoute.SessionRoutes(api, db)

	log.Println("[INFO] Mounting Attendance routes...")
	attendanceRoute.AttendanceRoutes(api, db)

	log.Println("[INFO] Mounting Notulensi routes...")
	notulensiRoute.NotulensiRoutes(api, db)

	log.Println("[INFO] Mounting Piket routes...")
	piketRoute.PiketRoutes(api, admin, db, mailer)

	log.Println("[INFO] Mounting Assistant routes...")
	assistantRoute.AssistantRoutes(api, db, assistant)
}
