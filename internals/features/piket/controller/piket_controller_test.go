package controller

import (
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"rohisku_backend/internals/configs"
	"rohisku_backend/internals/features/piket/model"
	memberModel "rohisku_backend/internals/features/users/member/model"
)

type noopMailer struct{}

func (noopMailer) Send(_, _ string, _ []string) ([]string, error) { return nil, nil }

func newCronApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&memberModel.UserModel{},
		&model.JadwalPiketModel{},
		&model.PiketAssignmentModel{},
		&model.EmailReminderLogModel{},
	))

	app := fiber.New()
	ctrl := NewPiketController(db, noopMailer{})
	app.Post("/api/cron/piket-reminder", ctrl.CronReminder)
	return app
}

func TestCronReminderWithoutConfiguredSecret(t *testing.T) {
	prev := configs.CronSecretToken
	configs.CronSecretToken = ""
	t.Cleanup(func() { configs.CronSecretToken = prev })

	app := newCronApp(t)
	req := httptest.NewRequest(fiber.MethodPost, "/api/cron/piket-reminder", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestCronReminderRejectsBadSecret(t *testing.T) {
	prev := configs.CronSecretToken
	configs.CronSecretToken = "rahasia"
	t.Cleanup(func() { configs.CronSecretToken = prev })

	app := newCronApp(t)

	req := httptest.NewRequest(fiber.MethodPost, "/api/cron/piket-reminder", nil)
	req.Header.Set("X-Cron-Secret", "salah")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Tanpa header dan tanpa body → tetap 401
	req = httptest.NewRequest(fiber.MethodPost, "/api/cron/piket-reminder", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestCronReminderAcceptsHeaderSecret(t *testing.T) {
	prev := configs.CronSecretToken
	configs.CronSecretToken = "rahasia"
	t.Cleanup(func() { configs.CronSecretToken = prev })

	app := newCronApp(t)
	req := httptest.NewRequest(fiber.MethodPost, "/api/cron/piket-reminder", nil)
	req.Header.Set("X-Cron-Secret", "rahasia")
	resp, err := app.Test(req)
	require.NoError(t, err)

	// Tidak ada jadwal hari ini → run tercatat skipped, tetap 200
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
