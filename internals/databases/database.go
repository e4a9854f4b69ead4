package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"rohisku_backend/internals/configs"
	attendanceModel "rohisku_backend/internals/features/attendance/model"
	notulensiModel "rohisku_backend/internals/features/notulensi/model"
	picModel "rohisku_backend/internals/features/pics/model"
	piketModel "rohisku_backend/internals/features/piket/model"
	sessionModel "rohisku_backend/internals/features/sessions/model"
	authModel "rohisku_backend/internals/features/users/auth/model"
	memberModel "rohisku_backend/internals/features/users/member/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=rohisku&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	// jalankan ringan supaya koneksi/pool "keisi" & siap
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

// Migrate menjalankan auto-migrate seluruh model.
// Unique constraint absensi (session_id, user_id, attendance_type) dan
// notulensi (session_id) ada di tag gorm pada modelnya.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&memberModel.UserModel{},
		&picModel.PicModel{},
		&sessionModel.SessionModel{},
		&sessionModel.SessionPicModel{},
		&attendanceModel.AttendanceModel{},
		&notulensiModel.NotulensiModel{},
		&piketModel.JadwalPiketModel{},
		&piketModel.PiketAssignmentModel{},
		&piketModel.EmailReminderLogModel{},
		&authModel.TokenBlacklist{},
	)
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
