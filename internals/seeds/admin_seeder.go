package seeds

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"rohisku_backend/internals/configs"
	"rohisku_backend/internals/constants"
	memberModel "rohisku_backend/internals/features/users/member/model"
	memberService "rohisku_backend/internals/features/users/member/service"
)

// SeedAdminUser memastikan minimal ada satu akun admin supaya sistem bisa
// dipakai setelah deploy kosong. Idempotent: tidak menyentuh admin yang
// sudah ada.
func SeedAdminUser(db *gorm.DB) {
	email := configs.GetEnv("SEED_ADMIN_EMAIL", "admin@rohis.sch.id")
	name := configs.GetEnv("SEED_ADMIN_NAME", "Admin Rohis")

	var existing memberModel.UserModel
	err := db.Where("role = ?", constants.RoleAdmin).First(&existing).Error
	if err == nil {
		log.Println("[INFO] Admin seeder: admin account already exists, skipping")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Println("[ERROR] Admin seeder: failed to check existing admin:", err)
		return
	}

	hash, err := memberService.HashDefaultPassword()
	if err != nil {
		log.Println("[ERROR] Admin seeder: failed to hash default password:", err)
		return
	}

	admin := memberModel.UserModel{
		Email:              email,
		Password:           hash,
		Name:               name,
		Role:               constants.RoleAdmin,
		MustChangePassword: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Println("[ERROR] Admin seeder: failed to create admin:", err)
		return
	}
	log.Printf("[SUCCESS] Admin seeder: created %s (wajib ganti password saat login pertama)\n", email)
}
