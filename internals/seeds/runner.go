package seeds

import (
	"gorm.io/gorm"
)

func RunAllSeeds(db *gorm.DB) {
	SeedAdminUser(db)
}
