package database

import (
	"gorm.io/gorm"

	"github.com/titoscorner/backend/internal/models"
)

// AutoMigrate creates or updates the database schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Blog{},
		&models.Ebook{},
		&models.Podcast{},
		&models.Recipe{},
		&models.CartItem{},
		&models.CacheEntry{},
	)
}
