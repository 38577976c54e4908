package dao

import (
	"clipchain/models"

	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Account{},
		&models.CreditTransaction{},
		&models.VideoTemplate{},
		&models.TemplateUse{},
		&models.RefundRequest{},
	)
}
