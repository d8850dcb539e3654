package dao

import (
	"Focus/models"

	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.FragmentBalance{},
		&models.LedgerEntry{},
		&models.RewardItem{},
		&models.Redemption{},
		&models.LotteryRecord{},
	)
}
