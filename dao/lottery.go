package dao

import (
	"Focus/models"
	"context"

	"gorm.io/gorm"
)

type Lottery struct {
	Repo[models.LotteryRecord]
}

func NewLottery(db *gorm.DB) *Lottery {
	return &Lottery{
		Repo: NewRepo[models.LotteryRecord](db),
	}
}

func (l *Lottery) ListByUser(ctx context.Context, userID uint64, cursor uint64, limit int) ([]models.LotteryRecord, error) {
	var records []models.LotteryRecord
	query := l.Conn(ctx).Where("user_id = ?", userID)
	if cursor > 0 {
		query = query.Where("id < ?", cursor)
	}
	err := query.Order("id DESC").Limit(limit).Find(&records).Error
	return records, err
}

// TierCount 按稀有度统计
type TierCount struct {
	RarityTier models.RarityTier `gorm:"column:rarity_tier"`
	Count      int64             `gorm:"column:count"`
}

func (l *Lottery) CountByTier(ctx context.Context, userID uint64) ([]TierCount, error) {
	var counts []TierCount
	err := l.Model(ctx).
		Select("rarity_tier, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("rarity_tier").
		Scan(&counts).Error
	return counts, err
}
