package dao

import (
	"Focus/models"
	"context"
	"errors"

	"gorm.io/gorm"
)

type Redemption struct {
	Repo[models.Redemption]
}

func NewRedemption(db *gorm.DB) *Redemption {
	return &Redemption{
		Repo: NewRepo[models.Redemption](db),
	}
}

// FindByIdempotencyKey 未找到时返回 nil, nil
func (r *Redemption) FindByIdempotencyKey(ctx context.Context, userID uint64, key string) (*models.Redemption, error) {
	item, err := r.FindByWhere(ctx, "user_id = ? AND idempotency_key = ?", userID, key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return item, err
}

func (r *Redemption) ListByUser(ctx context.Context, userID uint64, cursor uint64, limit int) ([]models.Redemption, error) {
	var items []models.Redemption
	query := r.Conn(ctx).Where("user_id = ?", userID)
	if cursor > 0 {
		query = query.Where("id < ?", cursor)
	}
	err := query.Order("id DESC").Limit(limit).Find(&items).Error
	return items, err
}

func (r *Redemption) CountByReward(ctx context.Context, rewardID uint64) (int64, error) {
	var count int64
	err := r.Model(ctx).Where("reward_id = ?", rewardID).Count(&count).Error
	return count, err
}

// RedemptionTotal 用户兑换汇总
type RedemptionTotal struct {
	Count  int64 `gorm:"column:count"`
	Amount int64 `gorm:"column:amount"`
}

func (r *Redemption) SumByUser(ctx context.Context, userID uint64) (*RedemptionTotal, error) {
	var total RedemptionTotal
	err := r.Model(ctx).
		Select("COUNT(*) AS count, COALESCE(SUM(cost_paid), 0) AS amount").
		Where("user_id = ?", userID).
		Scan(&total).Error
	return &total, err
}
