package dao

import (
	"Focus/models"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrStockExhausted 库存已为 0
var ErrStockExhausted = errors.New("reward stock exhausted")

type Reward struct {
	Repo[models.RewardItem]
}

func NewReward(db *gorm.DB) *Reward {
	return &Reward{
		Repo: NewRepo[models.RewardItem](db),
	}
}

// Get 不存在时返回 gorm.ErrRecordNotFound
func (r *Reward) Get(ctx context.Context, rewardID uint64) (*models.RewardItem, error) {
	return r.FindById(ctx, rewardID)
}

func (r *Reward) List(ctx context.Context, onlyActive bool) ([]models.RewardItem, error) {
	var items []models.RewardItem
	query := r.Conn(ctx)
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("cost_fragments ASC, id ASC").Find(&items).Error
	return items, err
}

// DecrementStock 原子扣减一件库存，不限量奖励直接成功
func (r *Reward) DecrementStock(ctx context.Context, rewardID uint64) error {
	result := r.Model(ctx).
		Where("id = ? AND stock_quantity IS NOT NULL AND stock_quantity > 0", rewardID).
		Update("stock_quantity", gorm.Expr("stock_quantity - 1"))
	if result.Error != nil {
		return fmt.Errorf("dao.Reward.DecrementStock error: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	item, err := r.Get(ctx, rewardID)
	if err != nil {
		return err
	}
	if item.Unlimited() {
		return nil
	}
	return ErrStockExhausted
}

func (r *Reward) SetActive(ctx context.Context, rewardID uint64, active bool) error {
	return r.Model(ctx).Where("id = ?", rewardID).Update("is_active", active).Error
}
