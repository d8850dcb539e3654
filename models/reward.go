package models

import (
	"time"

	"gorm.io/gorm"
)

// RewardItem 可兑换奖励，StockQuantity 为空表示不限量
type RewardItem struct {
	ID            uint64         `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name          string         `gorm:"size:128;not null;column:name" json:"name"`
	Description   string         `gorm:"type:text;column:description" json:"description"`
	CostFragments int64          `gorm:"not null;column:cost_fragments" json:"cost_fragments"`
	IsActive      bool           `gorm:"not null;default:true;index:idx_reward_active;column:is_active" json:"is_active"`
	StockQuantity *int64         `gorm:"column:stock_quantity" json:"stock_quantity"`
	CoverImage    string         `gorm:"size:512;default:'';column:cover_image" json:"cover_image"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index;column:deleted_at" json:"-"`
}

func (RewardItem) TableName() string {
	return "reward_items"
}

// Unlimited 不限库存
func (r *RewardItem) Unlimited() bool {
	return r.StockQuantity == nil
}

// Redemption 兑换记录，一次成功兑换写入一条
type Redemption struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement:false;column:id"` // snowflake
	UserID         uint64    `gorm:"column:user_id;not null;index:idx_redemption_user;uniqueIndex:uk_redemption_idem,priority:1"`
	RewardID       uint64    `gorm:"column:reward_id;not null;index:idx_redemption_reward"`
	RewardName     string    `gorm:"column:reward_name;size:128"` // 冗余名称，防止奖励更名
	CostPaid       int64     `gorm:"column:cost_paid;not null"`
	LedgerEntryID  uint64    `gorm:"column:ledger_entry_id;not null"`
	IdempotencyKey *string   `gorm:"column:idempotency_key;size:64;uniqueIndex:uk_redemption_idem,priority:2"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (Redemption) TableName() string {
	return "reward_redemptions"
}
