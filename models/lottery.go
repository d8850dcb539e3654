package models

import (
	"time"

	"gorm.io/datatypes"
)

// RarityTier 稀有度
type RarityTier string

const (
	TierCommon    RarityTier = "common"
	TierRare      RarityTier = "rare"
	TierEpic      RarityTier = "epic"
	TierLegendary RarityTier = "legendary"
)

// PrizeKind 奖品类型
type PrizeKind string

const (
	PrizePoints   PrizeKind = "points"
	PrizeFragment PrizeKind = "fragment"
	PrizeVirtual  PrizeKind = "virtual" // 虚拟奖品，不入账
)

// Credited 是否需要入账
func (k PrizeKind) Credited() bool {
	return k == PrizePoints || k == PrizeFragment
}

// LotteryRecord 抽奖记录，每次抽奖一条
type LotteryRecord struct {
	ID            uint64         `gorm:"primaryKey;column:id"`
	UserID        uint64         `gorm:"column:user_id;not null;index:idx_lottery_user"`
	CostFragments int64          `gorm:"column:cost_fragments;not null"`
	RarityTier    RarityTier     `gorm:"column:rarity_tier;size:16;not null;index:idx_lottery_tier"`
	PrizeKind     PrizeKind      `gorm:"column:prize_kind;size:16;not null"`
	PrizeAmount   int64          `gorm:"column:prize_amount;not null;default:0"`
	Won           bool           `gorm:"column:won;not null"`
	Rolls         datatypes.JSON `gorm:"column:rolls"` // 本次使用的随机数，便于复核
	DebitEntryID  uint64         `gorm:"column:debit_entry_id"`
	PrizeEntryID  *uint64        `gorm:"column:prize_entry_id"`
	CreatedAt     time.Time      `gorm:"column:created_at"`
}

func (LotteryRecord) TableName() string {
	return "lottery_records"
}
