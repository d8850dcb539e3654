package models

import "time"

// FragmentBalance 用户碎片账户，首次入账时创建，只由账本写入
type FragmentBalance struct {
	ID           uint64     `gorm:"primaryKey;column:id"`
	UserID       uint64     `gorm:"column:user_id;uniqueIndex:uk_fragment_user"`
	Balance      int64      `gorm:"column:balance;not null;default:0"`
	TotalEarned  int64      `gorm:"column:total_earned;not null;default:0"`
	TotalSpent   int64      `gorm:"column:total_spent;not null;default:0"`
	LastEarnedAt *time.Time `gorm:"column:last_earned_at"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (FragmentBalance) TableName() string {
	return "fragment_balances"
}

// Reconciled balance 必须等于累计获得减累计消耗
func (f *FragmentBalance) Reconciled() bool {
	return f.Balance >= 0 && f.Balance == f.TotalEarned-f.TotalSpent
}

// TransactionType 流水类型
type TransactionType string

const (
	// 收入类
	TxEarn   TransactionType = "EARN"   // 专注、任务完成获得
	TxBonus  TransactionType = "BONUS"  // 抽奖奖励、活动奖励
	TxRefund TransactionType = "REFUND" // 退还

	// 支出类
	TxSpend   TransactionType = "SPEND"   // 兑换、抽奖消耗
	TxPenalty TransactionType = "PENALTY" // 扣罚
)

func (t TransactionType) IsCredit() bool {
	return t == TxEarn || t == TxBonus || t == TxRefund
}

func (t TransactionType) IsDebit() bool {
	return t == TxSpend || t == TxPenalty
}

// LedgerEntry 碎片流水，只追加不修改
type LedgerEntry struct {
	ID              uint64          `gorm:"primaryKey;column:id"`
	UserID          uint64          `gorm:"column:user_id;index:idx_ledger_user_created,priority:1"`
	TransactionType TransactionType `gorm:"column:transaction_type;size:16;not null"`
	AmountChange    int64           `gorm:"column:amount_change;not null"` // 正数入账，负数出账
	BalanceBefore   int64           `gorm:"column:balance_before;not null"`
	BalanceAfter    int64           `gorm:"column:balance_after;not null"`
	Reason          string          `gorm:"column:reason;size:255"`
	RelatedRewardID *uint64         `gorm:"column:related_reward_id;index:idx_ledger_reward"`
	CreatedAt       time.Time       `gorm:"column:created_at;index:idx_ledger_user_created,priority:2"`
}

func (LedgerEntry) TableName() string {
	return "fragment_ledger_entries"
}
