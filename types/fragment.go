package types

import "time"

// FragmentAccount 碎片账户概览
type FragmentAccount struct {
	UserID       uint64     `json:"user_id"`
	Balance      int64      `json:"balance"`      // 当前可用碎片
	TotalEarned  int64      `json:"total_earned"` // 历史累计获得
	TotalSpent   int64      `json:"total_spent"`  // 历史累计消耗
	LastEarnedAt *time.Time `json:"last_earned_at,omitempty"`
}

// FragmentRecord 单条碎片流水
type FragmentRecord struct {
	ID              uint64  `json:"id"`
	TransactionType string  `json:"transaction_type"` // EARN / BONUS / REFUND / SPEND / PENALTY
	Amount          int64   `json:"amount"`           // 正数入账，负数出账
	BalanceBefore   int64   `json:"balance_before"`
	BalanceAfter    int64   `json:"balance_after"`
	Reason          string  `json:"reason"`
	RelatedRewardID *uint64 `json:"related_reward_id,omitempty"`
	OrderType       string  `json:"order_type"` // INCOME / EXPENSE
	CreatedAt       string  `json:"created_at"` // 2006-01-02 15:04:05
}

// ListFragmentRecords 流水分页
type ListFragmentRecords struct {
	Records    []FragmentRecord `json:"records"`
	NextCursor uint64           `json:"next_cursor"` // 下一页请求带上
	HasMore    bool             `json:"has_more"`
}

type ListFragmentRecordsReq struct {
	Since  string `form:"since"`                                          // RFC3339，可选
	Action string `form:"action" binding:"omitempty,oneof=income expense"` // 空表示全部
	Cursor uint64 `form:"cursor"`
	Limit  int    `form:"limit"`
}

// EarnFragmentsReq 内部服务发放碎片（专注完成、任务完成等）
type EarnFragmentsReq struct {
	UserID uint64 `json:"user_id" binding:"required"`
	Amount int64  `json:"amount" binding:"required,gt=0"`
	Type   string `json:"type" binding:"omitempty,oneof=EARN BONUS REFUND"` // 默认 EARN
	Reason string `json:"reason" binding:"required,max=255"`
}

// ReconcileResult 对账结果
type ReconcileResult struct {
	UserID      uint64 `json:"user_id"`
	Balance     int64  `json:"balance"`
	TotalEarned int64  `json:"total_earned"`
	TotalSpent  int64  `json:"total_spent"`
	LedgerSum   int64  `json:"ledger_sum"` // 流水 amount_change 合计
	Consistent  bool   `json:"consistent"`
}

// TypeStat 按流水类型统计
type TypeStat struct {
	TransactionType string `json:"transaction_type"`
	Count           int64  `json:"count"`
	Amount          int64  `json:"amount"`
}

// FragmentStats 碎片统计面板
type FragmentStats struct {
	Account     FragmentAccount  `json:"account"`
	ByType      []TypeStat       `json:"by_type"`
	Lottery     LotteryStats     `json:"lottery"`
	Redemptions RedemptionsStats `json:"redemptions"`
}

type LotteryStats struct {
	Draws  int64            `json:"draws"`
	ByTier map[string]int64 `json:"by_tier"`
}

type RedemptionsStats struct {
	Count int64 `json:"count"`
	Spent int64 `json:"spent"`
}
