package types

import "time"

// RewardItem 兑换目录中的一项
type RewardItem struct {
	ID            uint64 `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	CostFragments int64  `json:"cost_fragments"`
	StockQuantity *int64 `json:"stock_quantity"` // null 表示不限量
	CoverImage    string `json:"cover_image,omitempty"`
}

// RedemptionReceipt 兑换凭证
type RedemptionReceipt struct {
	RedemptionID  uint64    `json:"redemption_id,string"` // 雪花 ID，超出 JS 安全整数
	Code          string    `json:"code"`                 // 对外展示的凭证码
	RewardID      uint64    `json:"reward_id"`
	RewardName    string    `json:"reward_name"`
	CostPaid      int64     `json:"cost_paid"`
	LedgerEntryID uint64    `json:"ledger_entry_id"`
	RedeemedAt    time.Time `json:"redeemed_at"`
}

type ListRedemptions struct {
	Records    []RedemptionReceipt `json:"records"`
	NextCursor uint64              `json:"next_cursor,string"`
	HasMore    bool                `json:"has_more"`
}

type ListCursorReq struct {
	Cursor uint64 `form:"cursor"`
	Limit  int    `form:"limit"`
}
