package types

import "time"

type DrawLotteryReq struct {
	CostFragments int64 `json:"cost_fragments" binding:"omitempty,gt=0"` // 不传使用默认消耗
}

// LotteryResult 单次抽奖结果
type LotteryResult struct {
	ID            uint64    `json:"id"`
	CostFragments int64     `json:"cost_fragments"`
	RarityTier    string    `json:"rarity_tier"`
	PrizeKind     string    `json:"prize_kind"`
	PrizeAmount   int64     `json:"prize_amount"`
	Won           bool      `json:"won"`
	CreatedAt     time.Time `json:"created_at"`
}

type ListLotteryRecords struct {
	Records    []LotteryResult `json:"records"`
	NextCursor uint64          `json:"next_cursor"`
	HasMore    bool            `json:"has_more"`
}

// LotteryTier 公示的稀有度概率
type LotteryTier struct {
	Tier        string  `json:"tier"`
	Probability float64 `json:"probability"`
	Prizes      string  `json:"prizes"`
}
