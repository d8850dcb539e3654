package service

import (
	"Focus/pkg/jsonutil"
	"Focus/pkg/log"
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	TopicRewardRedeemed = "reward_redeemed"
	TopicLotteryDrawn   = "lottery_drawn"
)

type RewardRedeemedEvent struct {
	RedemptionID  uint64    `json:"redemption_id,string"`
	UserID        uint64    `json:"user_id"`
	RewardID      uint64    `json:"reward_id"`
	CostPaid      int64     `json:"cost_paid"`
	LedgerEntryID uint64    `json:"ledger_entry_id"`
	RedeemedAt    time.Time `json:"redeemed_at"`
}

type LotteryDrawnEvent struct {
	RecordID    uint64    `json:"record_id"`
	UserID      uint64    `json:"user_id"`
	RarityTier  string    `json:"rarity_tier"`
	PrizeKind   string    `json:"prize_kind"`
	PrizeAmount int64     `json:"prize_amount"`
	DrawnAt     time.Time `json:"drawn_at"`
}

// publish 事务提交后投递，失败只记日志，不影响已完成的业务
func publish(ctx context.Context, p EventPublisher, topic string, event any) {
	if p == nil {
		return
	}
	if err := p.Publish(context.WithoutCancel(ctx), topic, jsonutil.Marshal(event)); err != nil {
		log.L.Warn("publish reward event failed", zap.String("topic", topic), zap.Error(err))
	}
}
