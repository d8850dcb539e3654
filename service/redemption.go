package service

import (
	"Focus/dao"
	"Focus/models"
	"Focus/pkg/idgen"
	"Focus/pkg/log"
	"Focus/types"
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxIdempotencyKeyLength = 64

var _ IRedemptionService = (*RedemptionService)(nil)

type IRedemptionService interface {
	Catalog(ctx context.Context) ([]types.RewardItem, error)
	Redeem(ctx context.Context, req RedeemRequest) (*types.RedemptionReceipt, error)
	ListRedemptions(ctx context.Context, userID uint64, cursor uint64, limit int) (*types.ListRedemptions, error)
}

// RedeemRequest IdempotencyKey 可选，相同 key 重复请求返回首次的凭证
type RedeemRequest struct {
	UserID         uint64
	RewardID       uint64
	IdempotencyKey string
}

type RedemptionService struct {
	Ledger        *LedgerService
	Rewards       RewardCatalog
	RedemptionDAO *dao.Redemption
	IDGen         *idgen.Generator
	Events        EventPublisher
}

func NewRedemptionService(ledger *LedgerService, rewards RewardCatalog, redemptionDAO *dao.Redemption, gen *idgen.Generator, events EventPublisher) *RedemptionService {
	return &RedemptionService{
		Ledger:        ledger,
		Rewards:       rewards,
		RedemptionDAO: redemptionDAO,
		IDGen:         gen,
		Events:        events,
	}
}

// Catalog 上架中的奖励
func (s *RedemptionService) Catalog(ctx context.Context) ([]types.RewardItem, error) {
	items, err := s.Rewards.List(ctx, true)
	if err != nil {
		return nil, err
	}
	list := make([]types.RewardItem, 0, len(items))
	for _, item := range items {
		list = append(list, types.RewardItem{
			ID:            item.ID,
			Name:          item.Name,
			Description:   item.Description,
			CostFragments: item.CostFragments,
			StockQuantity: item.StockQuantity,
			CoverImage:    item.CoverImage,
		})
	}
	return list, nil
}

// Redeem 扣碎片、扣库存、写兑换记录在同一事务内完成，任一步失败全部回滚
func (s *RedemptionService) Redeem(ctx context.Context, req RedeemRequest) (*types.RedemptionReceipt, error) {
	receipt, err := s.redeem(ctx, req)
	redemptionResults.WithLabelValues(resultLabel(err)).Inc()
	if err != nil {
		log.L.Warn("reward redeem failed",
			zap.Uint64("user_id", req.UserID),
			zap.Uint64("reward_id", req.RewardID),
			zap.Error(err),
		)
		return nil, err
	}
	return receipt, nil
}

func (s *RedemptionService) redeem(ctx context.Context, req RedeemRequest) (*types.RedemptionReceipt, error) {
	if req.UserID == 0 || req.RewardID == 0 {
		return nil, validationError("用户ID和奖励ID不能为空")
	}
	if len(req.IdempotencyKey) > maxIdempotencyKeyLength {
		return nil, validationError("幂等键过长")
	}

	// 重放请求不再校验目录，奖励下架后依然能取回原凭证
	if req.IdempotencyKey != "" {
		existing, err := s.RedemptionDAO.FindByIdempotencyKey(ctx, req.UserID, req.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return s.replay(existing, req.RewardID)
		}
	}

	// 缓存快照只用于提前拒绝，事务内会重新读取
	if _, err := s.redeemable(ctx, req.RewardID); err != nil {
		return nil, err
	}

	var (
		reward     *models.RewardItem
		redemption *models.Redemption
		replayed   bool
	)
	err := s.Ledger.Atomic(ctx, req.UserID, func(ctx context.Context) error {
		if req.IdempotencyKey != "" {
			existing, err := s.RedemptionDAO.FindByIdempotencyKey(ctx, req.UserID, req.IdempotencyKey)
			if err != nil {
				return err
			}
			if existing != nil {
				redemption, replayed = existing, true
				return nil
			}
		}

		item, err := s.redeemable(ctx, req.RewardID)
		if err != nil {
			return err
		}
		reward = item

		entry, err := s.Ledger.Debit(ctx, DebitRequest{
			UserID:          req.UserID,
			Amount:          reward.CostFragments,
			Reason:          "redeem:" + reward.Name,
			RelatedRewardID: &reward.ID,
		})
		if err != nil {
			return err
		}

		if !reward.Unlimited() {
			err = s.Rewards.DecrementStock(ctx, reward.ID)
			if errors.Is(err, dao.ErrStockExhausted) {
				return &RewardError{Kind: KindRewardOutOfStock, Msg: "奖励库存不足"}
			}
			if err != nil {
				return err
			}
		}

		redemption = &models.Redemption{
			ID:            s.IDGen.GenID(),
			UserID:        req.UserID,
			RewardID:      reward.ID,
			RewardName:    reward.Name,
			CostPaid:      reward.CostFragments,
			LedgerEntryID: entry.ID,
			CreatedAt:     entry.CreatedAt,
		}
		if req.IdempotencyKey != "" {
			key := req.IdempotencyKey
			redemption.IdempotencyKey = &key
		}
		return s.RedemptionDAO.Create(ctx, redemption)
	})
	if err != nil {
		return nil, err
	}
	if replayed {
		return s.replay(redemption, req.RewardID)
	}

	log.L.Info("reward redeemed",
		zap.Uint64("user_id", req.UserID),
		zap.Uint64("reward_id", reward.ID),
		zap.Uint64("redemption_id", redemption.ID),
		zap.Int64("cost", redemption.CostPaid),
	)
	publish(ctx, s.Events, TopicRewardRedeemed, &RewardRedeemedEvent{
		RedemptionID:  redemption.ID,
		UserID:        redemption.UserID,
		RewardID:      redemption.RewardID,
		CostPaid:      redemption.CostPaid,
		LedgerEntryID: redemption.LedgerEntryID,
		RedeemedAt:    redemption.CreatedAt,
	})
	return s.receipt(redemption), nil
}

func (s *RedemptionService) replay(existing *models.Redemption, rewardID uint64) (*types.RedemptionReceipt, error) {
	if existing.RewardID != rewardID {
		return nil, validationError("幂等键已用于其他奖励")
	}
	log.L.Info("reward redeem replayed",
		zap.Uint64("user_id", existing.UserID),
		zap.Uint64("redemption_id", existing.ID),
	)
	return s.receipt(existing), nil
}

func (s *RedemptionService) ListRedemptions(ctx context.Context, userID uint64, cursor uint64, limit int) (*types.ListRedemptions, error) {
	limit = normalizeLimit(limit)
	items, err := s.RedemptionDAO.ListByUser(ctx, userID, cursor, limit+1)
	if err != nil {
		return nil, err
	}

	hasMore := len(items) > limit
	if hasMore {
		items = items[:limit]
	}

	records := make([]types.RedemptionReceipt, 0, len(items))
	for i := range items {
		records = append(records, *s.receipt(&items[i]))
	}

	var nextCursor uint64
	if hasMore {
		nextCursor = items[len(items)-1].ID
	}
	return &types.ListRedemptions{
		Records:    records,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}, nil
}

func (s *RedemptionService) receipt(r *models.Redemption) *types.RedemptionReceipt {
	return &types.RedemptionReceipt{
		RedemptionID:  r.ID,
		Code:          s.IDGen.Code(r.ID),
		RewardID:      r.RewardID,
		RewardName:    r.RewardName,
		CostPaid:      r.CostPaid,
		LedgerEntryID: r.LedgerEntryID,
		RedeemedAt:    r.CreatedAt,
	}
}

// redeemable 读取奖励并校验可兑换。事务内读到的是数据库中的当前值。
func (s *RedemptionService) redeemable(ctx context.Context, rewardID uint64) (*models.RewardItem, error) {
	reward, err := s.Rewards.Get(ctx, rewardID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &RewardError{Kind: KindRewardNotFound, Msg: "奖励不存在"}
	}
	if err != nil {
		return nil, err
	}
	if err := checkRedeemable(reward); err != nil {
		return nil, err
	}
	return reward, nil
}

func checkRedeemable(reward *models.RewardItem) error {
	if !reward.IsActive {
		return &RewardError{Kind: KindRewardInactive, Msg: "奖励已下架"}
	}
	if reward.CostFragments <= 0 {
		return validationError("奖励兑换价格配置错误")
	}
	if !reward.Unlimited() && *reward.StockQuantity <= 0 {
		return &RewardError{Kind: KindRewardOutOfStock, Msg: "奖励库存不足"}
	}
	return nil
}
