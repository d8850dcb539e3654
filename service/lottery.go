package service

import (
	"Focus/dao"
	"Focus/models"
	"Focus/pkg/jsonutil"
	"Focus/pkg/log"
	"Focus/types"
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const (
	ReasonLottery      = "lottery"
	ReasonLotteryPrize = "lottery_prize"
)

var _ ILotteryService = (*LotteryService)(nil)

type ILotteryService interface {
	Draw(ctx context.Context, userID uint64, cost int64) (*models.LotteryRecord, error)
	ListRecords(ctx context.Context, userID uint64, cursor uint64, limit int) (*types.ListLotteryRecords, error)
	Tiers() []types.LotteryTier
}

type LotteryService struct {
	Ledger     *LedgerService
	LotteryDAO *dao.Lottery
	Random     RandomSource
	Table      TierTable
	Events     EventPublisher

	now func() time.Time
}

func NewLotteryService(ledger *LedgerService, lotteryDAO *dao.Lottery, random RandomSource, events EventPublisher) *LotteryService {
	return &LotteryService{
		Ledger:     ledger,
		LotteryDAO: lotteryDAO,
		Random:     random,
		Table:      DefaultTierTable,
		Events:     events,
		now:        time.Now,
	}
}

// Draw 扣除碎片后抽取稀有度和奖品，积分与碎片奖品以 BONUS 入账。
// 扣费、发奖、记录在同一事务内完成。
func (s *LotteryService) Draw(ctx context.Context, userID uint64, cost int64) (*models.LotteryRecord, error) {
	if cost <= 0 {
		return nil, validationError("抽奖消耗必须大于0")
	}

	var record *models.LotteryRecord
	err := s.Ledger.Atomic(ctx, userID, func(ctx context.Context) error {
		debit, err := s.Ledger.Debit(ctx, DebitRequest{
			UserID: userID,
			Amount: cost,
			Reason: ReasonLottery,
		})
		if err != nil {
			return err
		}

		rolls := &recordingSource{src: s.Random}
		tier := s.Table.Select(rolls.NextUniform())
		prize := GeneratePrize(tier, rolls)

		record = &models.LotteryRecord{
			UserID:        userID,
			CostFragments: cost,
			RarityTier:    tier,
			PrizeKind:     prize.Kind,
			PrizeAmount:   prize.Amount,
			Won:           prize.Kind != models.PrizePoints || prize.Amount > 0,
			Rolls:         datatypes.JSON(jsonutil.Marshal(rolls.rolls)),
			DebitEntryID:  debit.ID,
			CreatedAt:     s.now(),
		}

		if prize.Kind.Credited() && prize.Amount > 0 {
			credit, err := s.Ledger.Credit(ctx, CreditRequest{
				UserID: userID,
				Amount: prize.Amount,
				Type:   models.TxBonus,
				Reason: ReasonLotteryPrize,
			})
			if err != nil {
				return err
			}
			record.PrizeEntryID = &credit.ID
		}

		return s.LotteryDAO.Create(ctx, record)
	})
	if err != nil {
		log.L.Warn("lottery draw failed", zap.Uint64("user_id", userID), zap.Int64("cost", cost), zap.Error(err))
		return nil, err
	}

	lotteryDraws.WithLabelValues(string(record.RarityTier)).Inc()
	log.L.Info("lottery drawn",
		zap.Uint64("user_id", userID),
		zap.Uint64("record_id", record.ID),
		zap.String("tier", string(record.RarityTier)),
		zap.String("prize_kind", string(record.PrizeKind)),
		zap.Int64("prize_amount", record.PrizeAmount),
	)
	publish(ctx, s.Events, TopicLotteryDrawn, &LotteryDrawnEvent{
		RecordID:    record.ID,
		UserID:      userID,
		RarityTier:  string(record.RarityTier),
		PrizeKind:   string(record.PrizeKind),
		PrizeAmount: record.PrizeAmount,
		DrawnAt:     record.CreatedAt,
	})
	return record, nil
}

func (s *LotteryService) ListRecords(ctx context.Context, userID uint64, cursor uint64, limit int) (*types.ListLotteryRecords, error) {
	limit = normalizeLimit(limit)
	records, err := s.LotteryDAO.ListByUser(ctx, userID, cursor, limit+1)
	if err != nil {
		return nil, err
	}

	hasMore := len(records) > limit
	if hasMore {
		records = records[:limit]
	}

	items := make([]types.LotteryResult, 0, len(records))
	for i := range records {
		items = append(items, *ToLotteryResult(&records[i]))
	}

	var nextCursor uint64
	if hasMore {
		nextCursor = records[len(records)-1].ID
	}
	return &types.ListLotteryRecords{
		Records:    items,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}, nil
}

// Tiers 公示概率表
func (s *LotteryService) Tiers() []types.LotteryTier {
	tiers := make([]types.LotteryTier, 0, len(s.Table))
	for _, o := range s.Table {
		tiers = append(tiers, types.LotteryTier{
			Tier:        string(o.Tier),
			Probability: o.Probability,
			Prizes:      o.Prizes,
		})
	}
	return tiers
}

func ToLotteryResult(r *models.LotteryRecord) *types.LotteryResult {
	return &types.LotteryResult{
		ID:            r.ID,
		CostFragments: r.CostFragments,
		RarityTier:    string(r.RarityTier),
		PrizeKind:     string(r.PrizeKind),
		PrizeAmount:   r.PrizeAmount,
		Won:           r.Won,
		CreatedAt:     r.CreatedAt,
	}
}
