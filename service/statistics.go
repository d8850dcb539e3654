package service

import (
	"Focus/dao"
	"Focus/models"
	"Focus/types"
	"context"
	"time"

	"github.com/sourcegraph/conc/pool"
)

var _ IStatisticsService = (*StatisticsService)(nil)

type IStatisticsService interface {
	Summary(ctx context.Context, userID uint64, since *time.Time) (*types.FragmentStats, error)
}

type StatisticsService struct {
	FragmentDAO   *dao.Fragment
	LotteryDAO    *dao.Lottery
	RedemptionDAO *dao.Redemption
}

func NewStatisticsService(fragmentDAO *dao.Fragment, lotteryDAO *dao.Lottery, redemptionDAO *dao.Redemption) *StatisticsService {
	return &StatisticsService{
		FragmentDAO:   fragmentDAO,
		LotteryDAO:    lotteryDAO,
		RedemptionDAO: redemptionDAO,
	}
}

// Summary 各项统计并发查询，任一失败即取消其余查询
func (s *StatisticsService) Summary(ctx context.Context, userID uint64, since *time.Time) (*types.FragmentStats, error) {
	var (
		account  *models.FragmentBalance
		byType   []dao.TypeTotal
		tiers    []dao.TierCount
		redeemed *dao.RedemptionTotal
	)

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) (err error) {
		account, err = s.FragmentDAO.GetAccount(ctx, userID)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		byType, err = s.FragmentDAO.SumByType(ctx, userID, since)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		tiers, err = s.LotteryDAO.CountByTier(ctx, userID)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		redeemed, err = s.RedemptionDAO.SumByUser(ctx, userID)
		return err
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	stats := &types.FragmentStats{
		Account: *toFragmentAccount(account),
		ByType:  make([]types.TypeStat, 0, len(byType)),
		Lottery: types.LotteryStats{ByTier: make(map[string]int64, len(tiers))},
		Redemptions: types.RedemptionsStats{
			Count: redeemed.Count,
			Spent: redeemed.Amount,
		},
	}
	for _, t := range byType {
		stats.ByType = append(stats.ByType, types.TypeStat{
			TransactionType: string(t.TransactionType),
			Count:           t.Count,
			Amount:          t.Amount,
		})
	}
	for _, t := range tiers {
		stats.Lottery.ByTier[string(t.RarityTier)] = t.Count
		stats.Lottery.Draws += t.Count
	}
	return stats, nil
}
