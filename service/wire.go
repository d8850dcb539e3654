package service

import (
	"Focus/config"
	"Focus/dao"
	"Focus/dao/cache"
	"Focus/pkg/rocketmq"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewLocker,
	NewRandom,
	wire.Bind(new(UserRepository), new(*dao.Users)),
	wire.Bind(new(RewardCatalog), new(*cache.RewardCache)),
	wire.Bind(new(EventPublisher), new(*rocketmq.Producer)),

	NewLedgerService,
	wire.Bind(new(ILedgerService), new(*LedgerService)),

	NewRedemptionService,
	wire.Bind(new(IRedemptionService), new(*RedemptionService)),

	NewLotteryService,
	wire.Bind(new(ILotteryService), new(*LotteryService)),

	NewStatisticsService,
	wire.Bind(new(IStatisticsService), new(*StatisticsService)),
)

func NewRandom(conf *config.Config) RandomSource {
	return NewRandomSource(conf.Reward.RandomSeed)
}
