package dao

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewTxManager,
	NewUsers,
	NewFragment,
	NewReward,
	NewRedemption,
	NewLottery,
)
