package service

import (
	"Focus/dao/daotest"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatistics_Summary(t *testing.T) {
	env := newTestEnv(t)
	env.fund(t, 1, 100)
	ctx := context.Background()
	env.lottery.Random = &fixedSource{values: []float64{0.5, 0}}

	_, err := env.lottery.Draw(ctx, 1, 5)
	require.NoError(t, err)
	_, err = env.lottery.Draw(ctx, 1, 5)
	require.NoError(t, err)

	reward := daotest.CreateReward(t, env.db, "coffee", 30, nil)
	_, err = env.redemption.Redeem(ctx, RedeemRequest{UserID: 1, RewardID: reward.ID})
	require.NoError(t, err)

	stats, err := env.stats.Summary(ctx, 1, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(70), stats.Account.Balance)
	assert.Equal(t, int64(2), stats.Lottery.Draws)
	assert.Equal(t, int64(2), stats.Lottery.ByTier["common"])
	assert.Equal(t, int64(1), stats.Redemptions.Count)
	assert.Equal(t, int64(30), stats.Redemptions.Spent)

	byType := map[string]int64{}
	var sum int64
	for _, s := range stats.ByType {
		byType[s.TransactionType] = s.Amount
		sum += s.Amount
	}
	assert.Equal(t, int64(100), byType["EARN"])
	assert.Equal(t, int64(10), byType["BONUS"])
	assert.Equal(t, int64(-40), byType["SPEND"])
	assert.Equal(t, stats.Account.Balance, sum)
}

func TestStatistics_EmptyUser(t *testing.T) {
	env := newTestEnv(t)

	stats, err := env.stats.Summary(context.Background(), 9, nil)
	require.NoError(t, err)
	assert.Zero(t, stats.Account.Balance)
	assert.Empty(t, stats.ByType)
	assert.Zero(t, stats.Lottery.Draws)
	assert.Zero(t, stats.Redemptions.Count)
}
