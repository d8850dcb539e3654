package service

import (
	"Focus/models"
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierTable_Bounds(t *testing.T) {
	bounds := make([]float64, 0, len(DefaultTierTable))
	for _, o := range DefaultTierTable {
		bounds = append(bounds, o.Bound)
	}
	assert.Equal(t, []float64{0.70, 0.95, 0.99, 1.00}, bounds)
}

func TestTierTable_Select(t *testing.T) {
	cases := []struct {
		r    float64
		want models.RarityTier
	}{
		{0, models.TierCommon},
		{0.5, models.TierCommon},
		{0.70, models.TierCommon},
		{0.7000001, models.TierRare},
		{0.95, models.TierRare},
		{0.96, models.TierEpic},
		{0.99, models.TierEpic},
		{0.995, models.TierLegendary},
		{1.0, models.TierLegendary},
		{1.5, models.TierLegendary},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, DefaultTierTable.Select(c.r), "r=%v", c.r)
	}
}

func TestTierTable_Convergence(t *testing.T) {
	src := NewRandomSource(20240501)
	const draws = 100000

	counts := map[models.RarityTier]int{}
	for i := 0; i < draws; i++ {
		counts[DefaultTierTable.Select(src.NextUniform())]++
	}

	for _, o := range DefaultTierTable {
		got := float64(counts[o.Tier]) / draws
		assert.InDelta(t, o.Probability, got, 0.01, "tier %s", o.Tier)
	}
}

func TestGeneratePrize_Ranges(t *testing.T) {
	src := NewRandomSource(7)
	type bounds struct{ lo, hi int64 }
	want := map[models.RarityTier]map[models.PrizeKind]bounds{
		models.TierCommon:    {models.PrizePoints: {5, 20}},
		models.TierRare:      {models.PrizePoints: {20, 50}, models.PrizeFragment: {1, 1}},
		models.TierEpic:      {models.PrizePoints: {50, 100}, models.PrizeFragment: {2, 3}},
		models.TierLegendary: {models.PrizePoints: {100, 200}, models.PrizeFragment: {3, 5}, models.PrizeVirtual: {1, 1}},
	}

	for tier, kinds := range want {
		seen := map[models.PrizeKind]bool{}
		for i := 0; i < 5000; i++ {
			p := GeneratePrize(tier, src)
			b, ok := kinds[p.Kind]
			require.True(t, ok, "tier %s produced unexpected kind %s", tier, p.Kind)
			assert.GreaterOrEqual(t, p.Amount, b.lo)
			assert.LessOrEqual(t, p.Amount, b.hi)
			seen[p.Kind] = true
		}
		assert.Len(t, seen, len(kinds), "tier %s should produce every kind", tier)
	}
}

func TestGeneratePrize_Sequence(t *testing.T) {
	cases := []struct {
		name  string
		tier  models.RarityTier
		rolls []float64
		want  Prize
	}{
		{"common low", models.TierCommon, []float64{0}, Prize{models.PrizePoints, 5}},
		{"common high", models.TierCommon, []float64{0.9999999}, Prize{models.PrizePoints, 20}},
		{"rare points", models.TierRare, []float64{0.59, 0.5}, Prize{models.PrizePoints, 35}},
		{"rare fragment", models.TierRare, []float64{0.6}, Prize{models.PrizeFragment, 1}},
		{"epic points", models.TierEpic, []float64{0.1, 0}, Prize{models.PrizePoints, 50}},
		{"epic fragment", models.TierEpic, []float64{0.7, 0.99}, Prize{models.PrizeFragment, 3}},
		{"legendary points", models.TierLegendary, []float64{0.39, 0.999}, Prize{models.PrizePoints, 200}},
		{"legendary fragment", models.TierLegendary, []float64{0.4, 0}, Prize{models.PrizeFragment, 3}},
		{"legendary virtual", models.TierLegendary, []float64{0.8}, Prize{models.PrizeVirtual, 1}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, GeneratePrize(c.tier, &fixedSource{values: c.rolls}))
		})
	}
}

func TestUniformInt_Clamp(t *testing.T) {
	assert.Equal(t, int64(20), uniformInt(&fixedSource{values: []float64{math.Nextafter(1, 0)}}, 5, 20))
	assert.Equal(t, int64(5), uniformInt(&fixedSource{values: []float64{0}}, 5, 20))
}

func TestLottery_ForcedCommonDraw(t *testing.T) {
	env := newTestEnv(t)
	env.fund(t, 1, 5)
	env.lottery.Random = &fixedSource{values: []float64{0.5, 0}}

	record, err := env.lottery.Draw(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Equal(t, models.TierCommon, record.RarityTier)
	assert.Equal(t, models.PrizePoints, record.PrizeKind)
	assert.Equal(t, int64(5), record.PrizeAmount)
	assert.True(t, record.Won)
	assert.JSONEq(t, `[0.5, 0]`, string(record.Rolls))

	entries := env.entries(t, 1)
	require.Len(t, entries, 3)

	debit, prize := entries[1], entries[2]
	assert.Equal(t, models.TxSpend, debit.TransactionType)
	assert.Equal(t, ReasonLottery, debit.Reason)
	assert.Equal(t, int64(0), debit.BalanceAfter)
	assert.Equal(t, debit.ID, record.DebitEntryID)

	assert.Equal(t, models.TxBonus, prize.TransactionType)
	assert.Equal(t, ReasonLotteryPrize, prize.Reason)
	assert.Equal(t, int64(5), prize.AmountChange)
	require.NotNil(t, record.PrizeEntryID)
	assert.Equal(t, prize.ID, *record.PrizeEntryID)

	assert.Equal(t, int64(5), env.balance(t, 1))
	assert.Equal(t, 1, env.events.count(TopicLotteryDrawn))
	env.assertReconciled(t, 1)
}

func TestLottery_FragmentPrize(t *testing.T) {
	env := newTestEnv(t)
	env.fund(t, 1, 10)
	env.lottery.Random = &fixedSource{values: []float64{0.98, 0.8, 0}}

	record, err := env.lottery.Draw(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, models.TierEpic, record.RarityTier)
	assert.Equal(t, models.PrizeFragment, record.PrizeKind)
	assert.Equal(t, int64(2), record.PrizeAmount)
	assert.Equal(t, int64(2), env.balance(t, 1))
}

func TestLottery_VirtualPrizeNotCredited(t *testing.T) {
	env := newTestEnv(t)
	env.fund(t, 1, 10)
	env.lottery.Random = &fixedSource{values: []float64{0.999, 0.95}}

	record, err := env.lottery.Draw(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, models.TierLegendary, record.RarityTier)
	assert.Equal(t, models.PrizeVirtual, record.PrizeKind)
	assert.True(t, record.Won)
	assert.Nil(t, record.PrizeEntryID)

	assert.Zero(t, env.balance(t, 1))
	assert.Len(t, env.entries(t, 1), 2)
}

func TestLottery_InsufficientBalance(t *testing.T) {
	env := newTestEnv(t)
	env.fund(t, 1, 4)

	_, err := env.lottery.Draw(context.Background(), 1, 5)
	var re *RewardError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, KindInsufficientBalance, re.Kind)
	assert.Equal(t, int64(4), re.CurrentBalance)
	assert.Equal(t, int64(5), re.RequiredAmount)

	records, err := env.lottery.ListRecords(context.Background(), 1, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, records.Records)
	assert.Len(t, env.entries(t, 1), 1)
	assert.Zero(t, env.events.count(TopicLotteryDrawn))
}

func TestLottery_InvalidCost(t *testing.T) {
	env := newTestEnv(t)
	env.fund(t, 1, 10)

	_, err := env.lottery.Draw(context.Background(), 1, 0)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = env.lottery.Draw(context.Background(), 1, -1)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, int64(10), env.balance(t, 1))
}

func TestLottery_ManyDrawsStayReconciled(t *testing.T) {
	env := newTestEnv(t)
	env.fund(t, 1, 500)
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		_, err := env.lottery.Draw(ctx, 1, 5)
		require.NoError(t, err)
	}

	first, err := env.lottery.ListRecords(ctx, 1, 0, 30)
	require.NoError(t, err)
	assert.Len(t, first.Records, 30)
	assert.True(t, first.HasMore)

	rest, err := env.lottery.ListRecords(ctx, 1, first.NextCursor, 30)
	require.NoError(t, err)
	assert.Len(t, rest.Records, 20)
	assert.False(t, rest.HasMore)

	env.assertReconciled(t, 1)
}

func TestLottery_Tiers(t *testing.T) {
	env := newTestEnv(t)

	tiers := env.lottery.Tiers()
	require.Len(t, tiers, 4)

	var sum float64
	for _, tier := range tiers {
		sum += tier.Probability
		assert.NotEmpty(t, tier.Prizes)
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.Equal(t, "common", tiers[0].Tier)
}
