package dao_test

import (
	"Focus/dao"
	"Focus/dao/daotest"
	"Focus/models"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFragment_GetAccountMissing(t *testing.T) {
	f := dao.NewFragment(daotest.NewDB(t))

	account, err := f.GetAccount(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), account.UserID)
	assert.Zero(t, account.Balance)
	assert.True(t, account.Reconciled())
}

func TestFragment_EnsureAccountIdempotent(t *testing.T) {
	db := daotest.NewDB(t)
	f := dao.NewFragment(db)
	ctx := context.Background()

	require.NoError(t, f.EnsureAccount(ctx, 1))
	require.NoError(t, f.EnsureAccount(ctx, 1))

	var count int64
	require.NoError(t, db.Model(&models.FragmentBalance{}).Where("user_id = ?", 1).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFragment_IncreaseDecrease(t *testing.T) {
	f := dao.NewFragment(daotest.NewDB(t))
	ctx := context.Background()
	now := time.Now()

	rows, err := f.Increase(ctx, 1, 100, now)
	require.NoError(t, err)
	assert.Zero(t, rows, "没有账户时不应更新")

	require.NoError(t, f.EnsureAccount(ctx, 1))
	rows, err = f.Increase(ctx, 1, 100, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = f.Decrease(ctx, 1, 60, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	// 余额不足
	rows, err = f.Decrease(ctx, 1, 41, now)
	require.NoError(t, err)
	assert.Zero(t, rows)

	account, err := f.GetAccount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(40), account.Balance)
	assert.Equal(t, int64(100), account.TotalEarned)
	assert.Equal(t, int64(60), account.TotalSpent)
	assert.NotNil(t, account.LastEarnedAt)
	assert.True(t, account.Reconciled())
}

func TestFragment_ListEntries(t *testing.T) {
	f := dao.NewFragment(daotest.NewDB(t))
	ctx := context.Background()

	changes := []int64{10, -3, 5, -2, 7}
	var balance int64
	for _, c := range changes {
		tt := models.TxEarn
		if c < 0 {
			tt = models.TxSpend
		}
		require.NoError(t, f.CreateEntry(ctx, &models.LedgerEntry{
			UserID:          1,
			TransactionType: tt,
			AmountChange:    c,
			BalanceBefore:   balance,
			BalanceAfter:    balance + c,
			CreatedAt:       time.Now(),
		}))
		balance += c
	}
	// 其他用户的流水不应出现
	require.NoError(t, f.CreateEntry(ctx, &models.LedgerEntry{UserID: 2, TransactionType: models.TxEarn, AmountChange: 99, BalanceAfter: 99}))

	page, err := f.ListEntries(ctx, 1, dao.EntryFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, int64(7), page[0].AmountChange)
	assert.Equal(t, int64(-2), page[1].AmountChange)

	next, err := f.ListEntries(ctx, 1, dao.EntryFilter{Limit: 10, Cursor: page[1].ID})
	require.NoError(t, err)
	require.Len(t, next, 3)
	assert.Equal(t, int64(5), next[0].AmountChange)

	income, err := f.ListEntries(ctx, 1, dao.EntryFilter{Limit: 10, Action: "income"})
	require.NoError(t, err)
	assert.Len(t, income, 3)

	expense, err := f.ListEntries(ctx, 1, dao.EntryFilter{Limit: 10, Action: "expense"})
	require.NoError(t, err)
	assert.Len(t, expense, 2)

	sum, err := f.SumEntries(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, balance, sum)

	totals, err := f.SumByType(ctx, 1, nil)
	require.NoError(t, err)
	byType := map[models.TransactionType]dao.TypeTotal{}
	for _, tt := range totals {
		byType[tt.TransactionType] = tt
	}
	assert.Equal(t, int64(3), byType[models.TxEarn].Count)
	assert.Equal(t, int64(22), byType[models.TxEarn].Amount)
	assert.Equal(t, int64(-5), byType[models.TxSpend].Amount)
}

func TestUsers_Exists(t *testing.T) {
	db := daotest.NewDB(t)
	users := dao.NewUsers(db)
	ctx := context.Background()
	daotest.CreateUser(t, db, 1)
	daotest.CreateUser(t, db, 2)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", 2).Update("status", 0).Error)

	ok, err := users.Exists(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = users.Exists(ctx, 2)
	require.NoError(t, err)
	assert.False(t, ok, "已注销用户")

	ok, err = users.Exists(ctx, 3)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = users.Exists(ctx, 0)
	require.NoError(t, err)
	assert.False(t, ok)
}
