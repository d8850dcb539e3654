package dao_test

import (
	"Focus/dao"
	"Focus/dao/daotest"
	"Focus/models"
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestTxManager_CommitAndRollback(t *testing.T) {
	db := daotest.NewDB(t)
	tm := dao.NewTxManager(db)
	f := dao.NewFragment(db)
	ctx := context.Background()

	err := tm.Transaction(ctx, func(ctx context.Context) error {
		assert.True(t, dao.InTx(ctx))
		return f.EnsureAccount(ctx, 1)
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = tm.Transaction(ctx, func(ctx context.Context) error {
		if err := f.EnsureAccount(ctx, 2); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int64
	require.NoError(t, db.Model(&models.FragmentBalance{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "失败的事务不应留下数据")
}

func TestTxManager_NestedJoinsOuter(t *testing.T) {
	db := daotest.NewDB(t)
	tm := dao.NewTxManager(db)
	f := dao.NewFragment(db)
	ctx := context.Background()

	err := tm.Transaction(ctx, func(ctx context.Context) error {
		if err := tm.Transaction(ctx, func(ctx context.Context) error {
			return f.EnsureAccount(ctx, 1)
		}); err != nil {
			return err
		}
		return errors.New("outer failed")
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.FragmentBalance{}).Count(&count).Error)
	assert.Zero(t, count, "内层写入随外层一起回滚")
}

func TestTxManager_PanicRollsBack(t *testing.T) {
	db := daotest.NewDB(t)
	tm := dao.NewTxManager(db)
	f := dao.NewFragment(db)

	assert.Panics(t, func() {
		_ = tm.Transaction(context.Background(), func(ctx context.Context) error {
			_ = f.EnsureAccount(ctx, 1)
			panic("unexpected")
		})
	})

	var count int64
	require.NoError(t, db.Model(&models.FragmentBalance{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestTxManager_RollbackFailure(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback().WillReturnError(errors.New("connection reset"))

	cause := errors.New("stock exhausted")
	err = dao.NewTxManager(db).Transaction(context.Background(), func(ctx context.Context) error {
		return cause
	})

	var rbErr *dao.RollbackError
	require.ErrorAs(t, err, &rbErr)
	assert.ErrorIs(t, err, cause)
	assert.EqualError(t, rbErr.Rollback, "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}
