package dao

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type txKey struct{}

// Repo 通用仓储，处于 TxManager 事务中时自动复用事务连接
type Repo[T any] struct {
	Db *gorm.DB
}

func NewRepo[T any](db *gorm.DB) Repo[T] {
	return Repo[T]{Db: db}
}

// Conn 返回当前上下文应使用的连接
func (r *Repo[T]) Conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return r.Db.WithContext(ctx)
}

func (r *Repo[T]) Model(ctx context.Context) *gorm.DB {
	return r.Conn(ctx).Model(new(T))
}

func (r *Repo[T]) FindById(ctx context.Context, id uint64) (*T, error) {
	var item T
	if err := r.Conn(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repo[T]) FindByWhere(ctx context.Context, where string, args ...any) (*T, error) {
	var item T
	if err := r.Conn(ctx).Where(where, args...).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repo[T]) IsExist(ctx context.Context, where string, args ...any) (bool, error) {
	var count int64
	if err := r.Model(ctx).Where(where, args...).Limit(1).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repo[T]) Create(ctx context.Context, item *T) error {
	return r.Conn(ctx).Create(item).Error
}

// RollbackError 业务失败后回滚也失败，账本状态需要人工核对
type RollbackError struct {
	Cause    error
	Rollback error
}

func (e *RollbackError) Error() string {
	return fmt.Sprintf("rollback failed: %v (cause: %v)", e.Rollback, e.Cause)
}

func (e *RollbackError) Unwrap() error {
	return e.Cause
}

// TxManager 显式事务边界
type TxManager struct {
	Db *gorm.DB
}

func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{Db: db}
}

// InTx ctx 是否已处于事务中
func InTx(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*gorm.DB)
	return ok
}

// Transaction 在同一个数据库事务内执行 fn，fn 内的 DAO 调用须使用传入的 ctx。
// 已处于事务中时直接加入外层事务。
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if InTx(ctx) {
		return fn(ctx)
	}

	tx := m.Db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("begin transaction: %w", tx.Error)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil && !errors.Is(rbErr, gorm.ErrInvalidTransaction) {
			return &RollbackError{Cause: err, Rollback: rbErr}
		}
		return err
	}

	if err = tx.Commit().Error; err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
