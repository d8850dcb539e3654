package dao

import (
	"Focus/models"
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Fragment struct {
	Repo[models.FragmentBalance]
}

func NewFragment(db *gorm.DB) *Fragment {
	return &Fragment{
		Repo: NewRepo[models.FragmentBalance](db),
	}
}

// GetAccount 查询账户，不存在时返回零值账户
func (f *Fragment) GetAccount(ctx context.Context, userID uint64) (*models.FragmentBalance, error) {
	var account models.FragmentBalance
	err := f.Conn(ctx).Where("user_id = ?", userID).Take(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.FragmentBalance{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("dao.Fragment.GetAccount error: %w", err)
	}
	return &account, nil
}

// EnsureAccount 懒创建账户，并发创建时由唯一索引兜底
func (f *Fragment) EnsureAccount(ctx context.Context, userID uint64) error {
	account := &models.FragmentBalance{UserID: userID}
	err := f.Conn(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(account).Error
	if err != nil {
		return fmt.Errorf("dao.Fragment.EnsureAccount error: %w", err)
	}
	return nil
}

// Increase 入账，返回受影响行数
func (f *Fragment) Increase(ctx context.Context, userID uint64, amount int64, now time.Time) (int64, error) {
	result := f.Model(ctx).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			// gorm.Expr 保证并发下的原子加减
			"balance":        gorm.Expr("balance + ?", amount),
			"total_earned":   gorm.Expr("total_earned + ?", amount),
			"last_earned_at": now,
			"updated_at":     now,
		})
	return result.RowsAffected, result.Error
}

// Decrease 出账，余额不足时不更新任何行
func (f *Fragment) Decrease(ctx context.Context, userID uint64, amount int64, now time.Time) (int64, error) {
	result := f.Model(ctx).
		Where("user_id = ? AND balance >= ?", userID, amount).
		Updates(map[string]any{
			"balance":     gorm.Expr("balance - ?", amount),
			"total_spent": gorm.Expr("total_spent + ?", amount),
			"updated_at":  now,
		})
	return result.RowsAffected, result.Error
}

func (f *Fragment) CreateEntry(ctx context.Context, entry *models.LedgerEntry) error {
	if err := f.Conn(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("dao.Fragment.CreateEntry error: %w", err)
	}
	return nil
}

// EntryFilter 流水筛选条件
type EntryFilter struct {
	Since  *time.Time
	Action string // income | expense | 空表示全部
	Cursor uint64 // 上一页最后一条 ID
	Limit  int
}

// ListEntries 按 ID 倒序的游标分页
func (f *Fragment) ListEntries(ctx context.Context, userID uint64, filter EntryFilter) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	query := f.Conn(ctx).Where("user_id = ?", userID)

	switch filter.Action {
	case "income":
		query = query.Where("amount_change > ?", 0)
	case "expense":
		query = query.Where("amount_change < ?", 0)
	}

	if filter.Since != nil {
		query = query.Where("created_at >= ?", *filter.Since)
	}
	if filter.Cursor > 0 {
		query = query.Where("id < ?", filter.Cursor)
	}

	err := query.Order("id DESC").Limit(filter.Limit).Find(&entries).Error
	return entries, err
}

// SumEntries 流水合计，用于对账
func (f *Fragment) SumEntries(ctx context.Context, userID uint64) (int64, error) {
	var sum int64
	err := f.Conn(ctx).Model(&models.LedgerEntry{}).
		Select("COALESCE(SUM(amount_change), 0)").
		Where("user_id = ?", userID).
		Scan(&sum).Error
	return sum, err
}

// TypeTotal 按流水类型汇总
type TypeTotal struct {
	TransactionType models.TransactionType `gorm:"column:transaction_type"`
	Count           int64                  `gorm:"column:count"`
	Amount          int64                  `gorm:"column:amount"`
}

func (f *Fragment) SumByType(ctx context.Context, userID uint64, since *time.Time) ([]TypeTotal, error) {
	var totals []TypeTotal
	query := f.Conn(ctx).Model(&models.LedgerEntry{}).
		Select("transaction_type, COUNT(*) AS count, COALESCE(SUM(amount_change), 0) AS amount").
		Where("user_id = ?", userID)
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}
	err := query.Group("transaction_type").Scan(&totals).Error
	return totals, err
}
