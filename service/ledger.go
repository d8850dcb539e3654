package service

import (
	"Focus/config"
	"Focus/dao"
	"Focus/models"
	"Focus/pkg/log"
	"Focus/types"
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
	maxReasonLength  = 255
)

var _ ILedgerService = (*LedgerService)(nil)

type ILedgerService interface {
	GetBalance(ctx context.Context, userID uint64) (int64, error)
	Account(ctx context.Context, userID uint64) (*types.FragmentAccount, error)
	Credit(ctx context.Context, req CreditRequest) (*models.LedgerEntry, error)
	Debit(ctx context.Context, req DebitRequest) (*models.LedgerEntry, error)
	History(ctx context.Context, userID uint64, q HistoryQuery) (*types.ListFragmentRecords, error)
	Reconcile(ctx context.Context, userID uint64) (*types.ReconcileResult, error)
}

// CreditRequest 入账请求，Type 为空时按 EARN 处理
type CreditRequest struct {
	UserID          uint64
	Amount          int64
	Type            models.TransactionType
	Reason          string
	RelatedRewardID *uint64
}

// DebitRequest 出账请求，Type 为空时按 SPEND 处理
type DebitRequest struct {
	UserID          uint64
	Amount          int64
	Type            models.TransactionType
	Reason          string
	RelatedRewardID *uint64
}

type HistoryQuery struct {
	Since  *time.Time
	Action string // income | expense
	Cursor uint64
	Limit  int
}

type LedgerService struct {
	Tx          *dao.TxManager
	FragmentDAO *dao.Fragment
	Users       UserRepository
	Locker      Locker

	lockWait time.Duration
	now      func() time.Time
}

func NewLedgerService(conf *config.Config, tx *dao.TxManager, fragmentDAO *dao.Fragment, users UserRepository, locker Locker) *LedgerService {
	return &LedgerService{
		Tx:          tx,
		FragmentDAO: fragmentDAO,
		Users:       users,
		Locker:      locker,
		lockWait:    conf.Reward.LockWait(),
		now:         time.Now,
	}
}

type heldKey struct {
	userID uint64
}

// unitOfWork 收集本次事务写入的流水，提交后统一上报
type unitOfWork struct {
	entries []*models.LedgerEntry
}

func (u *unitOfWork) add(entry *models.LedgerEntry) {
	if u != nil {
		u.entries = append(u.entries, entry)
	}
}

func unitOf(ctx context.Context, userID uint64) *unitOfWork {
	uow, _ := ctx.Value(heldKey{userID}).(*unitOfWork)
	return uow
}

func lockName(userID uint64) string {
	return fmt.Sprintf("fragment:%d", userID)
}

// Atomic 在用户锁和数据库事务内执行 fn。
// 同一用户的嵌套调用复用外层的锁和事务；fn 返回错误时整体回滚。
func (s *LedgerService) Atomic(ctx context.Context, userID uint64, fn func(ctx context.Context) error) error {
	if userID == 0 {
		return validationError("用户ID不能为空")
	}
	if unitOf(ctx, userID) != nil {
		return s.Tx.Transaction(ctx, fn)
	}

	waitCtx, cancel := context.WithTimeout(ctx, s.lockWait)
	release, err := s.Locker.Acquire(waitCtx, lockName(userID))
	cancel()
	if err != nil {
		return fmt.Errorf("acquire fragment lock for user %d: %w", userID, err)
	}
	defer release()

	// 出账之后必须走到提交或回滚，不受调用方取消影响
	uow := &unitOfWork{}
	ctx = context.WithoutCancel(context.WithValue(ctx, heldKey{userID}, uow))

	err = s.Tx.Transaction(ctx, fn)
	var rbErr *dao.RollbackError
	if errors.As(err, &rbErr) {
		log.L.Error("fragment ledger rollback failed, manual reconciliation required",
			zap.Uint64("user_id", userID),
			zap.NamedError("cause", rbErr.Cause),
			zap.NamedError("rollback", rbErr.Rollback),
		)
		return consistencyError("账本回滚失败", err)
	}
	if err != nil {
		return err
	}

	// 只上报已提交的流水
	for _, entry := range uow.entries {
		ledgerMutations.WithLabelValues(string(entry.TransactionType)).Inc()
		log.L.Info("fragment ledger entry committed",
			zap.Uint64("user_id", entry.UserID),
			zap.Uint64("entry_id", entry.ID),
			zap.String("type", string(entry.TransactionType)),
			zap.Int64("amount", entry.AmountChange),
			zap.Int64("balance", entry.BalanceAfter),
			zap.String("reason", entry.Reason),
		)
	}
	return nil
}

func (s *LedgerService) GetBalance(ctx context.Context, userID uint64) (int64, error) {
	account, err := s.FragmentDAO.GetAccount(ctx, userID)
	if err != nil {
		return 0, err
	}
	return account.Balance, nil
}

func (s *LedgerService) Account(ctx context.Context, userID uint64) (*types.FragmentAccount, error) {
	account, err := s.FragmentDAO.GetAccount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toFragmentAccount(account), nil
}

func (s *LedgerService) Credit(ctx context.Context, req CreditRequest) (*models.LedgerEntry, error) {
	if req.Type == "" {
		req.Type = models.TxEarn
	}
	if !req.Type.IsCredit() {
		return nil, validationError("非法的入账类型: " + string(req.Type))
	}
	if err := validateMutation(req.UserID, req.Amount, req.Reason); err != nil {
		return nil, err
	}

	var entry *models.LedgerEntry
	err := s.Atomic(ctx, req.UserID, func(ctx context.Context) error {
		if err := s.checkUser(ctx, req.UserID); err != nil {
			return err
		}

		now := s.now()
		if err := s.FragmentDAO.EnsureAccount(ctx, req.UserID); err != nil {
			return err
		}
		rows, err := s.FragmentDAO.Increase(ctx, req.UserID, req.Amount, now)
		if err != nil {
			return fmt.Errorf("increase fragments: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("fragment account of user %d not found after ensure", req.UserID)
		}

		after, err := s.verifiedAccount(ctx, req.UserID)
		if err != nil {
			return err
		}

		entry = &models.LedgerEntry{
			UserID:          req.UserID,
			TransactionType: req.Type,
			AmountChange:    req.Amount,
			BalanceBefore:   after.Balance - req.Amount,
			BalanceAfter:    after.Balance,
			Reason:          req.Reason,
			RelatedRewardID: req.RelatedRewardID,
			CreatedAt:       now,
		}
		if err := s.FragmentDAO.CreateEntry(ctx, entry); err != nil {
			return err
		}
		unitOf(ctx, req.UserID).add(entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *LedgerService) Debit(ctx context.Context, req DebitRequest) (*models.LedgerEntry, error) {
	if req.Type == "" {
		req.Type = models.TxSpend
	}
	if !req.Type.IsDebit() {
		return nil, validationError("非法的出账类型: " + string(req.Type))
	}
	if err := validateMutation(req.UserID, req.Amount, req.Reason); err != nil {
		return nil, err
	}

	var entry *models.LedgerEntry
	err := s.Atomic(ctx, req.UserID, func(ctx context.Context) error {
		if err := s.checkUser(ctx, req.UserID); err != nil {
			return err
		}

		now := s.now()
		rows, err := s.FragmentDAO.Decrease(ctx, req.UserID, req.Amount, now)
		if err != nil {
			return fmt.Errorf("decrease fragments: %w", err)
		}
		if rows == 0 {
			// 没有账户或余额不足
			account, err := s.FragmentDAO.GetAccount(ctx, req.UserID)
			if err != nil {
				return err
			}
			return insufficientBalance(account.Balance, req.Amount)
		}

		after, err := s.verifiedAccount(ctx, req.UserID)
		if err != nil {
			return err
		}

		entry = &models.LedgerEntry{
			UserID:          req.UserID,
			TransactionType: req.Type,
			AmountChange:    -req.Amount,
			BalanceBefore:   after.Balance + req.Amount,
			BalanceAfter:    after.Balance,
			Reason:          req.Reason,
			RelatedRewardID: req.RelatedRewardID,
			CreatedAt:       now,
		}
		if err := s.FragmentDAO.CreateEntry(ctx, entry); err != nil {
			return err
		}
		unitOf(ctx, req.UserID).add(entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *LedgerService) History(ctx context.Context, userID uint64, q HistoryQuery) (*types.ListFragmentRecords, error) {
	switch q.Action {
	case "", "income", "expense":
	default:
		return nil, validationError("action 只能是 income 或 expense")
	}

	limit := normalizeLimit(q.Limit)
	// 多取一条判断是否还有下一页
	entries, err := s.FragmentDAO.ListEntries(ctx, userID, dao.EntryFilter{
		Since:  q.Since,
		Action: q.Action,
		Cursor: q.Cursor,
		Limit:  limit + 1,
	})
	if err != nil {
		return nil, err
	}

	hasMore := len(entries) > limit
	if hasMore {
		entries = entries[:limit]
	}

	records := make([]types.FragmentRecord, 0, len(entries))
	for _, e := range entries {
		orderType := "INCOME"
		if e.AmountChange < 0 {
			orderType = "EXPENSE"
		}
		records = append(records, types.FragmentRecord{
			ID:              e.ID,
			TransactionType: string(e.TransactionType),
			Amount:          e.AmountChange,
			BalanceBefore:   e.BalanceBefore,
			BalanceAfter:    e.BalanceAfter,
			Reason:          e.Reason,
			RelatedRewardID: e.RelatedRewardID,
			OrderType:       orderType,
			CreatedAt:       e.CreatedAt.Format(time.DateTime),
		})
	}

	var nextCursor uint64
	if hasMore {
		nextCursor = entries[len(entries)-1].ID
	}
	return &types.ListFragmentRecords{
		Records:    records,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}, nil
}

// Reconcile 核对 balance、累计值与流水合计
func (s *LedgerService) Reconcile(ctx context.Context, userID uint64) (*types.ReconcileResult, error) {
	var result *types.ReconcileResult
	err := s.Atomic(ctx, userID, func(ctx context.Context) error {
		account, err := s.FragmentDAO.GetAccount(ctx, userID)
		if err != nil {
			return err
		}
		sum, err := s.FragmentDAO.SumEntries(ctx, userID)
		if err != nil {
			return err
		}
		result = &types.ReconcileResult{
			UserID:      userID,
			Balance:     account.Balance,
			TotalEarned: account.TotalEarned,
			TotalSpent:  account.TotalSpent,
			LedgerSum:   sum,
			Consistent:  account.Reconciled() && sum == account.Balance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !result.Consistent {
		log.L.Error("fragment ledger out of balance",
			zap.Uint64("user_id", userID),
			zap.Int64("balance", result.Balance),
			zap.Int64("total_earned", result.TotalEarned),
			zap.Int64("total_spent", result.TotalSpent),
			zap.Int64("ledger_sum", result.LedgerSum),
		)
		return result, consistencyError("账本对账不一致", nil)
	}
	return result, nil
}

func (s *LedgerService) checkUser(ctx context.Context, userID uint64) error {
	ok, err := s.Users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return validationError("用户不存在")
	}
	return nil
}

// verifiedAccount 变更后的账户快照必须满足 balance == total_earned - total_spent
func (s *LedgerService) verifiedAccount(ctx context.Context, userID uint64) (*models.FragmentBalance, error) {
	account, err := s.FragmentDAO.GetAccount(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !account.Reconciled() {
		log.L.Error("fragment account out of balance",
			zap.Uint64("user_id", userID),
			zap.Int64("balance", account.Balance),
			zap.Int64("total_earned", account.TotalEarned),
			zap.Int64("total_spent", account.TotalSpent),
		)
		return nil, consistencyError("碎片账户不平", nil)
	}
	return account, nil
}

func validateMutation(userID uint64, amount int64, reason string) error {
	if userID == 0 {
		return validationError("用户ID不能为空")
	}
	if amount <= 0 {
		return validationError("碎片数额必须大于0")
	}
	if len(reason) > maxReasonLength {
		return validationError("原因过长")
	}
	return nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultPageLimit
	}
	if limit > maxPageLimit {
		return maxPageLimit
	}
	return limit
}

func toFragmentAccount(account *models.FragmentBalance) *types.FragmentAccount {
	return &types.FragmentAccount{
		UserID:       account.UserID,
		Balance:      account.Balance,
		TotalEarned:  account.TotalEarned,
		TotalSpent:   account.TotalSpent,
		LastEarnedAt: account.LastEarnedAt,
	}
}
