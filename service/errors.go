package service

import (
	"errors"
	"fmt"
)

// ErrorKind 奖励经济的业务错误分类，调用方按 Kind 分支处理
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindValidation
	KindInsufficientBalance
	KindRewardNotFound
	KindRewardInactive
	KindRewardOutOfStock
	KindLedgerConsistency
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindInsufficientBalance:
		return "insufficient_balance"
	case KindRewardNotFound:
		return "reward_not_found"
	case KindRewardInactive:
		return "reward_inactive"
	case KindRewardOutOfStock:
		return "reward_out_of_stock"
	case KindLedgerConsistency:
		return "ledger_consistency"
	default:
		return "unknown"
	}
}

// RewardError 带分类的业务错误。余额不足时携带当前余额和所需数额。
type RewardError struct {
	Kind           ErrorKind
	Msg            string
	CurrentBalance int64
	RequiredAmount int64
	Err            error
}

func (e *RewardError) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Kind == KindInsufficientBalance {
		msg = fmt.Sprintf("%s (current=%d, required=%d)", msg, e.CurrentBalance, e.RequiredAmount)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *RewardError) Unwrap() error {
	return e.Err
}

// Is 同 Kind 即视为相等，配合下方哨兵使用 errors.Is
func (e *RewardError) Is(target error) bool {
	t, ok := target.(*RewardError)
	return ok && t.Kind == e.Kind
}

var (
	ErrValidation          = &RewardError{Kind: KindValidation}
	ErrInsufficientBalance = &RewardError{Kind: KindInsufficientBalance}
	ErrRewardNotFound      = &RewardError{Kind: KindRewardNotFound}
	ErrRewardInactive      = &RewardError{Kind: KindRewardInactive}
	ErrRewardOutOfStock    = &RewardError{Kind: KindRewardOutOfStock}
	ErrLedgerConsistency   = &RewardError{Kind: KindLedgerConsistency}
)

// KindOf 非业务错误返回 KindUnknown
func KindOf(err error) ErrorKind {
	var re *RewardError
	if errors.As(err, &re) {
		return re.Kind
	}
	return KindUnknown
}

func validationError(msg string) *RewardError {
	return &RewardError{Kind: KindValidation, Msg: msg}
}

func insufficientBalance(current, required int64) *RewardError {
	return &RewardError{
		Kind:           KindInsufficientBalance,
		Msg:            "碎片余额不足",
		CurrentBalance: current,
		RequiredAmount: required,
	}
}

func consistencyError(msg string, cause error) *RewardError {
	return &RewardError{Kind: KindLedgerConsistency, Msg: msg, Err: cause}
}
