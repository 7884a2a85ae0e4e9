package ledgerservice

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/taskpay-ng/taskpay/internal/domain"
	"github.com/taskpay-ng/taskpay/internal/pg"
	"github.com/taskpay-ng/taskpay/pkg/metrics"
	"go.uber.org/zap"
)

type UserRepo interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
	AdjustBalance(ctx context.Context, userID int, delta int64) (int64, error)
}

type TransactionRepo interface {
	Create(ctx context.Context, txn *domain.Transaction) (*domain.Transaction, error)
}

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Service owns every balance mutation. The unit of mutual exclusion is
// {balance, transaction log} per user: callers take the account lock for the
// whole check-then-act section, and Credit/Debit keep the balance write and
// the log append inside one storage transaction.
type Service struct {
	userRepo  UserRepo
	txnRepo   TransactionRepo
	txManager pg.TXManager

	locks sync.Map // userID -> *sync.Mutex
}

func New(userRepo UserRepo, txnRepo TransactionRepo, txManager pg.TXManager) *Service {
	return &Service{
		userRepo:  userRepo,
		txnRepo:   txnRepo,
		txManager: txManager,
	}
}

func (s *Service) lockFor(userID int) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// LockAccounts serializes writes for the given users and returns the unlock
// function. Locks are always taken in ascending user id order so that
// cross-account operations cannot deadlock each other.
func (s *Service) LockAccounts(userIDs ...int) func() {
	ids := make([]int, 0, len(userIDs))
	seen := make(map[int]struct{}, len(userIDs))
	for _, id := range userIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		s.lockFor(id).Lock()
	}
	return func() {
		for i := len(ids) - 1; i >= 0; i-- {
			s.lockFor(ids[i]).Unlock()
		}
	}
}

// Credit adds amount to the user's balance and, when entry is non-nil,
// appends it to the transaction log in the same storage transaction. The
// caller must hold the account lock.
func (s *Service) Credit(ctx context.Context, userID int, amount int64, entry *domain.Transaction) (int64, error) {
	newBalance, err := s.apply(ctx, userID, amount, entry)
	if err != nil {
		metrics.RecordLedgerOp("credit", "error")
		return 0, err
	}
	metrics.RecordLedgerOp("credit", "ok")
	return newBalance, nil
}

// Debit removes amount from the user's balance, failing with
// ErrInsufficientFunds when the balance cannot cover it. The caller must
// hold the account lock.
func (s *Service) Debit(ctx context.Context, userID int, amount int64, entry *domain.Transaction) (int64, error) {
	newBalance, err := s.apply(ctx, userID, -amount, entry)
	if err != nil {
		metrics.RecordLedgerOp("debit", "error")
		return 0, err
	}
	metrics.RecordLedgerOp("debit", "ok")
	return newBalance, nil
}

func (s *Service) apply(ctx context.Context, userID int, delta int64, entry *domain.Transaction) (int64, error) {
	var newBalance int64
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		user, err := s.userRepo.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return pg.Permanent(ErrUserNotFound)
		}
		if delta < 0 && user.Balance+delta < 0 {
			return pg.Permanent(ErrInsufficientFunds)
		}

		newBalance, err = s.userRepo.AdjustBalance(ctx, userID, delta)
		if err != nil {
			zap.L().Error("failed to adjust balance", zap.Int("userID", userID), zap.Error(err))
			return err
		}

		if entry != nil {
			if _, err := s.txnRepo.Create(ctx, entry); err != nil {
				zap.L().Error("failed to append transaction", zap.Int("userID", userID), zap.Error(err))
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newBalance, nil
}
