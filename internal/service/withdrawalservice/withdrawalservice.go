package withdrawalservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/taskpay-ng/taskpay/internal/domain"
	"github.com/taskpay-ng/taskpay/internal/pg"
	"github.com/taskpay-ng/taskpay/pkg/metrics"
	"go.uber.org/zap"
)

// MinWithdrawal is the smallest cash-out amount in minor units.
const MinWithdrawal int64 = 5000

var (
	ErrRequestNotFound    = errors.New("withdrawal request not found")
	ErrBelowMinWithdrawal = errors.New("amount below minimum withdrawal")
)

type WithdrawalRepo interface {
	Create(ctx context.Context, withdrawal *domain.WithdrawalRequest) (*domain.WithdrawalRequest, error)
	FindByID(ctx context.Context, id int) (*domain.WithdrawalRequest, error)
	FindByUserID(ctx context.Context, userID int) ([]domain.WithdrawalRequest, error)
	List(ctx context.Context) ([]domain.WithdrawalRequest, error)
	UpdateStatus(ctx context.Context, id int, status string) error
}

type TransactionRepo interface {
	UpdateStatusByRequest(ctx context.Context, kind string, requestID int, status string) error
}

type Ledger interface {
	LockAccounts(userIDs ...int) func()
	Credit(ctx context.Context, userID int, amount int64, entry *domain.Transaction) (int64, error)
	Debit(ctx context.Context, userID int, amount int64, entry *domain.Transaction) (int64, error)
}

type Service struct {
	withdrawalRepo WithdrawalRepo
	txnRepo        TransactionRepo
	ledger         Ledger
	txManager      pg.TXManager
}

func New(withdrawalRepo WithdrawalRepo, txnRepo TransactionRepo, ledger Ledger, txManager pg.TXManager) *Service {
	return &Service{
		withdrawalRepo: withdrawalRepo,
		txnRepo:        txnRepo,
		ledger:         ledger,
		txManager:      txManager,
	}
}

// Request debits the amount immediately and files a pending request, so
// the funds cannot be spent twice while the admin reviews it.
func (s *Service) Request(ctx context.Context, userID int, amount int64, accountNumber, bankName string) (*domain.WithdrawalRequest, error) {
	if amount < MinWithdrawal {
		return nil, ErrBelowMinWithdrawal
	}

	unlock := s.ledger.LockAccounts(userID)
	defer unlock()

	withdrawal := &domain.WithdrawalRequest{
		UserID:        userID,
		Amount:        amount,
		AccountNumber: accountNumber,
		BankName:      bankName,
		Status:        domain.RequestStatusPending,
	}

	err := pg.WithRetry(ctx, func(ctx context.Context) error {
		return s.txManager.Begin(ctx, func(ctx context.Context) error {
			if _, err := s.withdrawalRepo.Create(ctx, withdrawal); err != nil {
				return err
			}
			_, err := s.ledger.Debit(ctx, userID, amount, &domain.Transaction{
				UserID:      userID,
				Kind:        domain.TxnKindWithdrawal,
				Source:      domain.SourceWithdrawalRequest,
				Amount:      amount,
				Status:      domain.TxnStatusPending,
				Description: fmt.Sprintf("Withdrawal to %s", bankName),
				RequestID:   &withdrawal.ID,
			})
			return err
		})
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("withdrawal requested",
		zap.Int("userID", userID), zap.Int("requestID", withdrawal.ID), zap.Int64("amount", amount))
	return withdrawal, nil
}

// Approve settles the payout. The funds already left the balance at request
// time, so only the statuses move.
func (s *Service) Approve(ctx context.Context, requestID int) (*domain.WithdrawalRequest, error) {
	withdrawal, err := s.findRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	unlock := s.ledger.LockAccounts(withdrawal.UserID)
	defer unlock()

	err = pg.WithRetry(ctx, func(ctx context.Context) error {
		return s.txManager.Begin(ctx, func(ctx context.Context) error {
			current, err := s.withdrawalRepo.FindByID(ctx, requestID)
			if err != nil {
				return err
			}
			if current == nil {
				return pg.Permanent(ErrRequestNotFound)
			}
			if current.Status != domain.RequestStatusPending {
				withdrawal = current
				return nil
			}

			if err := s.withdrawalRepo.UpdateStatus(ctx, requestID, domain.RequestStatusApproved); err != nil {
				return err
			}
			if err := s.txnRepo.UpdateStatusByRequest(ctx, domain.TxnKindWithdrawal, requestID, domain.TxnStatusApproved); err != nil {
				return err
			}
			current.Status = domain.RequestStatusApproved
			withdrawal = current
			return nil
		})
	})
	if err != nil {
		metrics.RecordApproval("withdrawal", "error")
		return nil, err
	}

	metrics.RecordApproval("withdrawal", "approved")
	zap.L().Info("withdrawal approved", zap.Int("requestID", requestID))
	return withdrawal, nil
}

// Reject returns the held funds. The refund adjusts the balance directly:
// flipping the withdrawal transaction to rejected already takes the debit
// out of the replayable history, so a separate credit row would count twice.
func (s *Service) Reject(ctx context.Context, requestID int) (*domain.WithdrawalRequest, error) {
	withdrawal, err := s.findRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	unlock := s.ledger.LockAccounts(withdrawal.UserID)
	defer unlock()

	err = pg.WithRetry(ctx, func(ctx context.Context) error {
		return s.txManager.Begin(ctx, func(ctx context.Context) error {
			current, err := s.withdrawalRepo.FindByID(ctx, requestID)
			if err != nil {
				return err
			}
			if current == nil {
				return pg.Permanent(ErrRequestNotFound)
			}
			if current.Status != domain.RequestStatusPending {
				withdrawal = current
				return nil
			}

			if err := s.withdrawalRepo.UpdateStatus(ctx, requestID, domain.RequestStatusRejected); err != nil {
				return err
			}
			if err := s.txnRepo.UpdateStatusByRequest(ctx, domain.TxnKindWithdrawal, requestID, domain.TxnStatusRejected); err != nil {
				return err
			}
			if _, err := s.ledger.Credit(ctx, current.UserID, current.Amount, nil); err != nil {
				return err
			}
			current.Status = domain.RequestStatusRejected
			withdrawal = current
			return nil
		})
	})
	if err != nil {
		metrics.RecordApproval("withdrawal", "error")
		return nil, err
	}

	metrics.RecordApproval("withdrawal", "rejected")
	zap.L().Info("withdrawal rejected, funds returned",
		zap.Int("requestID", requestID), zap.Int64("amount", withdrawal.Amount))
	return withdrawal, nil
}

func (s *Service) FindByUserID(ctx context.Context, userID int) ([]domain.WithdrawalRequest, error) {
	withdrawals, err := s.withdrawalRepo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("can't find withdrawals: ", zap.Error(err))
		return nil, err
	}
	return withdrawals, nil
}

func (s *Service) List(ctx context.Context) ([]domain.WithdrawalRequest, error) {
	withdrawals, err := s.withdrawalRepo.List(ctx)
	if err != nil {
		zap.L().Error("can't list withdrawal requests: ", zap.Error(err))
		return nil, err
	}
	return withdrawals, nil
}

func (s *Service) findRequest(ctx context.Context, requestID int) (*domain.WithdrawalRequest, error) {
	withdrawal, err := s.withdrawalRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("find withdrawal request: %w", err)
	}
	if withdrawal == nil {
		return nil, ErrRequestNotFound
	}
	return withdrawal, nil
}
