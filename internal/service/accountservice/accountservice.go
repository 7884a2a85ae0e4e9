package accountservice

import (
	"context"

	"github.com/taskpay-ng/taskpay/internal/domain"
	"github.com/taskpay-ng/taskpay/internal/service/ledgerservice"
	"go.uber.org/zap"
)

type UserRepo interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type TransactionRepo interface {
	FindByUserID(ctx context.Context, userID int) ([]domain.Transaction, error)
}

type PaymentRepo interface {
	List(ctx context.Context) ([]domain.PaymentRequest, error)
}

type WithdrawalRepo interface {
	List(ctx context.Context) ([]domain.WithdrawalRequest, error)
}

// Overview is the admin dashboard aggregate.
type Overview struct {
	TotalUsers         int
	PremiumUsers       int
	TotalBalance       int64
	PendingPayments    int
	PendingWithdrawals int
}

type Service struct {
	userRepo       UserRepo
	txnRepo        TransactionRepo
	paymentRepo    PaymentRepo
	withdrawalRepo WithdrawalRepo
}

func New(userRepo UserRepo, txnRepo TransactionRepo, paymentRepo PaymentRepo, withdrawalRepo WithdrawalRepo) *Service {
	return &Service{
		userRepo:       userRepo,
		txnRepo:        txnRepo,
		paymentRepo:    paymentRepo,
		withdrawalRepo: withdrawalRepo,
	}
}

func (s *Service) Get(ctx context.Context, userID int) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		zap.L().Error("can't find user: ", zap.Error(err))
		return nil, err
	}
	if user == nil {
		return nil, ledgerservice.ErrUserNotFound
	}
	return user, nil
}

func (s *Service) Transactions(ctx context.Context, userID int) ([]domain.Transaction, error) {
	txns, err := s.txnRepo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("can't fetch transactions: ", zap.Error(err))
		return nil, err
	}
	return txns, nil
}

// AdminOverview aggregates platform totals for the admin dashboard.
func (s *Service) AdminOverview(ctx context.Context) (*Overview, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	withdrawals, err := s.withdrawalRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	overview := &Overview{TotalUsers: len(users)}
	for _, user := range users {
		overview.TotalBalance += user.Balance
		if user.Premium {
			overview.PremiumUsers++
		}
	}
	for _, payment := range payments {
		if payment.Status == domain.RequestStatusPending {
			overview.PendingPayments++
		}
	}
	for _, withdrawal := range withdrawals {
		if withdrawal.Status == domain.RequestStatusPending {
			overview.PendingWithdrawals++
		}
	}
	return overview, nil
}
