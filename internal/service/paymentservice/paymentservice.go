package paymentservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/taskpay-ng/taskpay/internal/domain"
	"github.com/taskpay-ng/taskpay/internal/pg"
	"github.com/taskpay-ng/taskpay/internal/service/ledgerservice"
	"github.com/taskpay-ng/taskpay/pkg/metrics"
	"go.uber.org/zap"
)

// PremiumFee is the fixed upgrade price in minor units.
const PremiumFee int64 = 18000

var (
	ErrRequestNotFound = errors.New("payment request not found")
	ErrAlreadyPremium  = errors.New("account already premium")
)

type UserRepo interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
	SetPremium(ctx context.Context, userID int, premium bool) error
}

type PaymentRepo interface {
	Create(ctx context.Context, payment *domain.PaymentRequest) (*domain.PaymentRequest, error)
	FindByID(ctx context.Context, id int) (*domain.PaymentRequest, error)
	List(ctx context.Context) ([]domain.PaymentRequest, error)
	UpdateStatus(ctx context.Context, id int, status string) error
}

type TransactionRepo interface {
	Create(ctx context.Context, txn *domain.Transaction) (*domain.Transaction, error)
	UpdateStatusByRequest(ctx context.Context, kind string, requestID int, status string) error
}

type Ledger interface {
	LockAccounts(userIDs ...int) func()
}

type Referral interface {
	ApplyUpgradeBonus(ctx context.Context, user *domain.User) (int64, error)
}

type Service struct {
	userRepo    UserRepo
	paymentRepo PaymentRepo
	txnRepo     TransactionRepo
	ledger      Ledger
	referral    Referral
	txManager   pg.TXManager
}

func New(userRepo UserRepo, paymentRepo PaymentRepo, txnRepo TransactionRepo, ledger Ledger, referral Referral, txManager pg.TXManager) *Service {
	return &Service{
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
		txnRepo:     txnRepo,
		ledger:      ledger,
		referral:    referral,
		txManager:   txManager,
	}
}

// Submit records an off-platform premium fee payment as a pending request.
// The fee never moves through the balance, so no funds are debited here.
func (s *Service) Submit(ctx context.Context, userID int, proofRef string) (*domain.PaymentRequest, error) {
	unlock := s.ledger.LockAccounts(userID)
	defer unlock()

	payment := &domain.PaymentRequest{
		UserID:   userID,
		Amount:   PremiumFee,
		ProofRef: proofRef,
		Status:   domain.RequestStatusPending,
	}

	err := pg.WithRetry(ctx, func(ctx context.Context) error {
		return s.txManager.Begin(ctx, func(ctx context.Context) error {
			user, err := s.userRepo.FindByID(ctx, userID)
			if err != nil {
				return err
			}
			if user == nil {
				return pg.Permanent(ledgerservice.ErrUserNotFound)
			}
			if user.Premium {
				return pg.Permanent(ErrAlreadyPremium)
			}

			if _, err := s.paymentRepo.Create(ctx, payment); err != nil {
				return err
			}
			_, err = s.txnRepo.Create(ctx, &domain.Transaction{
				UserID:      userID,
				Kind:        domain.TxnKindPayment,
				Source:      domain.SourcePremiumFee,
				Amount:      PremiumFee,
				Status:      domain.TxnStatusPending,
				Description: "Premium Upgrade Fee",
				RequestID:   &payment.ID,
			})
			return err
		})
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("premium payment submitted",
		zap.Int("userID", userID), zap.Int("requestID", payment.ID))
	return payment, nil
}

// Approve flips the request to approved, grants premium and pays the
// referrer's upgrade bonus on the first transition. Re-approving a settled
// request changes nothing.
func (s *Service) Approve(ctx context.Context, requestID int) (*domain.PaymentRequest, error) {
	payment, err := s.findRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, payment.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ledgerservice.ErrUserNotFound
	}

	// The referrer account is locked alongside the payer so the bonus
	// credit and its dedup check stay inside one critical section.
	lockIDs := []int{user.ID}
	if user.ReferredBy != nil {
		lockIDs = append(lockIDs, *user.ReferredBy)
	}
	unlock := s.ledger.LockAccounts(lockIDs...)
	defer unlock()

	err = pg.WithRetry(ctx, func(ctx context.Context) error {
		return s.txManager.Begin(ctx, func(ctx context.Context) error {
			current, err := s.paymentRepo.FindByID(ctx, requestID)
			if err != nil {
				return err
			}
			if current == nil {
				return pg.Permanent(ErrRequestNotFound)
			}
			if current.Status != domain.RequestStatusPending {
				payment = current
				return nil
			}

			if err := s.paymentRepo.UpdateStatus(ctx, requestID, domain.RequestStatusApproved); err != nil {
				return err
			}
			if err := s.userRepo.SetPremium(ctx, current.UserID, true); err != nil {
				return err
			}
			if err := s.txnRepo.UpdateStatusByRequest(ctx, domain.TxnKindPayment, requestID, domain.TxnStatusApproved); err != nil {
				return err
			}
			if _, err := s.referral.ApplyUpgradeBonus(ctx, user); err != nil {
				return err
			}
			current.Status = domain.RequestStatusApproved
			payment = current
			return nil
		})
	})
	if err != nil {
		metrics.RecordApproval("payment", "error")
		return nil, err
	}

	metrics.RecordApproval("payment", "approved")
	zap.L().Info("premium payment approved",
		zap.Int("requestID", requestID), zap.Int("userID", payment.UserID))
	return payment, nil
}

// Reject marks the request and its pending transaction rejected. The fee was
// paid off-platform, so the balance stays untouched.
func (s *Service) Reject(ctx context.Context, requestID int) (*domain.PaymentRequest, error) {
	payment, err := s.findRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	unlock := s.ledger.LockAccounts(payment.UserID)
	defer unlock()

	err = pg.WithRetry(ctx, func(ctx context.Context) error {
		return s.txManager.Begin(ctx, func(ctx context.Context) error {
			current, err := s.paymentRepo.FindByID(ctx, requestID)
			if err != nil {
				return err
			}
			if current == nil {
				return pg.Permanent(ErrRequestNotFound)
			}
			if current.Status != domain.RequestStatusPending {
				payment = current
				return nil
			}

			if err := s.paymentRepo.UpdateStatus(ctx, requestID, domain.RequestStatusRejected); err != nil {
				return err
			}
			if err := s.txnRepo.UpdateStatusByRequest(ctx, domain.TxnKindPayment, requestID, domain.TxnStatusRejected); err != nil {
				return err
			}
			current.Status = domain.RequestStatusRejected
			payment = current
			return nil
		})
	})
	if err != nil {
		metrics.RecordApproval("payment", "error")
		return nil, err
	}

	metrics.RecordApproval("payment", "rejected")
	zap.L().Info("premium payment rejected", zap.Int("requestID", requestID))
	return payment, nil
}

func (s *Service) List(ctx context.Context) ([]domain.PaymentRequest, error) {
	payments, err := s.paymentRepo.List(ctx)
	if err != nil {
		zap.L().Error("can't list payment requests: ", zap.Error(err))
		return nil, err
	}
	return payments, nil
}

func (s *Service) findRequest(ctx context.Context, requestID int) (*domain.PaymentRequest, error) {
	payment, err := s.paymentRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("find payment request: %w", err)
	}
	if payment == nil {
		return nil, ErrRequestNotFound
	}
	return payment, nil
}
