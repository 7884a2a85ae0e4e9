package referralservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/taskpay-ng/taskpay/internal/domain"
	"go.uber.org/zap"
)

const (
	// SignupBonus is credited to the new account when it signs up with a
	// valid referral code.
	SignupBonus int64 = 200
	// UpgradeBonus is credited to the referrer when the referred account
	// first turns premium. At most once per referred account.
	UpgradeBonus int64 = 500
)

// ErrInvalidReferralCode is a hard validation failure at signup: a non-empty
// code that resolves to nobody is rejected, not silently ignored.
var ErrInvalidReferralCode = errors.New("invalid referral code")

type UserRepo interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
	FindByReferralCode(ctx context.Context, code string) (*domain.User, error)
}

type TransactionRepo interface {
	ExistsBonus(ctx context.Context, userID int, source string, refUserID int) (bool, error)
}

type Ledger interface {
	Credit(ctx context.Context, userID int, amount int64, entry *domain.Transaction) (int64, error)
}

type Service struct {
	userRepo UserRepo
	txnRepo  TransactionRepo
	ledger   Ledger
}

func New(userRepo UserRepo, txnRepo TransactionRepo, ledger Ledger) *Service {
	return &Service{
		userRepo: userRepo,
		txnRepo:  txnRepo,
		ledger:   ledger,
	}
}

// Resolve maps a referral code to its owner. An empty code resolves to no
// referrer; a non-empty code that matches nobody is an error.
func (s *Service) Resolve(ctx context.Context, referralCode string) (*domain.User, error) {
	if referralCode == "" {
		return nil, nil
	}
	referrer, err := s.userRepo.FindByReferralCode(ctx, referralCode)
	if err != nil {
		return nil, err
	}
	if referrer == nil {
		return nil, ErrInvalidReferralCode
	}
	return referrer, nil
}

// ApplySignupBonus credits the welcome bonus to the freshly created account.
// The caller supplies the already-resolved referrer.
func (s *Service) ApplySignupBonus(ctx context.Context, userID, referrerID int) (int64, error) {
	entry := &domain.Transaction{
		UserID:      userID,
		Kind:        domain.TxnKindBonus,
		Source:      domain.SourceSignupBonus,
		Amount:      SignupBonus,
		Status:      domain.TxnStatusCompleted,
		Description: "Welcome Bonus",
		RefUserID:   &referrerID,
	}
	if _, err := s.ledger.Credit(ctx, userID, SignupBonus, entry); err != nil {
		return 0, err
	}
	zap.L().Info("signup bonus credited",
		zap.Int("userID", userID), zap.Int("referrerID", referrerID))
	return SignupBonus, nil
}

// ApplyUpgradeBonus credits the referrer for user's first premium upgrade.
// Idempotent: an existing upgrade-bonus transaction referencing user means
// the bonus was already granted, whatever path got us here. The caller must
// hold the account locks for both user and referrer and run inside the
// approval transaction.
func (s *Service) ApplyUpgradeBonus(ctx context.Context, user *domain.User) (int64, error) {
	if user.ReferredBy == nil {
		return 0, nil
	}

	referrer, err := s.userRepo.FindByID(ctx, *user.ReferredBy)
	if err != nil {
		return 0, err
	}
	if referrer == nil {
		// Referrer accounts are never deleted, but a dangling reference
		// must not block the upgrade itself.
		zap.L().Warn("referrer not found, skipping upgrade bonus",
			zap.Int("userID", user.ID), zap.Int("referrerID", *user.ReferredBy))
		return 0, nil
	}

	granted, err := s.txnRepo.ExistsBonus(ctx, referrer.ID, domain.SourceUpgradeBonus, user.ID)
	if err != nil {
		return 0, err
	}
	if granted {
		zap.L().Info("upgrade bonus already granted",
			zap.Int("userID", user.ID), zap.Int("referrerID", referrer.ID))
		return 0, nil
	}

	refUserID := user.ID
	entry := &domain.Transaction{
		UserID:      referrer.ID,
		Kind:        domain.TxnKindBonus,
		Source:      domain.SourceUpgradeBonus,
		Amount:      UpgradeBonus,
		Status:      domain.TxnStatusCompleted,
		Description: fmt.Sprintf("Referral Bonus: %s upgraded", user.Name),
		RefUserID:   &refUserID,
	}
	if _, err := s.ledger.Credit(ctx, referrer.ID, UpgradeBonus, entry); err != nil {
		return 0, err
	}

	zap.L().Info("upgrade bonus credited",
		zap.Int("userID", user.ID), zap.Int("referrerID", referrer.ID))
	return UpgradeBonus, nil
}
