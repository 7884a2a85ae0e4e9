package taskservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/taskpay-ng/taskpay/internal/domain"
	"github.com/taskpay-ng/taskpay/internal/pg"
	"github.com/taskpay-ng/taskpay/internal/service/ledgerservice"
	"go.uber.org/zap"
)

const (
	// CheckInReward is credited once per UTC calendar day.
	CheckInReward int64 = 100
	// AdReward is credited per watched ad, up to MaxAdsPerDay.
	AdReward int64 = 100
	// MaxAdsPerDay caps ad rewards within one UTC calendar day.
	MaxAdsPerDay int = 5
)

var (
	ErrPremiumRequired  = errors.New("premium access required")
	ErrAlreadyCheckedIn = errors.New("already checked in today")
	ErrAdLimitReached   = errors.New("daily ad limit reached")
)

type UserRepo interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
	SetLastCheckIn(ctx context.Context, userID int, at time.Time) error
}

type TransactionRepo interface {
	CountByUserSourceSince(ctx context.Context, userID int, source string, since time.Time) (int, error)
}

type Ledger interface {
	LockAccounts(userIDs ...int) func()
	Credit(ctx context.Context, userID int, amount int64, entry *domain.Transaction) (int64, error)
}

type Service struct {
	userRepo  UserRepo
	txnRepo   TransactionRepo
	ledger    Ledger
	txManager pg.TXManager
}

func New(userRepo UserRepo, txnRepo TransactionRepo, ledger Ledger, txManager pg.TXManager) *Service {
	return &Service{
		userRepo:  userRepo,
		txnRepo:   txnRepo,
		ledger:    ledger,
		txManager: txManager,
	}
}

// CheckIn credits the daily reward once per UTC day. Eligibility is
// re-checked under the account lock so two sessions cannot both pass.
func (s *Service) CheckIn(ctx context.Context, userID int) (*domain.Transaction, error) {
	unlock := s.ledger.LockAccounts(userID)
	defer unlock()

	now := time.Now()
	entry := &domain.Transaction{
		UserID:      userID,
		Kind:        domain.TxnKindTask,
		Source:      domain.SourceDailyCheckIn,
		Amount:      CheckInReward,
		Status:      domain.TxnStatusCompleted,
		Description: "Daily Check-In",
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
			if !user.Premium {
				return pg.Permanent(ErrPremiumRequired)
			}
			if !CanCheckIn(user, now) {
				return pg.Permanent(ErrAlreadyCheckedIn)
			}

			if _, err := s.ledger.Credit(ctx, userID, CheckInReward, entry); err != nil {
				return err
			}
			return s.userRepo.SetLastCheckIn(ctx, userID, now)
		})
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("daily check-in credited", zap.Int("userID", userID))
	return entry, nil
}

// WatchAd credits the ad reward while the user stays under the daily cap.
func (s *Service) WatchAd(ctx context.Context, userID int, adID string) (*domain.Transaction, error) {
	unlock := s.ledger.LockAccounts(userID)
	defer unlock()

	now := time.Now()
	entry := &domain.Transaction{
		UserID:      userID,
		Kind:        domain.TxnKindTask,
		Source:      domain.SourceAdView,
		Amount:      AdReward,
		Status:      domain.TxnStatusCompleted,
		Description: fmt.Sprintf("Watched Ad %s", adID),
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
			if !user.Premium {
				return pg.Permanent(ErrPremiumRequired)
			}

			adsToday, err := s.txnRepo.CountByUserSourceSince(ctx, userID, domain.SourceAdView, dayStartUTC(now))
			if err != nil {
				return err
			}
			if !CanWatchAd(adsToday) {
				return pg.Permanent(ErrAdLimitReached)
			}

			_, err = s.ledger.Credit(ctx, userID, AdReward, entry)
			return err
		})
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("ad reward credited", zap.Int("userID", userID), zap.String("adID", adID))
	return entry, nil
}

// AdsWatchedToday is derived from the transaction log, never stored.
func (s *Service) AdsWatchedToday(ctx context.Context, userID int) (int, error) {
	return s.txnRepo.CountByUserSourceSince(ctx, userID, domain.SourceAdView, dayStartUTC(time.Now()))
}
