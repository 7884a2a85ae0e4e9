package taskservice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/taskpay-ng/taskpay/internal/domain"
	"github.com/taskpay-ng/taskpay/internal/pg"
	"github.com/taskpay-ng/taskpay/internal/service/ledgerservice"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Service, *MockUserRepo, *MockTransactionRepo, *MockLedger, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	userRepo := NewMockUserRepo(ctrl)
	txnRepo := NewMockTransactionRepo(ctrl)
	ledger := NewMockLedger(ctrl)
	txManager := pg.NewMockTXManager(ctrl)
	service := New(userRepo, txnRepo, ledger, txManager)
	defer ctrl.Finish()
	return service, userRepo, txnRepo, ledger, txManager
}

func prepareCommon(ledger *MockLedger, txManager *pg.MockTXManager) {
	ledger.EXPECT().LockAccounts(gomock.Any()).Return(func() {}).AnyTimes()
	txManager.EXPECT().
		Begin(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).
		AnyTimes()
}

func TestCheckIn(t *testing.T) {
	service, userRepo, _, ledger, txManager := NewMock(t)
	prepareCommon(ledger, txManager)

	yesterday := time.Now().AddDate(0, 0, -1)
	today := time.Now()

	tests := []struct {
		name          string
		prepareMock   func()
		expectedError error
	}{
		{
			name: "Successful first check-in",
			prepareMock: func() {
				userRepo.EXPECT().FindByID(gomock.Any(), 1).
					Return(&domain.User{ID: 1, Premium: true}, nil)
				ledger.EXPECT().Credit(gomock.Any(), 1, CheckInReward, gomock.Any()).
					Return(int64(100), nil)
				userRepo.EXPECT().SetLastCheckIn(gomock.Any(), 1, gomock.Any()).Return(nil)
			},
		},
		{
			name: "Successful check-in after yesterday",
			prepareMock: func() {
				userRepo.EXPECT().FindByID(gomock.Any(), 1).
					Return(&domain.User{ID: 1, Premium: true, LastCheckIn: &yesterday}, nil)
				ledger.EXPECT().Credit(gomock.Any(), 1, CheckInReward, gomock.Any()).
					Return(int64(200), nil)
				userRepo.EXPECT().SetLastCheckIn(gomock.Any(), 1, gomock.Any()).Return(nil)
			},
		},
		{
			name: "Second check-in same day",
			prepareMock: func() {
				userRepo.EXPECT().FindByID(gomock.Any(), 1).
					Return(&domain.User{ID: 1, Premium: true, LastCheckIn: &today}, nil)
			},
			expectedError: ErrAlreadyCheckedIn,
		},
		{
			name: "Non-premium user",
			prepareMock: func() {
				userRepo.EXPECT().FindByID(gomock.Any(), 1).
					Return(&domain.User{ID: 1, Premium: false}, nil)
			},
			expectedError: ErrPremiumRequired,
		},
		{
			name: "Unknown user",
			prepareMock: func() {
				userRepo.EXPECT().FindByID(gomock.Any(), 1).Return(nil, nil)
			},
			expectedError: ledgerservice.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			txn, err := service.CheckIn(context.Background(), 1)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, txn)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, domain.TxnKindTask, txn.Kind)
				assert.Equal(t, domain.SourceDailyCheckIn, txn.Source)
				assert.Equal(t, CheckInReward, txn.Amount)
				assert.Equal(t, domain.TxnStatusCompleted, txn.Status)
			}
		})
	}
}

func TestWatchAd(t *testing.T) {
	service, userRepo, txnRepo, ledger, txManager := NewMock(t)
	prepareCommon(ledger, txManager)

	tests := []struct {
		name          string
		adsToday      int
		prepareMock   func(adsToday int)
		expectedError error
	}{
		{
			name:     "First ad of the day",
			adsToday: 0,
			prepareMock: func(adsToday int) {
				userRepo.EXPECT().FindByID(gomock.Any(), 1).
					Return(&domain.User{ID: 1, Premium: true}, nil)
				txnRepo.EXPECT().CountByUserSourceSince(gomock.Any(), 1, domain.SourceAdView, gomock.Any()).
					Return(adsToday, nil)
				ledger.EXPECT().Credit(gomock.Any(), 1, AdReward, gomock.Any()).
					Return(int64(100), nil)
			},
		},
		{
			name:     "Fifth ad still allowed",
			adsToday: 4,
			prepareMock: func(adsToday int) {
				userRepo.EXPECT().FindByID(gomock.Any(), 1).
					Return(&domain.User{ID: 1, Premium: true}, nil)
				txnRepo.EXPECT().CountByUserSourceSince(gomock.Any(), 1, domain.SourceAdView, gomock.Any()).
					Return(adsToday, nil)
				ledger.EXPECT().Credit(gomock.Any(), 1, AdReward, gomock.Any()).
					Return(int64(500), nil)
			},
		},
		{
			name:     "Sixth ad rejected",
			adsToday: 5,
			prepareMock: func(adsToday int) {
				userRepo.EXPECT().FindByID(gomock.Any(), 1).
					Return(&domain.User{ID: 1, Premium: true}, nil)
				txnRepo.EXPECT().CountByUserSourceSince(gomock.Any(), 1, domain.SourceAdView, gomock.Any()).
					Return(adsToday, nil)
			},
			expectedError: ErrAdLimitReached,
		},
		{
			name:     "Non-premium user",
			adsToday: 0,
			prepareMock: func(int) {
				userRepo.EXPECT().FindByID(gomock.Any(), 1).
					Return(&domain.User{ID: 1, Premium: false}, nil)
			},
			expectedError: ErrPremiumRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock(tt.adsToday)

			txn, err := service.WatchAd(context.Background(), 1, "ad-42")
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, txn)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, domain.SourceAdView, txn.Source)
				assert.Contains(t, txn.Description, "ad-42")
			}
		})
	}
}
