package accountservice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taskpay-ng/taskpay/internal/domain"
	"github.com/taskpay-ng/taskpay/internal/service/ledgerservice"
	"go.uber.org/mock/gomock"
)

type mocks struct {
	userRepo       *MockUserRepo
	txnRepo        *MockTransactionRepo
	paymentRepo    *MockPaymentRepo
	withdrawalRepo *MockWithdrawalRepo
}

func setup(t *testing.T) (*Service, *mocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := &mocks{
		userRepo:       NewMockUserRepo(ctrl),
		txnRepo:        NewMockTransactionRepo(ctrl),
		paymentRepo:    NewMockPaymentRepo(ctrl),
		withdrawalRepo: NewMockWithdrawalRepo(ctrl),
	}
	svc := New(m.userRepo, m.txnRepo, m.paymentRepo, m.withdrawalRepo)
	return svc, m
}

func TestGet(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the account", func(t *testing.T) {
		svc, m := setup(t)
		want := &domain.User{ID: 1, Balance: 300}
		m.userRepo.EXPECT().FindByID(ctx, 1).Return(want, nil)

		user, err := svc.Get(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, want, user)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, m := setup(t)
		m.userRepo.EXPECT().FindByID(ctx, 99).Return(nil, nil)

		user, err := svc.Get(ctx, 99)
		assert.ErrorIs(t, err, ledgerservice.ErrUserNotFound)
		assert.Nil(t, user)
	})
}

func TestTransactions(t *testing.T) {
	ctx := context.Background()
	svc, m := setup(t)
	want := []domain.Transaction{{ID: 1}, {ID: 2}}
	m.txnRepo.EXPECT().FindByUserID(ctx, 1).Return(want, nil)

	txns, err := svc.Transactions(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, want, txns)
}

func TestAdminOverview(t *testing.T) {
	ctx := context.Background()

	t.Run("aggregates platform totals", func(t *testing.T) {
		svc, m := setup(t)
		m.userRepo.EXPECT().List(ctx).Return([]domain.User{
			{ID: 1, Balance: 300, Premium: true},
			{ID: 2, Balance: 200},
			{ID: 3, Balance: 0},
		}, nil)
		m.paymentRepo.EXPECT().List(ctx).Return([]domain.PaymentRequest{
			{Status: domain.RequestStatusPending},
			{Status: domain.RequestStatusApproved},
		}, nil)
		m.withdrawalRepo.EXPECT().List(ctx).Return([]domain.WithdrawalRequest{
			{Status: domain.RequestStatusPending},
			{Status: domain.RequestStatusPending},
			{Status: domain.RequestStatusRejected},
		}, nil)

		overview, err := svc.AdminOverview(ctx)
		assert.NoError(t, err)
		assert.Equal(t, &Overview{
			TotalUsers:         3,
			PremiumUsers:       1,
			TotalBalance:       500,
			PendingPayments:    1,
			PendingWithdrawals: 2,
		}, overview)
	})

	t.Run("propagates storage errors", func(t *testing.T) {
		svc, m := setup(t)
		m.userRepo.EXPECT().List(ctx).Return(nil, errors.New("connection reset"))

		overview, err := svc.AdminOverview(ctx)
		assert.Error(t, err)
		assert.Nil(t, overview)
	})
}
