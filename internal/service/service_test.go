package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taskpay-ng/taskpay/internal/pg"
	"github.com/taskpay-ng/taskpay/internal/repo"
	"github.com/taskpay-ng/taskpay/pkg/auth"
	gomock "go.uber.org/mock/gomock"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repos := repo.New(nil)
	txManager := pg.NewMockTXManager(ctrl)
	jwtService := auth.NewJWTService("test-secret")

	services := New(repos, txManager, jwtService, nil)

	assert.NotNil(t, services.AuthService)
	assert.NotNil(t, services.TaskService)
	assert.NotNil(t, services.BalanceService)
	assert.NotNil(t, services.PaymentService)
	assert.NotNil(t, services.WithdrawalService)
	assert.NotNil(t, services.FeedService)
	assert.NotNil(t, services.AdminPayments)
	assert.NotNil(t, services.AdminWithdrawals)
	assert.NotNil(t, services.AdminAccounts)
	assert.NotNil(t, services.Seeder)
}
