package service

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/taskpay-ng/taskpay/internal/domain"
	"github.com/taskpay-ng/taskpay/internal/handlers/admin"
	"github.com/taskpay-ng/taskpay/internal/handlers/auth"
	"github.com/taskpay-ng/taskpay/internal/handlers/balance"
	"github.com/taskpay-ng/taskpay/internal/handlers/feed"
	"github.com/taskpay-ng/taskpay/internal/handlers/payments"
	"github.com/taskpay-ng/taskpay/internal/handlers/tasks"
	"github.com/taskpay-ng/taskpay/internal/handlers/withdrawals"

	pkgauth "github.com/taskpay-ng/taskpay/pkg/auth"

	"github.com/taskpay-ng/taskpay/internal/pg"
	"github.com/taskpay-ng/taskpay/internal/repo"
	accountservice "github.com/taskpay-ng/taskpay/internal/service/accountservice"
	authservice "github.com/taskpay-ng/taskpay/internal/service/authservice"
	feedservice "github.com/taskpay-ng/taskpay/internal/service/feedservice"
	ledgerservice "github.com/taskpay-ng/taskpay/internal/service/ledgerservice"
	paymentservice "github.com/taskpay-ng/taskpay/internal/service/paymentservice"
	referralservice "github.com/taskpay-ng/taskpay/internal/service/referralservice"
	taskservice "github.com/taskpay-ng/taskpay/internal/service/taskservice"
	withdrawalservice "github.com/taskpay-ng/taskpay/internal/service/withdrawalservice"
)

// Seeder creates the administrator account on startup.
type Seeder interface {
	EnsureAdmin(ctx context.Context, email, password string) (*domain.User, error)
}

type Services struct {
	AuthService       auth.Service
	TaskService       tasks.Service
	BalanceService    balance.Service
	PaymentService    payments.Service
	WithdrawalService withdrawals.Service
	FeedService       feed.Service
	AdminPayments     admin.PaymentService
	AdminWithdrawals  admin.WithdrawalService
	AdminAccounts     admin.AccountService
	Seeder            Seeder
}

func New(repo *repo.Repositories, txManager pg.TXManager, jwtService pkgauth.JWTServiceInterface, cache *redis.Client) *Services {
	ledgerService := ledgerservice.New(repo.UserRepo, repo.TransactionRepo, txManager)
	referralService := referralservice.New(repo.UserRepo, repo.TransactionRepo, ledgerService)
	authService := authservice.New(repo.UserRepo, referralService, &pkgauth.HashService{}, jwtService, txManager)
	taskService := taskservice.New(repo.UserRepo, repo.TransactionRepo, ledgerService, txManager)
	paymentService := paymentservice.New(repo.UserRepo, repo.PaymentRepo, repo.TransactionRepo, ledgerService, referralService, txManager)
	withdrawalService := withdrawalservice.New(repo.WithdrawalRepo, repo.TransactionRepo, ledgerService, txManager)
	accountService := accountservice.New(repo.UserRepo, repo.TransactionRepo, repo.PaymentRepo, repo.WithdrawalRepo)
	feedService := feedservice.New(repo.TransactionRepo, repo.UserRepo, cache)

	return &Services{
		AuthService:       authService,
		TaskService:       taskService,
		BalanceService:    accountService,
		PaymentService:    paymentService,
		WithdrawalService: withdrawalService,
		FeedService:       feedService,
		AdminPayments:     paymentService,
		AdminWithdrawals:  withdrawalService,
		AdminAccounts:     accountService,
		Seeder:            authService,
	}
}
