package repo

import (
	"github.com/taskpay-ng/taskpay/internal/pg"
	paymentrepo "github.com/taskpay-ng/taskpay/internal/repo/payment-repo"
	transactionrepo "github.com/taskpay-ng/taskpay/internal/repo/transaction-repo"
	userrepo "github.com/taskpay-ng/taskpay/internal/repo/user-repo"
	withdrawalrepo "github.com/taskpay-ng/taskpay/internal/repo/withdrawal-repo"
)

type Repositories struct {
	UserRepo        *userrepo.Repository
	TransactionRepo *transactionrepo.Repository
	PaymentRepo     *paymentrepo.Repository
	WithdrawalRepo  *withdrawalrepo.Repository
}

func New(conn pg.Database) *Repositories {
	return &Repositories{
		UserRepo:        userrepo.New(conn),
		TransactionRepo: transactionrepo.New(conn),
		PaymentRepo:     paymentrepo.New(conn),
		WithdrawalRepo:  withdrawalrepo.New(conn),
	}
}
