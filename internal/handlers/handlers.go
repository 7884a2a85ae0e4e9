package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	_ "github.com/taskpay-ng/taskpay/docs"
	"github.com/taskpay-ng/taskpay/internal/domain"
	adminhandlers "github.com/taskpay-ng/taskpay/internal/handlers/admin"
	authhandlers "github.com/taskpay-ng/taskpay/internal/handlers/auth"
	balancehandlers "github.com/taskpay-ng/taskpay/internal/handlers/balance"
	feedhandlers "github.com/taskpay-ng/taskpay/internal/handlers/feed"
	paymenthandlers "github.com/taskpay-ng/taskpay/internal/handlers/payments"
	taskhandlers "github.com/taskpay-ng/taskpay/internal/handlers/tasks"
	withdrawalhandlers "github.com/taskpay-ng/taskpay/internal/handlers/withdrawals"
	"github.com/taskpay-ng/taskpay/internal/service"
	"github.com/taskpay-ng/taskpay/pkg/auth"
	"github.com/taskpay-ng/taskpay/pkg/metrics"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type TaskHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	WatchAd(w http.ResponseWriter, r *http.Request)
	AdsStatus(w http.ResponseWriter, r *http.Request)
}

type BalanceHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	GetTransactions(w http.ResponseWriter, r *http.Request)
}

type PaymentHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
}

type WithdrawalHandler interface {
	Request(w http.ResponseWriter, r *http.Request)
	GetWithdrawals(w http.ResponseWriter, r *http.Request)
}

type FeedHandler interface {
	GetFeed(w http.ResponseWriter, r *http.Request)
}

type AdminHandler interface {
	ListPayments(w http.ResponseWriter, r *http.Request)
	ApprovePayment(w http.ResponseWriter, r *http.Request)
	RejectPayment(w http.ResponseWriter, r *http.Request)
	ListWithdrawals(w http.ResponseWriter, r *http.Request)
	ApproveWithdrawal(w http.ResponseWriter, r *http.Request)
	RejectWithdrawal(w http.ResponseWriter, r *http.Request)
	Overview(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler       AuthHandler
	TaskHandler       TaskHandler
	BalanceHandler    BalanceHandler
	PaymentHandler    PaymentHandler
	WithdrawalHandler WithdrawalHandler
	FeedHandler       FeedHandler
	AdminHandler      AdminHandler

	jwtService auth.JWTServiceInterface
}

func New(s *service.Services, jwtService auth.JWTServiceInterface) *Handlers {
	return &Handlers{
		AuthHandler:       authhandlers.New(s.AuthService),
		TaskHandler:       taskhandlers.New(s.TaskService),
		BalanceHandler:    balancehandlers.New(s.BalanceService),
		PaymentHandler:    paymenthandlers.New(s.PaymentService),
		WithdrawalHandler: withdrawalhandlers.New(s.WithdrawalService),
		FeedHandler:       feedhandlers.New(s.FeedService),
		AdminHandler:      adminhandlers.New(s.AdminPayments, s.AdminWithdrawals, s.AdminAccounts),
		jwtService:        jwtService,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Method("GET", "/metrics", metrics.Handler())

	r.Get("/api/feed", h.FeedHandler.GetFeed)

	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", h.AuthHandler.Register)
		r.Post("/login", h.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware(h.jwtService))
			r.Post("/checkin", h.TaskHandler.CheckIn)
			r.Route("/ads", func(r chi.Router) {
				r.Post("/", h.TaskHandler.WatchAd)
				r.Get("/", h.TaskHandler.AdsStatus)
			})
			r.Get("/balance", h.BalanceHandler.GetBalance)
			r.Get("/transactions", h.BalanceHandler.GetTransactions)
			r.Post("/payments", h.PaymentHandler.Submit)
			r.Route("/withdrawals", func(r chi.Router) {
				r.Post("/", h.WithdrawalHandler.Request)
				r.Get("/", h.WithdrawalHandler.GetWithdrawals)
			})
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(
			auth.AuthMiddleware(h.jwtService),
			auth.RequireRole(domain.RoleAdmin),
		)
		r.Get("/overview", h.AdminHandler.Overview)
		r.Route("/payments", func(r chi.Router) {
			r.Get("/", h.AdminHandler.ListPayments)
			r.Post("/{id}/approve", h.AdminHandler.ApprovePayment)
			r.Post("/{id}/reject", h.AdminHandler.RejectPayment)
		})
		r.Route("/withdrawals", func(r chi.Router) {
			r.Get("/", h.AdminHandler.ListWithdrawals)
			r.Post("/{id}/approve", h.AdminHandler.ApproveWithdrawal)
			r.Post("/{id}/reject", h.AdminHandler.RejectWithdrawal)
		})
	})

	return r
}
