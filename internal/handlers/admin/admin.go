package admin

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/taskpay-ng/taskpay/internal/domain"
	"github.com/taskpay-ng/taskpay/internal/dto"
	"github.com/taskpay-ng/taskpay/internal/service/accountservice"
	"github.com/taskpay-ng/taskpay/internal/service/paymentservice"
	"github.com/taskpay-ng/taskpay/internal/service/withdrawalservice"
	"github.com/taskpay-ng/taskpay/pkg/utils"
)

type PaymentService interface {
	Approve(ctx context.Context, requestID int) (*domain.PaymentRequest, error)
	Reject(ctx context.Context, requestID int) (*domain.PaymentRequest, error)
	List(ctx context.Context) ([]domain.PaymentRequest, error)
}

type WithdrawalService interface {
	Approve(ctx context.Context, requestID int) (*domain.WithdrawalRequest, error)
	Reject(ctx context.Context, requestID int) (*domain.WithdrawalRequest, error)
	List(ctx context.Context) ([]domain.WithdrawalRequest, error)
}

type AccountService interface {
	AdminOverview(ctx context.Context) (*accountservice.Overview, error)
}

type AdminHandler struct {
	paymentService    PaymentService
	withdrawalService WithdrawalService
	accountService    AccountService
}

func New(paymentService PaymentService, withdrawalService WithdrawalService, accountService AccountService) *AdminHandler {
	return &AdminHandler{
		paymentService:    paymentService,
		withdrawalService: withdrawalService,
		accountService:    accountService,
	}
}

// ListPayments godoc
//
//	@Summary		List premium payment requests
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.PaymentResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Admin role required"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/payments [get]
func (h *AdminHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.paymentService.List(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch payments")
		return
	}

	response := make([]dto.PaymentResponseDTO, len(payments))
	for i, p := range payments {
		response[i] = paymentDTO(&p)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// ApprovePayment godoc
//
//	@Summary		Approve a premium payment
//	@Description	Grant premium, settle the fee transaction and pay the referrer's upgrade bonus on the first transition.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Payment request ID"
//	@Success		200	{object}	dto.PaymentResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Admin role required"
//	@Failure		404	{object}	utils.Response	"Request not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/payments/{id}/approve [post]
func (h *AdminHandler) ApprovePayment(w http.ResponseWriter, r *http.Request) {
	h.decidePayment(w, r, h.paymentService.Approve)
}

// RejectPayment godoc
//
//	@Summary		Reject a premium payment
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Payment request ID"
//	@Success		200	{object}	dto.PaymentResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Admin role required"
//	@Failure		404	{object}	utils.Response	"Request not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/payments/{id}/reject [post]
func (h *AdminHandler) RejectPayment(w http.ResponseWriter, r *http.Request) {
	h.decidePayment(w, r, h.paymentService.Reject)
}

// ListWithdrawals godoc
//
//	@Summary		List withdrawal requests
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.WithdrawalResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Admin role required"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/withdrawals [get]
func (h *AdminHandler) ListWithdrawals(w http.ResponseWriter, r *http.Request) {
	withdrawals, err := h.withdrawalService.List(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch withdrawals")
		return
	}

	response := make([]dto.WithdrawalResponseDTO, len(withdrawals))
	for i, wd := range withdrawals {
		response[i] = withdrawalDTO(&wd)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// ApproveWithdrawal godoc
//
//	@Summary		Approve a withdrawal
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Withdrawal request ID"
//	@Success		200	{object}	dto.WithdrawalResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Admin role required"
//	@Failure		404	{object}	utils.Response	"Request not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/withdrawals/{id}/approve [post]
func (h *AdminHandler) ApproveWithdrawal(w http.ResponseWriter, r *http.Request) {
	h.decideWithdrawal(w, r, h.withdrawalService.Approve)
}

// RejectWithdrawal godoc
//
//	@Summary		Reject a withdrawal
//	@Description	Reject the payout and return the held funds to the user's balance.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Withdrawal request ID"
//	@Success		200	{object}	dto.WithdrawalResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Admin role required"
//	@Failure		404	{object}	utils.Response	"Request not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/withdrawals/{id}/reject [post]
func (h *AdminHandler) RejectWithdrawal(w http.ResponseWriter, r *http.Request) {
	h.decideWithdrawal(w, r, h.withdrawalService.Reject)
}

// Overview godoc
//
//	@Summary		Get platform totals
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.AdminOverviewResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Admin role required"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/overview [get]
func (h *AdminHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.accountService.AdminOverview(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to build overview")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.AdminOverviewResponseDTO{
		TotalUsers:         overview.TotalUsers,
		PremiumUsers:       overview.PremiumUsers,
		TotalBalance:       overview.TotalBalance,
		PendingPayments:    overview.PendingPayments,
		PendingWithdrawals: overview.PendingWithdrawals,
	})
}

func (h *AdminHandler) decidePayment(w http.ResponseWriter, r *http.Request, decide func(context.Context, int) (*domain.PaymentRequest, error)) {
	id, err := requestID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request id")
		return
	}

	payment, err := decide(r.Context(), id)
	if err != nil {
		if errors.Is(err, paymentservice.ErrRequestNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, paymentDTO(payment))
}

func (h *AdminHandler) decideWithdrawal(w http.ResponseWriter, r *http.Request, decide func(context.Context, int) (*domain.WithdrawalRequest, error)) {
	id, err := requestID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request id")
		return
	}

	withdrawal, err := decide(r.Context(), id)
	if err != nil {
		if errors.Is(err, withdrawalservice.ErrRequestNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, withdrawalDTO(withdrawal))
}

func requestID(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

func paymentDTO(p *domain.PaymentRequest) dto.PaymentResponseDTO {
	return dto.PaymentResponseDTO{
		ID:        p.ID,
		UserID:    p.UserID,
		Amount:    p.Amount,
		ProofRef:  p.ProofRef,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
	}
}

func withdrawalDTO(wd *domain.WithdrawalRequest) dto.WithdrawalResponseDTO {
	return dto.WithdrawalResponseDTO{
		ID:            wd.ID,
		UserID:        wd.UserID,
		Amount:        wd.Amount,
		AccountNumber: wd.AccountNumber,
		BankName:      wd.BankName,
		Status:        wd.Status,
		CreatedAt:     wd.CreatedAt,
	}
}
