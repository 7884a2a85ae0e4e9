package withdrawals

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/taskpay-ng/taskpay/internal/domain"
	"github.com/taskpay-ng/taskpay/internal/dto"
	"github.com/taskpay-ng/taskpay/internal/service/ledgerservice"
	"github.com/taskpay-ng/taskpay/internal/service/withdrawalservice"
	"github.com/taskpay-ng/taskpay/pkg/auth"
	"github.com/taskpay-ng/taskpay/pkg/utils"
	"github.com/taskpay-ng/taskpay/pkg/validate"
)

type Service interface {
	Request(ctx context.Context, userID int, amount int64, accountNumber, bankName string) (*domain.WithdrawalRequest, error)
	FindByUserID(ctx context.Context, userID int) ([]domain.WithdrawalRequest, error)
}

type WithdrawalHandler struct {
	withdrawalService Service
}

func New(withdrawalService Service) *WithdrawalHandler {
	return &WithdrawalHandler{
		withdrawalService: withdrawalService,
	}
}

// Request godoc
//
//	@Summary		Request a withdrawal
//	@Description	Debit the amount from the balance and file a payout request for admin review.
//	@Tags			Withdrawals
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.WithdrawRequestDTO	true	"Withdrawal request payload"
//	@Success		200		{object}	dto.WithdrawalResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body or amount below minimum"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		402		{object}	utils.Response	"Insufficient funds"
//	@Failure		422		{object}	utils.Response	"Invalid account number"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/withdrawals [post]
func (h *WithdrawalHandler) Request(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.WithdrawRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !validate.IsAccountNumber(req.AccountNumber) {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Invalid account number")
		return
	}
	if req.BankName == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Bank name is required")
		return
	}

	withdrawal, err := h.withdrawalService.Request(r.Context(), userID, req.Amount, req.AccountNumber, req.BankName)
	if err != nil {
		switch {
		case errors.Is(err, withdrawalservice.ErrBelowMinWithdrawal):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ledgerservice.ErrInsufficientFunds):
			utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toDTO(*withdrawal))
}

// GetWithdrawals godoc
//
//	@Summary		Get withdrawal history
//	@Description	Get the authenticated user's withdrawal requests, newest first.
//	@Tags			Withdrawals
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.WithdrawalResponseDTO
//	@Success		204	{object}	utils.Response	"Withdrawals not found"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/withdrawals [get]
func (h *WithdrawalHandler) GetWithdrawals(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	withdrawals, err := h.withdrawalService.FindByUserID(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch withdrawals")
		return
	}

	if len(withdrawals) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Withdrawals not found")
		return
	}

	response := make([]dto.WithdrawalResponseDTO, len(withdrawals))
	for i, wd := range withdrawals {
		response[i] = toDTO(wd)
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}

func toDTO(wd domain.WithdrawalRequest) dto.WithdrawalResponseDTO {
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
