package balance

import (
	"context"
	"errors"
	"net/http"

	"github.com/taskpay-ng/taskpay/internal/domain"
	"github.com/taskpay-ng/taskpay/internal/dto"
	"github.com/taskpay-ng/taskpay/internal/service/ledgerservice"
	"github.com/taskpay-ng/taskpay/pkg/auth"
	"github.com/taskpay-ng/taskpay/pkg/utils"
)

type Service interface {
	Get(ctx context.Context, userID int) (*domain.User, error)
	Transactions(ctx context.Context, userID int) ([]domain.Transaction, error)
}

type BalanceHandler struct {
	accountService Service
}

func New(accountService Service) *BalanceHandler {
	return &BalanceHandler{
		accountService: accountService,
	}
}

// GetBalance godoc
//
//	@Summary		Get current balance
//	@Description	Retrieve the current balance, premium flag and referral code for the authenticated user.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.BalanceResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/balance [get]
func (h *BalanceHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	user, err := h.accountService.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ledgerservice.ErrUserNotFound) {
			utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{
		Balance:      user.Balance,
		Premium:      user.Premium,
		ReferralCode: user.ReferralCode,
	})
}

// GetTransactions godoc
//
//	@Summary		Get transaction history
//	@Description	Get the authenticated user's transaction history, newest first.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.TransactionResponseDTO
//	@Success		204	{object}	utils.Response	"No transactions"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/transactions [get]
func (h *BalanceHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	txns, err := h.accountService.Transactions(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}

	if len(txns) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Transactions not found")
		return
	}

	response := make([]dto.TransactionResponseDTO, len(txns))
	for i, txn := range txns {
		response[i] = dto.TransactionResponseDTO{
			ID:          txn.ID,
			Kind:        txn.Kind,
			Amount:      txn.Amount,
			Status:      txn.Status,
			Description: txn.Description,
			CreatedAt:   txn.CreatedAt,
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}
