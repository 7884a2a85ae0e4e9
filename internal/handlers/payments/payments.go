package payments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/taskpay-ng/taskpay/internal/domain"
	"github.com/taskpay-ng/taskpay/internal/dto"
	"github.com/taskpay-ng/taskpay/internal/service/paymentservice"
	"github.com/taskpay-ng/taskpay/pkg/auth"
	"github.com/taskpay-ng/taskpay/pkg/utils"
)

type Service interface {
	Submit(ctx context.Context, userID int, proofRef string) (*domain.PaymentRequest, error)
}

type PaymentHandler struct {
	paymentService Service
}

func New(paymentService Service) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// Submit godoc
//
//	@Summary		Submit a premium upgrade payment
//	@Description	Record proof of the off-platform premium fee transfer for admin review.
//	@Tags			Payments
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.SubmitPaymentRequestDTO	true	"Payment proof payload"
//	@Success		200		{object}	dto.PaymentResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		409		{object}	utils.Response	"Account already premium"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/payments [post]
func (h *PaymentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.SubmitPaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ProofRef == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Proof reference is required")
		return
	}

	payment, err := h.paymentService.Submit(r.Context(), userID, req.ProofRef)
	if err != nil {
		if errors.Is(err, paymentservice.ErrAlreadyPremium) {
			utils.RespondWithError(w, http.StatusConflict, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.PaymentResponseDTO{
		ID:        payment.ID,
		UserID:    payment.UserID,
		Amount:    payment.Amount,
		ProofRef:  payment.ProofRef,
		Status:    payment.Status,
		CreatedAt: payment.CreatedAt,
	})
}
