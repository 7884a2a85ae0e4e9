package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/taskpay-ng/taskpay/internal/domain"
	"github.com/taskpay-ng/taskpay/internal/dto"
	"github.com/taskpay-ng/taskpay/internal/service/ledgerservice"
	"github.com/taskpay-ng/taskpay/internal/service/taskservice"
	"github.com/taskpay-ng/taskpay/pkg/auth"
	"github.com/taskpay-ng/taskpay/pkg/utils"
)

type Service interface {
	CheckIn(ctx context.Context, userID int) (*domain.Transaction, error)
	WatchAd(ctx context.Context, userID int, adID string) (*domain.Transaction, error)
	AdsWatchedToday(ctx context.Context, userID int) (int, error)
}

type TaskHandler struct {
	taskService Service
}

func New(taskService Service) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CheckIn godoc
//
//	@Summary		Claim the daily check-in reward
//	@Description	Credit the daily check-in reward once per UTC calendar day. Premium only.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.TaskRewardResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Premium required"
//	@Failure		409	{object}	utils.Response	"Already checked in today"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/checkin [post]
func (h *TaskHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	txn, err := h.taskService.CheckIn(r.Context(), userID)
	if err != nil {
		respondTaskError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.TaskRewardResponseDTO{
		Reward:      txn.Amount,
		Description: txn.Description,
	})
}

// WatchAd godoc
//
//	@Summary		Claim an ad-watch reward
//	@Description	Credit the ad reward, capped per UTC calendar day. Premium only.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.WatchAdRequestDTO	true	"Watched ad payload"
//	@Success		200		{object}	dto.TaskRewardResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		403		{object}	utils.Response	"Premium required"
//	@Failure		409		{object}	utils.Response	"Daily ad limit reached"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/ads [post]
func (h *TaskHandler) WatchAd(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.WatchAdRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	txn, err := h.taskService.WatchAd(r.Context(), userID, req.AdID)
	if err != nil {
		respondTaskError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.TaskRewardResponseDTO{
		Reward:      txn.Amount,
		Description: txn.Description,
	})
}

// AdsStatus godoc
//
//	@Summary		Get today's ad-watch usage
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.AdsStatusResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/ads [get]
func (h *TaskHandler) AdsStatus(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	watched, err := h.taskService.AdsWatchedToday(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.AdsStatusResponseDTO{
		WatchedToday: watched,
		DailyLimit:   taskservice.MaxAdsPerDay,
	})
}

func respondTaskError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, taskservice.ErrPremiumRequired):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, taskservice.ErrAlreadyCheckedIn), errors.Is(err, taskservice.ErrAdLimitReached):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ledgerservice.ErrUserNotFound):
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
