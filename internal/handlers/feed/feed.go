package feed

import (
	"context"
	"net/http"

	"github.com/taskpay-ng/taskpay/internal/dto"
	"github.com/taskpay-ng/taskpay/internal/service/feedservice"
	"github.com/taskpay-ng/taskpay/pkg/utils"
)

type Service interface {
	Recent(ctx context.Context) ([]feedservice.Item, error)
}

type FeedHandler struct {
	feedService Service
}

func New(feedService Service) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
	}
}

// GetFeed godoc
//
//	@Summary		Get the public activity feed
//	@Description	Recent settled withdrawals, premium upgrades and task rewards across the platform.
//	@Tags			Feed
//	@Produce		json
//	@Success		200	{array}		dto.FeedItemResponseDTO
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/feed [get]
func (h *FeedHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	items, err := h.feedService.Recent(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch feed")
		return
	}

	response := make([]dto.FeedItemResponseDTO, len(items))
	for i, item := range items {
		response[i] = dto.FeedItemResponseDTO{
			UserName:  item.UserName,
			Action:    item.Action,
			Amount:    item.Amount,
			CreatedAt: item.CreatedAt,
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}
