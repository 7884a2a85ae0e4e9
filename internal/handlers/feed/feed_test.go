package feed

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/taskpay-ng/taskpay/internal/service/feedservice"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*FeedHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func TestGetFeedHandler(t *testing.T) {
	handler, service := NewMock(t)

	t.Run("returns the feed", func(t *testing.T) {
		service.EXPECT().Recent(gomock.Any()).Return([]feedservice.Item{
			{UserName: "Ada", Action: "Withdrawal", Amount: 6000, CreatedAt: time.Now()},
			{UserName: "Bayo", Action: "Premium Upgrade", Amount: 18000, CreatedAt: time.Now()},
		}, nil)

		req := httptest.NewRequest("GET", "/api/feed", nil)
		rr := httptest.NewRecorder()

		handler.GetFeed(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp []struct {
			UserName string `json:"user_name"`
			Action   string `json:"action"`
		}
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Len(t, resp, 2)
		assert.Equal(t, "Ada", resp[0].UserName)
	})

	t.Run("empty feed renders as an empty array", func(t *testing.T) {
		service.EXPECT().Recent(gomock.Any()).Return(nil, nil)

		req := httptest.NewRequest("GET", "/api/feed", nil)
		rr := httptest.NewRecorder()

		handler.GetFeed(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("storage failure", func(t *testing.T) {
		service.EXPECT().Recent(gomock.Any()).Return(nil, errors.New("connection reset"))

		req := httptest.NewRequest("GET", "/api/feed", nil)
		rr := httptest.NewRecorder()

		handler.GetFeed(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
