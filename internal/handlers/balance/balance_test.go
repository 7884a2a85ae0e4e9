package balance

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/taskpay-ng/taskpay/internal/domain"
	"github.com/taskpay-ng/taskpay/pkg/auth"
	"github.com/taskpay-ng/taskpay/pkg/utils"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*BalanceHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func authed(req *http.Request, userID int) *http.Request {
	ctx := context.WithValue(req.Context(), auth.UserIDKey, userID)
	return req.WithContext(ctx)
}

func TestGetBalanceHandler(t *testing.T) {
	handler, service := NewMock(t)

	t.Run("returns the account state", func(t *testing.T) {
		service.EXPECT().Get(gomock.Any(), 1).Return(&domain.User{
			ID:           1,
			Balance:      5200,
			Premium:      true,
			ReferralCode: "TP-1A2B3C4D",
		}, nil)

		req := authed(httptest.NewRequest("GET", "/api/user/balance", nil), 1)
		rr := httptest.NewRecorder()

		handler.GetBalance(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp struct {
			Balance      int64  `json:"balance"`
			Premium      bool   `json:"premium"`
			ReferralCode string `json:"referral_code"`
		}
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, int64(5200), resp.Balance)
		assert.True(t, resp.Premium)
		assert.Equal(t, "TP-1A2B3C4D", resp.ReferralCode)
	})

	t.Run("storage failure", func(t *testing.T) {
		service.EXPECT().Get(gomock.Any(), 1).Return(nil, errors.New("connection reset"))

		req := authed(httptest.NewRequest("GET", "/api/user/balance", nil), 1)
		rr := httptest.NewRecorder()

		handler.GetBalance(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestGetTransactionsHandler(t *testing.T) {
	handler, service := NewMock(t)

	t.Run("returns the history", func(t *testing.T) {
		now := time.Now()
		service.EXPECT().Transactions(gomock.Any(), 1).Return([]domain.Transaction{
			{ID: 2, Kind: domain.TxnKindTask, Amount: 100, Status: domain.TxnStatusCompleted, Description: "Daily Check-In", CreatedAt: now},
			{ID: 1, Kind: domain.TxnKindBonus, Amount: 200, Status: domain.TxnStatusCompleted, Description: "Referral Signup Bonus", CreatedAt: now},
		}, nil)

		req := authed(httptest.NewRequest("GET", "/api/user/transactions", nil), 1)
		rr := httptest.NewRecorder()

		handler.GetTransactions(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp []struct {
			ID     int    `json:"id"`
			Kind   string `json:"kind"`
			Amount int64  `json:"amount"`
		}
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Len(t, resp, 2)
		assert.Equal(t, 2, resp[0].ID)
	})

	t.Run("empty history", func(t *testing.T) {
		service.EXPECT().Transactions(gomock.Any(), 1).Return(nil, nil)

		req := authed(httptest.NewRequest("GET", "/api/user/transactions", nil), 1)
		rr := httptest.NewRecorder()

		handler.GetTransactions(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("storage failure", func(t *testing.T) {
		service.EXPECT().Transactions(gomock.Any(), 1).Return(nil, errors.New("connection reset"))

		req := authed(httptest.NewRequest("GET", "/api/user/transactions", nil), 1)
		rr := httptest.NewRecorder()

		handler.GetTransactions(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)

		var resp utils.Response
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "Failed to fetch transactions", resp.Message)
	})
}
