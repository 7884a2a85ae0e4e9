package withdrawals

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taskpay-ng/taskpay/internal/domain"
	"github.com/taskpay-ng/taskpay/internal/service/ledgerservice"
	"github.com/taskpay-ng/taskpay/internal/service/withdrawalservice"
	"github.com/taskpay-ng/taskpay/pkg/auth"
	"github.com/taskpay-ng/taskpay/pkg/utils"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*WithdrawalHandler, *MockService) {
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

func TestRequestHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful request",
			body: `{"amount":6000,"account_number":"2404815702","bank_name":"First Bank"}`,
			prepareMock: func() {
				service.EXPECT().Request(gomock.Any(), 1, int64(6000), "2404815702", "First Bank").
					Return(&domain.WithdrawalRequest{
						ID:            20,
						UserID:        1,
						Amount:        6000,
						AccountNumber: "2404815702",
						BankName:      "First Bank",
						Status:        domain.RequestStatusPending,
					}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Below minimum",
			body: `{"amount":100,"account_number":"2404815702","bank_name":"First Bank"}`,
			prepareMock: func() {
				service.EXPECT().Request(gomock.Any(), 1, int64(100), "2404815702", "First Bank").
					Return(nil, withdrawalservice.ErrBelowMinWithdrawal)
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "amount below minimum withdrawal",
		},
		{
			name: "Insufficient funds",
			body: `{"amount":6000,"account_number":"2404815702","bank_name":"First Bank"}`,
			prepareMock: func() {
				service.EXPECT().Request(gomock.Any(), 1, int64(6000), "2404815702", "First Bank").
					Return(nil, ledgerservice.ErrInsufficientFunds)
			},
			expectedCode:  http.StatusPaymentRequired,
			expectedError: "insufficient funds",
		},
		{
			name:          "Invalid account number",
			body:          `{"amount":6000,"account_number":"1234","bank_name":"First Bank"}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "Invalid account number",
		},
		{
			name:          "Missing bank name",
			body:          `{"amount":6000,"account_number":"2404815702","bank_name":""}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Bank name is required",
		},
		{
			name:          "Invalid request body",
			body:          `{invalid json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := authed(httptest.NewRequest("POST", "/api/user/withdrawals", bytes.NewReader([]byte(tt.body))), 1)
			rr := httptest.NewRecorder()

			handler.Request(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp utils.Response
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedError, resp.Message)
			}
		})
	}
}

func TestGetWithdrawalsHandler(t *testing.T) {
	handler, service := NewMock(t)

	t.Run("returns the history", func(t *testing.T) {
		service.EXPECT().FindByUserID(gomock.Any(), 1).Return([]domain.WithdrawalRequest{
			{ID: 21, Amount: 5000, Status: domain.RequestStatusPending},
			{ID: 20, Amount: 6000, Status: domain.RequestStatusApproved},
		}, nil)

		req := authed(httptest.NewRequest("GET", "/api/user/withdrawals", nil), 1)
		rr := httptest.NewRecorder()

		handler.GetWithdrawals(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp []struct {
			ID     int    `json:"id"`
			Status string `json:"status"`
		}
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Len(t, resp, 2)
		assert.Equal(t, 21, resp[0].ID)
	})

	t.Run("empty history", func(t *testing.T) {
		service.EXPECT().FindByUserID(gomock.Any(), 1).Return(nil, nil)

		req := authed(httptest.NewRequest("GET", "/api/user/withdrawals", nil), 1)
		rr := httptest.NewRecorder()

		handler.GetWithdrawals(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})
}
