package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taskpay-ng/taskpay/internal/domain"
	"github.com/taskpay-ng/taskpay/internal/service/paymentservice"
	"github.com/taskpay-ng/taskpay/pkg/auth"
	"github.com/taskpay-ng/taskpay/pkg/utils"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*PaymentHandler, *MockService) {
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

func TestSubmitHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful submission",
			body: `{"proof_ref":"transfer-ref-001"}`,
			prepareMock: func() {
				service.EXPECT().Submit(gomock.Any(), 1, "transfer-ref-001").Return(&domain.PaymentRequest{
					ID:       10,
					UserID:   1,
					Amount:   paymentservice.PremiumFee,
					ProofRef: "transfer-ref-001",
					Status:   domain.RequestStatusPending,
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Already premium",
			body: `{"proof_ref":"transfer-ref-002"}`,
			prepareMock: func() {
				service.EXPECT().Submit(gomock.Any(), 1, "transfer-ref-002").
					Return(nil, paymentservice.ErrAlreadyPremium)
			},
			expectedCode:  http.StatusConflict,
			expectedError: "account already premium",
		},
		{
			name:          "Missing proof reference",
			body:          `{"proof_ref":""}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Proof reference is required",
		},
		{
			name:          "Invalid request body",
			body:          `{invalid json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := authed(httptest.NewRequest("POST", "/api/user/payments", bytes.NewReader([]byte(tt.body))), 1)
			rr := httptest.NewRecorder()

			handler.Submit(rr, req)

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
