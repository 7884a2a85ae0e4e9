package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taskpay-ng/taskpay/internal/domain"
	"github.com/taskpay-ng/taskpay/internal/service/taskservice"
	"github.com/taskpay-ng/taskpay/pkg/auth"
	"github.com/taskpay-ng/taskpay/pkg/utils"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*TaskHandler, *MockService) {
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

func TestCheckInHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful check-in",
			prepareMock: func() {
				service.EXPECT().CheckIn(gomock.Any(), 1).Return(&domain.Transaction{
					Amount:      100,
					Description: "Daily Check-In",
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Already checked in",
			prepareMock: func() {
				service.EXPECT().CheckIn(gomock.Any(), 1).Return(nil, taskservice.ErrAlreadyCheckedIn)
			},
			expectedCode:  http.StatusConflict,
			expectedError: "already checked in today",
		},
		{
			name: "Premium required",
			prepareMock: func() {
				service.EXPECT().CheckIn(gomock.Any(), 1).Return(nil, taskservice.ErrPremiumRequired)
			},
			expectedCode:  http.StatusForbidden,
			expectedError: "premium access required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := authed(httptest.NewRequest("POST", "/api/user/checkin", nil), 1)
			rr := httptest.NewRecorder()

			handler.CheckIn(rr, req)

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

func TestWatchAdHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful ad reward",
			body: `{"ad_id":"ad-42"}`,
			prepareMock: func() {
				service.EXPECT().WatchAd(gomock.Any(), 1, "ad-42").Return(&domain.Transaction{
					Amount:      100,
					Description: "Watched Ad ad-42",
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Daily limit reached",
			body: `{"ad_id":"ad-43"}`,
			prepareMock: func() {
				service.EXPECT().WatchAd(gomock.Any(), 1, "ad-43").Return(nil, taskservice.ErrAdLimitReached)
			},
			expectedCode:  http.StatusConflict,
			expectedError: "daily ad limit reached",
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

			req := authed(httptest.NewRequest("POST", "/api/user/ads", bytes.NewReader([]byte(tt.body))), 1)
			rr := httptest.NewRecorder()

			handler.WatchAd(rr, req)

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

func TestAdsStatusHandler(t *testing.T) {
	handler, service := NewMock(t)

	service.EXPECT().AdsWatchedToday(gomock.Any(), 1).Return(2, nil)

	req := authed(httptest.NewRequest("GET", "/api/user/ads", nil), 1)
	rr := httptest.NewRecorder()

	handler.AdsStatus(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		WatchedToday int `json:"watched_today"`
		DailyLimit   int `json:"daily_limit"`
	}
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, 2, resp.WatchedToday)
	assert.Equal(t, taskservice.MaxAdsPerDay, resp.DailyLimit)
}
