package paymentrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/taskpay-ng/taskpay/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	query := `
			INSERT INTO payments (user_id, amount, proof_ref, status)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at
		`

	tests := []struct {
		name      string
		payment   *domain.PaymentRequest
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Create payment request successfully",
			payment: &domain.PaymentRequest{
				UserID: 1, Amount: 18000, ProofRef: "TRX-12345", Status: domain.RequestStatusPending,
			},
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(query)).
					WithArgs(1, int64(18000), "TRX-12345", domain.RequestStatusPending).
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(10, now))
			},
			expectErr: false,
		},
		{
			name: "Database error",
			payment: &domain.PaymentRequest{
				UserID: 1, Amount: 18000, ProofRef: "TRX-12345", Status: domain.RequestStatusPending,
			},
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(query)).
					WithArgs(1, int64(18000), "TRX-12345", domain.RequestStatusPending).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.Create(context.Background(), tt.payment)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 10, result.ID)
				assert.Equal(t, now, result.CreatedAt)
			}
		})
	}
}

func TestRepository_FindByID(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    *domain.PaymentRequest
	}{
		{
			name: "Request found",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "user_id", "amount", "proof_ref", "status", "created_at"}).
					AddRow(10, 1, int64(18000), "TRX-12345", domain.RequestStatusPending, now)
				mock.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(10).WillReturnRows(rows)
			},
			result: &domain.PaymentRequest{
				ID: 10, UserID: 1, Amount: 18000, ProofRef: "TRX-12345",
				Status: domain.RequestStatusPending, CreatedAt: now,
			},
		},
		{
			name: "Request not found",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(10).WillReturnError(pgx.ErrNoRows)
			},
			result: nil,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(10).WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByID(context.Background(), 10)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
		})
	}
}

func TestRepository_List(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	query := `
        SELECT ` + paymentColumns + `
        FROM payments
        ORDER BY created_at DESC
    `

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		count     int
	}{
		{
			name: "Two requests",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "user_id", "amount", "proof_ref", "status", "created_at"}).
					AddRow(11, 2, int64(18000), "TRX-67890", domain.RequestStatusPending, now).
					AddRow(10, 1, int64(18000), "TRX-12345", domain.RequestStatusApproved, now.Add(-time.Hour))
				mock.ExpectQuery(regexp.QuoteMeta(query)).WillReturnRows(rows)
			},
			count: 2,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(query)).WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			payments, err := repo.List(context.Background())
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, payments, tt.count)
			}
		})
	}
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE payments SET status = $1 WHERE id = $2`)).
		WithArgs(domain.RequestStatusApproved, 10).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.UpdateStatus(context.Background(), 10, domain.RequestStatusApproved)
	assert.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE payments SET status = $1 WHERE id = $2`)).
		WithArgs(domain.RequestStatusApproved, 10).
		WillReturnError(errors.New("database error"))

	err = repo.UpdateStatus(context.Background(), 10, domain.RequestStatusApproved)
	assert.Error(t, err)
}
