package paymentrepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/taskpay-ng/taskpay/internal/domain"
	"github.com/taskpay-ng/taskpay/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

const paymentColumns = `id, user_id, amount, proof_ref, status, created_at`

func scanPayment(row pgx.Row) (*domain.PaymentRequest, error) {
	var p domain.PaymentRequest
	err := row.Scan(&p.ID, &p.UserID, &p.Amount, &p.ProofRef, &p.Status, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) Create(ctx context.Context, payment *domain.PaymentRequest) (*domain.PaymentRequest, error) {
	query := `
		INSERT INTO payments (user_id, amount, proof_ref, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, payment.UserID, payment.Amount, payment.ProofRef, payment.Status).
		Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		zap.L().Error("can't save payment request", zap.Error(err))
		return nil, err
	}
	return payment, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.PaymentRequest, error) {
	payment, err := scanPayment(r.db.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find payment request", zap.Error(err))
		return nil, err
	}
	return payment, nil
}

func (r *Repository) List(ctx context.Context) ([]domain.PaymentRequest, error) {
	query := `
        SELECT ` + paymentColumns + `
        FROM payments
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("failed to fetch payment requests", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var payments []domain.PaymentRequest
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			zap.L().Error("failed to scan payment row", zap.Error(err))
			return nil, err
		}
		payments = append(payments, *payment)
	}
	return payments, rows.Err()
}

func (r *Repository) UpdateStatus(ctx context.Context, id int, status string) error {
	_, err := r.db.Exec(ctx, `UPDATE payments SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		zap.L().Error("can't update payment status", zap.Error(err))
		return err
	}
	return nil
}
