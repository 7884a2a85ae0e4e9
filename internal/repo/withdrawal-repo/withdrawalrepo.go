package withdrawalrepo

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

const withdrawalColumns = `id, user_id, amount, account_number, bank_name, status, created_at`

func scanWithdrawal(row pgx.Row) (*domain.WithdrawalRequest, error) {
	var wd domain.WithdrawalRequest
	err := row.Scan(&wd.ID, &wd.UserID, &wd.Amount, &wd.AccountNumber, &wd.BankName, &wd.Status, &wd.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &wd, nil
}

func (r *Repository) Create(ctx context.Context, withdrawal *domain.WithdrawalRequest) (*domain.WithdrawalRequest, error) {
	query := `
		INSERT INTO withdrawals (user_id, amount, account_number, bank_name, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, withdrawal.UserID, withdrawal.Amount,
		withdrawal.AccountNumber, withdrawal.BankName, withdrawal.Status).
		Scan(&withdrawal.ID, &withdrawal.CreatedAt)
	if err != nil {
		zap.L().Error("can't save withdrawal request", zap.Error(err))
		return nil, err
	}
	return withdrawal, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.WithdrawalRequest, error) {
	withdrawal, err := scanWithdrawal(r.db.QueryRow(ctx, `SELECT `+withdrawalColumns+` FROM withdrawals WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find withdrawal request", zap.Error(err))
		return nil, err
	}
	return withdrawal, nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.WithdrawalRequest, error) {
	query := `
        SELECT ` + withdrawalColumns + `
        FROM withdrawals
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("failed to fetch withdrawals", zap.Error(err))
		return nil, err
	}
	return r.collect(rows)
}

func (r *Repository) List(ctx context.Context) ([]domain.WithdrawalRequest, error) {
	query := `
        SELECT ` + withdrawalColumns + `
        FROM withdrawals
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("failed to fetch withdrawals", zap.Error(err))
		return nil, err
	}
	return r.collect(rows)
}

func (r *Repository) collect(rows pgx.Rows) ([]domain.WithdrawalRequest, error) {
	defer rows.Close()
	var withdrawals []domain.WithdrawalRequest
	for rows.Next() {
		wd, err := scanWithdrawal(rows)
		if err != nil {
			zap.L().Error("failed to scan withdrawal row", zap.Error(err))
			return nil, err
		}
		withdrawals = append(withdrawals, *wd)
	}
	return withdrawals, rows.Err()
}

func (r *Repository) UpdateStatus(ctx context.Context, id int, status string) error {
	_, err := r.db.Exec(ctx, `UPDATE withdrawals SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		zap.L().Error("can't update withdrawal status", zap.Error(err))
		return err
	}
	return nil
}
