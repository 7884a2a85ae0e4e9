package transactionrepo

import (
	"context"
	"time"

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

const txnColumns = `id, user_id, kind, source, amount, status, description, request_id, ref_user_id, created_at`

func scanTxn(row pgx.Row) (*domain.Transaction, error) {
	var txn domain.Transaction
	err := row.Scan(&txn.ID, &txn.UserID, &txn.Kind, &txn.Source, &txn.Amount,
		&txn.Status, &txn.Description, &txn.RequestID, &txn.RefUserID, &txn.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *Repository) Create(ctx context.Context, txn *domain.Transaction) (*domain.Transaction, error) {
	query := `
		INSERT INTO transactions (user_id, kind, source, amount, status, description, request_id, ref_user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, txn.UserID, txn.Kind, txn.Source, txn.Amount,
		txn.Status, txn.Description, txn.RequestID, txn.RefUserID).
		Scan(&txn.ID, &txn.CreatedAt)
	if err != nil {
		zap.L().Error("can't save transaction", zap.Error(err))
		return nil, err
	}
	return txn, nil
}

func (r *Repository) collect(rows pgx.Rows) ([]domain.Transaction, error) {
	defer rows.Close()
	var txns []domain.Transaction
	for rows.Next() {
		txn, err := scanTxn(rows)
		if err != nil {
			zap.L().Error("failed to scan transaction row", zap.Error(err))
			return nil, err
		}
		txns = append(txns, *txn)
	}
	return txns, rows.Err()
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.Transaction, error) {
	query := `
        SELECT ` + txnColumns + `
        FROM transactions
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("failed to fetch transactions", zap.Error(err))
		return nil, err
	}
	return r.collect(rows)
}

// FindRecent returns the newest transactions across all users, for the
// activity feed.
func (r *Repository) FindRecent(ctx context.Context, limit int) ([]domain.Transaction, error) {
	query := `
        SELECT ` + txnColumns + `
        FROM transactions
        ORDER BY created_at DESC
        LIMIT $1
    `
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		zap.L().Error("failed to fetch recent transactions", zap.Error(err))
		return nil, err
	}
	return r.collect(rows)
}

// CountByUserSourceSince counts a user's transactions with the given source
// tag created at or after since. Drives the daily ad cap.
func (r *Repository) CountByUserSourceSince(ctx context.Context, userID int, source string, since time.Time) (int, error) {
	query := `
        SELECT COUNT(*)
        FROM transactions
        WHERE user_id = $1 AND source = $2 AND created_at >= $3
    `
	var count int
	err := r.db.QueryRow(ctx, query, userID, source, since).Scan(&count)
	if err != nil {
		zap.L().Error("failed to count transactions", zap.Error(err))
		return 0, err
	}
	return count, nil
}

// UpdateStatusByRequest flips every pending transaction referencing the
// given request. Status is the only field an existing record may change.
func (r *Repository) UpdateStatusByRequest(ctx context.Context, kind string, requestID int, status string) error {
	query := `
		UPDATE transactions
		SET status = $1
		WHERE kind = $2 AND request_id = $3 AND status = $4
	`
	_, err := r.db.Exec(ctx, query, status, kind, requestID, domain.TxnStatusPending)
	if err != nil {
		zap.L().Error("can't update transaction status", zap.Error(err))
		return err
	}
	return nil
}

// ExistsBonus reports whether userID already holds a bonus transaction with
// the given source referencing refUserID. Upgrade-bonus idempotency hangs on
// this check.
func (r *Repository) ExistsBonus(ctx context.Context, userID int, source string, refUserID int) (bool, error) {
	query := `
        SELECT EXISTS (
            SELECT 1 FROM transactions
            WHERE user_id = $1 AND kind = $2 AND source = $3 AND ref_user_id = $4
        )
    `
	var exists bool
	err := r.db.QueryRow(ctx, query, userID, domain.TxnKindBonus, source, refUserID).Scan(&exists)
	if err != nil {
		zap.L().Error("failed to check bonus transaction", zap.Error(err))
		return false, err
	}
	return exists, nil
}

type ReplayRow struct {
	UserID  int
	Derived int64
}

// ReplayBalances re-derives each user's balance from the transaction log:
// completed/approved credits minus withdrawal debits that were not rejected.
func (r *Repository) ReplayBalances(ctx context.Context) ([]ReplayRow, error) {
	query := `
        SELECT user_id,
               COALESCE(SUM(CASE
                   WHEN kind IN ('task', 'bonus') AND status IN ('completed', 'approved') THEN amount
                   WHEN kind = 'withdrawal' AND status <> 'rejected' THEN -amount
                   ELSE 0
               END), 0)
        FROM transactions
        GROUP BY user_id
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("failed to replay balances", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var result []ReplayRow
	for rows.Next() {
		var row ReplayRow
		if err := rows.Scan(&row.UserID, &row.Derived); err != nil {
			zap.L().Error("failed to scan replay row", zap.Error(err))
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
