package userrepo

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

const userColumns = `id, name, email, phone, password_hash, role, balance, premium, referral_code, referred_by, last_check_in, created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Phone, &user.PasswordHash,
		&user.Role, &user.Balance, &user.Premium, &user.ReferralCode, &user.ReferredBy,
		&user.LastCheckIn, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) findOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find user", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
}

func (r *Repository) FindByReferralCode(ctx context.Context, code string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE referral_code = $1`, code)
}

func (r *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (name, email, phone, password_hash, role, balance, premium, referral_code, referred_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, user.Name, user.Email, user.Phone, user.PasswordHash,
		user.Role, user.Balance, user.Premium, user.ReferralCode, user.ReferredBy).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		zap.L().Error("can't save user", zap.Error(err))
		return nil, err
	}
	return user, nil
}

// AdjustBalance applies delta atomically and returns the new balance. The
// balance CHECK constraint backstops non-negativity at the storage level.
func (r *Repository) AdjustBalance(ctx context.Context, userID int, delta int64) (int64, error) {
	query := `
		UPDATE users
		SET balance = balance + $1
		WHERE id = $2
		RETURNING balance
	`
	var balance int64
	err := r.db.QueryRow(ctx, query, delta, userID).Scan(&balance)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, pgx.ErrNoRows
		}
		zap.L().Error("can't adjust user balance", zap.Error(err))
		return 0, err
	}
	return balance, nil
}

func (r *Repository) SetPremium(ctx context.Context, userID int, premium bool) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET premium = $1 WHERE id = $2`, premium, userID)
	if err != nil {
		zap.L().Error("can't update premium flag", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) SetLastCheckIn(ctx context.Context, userID int, at time.Time) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET last_check_in = $1 WHERE id = $2`, at, userID)
	if err != nil {
		zap.L().Error("can't update last check-in", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		zap.L().Error("failed to fetch users", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			zap.L().Error("failed to scan user row", zap.Error(err))
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}
