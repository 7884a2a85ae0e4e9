package domain

import "time"

const (
	RoleUser  string = "user"
	RoleAdmin string = "admin"
)

type User struct {
	ID           int        `db:"id"`
	Name         string     `db:"name"`
	Email        string     `db:"email"`
	Phone        string     `db:"phone"`
	PasswordHash string     `db:"password_hash"`
	Role         string     `db:"role"`
	Balance      int64      `db:"balance"`
	Premium      bool       `db:"premium"`
	ReferralCode string     `db:"referral_code"`
	ReferredBy   *int       `db:"referred_by"`
	LastCheckIn  *time.Time `db:"last_check_in"`
	CreatedAt    time.Time  `db:"created_at"`
}

const (
	// TxnKindTask reward for a completed daily task;
	TxnKindTask string = "task"
	// TxnKindPayment premium access fee paid off-platform, evidenced by proof;
	TxnKindPayment string = "payment"
	// TxnKindWithdrawal funds leaving the balance;
	TxnKindWithdrawal string = "withdrawal"
	// TxnKindBonus referral bonus credit;
	TxnKindBonus string = "bonus"
)

const (
	TxnStatusPending   string = "pending"
	TxnStatusCompleted string = "completed"
	TxnStatusApproved  string = "approved"
	TxnStatusRejected  string = "rejected"
)

// Source tags replace free-text description matching: every transaction
// carries the structured cause it originated from.
const (
	SourceDailyCheckIn      string = "daily_checkin"
	SourceAdView            string = "ad_view"
	SourceSignupBonus       string = "signup_bonus"
	SourceUpgradeBonus      string = "upgrade_bonus"
	SourcePremiumFee        string = "premium_fee"
	SourceWithdrawalRequest string = "withdrawal_request"
	SourceWithdrawalRefund  string = "withdrawal_refund"
)

type Transaction struct {
	ID          int       `db:"id"`
	UserID      int       `db:"user_id"`
	Kind        string    `db:"kind"`
	Source      string    `db:"source"`
	Amount      int64     `db:"amount"`
	Status      string    `db:"status"`
	Description string    `db:"description"`
	// RequestID links payment/withdrawal transactions to the originating
	// request; RefUserID links bonus transactions to the referred user.
	RequestID *int      `db:"request_id"`
	RefUserID *int      `db:"ref_user_id"`
	CreatedAt time.Time `db:"created_at"`
}

const (
	RequestStatusPending  string = "pending"
	RequestStatusApproved string = "approved"
	RequestStatusRejected string = "rejected"
)

type PaymentRequest struct {
	ID        int       `db:"id"`
	UserID    int       `db:"user_id"`
	Amount    int64     `db:"amount"`
	ProofRef  string    `db:"proof_ref"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}

type WithdrawalRequest struct {
	ID            int       `db:"id"`
	UserID        int       `db:"user_id"`
	Amount        int64     `db:"amount"`
	AccountNumber string    `db:"account_number"`
	BankName      string    `db:"bank_name"`
	Status        string    `db:"status"`
	CreatedAt     time.Time `db:"created_at"`
}
