package dto

type AdminOverviewResponseDTO struct {
	TotalUsers         int   `json:"total_users" example:"120"`
	PremiumUsers       int   `json:"premium_users" example:"34"`
	TotalBalance       int64 `json:"total_balance" example:"482100"`
	PendingPayments    int   `json:"pending_payments" example:"3"`
	PendingWithdrawals int   `json:"pending_withdrawals" example:"5"`
}
