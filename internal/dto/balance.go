package dto

import "time"

type BalanceResponseDTO struct {
	Balance      int64  `json:"balance" example:"5200"`
	Premium      bool   `json:"premium" example:"true"`
	ReferralCode string `json:"referral_code" example:"TP-1A2B3C4D"`
}

type TransactionResponseDTO struct {
	ID          int       `json:"id" example:"17"`
	Kind        string    `json:"kind" example:"task"`
	Amount      int64     `json:"amount" example:"100"`
	Status      string    `json:"status" example:"completed"`
	Description string    `json:"description" example:"Daily Check-In"`
	CreatedAt   time.Time `json:"created_at" example:"2024-11-02T09:12:33+01:00"`
}
