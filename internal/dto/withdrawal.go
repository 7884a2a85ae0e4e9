package dto

import "time"

type WithdrawRequestDTO struct {
	Amount        int64  `json:"amount" example:"6000"`
	AccountNumber string `json:"account_number" example:"2404815702"`
	BankName      string `json:"bank_name" example:"First Bank"`
}

type WithdrawalResponseDTO struct {
	ID            int       `json:"id" example:"20"`
	UserID        int       `json:"user_id" example:"1"`
	Amount        int64     `json:"amount" example:"6000"`
	AccountNumber string    `json:"account_number" example:"2404815702"`
	BankName      string    `json:"bank_name" example:"First Bank"`
	Status        string    `json:"status" example:"pending"`
	CreatedAt     time.Time `json:"created_at" example:"2024-11-02T09:12:33+01:00"`
}
