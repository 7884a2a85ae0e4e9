package dto

import "time"

type SubmitPaymentRequestDTO struct {
	ProofRef string `json:"proof_ref" validate:"required" example:"transfer-ref-001"`
}

type PaymentResponseDTO struct {
	ID        int       `json:"id" example:"10"`
	UserID    int       `json:"user_id" example:"1"`
	Amount    int64     `json:"amount" example:"18000"`
	ProofRef  string    `json:"proof_ref" example:"transfer-ref-001"`
	Status    string    `json:"status" example:"pending"`
	CreatedAt time.Time `json:"created_at" example:"2024-11-02T09:12:33+01:00"`
}
