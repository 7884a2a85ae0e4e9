package dto

import "time"

type FeedItemResponseDTO struct {
	UserName  string    `json:"user_name" example:"Ada"`
	Action    string    `json:"action" example:"Withdrawal"`
	Amount    int64     `json:"amount" example:"6000"`
	CreatedAt time.Time `json:"created_at" example:"2024-11-02T09:12:33+01:00"`
}
