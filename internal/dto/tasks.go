package dto

type WatchAdRequestDTO struct {
	AdID string `json:"ad_id" example:"ad-42"`
}

type TaskRewardResponseDTO struct {
	Reward      int64  `json:"reward" example:"100"`
	Description string `json:"description" example:"Daily Check-In"`
}

type AdsStatusResponseDTO struct {
	WatchedToday int `json:"watched_today" example:"2"`
	DailyLimit   int `json:"daily_limit" example:"5"`
}
