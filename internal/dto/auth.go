package dto

type RegisterRequestDTO struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required"`
	Password     string `json:"password" validate:"required,min=8"`
	ReferralCode string `json:"referral_code,omitempty" example:"TP-1A2B3C4D"`
}

type RegisterResponseDTO struct {
	Token        string `json:"token"`
	ReferralCode string `json:"referral_code" example:"TP-5E6F7A8B"`
	Balance      int64  `json:"balance" example:"200"`
}

type LoginRequestDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginResponseDTO struct {
	Token string `json:"token"`
}
