package dto

// Request DTOs

type RegisterRequest struct {
	UIUID           string `json:"uiuId" validate:"required,max=20"`
	Name            string `json:"name" validate:"required,min=2,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8,max=128"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
	Phone           string `json:"phone" validate:"omitempty,max=15"`
}

type LoginRequest struct {
	UIUID    string `json:"uiuId" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LogoutRequest carries the refresh token to revoke. Every field is optional.
type LogoutRequest struct {
	RefreshToken string `json:"refresh"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh" validate:"required"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
	ExpiresIn    int64  `json:"expires_in"`
}

type AuthResponse struct {
	User   *UserResponse  `json:"user"`
	Tokens *TokenResponse `json:"tokens"`
}
