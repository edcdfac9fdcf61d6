package dto

import (
	"time"

	"careerbridge_backend/internal/models"
)

// LoginRequest - запрос входа
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest - запрос обновления токена
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest - запрос выхода
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ChangePasswordRequest - смена пароля авторизованным пользователем
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// LoginResponse - ответ с токенами
type LoginResponse struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	User         UserDTO `json:"user"`
}

// UserDTO - базовая информация о пользователе
type UserDTO struct {
	ID                 string            `json:"id"`
	Email              string            `json:"email"`
	FullName           string            `json:"full_name"`
	Role               models.UserRole   `json:"role"`
	Status             models.UserStatus `json:"status"`
	OnboardingComplete bool              `json:"onboarding_complete"`
	TemporaryPassword  bool              `json:"temporary_password"`
	CreatedAt          time.Time         `json:"created_at"`
}
