package dto

import "time"

// VerifyPaymentRequest - ручная фиксация оплаты оператором.
// Мост "проспект -> кандидат в клиенты": после нее уходит
// регистрационная ссылка.
type VerifyPaymentRequest struct {
	ProspectEmail string  `json:"prospect_email" validate:"required,email"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	Method        string  `json:"method" validate:"required"`
	Reference     string  `json:"reference,omitempty"`
	Tier          string  `json:"tier,omitempty"`
}

// InvitationResponse - результат verifyAndInvite.
// Resent=true: действующий токен уже существовал, письмо отправлено повторно,
// новый токен НЕ выпускался (идемпотентность повторных кликов оператора).
type InvitationResponse struct {
	RegistrationLink string    `json:"registration_link"`
	ExpiresAt        time.Time `json:"expires_at"`
	Resent           bool      `json:"resent"`
}

// DirectInviteRequest - прямое приглашение админом, без оплаченной
// консультации. Короткий TTL ссылки.
type DirectInviteRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"required,min=2"`
}
