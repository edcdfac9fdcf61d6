package models

import "time"

// RegistrationToken - backing-запись подписанного регистрационного токена.
// Сама JWT-подпись проверяет срок и intent; single-use гарантирует
// именно флаг Consumed этой строки (conditional update "consume where
// consumed = false").
type RegistrationToken struct {
	BaseModel
	Email     string    `gorm:"not null;index"`
	Intent    string    `gorm:"type:varchar(32);not null;default:'registration'"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
	Consumed  bool      `gorm:"default:false"`

	// Заявка, после оплаты которой выписан токен (null для прямых приглашений)
	ConsultationID *string `gorm:"type:uuid"`
}

// IsLive - токен еще годен для регистрации
func (t *RegistrationToken) IsLive(now time.Time) bool {
	return !t.Consumed && now.Before(t.ExpiresAt)
}
