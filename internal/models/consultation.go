package models

import (
	"time"

	"gorm.io/datatypes"
)

// ConsultationRequest - публичная заявка проспекта на консультацию.
// Создается без аккаунта, мутируется только действиями оператора.
// Никогда не удаляется: терминальные статусы confirmed/rejected.
type ConsultationRequest struct {
	BaseModel
	FullName string `gorm:"not null"`
	Email    string `gorm:"not null;index"`
	Phone    string

	// Свободный текст о целях проспекта
	TargetRoles string
	Concerns    string

	// Упорядоченный список из 1-3 предложенных слотов (RFC3339 строки в JSON)
	Slots datatypes.JSON `gorm:"type:jsonb;not null"`

	Status ConsultationStatus `gorm:"type:varchar(20);default:'pending';index"`

	// Заполняются только при confirmed (инвариант проверяет сервис)
	SelectedSlotIndex *int
	MeetingLink       *string

	AdminNotes  string
	ProcessedAt *time.Time

	// Проспект завершил регистрацию по токену, выписанному для этой заявки
	ConvertedAt *time.Time

	// Оплата фиксируется вручную оператором, максимум одна на заявку
	PaymentAmount     *float64
	PaymentMethod     *string
	PaymentReference  *string
	PaymentTier       *string
	PaymentVerifiedBy *string    `gorm:"type:uuid"`
	PaymentVerifiedAt *time.Time
}
