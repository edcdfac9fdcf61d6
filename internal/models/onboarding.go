package models

import (
	"time"

	"gorm.io/datatypes"
)

// OnboardingRecord - онбординг-анкета клиента, максимум одна на клиента
// (upsert-семантика). Повторная отправка всегда сбрасывает статус
// в pending_approval, даже после одобрения.
type OnboardingRecord struct {
	BaseModel
	UserID string `gorm:"type:uuid;not null;uniqueIndex"`

	// Свободные ответы анкеты: целевые роли, индустрии, зарплата, сроки...
	Answers datatypes.JSON `gorm:"type:jsonb;not null"`

	ExecutionStatus OnboardingStatus `gorm:"type:varchar(20);default:'pending_approval'"`

	ApprovedBy *string    `gorm:"type:uuid"`
	ApprovedAt *time.Time
	AdminNotes string
}
