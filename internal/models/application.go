package models

import "time"

// Application - отклик клиента на вакансию.
// Создается и обновляется оператором, клиент только читает.
// После rejected/withdrawn/offer_accepted запись заморожена.
type Application struct {
	BaseModel
	UserID  string `gorm:"type:uuid;not null;index"`
	Company string `gorm:"not null"`
	Title   string `gorm:"not null"`

	Status ApplicationStatus `gorm:"type:varchar(30);default:'applied';index"`
	Notes  string

	// Детали этапов
	InterviewAt *time.Time
	OfferAmount *float64
	OfferNotes  string
}
