package models

import "time"

// User - аккаунт клиента или администратора.
// Email уникален на всю систему: клиент и админ не могут делить адрес.
// Создается ровно один раз при завершении регистрации по токену.
type User struct {
	BaseModelWithDeleted
	Email        string     `gorm:"uniqueIndex;not null"`
	FullName     string     `gorm:"not null"`
	PasswordHash string     `gorm:"not null"`
	Role         UserRole   `gorm:"type:varchar(20);not null;default:'client'"`
	Status       UserStatus `gorm:"type:varchar(20);default:'active'"`

	// Анкета отправлена И одобрена оператором - см. OnboardingRecord
	OnboardingComplete bool `gorm:"default:false"`

	// Временный пароль выдается при создании аккаунта админом напрямую
	TemporaryPassword bool `gorm:"default:false"`

	// Профиль
	ResumeURL  string
	TargetRole string
	Phone      string

	// Relations
	Onboarding    *OnboardingRecord `gorm:"foreignKey:UserID"`
	Applications  []Application     `gorm:"foreignKey:UserID"`
	RefreshTokens []RefreshToken    `gorm:"foreignKey:UserID"`
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}
