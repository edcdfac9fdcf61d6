package repositories

import (
	"errors"
	"time"

	"careerbridge_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrRegistrationTokenNotFound = errors.New("registration token not found")
	// ErrTokenConsumed возвращается, когда conditional consume не затронул строку:
	// токен уже использован (возможно, конкурентной регистрацией)
	ErrTokenConsumed = errors.New("registration token already consumed")
)

type RegistrationTokenRepository interface {
	Create(db *gorm.DB, token *models.RegistrationToken) error

	FindByToken(db *gorm.DB, tokenString string) (*models.RegistrationToken, error)

	// FindLiveByEmail находит действующий (не использованный, не истекший)
	// токен для email - основа идемпотентности verifyAndInvite
	FindLiveByEmail(db *gorm.DB, email string) (*models.RegistrationToken, error)

	// Consume - conditional update "consume where consumed = false".
	// Именно эта операция делает повторную регистрацию по replayed-токену
	// невозможной, подпись JWT тут не помогает.
	Consume(db *gorm.DB, tokenString string) error

	DeleteExpired(db *gorm.DB) error
}

type registrationTokenRepository struct{}

func NewRegistrationTokenRepository() RegistrationTokenRepository {
	return &registrationTokenRepository{}
}

func (r *registrationTokenRepository) Create(db *gorm.DB, token *models.RegistrationToken) error {
	return db.Create(token).Error
}

func (r *registrationTokenRepository) FindByToken(db *gorm.DB, tokenString string) (*models.RegistrationToken, error) {
	var token models.RegistrationToken
	if err := db.Where("token = ?", tokenString).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (r *registrationTokenRepository) FindLiveByEmail(db *gorm.DB, email string) (*models.RegistrationToken, error) {
	var token models.RegistrationToken
	err := db.Where("email = ? AND consumed = ? AND expires_at > ?", email, false, time.Now()).
		Order("created_at DESC").
		First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (r *registrationTokenRepository) Consume(db *gorm.DB, tokenString string) error {
	result := db.Model(&models.RegistrationToken{}).
		Where("token = ? AND consumed = ?", tokenString, false).
		Updates(map[string]interface{}{
			"consumed":   true,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var exists int64
		if err := db.Model(&models.RegistrationToken{}).Where("token = ?", tokenString).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return ErrRegistrationTokenNotFound
		}
		return ErrTokenConsumed
	}
	return nil
}

func (r *registrationTokenRepository) DeleteExpired(db *gorm.DB) error {
	return db.Where("expires_at < ? AND consumed = ?", time.Now(), false).
		Delete(&models.RegistrationToken{}).Error
}
