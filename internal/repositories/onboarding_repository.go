package repositories

import (
	"errors"
	"time"

	"careerbridge_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrOnboardingNotFound = errors.New("onboarding record not found")
	// ErrOnboardingConflict - статус анкеты изменился между чтением и записью
	ErrOnboardingConflict = errors.New("onboarding status changed concurrently")
)

type OnboardingRepository interface {
	// Upsert - максимум одна анкета на клиента. Повторная отправка
	// перезаписывает ответы и ВСЕГДА сбрасывает статус в pending_approval,
	// даже если анкета была одобрена (повторный онбординг = повторная проверка).
	Upsert(db *gorm.DB, record *models.OnboardingRecord) error

	FindByUserID(db *gorm.DB, userID string) (*models.OnboardingRecord, error)
	FindWithStatus(db *gorm.DB, status models.OnboardingStatus, page, pageSize int) ([]models.OnboardingRecord, int64, error)

	// UpdateStatusIf - conditional update "where user_id = ? and execution_status = ?"
	UpdateStatusIf(db *gorm.DB, userID string, from models.OnboardingStatus, updates map[string]interface{}) error
}

type onboardingRepository struct{}

func NewOnboardingRepository() OnboardingRepository {
	return &onboardingRepository{}
}

func (r *onboardingRepository) Upsert(db *gorm.DB, record *models.OnboardingRecord) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var existing models.OnboardingRecord
		err := tx.Where("user_id = ?", record.UserID).First(&existing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				record.ExecutionStatus = models.OnboardingStatusPendingApproval
				return tx.Create(record).Error
			}
			return err
		}

		result := tx.Model(&models.OnboardingRecord{}).
			Where("id = ?", existing.ID).
			Updates(map[string]interface{}{
				"answers":          record.Answers,
				"execution_status": models.OnboardingStatusPendingApproval,
				"approved_by":      nil,
				"approved_at":      nil,
				"updated_at":       time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}

		record.ID = existing.ID
		record.ExecutionStatus = models.OnboardingStatusPendingApproval
		return nil
	})
}

func (r *onboardingRepository) FindByUserID(db *gorm.DB, userID string) (*models.OnboardingRecord, error) {
	var record models.OnboardingRecord
	if err := db.Where("user_id = ?", userID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOnboardingNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *onboardingRepository) FindWithStatus(db *gorm.DB, status models.OnboardingStatus, page, pageSize int) ([]models.OnboardingRecord, int64, error) {
	query := db.Model(&models.OnboardingRecord{})
	if status != "" {
		query = query.Where("execution_status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var records []models.OnboardingRecord
	err := query.
		Order("created_at ASC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&records).Error

	return records, total, err
}

func (r *onboardingRepository) UpdateStatusIf(db *gorm.DB, userID string, from models.OnboardingStatus, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result := db.Model(&models.OnboardingRecord{}).
		Where("user_id = ? AND execution_status = ?", userID, from).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var exists int64
		if err := db.Model(&models.OnboardingRecord{}).Where("user_id = ?", userID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return ErrOnboardingNotFound
		}
		return ErrOnboardingConflict
	}
	return nil
}
