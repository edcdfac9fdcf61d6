package repositories

import (
	"errors"
	"time"

	"careerbridge_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	// ErrApplicationConflict - статус отклика изменил конкурентный запрос
	ErrApplicationConflict = errors.New("application status changed concurrently")
)

type ApplicationRepository interface {
	Create(db *gorm.DB, app *models.Application) error
	FindByID(db *gorm.DB, id string) (*models.Application, error)
	FindByUserID(db *gorm.DB, userID string, page, pageSize int) ([]models.Application, int64, error)

	// UpdateStatusIf - conditional update "where id = ? and status = ?".
	// Ожидаемый прежний статус обязателен: переходы валидирует сервис,
	// а гонку двух операторов ловит именно это условие.
	UpdateStatusIf(db *gorm.DB, id string, from models.ApplicationStatus, updates map[string]interface{}) error
}

type applicationRepository struct{}

func NewApplicationRepository() ApplicationRepository {
	return &applicationRepository{}
}

func (r *applicationRepository) Create(db *gorm.DB, app *models.Application) error {
	return db.Create(app).Error
}

func (r *applicationRepository) FindByID(db *gorm.DB, id string) (*models.Application, error) {
	var app models.Application
	if err := db.First(&app, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) FindByUserID(db *gorm.DB, userID string, page, pageSize int) ([]models.Application, int64, error) {
	query := db.Model(&models.Application{}).Where("user_id = ?", userID)

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

	var apps []models.Application
	err := query.
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&apps).Error

	return apps, total, err
}

func (r *applicationRepository) UpdateStatusIf(db *gorm.DB, id string, from models.ApplicationStatus, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result := db.Model(&models.Application{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var exists int64
		if err := db.Model(&models.Application{}).Where("id = ?", id).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return ErrApplicationNotFound
		}
		return ErrApplicationConflict
	}
	return nil
}
