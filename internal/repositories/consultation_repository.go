package repositories

import (
	"errors"
	"time"

	"careerbridge_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrConsultationNotFound = errors.New("consultation request not found")
	// ErrConsultationConflict возвращается, когда conditional update не затронул
	// ни одной строки: статус уже изменил конкурентный запрос.
	ErrConsultationConflict = errors.New("consultation status changed concurrently")
	ErrDuplicateRequest     = errors.New("unresolved consultation request already exists")
	ErrPaymentAlreadySet    = errors.New("payment already verified for this consultation")
)

type ConsultationFilter struct {
	Status   models.ConsultationStatus
	Email    string
	Page     int
	PageSize int
}

type ConsultationRepository interface {
	// CreateOrResubmit создает новую заявку либо, если для email уже есть
	// заявка в статусе rescheduled, возвращает ее в pending с новыми слотами
	// (единственный немонотонный переход жизненного цикла).
	// Заявки pending/under_review блокируют повторную отправку.
	CreateOrResubmit(db *gorm.DB, req *models.ConsultationRequest) error

	FindByID(db *gorm.DB, id string) (*models.ConsultationRequest, error)
	FindWithFilter(db *gorm.DB, filter ConsultationFilter) ([]models.ConsultationRequest, int64, error)

	// UpdateStatusIf - conditional update "where id = ? and status in (?)".
	// Единственная защита от двух операторов, подтверждающих одну заявку.
	UpdateStatusIf(db *gorm.DB, id string, from []models.ConsultationStatus, updates map[string]interface{}) error

	// RecordPayment фиксирует оплату атомарно: "where payment_verified_at is null"
	RecordPayment(db *gorm.DB, id string, updates map[string]interface{}) error

	// MarkConverted отмечает, что проспект этой заявки стал клиентом.
	// Идемпотентна: повторный вызов ничего не меняет.
	MarkConverted(db *gorm.DB, id string) error
}

type consultationRepository struct{}

func NewConsultationRepository() ConsultationRepository {
	return &consultationRepository{}
}

func (r *consultationRepository) CreateOrResubmit(db *gorm.DB, req *models.ConsultationRequest) error {
	return db.Transaction(func(tx *gorm.DB) error {
		// Дубликат-гард: нерешенная заявка блокирует повторный submit
		var unresolved int64
		err := tx.Model(&models.ConsultationRequest{}).
			Where("email = ? AND status IN ?", req.Email,
				[]models.ConsultationStatus{models.ConsultationStatusPending, models.ConsultationStatusUnderReview}).
			Count(&unresolved).Error
		if err != nil {
			return err
		}
		if unresolved > 0 {
			return ErrDuplicateRequest
		}

		// rescheduled-заявка переиспользуется: новые слоты, снова pending
		var prior models.ConsultationRequest
		err = tx.Where("email = ? AND status = ?", req.Email, models.ConsultationStatusRescheduled).
			Order("created_at DESC").
			First(&prior).Error
		if err == nil {
			result := tx.Model(&models.ConsultationRequest{}).
				Where("id = ? AND status = ?", prior.ID, models.ConsultationStatusRescheduled).
				Updates(map[string]interface{}{
					"full_name":    req.FullName,
					"phone":        req.Phone,
					"target_roles": req.TargetRoles,
					"concerns":     req.Concerns,
					"slots":        req.Slots,
					"status":       models.ConsultationStatusPending,
					"processed_at": nil,
					"updated_at":   time.Now(),
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrConsultationConflict
			}
			req.ID = prior.ID
			req.Status = models.ConsultationStatusPending
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		req.Status = models.ConsultationStatusPending
		return tx.Create(req).Error
	})
}

func (r *consultationRepository) FindByID(db *gorm.DB, id string) (*models.ConsultationRequest, error) {
	var req models.ConsultationRequest
	if err := db.First(&req, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConsultationNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *consultationRepository) FindWithFilter(db *gorm.DB, filter ConsultationFilter) ([]models.ConsultationRequest, int64, error) {
	query := db.Model(&models.ConsultationRequest{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Email != "" {
		query = query.Where("email = ?", filter.Email)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	var requests []models.ConsultationRequest
	err := query.
		Order("created_at DESC").
		Limit(filter.PageSize).
		Offset((filter.Page - 1) * filter.PageSize).
		Find(&requests).Error

	return requests, total, err
}

func (r *consultationRepository) UpdateStatusIf(db *gorm.DB, id string, from []models.ConsultationStatus, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result := db.Model(&models.ConsultationRequest{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Либо заявки нет, либо конкурент успел первым - различаем
		var exists int64
		if err := db.Model(&models.ConsultationRequest{}).Where("id = ?", id).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return ErrConsultationNotFound
		}
		return ErrConsultationConflict
	}
	return nil
}

func (r *consultationRepository) MarkConverted(db *gorm.DB, id string) error {
	now := time.Now()
	return db.Model(&models.ConsultationRequest{}).
		Where("id = ? AND converted_at IS NULL", id).
		Updates(map[string]interface{}{
			"converted_at": now,
			"updated_at":   now,
		}).Error
}

func (r *consultationRepository) RecordPayment(db *gorm.DB, id string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result := db.Model(&models.ConsultationRequest{}).
		Where("id = ? AND payment_verified_at IS NULL", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var exists int64
		if err := db.Model(&models.ConsultationRequest{}).Where("id = ?", id).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return ErrConsultationNotFound
		}
		return ErrPaymentAlreadySet
	}
	return nil
}
