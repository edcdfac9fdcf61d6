package services

import (
	"encoding/json"
	"time"

	"careerbridge_backend/internal/logger"
	"careerbridge_backend/internal/models"
	"careerbridge_backend/internal/repositories"
	"careerbridge_backend/internal/services/dto"
	"careerbridge_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OnboardingService принимает анкету клиента и проводит ее через
// операторскую проверку. Разблокировка профиля (User.OnboardingComplete)
// происходит ТОЛЬКО в Approve.
type OnboardingService interface {
	Submit(db *gorm.DB, clientID string, req *dto.SubmitOnboardingRequest) (*dto.OnboardingResponse, error)
	Approve(db *gorm.DB, clientID, operatorID string, req *dto.ApproveOnboardingRequest) (*dto.OnboardingResponse, error)
	Pause(db *gorm.DB, clientID string, req *dto.PauseOnboardingRequest) (*dto.OnboardingResponse, error)
	Reject(db *gorm.DB, clientID string, req *dto.RejectOnboardingRequest) (*dto.OnboardingResponse, error)
	Get(db *gorm.DB, clientID string) (*dto.OnboardingResponse, error)
	ListPending(db *gorm.DB, page, pageSize int) (*dto.OnboardingListResponse, error)
}

type onboardingService struct {
	onboardingRepo repositories.OnboardingRepository
	userRepo       repositories.UserRepository
	notifier       NotificationService
}

func NewOnboardingService(
	onboardingRepo repositories.OnboardingRepository,
	userRepo repositories.UserRepository,
	notifier NotificationService,
) OnboardingService {
	return &onboardingService{
		onboardingRepo: onboardingRepo,
		userRepo:       userRepo,
		notifier:       notifier,
	}
}

// Submit - upsert анкеты. Повторная отправка всегда возвращает анкету
// на повторную проверку, даже если прежняя версия была одобрена.
func (s *onboardingService) Submit(db *gorm.DB, clientID string, req *dto.SubmitOnboardingRequest) (*dto.OnboardingResponse, error) {
	user, err := s.userRepo.FindByID(db, clientID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	answersJSON, err := json.Marshal(req.Answers)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	record := &models.OnboardingRecord{
		UserID:  clientID,
		Answers: datatypes.JSON(answersJSON),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.onboardingRepo.Upsert(tx, record); err != nil {
			return err
		}
		// Повторная отправка после одобрения снова запирает профиль
		if user.OnboardingComplete {
			if err := s.userRepo.SetOnboardingComplete(tx, clientID, false); err != nil {
				return err
			}
		}
		return s.userRepo.UpdateStatus(tx, clientID, models.UserStatusOnboarding)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifier.NotifyOnboardingReceived(db, user)

	logger.Info("onboarding submitted", "client_id", clientID)
	return buildOnboardingResponse(record), nil
}

// Approve требует pending_approval; одновременно разблокирует профиль
func (s *onboardingService) Approve(db *gorm.DB, clientID, operatorID string, req *dto.ApproveOnboardingRequest) (*dto.OnboardingResponse, error) {
	user, err := s.userRepo.FindByID(db, clientID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	now := time.Now()
	err = db.Transaction(func(tx *gorm.DB) error {
		err := s.onboardingRepo.UpdateStatusIf(tx, clientID,
			models.OnboardingStatusPendingApproval,
			map[string]interface{}{
				"execution_status": models.OnboardingStatusActive,
				"approved_by":      operatorID,
				"approved_at":      now,
				"admin_notes":      req.Notes,
			})
		if err != nil {
			return err
		}

		if err := s.userRepo.SetOnboardingComplete(tx, clientID, true); err != nil {
			return err
		}
		return s.userRepo.UpdateStatus(tx, clientID, models.UserStatusActive)
	})
	if err != nil {
		return nil, mapOnboardingError(err)
	}

	s.notifier.NotifyOnboardingApproved(db, user)

	logger.Info("onboarding approved", "client_id", clientID, "operator_id", operatorID)
	return s.Get(db, clientID)
}

// Pause - административная приостановка работы по анкете.
// Профиль остается в том состоянии, в каком был.
func (s *onboardingService) Pause(db *gorm.DB, clientID string, req *dto.PauseOnboardingRequest) (*dto.OnboardingResponse, error) {
	user, err := s.userRepo.FindByID(db, clientID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	err = s.onboardingRepo.UpdateStatusIf(db, clientID,
		models.OnboardingStatusActive,
		map[string]interface{}{
			"execution_status": models.OnboardingStatusPaused,
			"admin_notes":      req.Reason,
		})
	if err != nil {
		return nil, mapOnboardingError(err)
	}

	s.notifier.NotifyOnboardingPaused(db, user, req.Reason)

	return s.Get(db, clientID)
}

// Reject не удаляет запись (история должна оставаться аудируемой),
// но функции клиента остаются запертыми.
func (s *onboardingService) Reject(db *gorm.DB, clientID string, req *dto.RejectOnboardingRequest) (*dto.OnboardingResponse, error) {
	user, err := s.userRepo.FindByID(db, clientID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		err := s.onboardingRepo.UpdateStatusIf(tx, clientID,
			models.OnboardingStatusPendingApproval,
			map[string]interface{}{
				"execution_status": models.OnboardingStatusRejected,
				"admin_notes":      req.Reason,
			})
		if err != nil {
			return err
		}
		return s.userRepo.SetOnboardingComplete(tx, clientID, false)
	})
	if err != nil {
		return nil, mapOnboardingError(err)
	}

	s.notifier.NotifyOnboardingRejected(db, user, req.Reason)

	return s.Get(db, clientID)
}

func (s *onboardingService) Get(db *gorm.DB, clientID string) (*dto.OnboardingResponse, error) {
	record, err := s.onboardingRepo.FindByUserID(db, clientID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrOnboardingNotFound) {
			return nil, apperrors.ErrOnboardingNotSubmitted
		}
		return nil, apperrors.InternalError(err)
	}
	return buildOnboardingResponse(record), nil
}

func (s *onboardingService) ListPending(db *gorm.DB, page, pageSize int) (*dto.OnboardingListResponse, error) {
	records, total, err := s.onboardingRepo.FindWithStatus(db, models.OnboardingStatusPendingApproval, page, pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]*dto.OnboardingResponse, 0, len(records))
	for i := range records {
		responses = append(responses, buildOnboardingResponse(&records[i]))
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	return &dto.OnboardingListResponse{
		Records:    responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: calculateTotalPages(total, pageSize),
	}, nil
}

// ---------------- Helpers ----------------

func mapOnboardingError(err error) error {
	switch {
	case apperrors.Is(err, repositories.ErrOnboardingNotFound):
		return apperrors.ErrOnboardingNotSubmitted
	case apperrors.Is(err, repositories.ErrOnboardingConflict):
		return apperrors.ErrOnboardingNotPending
	case apperrors.Is(err, repositories.ErrUserNotFound):
		return apperrors.ErrNotFound(err)
	default:
		return apperrors.InternalError(err)
	}
}

func buildOnboardingResponse(record *models.OnboardingRecord) *dto.OnboardingResponse {
	var answers map[string]interface{}
	if len(record.Answers) > 0 {
		_ = json.Unmarshal(record.Answers, &answers)
	}

	return &dto.OnboardingResponse{
		ID:              record.ID,
		UserID:          record.UserID,
		Answers:         answers,
		ExecutionStatus: record.ExecutionStatus,
		ApprovedBy:      record.ApprovedBy,
		ApprovedAt:      record.ApprovedAt,
		AdminNotes:      record.AdminNotes,
		CreatedAt:       record.CreatedAt,
		UpdatedAt:       record.UpdatedAt,
	}
}
