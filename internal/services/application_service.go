package services

import (
	"careerbridge_backend/internal/logger"
	"careerbridge_backend/internal/models"
	"careerbridge_backend/internal/repositories"
	"careerbridge_backend/internal/services/dto"
	"careerbridge_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// allowedTransitions - таблица переходов статусов отклика.
// Терминальных статусов (rejected/withdrawn/offer_accepted) в таблице
// нет: из них не выходит ни один переход.
var allowedTransitions = map[models.ApplicationStatus][]models.ApplicationStatus{
	models.ApplicationStatusApplied: {
		models.ApplicationStatusUnderReview,
		models.ApplicationStatusInterviewScheduled,
		models.ApplicationStatusRejected,
		models.ApplicationStatusWithdrawn,
	},
	models.ApplicationStatusUnderReview: {
		models.ApplicationStatusInterviewScheduled,
		models.ApplicationStatusRejected,
		models.ApplicationStatusWithdrawn,
	},
	models.ApplicationStatusInterviewScheduled: {
		models.ApplicationStatusInterviewCompleted,
		models.ApplicationStatusRejected,
		models.ApplicationStatusWithdrawn,
	},
	models.ApplicationStatusInterviewCompleted: {
		models.ApplicationStatusOfferReceived,
		models.ApplicationStatusRejected,
		models.ApplicationStatusWithdrawn,
	},
	models.ApplicationStatusOfferReceived: {
		models.ApplicationStatusOfferAccepted,
		models.ApplicationStatusRejected,
		models.ApplicationStatusWithdrawn,
	},
}

// CanTransition проверяет переход по таблице
func CanTransition(from, to models.ApplicationStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ApplicationService ведет отклики клиента на вакансии.
// Создание и смена статуса - операторские действия; клиент читает
// и получает уведомление на каждый переход.
type ApplicationService interface {
	Create(db *gorm.DB, clientID string, req *dto.CreateApplicationRequest) (*dto.ApplicationResponse, error)
	UpdateStatus(db *gorm.DB, applicationID string, req *dto.UpdateApplicationStatusRequest) (*dto.ApplicationResponse, error)
	Get(db *gorm.DB, applicationID string) (*dto.ApplicationResponse, error)
	ListByClient(db *gorm.DB, clientID string, page, pageSize int) (*dto.ApplicationListResponse, error)
}

type applicationService struct {
	applicationRepo repositories.ApplicationRepository
	userRepo        repositories.UserRepository
	notifier        NotificationService
}

func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	userRepo repositories.UserRepository,
	notifier NotificationService,
) ApplicationService {
	return &applicationService{
		applicationRepo: applicationRepo,
		userRepo:        userRepo,
		notifier:        notifier,
	}
}

// Create - новый отклик, стартовый статус всегда applied
func (s *applicationService) Create(db *gorm.DB, clientID string, req *dto.CreateApplicationRequest) (*dto.ApplicationResponse, error) {
	user, err := s.userRepo.FindByID(db, clientID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	app := &models.Application{
		UserID:  clientID,
		Company: req.Company,
		Title:   req.Title,
		Status:  models.ApplicationStatusApplied,
		Notes:   req.Notes,
	}

	if err := s.applicationRepo.Create(db, app); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifier.NotifyApplicationStatus(db, user, app)

	logger.Info("application created", "application_id", app.ID, "client_id", clientID)
	return buildApplicationResponse(app), nil
}

// UpdateStatus валидирует переход по таблице и пишет его conditional
// update'ом от прежнего статуса. Терминальный статус - всегда
// ApplicationClosed, никогда молчаливое игнорирование.
func (s *applicationService) UpdateStatus(db *gorm.DB, applicationID string, req *dto.UpdateApplicationStatusRequest) (*dto.ApplicationResponse, error) {
	app, err := s.applicationRepo.FindByID(db, applicationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	newStatus := models.ApplicationStatus(req.NewStatus)

	if app.Status.IsTerminal() {
		return nil, apperrors.ErrApplicationClosed
	}
	if !CanTransition(app.Status, newStatus) {
		return nil, apperrors.ErrInvalidApplicationTransition
	}

	updates := map[string]interface{}{
		"status": newStatus,
	}
	if req.Notes != "" {
		updates["notes"] = req.Notes
	}
	if req.InterviewAt != nil {
		updates["interview_at"] = req.InterviewAt
	}
	if req.OfferAmount != nil {
		updates["offer_amount"] = req.OfferAmount
	}
	if req.OfferNotes != "" {
		updates["offer_notes"] = req.OfferNotes
	}

	// from = прочитанный статус: конкурентный переход между чтением
	// и записью даст RowsAffected=0 и конфликт, не потерянное обновление
	if err := s.applicationRepo.UpdateStatusIf(db, applicationID, app.Status, updates); err != nil {
		switch {
		case apperrors.Is(err, repositories.ErrApplicationNotFound):
			return nil, apperrors.ErrNotFound(err)
		case apperrors.Is(err, repositories.ErrApplicationConflict):
			return nil, apperrors.ErrInvalidApplicationTransition
		default:
			return nil, apperrors.InternalError(err)
		}
	}

	app.Status = newStatus
	if req.Notes != "" {
		app.Notes = req.Notes
	}
	if req.InterviewAt != nil {
		app.InterviewAt = req.InterviewAt
	}
	if req.OfferAmount != nil {
		app.OfferAmount = req.OfferAmount
	}
	if req.OfferNotes != "" {
		app.OfferNotes = req.OfferNotes
	}

	// Ровно одно уведомление на переход, текст выбирается по статусу
	if user, err := s.userRepo.FindByID(db, app.UserID); err == nil {
		s.notifier.NotifyApplicationStatus(db, user, app)
	} else {
		logger.WithError(err).Warn("application owner not found for notification", "application_id", app.ID)
	}

	logger.Info("application status updated", "application_id", app.ID, "status", newStatus)
	return buildApplicationResponse(app), nil
}

func (s *applicationService) Get(db *gorm.DB, applicationID string) (*dto.ApplicationResponse, error) {
	app, err := s.applicationRepo.FindByID(db, applicationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return buildApplicationResponse(app), nil
}

func (s *applicationService) ListByClient(db *gorm.DB, clientID string, page, pageSize int) (*dto.ApplicationListResponse, error) {
	apps, total, err := s.applicationRepo.FindByUserID(db, clientID, page, pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]*dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		responses = append(responses, buildApplicationResponse(&apps[i]))
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	return &dto.ApplicationListResponse{
		Applications: responses,
		Total:        total,
		Page:         page,
		PageSize:     pageSize,
		TotalPages:   calculateTotalPages(total, pageSize),
	}, nil
}

func buildApplicationResponse(app *models.Application) *dto.ApplicationResponse {
	return &dto.ApplicationResponse{
		ID:          app.ID,
		UserID:      app.UserID,
		Company:     app.Company,
		Title:       app.Title,
		Status:      app.Status,
		Notes:       app.Notes,
		InterviewAt: app.InterviewAt,
		OfferAmount: app.OfferAmount,
		OfferNotes:  app.OfferNotes,
		CreatedAt:   app.CreatedAt,
		UpdatedAt:   app.UpdatedAt,
	}
}
