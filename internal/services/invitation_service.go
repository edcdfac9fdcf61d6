package services

import (
	"fmt"
	"time"

	"careerbridge_backend/internal/auth"
	"careerbridge_backend/internal/config"
	"careerbridge_backend/internal/logger"
	"careerbridge_backend/internal/models"
	"careerbridge_backend/internal/repositories"
	"careerbridge_backend/internal/services/dto"
	"careerbridge_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// InvitationService - единственный мост "проспект -> кандидат в клиенты":
// фиксирует оплату и выписывает одноразовую регистрационную ссылку.
type InvitationService interface {
	// VerifyAndInvite идемпотентен: повторный вызов для того же
	// нерешенного проспекта возвращает ТОТ ЖЕ токен (Resent=true),
	// второй токен не выпускается.
	VerifyAndInvite(db *gorm.DB, operatorID string, req *dto.VerifyPaymentRequest) (*dto.InvitationResponse, error)

	// DirectInvite - приглашение админом без оплаченной консультации,
	// короткий TTL ссылки.
	DirectInvite(db *gorm.DB, operatorID string, req *dto.DirectInviteRequest) (*dto.InvitationResponse, error)
}

type invitationService struct {
	consultationRepo repositories.ConsultationRepository
	tokenRepo        repositories.RegistrationTokenRepository
	userRepo         repositories.UserRepository
	notifier         NotificationService
}

func NewInvitationService(
	consultationRepo repositories.ConsultationRepository,
	tokenRepo repositories.RegistrationTokenRepository,
	userRepo repositories.UserRepository,
	notifier NotificationService,
) InvitationService {
	return &invitationService{
		consultationRepo: consultationRepo,
		tokenRepo:        tokenRepo,
		userRepo:         userRepo,
		notifier:         notifier,
	}
}

func (s *invitationService) VerifyAndInvite(db *gorm.DB, operatorID string, req *dto.VerifyPaymentRequest) (*dto.InvitationResponse, error) {
	cfg := config.GetConfig()

	// Клиент с таким email уже существует - приглашать некого
	if _, err := s.userRepo.FindByEmail(db, req.ProspectEmail); err == nil {
		return nil, apperrors.ErrEmailAlreadyRegistered
	} else if !apperrors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	// Подтвержденная заявка этого проспекта (самая свежая)
	consultations, _, err := s.consultationRepo.FindWithFilter(db, repositories.ConsultationFilter{
		Status:   models.ConsultationStatusConfirmed,
		Email:    req.ProspectEmail,
		Page:     1,
		PageSize: 1,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if len(consultations) == 0 {
		return nil, apperrors.ErrNotFound(repositories.ErrConsultationNotFound)
	}
	consultation := &consultations[0]

	// Идемпотентность: живой токен уже есть - возвращаем его и
	// повторяем письмо, не выпуская второй ("already invited - link resent")
	if live, err := s.tokenRepo.FindLiveByEmail(db, req.ProspectEmail); err == nil {
		link := registrationLink(cfg.Invite.PublicBaseURL, live.Token)
		s.notifier.NotifyInvitation(req.ProspectEmail, consultation.FullName, link, live.ExpiresAt, true)

		logger.Info("invitation resent", "email", req.ProspectEmail)
		return &dto.InvitationResponse{
			RegistrationLink: link,
			ExpiresAt:        live.ExpiresAt,
			Resent:           true,
		}, nil
	} else if !apperrors.Is(err, repositories.ErrRegistrationTokenNotFound) {
		return nil, apperrors.InternalError(err)
	}

	ttl := time.Duration(cfg.Invite.RegistrationTTL) * time.Hour
	signed, expiresAt, err := auth.IssueActionToken(req.ProspectEmail, auth.IntentRegistration, ttl)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Оплата и токен пишутся в одной транзакции: приглашение без
	// зафиксированной оплаты недопустимо
	err = db.Transaction(func(tx *gorm.DB) error {
		payErr := s.consultationRepo.RecordPayment(tx, consultation.ID, map[string]interface{}{
			"payment_amount":      req.Amount,
			"payment_method":      req.Method,
			"payment_reference":   req.Reference,
			"payment_tier":        req.Tier,
			"payment_verified_by": operatorID,
			"payment_verified_at": time.Now(),
		})
		if payErr != nil && !apperrors.Is(payErr, repositories.ErrPaymentAlreadySet) {
			// ErrPaymentAlreadySet допустим: оплата была записана,
			// но прежний токен истек - выписываем новый
			return payErr
		}

		return s.tokenRepo.Create(tx, &models.RegistrationToken{
			Email:          req.ProspectEmail,
			Intent:         auth.IntentRegistration,
			Token:          signed,
			ExpiresAt:      expiresAt,
			ConsultationID: &consultation.ID,
		})
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	link := registrationLink(cfg.Invite.PublicBaseURL, signed)
	s.notifier.NotifyInvitation(req.ProspectEmail, consultation.FullName, link, expiresAt, false)

	logger.Info("invitation issued", "email", req.ProspectEmail, "expires_at", expiresAt)
	return &dto.InvitationResponse{
		RegistrationLink: link,
		ExpiresAt:        expiresAt,
		Resent:           false,
	}, nil
}

func (s *invitationService) DirectInvite(db *gorm.DB, operatorID string, req *dto.DirectInviteRequest) (*dto.InvitationResponse, error) {
	cfg := config.GetConfig()

	if _, err := s.userRepo.FindByEmail(db, req.Email); err == nil {
		return nil, apperrors.ErrEmailAlreadyRegistered
	} else if !apperrors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	if live, err := s.tokenRepo.FindLiveByEmail(db, req.Email); err == nil {
		link := registrationLink(cfg.Invite.PublicBaseURL, live.Token)
		s.notifier.NotifyAdminInvite(req.Email, req.FullName, link, live.ExpiresAt)
		return &dto.InvitationResponse{
			RegistrationLink: link,
			ExpiresAt:        live.ExpiresAt,
			Resent:           true,
		}, nil
	} else if !apperrors.Is(err, repositories.ErrRegistrationTokenNotFound) {
		return nil, apperrors.InternalError(err)
	}

	// Прямые приглашения живут короче оплаченных
	ttl := time.Duration(cfg.Invite.DirectTTL) * time.Hour
	signed, expiresAt, err := auth.IssueActionToken(req.Email, auth.IntentRegistration, ttl)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.tokenRepo.Create(db, &models.RegistrationToken{
		Email:     req.Email,
		Intent:    auth.IntentRegistration,
		Token:     signed,
		ExpiresAt: expiresAt,
	}); err != nil {
		return nil, apperrors.InternalError(err)
	}

	link := registrationLink(cfg.Invite.PublicBaseURL, signed)
	s.notifier.NotifyAdminInvite(req.Email, req.FullName, link, expiresAt)

	logger.Info("direct invite issued", "email", req.Email, "operator_id", operatorID)
	return &dto.InvitationResponse{
		RegistrationLink: link,
		ExpiresAt:        expiresAt,
		Resent:           false,
	}, nil
}

func registrationLink(baseURL, token string) string {
	return fmt.Sprintf("%s/register?token=%s", baseURL, token)
}
