package services

import (
	"time"

	"careerbridge_backend/internal/auth"
	"careerbridge_backend/internal/logger"
	"careerbridge_backend/internal/models"
	"careerbridge_backend/internal/repositories"
	"careerbridge_backend/internal/services/dto"
	"careerbridge_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// RegistrationService завершает регистрацию: потребляет токен ровно
// один раз и создает аккаунт клиента.
type RegistrationService interface {
	Complete(db *gorm.DB, req *dto.CompleteRegistrationRequest) (*dto.CompleteRegistrationResponse, error)
}

type registrationService struct {
	tokenRepo        repositories.RegistrationTokenRepository
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	consultationRepo repositories.ConsultationRepository
	notifier         NotificationService
}

func NewRegistrationService(
	tokenRepo repositories.RegistrationTokenRepository,
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	consultationRepo repositories.ConsultationRepository,
	notifier NotificationService,
) RegistrationService {
	return &registrationService{
		tokenRepo:        tokenRepo,
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		consultationRepo: consultationRepo,
		notifier:         notifier,
	}
}

// Complete - создание клиента и погашение токена в ОДНОЙ транзакции.
// Если consume не прошел (реплей, конкурентная регистрация), клиент
// не создается - двойная регистрация невозможна.
func (s *registrationService) Complete(db *gorm.DB, req *dto.CompleteRegistrationRequest) (*dto.CompleteRegistrationResponse, error) {
	// 1. Чистая проверка подписи: malformed / expired / wrong intent
	claims, err := auth.VerifyActionToken(req.Token, auth.IntentRegistration)
	if err != nil {
		return nil, mapActionTokenError(err)
	}

	// 2. Backing-запись: именно она дает single-use
	record, err := s.tokenRepo.FindByToken(db, req.Token)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRegistrationTokenNotFound) {
			return nil, apperrors.ErrTokenMalformed
		}
		return nil, apperrors.InternalError(err)
	}
	if record.Consumed {
		return nil, apperrors.ErrTokenAlreadyUsed
	}
	if time.Now().After(record.ExpiresAt) {
		return nil, apperrors.ErrTokenExpired
	}

	// 3. Race-guard: клиент мог появиться после выдачи приглашения
	if _, err := s.userRepo.FindByEmail(db, claims.Email); err == nil {
		return nil, apperrors.ErrEmailAlreadyRegistered
	} else if !apperrors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	fullName := req.FullName
	if fullName == "" {
		fullName = claims.Email
	}

	user := &models.User{
		Email:        claims.Email,
		FullName:     fullName,
		PasswordHash: passwordHash,
		Role:         models.UserRoleClient,
		Status:       models.UserStatusActive,
		Phone:        req.Phone,
		TargetRole:   req.TargetRole,
		ResumeURL:    req.ResumeURL,
	}

	// 4. Атомарно: consume + create. Порядок важен - сначала погашение
	// (conditional "where consumed = false"), оно же ловит конкурента.
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.tokenRepo.Consume(tx, req.Token); err != nil {
			return err
		}
		if err := s.userRepo.Create(tx, user); err != nil {
			return err
		}
		// Исходная заявка (если токен выписан после оплаты) помечается
		// сконвертированной
		if record.ConsultationID != nil {
			return s.consultationRepo.MarkConverted(tx, *record.ConsultationID)
		}
		return nil
	})
	if err != nil {
		switch {
		case apperrors.Is(err, repositories.ErrTokenConsumed):
			return nil, apperrors.ErrTokenAlreadyUsed
		case apperrors.Is(err, repositories.ErrUserAlreadyExists):
			return nil, apperrors.ErrEmailAlreadyRegistered
		default:
			return nil, apperrors.InternalError(err)
		}
	}

	accessToken, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshToken, err := issueRefreshToken(db, s.refreshTokenRepo, user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifier.NotifyWelcome(db, user)

	logger.Info("registration completed", "client_id", user.ID, "email", user.Email)
	return &dto.CompleteRegistrationResponse{
		ClientID:     user.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         dto.BuildUserDTO(user),
	}, nil
}

func mapActionTokenError(err error) error {
	switch {
	case apperrors.Is(err, auth.ErrTokenExpired):
		return apperrors.ErrTokenExpired
	case apperrors.Is(err, auth.ErrTokenWrongIntent):
		return apperrors.ErrTokenWrongIntent
	default:
		return apperrors.ErrTokenMalformed
	}
}
