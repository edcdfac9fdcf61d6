package services

import (
	"testing"
	"time"

	"careerbridge_backend/internal/auth"
	"careerbridge_backend/internal/models"
	"careerbridge_backend/internal/repositories"
	"careerbridge_backend/internal/services/dto"
	"careerbridge_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyAndInvite_EmailAlreadyRegistered(t *testing.T) {
	t.Parallel()

	userRepo := &mockUserRepo{
		findByEmailFn: func(email string) (*models.User, error) {
			return &models.User{Email: email}, nil
		},
	}
	svc := NewInvitationService(&mockConsultationRepo{}, &mockRegistrationTokenRepo{}, userRepo, &mockNotifier{})

	_, err := svc.VerifyAndInvite(nil, "op-1", &dto.VerifyPaymentRequest{
		ProspectEmail: "client@test.com",
		Amount:        50000,
		Method:        "kaspi",
	})

	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyRegistered)
}

func TestVerifyAndInvite_NoConfirmedConsultation(t *testing.T) {
	t.Parallel()

	userRepo := &mockUserRepo{
		findByEmailFn: func(email string) (*models.User, error) {
			return nil, repositories.ErrUserNotFound
		},
	}
	consultationRepo := &mockConsultationRepo{
		findWithFilterFn: func(filter repositories.ConsultationFilter) ([]models.ConsultationRequest, int64, error) {
			// Ищется именно confirmed заявка этого проспекта
			assert.Equal(t, models.ConsultationStatusConfirmed, filter.Status)
			assert.Equal(t, "prospect@test.com", filter.Email)
			return nil, 0, nil
		},
	}
	svc := NewInvitationService(consultationRepo, &mockRegistrationTokenRepo{}, userRepo, &mockNotifier{})

	_, err := svc.VerifyAndInvite(nil, "op-1", &dto.VerifyPaymentRequest{
		ProspectEmail: "prospect@test.com",
		Amount:        50000,
		Method:        "kaspi",
	})

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestVerifyAndInvite_IdempotentResend(t *testing.T) {
	t.Parallel()

	liveExpiry := time.Now().Add(48 * time.Hour)
	userRepo := &mockUserRepo{
		findByEmailFn: func(email string) (*models.User, error) {
			return nil, repositories.ErrUserNotFound
		},
	}
	consultationRepo := &mockConsultationRepo{
		findWithFilterFn: func(filter repositories.ConsultationFilter) ([]models.ConsultationRequest, int64, error) {
			return []models.ConsultationRequest{
				{FullName: "Айгерим Тест", Email: "prospect@test.com", Status: models.ConsultationStatusConfirmed},
			}, 1, nil
		},
	}
	tokenRepo := &mockRegistrationTokenRepo{
		findLiveByEmailFn: func(email string) (*models.RegistrationToken, error) {
			return &models.RegistrationToken{
				Email:     email,
				Token:     "existing-token",
				ExpiresAt: liveExpiry,
			}, nil
		},
		createFn: func(token *models.RegistrationToken) error {
			t.Fatal("second token must not be issued while a live one exists")
			return nil
		},
	}
	notifier := &mockNotifier{}
	svc := NewInvitationService(consultationRepo, tokenRepo, userRepo, notifier)

	resp, err := svc.VerifyAndInvite(nil, "op-1", &dto.VerifyPaymentRequest{
		ProspectEmail: "prospect@test.com",
		Amount:        50000,
		Method:        "kaspi",
	})

	require.NoError(t, err)
	assert.True(t, resp.Resent)
	assert.Contains(t, resp.RegistrationLink, "existing-token")
	assert.Equal(t, liveExpiry, resp.ExpiresAt)
	assert.Equal(t, []string{EventInvitation}, notifier.recorded())
}

func TestDirectInvite_IssuesShortLivedToken(t *testing.T) {
	t.Parallel()

	var created *models.RegistrationToken
	userRepo := &mockUserRepo{
		findByEmailFn: func(email string) (*models.User, error) {
			return nil, repositories.ErrUserNotFound
		},
	}
	tokenRepo := &mockRegistrationTokenRepo{
		findLiveByEmailFn: func(email string) (*models.RegistrationToken, error) {
			return nil, repositories.ErrRegistrationTokenNotFound
		},
		createFn: func(token *models.RegistrationToken) error {
			created = token
			return nil
		},
	}
	notifier := &mockNotifier{}
	svc := NewInvitationService(&mockConsultationRepo{}, tokenRepo, userRepo, notifier)

	resp, err := svc.DirectInvite(nil, "op-1", &dto.DirectInviteRequest{
		Email:    "vip@test.com",
		FullName: "VIP Клиент",
	})

	require.NoError(t, err)
	assert.False(t, resp.Resent)
	require.NotNil(t, created)
	assert.Equal(t, "vip@test.com", created.Email)
	assert.Equal(t, auth.IntentRegistration, created.Intent)
	assert.Nil(t, created.ConsultationID)
	// Прямое приглашение живет 24 часа, не неделю
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), created.ExpiresAt, 5*time.Second)
	assert.Contains(t, resp.RegistrationLink, "/register?token=")
	assert.Equal(t, []string{EventAdminInvite}, notifier.recorded())

	// Выписанный токен должен проходить верификацию подписи
	claims, err := auth.VerifyActionToken(created.Token, auth.IntentRegistration)
	require.NoError(t, err)
	assert.Equal(t, "vip@test.com", claims.Email)
}
