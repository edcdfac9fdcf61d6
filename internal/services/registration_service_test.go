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

func issueTestToken(t *testing.T, email string, ttl time.Duration) string {
	t.Helper()
	signed, _, err := auth.IssueActionToken(email, auth.IntentRegistration, ttl)
	require.NoError(t, err)
	return signed
}

func newRegistrationService(tokenRepo *mockRegistrationTokenRepo, userRepo *mockUserRepo) RegistrationService {
	return NewRegistrationService(tokenRepo, userRepo, &mockRefreshTokenRepo{}, &mockConsultationRepo{}, &mockNotifier{})
}

func TestRegistrationComplete_MalformedToken(t *testing.T) {
	t.Parallel()

	svc := newRegistrationService(&mockRegistrationTokenRepo{}, &mockUserRepo{})

	_, err := svc.Complete(nil, &dto.CompleteRegistrationRequest{
		Token:    "not-a-token",
		Password: "super_password123",
	})

	assert.ErrorIs(t, err, apperrors.ErrTokenMalformed)
}

func TestRegistrationComplete_WrongIntent(t *testing.T) {
	t.Parallel()

	signed, _, err := auth.IssueActionToken("prospect@test.com", auth.IntentAdminAction, time.Hour)
	require.NoError(t, err)

	svc := newRegistrationService(&mockRegistrationTokenRepo{}, &mockUserRepo{})

	_, err = svc.Complete(nil, &dto.CompleteRegistrationRequest{
		Token:    signed,
		Password: "super_password123",
	})

	assert.ErrorIs(t, err, apperrors.ErrTokenWrongIntent)
}

func TestRegistrationComplete_NoBackingRecord(t *testing.T) {
	t.Parallel()

	// Подпись валидна, но записи в БД нет: токен не выписывался нами
	signed := issueTestToken(t, "prospect@test.com", time.Hour)
	tokenRepo := &mockRegistrationTokenRepo{
		findByTokenFn: func(tokenString string) (*models.RegistrationToken, error) {
			return nil, repositories.ErrRegistrationTokenNotFound
		},
	}
	svc := newRegistrationService(tokenRepo, &mockUserRepo{})

	_, err := svc.Complete(nil, &dto.CompleteRegistrationRequest{
		Token:    signed,
		Password: "super_password123",
	})

	assert.ErrorIs(t, err, apperrors.ErrTokenMalformed)
}

func TestRegistrationComplete_TokenAlreadyUsed(t *testing.T) {
	t.Parallel()

	signed := issueTestToken(t, "prospect@test.com", time.Hour)
	tokenRepo := &mockRegistrationTokenRepo{
		findByTokenFn: func(tokenString string) (*models.RegistrationToken, error) {
			return &models.RegistrationToken{
				Email:     "prospect@test.com",
				Token:     tokenString,
				ExpiresAt: time.Now().Add(time.Hour),
				Consumed:  true,
			}, nil
		},
	}
	svc := newRegistrationService(tokenRepo, &mockUserRepo{})

	_, err := svc.Complete(nil, &dto.CompleteRegistrationRequest{
		Token:    signed,
		Password: "super_password123",
	})

	// "Уже использована" отличима от "неверна" - UI показывает их по-разному
	assert.ErrorIs(t, err, apperrors.ErrTokenAlreadyUsed)
}

func TestRegistrationComplete_RecordExpired(t *testing.T) {
	t.Parallel()

	// Подпись еще жива, но backing-запись истекла - правда в БД
	signed := issueTestToken(t, "prospect@test.com", time.Hour)
	tokenRepo := &mockRegistrationTokenRepo{
		findByTokenFn: func(tokenString string) (*models.RegistrationToken, error) {
			return &models.RegistrationToken{
				Email:     "prospect@test.com",
				Token:     tokenString,
				ExpiresAt: time.Now().Add(-time.Minute),
			}, nil
		},
	}
	svc := newRegistrationService(tokenRepo, &mockUserRepo{})

	_, err := svc.Complete(nil, &dto.CompleteRegistrationRequest{
		Token:    signed,
		Password: "super_password123",
	})

	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestRegistrationComplete_EmailTakenAfterInvite(t *testing.T) {
	t.Parallel()

	signed := issueTestToken(t, "prospect@test.com", time.Hour)
	tokenRepo := &mockRegistrationTokenRepo{
		findByTokenFn: func(tokenString string) (*models.RegistrationToken, error) {
			return &models.RegistrationToken{
				Email:     "prospect@test.com",
				Token:     tokenString,
				ExpiresAt: time.Now().Add(time.Hour),
			}, nil
		},
	}
	userRepo := &mockUserRepo{
		findByEmailFn: func(email string) (*models.User, error) {
			return &models.User{Email: email}, nil
		},
	}
	svc := newRegistrationService(tokenRepo, userRepo)

	_, err := svc.Complete(nil, &dto.CompleteRegistrationRequest{
		Token:    signed,
		Password: "super_password123",
	})

	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyRegistered)
}

func TestRegistrationComplete_WeakPassword(t *testing.T) {
	t.Parallel()

	signed := issueTestToken(t, "prospect@test.com", time.Hour)
	tokenRepo := &mockRegistrationTokenRepo{
		findByTokenFn: func(tokenString string) (*models.RegistrationToken, error) {
			return &models.RegistrationToken{
				Email:     "prospect@test.com",
				Token:     tokenString,
				ExpiresAt: time.Now().Add(time.Hour),
			}, nil
		},
	}
	userRepo := &mockUserRepo{
		findByEmailFn: func(email string) (*models.User, error) {
			return nil, repositories.ErrUserNotFound
		},
	}
	svc := newRegistrationService(tokenRepo, userRepo)

	_, err := svc.Complete(nil, &dto.CompleteRegistrationRequest{
		Token:    signed,
		Password: "short",
	})

	assert.ErrorIs(t, err, apperrors.ErrWeakPassword)
}
