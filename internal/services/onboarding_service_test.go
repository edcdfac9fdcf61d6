package services

import (
	"testing"

	"careerbridge_backend/internal/models"
	"careerbridge_backend/internal/repositories"
	"careerbridge_backend/internal/services/dto"
	"careerbridge_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnboardingPause_Success(t *testing.T) {
	t.Parallel()

	userRepo := &mockUserRepo{
		findByIDFn: func(id string) (*models.User, error) {
			return &models.User{Email: "client@test.com"}, nil
		},
	}
	onboardingRepo := &mockOnboardingRepo{
		updateStatusIfFn: func(userID string, from models.OnboardingStatus, updates map[string]interface{}) error {
			// Пауза возможна только из active
			assert.Equal(t, models.OnboardingStatusActive, from)
			assert.Equal(t, models.OnboardingStatusPaused, updates["execution_status"])
			return nil
		},
		findByUserIDFn: func(userID string) (*models.OnboardingRecord, error) {
			return &models.OnboardingRecord{
				UserID:          userID,
				ExecutionStatus: models.OnboardingStatusPaused,
				AdminNotes:      "vacation",
			}, nil
		},
	}
	notifier := &mockNotifier{}
	svc := NewOnboardingService(onboardingRepo, userRepo, notifier)

	resp, err := svc.Pause(nil, "client-1", &dto.PauseOnboardingRequest{Reason: "vacation"})

	require.NoError(t, err)
	assert.Equal(t, models.OnboardingStatusPaused, resp.ExecutionStatus)
	assert.Equal(t, []string{EventOnboardingPaused}, notifier.recorded())
}

func TestOnboardingPause_NotActive(t *testing.T) {
	t.Parallel()

	userRepo := &mockUserRepo{
		findByIDFn: func(id string) (*models.User, error) {
			return &models.User{}, nil
		},
	}
	onboardingRepo := &mockOnboardingRepo{
		updateStatusIfFn: func(userID string, from models.OnboardingStatus, updates map[string]interface{}) error {
			return repositories.ErrOnboardingConflict
		},
	}
	notifier := &mockNotifier{}
	svc := NewOnboardingService(onboardingRepo, userRepo, notifier)

	_, err := svc.Pause(nil, "client-1", &dto.PauseOnboardingRequest{Reason: "vacation"})

	assert.ErrorIs(t, err, apperrors.ErrOnboardingNotPending)
	assert.Empty(t, notifier.recorded())
}

func TestOnboardingGet_NotFound(t *testing.T) {
	t.Parallel()

	onboardingRepo := &mockOnboardingRepo{
		findByUserIDFn: func(userID string) (*models.OnboardingRecord, error) {
			return nil, repositories.ErrOnboardingNotFound
		},
	}
	svc := NewOnboardingService(onboardingRepo, &mockUserRepo{}, &mockNotifier{})

	_, err := svc.Get(nil, "client-1")

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 404, appErr.HTTPCode)
	// Отдельный код: UI по нему показывает "заполните анкету"
	assert.Equal(t, apperrors.CodeOnboardingNotSubmitted, appErr.Code)
}

func TestOnboardingGet_DecodesAnswers(t *testing.T) {
	t.Parallel()

	onboardingRepo := &mockOnboardingRepo{
		findByUserIDFn: func(userID string) (*models.OnboardingRecord, error) {
			return &models.OnboardingRecord{
				UserID:          userID,
				Answers:         []byte(`{"target_role":"backend","salary":"900000"}`),
				ExecutionStatus: models.OnboardingStatusPendingApproval,
			}, nil
		},
	}
	svc := NewOnboardingService(onboardingRepo, &mockUserRepo{}, &mockNotifier{})

	resp, err := svc.Get(nil, "client-1")

	require.NoError(t, err)
	assert.Equal(t, "backend", resp.Answers["target_role"])
	assert.Equal(t, models.OnboardingStatusPendingApproval, resp.ExecutionStatus)
}

func TestOnboardingListPending(t *testing.T) {
	t.Parallel()

	onboardingRepo := &mockOnboardingRepo{
		findWithStatusFn: func(status models.OnboardingStatus, page, pageSize int) ([]models.OnboardingRecord, int64, error) {
			// Очередь оператора - только pending_approval
			assert.Equal(t, models.OnboardingStatusPendingApproval, status)
			return []models.OnboardingRecord{
				{UserID: "client-1", ExecutionStatus: status},
				{UserID: "client-2", ExecutionStatus: status},
			}, 2, nil
		},
	}
	svc := NewOnboardingService(onboardingRepo, &mockUserRepo{}, &mockNotifier{})

	resp, err := svc.ListPending(nil, 1, 20)

	require.NoError(t, err)
	assert.Len(t, resp.Records, 2)
	assert.Equal(t, int64(2), resp.Total)
	assert.Equal(t, 1, resp.TotalPages)
}
