package services

import (
	"encoding/json"
	"testing"
	"time"

	"careerbridge_backend/internal/models"
	"careerbridge_backend/internal/repositories"
	"careerbridge_backend/internal/services/dto"
	"careerbridge_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func futureSlot(d time.Duration) string {
	return time.Now().Add(d).UTC().Format(time.RFC3339)
}

func slotsJSON(t *testing.T, slots []string) datatypes.JSON {
	t.Helper()
	raw, err := json.Marshal(slots)
	require.NoError(t, err)
	return datatypes.JSON(raw)
}

func TestConsultationSubmit_Success(t *testing.T) {
	t.Parallel()

	repo := &mockConsultationRepo{
		createOrResubmitFn: func(req *models.ConsultationRequest) error {
			req.ID = "cons-1"
			return nil
		},
	}
	notifier := &mockNotifier{}
	svc := NewConsultationService(repo, &mockUserRepo{}, notifier)

	resp, err := svc.Submit(nil, &dto.SubmitConsultationRequest{
		FullName: "Айгерим Тест",
		Email:    "prospect@test.com",
		Slots:    []string{futureSlot(24 * time.Hour), futureSlot(48 * time.Hour)},
	})

	require.NoError(t, err)
	assert.Equal(t, "cons-1", resp.ID)
	assert.Len(t, resp.Slots, 2)
	assert.Equal(t, []string{EventConsultationReceived}, notifier.recorded())
}

func TestConsultationSubmit_DuplicateSlots(t *testing.T) {
	t.Parallel()

	svc := NewConsultationService(&mockConsultationRepo{}, &mockUserRepo{}, &mockNotifier{})

	slot := futureSlot(24 * time.Hour)
	_, err := svc.Submit(nil, &dto.SubmitConsultationRequest{
		FullName: "Айгерим Тест",
		Email:    "prospect@test.com",
		Slots:    []string{slot, slot},
	})

	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestConsultationSubmit_UnresolvedRequestExists(t *testing.T) {
	t.Parallel()

	repo := &mockConsultationRepo{
		createOrResubmitFn: func(req *models.ConsultationRequest) error {
			return repositories.ErrDuplicateRequest
		},
	}
	notifier := &mockNotifier{}
	svc := NewConsultationService(repo, &mockUserRepo{}, notifier)

	_, err := svc.Submit(nil, &dto.SubmitConsultationRequest{
		FullName: "Айгерим Тест",
		Email:    "prospect@test.com",
		Slots:    []string{futureSlot(24 * time.Hour)},
	})

	assert.ErrorIs(t, err, apperrors.ErrDuplicateConsultation)
	// Заявка не создана - уведомления нет
	assert.Empty(t, notifier.recorded())
}

func TestConsultationConfirm_Success(t *testing.T) {
	t.Parallel()

	slot := futureSlot(24 * time.Hour)
	repo := &mockConsultationRepo{
		findByIDFn: func(id string) (*models.ConsultationRequest, error) {
			return &models.ConsultationRequest{
				FullName: "Айгерим Тест",
				Email:    "prospect@test.com",
				Slots:    slotsJSON(t, []string{futureSlot(12 * time.Hour), slot}),
				Status:   models.ConsultationStatusPending,
			}, nil
		},
		updateStatusIfFn: func(id string, from []models.ConsultationStatus, updates map[string]interface{}) error {
			assert.Contains(t, from, models.ConsultationStatusPending)
			assert.Contains(t, from, models.ConsultationStatusUnderReview)
			assert.Equal(t, models.ConsultationStatusConfirmed, updates["status"])
			return nil
		},
	}
	notifier := &mockNotifier{}
	svc := NewConsultationService(repo, &mockUserRepo{}, notifier)

	resp, err := svc.Confirm(nil, "cons-1", &dto.ConfirmConsultationRequest{
		SlotIndex:   1,
		MeetingLink: "https://meet.test/abc",
	})

	require.NoError(t, err)
	assert.Equal(t, models.ConsultationStatusConfirmed, resp.Status)
	require.NotNil(t, resp.SelectedSlotIndex)
	assert.Equal(t, 1, *resp.SelectedSlotIndex)
	require.NotNil(t, resp.ScheduledAt)
	assert.Equal(t, slot, resp.ScheduledAt.UTC().Format(time.RFC3339))
	assert.Equal(t, []string{EventConsultationConfirmed}, notifier.recorded())
}

func TestConsultationConfirm_SlotIndexOutOfRange(t *testing.T) {
	t.Parallel()

	repo := &mockConsultationRepo{
		findByIDFn: func(id string) (*models.ConsultationRequest, error) {
			return &models.ConsultationRequest{
				Slots:  slotsJSON(t, []string{futureSlot(24 * time.Hour)}),
				Status: models.ConsultationStatusPending,
			}, nil
		},
	}
	svc := NewConsultationService(repo, &mockUserRepo{}, &mockNotifier{})

	_, err := svc.Confirm(nil, "cons-1", &dto.ConfirmConsultationRequest{
		SlotIndex:   2,
		MeetingLink: "https://meet.test/abc",
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidSlotIndex)
}

func TestConsultationConfirm_AlreadyResolved(t *testing.T) {
	t.Parallel()

	// Конкурентный confirm: вторая попытка ловит conditional update
	repo := &mockConsultationRepo{
		findByIDFn: func(id string) (*models.ConsultationRequest, error) {
			return &models.ConsultationRequest{
				Slots:  slotsJSON(t, []string{futureSlot(24 * time.Hour)}),
				Status: models.ConsultationStatusPending,
			}, nil
		},
		updateStatusIfFn: func(id string, from []models.ConsultationStatus, updates map[string]interface{}) error {
			return repositories.ErrConsultationConflict
		},
	}
	notifier := &mockNotifier{}
	svc := NewConsultationService(repo, &mockUserRepo{}, notifier)

	_, err := svc.Confirm(nil, "cons-1", &dto.ConfirmConsultationRequest{
		SlotIndex:   0,
		MeetingLink: "https://meet.test/abc",
	})

	assert.ErrorIs(t, err, apperrors.ErrConsultationClosed)
	assert.Empty(t, notifier.recorded())
}

func TestConsultationReject_AllowedFromRescheduled(t *testing.T) {
	t.Parallel()

	repo := &mockConsultationRepo{
		findByIDFn: func(id string) (*models.ConsultationRequest, error) {
			return &models.ConsultationRequest{
				Email:  "prospect@test.com",
				Slots:  slotsJSON(t, []string{futureSlot(24 * time.Hour)}),
				Status: models.ConsultationStatusRescheduled,
			}, nil
		},
		updateStatusIfFn: func(id string, from []models.ConsultationStatus, updates map[string]interface{}) error {
			// Reject разрешен в том числе из rescheduled
			assert.Contains(t, from, models.ConsultationStatusRescheduled)
			return nil
		},
	}
	notifier := &mockNotifier{}
	svc := NewConsultationService(repo, &mockUserRepo{}, notifier)

	resp, err := svc.Reject(nil, "cons-1", &dto.RejectConsultationRequest{Reason: "not a fit"})

	require.NoError(t, err)
	assert.Equal(t, models.ConsultationStatusRejected, resp.Status)
	assert.Equal(t, "not a fit", resp.AdminNotes)
	assert.Equal(t, []string{EventConsultationRejected}, notifier.recorded())
}

func TestConsultationReschedule_Success(t *testing.T) {
	t.Parallel()

	repo := &mockConsultationRepo{
		findByIDFn: func(id string) (*models.ConsultationRequest, error) {
			return &models.ConsultationRequest{
				Email:  "prospect@test.com",
				Slots:  slotsJSON(t, []string{futureSlot(24 * time.Hour)}),
				Status: models.ConsultationStatusPending,
			}, nil
		},
		updateStatusIfFn: func(id string, from []models.ConsultationStatus, updates map[string]interface{}) error {
			assert.Equal(t, models.ConsultationStatusRescheduled, updates["status"])
			return nil
		},
	}
	notifier := &mockNotifier{}
	svc := NewConsultationService(repo, &mockUserRepo{}, notifier)

	resp, err := svc.Reschedule(nil, "cons-1", &dto.RescheduleConsultationRequest{Reason: "slots passed"})

	require.NoError(t, err)
	assert.Equal(t, models.ConsultationStatusRescheduled, resp.Status)
	assert.Equal(t, []string{EventConsultationRescheduled}, notifier.recorded())
}

func TestConsultationReschedule_AllowedFromRescheduled(t *testing.T) {
	t.Parallel()

	// Повторный reschedule уже rescheduled заявки - письмо-напоминание,
	// а не конфликт
	repo := &mockConsultationRepo{
		findByIDFn: func(id string) (*models.ConsultationRequest, error) {
			return &models.ConsultationRequest{
				Email:  "prospect@test.com",
				Slots:  slotsJSON(t, []string{futureSlot(24 * time.Hour)}),
				Status: models.ConsultationStatusRescheduled,
			}, nil
		},
		updateStatusIfFn: func(id string, from []models.ConsultationStatus, updates map[string]interface{}) error {
			assert.Contains(t, from, models.ConsultationStatusRescheduled)
			return nil
		},
	}
	notifier := &mockNotifier{}
	svc := NewConsultationService(repo, &mockUserRepo{}, notifier)

	resp, err := svc.Reschedule(nil, "cons-1", &dto.RescheduleConsultationRequest{Reason: "still no reply"})

	require.NoError(t, err)
	assert.Equal(t, models.ConsultationStatusRescheduled, resp.Status)
	assert.Equal(t, []string{EventConsultationRescheduled}, notifier.recorded())
}

func TestConsultationGet_NotFound(t *testing.T) {
	t.Parallel()

	repo := &mockConsultationRepo{
		findByIDFn: func(id string) (*models.ConsultationRequest, error) {
			return nil, repositories.ErrConsultationNotFound
		},
	}
	svc := NewConsultationService(repo, &mockUserRepo{}, &mockNotifier{})

	_, err := svc.Get(nil, "missing")

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 404, appErr.HTTPCode)
}
