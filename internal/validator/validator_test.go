package validator

import (
	"testing"
	"time"

	"careerbridge_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSubmitRequest() dto.SubmitConsultationRequest {
	return dto.SubmitConsultationRequest{
		FullName: "Айгерим Тест",
		Email:    "prospect@test.com",
		Slots:    []string{time.Now().Add(48 * time.Hour).Format(time.RFC3339)},
	}
}

func TestValidate_SubmitConsultation_OK(t *testing.T) {
	t.Parallel()

	v := New()
	assert.NoError(t, v.Validate(validSubmitRequest()))
}

func TestValidate_FutureRule(t *testing.T) {
	t.Parallel()

	v := New()

	// Слот в прошлом
	req := validSubmitRequest()
	req.Slots = []string{time.Now().Add(-time.Hour).Format(time.RFC3339)}
	err := v.Validate(req)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	// Ключ ошибки - json-имя поля, не Go-имя
	_, ok := vErr.Errors["slots[0]"]
	assert.True(t, ok, "expected error keyed by json field name, got %v", vErr.Errors)

	// Не RFC3339 - тоже отказ
	req.Slots = []string{"tomorrow at noon"}
	assert.Error(t, v.Validate(req))
}

func TestValidate_SlotCountBounds(t *testing.T) {
	t.Parallel()

	v := New()

	// Пустой список слотов
	req := validSubmitRequest()
	req.Slots = []string{}
	assert.Error(t, v.Validate(req))

	// Четыре слота - больше максимума
	slot := time.Now().Add(48 * time.Hour).Format(time.RFC3339)
	req.Slots = []string{slot, slot, slot, slot}
	assert.Error(t, v.Validate(req))

	// Три - ровно максимум
	req.Slots = []string{slot, slot, slot}
	assert.NoError(t, v.Validate(req))
}

func TestValidate_EmailAndJSONFieldNames(t *testing.T) {
	t.Parallel()

	v := New()

	req := validSubmitRequest()
	req.Email = "not-an-email"
	req.FullName = ""
	err := v.Validate(req)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Must be a valid email address", vErr.Errors["email"])
	assert.Equal(t, "This field is required", vErr.Errors["full_name"])
}

func TestValidate_ApplicationStatusRule(t *testing.T) {
	t.Parallel()

	v := New()

	type statusPayload struct {
		Status string `json:"status" validate:"required,is-application-status"`
	}

	assert.NoError(t, v.Validate(statusPayload{Status: "interview_scheduled"}))

	err := v.Validate(statusPayload{Status: "hired"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Must be a valid application status", vErr.Errors["status"])
}

func TestValidate_MeetingLinkMustBeURL(t *testing.T) {
	t.Parallel()

	v := New()

	err := v.Validate(dto.ConfirmConsultationRequest{
		SlotIndex:   1,
		MeetingLink: "zoom room 42",
	})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Must be a valid URL", vErr.Errors["meeting_link"])
}
