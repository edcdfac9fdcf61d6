package dto

import (
	"time"

	"careerbridge_backend/internal/models"
)

// SubmitOnboardingRequest - онбординг-анкета клиента.
// Повторная отправка перезаписывает прежние ответы.
type SubmitOnboardingRequest struct {
	Answers map[string]interface{} `json:"answers" validate:"required,min=1"`
}

// ApproveOnboardingRequest - одобрение анкеты оператором
type ApproveOnboardingRequest struct {
	Notes string `json:"notes,omitempty"`
}

// PauseOnboardingRequest / RejectOnboardingRequest - административные действия
type PauseOnboardingRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type RejectOnboardingRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// OnboardingResponse - состояние анкеты
type OnboardingResponse struct {
	ID              string                  `json:"id"`
	UserID          string                  `json:"user_id"`
	Answers         map[string]interface{}  `json:"answers,omitempty"`
	ExecutionStatus models.OnboardingStatus `json:"execution_status"`
	ApprovedBy      *string                 `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time              `json:"approved_at,omitempty"`
	AdminNotes      string                  `json:"admin_notes,omitempty"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

// OnboardingListResponse - очередь анкет для оператора
type OnboardingListResponse struct {
	Records    []*OnboardingResponse `json:"records"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
}
