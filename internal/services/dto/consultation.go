package dto

import (
	"time"

	"careerbridge_backend/internal/models"
)

// SubmitConsultationRequest - публичная заявка проспекта.
// Слоты: 1-3 будущих даты в RFC3339, порядок имеет значение
// (оператор подтверждает по индексу).
type SubmitConsultationRequest struct {
	FullName    string   `json:"full_name" binding:"required" validate:"required,min=2"`
	Email       string   `json:"email" binding:"required" validate:"required,email"`
	Phone       string   `json:"phone,omitempty"`
	TargetRoles string   `json:"target_roles,omitempty"`
	Concerns    string   `json:"concerns,omitempty"`
	Slots       []string `json:"slots" binding:"required" validate:"required,min=1,max=3,dive,future"`
}

// ConfirmConsultationRequest - оператор выбирает слот и назначает встречу
type ConfirmConsultationRequest struct {
	SlotIndex   int    `json:"slot_index" validate:"min=0,max=2"`
	MeetingLink string `json:"meeting_link" validate:"required,url"`
	Notes       string `json:"notes,omitempty"`
}

// RejectConsultationRequest - отклонение заявки с причиной
type RejectConsultationRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// RescheduleConsultationRequest - запрос новых слотов у проспекта
type RescheduleConsultationRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// ConsultationCriteria - фильтр списка заявок для оператора
type ConsultationCriteria struct {
	Status   string `form:"status"`
	Email    string `form:"email"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// ConsultationResponse - представление заявки
type ConsultationResponse struct {
	ID                string                    `json:"id"`
	FullName          string                    `json:"full_name"`
	Email             string                    `json:"email"`
	Phone             string                    `json:"phone,omitempty"`
	TargetRoles       string                    `json:"target_roles,omitempty"`
	Concerns          string                    `json:"concerns,omitempty"`
	Slots             []string                  `json:"slots"`
	Status            models.ConsultationStatus `json:"status"`
	SelectedSlotIndex *int                      `json:"selected_slot_index,omitempty"`
	ScheduledAt       *time.Time                `json:"scheduled_at,omitempty"`
	MeetingLink       *string                   `json:"meeting_link,omitempty"`
	AdminNotes        string                    `json:"admin_notes,omitempty"`
	PaymentVerified   bool                      `json:"payment_verified"`
	CreatedAt         time.Time                 `json:"created_at"`
	ProcessedAt       *time.Time                `json:"processed_at,omitempty"`
}

// ConsultationListResponse - страница списка заявок
type ConsultationListResponse struct {
	Consultations []*ConsultationResponse `json:"consultations"`
	Total         int64                   `json:"total"`
	Page          int                     `json:"page"`
	PageSize      int                     `json:"page_size"`
	TotalPages    int                     `json:"total_pages"`
}
