package dto

import (
	"time"

	"careerbridge_backend/internal/models"
)

// CreateApplicationRequest - новый отклик, всегда стартует в applied
type CreateApplicationRequest struct {
	Company string `json:"company" validate:"required"`
	Title   string `json:"title" validate:"required"`
	Notes   string `json:"notes,omitempty"`
}

// UpdateApplicationStatusRequest - переход по таблице статусов.
// Детали этапа (дата интервью, сумма оффера) опциональны и пишутся
// вместе со статусом.
type UpdateApplicationStatusRequest struct {
	NewStatus   string     `json:"new_status" validate:"required,is-application-status"`
	Notes       string     `json:"notes,omitempty"`
	InterviewAt *time.Time `json:"interview_at,omitempty"`
	OfferAmount *float64   `json:"offer_amount,omitempty"`
	OfferNotes  string     `json:"offer_notes,omitempty"`
}

// ApplicationResponse - представление отклика
type ApplicationResponse struct {
	ID          string                   `json:"id"`
	UserID      string                   `json:"user_id"`
	Company     string                   `json:"company"`
	Title       string                   `json:"title"`
	Status      models.ApplicationStatus `json:"status"`
	Notes       string                   `json:"notes,omitempty"`
	InterviewAt *time.Time               `json:"interview_at,omitempty"`
	OfferAmount *float64                 `json:"offer_amount,omitempty"`
	OfferNotes  string                   `json:"offer_notes,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// ApplicationListResponse - отклики клиента постранично
type ApplicationListResponse struct {
	Applications []*ApplicationResponse `json:"applications"`
	Total        int64                  `json:"total"`
	Page         int                    `json:"page"`
	PageSize     int                    `json:"page_size"`
	TotalPages   int                    `json:"total_pages"`
}
