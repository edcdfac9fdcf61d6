package services

import (
	"encoding/json"
	"time"

	"careerbridge_backend/internal/models"
	"careerbridge_backend/internal/repositories"
	"careerbridge_backend/internal/services/dto"
	"careerbridge_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ConsultationService владеет жизненным циклом заявки на консультацию:
// submit (публичный) и confirm/reject/reschedule (операторские).
type ConsultationService interface {
	Submit(db *gorm.DB, req *dto.SubmitConsultationRequest) (*dto.ConsultationResponse, error)
	Confirm(db *gorm.DB, id string, req *dto.ConfirmConsultationRequest) (*dto.ConsultationResponse, error)
	Reject(db *gorm.DB, id string, req *dto.RejectConsultationRequest) (*dto.ConsultationResponse, error)
	Reschedule(db *gorm.DB, id string, req *dto.RescheduleConsultationRequest) (*dto.ConsultationResponse, error)
	Get(db *gorm.DB, id string) (*dto.ConsultationResponse, error)
	List(db *gorm.DB, criteria dto.ConsultationCriteria) (*dto.ConsultationListResponse, error)
}

type consultationService struct {
	consultationRepo repositories.ConsultationRepository
	userRepo         repositories.UserRepository
	notifier         NotificationService
}

func NewConsultationService(
	consultationRepo repositories.ConsultationRepository,
	userRepo repositories.UserRepository,
	notifier NotificationService,
) ConsultationService {
	return &consultationService{
		consultationRepo: consultationRepo,
		userRepo:         userRepo,
		notifier:         notifier,
	}
}

// Submit - публичная отправка заявки.
// Слоты уже прошли валидацию (1-3, будущие, RFC3339); здесь остаются
// только проверки, требующие БД: дубликат и различимость слотов.
func (s *consultationService) Submit(db *gorm.DB, req *dto.SubmitConsultationRequest) (*dto.ConsultationResponse, error) {
	// Слоты должны быть различимы: подтверждение идет по индексу
	seen := make(map[string]bool, len(req.Slots))
	for _, slot := range req.Slots {
		if seen[slot] {
			return nil, apperrors.NewBadRequestError("Duplicate time slots are not allowed")
		}
		seen[slot] = true
	}

	slotsJSON, err := json.Marshal(req.Slots)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	consultation := &models.ConsultationRequest{
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		TargetRoles: req.TargetRoles,
		Concerns:    req.Concerns,
		Slots:       datatypes.JSON(slotsJSON),
	}

	if err := s.consultationRepo.CreateOrResubmit(db, consultation); err != nil {
		if apperrors.Is(err, repositories.ErrDuplicateRequest) {
			return nil, apperrors.ErrDuplicateConsultation
		}
		return nil, apperrors.InternalError(err)
	}

	// Запись durable - уведомления строго после нее
	s.notifier.NotifyConsultationReceived(consultation)

	return buildConsultationResponse(consultation), nil
}

// Confirm - оператор выбирает слот и назначает встречу.
// Конкурентный confirm той же заявки ловит conditional update.
func (s *consultationService) Confirm(db *gorm.DB, id string, req *dto.ConfirmConsultationRequest) (*dto.ConsultationResponse, error) {
	consultation, err := s.consultationRepo.FindByID(db, id)
	if err != nil {
		return nil, mapConsultationError(err)
	}

	slots, err := decodeSlots(consultation.Slots)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if req.SlotIndex < 0 || req.SlotIndex >= len(slots) {
		return nil, apperrors.ErrInvalidSlotIndex
	}

	scheduledAt, err := time.Parse(time.RFC3339, slots[req.SlotIndex])
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	now := time.Now()
	err = s.consultationRepo.UpdateStatusIf(db, id,
		[]models.ConsultationStatus{models.ConsultationStatusPending, models.ConsultationStatusUnderReview},
		map[string]interface{}{
			"status":              models.ConsultationStatusConfirmed,
			"selected_slot_index": req.SlotIndex,
			"meeting_link":        req.MeetingLink,
			"admin_notes":         req.Notes,
			"processed_at":        now,
		})
	if err != nil {
		return nil, mapConsultationError(err)
	}

	consultation.Status = models.ConsultationStatusConfirmed
	consultation.SelectedSlotIndex = &req.SlotIndex
	consultation.MeetingLink = &req.MeetingLink
	consultation.AdminNotes = req.Notes
	consultation.ProcessedAt = &now

	s.notifier.NotifyConsultationConfirmed(consultation, scheduledAt)

	return buildConsultationResponse(consultation), nil
}

// Reject - терминальный отказ, путь регистрации не открывается
func (s *consultationService) Reject(db *gorm.DB, id string, req *dto.RejectConsultationRequest) (*dto.ConsultationResponse, error) {
	consultation, err := s.consultationRepo.FindByID(db, id)
	if err != nil {
		return nil, mapConsultationError(err)
	}

	now := time.Now()
	err = s.consultationRepo.UpdateStatusIf(db, id,
		[]models.ConsultationStatus{
			models.ConsultationStatusPending,
			models.ConsultationStatusUnderReview,
			models.ConsultationStatusRescheduled,
		},
		map[string]interface{}{
			"status":       models.ConsultationStatusRejected,
			"admin_notes":  req.Reason,
			"processed_at": now,
		})
	if err != nil {
		return nil, mapConsultationError(err)
	}

	consultation.Status = models.ConsultationStatusRejected
	consultation.AdminNotes = req.Reason
	consultation.ProcessedAt = &now

	s.notifier.NotifyConsultationRejected(consultation, req.Reason)

	return buildConsultationResponse(consultation), nil
}

// Reschedule переводит заявку в rescheduled: проспект должен
// отправить новые слоты, дубликат-гард submit его пропустит.
// Повторный reschedule уже rescheduled заявки разрешен (письмо-напоминание).
func (s *consultationService) Reschedule(db *gorm.DB, id string, req *dto.RescheduleConsultationRequest) (*dto.ConsultationResponse, error) {
	consultation, err := s.consultationRepo.FindByID(db, id)
	if err != nil {
		return nil, mapConsultationError(err)
	}

	now := time.Now()
	err = s.consultationRepo.UpdateStatusIf(db, id,
		[]models.ConsultationStatus{
			models.ConsultationStatusPending,
			models.ConsultationStatusUnderReview,
			models.ConsultationStatusRescheduled,
		},
		map[string]interface{}{
			"status":       models.ConsultationStatusRescheduled,
			"admin_notes":  req.Reason,
			"processed_at": now,
		})
	if err != nil {
		return nil, mapConsultationError(err)
	}

	consultation.Status = models.ConsultationStatusRescheduled
	consultation.AdminNotes = req.Reason
	consultation.ProcessedAt = &now

	s.notifier.NotifyConsultationRescheduled(consultation, req.Reason)

	return buildConsultationResponse(consultation), nil
}

func (s *consultationService) Get(db *gorm.DB, id string) (*dto.ConsultationResponse, error) {
	consultation, err := s.consultationRepo.FindByID(db, id)
	if err != nil {
		return nil, mapConsultationError(err)
	}
	return buildConsultationResponse(consultation), nil
}

func (s *consultationService) List(db *gorm.DB, criteria dto.ConsultationCriteria) (*dto.ConsultationListResponse, error) {
	filter := repositories.ConsultationFilter{
		Status:   models.ConsultationStatus(criteria.Status),
		Email:    criteria.Email,
		Page:     criteria.Page,
		PageSize: criteria.PageSize,
	}

	consultations, total, err := s.consultationRepo.FindWithFilter(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]*dto.ConsultationResponse, 0, len(consultations))
	for i := range consultations {
		responses = append(responses, buildConsultationResponse(&consultations[i]))
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}

	return &dto.ConsultationListResponse{
		Consultations: responses,
		Total:         total,
		Page:          filter.Page,
		PageSize:      filter.PageSize,
		TotalPages:    calculateTotalPages(total, filter.PageSize),
	}, nil
}

// ---------------- Helpers ----------------

func decodeSlots(raw datatypes.JSON) ([]string, error) {
	var slots []string
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

func mapConsultationError(err error) error {
	switch {
	case apperrors.Is(err, repositories.ErrConsultationNotFound):
		return apperrors.ErrNotFound(err)
	case apperrors.Is(err, repositories.ErrConsultationConflict):
		return apperrors.ErrConsultationClosed
	default:
		return apperrors.InternalError(err)
	}
}

func buildConsultationResponse(c *models.ConsultationRequest) *dto.ConsultationResponse {
	slots, _ := decodeSlots(c.Slots)

	resp := &dto.ConsultationResponse{
		ID:                c.ID,
		FullName:          c.FullName,
		Email:             c.Email,
		Phone:             c.Phone,
		TargetRoles:       c.TargetRoles,
		Concerns:          c.Concerns,
		Slots:             slots,
		Status:            c.Status,
		SelectedSlotIndex: c.SelectedSlotIndex,
		MeetingLink:       c.MeetingLink,
		AdminNotes:        c.AdminNotes,
		PaymentVerified:   c.PaymentVerifiedAt != nil,
		CreatedAt:         c.CreatedAt,
		ProcessedAt:       c.ProcessedAt,
	}

	if c.SelectedSlotIndex != nil && *c.SelectedSlotIndex >= 0 && *c.SelectedSlotIndex < len(slots) {
		if t, err := time.Parse(time.RFC3339, slots[*c.SelectedSlotIndex]); err == nil {
			resp.ScheduledAt = &t
		}
	}

	return resp
}
