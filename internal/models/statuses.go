package models

type ConsultationStatus string
type UserStatus string
type UserRole string
type OnboardingStatus string
type ApplicationStatus string

const (
	// Жизненный цикл заявки на консультацию.
	// Терминальные статусы: confirmed, rejected.
	// rescheduled считается НЕрешенным - проспект должен прислать новые слоты.
	ConsultationStatusPending     ConsultationStatus = "pending"
	ConsultationStatusUnderReview ConsultationStatus = "under_review"
	ConsultationStatusConfirmed   ConsultationStatus = "confirmed"
	ConsultationStatusRejected    ConsultationStatus = "rejected"
	ConsultationStatusRescheduled ConsultationStatus = "rescheduled"

	UserRoleClient UserRole = "client"
	UserRoleAdmin  UserRole = "admin"

	UserStatusInvited    UserStatus = "invited"
	UserStatusActive     UserStatus = "active"
	UserStatusOnboarding UserStatus = "onboarding"
	UserStatusSuspended  UserStatus = "suspended"

	// Статус рассмотрения онбординг-анкеты оператором
	OnboardingStatusPendingApproval OnboardingStatus = "pending_approval"
	OnboardingStatusActive          OnboardingStatus = "active"
	OnboardingStatusPaused          OnboardingStatus = "paused"
	OnboardingStatusCompleted       OnboardingStatus = "completed"
	OnboardingStatusRejected        OnboardingStatus = "rejected"

	// Статусы отклика на вакансию
	ApplicationStatusApplied            ApplicationStatus = "applied"
	ApplicationStatusUnderReview        ApplicationStatus = "under_review"
	ApplicationStatusInterviewScheduled ApplicationStatus = "interview_scheduled"
	ApplicationStatusInterviewCompleted ApplicationStatus = "interview_completed"
	ApplicationStatusOfferReceived      ApplicationStatus = "offer_received"
	ApplicationStatusOfferAccepted      ApplicationStatus = "offer_accepted"
	ApplicationStatusRejected           ApplicationStatus = "rejected"
	ApplicationStatusWithdrawn          ApplicationStatus = "withdrawn"
)

// IsTerminal - confirmed и rejected закрывают заявку навсегда
func (s ConsultationStatus) IsTerminal() bool {
	return s == ConsultationStatusConfirmed || s == ConsultationStatusRejected
}

// IsUnresolved - по таким заявкам повторный submit с тем же email запрещен,
// кроме rescheduled: он специально открывает повторную отправку слотов.
func (s ConsultationStatus) IsUnresolved() bool {
	return s == ConsultationStatusPending || s == ConsultationStatusUnderReview
}

// IsTerminal - после этих статусов отклик больше не меняется
func (s ApplicationStatus) IsTerminal() bool {
	switch s {
	case ApplicationStatusRejected, ApplicationStatusWithdrawn, ApplicationStatusOfferAccepted:
		return true
	}
	return false
}
