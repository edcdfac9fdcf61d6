package services

import (
	"careerbridge_backend/internal/email"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService         AuthService
	UserService         UserService
	ConsultationService ConsultationService
	InvitationService   InvitationService
	RegistrationService RegistrationService
	OnboardingService   OnboardingService
	ApplicationService  ApplicationService
	NotificationService NotificationService
	EmailService        email.Provider
}
