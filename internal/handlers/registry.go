package handlers

import (
	"careerbridge_backend/internal/services"
	"careerbridge_backend/internal/validator"

	"github.com/gin-gonic/gin"
)

// AppHandlers - все HTTP-обработчики приложения
type AppHandlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Consultation *ConsultationHandler
	Payment      *PaymentHandler
	Registration *RegistrationHandler
	Onboarding   *OnboardingHandler
	Application  *ApplicationHandler
	Notification *NotificationHandler
}

// NewAppHandlers собирает обработчики поверх контейнера сервисов.
// rateLimiter навешивается только на публичный submit консультаций.
func NewAppHandlers(sc *services.ServiceContainer, v *validator.Validator, rateLimiter gin.HandlerFunc) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		Auth:         NewAuthHandler(base, sc.AuthService),
		User:         NewUserHandler(base, sc.UserService),
		Consultation: NewConsultationHandler(base, sc.ConsultationService, rateLimiter),
		Payment:      NewPaymentHandler(base, sc.InvitationService),
		Registration: NewRegistrationHandler(base, sc.RegistrationService),
		Onboarding:   NewOnboardingHandler(base, sc.OnboardingService),
		Application:  NewApplicationHandler(base, sc.ApplicationService),
		Notification: NewNotificationHandler(base, sc.NotificationService),
	}
}
