package validator

import (
	"log"
	"time"

	"careerbridge_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует все кастомные функции валидации в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Если правило не удалось зарегистрировать, приложение
			// не должно запускаться, так как это критическая ошибка.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'future': слот консультации должен быть в будущем (RFC3339)
	mustRegister("future", validateFuture)

	// 'is-user-role': роль пользователя валидна
	mustRegister("is-user-role", validateUserRole)

	// 'is-application-status': статус отклика из фиксированного словаря
	mustRegister("is-application-status", validateApplicationStatus)

	// 'is-onboarding-status': статус онбординга валиден
	mustRegister("is-onboarding-status", validateOnboardingStatus)
}

// --- Функции валидации ---

func validateFuture(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' обрабатывает пустые
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return false
	}

	return t.After(time.Now())
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}

	switch models.UserRole(value) {
	case models.UserRoleClient, models.UserRoleAdmin:
		return true
	default:
		return false
	}
}

func validateApplicationStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}

	switch models.ApplicationStatus(value) {
	case models.ApplicationStatusApplied,
		models.ApplicationStatusUnderReview,
		models.ApplicationStatusInterviewScheduled,
		models.ApplicationStatusInterviewCompleted,
		models.ApplicationStatusOfferReceived,
		models.ApplicationStatusOfferAccepted,
		models.ApplicationStatusRejected,
		models.ApplicationStatusWithdrawn:
		return true
	default:
		return false
	}
}

func validateOnboardingStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}

	switch models.OnboardingStatus(value) {
	case models.OnboardingStatusPendingApproval,
		models.OnboardingStatusActive,
		models.OnboardingStatusPaused,
		models.OnboardingStatusCompleted,
		models.OnboardingStatusRejected:
		return true
	default:
		return false
	}
}
