package apperrors

// ErrorCode - машиночитаемый код ошибки
type ErrorCode string

// Коды ошибок сгруппированные по доменам
const (
	// Аутентификация и авторизация
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"

	// Токены (регистрация, приглашения, сессии)
	CodeInvalidToken     ErrorCode = "INVALID_TOKEN"
	CodeTokenExpired     ErrorCode = "TOKEN_EXPIRED"
	CodeTokenUsed        ErrorCode = "TOKEN_ALREADY_USED"
	CodeTokenWrongIntent ErrorCode = "TOKEN_WRONG_INTENT"

	// Валидация
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeInvalidEmail     ErrorCode = "INVALID_EMAIL"
	CodeWeakPassword     ErrorCode = "WEAK_PASSWORD"

	// Ресурсы
	CodeNotFound             ErrorCode = "NOT_FOUND"
	CodeConsultationNotFound ErrorCode = "CONSULTATION_NOT_FOUND"
	CodeClientNotFound       ErrorCode = "CLIENT_NOT_FOUND"
	CodeApplicationNotFound  ErrorCode = "APPLICATION_NOT_FOUND"
	CodeOnboardingNotFound   ErrorCode = "ONBOARDING_NOT_FOUND"

	// Бизнес-логика (жизненный цикл клиента)
	CodeAlreadyExists           ErrorCode = "ALREADY_EXISTS"
	CodeConflict                ErrorCode = "CONFLICT"
	CodeDuplicateConsultation   ErrorCode = "DUPLICATE_CONSULTATION"
	CodeEmailAlreadyRegistered  ErrorCode = "EMAIL_ALREADY_REGISTERED"
	CodeInvalidStatus           ErrorCode = "INVALID_STATUS"
	CodeInvalidOperation        ErrorCode = "INVALID_OPERATION"
	CodeApplicationClosed       ErrorCode = "APPLICATION_CLOSED"
	CodeInvalidTransition       ErrorCode = "INVALID_STATUS_TRANSITION"
	CodeAccountSuspended        ErrorCode = "ACCOUNT_SUSPENDED"
	CodeOnboardingNotSubmitted  ErrorCode = "ONBOARDING_NOT_SUBMITTED"
	CodeLimitExceeded           ErrorCode = "LIMIT_EXCEEDED"
	CodeInsufficientPermissions ErrorCode = "INSUFFICIENT_PERMISSIONS"

	// Системные ошибки
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"
)
