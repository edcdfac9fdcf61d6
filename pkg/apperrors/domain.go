package apperrors

import (
	"net/http"
)

/*
Этот файл содержит фабрики и предопределенные переменные
для ошибок бизнес-логики жизненного цикла "проспект -> клиент".
*/

// =========================================================================
// Фабричные ФУНКЦИИ (используются для оборачивания ошибок из репозитория)
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404)
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// =========================================================================
// Consultations
// =========================================================================

// ErrDuplicateConsultation - для этого email уже есть нерешенная заявка.
var ErrDuplicateConsultation = New(
	CodeDuplicateConsultation,
	"consultation",
	"An unresolved consultation request already exists for this email",
	http.StatusConflict, // 409
)

// ErrConsultationClosed - заявка уже в терминальном статусе (confirmed/rejected).
var ErrConsultationClosed = New(
	CodeInvalidStatus,
	"consultation",
	"Operation not allowed for the current consultation status",
	http.StatusConflict, // 409 - важный для конкурентных confirm
)

// ErrInvalidSlotIndex - выбранный слот вне списка предложенных.
var ErrInvalidSlotIndex = New(
	CodeValidationFailed,
	"consultation",
	"Selected slot index is out of range",
	http.StatusBadRequest, // 400
)

// =========================================================================
// Invitations & Registration
// =========================================================================

// ErrEmailAlreadyRegistered - для email уже существует аккаунт клиента.
var ErrEmailAlreadyRegistered = New(
	CodeEmailAlreadyRegistered,
	"registration",
	"A client account already exists for this email",
	http.StatusConflict, // 409
)

// ErrTokenMalformed - токен не прошел проверку подписи/структуры.
var ErrTokenMalformed = New(
	CodeInvalidToken,
	"token",
	"Invalid registration link",
	http.StatusBadRequest, // 400
)

// ErrTokenExpired - срок действия токена истек.
var ErrTokenExpired = New(
	CodeTokenExpired,
	"token",
	"This registration link has expired",
	http.StatusBadRequest, // 400
)

// ErrTokenAlreadyUsed - токен уже был использован для регистрации.
// Отдельный код, чтобы UI мог показать "ссылка уже использована",
// а не общий invalid token.
var ErrTokenAlreadyUsed = New(
	CodeTokenUsed,
	"token",
	"This registration link has already been used",
	http.StatusBadRequest, // 400
)

// ErrTokenWrongIntent - токен выписан для другой цели.
var ErrTokenWrongIntent = New(
	CodeTokenWrongIntent,
	"token",
	"This link cannot be used for registration",
	http.StatusBadRequest, // 400
)

// =========================================================================
// Onboarding
// =========================================================================

// ErrOnboardingNotPending - approve возможен только из pending_approval.
var ErrOnboardingNotPending = New(
	CodeInvalidStatus,
	"onboarding",
	"Onboarding is not pending approval",
	http.StatusConflict, // 409
)

// ErrOnboardingNotSubmitted - анкета еще не отправлялась; отдельный код,
// чтобы UI показывал "заполните анкету", а не общий not found.
var ErrOnboardingNotSubmitted = New(
	CodeOnboardingNotSubmitted,
	"onboarding",
	"Onboarding questionnaire has not been submitted yet",
	http.StatusNotFound, // 404
)

// =========================================================================
// Applications
// =========================================================================

// ErrApplicationClosed - заявка в терминальном статусе, изменения запрещены.
var ErrApplicationClosed = New(
	CodeApplicationClosed,
	"application",
	"Application is closed and can no longer be updated",
	http.StatusConflict, // 409
)

// ErrInvalidApplicationTransition - переход не разрешен таблицей переходов.
var ErrInvalidApplicationTransition = New(
	CodeInvalidTransition,
	"application",
	"Status transition is not allowed",
	http.StatusConflict, // 409
)

// =========================================================================
// Auth & Account
// =========================================================================

// ErrWeakPassword - пароль слишком слабый.
var ErrWeakPassword = New(
	CodeWeakPassword,
	"validation",
	"Password is too weak. Minimum 8 characters required.",
	http.StatusBadRequest, // 400
)

// ErrInvalidCredentials - неверный email или пароль.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized, // 401
)

// ErrInvalidSessionToken - неверный или просроченный токен сессии/refresh.
var ErrInvalidSessionToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized, // 401
)

// ErrAccountSuspended - аккаунт клиента заблокирован.
var ErrAccountSuspended = New(
	CodeAccountSuspended,
	"auth",
	"Your account has been suspended",
	http.StatusForbidden, // 403
)

// ErrInsufficientPermissions - не-админ пытается выполнить админ-действие.
var ErrInsufficientPermissions = New(
	CodeInsufficientPermissions,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden, // 403
)
