package services

import (
	"sync"
	"time"

	"careerbridge_backend/internal/config"
	"careerbridge_backend/internal/email"
	"careerbridge_backend/internal/models"
	"careerbridge_backend/internal/repositories"
	"careerbridge_backend/internal/services/dto"

	"gorm.io/gorm"
)

func init() {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-do-not-use-in-prod"
	cfg.JWT.TTL = 60
	cfg.JWT.RefreshTTL = 24 * 7
	cfg.Invite.RegistrationTTL = 24 * 7
	cfg.Invite.DirectTTL = 24
	cfg.Invite.PublicBaseURL = "http://localhost:3000"
	config.AppConfig = cfg
}

// ----------------------------------------------------------------------------
// Мок-репозитории: поведение задается function-полями, незаданное
// поле означает "в этом тесте метод вызываться не должен".
// ----------------------------------------------------------------------------

type mockConsultationRepo struct {
	createOrResubmitFn func(req *models.ConsultationRequest) error
	findByIDFn         func(id string) (*models.ConsultationRequest, error)
	findWithFilterFn   func(filter repositories.ConsultationFilter) ([]models.ConsultationRequest, int64, error)
	updateStatusIfFn   func(id string, from []models.ConsultationStatus, updates map[string]interface{}) error
	recordPaymentFn    func(id string, updates map[string]interface{}) error
	markConvertedFn    func(id string) error
}

func (m *mockConsultationRepo) CreateOrResubmit(db *gorm.DB, req *models.ConsultationRequest) error {
	return m.createOrResubmitFn(req)
}
func (m *mockConsultationRepo) FindByID(db *gorm.DB, id string) (*models.ConsultationRequest, error) {
	return m.findByIDFn(id)
}
func (m *mockConsultationRepo) FindWithFilter(db *gorm.DB, filter repositories.ConsultationFilter) ([]models.ConsultationRequest, int64, error) {
	return m.findWithFilterFn(filter)
}
func (m *mockConsultationRepo) UpdateStatusIf(db *gorm.DB, id string, from []models.ConsultationStatus, updates map[string]interface{}) error {
	return m.updateStatusIfFn(id, from, updates)
}
func (m *mockConsultationRepo) RecordPayment(db *gorm.DB, id string, updates map[string]interface{}) error {
	return m.recordPaymentFn(id, updates)
}
func (m *mockConsultationRepo) MarkConverted(db *gorm.DB, id string) error {
	return m.markConvertedFn(id)
}

type mockRegistrationTokenRepo struct {
	createFn          func(token *models.RegistrationToken) error
	findByTokenFn     func(tokenString string) (*models.RegistrationToken, error)
	findLiveByEmailFn func(email string) (*models.RegistrationToken, error)
	consumeFn         func(tokenString string) error
}

func (m *mockRegistrationTokenRepo) Create(db *gorm.DB, token *models.RegistrationToken) error {
	return m.createFn(token)
}
func (m *mockRegistrationTokenRepo) FindByToken(db *gorm.DB, tokenString string) (*models.RegistrationToken, error) {
	return m.findByTokenFn(tokenString)
}
func (m *mockRegistrationTokenRepo) FindLiveByEmail(db *gorm.DB, email string) (*models.RegistrationToken, error) {
	return m.findLiveByEmailFn(email)
}
func (m *mockRegistrationTokenRepo) Consume(db *gorm.DB, tokenString string) error {
	return m.consumeFn(tokenString)
}
func (m *mockRegistrationTokenRepo) DeleteExpired(db *gorm.DB) error { return nil }

type mockUserRepo struct {
	findByIDFn              func(id string) (*models.User, error)
	findByEmailFn           func(email string) (*models.User, error)
	createFn                func(user *models.User) error
	updateFn                func(user *models.User) error
	updateStatusFn          func(userID string, status models.UserStatus) error
	setOnboardingCompleteFn func(userID string, complete bool) error
	updatePasswordFn        func(userID, hash string, temporary bool) error
	findWithFilterFn        func(filter repositories.UserFilter) ([]models.User, int64, error)
	deactivateFn            func(userID string) error
}

func (m *mockUserRepo) FindByID(db *gorm.DB, id string) (*models.User, error) {
	return m.findByIDFn(id)
}
func (m *mockUserRepo) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	return m.findByEmailFn(email)
}
func (m *mockUserRepo) Create(db *gorm.DB, user *models.User) error { return m.createFn(user) }
func (m *mockUserRepo) Update(db *gorm.DB, user *models.User) error { return m.updateFn(user) }
func (m *mockUserRepo) UpdateStatus(db *gorm.DB, userID string, status models.UserStatus) error {
	return m.updateStatusFn(userID, status)
}
func (m *mockUserRepo) SetOnboardingComplete(db *gorm.DB, userID string, complete bool) error {
	return m.setOnboardingCompleteFn(userID, complete)
}
func (m *mockUserRepo) UpdatePassword(db *gorm.DB, userID, passwordHash string, temporary bool) error {
	return m.updatePasswordFn(userID, passwordHash, temporary)
}
func (m *mockUserRepo) FindWithFilter(db *gorm.DB, filter repositories.UserFilter) ([]models.User, int64, error) {
	return m.findWithFilterFn(filter)
}
func (m *mockUserRepo) CountByRole(db *gorm.DB, role models.UserRole) (int64, error) {
	return 0, nil
}
func (m *mockUserRepo) Deactivate(db *gorm.DB, userID string) error { return m.deactivateFn(userID) }

type mockOnboardingRepo struct {
	upsertFn         func(record *models.OnboardingRecord) error
	findByUserIDFn   func(userID string) (*models.OnboardingRecord, error)
	findWithStatusFn func(status models.OnboardingStatus, page, pageSize int) ([]models.OnboardingRecord, int64, error)
	updateStatusIfFn func(userID string, from models.OnboardingStatus, updates map[string]interface{}) error
}

func (m *mockOnboardingRepo) Upsert(db *gorm.DB, record *models.OnboardingRecord) error {
	return m.upsertFn(record)
}
func (m *mockOnboardingRepo) FindByUserID(db *gorm.DB, userID string) (*models.OnboardingRecord, error) {
	return m.findByUserIDFn(userID)
}
func (m *mockOnboardingRepo) FindWithStatus(db *gorm.DB, status models.OnboardingStatus, page, pageSize int) ([]models.OnboardingRecord, int64, error) {
	return m.findWithStatusFn(status, page, pageSize)
}
func (m *mockOnboardingRepo) UpdateStatusIf(db *gorm.DB, userID string, from models.OnboardingStatus, updates map[string]interface{}) error {
	return m.updateStatusIfFn(userID, from, updates)
}

type mockApplicationRepo struct {
	createFn         func(app *models.Application) error
	findByIDFn       func(id string) (*models.Application, error)
	findByUserIDFn   func(userID string, page, pageSize int) ([]models.Application, int64, error)
	updateStatusIfFn func(id string, from models.ApplicationStatus, updates map[string]interface{}) error
}

func (m *mockApplicationRepo) Create(db *gorm.DB, app *models.Application) error {
	return m.createFn(app)
}
func (m *mockApplicationRepo) FindByID(db *gorm.DB, id string) (*models.Application, error) {
	return m.findByIDFn(id)
}
func (m *mockApplicationRepo) FindByUserID(db *gorm.DB, userID string, page, pageSize int) ([]models.Application, int64, error) {
	return m.findByUserIDFn(userID, page, pageSize)
}
func (m *mockApplicationRepo) UpdateStatusIf(db *gorm.DB, id string, from models.ApplicationStatus, updates map[string]interface{}) error {
	return m.updateStatusIfFn(id, from, updates)
}

type mockNotificationRepo struct {
	mu      sync.Mutex
	created []models.Notification

	findByUserIDFn func(userID string, unreadOnly bool, page, pageSize int) ([]models.Notification, int64, error)
	markReadFn     func(id, userID string) error
	markAllReadFn  func(userID string) error
	countUnreadFn  func(userID string) (int64, error)
}

func (m *mockNotificationRepo) Create(db *gorm.DB, n *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, *n)
	return nil
}
func (m *mockNotificationRepo) FindByUserID(db *gorm.DB, userID string, unreadOnly bool, page, pageSize int) ([]models.Notification, int64, error) {
	return m.findByUserIDFn(userID, unreadOnly, page, pageSize)
}
func (m *mockNotificationRepo) MarkRead(db *gorm.DB, id, userID string) error {
	return m.markReadFn(id, userID)
}
func (m *mockNotificationRepo) MarkAllRead(db *gorm.DB, userID string) error {
	return m.markAllReadFn(userID)
}
func (m *mockNotificationRepo) CountUnread(db *gorm.DB, userID string) (int64, error) {
	return m.countUnreadFn(userID)
}

func (m *mockNotificationRepo) stored() []models.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Notification, len(m.created))
	copy(out, m.created)
	return out
}

type mockRefreshTokenRepo struct {
	createFn         func(token *models.RefreshToken) error
	findByTokenFn    func(tokenString string) (*models.RefreshToken, error)
	deleteByTokenFn  func(tokenString string) error
	deleteByUserIDFn func(userID string) error
}

func (m *mockRefreshTokenRepo) Create(db *gorm.DB, token *models.RefreshToken) error {
	return m.createFn(token)
}
func (m *mockRefreshTokenRepo) FindByToken(db *gorm.DB, tokenString string) (*models.RefreshToken, error) {
	return m.findByTokenFn(tokenString)
}
func (m *mockRefreshTokenRepo) DeleteByToken(db *gorm.DB, tokenString string) error {
	return m.deleteByTokenFn(tokenString)
}
func (m *mockRefreshTokenRepo) DeleteByUserID(db *gorm.DB, userID string) error {
	return m.deleteByUserIDFn(userID)
}
func (m *mockRefreshTokenRepo) CleanExpiredRefreshTokens(db *gorm.DB) error { return nil }

// ----------------------------------------------------------------------------
// Мок-нотификатор: записывает события, никогда не падает (по контракту)
// ----------------------------------------------------------------------------

type mockNotifier struct {
	mu     sync.Mutex
	events []string
}

func (m *mockNotifier) record(event string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *mockNotifier) recorded() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.events))
	copy(out, m.events)
	return out
}

func (m *mockNotifier) NotifyConsultationReceived(req *models.ConsultationRequest) {
	m.record(EventConsultationReceived)
}
func (m *mockNotifier) NotifyConsultationConfirmed(req *models.ConsultationRequest, scheduledAt time.Time) {
	m.record(EventConsultationConfirmed)
}
func (m *mockNotifier) NotifyConsultationRejected(req *models.ConsultationRequest, reason string) {
	m.record(EventConsultationRejected)
}
func (m *mockNotifier) NotifyConsultationRescheduled(req *models.ConsultationRequest, reason string) {
	m.record(EventConsultationRescheduled)
}
func (m *mockNotifier) NotifyInvitation(toEmail, name, registrationLink string, expiresAt time.Time, resent bool) {
	m.record(EventInvitation)
}
func (m *mockNotifier) NotifyAdminInvite(toEmail, name, registrationLink string, expiresAt time.Time) {
	m.record(EventAdminInvite)
}
func (m *mockNotifier) NotifyWelcome(db *gorm.DB, user *models.User) { m.record(EventWelcome) }
func (m *mockNotifier) NotifyOnboardingReceived(db *gorm.DB, user *models.User) {
	m.record(EventOnboardingReceived)
}
func (m *mockNotifier) NotifyOnboardingApproved(db *gorm.DB, user *models.User) {
	m.record(EventOnboardingApproved)
}
func (m *mockNotifier) NotifyOnboardingPaused(db *gorm.DB, user *models.User, reason string) {
	m.record(EventOnboardingPaused)
}
func (m *mockNotifier) NotifyOnboardingRejected(db *gorm.DB, user *models.User, reason string) {
	m.record(EventOnboardingRejected)
}
func (m *mockNotifier) NotifyApplicationStatus(db *gorm.DB, user *models.User, app *models.Application) {
	m.record(EventApplicationUpdate)
}
func (m *mockNotifier) GetUserNotifications(db *gorm.DB, userID string, unreadOnly bool, page, pageSize int) (*dto.NotificationListResponse, error) {
	return &dto.NotificationListResponse{}, nil
}
func (m *mockNotifier) MarkAsRead(db *gorm.DB, userID, notificationID string) error { return nil }
func (m *mockNotifier) MarkAllAsRead(db *gorm.DB, userID string) error              { return nil }

// ----------------------------------------------------------------------------
// Мок email-провайдер с синхронизацией: sendEmail работает в горутине
// ----------------------------------------------------------------------------

type sentEmail struct {
	To       string
	Subject  string
	Template string
	Data     email.TemplateData
}

type mockEmailProvider struct {
	mu   sync.Mutex
	sent []sentEmail
	done chan struct{}
}

func newMockEmailProvider(expected int) *mockEmailProvider {
	return &mockEmailProvider{done: make(chan struct{}, expected)}
}

func (m *mockEmailProvider) Send(e *email.Email) error { return nil }
func (m *mockEmailProvider) SendTemplate(to []string, subject string, templateName string, data email.TemplateData) error {
	m.mu.Lock()
	for _, addr := range to {
		m.sent = append(m.sent, sentEmail{To: addr, Subject: subject, Template: templateName, Data: data})
	}
	m.mu.Unlock()
	m.done <- struct{}{}
	return nil
}
func (m *mockEmailProvider) Validate() error { return nil }
func (m *mockEmailProvider) Close() error    { return nil }

// waitFor блокирует, пока не будет отправлено n писем (или таймаут)
func (m *mockEmailProvider) waitFor(n int, timeout time.Duration) bool {
	deadline := time.After(timeout)
	for i := 0; i < n; i++ {
		select {
		case <-m.done:
		case <-deadline:
			return false
		}
	}
	return true
}

func (m *mockEmailProvider) delivered() []sentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]sentEmail, len(m.sent))
	copy(out, m.sent)
	return out
}
