package services

import (
	"fmt"
	"strings"
	"time"

	"careerbridge_backend/internal/email"
	"careerbridge_backend/internal/logger"
	"careerbridge_backend/internal/models"
	"careerbridge_backend/internal/repositories"
	"careerbridge_backend/internal/services/dto"

	"gorm.io/gorm"
)

// Имена событий жизненного цикла. Каждому соответствует шаблон письма
// и (для зарегистрированных клиентов) in-app запись.
const (
	EventConsultationReceived    = "consultation.received"
	EventConsultationNew         = "consultation.new"
	EventConsultationConfirmed   = "consultation.confirmed"
	EventConsultationRejected    = "consultation.rejected"
	EventConsultationRescheduled = "consultation.rescheduled"
	EventInvitation              = "invitation.sent"
	EventWelcome                 = "registration.welcome"
	EventOnboardingReceived      = "onboarding.received"
	EventOnboardingApproved      = "onboarding.approved"
	EventOnboardingPaused        = "onboarding.paused"
	EventOnboardingRejected      = "onboarding.rejected"
	EventApplicationUpdate       = "application.status"
	EventAdminInvite             = "admin.invite"
)

// NotificationService - диспетчер уведомлений жизненного цикла.
// КОНТРАКТ: методы Notify* ничего не возвращают и никогда не
// прерывают вызывающую бизнес-операцию. Запись состояния в БД уже
// durable к моменту вызова; отказ SMTP - это warning в логе, не 500.
type NotificationService interface {
	// Проспекты (аккаунта еще нет, только email)
	NotifyConsultationReceived(req *models.ConsultationRequest)
	NotifyConsultationConfirmed(req *models.ConsultationRequest, scheduledAt time.Time)
	NotifyConsultationRejected(req *models.ConsultationRequest, reason string)
	NotifyConsultationRescheduled(req *models.ConsultationRequest, reason string)
	NotifyInvitation(toEmail, name, registrationLink string, expiresAt time.Time, resent bool)
	NotifyAdminInvite(toEmail, name, registrationLink string, expiresAt time.Time)

	// Клиенты (email + in-app запись)
	NotifyWelcome(db *gorm.DB, user *models.User)
	NotifyOnboardingReceived(db *gorm.DB, user *models.User)
	NotifyOnboardingApproved(db *gorm.DB, user *models.User)
	NotifyOnboardingPaused(db *gorm.DB, user *models.User, reason string)
	NotifyOnboardingRejected(db *gorm.DB, user *models.User, reason string)
	NotifyApplicationStatus(db *gorm.DB, user *models.User, app *models.Application)

	// Чтение in-app уведомлений
	GetUserNotifications(db *gorm.DB, userID string, unreadOnly bool, page, pageSize int) (*dto.NotificationListResponse, error)
	MarkAsRead(db *gorm.DB, userID, notificationID string) error
	MarkAllAsRead(db *gorm.DB, userID string) error
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	emailProvider    email.Provider
	adminEmail       string // операторская почта для событий "new request"
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	emailProvider email.Provider,
	adminEmail string,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		emailProvider:    emailProvider,
		adminEmail:       adminEmail,
	}
}

// ---------------- Доставка (best-effort) ----------------

// sendEmail - ровно одна попытка, без очереди ретраев.
// Ошибка логируется и проглатывается.
func (s *notificationService) sendEmail(event, to, subject, templateName string, data email.TemplateData) {
	if to == "" {
		return
	}
	go func() {
		err := s.emailProvider.SendTemplate([]string{to}, subject, templateName, data)
		logger.MailLog(event, to, err)
	}()
}

// storeInApp пишет in-app запись. Ошибка не эскалируется:
// переход состояния уже состоялся.
func (s *notificationService) storeInApp(db *gorm.DB, userID, event, title, message string) {
	n := &models.Notification{
		UserID:  userID,
		Event:   event,
		Title:   title,
		Message: message,
	}
	if err := s.notificationRepo.Create(db, n); err != nil {
		logger.WithError(err).Warn("failed to store in-app notification", "event", event, "user_id", userID)
	}
}

// ---------------- Проспекты ----------------

func (s *notificationService) NotifyConsultationReceived(req *models.ConsultationRequest) {
	slots := formatSlots(req)

	s.sendEmail(EventConsultationReceived, req.Email,
		"Мы получили вашу заявку на консультацию",
		email.TemplateConsultationReceived,
		email.TemplateData{"Name": req.FullName, "Slots": slots})

	// Операторам - отдельное письмо о новой заявке
	s.sendEmail(EventConsultationNew, s.adminEmail,
		"Новая заявка на консультацию",
		email.TemplateConsultationNew,
		email.TemplateData{"Name": req.FullName, "Email": req.Email, "Slots": slots})
}

func (s *notificationService) NotifyConsultationConfirmed(req *models.ConsultationRequest, scheduledAt time.Time) {
	link := ""
	if req.MeetingLink != nil {
		link = *req.MeetingLink
	}

	s.sendEmail(EventConsultationConfirmed, req.Email,
		"Ваша консультация подтверждена",
		email.TemplateConsultationConfirmed,
		email.TemplateData{
			"Name":        req.FullName,
			"ScheduledAt": scheduledAt.Format("02.01.2006 15:04 MST"),
			"MeetingLink": link,
		})
}

func (s *notificationService) NotifyConsultationRejected(req *models.ConsultationRequest, reason string) {
	s.sendEmail(EventConsultationRejected, req.Email,
		"Ваша заявка на консультацию",
		email.TemplateConsultationRejected,
		email.TemplateData{"Name": req.FullName, "Reason": reason})
}

func (s *notificationService) NotifyConsultationRescheduled(req *models.ConsultationRequest, reason string) {
	s.sendEmail(EventConsultationRescheduled, req.Email,
		"Нужны новые слоты для консультации",
		email.TemplateConsultationRescheduled,
		email.TemplateData{"Name": req.FullName, "Reason": reason})
}

func (s *notificationService) NotifyInvitation(toEmail, name, registrationLink string, expiresAt time.Time, resent bool) {
	subject := "Завершите регистрацию в CareerBridge"
	if resent {
		subject = "Напоминание: завершите регистрацию в CareerBridge"
	}

	s.sendEmail(EventInvitation, toEmail, subject,
		email.TemplateInvitation,
		email.TemplateData{
			"Name":             name,
			"RegistrationLink": registrationLink,
			"ExpiresAt":        expiresAt.Format("02.01.2006 15:04 MST"),
		})
}

func (s *notificationService) NotifyAdminInvite(toEmail, name, registrationLink string, expiresAt time.Time) {
	s.sendEmail(EventAdminInvite, toEmail,
		"Вас пригласили в CareerBridge",
		email.TemplateAdminInvite,
		email.TemplateData{
			"Name":             name,
			"RegistrationLink": registrationLink,
			"ExpiresAt":        expiresAt.Format("02.01.2006 15:04 MST"),
		})
}

// ---------------- Клиенты ----------------

func (s *notificationService) NotifyWelcome(db *gorm.DB, user *models.User) {
	s.storeInApp(db, user.ID, EventWelcome,
		"Добро пожаловать!",
		"Ваш аккаунт создан. Следующий шаг - онбординг-анкета.")

	s.sendEmail(EventWelcome, user.Email,
		"Добро пожаловать в CareerBridge",
		email.TemplateWelcome,
		email.TemplateData{"Name": user.FullName})
}

func (s *notificationService) NotifyOnboardingReceived(db *gorm.DB, user *models.User) {
	s.storeInApp(db, user.ID, EventOnboardingReceived,
		"Анкета получена",
		"Ваша анкета на рассмотрении у куратора.")

	s.sendEmail(EventOnboardingReceived, user.Email,
		"Анкета получена",
		email.TemplateOnboardingReceived,
		email.TemplateData{"Name": user.FullName})

	s.sendEmail(EventOnboardingReceived, s.adminEmail,
		"Новая анкета ждет проверки",
		email.TemplateOnboardingReceived,
		email.TemplateData{"Name": user.FullName})
}

func (s *notificationService) NotifyOnboardingApproved(db *gorm.DB, user *models.User) {
	s.storeInApp(db, user.ID, EventOnboardingApproved,
		"Профиль разблокирован",
		"Анкета одобрена, все функции кабинета доступны.")

	s.sendEmail(EventOnboardingApproved, user.Email,
		"Ваш профиль разблокирован",
		email.TemplateOnboardingApproved,
		email.TemplateData{"Name": user.FullName})
}

func (s *notificationService) NotifyOnboardingPaused(db *gorm.DB, user *models.User, reason string) {
	s.storeInApp(db, user.ID, EventOnboardingPaused,
		"Работа приостановлена",
		fmt.Sprintf("Работа по анкете приостановлена: %s", reason))

	s.sendEmail(EventOnboardingPaused, user.Email,
		"Работа по анкете приостановлена",
		email.TemplateOnboardingPaused,
		email.TemplateData{"Name": user.FullName, "Reason": reason})
}

func (s *notificationService) NotifyOnboardingRejected(db *gorm.DB, user *models.User, reason string) {
	s.storeInApp(db, user.ID, EventOnboardingRejected,
		"Анкета требует доработки",
		fmt.Sprintf("Анкета не принята: %s", reason))

	s.sendEmail(EventOnboardingRejected, user.Email,
		"Анкета требует доработки",
		email.TemplateOnboardingRejected,
		email.TemplateData{"Name": user.FullName, "Reason": reason})
}

// applicationCopy - текст уведомления на КАЖДЫЙ статус отклика.
// Чистый lookup: никакой конкатенации произвольных полей в рантайме.
type applicationCopyEntry struct {
	Title   string
	Message string // формат с %s/%s = компания, позиция
}

var applicationCopy = map[models.ApplicationStatus]applicationCopyEntry{
	models.ApplicationStatusApplied: {
		Title:   "Отклик отправлен",
		Message: "Мы откликнулись в %s на позицию %s.",
	},
	models.ApplicationStatusUnderReview: {
		Title:   "Резюме на рассмотрении",
		Message: "Компания %s рассматривает ваше резюме на позицию %s.",
	},
	models.ApplicationStatusInterviewScheduled: {
		Title:   "Назначено интервью",
		Message: "Компания %s пригласила вас на интервью по позиции %s.",
	},
	models.ApplicationStatusInterviewCompleted: {
		Title:   "Интервью пройдено",
		Message: "Интервью в %s по позиции %s завершено, ждем обратную связь.",
	},
	models.ApplicationStatusOfferReceived: {
		Title:   "Получен оффер!",
		Message: "Компания %s сделала вам предложение по позиции %s.",
	},
	models.ApplicationStatusOfferAccepted: {
		Title:   "Оффер принят",
		Message: "Поздравляем! Вы приняли предложение %s по позиции %s.",
	},
	models.ApplicationStatusRejected: {
		Title:   "Отказ по отклику",
		Message: "К сожалению, %s отклонила отклик на позицию %s.",
	},
	models.ApplicationStatusWithdrawn: {
		Title:   "Отклик отозван",
		Message: "Отклик в %s на позицию %s отозван.",
	},
}

func (s *notificationService) NotifyApplicationStatus(db *gorm.DB, user *models.User, app *models.Application) {
	copyEntry, ok := applicationCopy[app.Status]
	if !ok {
		logger.Warn("no notification copy for application status", "status", app.Status)
		return
	}

	message := fmt.Sprintf(copyEntry.Message, app.Company, app.Title)

	s.storeInApp(db, user.ID, EventApplicationUpdate, copyEntry.Title, message)

	s.sendEmail(EventApplicationUpdate, user.Email,
		copyEntry.Title,
		email.TemplateApplicationUpdate,
		email.TemplateData{
			"Title":    copyEntry.Title,
			"Message":  message,
			"Company":  app.Company,
			"Position": app.Title,
		})
}

// ---------------- Чтение in-app уведомлений ----------------

func (s *notificationService) GetUserNotifications(db *gorm.DB, userID string, unreadOnly bool, page, pageSize int) (*dto.NotificationListResponse, error) {
	notifications, total, err := s.notificationRepo.FindByUserID(db, userID, unreadOnly, page, pageSize)
	if err != nil {
		return nil, err
	}

	unread, err := s.notificationRepo.CountUnread(db, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		n := &notifications[i]
		responses = append(responses, &dto.NotificationResponse{
			ID:        n.ID,
			UserID:    n.UserID,
			Event:     n.Event,
			Title:     n.Title,
			Message:   n.Message,
			IsRead:    n.IsRead,
			ReadAt:    n.ReadAt,
			CreatedAt: n.CreatedAt,
		})
	}

	return &dto.NotificationListResponse{
		Notifications: responses,
		Total:         total,
		UnreadCount:   unread,
		Page:          page,
		PageSize:      pageSize,
		TotalPages:    calculateTotalPages(total, pageSize),
	}, nil
}

func (s *notificationService) MarkAsRead(db *gorm.DB, userID, notificationID string) error {
	return s.notificationRepo.MarkRead(db, notificationID, userID)
}

func (s *notificationService) MarkAllAsRead(db *gorm.DB, userID string) error {
	return s.notificationRepo.MarkAllRead(db, userID)
}

// ---------------- Helpers ----------------

func formatSlots(req *models.ConsultationRequest) string {
	slots, err := decodeSlots(req.Slots)
	if err != nil {
		return ""
	}
	return strings.Join(slots, ", ")
}

func calculateTotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		pages++
	}
	return pages
}
