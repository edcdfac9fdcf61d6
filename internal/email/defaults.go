package email

// Имена шаблонов писем жизненного цикла.
// Каждый ключ соответствует событию диспетчера уведомлений.
const (
	TemplateConsultationReceived    = "consultation_received"
	TemplateConsultationNew         = "consultation_new_admin"
	TemplateConsultationConfirmed   = "consultation_confirmed"
	TemplateConsultationRejected    = "consultation_rejected"
	TemplateConsultationRescheduled = "consultation_rescheduled"
	TemplateInvitation              = "invitation"
	TemplateWelcome                 = "welcome"
	TemplateOnboardingReceived      = "onboarding_received"
	TemplateOnboardingApproved      = "onboarding_approved"
	TemplateOnboardingPaused        = "onboarding_paused"
	TemplateOnboardingRejected      = "onboarding_rejected"
	TemplateApplicationUpdate       = "application_update"
	TemplateAdminInvite             = "admin_invite"
)

// defaultTemplates - встроенные шаблоны по умолчанию.
// Файлы из Email.TemplatesDir перекрывают их при старте.
var defaultTemplates = map[string]string{
	TemplateConsultationReceived: `<html><body>
<h2>Здравствуйте, {{.Name}}!</h2>
<p>Мы получили вашу заявку на консультацию и свяжемся с вами в ближайшее время.</p>
<p>Предложенные вами слоты: {{.Slots}}</p>
</body></html>`,

	TemplateConsultationNew: `<html><body>
<h2>Новая заявка на консультацию</h2>
<p>От: {{.Name}} ({{.Email}})</p>
<p>Слоты: {{.Slots}}</p>
</body></html>`,

	TemplateConsultationConfirmed: `<html><body>
<h2>Консультация подтверждена</h2>
<p>Здравствуйте, {{.Name}}! Ваша консультация назначена на <b>{{.ScheduledAt}}</b>.</p>
<p>Ссылка на встречу: <a href="{{.MeetingLink}}">{{.MeetingLink}}</a></p>
</body></html>`,

	TemplateConsultationRejected: `<html><body>
<h2>Заявка отклонена</h2>
<p>Здравствуйте, {{.Name}}. К сожалению, мы не сможем провести консультацию.</p>
<p>Причина: {{.Reason}}</p>
</body></html>`,

	TemplateConsultationRescheduled: `<html><body>
<h2>Нужны новые слоты</h2>
<p>Здравствуйте, {{.Name}}. Предложенное время не подошло: {{.Reason}}</p>
<p>Пожалуйста, отправьте заявку еще раз с новыми слотами.</p>
</body></html>`,

	TemplateInvitation: `<html><body>
<h2>Оплата получена — завершите регистрацию</h2>
<p>Здравствуйте, {{.Name}}! Мы подтвердили вашу оплату.</p>
<p>Завершите регистрацию по ссылке: <a href="{{.RegistrationLink}}">{{.RegistrationLink}}</a></p>
<p>Ссылка действует до {{.ExpiresAt}} и может быть использована только один раз.</p>
</body></html>`,

	TemplateWelcome: `<html><body>
<h2>Добро пожаловать, {{.Name}}!</h2>
<p>Ваш аккаунт создан. Следующий шаг — заполнить онбординг-анкету в личном кабинете.</p>
</body></html>`,

	TemplateOnboardingReceived: `<html><body>
<h2>Анкета получена</h2>
<p>Здравствуйте, {{.Name}}! Ваша онбординг-анкета на рассмотрении у куратора.</p>
</body></html>`,

	TemplateOnboardingApproved: `<html><body>
<h2>Профиль разблокирован</h2>
<p>Поздравляем, {{.Name}}! Ваша анкета одобрена, все функции кабинета доступны.</p>
</body></html>`,

	TemplateOnboardingPaused: `<html><body>
<h2>Работа по анкете приостановлена</h2>
<p>Здравствуйте, {{.Name}}. Работа по вашей анкете приостановлена: {{.Reason}}</p>
</body></html>`,

	TemplateOnboardingRejected: `<html><body>
<h2>Анкета требует доработки</h2>
<p>Здравствуйте, {{.Name}}. Анкета не принята: {{.Reason}}</p>
</body></html>`,

	TemplateApplicationUpdate: `<html><body>
<h2>{{.Title}}</h2>
<p>{{.Message}}</p>
<p>Компания: {{.Company}}, позиция: {{.Position}}</p>
</body></html>`,

	TemplateAdminInvite: `<html><body>
<h2>Вас пригласили в CareerBridge</h2>
<p>Здравствуйте, {{.Name}}! Для вас создан аккаунт.</p>
<p>Завершите регистрацию: <a href="{{.RegistrationLink}}">{{.RegistrationLink}}</a></p>
<p>Ссылка действует до {{.ExpiresAt}}.</p>
</body></html>`,
}

// RegisterDefaultTemplates загружает встроенные шаблоны в менеджер
func RegisterDefaultTemplates(tm *TemplateManager) error {
	for name, body := range defaultTemplates {
		if err := tm.AddTemplate(name, body); err != nil {
			return err
		}
	}
	return nil
}
