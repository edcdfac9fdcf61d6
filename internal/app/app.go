package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"careerbridge_backend/database"
	"careerbridge_backend/internal/config"
	"careerbridge_backend/internal/email"
	"careerbridge_backend/internal/handlers"
	"careerbridge_backend/internal/logger"
	"careerbridge_backend/internal/middleware"
	"careerbridge_backend/internal/repositories"
	"careerbridge_backend/internal/routes"
	"careerbridge_backend/internal/services"
	"careerbridge_backend/internal/validator"
	"careerbridge_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"careerbridge_backend/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)
	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		// Без админа сервис бесполезен - никто не сможет подтверждать заявки
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	cleanupWorker := workers.NewCleanupWorker(
		gormDB,
		repositories.NewRegistrationTokenRepository(),
		repositories.NewRefreshTokenRepository(),
	)
	cleanupWorker.Start(context.Background())

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	// 1. Инициализируем сервисы
	serviceContainer := initializeServices(cfg)

	// 2. Инициализируем хэндлеры
	appHandlers := initializeHandlers(cfg, serviceContainer)

	// 3. Инициализируем Gin
	ginRouter := initializeGinRouter(gormDB)

	// 4. Делегируем регистрацию маршрутов пакету 'routes'
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config) *services.ServiceContainer {
	emailService := initializeEmailProvider(cfg)

	// --- Инициализация репозиториев ---
	userRepo := repositories.NewUserRepository()
	refreshTokenRepo := repositories.NewRefreshTokenRepository()
	consultationRepo := repositories.NewConsultationRepository()
	registrationTokenRepo := repositories.NewRegistrationTokenRepository()
	onboardingRepo := repositories.NewOnboardingRepository()
	applicationRepo := repositories.NewApplicationRepository()
	notificationRepo := repositories.NewNotificationRepository()

	// --- Инициализация сервисов ---
	notificationService := services.NewNotificationService(notificationRepo, emailService, cfg.Admin.FirstAdminEmail)
	authService := services.NewAuthService(userRepo, refreshTokenRepo)
	userService := services.NewUserService(userRepo)
	consultationService := services.NewConsultationService(consultationRepo, userRepo, notificationService)
	invitationService := services.NewInvitationService(consultationRepo, registrationTokenRepo, userRepo, notificationService)
	registrationService := services.NewRegistrationService(registrationTokenRepo, userRepo, refreshTokenRepo, consultationRepo, notificationService)
	onboardingService := services.NewOnboardingService(onboardingRepo, userRepo, notificationService)
	applicationService := services.NewApplicationService(applicationRepo, userRepo, notificationService)

	return &services.ServiceContainer{
		AuthService:         authService,
		UserService:         userService,
		ConsultationService: consultationService,
		InvitationService:   invitationService,
		RegistrationService: registrationService,
		OnboardingService:   onboardingService,
		ApplicationService:  applicationService,
		NotificationService: notificationService,
		EmailService:        emailService,
	}
}

// initializeEmailProvider собирает SMTP-провайдер поверх шаблонов.
// Без настроенного SMTP хоста письма уходят в mock (локальная разработка).
func initializeEmailProvider(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("--- SMTP host is not configured. Using MOCK email provider. ---")
		return &MockEmailProvider{}
	}

	templateManager := email.NewTemplateManager()
	if err := email.RegisterDefaultTemplates(templateManager); err != nil {
		logger.Fatal("Failed to register default email templates", "error", err)
	}
	if cfg.Email.TemplatesDir != "" {
		// Файлы на диске перекрывают встроенные шаблоны
		if err := templateManager.LoadTemplates(cfg.Email.TemplatesDir); err != nil {
			logger.Warn("Failed to load email templates from dir, using defaults",
				"dir", cfg.Email.TemplatesDir, "error", err)
		}
	}

	smtpConfig := &email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
		UseTLS:    cfg.Email.UseTLS,
		Timeout:   30 * time.Second,
	}

	provider := email.NewSMTPProvider(smtpConfig, templateManager)
	if err := provider.Validate(); err != nil {
		logger.Fatal("Invalid SMTP configuration", "error", err)
	}
	return provider
}

func initializeHandlers(cfg *config.Config, serviceContainer *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()

	rateLimiter := middleware.RateLimitMiddleware(
		middleware.NewMemoryRateLimitStore(),
		cfg.Security.ConsultationRateLimit,
		time.Minute,
	)

	return handlers.NewAppHandlers(serviceContainer, customValidator, rateLimiter)
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.Admin.FirstAdminEmail
	adminPassword := cfg.Admin.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	var adminUser models.User
	result := tx.Where("email = ?", adminEmail).First(&adminUser)

	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		tx.Rollback()
		return nil
	}

	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found with specified email. Creating first admin...", "email", adminEmail)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Email:              adminEmail,
		FullName:           "Administrator",
		PasswordHash:       string(hashedPassword),
		Role:               models.UserRoleAdmin,
		Status:             models.UserStatusActive,
		OnboardingComplete: true,
	}

	if err := tx.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user in database: %w", err)
	}

	logger.Info("✅ Successfully created first admin user", "email", adminEmail)

	return tx.Commit().Error
}
