package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		UseTLS       bool   `yaml:"use_tls"`
		TemplatesDir string `yaml:"templates_dir"`
	} `yaml:"email"`

	JWT struct {
		Secret     string `yaml:"secret"`
		TTL        int    `yaml:"ttl"`         // минуты, access token
		RefreshTTL int    `yaml:"refresh_ttl"` // часы, refresh token
	} `yaml:"jwt"`

	Invite struct {
		// Срок жизни регистрационной ссылки после подтверждения оплаты (часы)
		RegistrationTTL int `yaml:"registration_ttl"`
		// Срок жизни ссылки при прямом приглашении админом (часы)
		DirectTTL int `yaml:"direct_ttl"`
		// База публичных ссылок, например https://app.careerbridge.io
		PublicBaseURL string `yaml:"public_base_url"`
	} `yaml:"invite"`

	Security struct {
		// Лимит публичных заявок на консультацию (запросов в минуту с одного IP)
		ConsultationRateLimit int `yaml:"consultation_rate_limit"`
	} `yaml:"security"`

	Admin struct {
		FirstAdminEmail    string `yaml:"first_admin_email"`
		FirstAdminPassword string `yaml:"first_admin_password"`
	} `yaml:"admin"`
}

var AppConfig *Config

func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")
	serverEnv := os.Getenv("SERVER_ENV")
	portStr := os.Getenv("SERVER_PORT")
	jwtSecret := os.Getenv("JWT_SECRET")

	if dbURL == "" {
		log.Println("Загрузка из config.yaml (режим НЕ-тест)")

		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	log.Println("✅ Загрузка конфигурации из ПЕРЕМЕННЫХ ОКРУЖЕНИЯ (режим теста)")

	cfg.Database.DSN = dbURL
	cfg.Server.Env = serverEnv
	cfg.Server.Port, _ = strconv.Atoi(portStr)
	cfg.JWT.Secret = jwtSecret
	cfg.JWT.TTL = 60
	cfg.JWT.RefreshTTL = 24 * 7

	cfg.Email.SMTPHost = "smtp.test.com"
	cfg.Email.SMTPPort = 587
	cfg.Email.FromEmail = "test@careerbridge.io"
	cfg.Email.TemplatesDir = "templates"

	cfg.Invite.PublicBaseURL = "http://localhost:3000"

	applyDefaults(&cfg)
	AppConfig = &cfg
}

// applyDefaults подставляет рабочие значения для необязательных полей
func applyDefaults(cfg *Config) {
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 60
	}
	if cfg.JWT.RefreshTTL == 0 {
		cfg.JWT.RefreshTTL = 24 * 7
	}
	if cfg.Invite.RegistrationTTL == 0 {
		cfg.Invite.RegistrationTTL = 24 * 7 // неделя на регистрацию после оплаты
	}
	if cfg.Invite.DirectTTL == 0 {
		cfg.Invite.DirectTTL = 24
	}
	if cfg.Security.ConsultationRateLimit == 0 {
		cfg.Security.ConsultationRateLimit = 5
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
