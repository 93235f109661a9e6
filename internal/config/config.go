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

	// Email is passed to the mailer explicitly; nothing else reads it.
	Email EmailConfig `yaml:"email"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	Storage struct {
		Type      string `yaml:"type"`       // local, s3, cloudflare_r2
		BasePath  string `yaml:"base_path"`  // for local storage
		BaseURL   string `yaml:"base_url"`   // public URL base, e.g. /media
		Bucket    string `yaml:"bucket"`     // for S3/R2
		Region    string `yaml:"region"`     // for S3
		AccessKey string `yaml:"access_key"` // for S3/R2
		SecretKey string `yaml:"secret_key"` // for S3/R2
		Endpoint  string `yaml:"endpoint"`   // for R2 or custom S3
		UseSSL    bool   `yaml:"use_ssl"`
	} `yaml:"storage"`

	Upload struct {
		MaxSize      int64    `yaml:"max_size"`      // bytes
		AllowedTypes []string `yaml:"allowed_types"` // MIME types
		ImageQuality int      `yaml:"image_quality"` // JPEG quality (1-100)
	} `yaml:"upload"`

	// Frontend is used to build links placed into outgoing mail.
	Frontend struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"frontend"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

// EmailConfig holds SMTP settings for the mailer.
type EmailConfig struct {
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUsername string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	FromEmail    string `yaml:"from_email"`
	FromName     string `yaml:"from_name"`
	UseTLS       bool   `yaml:"use_tls"`
}

var AppConfig *Config

// LoadConfig reads config/config.yaml, or builds the config from
// environment variables when DATABASE_URL is set (test mode).
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
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

		applyEnvOverrides(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = 60

	cfg.Email.SMTPHost = "smtp.test.local"
	cfg.Email.SMTPPort = 587
	cfg.Email.FromEmail = "noreply@hwreview.test"
	cfg.Email.FromName = "Hardware Review"

	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = "./media"
	cfg.Storage.BaseURL = "/media"

	cfg.Upload.MaxSize = 10 * 1024 * 1024 // 10MB
	cfg.Upload.AllowedTypes = []string{
		"image/jpeg", "image/png", "image/gif", "image/webp", "image/x-icon",
	}
	cfg.Upload.ImageQuality = 85

	cfg.Frontend.BaseURL = "http://localhost:3001"

	AppConfig = &cfg
}

// applyEnvOverrides lets deploy secrets win over the yaml file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		cfg.Email.SMTPPassword = v
	}
	if v := os.Getenv("FIRST_ADMIN_EMAIL"); v != "" {
		cfg.FirstAdminEmail = v
	}
	if v := os.Getenv("FIRST_ADMIN_PASSWORD"); v != "" {
		cfg.FirstAdminPassword = v
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
