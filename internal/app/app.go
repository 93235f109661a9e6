package app

import (
	"context"
	"errors"
	"fmt"

	"hwreview_backend/internal/auth"
	"hwreview_backend/internal/config"
	"hwreview_backend/internal/email"
	"hwreview_backend/internal/handlers"
	"hwreview_backend/internal/logger"
	"hwreview_backend/internal/models"
	"hwreview_backend/internal/routes"
	"hwreview_backend/internal/services"
	"hwreview_backend/internal/storage"
	"hwreview_backend/internal/validator"
	"hwreview_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := Migrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	router, sc := SetupApp(cfg, gormDB)

	worker := workers.NewAnalyticsWorker(gormDB, sc.AnalyticsService)
	worker.Start(context.Background())

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := router.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupApp wires storage, mailer, services, handlers and the router.
// Split from Run so integration tests can build the full stack against
// their own database handle.
func SetupApp(cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, *services.ServiceContainer) {
	store, err := storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
		UseSSL:    cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	var mailer email.Mailer
	if cfg.Email.SMTPHost == "" || cfg.Server.Env == "test" {
		logger.Warn("SMTP not configured, outgoing mail will be logged only")
		mailer = &email.LogMailer{}
	} else {
		mailer = email.NewSMTPMailer(cfg.Email)
	}

	sc := services.NewServiceContainer(store, mailer)
	appHandlers := handlers.NewAppHandlers(sc, validator.New())

	return routes.SetupRouter(gormDB, appHandlers), sc
}

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.PasswordResetCode{},
		&models.Category{},
		&models.Tag{},
		&models.Product{},
		&models.ProductSpecification{},
		&models.AffiliateLink{},
		&models.PriceHistory{},
		&models.Article{},
		&models.Comment{},
		&models.CommentVote{},
		&models.UserReview{},
		&models.Favorite{},
		&models.ViewEvent{},
		&models.ClickEvent{},
		&models.MonthlyAnalytics{},
		&models.SiteSetting{},
		&models.NewsletterSubscription{},
		&models.Notification{},
	)
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("First admin credentials not configured, skipping admin seeding")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		result := tx.Where("email = ?", adminEmail).First(&existing)
		if result.Error == nil {
			logger.Info("Admin user already exists, skipping creation", "email", adminEmail)
			return nil
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check for admin user: %w", result.Error)
		}

		logger.Warn("No admin user found, creating first admin", "email", adminEmail)

		hash, err := auth.HashPassword(adminPassword)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}

		now := tx.NowFunc()
		admin := &models.User{
			Email:         adminEmail,
			Username:      "admin",
			PasswordHash:  hash,
			Role:          models.UserRoleSuperAdmin,
			Status:        models.UserStatusActive,
			EmailVerified: &now,
		}
		if err := tx.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
		return nil
	})
}
