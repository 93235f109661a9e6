package services

import (
	"hwreview_backend/internal/email"
	"hwreview_backend/internal/storage"
)

// ServiceContainer holds every application service.
type ServiceContainer struct {
	AuthService         AuthService
	UserService         UserService
	TaxonomyService     TaxonomyService
	ProductService      ProductService
	ArticleService      ArticleService
	CommentService      CommentService
	ReviewService       ReviewService
	FavoriteService     FavoriteService
	AnalyticsService    AnalyticsService
	SettingsService     SettingsService
	NewsletterService   NewsletterService
	NotificationService NotificationService
	SearchService       SearchService

	// Mailer is exposed for endpoints that send ad-hoc mail directly.
	Mailer email.Mailer
}

// NewServiceContainer wires the services to their shared dependencies:
// the media storage backend and the outgoing mailer.
func NewServiceContainer(store storage.Storage, mailer email.Mailer) *ServiceContainer {
	settingsService := NewSettingsService(store)
	newsletterService := NewNewsletterService(settingsService, mailer)
	notificationService := NewNotificationService()

	return &ServiceContainer{
		AuthService:         NewAuthService(settingsService, mailer),
		UserService:         NewUserService(store),
		TaxonomyService:     NewTaxonomyService(),
		ProductService:      NewProductService(store),
		ArticleService:      NewArticleService(newsletterService, notificationService, store),
		CommentService:      NewCommentService(notificationService),
		ReviewService:       NewReviewService(),
		FavoriteService:     NewFavoriteService(),
		AnalyticsService:    NewAnalyticsService(),
		SettingsService:     settingsService,
		NewsletterService:   newsletterService,
		NotificationService: notificationService,
		SearchService:       NewSearchService(),
		Mailer:              mailer,
	}
}
