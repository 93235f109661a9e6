package handlers

import (
	"hwreview_backend/internal/services"
	"hwreview_backend/internal/validator"
)

// AppHandlers holds every HTTP handler group.
type AppHandlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Taxonomy     *TaxonomyHandler
	Product      *ProductHandler
	Article      *ArticleHandler
	Comment      *CommentHandler
	Review       *ReviewHandler
	Favorite     *FavoriteHandler
	Analytics    *AnalyticsHandler
	Settings     *SettingsHandler
	Newsletter   *NewsletterHandler
	Notification *NotificationHandler
	Search       *SearchHandler
	Email        *EmailHandler
}

func NewAppHandlers(sc *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		Auth:         NewAuthHandler(base, sc.AuthService),
		User:         NewUserHandler(base, sc.UserService, sc.FavoriteService),
		Taxonomy:     NewTaxonomyHandler(base, sc.TaxonomyService),
		Product:      NewProductHandler(base, sc.ProductService, sc.ReviewService),
		Article:      NewArticleHandler(base, sc.ArticleService, sc.CommentService),
		Comment:      NewCommentHandler(base, sc.CommentService),
		Review:       NewReviewHandler(base, sc.ReviewService),
		Favorite:     NewFavoriteHandler(base, sc.FavoriteService),
		Analytics:    NewAnalyticsHandler(base, sc.AnalyticsService),
		Settings:     NewSettingsHandler(base, sc.SettingsService),
		Newsletter:   NewNewsletterHandler(base, sc.NewsletterService),
		Notification: NewNotificationHandler(base, sc.NotificationService),
		Search:       NewSearchHandler(base, sc.SearchService),
		Email:        NewEmailHandler(base, sc.Mailer, sc.SettingsService),
	}
}
