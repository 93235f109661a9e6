package routes

import (
	"hwreview_backend/internal/config"
	"hwreview_backend/internal/handlers"
	"hwreview_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter builds the gin engine with the shared middleware chain
// and mounts every handler group under /api/v1.
func SetupRouter(db *gorm.DB, h *handlers.AppHandlers) *gin.Engine {
	cfg := config.GetConfig()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.DBMiddleware(db))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Locally stored media is served straight from disk. R2 serves
	// from its own public URL, so nothing is mounted in that case.
	if cfg.Storage.Type == "local" || cfg.Storage.Type == "" {
		r.Static(cfg.Storage.BaseURL, cfg.Storage.BasePath)
	}

	api := r.Group("/api/v1")
	{
		h.Auth.RegisterRoutes(api)
		h.User.RegisterRoutes(api)
		h.Taxonomy.RegisterRoutes(api)
		h.Product.RegisterRoutes(api)
		h.Article.RegisterRoutes(api)
		h.Comment.RegisterRoutes(api)
		h.Review.RegisterRoutes(api)
		h.Favorite.RegisterRoutes(api)
		h.Analytics.RegisterRoutes(api)
		h.Settings.RegisterRoutes(api)
		h.Newsletter.RegisterRoutes(api)
		h.Notification.RegisterRoutes(api)
		h.Search.RegisterRoutes(api)
		h.Email.RegisterRoutes(api)
	}

	return r
}
