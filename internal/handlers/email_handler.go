package handlers

import (
	"hwreview_backend/internal/email"
	"hwreview_backend/internal/middleware"
	"hwreview_backend/internal/models"
	"hwreview_backend/internal/services"
	"hwreview_backend/internal/services/dto"
	"hwreview_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// EmailHandler exposes the admin SMTP check. It talks to the mailer
// directly; there is no service layer behind a single test send.
type EmailHandler struct {
	*BaseHandler
	mailer          email.Mailer
	settingsService services.SettingsService
}

func NewEmailHandler(base *BaseHandler, mailer email.Mailer, settingsService services.SettingsService) *EmailHandler {
	return &EmailHandler{BaseHandler: base, mailer: mailer, settingsService: settingsService}
}

func (h *EmailHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin/email")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.UserRoleAdmin))
	{
		admin.POST("/test", h.SendTest)
	}
}

func (h *EmailHandler) SendTest(c *gin.Context) {
	var req dto.TestEmailRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	siteName := h.settingsService.SiteName(h.GetDB(c))
	subject, html, text := email.TestEmail(siteName, req.Subject, req.Message)
	if err := h.mailer.Send(req.To, subject, html, text); err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	h.OK(c, gin.H{"message": "Test email sent"})
}
