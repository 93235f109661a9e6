package handlers

import (
	"hwreview_backend/internal/middleware"
	"hwreview_backend/internal/models"
	"hwreview_backend/internal/services"
	"hwreview_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type NewsletterHandler struct {
	*BaseHandler
	newsletterService services.NewsletterService
}

func NewNewsletterHandler(base *BaseHandler, newsletterService services.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{BaseHandler: base, newsletterService: newsletterService}
}

func (h *NewsletterHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/newsletter/subscribe", h.Subscribe)
	r.POST("/newsletter/unsubscribe", h.Unsubscribe)

	admin := r.Group("/admin/newsletter")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.UserRoleAdmin))
	{
		admin.GET("/subscribers", h.ListSubscribers)
	}
}

func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req dto.SubscribeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	subscription, err := h.newsletterService.Subscribe(h.GetDB(c), req.Email)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, subscription)
}

func (h *NewsletterHandler) Unsubscribe(c *gin.Context) {
	var req dto.UnsubscribeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.newsletterService.Unsubscribe(h.GetDB(c), req.Email); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "Unsubscribed"})
}

func (h *NewsletterHandler) ListSubscribers(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	subscribers, err := h.newsletterService.List(h.GetDB(c), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, subscribers)
}
