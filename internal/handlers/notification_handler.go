package handlers

import (
	"hwreview_backend/internal/middleware"
	"hwreview_backend/internal/services"
	"hwreview_backend/internal/webutil"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	*BaseHandler
	notificationService services.NotificationService
}

func NewNotificationHandler(base *BaseHandler, notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{BaseHandler: base, notificationService: notificationService}
}

func (h *NotificationHandler) RegisterRoutes(r *gin.RouterGroup) {
	authed := r.Group("/notifications")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.GET("", h.List)
		authed.PUT("/:notificationId/read", h.MarkRead)
		authed.PUT("/read-all", h.MarkAllRead)
	}
}

func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	unreadOnly := webutil.ParseBool(c.Query("unread"))
	page, pageSize := ParsePagination(c)

	notifications, err := h.notificationService.ListOwn(h.GetDB(c), userID, unreadOnly, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, notifications)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(h.GetDB(c), userID, c.Param("notificationId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "Notification marked read"})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkAllRead(h.GetDB(c), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "All notifications marked read"})
}
