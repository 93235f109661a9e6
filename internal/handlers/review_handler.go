package handlers

import (
	"hwreview_backend/internal/middleware"
	"hwreview_backend/internal/models"
	"hwreview_backend/internal/services"
	"hwreview_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	*BaseHandler
	reviewService services.ReviewService
}

func NewReviewHandler(base *BaseHandler, reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{BaseHandler: base, reviewService: reviewService}
}

func (h *ReviewHandler) RegisterRoutes(r *gin.RouterGroup) {
	authed := r.Group("/reviews")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.POST("", h.Create)
		authed.DELETE("/:reviewId", h.Delete)
	}

	admin := r.Group("/admin/reviews")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.UserRoleAdmin))
	{
		admin.GET("", h.ListForModeration)
		admin.PUT("/:reviewId/moderate", h.Moderate)
	}
}

func (h *ReviewHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	review, err := h.reviewService.Create(h.GetDB(c), userID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, review)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.reviewService.Delete(h.GetDB(c), userID, middleware.ContextRole(c), c.Param("reviewId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "Review deleted"})
}

func (h *ReviewHandler) ListForModeration(c *gin.Context) {
	var query dto.ReviewListQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}
	page, pageSize := ParsePagination(c)

	reviews, err := h.reviewService.ListForModeration(h.GetDB(c), query, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, reviews)
}

func (h *ReviewHandler) Moderate(c *gin.Context) {
	var req dto.ModerateReviewRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	review, err := h.reviewService.Moderate(h.GetDB(c), c.Param("reviewId"), req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, review)
}
