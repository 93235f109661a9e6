package handlers

import (
	"hwreview_backend/internal/middleware"
	"hwreview_backend/internal/models"
	"hwreview_backend/internal/services"
	"hwreview_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	*BaseHandler
	commentService services.CommentService
}

func NewCommentHandler(base *BaseHandler, commentService services.CommentService) *CommentHandler {
	return &CommentHandler{BaseHandler: base, commentService: commentService}
}

func (h *CommentHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Creating a comment and voting are open to guests; the optional
	// token upgrades the acting identity from IP to account.
	open := r.Group("/comments")
	open.Use(middleware.OptionalAuthMiddleware())
	{
		open.POST("", h.Create)
		open.POST("/:commentId/helpful", h.ToggleHelpful)
	}

	authed := r.Group("/comments")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.PUT("/:commentId", h.Update)
		authed.DELETE("/:commentId", h.Delete)
	}

	admin := r.Group("/admin/comments")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.UserRoleAdmin))
	{
		admin.GET("", h.ListForModeration)
		admin.PUT("/:commentId/moderate", h.Moderate)
	}
}

func (h *CommentHandler) Create(c *gin.Context) {
	var req dto.CreateCommentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	actor := services.CommentActor{
		UserID:      h.OptionalUserID(c),
		AuthorName:  req.AuthorName,
		AuthorEmail: req.AuthorEmail,
		IP:          c.ClientIP(),
	}
	comment, err := h.commentService.Create(h.GetDB(c), actor, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, comment)
}

func (h *CommentHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCommentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	comment, err := h.commentService.Update(h.GetDB(c), userID, middleware.ContextRole(c), c.Param("commentId"), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, comment)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.commentService.Delete(h.GetDB(c), userID, middleware.ContextRole(c), c.Param("commentId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "Comment deleted"})
}

func (h *CommentHandler) ToggleHelpful(c *gin.Context) {
	result, err := h.commentService.ToggleHelpful(h.GetDB(c), h.OptionalUserID(c), c.ClientIP(), c.Param("commentId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, result)
}

func (h *CommentHandler) ListForModeration(c *gin.Context) {
	var query dto.CommentListQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}
	page, pageSize := ParsePagination(c)

	comments, err := h.commentService.ListForModeration(h.GetDB(c), query, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, comments)
}

func (h *CommentHandler) Moderate(c *gin.Context) {
	var req dto.ModerateCommentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	comment, err := h.commentService.Moderate(h.GetDB(c), c.Param("commentId"), req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, comment)
}
