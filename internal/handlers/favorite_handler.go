package handlers

import (
	"hwreview_backend/internal/middleware"
	"hwreview_backend/internal/services"
	"hwreview_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type FavoriteHandler struct {
	*BaseHandler
	favoriteService services.FavoriteService
}

func NewFavoriteHandler(base *BaseHandler, favoriteService services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{BaseHandler: base, favoriteService: favoriteService}
}

func (h *FavoriteHandler) RegisterRoutes(r *gin.RouterGroup) {
	favorites := r.Group("/favorites")
	favorites.Use(middleware.AuthMiddleware())
	{
		favorites.POST("", h.Add)
		favorites.DELETE("/:productId", h.Remove)
	}
}

func (h *FavoriteHandler) Add(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.FavoriteRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.favoriteService.Add(h.GetDB(c), userID, req.ProductID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, gin.H{"message": "Product added to favorites"})
}

func (h *FavoriteHandler) Remove(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.favoriteService.Remove(h.GetDB(c), userID, c.Param("productId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "Product removed from favorites"})
}
