package handlers

import (
	"hwreview_backend/internal/middleware"
	"hwreview_backend/internal/models"
	"hwreview_backend/internal/services"
	"hwreview_backend/internal/services/dto"
	"hwreview_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService     services.UserService
	favoriteService services.FavoriteService
}

func NewUserHandler(base *BaseHandler, userService services.UserService, favoriteService services.FavoriteService) *UserHandler {
	return &UserHandler{BaseHandler: base, userService: userService, favoriteService: favoriteService}
}

func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/users/:username/profile", h.GetPublicProfile)

	me := r.Group("/users/me")
	me.Use(middleware.AuthMiddleware())
	{
		me.GET("", h.GetMe)
		me.PUT("", h.UpdateProfile)
		me.POST("/avatar", h.UploadAvatar)
		me.PUT("/settings", h.UpdateSettings)
		me.GET("/stats", h.GetStats)
		me.GET("/favorites", h.ListFavorites)
	}

	admin := r.Group("/admin/users")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.UserRoleAdmin))
	{
		admin.GET("", h.AdminList)
		admin.GET("/:userId", h.AdminGet)
		admin.PUT("/:userId", h.AdminUpdate)
		admin.DELETE("/:userId", h.AdminDelete)
	}
}

func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, user)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(h.GetDB(c), userID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, user)
}

func (h *UserHandler) UploadAvatar(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("avatar file is required"))
		return
	}

	user, err := h.userService.UpdateAvatar(h.GetDB(c), userID, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, user)
}

func (h *UserHandler) UpdateSettings(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserSettingsRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateSettings(h.GetDB(c), userID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, user)
}

func (h *UserHandler) GetStats(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	stats, err := h.userService.GetStats(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, stats)
}

func (h *UserHandler) ListFavorites(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)
	favorites, err := h.favoriteService.List(h.GetDB(c), userID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, favorites)
}

func (h *UserHandler) GetPublicProfile(c *gin.Context) {
	profile, err := h.userService.GetPublicProfile(h.GetDB(c), c.Param("username"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, profile)
}

func (h *UserHandler) AdminList(c *gin.Context) {
	var query dto.UserListQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	page, pageSize := ParsePagination(c)
	users, err := h.userService.List(h.GetDB(c), query, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, users)
}

func (h *UserHandler) AdminGet(c *gin.Context) {
	user, err := h.userService.GetByID(h.GetDB(c), c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, user)
}

func (h *UserHandler) AdminUpdate(c *gin.Context) {
	var req dto.AdminUpdateUserRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.userService.AdminUpdate(h.GetDB(c), middleware.ContextRole(c), c.Param("userId"), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, user)
}

func (h *UserHandler) AdminDelete(c *gin.Context) {
	actorID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.userService.AdminDelete(h.GetDB(c), actorID, middleware.ContextRole(c), c.Param("userId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "User deleted"})
}
