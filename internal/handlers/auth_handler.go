package handlers

import (
	"hwreview_backend/internal/middleware"
	"hwreview_backend/internal/services"
	"hwreview_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{BaseHandler: base, authService: authService}
}

func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/verify-email", h.VerifyEmail)
		auth.POST("/resend-verification", h.ResendVerification)
		auth.POST("/password-reset", h.RequestPasswordReset)
		auth.POST("/password-reset/confirm", h.ConfirmPasswordReset)
	}

	protected := r.Group("/auth")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/change-password", h.ChangePassword)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.authService.Register(h.GetDB(c), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(h.GetDB(c), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, resp)
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.authService.VerifyEmail(h.GetDB(c), req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "Email verified"})
}

func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req dto.ResendVerificationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.authService.ResendVerification(h.GetDB(c), req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "If the address is registered, a verification email has been sent"})
}

func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req dto.PasswordResetRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.authService.RequestPasswordReset(h.GetDB(c), req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "If the address is registered, a reset code has been sent"})
}

func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var req dto.PasswordResetConfirm
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.authService.ConfirmPasswordReset(h.GetDB(c), req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "Password updated"})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.authService.ChangePassword(h.GetDB(c), userID, req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "Password updated"})
}
