package handlers

import (
	"mime/multipart"
	"strings"

	"hwreview_backend/internal/middleware"
	"hwreview_backend/internal/models"
	"hwreview_backend/internal/services"
	"hwreview_backend/internal/services/dto"
	"hwreview_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	*BaseHandler
	settingsService services.SettingsService
}

func NewSettingsHandler(base *BaseHandler, settingsService services.SettingsService) *SettingsHandler {
	return &SettingsHandler{BaseHandler: base, settingsService: settingsService}
}

func (h *SettingsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/settings", h.GetPublic)

	admin := r.Group("/admin/settings")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.UserRoleAdmin))
	{
		admin.GET("", h.GetAll)
		admin.PUT("", h.BulkUpdate)
	}
}

func (h *SettingsHandler) GetPublic(c *gin.Context) {
	settings, err := h.settingsService.GetPublic(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, settings)
}

func (h *SettingsHandler) GetAll(c *gin.Context) {
	settings, err := h.settingsService.GetAll(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, settings)
}

// BulkUpdate accepts either a JSON body of key/value pairs or a
// multipart form where file-backed keys (logo, favicon) arrive as
// uploads alongside text fields.
func (h *SettingsHandler) BulkUpdate(c *gin.Context) {
	values := map[string]string{}
	files := map[string]*multipart.FileHeader{}

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		form, err := c.MultipartForm()
		if err != nil {
			apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid multipart form: "+err.Error()))
			return
		}
		for key, vals := range form.Value {
			if len(vals) > 0 {
				values[key] = vals[0]
			}
		}
		for key, headers := range form.File {
			if len(headers) > 0 {
				files[key] = headers[0]
			}
		}
	} else {
		var req dto.BulkUpdateSettingsRequest
		if !h.BindAndValidateJSON(c, &req) {
			return
		}
		values = req.Settings
	}

	settings, err := h.settingsService.BulkUpdate(h.GetDB(c), values, files)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, settings)
}
