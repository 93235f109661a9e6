package handlers

import (
	"time"

	"hwreview_backend/internal/middleware"
	"hwreview_backend/internal/models"
	"hwreview_backend/internal/services"
	"hwreview_backend/internal/services/dto"
	"hwreview_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	*BaseHandler
	analyticsService services.AnalyticsService
}

func NewAnalyticsHandler(base *BaseHandler, analyticsService services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{BaseHandler: base, analyticsService: analyticsService}
}

func (h *AnalyticsHandler) RegisterRoutes(r *gin.RouterGroup) {
	track := r.Group("/track")
	track.Use(middleware.OptionalAuthMiddleware())
	{
		track.POST("/view", h.TrackView)
		track.POST("/click", h.TrackClick)
	}

	admin := r.Group("/admin/analytics")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.UserRoleAdmin))
	{
		admin.GET("/dashboard", h.Dashboard)
		admin.GET("/monthly", h.ListMonthly)
		admin.GET("/monthly/:year/:month", h.GetMonthly)
		admin.POST("/rollup", h.Rollup)
		admin.GET("/database", h.DatabaseStats)
	}
}

func (h *AnalyticsHandler) TrackView(c *gin.Context) {
	var req dto.TrackViewRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	err := h.analyticsService.TrackView(h.GetDB(c), req, h.OptionalUserID(c), c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "View recorded"})
}

func (h *AnalyticsHandler) TrackClick(c *gin.Context) {
	var req dto.TrackClickRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	link, err := h.analyticsService.TrackClick(h.GetDB(c), req, h.OptionalUserID(c), c.ClientIP())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"url": link.URL})
}

func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.analyticsService.Dashboard(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, dashboard)
}

func (h *AnalyticsHandler) ListMonthly(c *gin.Context) {
	limit := ParseQueryInt(c, "limit", 12)
	if limit <= 0 || limit > 120 {
		limit = 12
	}

	months, err := h.analyticsService.ListMonthly(h.GetDB(c), limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, months)
}

func (h *AnalyticsHandler) GetMonthly(c *gin.Context) {
	year, err := ParseParamInt(c, "year")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	month, err := ParseParamInt(c, "month")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	if month < 1 || month > 12 {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Month must be between 1 and 12"))
		return
	}

	stats, err := h.analyticsService.GetMonthly(h.GetDB(c), year, month)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, stats)
}

// Rollup recomputes aggregates for the requested month, defaulting to
// the current UTC month.
func (h *AnalyticsHandler) Rollup(c *gin.Context) {
	var query dto.MonthlyQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	now := time.Now().UTC()
	year, month := query.Year, query.Month
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}

	stats, err := h.analyticsService.RollupMonth(h.GetDB(c), year, month)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, stats)
}

func (h *AnalyticsHandler) DatabaseStats(c *gin.Context) {
	stats, err := h.analyticsService.DatabaseStats(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, stats)
}
