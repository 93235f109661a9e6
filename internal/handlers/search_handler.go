package handlers

import (
	"hwreview_backend/internal/services"
	"hwreview_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	*BaseHandler
	searchService services.SearchService
}

func NewSearchHandler(base *BaseHandler, searchService services.SearchService) *SearchHandler {
	return &SearchHandler{BaseHandler: base, searchService: searchService}
}

func (h *SearchHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/search", h.Search)
}

func (h *SearchHandler) Search(c *gin.Context) {
	var query dto.SearchQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	results, err := h.searchService.Search(h.GetDB(c), query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, results)
}
