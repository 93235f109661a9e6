package handlers

import (
	"hwreview_backend/internal/middleware"
	"hwreview_backend/internal/models"
	"hwreview_backend/internal/services"
	"hwreview_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type TaxonomyHandler struct {
	*BaseHandler
	taxonomyService services.TaxonomyService
}

func NewTaxonomyHandler(base *BaseHandler, taxonomyService services.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{BaseHandler: base, taxonomyService: taxonomyService}
}

func (h *TaxonomyHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/categories", h.ListCategories)
	r.GET("/categories/:idOrSlug", h.GetCategory)
	r.GET("/tags", h.ListTags)
	r.GET("/tags/:tagId", h.GetTag)

	admin := r.Group("")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.UserRoleAdmin))
	{
		admin.POST("/categories", h.CreateCategory)
		admin.PUT("/categories/:idOrSlug", h.UpdateCategory)
		admin.DELETE("/categories/:idOrSlug", h.DeleteCategory)
		admin.POST("/tags", h.CreateTag)
		admin.PUT("/tags/:tagId", h.UpdateTag)
		admin.DELETE("/tags/:tagId", h.DeleteTag)
	}
}

func (h *TaxonomyHandler) ListCategories(c *gin.Context) {
	var query dto.CategoryListQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	categories, err := h.taxonomyService.ListCategories(h.GetDB(c), query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, categories)
}

func (h *TaxonomyHandler) GetCategory(c *gin.Context) {
	category, err := h.taxonomyService.GetCategory(h.GetDB(c), c.Param("idOrSlug"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, category)
}

func (h *TaxonomyHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	category, err := h.taxonomyService.CreateCategory(h.GetDB(c), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, category)
}

func (h *TaxonomyHandler) UpdateCategory(c *gin.Context) {
	var req dto.UpdateCategoryRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	category, err := h.taxonomyService.UpdateCategory(h.GetDB(c), c.Param("idOrSlug"), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, category)
}

func (h *TaxonomyHandler) DeleteCategory(c *gin.Context) {
	if err := h.taxonomyService.DeleteCategory(h.GetDB(c), c.Param("idOrSlug")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "Category deleted"})
}

func (h *TaxonomyHandler) ListTags(c *gin.Context) {
	var query dto.TagListQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	tags, err := h.taxonomyService.ListTags(h.GetDB(c), query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, tags)
}

func (h *TaxonomyHandler) GetTag(c *gin.Context) {
	tag, err := h.taxonomyService.GetTag(h.GetDB(c), c.Param("tagId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, tag)
}

func (h *TaxonomyHandler) CreateTag(c *gin.Context) {
	var req dto.CreateTagRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	tag, err := h.taxonomyService.CreateTag(h.GetDB(c), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, tag)
}

func (h *TaxonomyHandler) UpdateTag(c *gin.Context) {
	var req dto.UpdateTagRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	tag, err := h.taxonomyService.UpdateTag(h.GetDB(c), c.Param("tagId"), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, tag)
}

func (h *TaxonomyHandler) DeleteTag(c *gin.Context) {
	if err := h.taxonomyService.DeleteTag(h.GetDB(c), c.Param("tagId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "Tag deleted"})
}
