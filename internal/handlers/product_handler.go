package handlers

import (
	"strconv"
	"strings"

	"hwreview_backend/internal/middleware"
	"hwreview_backend/internal/models"
	"hwreview_backend/internal/services"
	"hwreview_backend/internal/services/dto"
	"hwreview_backend/internal/webutil"
	"hwreview_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	*BaseHandler
	productService services.ProductService
	reviewService  services.ReviewService
}

func NewProductHandler(base *BaseHandler, productService services.ProductService, reviewService services.ReviewService) *ProductHandler {
	return &ProductHandler{BaseHandler: base, productService: productService, reviewService: reviewService}
}

func (h *ProductHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/products", h.List)
	r.GET("/products/:idOrSlug", h.Get)
	r.GET("/products/:idOrSlug/reviews", h.ListReviews)
	r.GET("/products/:idOrSlug/price-history", h.PriceHistory)

	editors := r.Group("/products")
	editors.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.UserRoleEditor))
	{
		editors.POST("", h.Create)
		editors.PUT("/:idOrSlug", h.Update)
	}

	admin := r.Group("/products")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.UserRoleAdmin))
	{
		admin.DELETE("/:idOrSlug", h.Delete)
		admin.POST("/:idOrSlug/prices", h.RecordPrice)
	}
}

func (h *ProductHandler) List(c *gin.Context) {
	var query dto.ProductListQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	page, pageSize := ParsePagination(c)
	products, err := h.productService.List(h.GetDB(c), query, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, products)
}

func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.productService.Get(h.GetDB(c), c.Param("idOrSlug"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, product)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest

	if isMultipart(c) {
		parsed, ok := h.bindMultipartCreate(c)
		if !ok {
			return
		}
		req = *parsed
	} else if !h.BindAndValidateJSON(c, &req) {
		return
	}

	product, err := h.productService.Create(h.GetDB(c), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	var req dto.UpdateProductRequest

	if isMultipart(c) {
		parsed, ok := h.bindMultipartUpdate(c)
		if !ok {
			return
		}
		req = *parsed
	} else if !h.BindAndValidateJSON(c, &req) {
		return
	}

	product, err := h.productService.Update(h.GetDB(c), c.Param("idOrSlug"), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.productService.Delete(h.GetDB(c), c.Param("idOrSlug")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "Product deleted"})
}

func (h *ProductHandler) RecordPrice(c *gin.Context) {
	var req dto.RecordPriceRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.productService.RecordPrice(h.GetDB(c), c.Param("idOrSlug"), req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, gin.H{"message": "Price recorded"})
}

func (h *ProductHandler) PriceHistory(c *gin.Context) {
	history, err := h.productService.PriceHistory(h.GetDB(c), c.Param("idOrSlug"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, history)
}

func (h *ProductHandler) ListReviews(c *gin.Context) {
	page, pageSize := ParsePagination(c)
	reviews, err := h.reviewService.ListForProduct(h.GetDB(c), c.Param("idOrSlug"), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, reviews)
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// bindMultipartCreate reads the admin form: scalar fields plus the
// bracket-indexed specs[i][...] and affiliate_links[i][...] groups.
func (h *ProductHandler) bindMultipartCreate(c *gin.Context) (*dto.CreateProductRequest, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Invalid multipart form: "+err.Error()))
		return nil, false
	}

	req := &dto.CreateProductRequest{
		Brand:      c.PostForm("brand"),
		Model:      c.PostForm("model"),
		CategoryID: c.PostForm("category_id"),
		Currency:   c.PostForm("currency"),
	}
	if v := c.PostForm("release_year"); v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			req.ReleaseYear = &year
		}
	}
	if v := c.PostForm("price"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			req.Price = &price
		}
	}
	if v := c.PostForm("is_active"); v != "" {
		active := webutil.ParseBool(v)
		req.IsActive = &active
	}
	req.Image = c.PostForm("image")
	if file, err := c.FormFile("image_file"); err == nil {
		req.ImageFile = file
	}
	req.Specifications = h.productService.SpecsFromForm(form.Value)
	req.AffiliateLinks = h.productService.LinksFromForm(form.Value)

	if !h.validate(c, req) {
		return nil, false
	}
	return req, true
}

func (h *ProductHandler) bindMultipartUpdate(c *gin.Context) (*dto.UpdateProductRequest, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Invalid multipart form: "+err.Error()))
		return nil, false
	}

	req := &dto.UpdateProductRequest{}
	if v, ok := c.GetPostForm("brand"); ok {
		req.Brand = &v
	}
	if v, ok := c.GetPostForm("model"); ok {
		req.Model = &v
	}
	if v, ok := c.GetPostForm("category_id"); ok {
		req.CategoryID = &v
	}
	if v, ok := c.GetPostForm("currency"); ok {
		req.Currency = &v
	}
	if v, ok := c.GetPostForm("release_year"); ok && v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			req.ReleaseYear = &year
		}
	}
	if v, ok := c.GetPostForm("price"); ok && v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			req.Price = &price
		}
	}
	if v, ok := c.GetPostForm("is_active"); ok {
		active := webutil.ParseBool(v)
		req.IsActive = &active
	}
	if v, ok := c.GetPostForm("image"); ok {
		req.Image = &v
	}
	if file, err := c.FormFile("image_file"); err == nil {
		req.ImageFile = file
	}

	// Spec and link groups are replaced only when the form carries them.
	// A bare "specs" or "affiliate_links" field with no indexed rows is
	// the form client's way of clearing the whole group.
	if specs := h.productService.SpecsFromForm(form.Value); len(specs) > 0 {
		req.Specifications = specs
	} else if _, present := form.Value["specs"]; present {
		req.Specifications = []dto.SpecificationInput{}
	}
	if links := h.productService.LinksFromForm(form.Value); len(links) > 0 {
		req.AffiliateLinks = links
	} else if _, present := form.Value["affiliate_links"]; present {
		req.AffiliateLinks = []dto.AffiliateLinkInput{}
	}

	if !h.validate(c, req) {
		return nil, false
	}
	return req, true
}
