package handlers

import (
	"encoding/json"
	"mime/multipart"
	"regexp"
	"strconv"

	"hwreview_backend/internal/middleware"
	"hwreview_backend/internal/models"
	"hwreview_backend/internal/services"
	"hwreview_backend/internal/services/dto"
	"hwreview_backend/internal/webutil"
	"hwreview_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ArticleHandler struct {
	*BaseHandler
	articleService services.ArticleService
	commentService services.CommentService
}

func NewArticleHandler(base *BaseHandler, articleService services.ArticleService, commentService services.CommentService) *ArticleHandler {
	return &ArticleHandler{BaseHandler: base, articleService: articleService, commentService: commentService}
}

func (h *ArticleHandler) RegisterRoutes(r *gin.RouterGroup) {
	public := r.Group("/articles")
	public.Use(middleware.OptionalAuthMiddleware())
	{
		public.GET("", h.List)
		public.GET("/:idOrSlug", h.Get)
		public.GET("/:idOrSlug/comments", h.ListComments)
	}

	editors := r.Group("/articles")
	editors.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.UserRoleEditor))
	{
		editors.POST("", h.Create)
		editors.PUT("/:idOrSlug", h.Update)
		editors.DELETE("/:idOrSlug", h.Delete)
		editors.POST("/:idOrSlug/publish", h.Publish)
		editors.POST("/:idOrSlug/archive", h.Archive)
	}
}

func (h *ArticleHandler) List(c *gin.Context) {
	var query dto.ArticleListQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	// Visitors only see published articles; staff may filter by status.
	if !middleware.ContextRole(c).AtLeast(models.UserRoleEditor) {
		query.Status = string(models.ArticleStatusPublished)
	}

	page, pageSize := ParsePagination(c)
	articles, err := h.articleService.List(h.GetDB(c), query, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, articles)
}

func (h *ArticleHandler) Get(c *gin.Context) {
	db := h.GetDB(c)

	var article *models.Article
	var err error
	if middleware.ContextRole(c).AtLeast(models.UserRoleEditor) {
		article, err = h.articleService.Get(db, c.Param("idOrSlug"))
	} else {
		article, err = h.articleService.GetPublished(db, c.Param("idOrSlug"))
	}
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if article.IsPublished() {
		_ = h.articleService.RecordView(db, article.ID)
	}
	h.OK(c, article)
}

func (h *ArticleHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateArticleRequest
	if isMultipart(c) {
		parsed, ok := h.bindMultipartCreate(c)
		if !ok {
			return
		}
		req = *parsed
	} else if !h.BindAndValidateJSON(c, &req) {
		return
	}

	article, err := h.articleService.Create(h.GetDB(c), userID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, article)
}

func (h *ArticleHandler) Update(c *gin.Context) {
	var req dto.UpdateArticleRequest
	if isMultipart(c) {
		parsed, ok := h.bindMultipartUpdate(c)
		if !ok {
			return
		}
		req = *parsed
	} else if !h.BindAndValidateJSON(c, &req) {
		return
	}

	article, err := h.articleService.Update(h.GetDB(c), c.Param("idOrSlug"), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, article)
}

func (h *ArticleHandler) Delete(c *gin.Context) {
	if err := h.articleService.Delete(h.GetDB(c), c.Param("idOrSlug")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "Article deleted"})
}

func (h *ArticleHandler) Publish(c *gin.Context) {
	article, err := h.articleService.Publish(h.GetDB(c), c.Param("idOrSlug"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, article)
}

func (h *ArticleHandler) Archive(c *gin.Context) {
	article, err := h.articleService.Archive(h.GetDB(c), c.Param("idOrSlug"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, article)
}

func (h *ArticleHandler) ListComments(c *gin.Context) {
	db := h.GetDB(c)

	article, err := h.articleService.GetPublished(db, c.Param("idOrSlug"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	page, pageSize := ParsePagination(c)
	comments, err := h.commentService.ListForArticle(db, article.ID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, comments)
}

var bestListItemImageKey = regexp.MustCompile(`^best_list_item_(\d+)_image_file$`)

// itemImagesFromForm collects best_list_item_{i}_image_file uploads,
// keyed by the best-list item index they belong to.
func itemImagesFromForm(form *multipart.Form) map[int]*multipart.FileHeader {
	var images map[int]*multipart.FileHeader
	for key, files := range form.File {
		m := bestListItemImageKey.FindStringSubmatch(key)
		if m == nil || len(files) == 0 {
			continue
		}
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if images == nil {
			images = make(map[int]*multipart.FileHeader)
		}
		images[idx] = files[0]
	}
	return images
}

func (h *ArticleHandler) parseExtensionField(c *gin.Context, raw string) (*models.ArticleExtension, bool) {
	var ext models.ArticleExtension
	if err := json.Unmarshal([]byte(raw), &ext); err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Invalid extension JSON: "+err.Error()))
		return nil, false
	}
	return &ext, true
}

// bindMultipartCreate reads the admin form: scalar fields, a JSON-encoded
// extension field, and the featured/og/per-item image uploads.
func (h *ArticleHandler) bindMultipartCreate(c *gin.Context) (*dto.CreateArticleRequest, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Invalid multipart form: "+err.Error()))
		return nil, false
	}

	req := &dto.CreateArticleRequest{
		Title:         c.PostForm("title"),
		Type:          models.ArticleType(c.PostForm("type")),
		CategoryID:    c.PostForm("category_id"),
		Summary:       c.PostForm("summary"),
		Content:       c.PostForm("content"),
		FeaturedImage: c.PostForm("featured_image"),
		OgImage:       c.PostForm("og_image"),
	}
	req.Tags = webutil.ParseTags(form.Value["tags"])
	req.ProductIDs = webutil.ParseTags(form.Value["product_ids"])
	if raw := c.PostForm("extension"); raw != "" {
		ext, ok := h.parseExtensionField(c, raw)
		if !ok {
			return nil, false
		}
		req.Extension = ext
	}
	if file, err := c.FormFile("featured_image_file"); err == nil {
		req.FeaturedImageFile = file
	}
	if file, err := c.FormFile("og_image_file"); err == nil {
		req.OgImageFile = file
	}
	req.ItemImages = itemImagesFromForm(form)

	if !h.validate(c, req) {
		return nil, false
	}
	return req, true
}

func (h *ArticleHandler) bindMultipartUpdate(c *gin.Context) (*dto.UpdateArticleRequest, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Invalid multipart form: "+err.Error()))
		return nil, false
	}

	req := &dto.UpdateArticleRequest{}
	if v, ok := c.GetPostForm("title"); ok {
		req.Title = &v
	}
	if v, ok := c.GetPostForm("category_id"); ok {
		req.CategoryID = &v
	}
	if v, ok := c.GetPostForm("summary"); ok {
		req.Summary = &v
	}
	if v, ok := c.GetPostForm("content"); ok {
		req.Content = &v
	}
	if v, ok := c.GetPostForm("featured_image"); ok {
		req.FeaturedImage = &v
	}
	if v, ok := c.GetPostForm("og_image"); ok {
		req.OgImage = &v
	}
	if values, present := form.Value["tags"]; present {
		req.Tags = webutil.ParseTags(values)
	}
	if values, present := form.Value["product_ids"]; present {
		req.ProductIDs = webutil.ParseTags(values)
	}
	if raw, ok := c.GetPostForm("extension"); ok && raw != "" {
		ext, parsed := h.parseExtensionField(c, raw)
		if !parsed {
			return nil, false
		}
		req.Extension = ext
	}
	if file, err := c.FormFile("featured_image_file"); err == nil {
		req.FeaturedImageFile = file
	}
	if file, err := c.FormFile("og_image_file"); err == nil {
		req.OgImageFile = file
	}
	req.ItemImages = itemImagesFromForm(form)

	if !h.validate(c, req) {
		return nil, false
	}
	return req, true
}
