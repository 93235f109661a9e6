package dto

import (
	"mime/multipart"

	"hwreview_backend/internal/models"
)

type CreateArticleRequest struct {
	Title         string                   `json:"title" validate:"required,max=300"`
	Type          models.ArticleType       `json:"type" validate:"required,oneof=review best_picks comparison guide news"`
	CategoryID    string                   `json:"category_id" validate:"required,uuid"`
	Summary       string                   `json:"summary" validate:"omitempty,max=2000"`
	Content       string                   `json:"content" validate:"required"`
	FeaturedImage string                   `json:"featured_image" validate:"omitempty,max=500"`
	OgImage       string                   `json:"og_image" validate:"omitempty,max=500"`
	ProductIDs    []string                 `json:"product_ids" validate:"omitempty,dive,uuid"`
	Tags          []string                 `json:"tags"`
	Extension     *models.ArticleExtension `json:"extension"`

	// Multipart-only upload fields; ItemImages is keyed by best-list
	// item index.
	FeaturedImageFile *multipart.FileHeader         `json:"-"`
	OgImageFile       *multipart.FileHeader         `json:"-"`
	ItemImages        map[int]*multipart.FileHeader `json:"-"`
}

type UpdateArticleRequest struct {
	Title         *string                  `json:"title" validate:"omitempty,max=300"`
	CategoryID    *string                  `json:"category_id" validate:"omitempty,uuid"`
	Summary       *string                  `json:"summary" validate:"omitempty,max=2000"`
	Content       *string                  `json:"content"`
	FeaturedImage *string                  `json:"featured_image" validate:"omitempty,max=500"`
	OgImage       *string                  `json:"og_image" validate:"omitempty,max=500"`
	ProductIDs    []string                 `json:"product_ids" validate:"omitempty,dive,uuid"`
	Tags          []string                 `json:"tags"`
	Extension     *models.ArticleExtension `json:"extension"`

	FeaturedImageFile *multipart.FileHeader         `json:"-"`
	OgImageFile       *multipart.FileHeader         `json:"-"`
	ItemImages        map[int]*multipart.FileHeader `json:"-"`
}

type ArticleListQuery struct {
	Type         string `form:"type" validate:"omitempty,oneof=review best_picks comparison guide news"`
	Status       string `form:"status" validate:"omitempty,oneof=draft published archived"`
	CategoryID   string `form:"category_id" validate:"omitempty,uuid"`
	CategorySlug string `form:"category"`
	AuthorID     string `form:"author_id" validate:"omitempty,uuid"`
	Tag          string `form:"tag"`
	Search       string `form:"search"`
}
