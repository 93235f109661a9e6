package dto

import (
	"mime/multipart"
	"time"

	"hwreview_backend/internal/models"
)

// SpecificationInput is the normalized form of one specs[i][...] group
// from a multipart request, or one element of a JSON specs array.
type SpecificationInput struct {
	Name      string `json:"name" validate:"required,max=150"`
	Value     string `json:"value" validate:"required"`
	Type      string `json:"type" validate:"omitempty,oneof=text number boolean list"`
	Unit      string `json:"unit" validate:"omitempty,max=30"`
	SortOrder int    `json:"sort_order"`
	IsVisible *bool  `json:"is_visible"`
}

type AffiliateLinkInput struct {
	MerchantName string   `json:"merchant_name" validate:"required,max=150"`
	URL          string   `json:"url" validate:"required,url"`
	Price        *float64 `json:"price" validate:"omitempty,gte=0"`
	Currency     string   `json:"currency" validate:"omitempty,len=3"`
	IsActive     *bool    `json:"is_active"`
	SortOrder    int      `json:"sort_order"`
}

type CreateProductRequest struct {
	Brand          string               `json:"brand" validate:"required,max=150"`
	Model          string               `json:"model" validate:"required,max=200"`
	CategoryID     string               `json:"category_id" validate:"required,uuid"`
	ReleaseYear    *int                 `json:"release_year" validate:"omitempty,gte=1970,lte=2100"`
	Price          *float64             `json:"price" validate:"omitempty,gte=0"`
	Currency       string               `json:"currency" validate:"omitempty,len=3"`
	IsActive       *bool                `json:"is_active"`
	Image          string               `json:"image" validate:"omitempty,max=500"`
	Specifications []SpecificationInput `json:"specifications" validate:"omitempty,dive"`
	AffiliateLinks []AffiliateLinkInput `json:"affiliate_links" validate:"omitempty,dive"`

	// Multipart-only cover upload.
	ImageFile *multipart.FileHeader `json:"-"`
}

type UpdateProductRequest struct {
	Brand          *string              `json:"brand" validate:"omitempty,max=150"`
	Model          *string              `json:"model" validate:"omitempty,max=200"`
	CategoryID     *string              `json:"category_id" validate:"omitempty,uuid"`
	ReleaseYear    *int                 `json:"release_year" validate:"omitempty,gte=1970,lte=2100"`
	Price          *float64             `json:"price" validate:"omitempty,gte=0"`
	Currency       *string              `json:"currency" validate:"omitempty,len=3"`
	IsActive       *bool                `json:"is_active"`
	Image          *string              `json:"image" validate:"omitempty,max=500"`
	Specifications []SpecificationInput `json:"specifications" validate:"omitempty,dive"`
	AffiliateLinks []AffiliateLinkInput `json:"affiliate_links" validate:"omitempty,dive"`

	ImageFile *multipart.FileHeader `json:"-"`
}

type ProductListQuery struct {
	Brand          string   `form:"brand"`
	Model          string   `form:"model"`
	CategoryID     string   `form:"category_id" validate:"omitempty,uuid"`
	CategorySlug   string   `form:"category"`
	ReleaseYear    *int     `form:"release_year"`
	ReleaseYearMin *int     `form:"release_year_min"`
	ReleaseYearMax *int     `form:"release_year_max"`
	PriceMin       *float64 `form:"price_min"`
	PriceMax       *float64 `form:"price_max"`
	IsActive       *bool    `form:"is_active"`
	Search         string   `form:"search"`
}

// ProductDTO carries the catalog view of a product plus its review
// aggregate; AverageRating is nil until at least one approved review exists.
type ProductDTO struct {
	models.Product
	AverageRating *float64 `json:"average_rating"`
	ReviewCount   int64    `json:"review_count"`
}

type RecordPriceRequest struct {
	Price    float64 `json:"price" validate:"required,gte=0"`
	Currency string  `json:"currency" validate:"omitempty,len=3"`
}

type PricePointDTO struct {
	Price      float64   `json:"price"`
	Currency   string    `json:"currency"`
	RecordedAt time.Time `json:"recorded_at"`
}
