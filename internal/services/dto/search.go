package dto

import "hwreview_backend/internal/models"

type SearchQuery struct {
	Q    string `form:"q" validate:"required,min=2"`
	Type string `form:"type" validate:"omitempty,oneof=articles products categories"`
}

// SearchResults buckets matches by kind; a type-narrowed search leaves
// the other buckets empty.
type SearchResults struct {
	Articles   []models.Article  `json:"articles"`
	Products   []ProductDTO      `json:"products"`
	Categories []models.Category `json:"categories"`
}
