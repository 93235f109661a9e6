package models

import (
	"time"

	"gorm.io/datatypes"
)

type Article struct {
	BaseModel
	Title         string        `gorm:"not null" json:"title"`
	Slug          string        `gorm:"uniqueIndex;not null" json:"slug"`
	Type          ArticleType   `gorm:"type:varchar(20);not null;default:'news'" json:"type"`
	Status        ArticleStatus `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	AuthorID      string        `gorm:"type:uuid;not null;index" json:"author_id"`
	CategoryID    *string       `gorm:"type:uuid;index" json:"category_id"`
	Summary       string        `gorm:"type:text" json:"summary"`
	Content       string        `gorm:"type:text" json:"content"`
	FeaturedImage string        `json:"featured_image"`
	OgImage       string        `json:"og_image"`
	ViewCount     int64         `gorm:"default:0" json:"view_count"`
	PublishedAt   *time.Time    `gorm:"index" json:"published_at"`

	// Extension holds the per-type payload: review scores and pros/cons,
	// best-picks ranking, or the comparison matrix. Shape is governed by
	// the Type discriminator; see ArticleExtension.
	Extension datatypes.JSON `gorm:"type:jsonb" json:"extension,omitempty"`

	Author   *User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Category *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Products []Product  `gorm:"many2many:article_products" json:"products,omitempty"`
	Tags     []Tag      `gorm:"many2many:article_tags" json:"tags,omitempty"`
	Comments []Comment  `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE" json:"-"`
}

// IsPublished reports whether the article is publicly visible.
func (a *Article) IsPublished() bool {
	return a.Status == ArticleStatusPublished
}

// ArticleExtension is the tagged-variant payload stored in Article.Extension.
// Exactly one of the branch pointers is set, matching the article type.
type ArticleExtension struct {
	Review     *ReviewExtension     `json:"review,omitempty"`
	BestPicks  *BestPicksExtension  `json:"best_picks,omitempty"`
	Comparison *ComparisonExtension `json:"comparison,omitempty"`
}

// ReviewExtension carries editorial scores for review articles.
type ReviewExtension struct {
	DesignScore      *float64 `json:"design_score,omitempty"`
	PerformanceScore *float64 `json:"performance_score,omitempty"`
	PriceScore       *float64 `json:"price_score,omitempty"`
	Pros             []string `json:"pros,omitempty"`
	Cons             []string `json:"cons,omitempty"`
}

// BestPicksExtension ranks products inside a best-picks article.
type BestPicksExtension struct {
	Picks []BestPick `json:"picks"`
}

type BestPick struct {
	ProductID string `json:"product_id"`
	Rank      int    `json:"rank"`
	Verdict   string `json:"verdict,omitempty"`
	Image     string `json:"image,omitempty"`
}

// ComparisonExtension lists the spec rows compared side by side.
type ComparisonExtension struct {
	ProductIDs []string `json:"product_ids"`
	SpecNames  []string `json:"spec_names,omitempty"`
}
