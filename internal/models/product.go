package models

import "time"

type Product struct {
	BaseModel
	Brand       string  `gorm:"not null;index" json:"brand"`
	Model       string  `gorm:"not null" json:"model"`
	Slug        string  `gorm:"uniqueIndex;not null" json:"slug"`
	CategoryID  *string `gorm:"type:uuid;index" json:"category_id"`
	Image       string  `json:"image"`
	ReleaseYear *int    `json:"release_year"`
	Price       *float64 `gorm:"type:decimal(12,2)" json:"price"`
	Currency    string  `gorm:"type:varchar(3);default:'TRY'" json:"currency"`
	IsActive    bool    `gorm:"default:true" json:"is_active"`

	Category       *Category              `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Specifications []ProductSpecification `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"specifications,omitempty"`
	AffiliateLinks []AffiliateLink        `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"affiliate_links,omitempty"`
	PriceHistory   []PriceHistory         `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	Reviews        []UserReview           `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
}

// FullName is "Brand Model", the source for slug generation.
func (p *Product) FullName() string {
	return p.Brand + " " + p.Model
}

type ProductSpecification struct {
	BaseModel
	ProductID string   `gorm:"type:uuid;not null;index" json:"product_id"`
	Name      string   `gorm:"not null" json:"name"`
	Value     string   `gorm:"type:text;not null" json:"value"`
	Type      SpecType `gorm:"type:varchar(20);not null;default:'text'" json:"type"`
	Unit      string   `json:"unit"`
	SortOrder int      `gorm:"default:0" json:"sort_order"`
	IsVisible bool     `gorm:"default:true" json:"is_visible"`
}

type AffiliateLink struct {
	BaseModel
	ProductID    string   `gorm:"type:uuid;not null;index" json:"product_id"`
	MerchantName string   `gorm:"not null" json:"merchant_name"`
	URL          string   `gorm:"type:text;not null" json:"url"`
	Price        *float64 `gorm:"type:decimal(12,2)" json:"price"`
	Currency     string   `gorm:"type:varchar(3);default:'TRY'" json:"currency"`
	IsActive     bool     `gorm:"default:true" json:"is_active"`
	SortOrder    int      `gorm:"default:0" json:"sort_order"`
}

// PriceHistory rows are append-only; there is no update path.
type PriceHistory struct {
	BaseModel
	ProductID  string    `gorm:"type:uuid;not null;index" json:"product_id"`
	Price      float64   `gorm:"type:decimal(12,2);not null" json:"price"`
	Currency   string    `gorm:"type:varchar(3);default:'TRY'" json:"currency"`
	RecordedAt time.Time `gorm:"not null;default:now()" json:"recorded_at"`
}
