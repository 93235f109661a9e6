package models

// ViewEvent records a single article or product page view.
// UserID is nil for anonymous visitors.
type ViewEvent struct {
	BaseModel
	ContentType string  `gorm:"type:varchar(20);not null;index:idx_view_events_content" json:"content_type"` // "article" or "product"
	ObjectID    string  `gorm:"type:uuid;not null;index:idx_view_events_content" json:"object_id"`
	UserID      *string `gorm:"type:uuid;index" json:"user_id"`
	IPAddress   string  `gorm:"type:varchar(45)" json:"ip_address"`
	UserAgent   string  `gorm:"type:text" json:"-"`
}

// ClickEvent records an affiliate link click-through.
type ClickEvent struct {
	BaseModel
	AffiliateLinkID string  `gorm:"type:uuid;not null;index" json:"affiliate_link_id"`
	UserID          *string `gorm:"type:uuid;index" json:"user_id"`
	IPAddress       string  `gorm:"type:varchar(45)" json:"ip_address"`

	AffiliateLink *AffiliateLink `gorm:"foreignKey:AffiliateLinkID" json:"-"`
}

// MonthlyAnalytics is the per-month rollup, one row per (year, month).
type MonthlyAnalytics struct {
	BaseModel
	Year  int `gorm:"not null;uniqueIndex:idx_monthly_analytics_period" json:"year"`
	Month int `gorm:"not null;uniqueIndex:idx_monthly_analytics_period" json:"month"`

	ArticleViews    int64 `gorm:"default:0" json:"article_views"`
	ProductViews    int64 `gorm:"default:0" json:"product_views"`
	AffiliateClicks int64 `gorm:"default:0" json:"affiliate_clicks"`
	NewUsers        int64 `gorm:"default:0" json:"new_users"`
	NewComments     int64 `gorm:"default:0" json:"new_comments"`
	NewReviews      int64 `gorm:"default:0" json:"new_reviews"`
}
