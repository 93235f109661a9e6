package dto

import "hwreview_backend/internal/models"

type TrackViewRequest struct {
	ContentType string `json:"content_type" validate:"required,oneof=article product"`
	ObjectID    string `json:"object_id" validate:"required,uuid"`
}

type TrackClickRequest struct {
	AffiliateLinkID string `json:"affiliate_link_id" validate:"required,uuid"`
}

type MonthlyQuery struct {
	Year  int `form:"year" validate:"omitempty,gte=2000,lte=2100"`
	Month int `form:"month" validate:"omitempty,gte=1,lte=12"`
}

type OverviewCounts struct {
	Users    int64 `json:"users"`
	Articles int64 `json:"articles"`
	Products int64 `json:"products"`
	Comments int64 `json:"comments"`
	Reviews  int64 `json:"reviews"`
}

type CategoryStat struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	ArticleCount int64  `json:"article_count"`
	ProductCount int64  `json:"product_count"`
}

type MerchantStatDTO struct {
	MerchantName string `json:"merchant_name"`
	LinkCount    int64  `json:"link_count"`
}

// Dashboard is the admin landing payload: totals, the current month's
// rollup, recent content and the busiest categories and merchants.
type Dashboard struct {
	Overview       OverviewCounts            `json:"overview"`
	CurrentMonth   *models.MonthlyAnalytics  `json:"current_month"`
	RecentArticles []models.Article          `json:"recent_articles"`
	RecentComments []models.Comment          `json:"recent_comments"`
	RecentReviews  []models.UserReview       `json:"recent_reviews"`
	TopCategories  []CategoryStat            `json:"top_categories"`
	TopMerchants   []MerchantStatDTO         `json:"top_merchants"`
}

type TableStat struct {
	Table string `json:"table"`
	Rows  int64  `json:"rows"`
}

type DatabaseStats struct {
	ServerVersion string      `json:"server_version"`
	DatabaseSize  string      `json:"database_size"`
	Tables        []TableStat `json:"tables"`
}
