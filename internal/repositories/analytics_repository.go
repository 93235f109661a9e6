package repositories

import (
	"errors"
	"time"

	"hwreview_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrMonthlyAnalyticsNotFound = errors.New("monthly analytics not found")

// TableStat is one row of the database statistics report.
type TableStat struct {
	Table string `json:"table"`
	Rows  int64  `json:"rows"`
}

type AnalyticsRepository interface {
	CreateViewEvent(db *gorm.DB, event *models.ViewEvent) error
	CreateClickEvent(db *gorm.DB, event *models.ClickEvent) error

	CountViews(db *gorm.DB, contentType string, from, to time.Time) (int64, error)
	CountClicks(db *gorm.DB, from, to time.Time) (int64, error)

	UpsertMonthly(db *gorm.DB, rollup *models.MonthlyAnalytics) error
	FindMonthly(db *gorm.DB, year, month int) (*models.MonthlyAnalytics, error)
	ListMonthly(db *gorm.DB, limit int) ([]models.MonthlyAnalytics, error)

	TableStats(db *gorm.DB) ([]TableStat, error)
	ServerVersion(db *gorm.DB) (string, error)
	DatabaseSize(db *gorm.DB) (string, error)
}

type AnalyticsRepositoryImpl struct{}

func NewAnalyticsRepository() AnalyticsRepository {
	return &AnalyticsRepositoryImpl{}
}

func (r *AnalyticsRepositoryImpl) CreateViewEvent(db *gorm.DB, event *models.ViewEvent) error {
	return db.Create(event).Error
}

func (r *AnalyticsRepositoryImpl) CreateClickEvent(db *gorm.DB, event *models.ClickEvent) error {
	return db.Create(event).Error
}

func (r *AnalyticsRepositoryImpl) CountViews(db *gorm.DB, contentType string, from, to time.Time) (int64, error) {
	var count int64
	err := db.Model(&models.ViewEvent{}).
		Where("content_type = ? AND created_at >= ? AND created_at < ?", contentType, from, to).
		Count(&count).Error
	return count, err
}

func (r *AnalyticsRepositoryImpl) CountClicks(db *gorm.DB, from, to time.Time) (int64, error) {
	var count int64
	err := db.Model(&models.ClickEvent{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	return count, err
}

// UpsertMonthly inserts or overwrites the rollup row for its
// (year, month) pair.
func (r *AnalyticsRepositoryImpl) UpsertMonthly(db *gorm.DB, rollup *models.MonthlyAnalytics) error {
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "year"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"article_views", "product_views", "affiliate_clicks",
			"new_users", "new_comments", "new_reviews", "updated_at",
		}),
	}).Create(rollup).Error
}

func (r *AnalyticsRepositoryImpl) FindMonthly(db *gorm.DB, year, month int) (*models.MonthlyAnalytics, error) {
	var rollup models.MonthlyAnalytics
	err := db.First(&rollup, "year = ? AND month = ?", year, month).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMonthlyAnalyticsNotFound
		}
		return nil, err
	}
	return &rollup, nil
}

func (r *AnalyticsRepositoryImpl) ListMonthly(db *gorm.DB, limit int) ([]models.MonthlyAnalytics, error) {
	var rollups []models.MonthlyAnalytics
	err := db.Order("year DESC, month DESC").Limit(limit).Find(&rollups).Error
	return rollups, err
}

// TableStats reports row counts for the application tables.
func (r *AnalyticsRepositoryImpl) TableStats(db *gorm.DB) ([]TableStat, error) {
	tables := map[string]interface{}{
		"users":                    &models.User{},
		"categories":               &models.Category{},
		"tags":                     &models.Tag{},
		"products":                 &models.Product{},
		"product_specifications":   &models.ProductSpecification{},
		"affiliate_links":          &models.AffiliateLink{},
		"price_histories":          &models.PriceHistory{},
		"articles":                 &models.Article{},
		"comments":                 &models.Comment{},
		"user_reviews":             &models.UserReview{},
		"favorites":                &models.Favorite{},
		"newsletter_subscriptions": &models.NewsletterSubscription{},
		"site_settings":            &models.SiteSetting{},
		"view_events":              &models.ViewEvent{},
		"click_events":             &models.ClickEvent{},
	}

	stats := make([]TableStat, 0, len(tables))
	for name, model := range tables {
		var count int64
		if err := db.Model(model).Count(&count).Error; err != nil {
			return nil, err
		}
		stats = append(stats, TableStat{Table: name, Rows: count})
	}
	return stats, nil
}

func (r *AnalyticsRepositoryImpl) ServerVersion(db *gorm.DB) (string, error) {
	var version string
	err := db.Raw("SELECT version()").Scan(&version).Error
	return version, err
}

func (r *AnalyticsRepositoryImpl) DatabaseSize(db *gorm.DB) (string, error) {
	var size string
	err := db.Raw("SELECT pg_size_pretty(pg_database_size(current_database()))").Scan(&size).Error
	return size, err
}
