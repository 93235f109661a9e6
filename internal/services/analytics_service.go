package services

import (
	"sort"
	"time"

	"hwreview_backend/internal/models"
	"hwreview_backend/internal/repositories"
	"hwreview_backend/internal/services/dto"
	"hwreview_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AnalyticsService interface {
	TrackView(db *gorm.DB, req dto.TrackViewRequest, userID *string, ip, userAgent string) error
	TrackClick(db *gorm.DB, req dto.TrackClickRequest, userID *string, ip string) (*models.AffiliateLink, error)

	GetMonthly(db *gorm.DB, year, month int) (*models.MonthlyAnalytics, error)
	ListMonthly(db *gorm.DB, limit int) ([]models.MonthlyAnalytics, error)
	RollupMonth(db *gorm.DB, year, month int) (*models.MonthlyAnalytics, error)

	Dashboard(db *gorm.DB) (*dto.Dashboard, error)
	DatabaseStats(db *gorm.DB) (*dto.DatabaseStats, error)
}

type AnalyticsServiceImpl struct {
	analyticsRepo repositories.AnalyticsRepository
	articleRepo   repositories.ArticleRepository
	productRepo   repositories.ProductRepository
	categoryRepo  repositories.CategoryRepository
	commentRepo   repositories.CommentRepository
	reviewRepo    repositories.ReviewRepository
	userRepo      repositories.UserRepository
}

func NewAnalyticsService() AnalyticsService {
	return &AnalyticsServiceImpl{
		analyticsRepo: repositories.NewAnalyticsRepository(),
		articleRepo:   repositories.NewArticleRepository(),
		productRepo:   repositories.NewProductRepository(),
		categoryRepo:  repositories.NewCategoryRepository(),
		commentRepo:   repositories.NewCommentRepository(),
		reviewRepo:    repositories.NewReviewRepository(),
		userRepo:      repositories.NewUserRepository(),
	}
}

func (s *AnalyticsServiceImpl) TrackView(db *gorm.DB, req dto.TrackViewRequest, userID *string, ip, userAgent string) error {
	event := &models.ViewEvent{
		ContentType: req.ContentType,
		ObjectID:    req.ObjectID,
		UserID:      userID,
		IPAddress:   ip,
		UserAgent:   userAgent,
	}
	if err := s.analyticsRepo.CreateViewEvent(db, event); err != nil {
		return apperrors.InternalError(err)
	}
	if req.ContentType == "article" {
		// Best effort; the cached counter drifting is acceptable.
		_ = s.articleRepo.IncrementViewCount(db, req.ObjectID)
	}
	return nil
}

func (s *AnalyticsServiceImpl) TrackClick(db *gorm.DB, req dto.TrackClickRequest, userID *string, ip string) (*models.AffiliateLink, error) {
	link, err := s.productRepo.FindAffiliateLink(db, req.AffiliateLinkID)
	if err != nil {
		if err == repositories.ErrProductNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	event := &models.ClickEvent{
		AffiliateLinkID: link.ID,
		UserID:          userID,
		IPAddress:       ip,
	}
	if err := s.analyticsRepo.CreateClickEvent(db, event); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return link, nil
}

func (s *AnalyticsServiceImpl) GetMonthly(db *gorm.DB, year, month int) (*models.MonthlyAnalytics, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.NewBadRequestError("month must be between 1 and 12")
	}
	rollup, err := s.analyticsRepo.FindMonthly(db, year, month)
	if err == nil {
		return rollup, nil
	}
	if err != repositories.ErrMonthlyAnalyticsNotFound {
		return nil, apperrors.InternalError(err)
	}
	return s.RollupMonth(db, year, month)
}

func (s *AnalyticsServiceImpl) ListMonthly(db *gorm.DB, limit int) ([]models.MonthlyAnalytics, error) {
	rollups, err := s.analyticsRepo.ListMonthly(db, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return rollups, nil
}

// RollupMonth recomputes one month's aggregates from the raw event and
// content tables and upserts the rollup row.
func (s *AnalyticsServiceImpl) RollupMonth(db *gorm.DB, year, month int) (*models.MonthlyAnalytics, error) {
	from, to := MonthBounds(year, month)

	rollup := &models.MonthlyAnalytics{Year: year, Month: month}
	var err error

	if rollup.ArticleViews, err = s.analyticsRepo.CountViews(db, "article", from, to); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if rollup.ProductViews, err = s.analyticsRepo.CountViews(db, "product", from, to); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if rollup.AffiliateClicks, err = s.analyticsRepo.CountClicks(db, from, to); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if rollup.NewUsers, err = s.userRepo.CountSince(db, from, to); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if rollup.NewComments, err = s.commentRepo.CountSince(db, from, to); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if rollup.NewReviews, err = s.reviewRepo.CountSince(db, from, to); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.analyticsRepo.UpsertMonthly(db, rollup); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return rollup, nil
}

func (s *AnalyticsServiceImpl) Dashboard(db *gorm.DB) (*dto.Dashboard, error) {
	dashboard := &dto.Dashboard{}
	var err error

	if dashboard.Overview.Users, err = s.userRepo.CountAll(db); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if dashboard.Overview.Articles, err = s.articleRepo.CountAll(db); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if dashboard.Overview.Products, err = s.productRepo.CountAll(db); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if dashboard.Overview.Comments, err = s.commentRepo.CountAll(db); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if dashboard.Overview.Reviews, err = s.reviewRepo.CountAll(db); err != nil {
		return nil, apperrors.InternalError(err)
	}

	now := time.Now().UTC()
	current, err := s.RollupMonth(db, now.Year(), int(now.Month()))
	if err != nil {
		return nil, err
	}
	dashboard.CurrentMonth = current

	if dashboard.RecentArticles, err = s.articleRepo.FindRecent(db, 5); err != nil {
		return nil, apperrors.InternalError(err)
	}
	recentComments, _, err := s.commentRepo.FindWithFilter(db, repositories.CommentFilter{Page: 1, PageSize: 5})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	dashboard.RecentComments = recentComments
	recentReviews, _, err := s.reviewRepo.FindWithFilter(db, repositories.ReviewFilter{Page: 1, PageSize: 5})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	dashboard.RecentReviews = recentReviews

	if dashboard.TopCategories, err = s.topCategories(db, 5); err != nil {
		return nil, err
	}
	merchants, err := s.productRepo.TopMerchants(db, 10)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	for _, m := range merchants {
		dashboard.TopMerchants = append(dashboard.TopMerchants, dto.MerchantStatDTO{
			MerchantName: m.MerchantName,
			LinkCount:    m.LinkCount,
		})
	}
	return dashboard, nil
}

func (s *AnalyticsServiceImpl) topCategories(db *gorm.DB, limit int) ([]dto.CategoryStat, error) {
	categories, err := s.categoryRepo.FindWithFilter(db, repositories.CategoryFilter{})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	stats := make([]dto.CategoryStat, 0, len(categories))
	for _, category := range categories {
		articles, err := s.articleRepo.CountPublishedByCategory(db, category.ID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		products, err := s.productRepo.CountByCategory(db, category.ID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		stats = append(stats, dto.CategoryStat{
			CategoryID:   category.ID,
			CategoryName: category.Name,
			ArticleCount: articles,
			ProductCount: products,
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].ArticleCount+stats[i].ProductCount > stats[j].ArticleCount+stats[j].ProductCount
	})
	if len(stats) > limit {
		stats = stats[:limit]
	}
	return stats, nil
}

func (s *AnalyticsServiceImpl) DatabaseStats(db *gorm.DB) (*dto.DatabaseStats, error) {
	version, err := s.analyticsRepo.ServerVersion(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	size, err := s.analyticsRepo.DatabaseSize(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	tables, err := s.analyticsRepo.TableStats(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	stats := &dto.DatabaseStats{ServerVersion: version, DatabaseSize: size}
	for _, t := range tables {
		stats.Tables = append(stats.Tables, dto.TableStat{Table: t.Table, Rows: t.Rows})
	}
	return stats, nil
}

// MonthBounds returns the UTC half-open interval [first of month, first
// of next month); December rolls over into January of the next year.
func MonthBounds(year, month int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	return from, to
}
