package services

import (
	"hwreview_backend/internal/models"
	"hwreview_backend/internal/repositories"
	"hwreview_backend/internal/services/dto"
	"hwreview_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const searchBucketSize = 10

type SearchService interface {
	Search(db *gorm.DB, query dto.SearchQuery) (*dto.SearchResults, error)
}

type SearchServiceImpl struct {
	articleRepo  repositories.ArticleRepository
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
	reviewRepo   repositories.ReviewRepository
}

func NewSearchService() SearchService {
	return &SearchServiceImpl{
		articleRepo:  repositories.NewArticleRepository(),
		productRepo:  repositories.NewProductRepository(),
		categoryRepo: repositories.NewCategoryRepository(),
		reviewRepo:   repositories.NewReviewRepository(),
	}
}

// Search matches the term across published articles, active products
// and categories. A type filter narrows the lookup to one bucket.
func (s *SearchServiceImpl) Search(db *gorm.DB, query dto.SearchQuery) (*dto.SearchResults, error) {
	results := &dto.SearchResults{
		Articles:   []models.Article{},
		Products:   []dto.ProductDTO{},
		Categories: []models.Category{},
	}

	if query.Type == "" || query.Type == "articles" {
		articles, _, err := s.articleRepo.FindWithFilter(db, repositories.ArticleFilter{
			Status:   models.ArticleStatusPublished,
			Search:   query.Q,
			Page:     1,
			PageSize: searchBucketSize,
		})
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		results.Articles = articles
	}

	if query.Type == "" || query.Type == "products" {
		active := true
		products, _, err := s.productRepo.FindWithFilter(db, repositories.ProductFilter{
			IsActive: &active,
			Search:   query.Q,
			Page:     1,
			PageSize: searchBucketSize,
		})
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		for i := range products {
			summary, err := s.productRepo.GetRatingSummary(db, products[i].ID)
			if err != nil {
				return nil, apperrors.InternalError(err)
			}
			item := dto.ProductDTO{Product: products[i], ReviewCount: summary.ReviewCount}
			if summary.ReviewCount > 0 {
				avg := summary.AverageRating
				item.AverageRating = &avg
			}
			results.Products = append(results.Products, item)
		}
	}

	if query.Type == "" || query.Type == "categories" {
		categories, err := s.categoryRepo.FindWithFilter(db, repositories.CategoryFilter{
			Name: query.Q,
		})
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if len(categories) > searchBucketSize {
			categories = categories[:searchBucketSize]
		}
		results.Categories = categories
	}

	return results, nil
}
