package repositories

import (
	"errors"
	"strings"
	"time"

	"hwreview_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewAlreadyExists = errors.New("review already exists for this product")
)

type ReviewFilter struct {
	ProductID  string
	UserID     string
	Rating     *int
	RatingMin  *int
	RatingMax  *int
	Status     models.ModerationStatus
	IsVerified *bool
	Page       int
	PageSize   int
}

type ReviewRepository interface {
	FindByID(db *gorm.DB, id string) (*models.UserReview, error)
	FindWithFilter(db *gorm.DB, criteria ReviewFilter) ([]models.UserReview, int64, error)
	Create(db *gorm.DB, review *models.UserReview) error
	Update(db *gorm.DB, reviewID string, fields map[string]interface{}) error
	Delete(db *gorm.DB, id string) error
	CountByStatus(db *gorm.DB, status models.ModerationStatus) (int64, error)
	CountAll(db *gorm.DB) (int64, error)
	CountSince(db *gorm.DB, from, to time.Time) (int64, error)
}

type ReviewRepositoryImpl struct{}

func NewReviewRepository() ReviewRepository {
	return &ReviewRepositoryImpl{}
}

func (r *ReviewRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.UserReview, error) {
	var review models.UserReview
	err := db.Preload("User").Preload("Product").First(&review, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) FindWithFilter(db *gorm.DB, criteria ReviewFilter) ([]models.UserReview, int64, error) {
	query := db.Model(&models.UserReview{})

	if criteria.ProductID != "" {
		query = query.Where("product_id = ?", criteria.ProductID)
	}
	if criteria.UserID != "" {
		query = query.Where("user_id = ?", criteria.UserID)
	}
	if criteria.Rating != nil {
		query = query.Where("rating = ?", *criteria.Rating)
	}
	if criteria.RatingMin != nil {
		query = query.Where("rating >= ?", *criteria.RatingMin)
	}
	if criteria.RatingMax != nil {
		query = query.Where("rating <= ?", *criteria.RatingMax)
	}
	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}
	if criteria.IsVerified != nil {
		query = query.Where("is_verified = ?", *criteria.IsVerified)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.UserReview
	err := query.Preload("User").
		Order("created_at DESC").
		Offset((criteria.Page - 1) * criteria.PageSize).
		Limit(criteria.PageSize).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

func (r *ReviewRepositoryImpl) Create(db *gorm.DB, review *models.UserReview) error {
	err := db.Create(review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate key") {
			return ErrReviewAlreadyExists
		}
		return err
	}
	return nil
}

func (r *ReviewRepositoryImpl) Update(db *gorm.DB, reviewID string, fields map[string]interface{}) error {
	result := db.Model(&models.UserReview{}).Where("id = ?", reviewID).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.UserReview{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepositoryImpl) CountByStatus(db *gorm.DB, status models.ModerationStatus) (int64, error) {
	var count int64
	err := db.Model(&models.UserReview{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *ReviewRepositoryImpl) CountAll(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.UserReview{}).Count(&count).Error
	return count, err
}

func (r *ReviewRepositoryImpl) CountSince(db *gorm.DB, from, to time.Time) (int64, error) {
	var count int64
	err := db.Model(&models.UserReview{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	return count, err
}
