package services

import (
	"hwreview_backend/internal/models"
	"hwreview_backend/internal/repositories"
	"hwreview_backend/internal/services/dto"
	"hwreview_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ReviewService interface {
	Create(db *gorm.DB, userID string, req dto.CreateReviewRequest) (*models.UserReview, error)
	Delete(db *gorm.DB, actorID string, actorRole models.UserRole, reviewID string) error
	ListForProduct(db *gorm.DB, productID string, page, pageSize int) (*dto.Paged, error)
	ListForModeration(db *gorm.DB, query dto.ReviewListQuery, page, pageSize int) (*dto.Paged, error)
	Moderate(db *gorm.DB, reviewID string, status models.ModerationStatus) (*models.UserReview, error)
}

type ReviewServiceImpl struct {
	reviewRepo  repositories.ReviewRepository
	productRepo repositories.ProductRepository
}

func NewReviewService() ReviewService {
	return &ReviewServiceImpl{
		reviewRepo:  repositories.NewReviewRepository(),
		productRepo: repositories.NewProductRepository(),
	}
}

// Create files a review for moderation. One review per user and
// product; the rating only counts toward the average once approved.
func (s *ReviewServiceImpl) Create(db *gorm.DB, userID string, req dto.CreateReviewRequest) (*models.UserReview, error) {
	if _, err := s.productRepo.FindByID(db, req.ProductID); err != nil {
		if err == repositories.ErrProductNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	review := &models.UserReview{
		ProductID: req.ProductID,
		UserID:    userID,
		Rating:    req.Rating,
		Title:     req.Title,
		Content:   req.Content,
		Pros:      req.Pros,
		Cons:      req.Cons,
		Status:    models.ModerationStatusPending,
	}
	if err := s.reviewRepo.Create(db, review); err != nil {
		if err == repositories.ErrReviewAlreadyExists {
			return nil, apperrors.ErrAlreadyReviewed
		}
		return nil, apperrors.InternalError(err)
	}
	return s.find(db, review.ID)
}

func (s *ReviewServiceImpl) Delete(db *gorm.DB, actorID string, actorRole models.UserRole, reviewID string) error {
	review, err := s.find(db, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != actorID && !actorRole.AtLeast(models.UserRoleAdmin) {
		return apperrors.ErrInsufficientPermissions
	}
	if err := s.reviewRepo.Delete(db, reviewID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// ListForProduct serves the public review list: approved only.
func (s *ReviewServiceImpl) ListForProduct(db *gorm.DB, productID string, page, pageSize int) (*dto.Paged, error) {
	criteria := repositories.ReviewFilter{
		ProductID: productID,
		Status:    models.ModerationStatusApproved,
		Page:      page,
		PageSize:  pageSize,
	}
	reviews, total, err := s.reviewRepo.FindWithFilter(db, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPaged(reviews, total, page, pageSize), nil
}

func (s *ReviewServiceImpl) ListForModeration(db *gorm.DB, query dto.ReviewListQuery, page, pageSize int) (*dto.Paged, error) {
	criteria := repositories.ReviewFilter{
		ProductID: query.ProductID,
		UserID:    query.UserID,
		Rating:    query.Rating,
		Status:    models.ModerationStatus(query.Status),
		Page:      page,
		PageSize:  pageSize,
	}
	reviews, total, err := s.reviewRepo.FindWithFilter(db, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPaged(reviews, total, page, pageSize), nil
}

func (s *ReviewServiceImpl) Moderate(db *gorm.DB, reviewID string, status models.ModerationStatus) (*models.UserReview, error) {
	if _, err := s.find(db, reviewID); err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Update(db, reviewID, map[string]interface{}{"status": status}); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.find(db, reviewID)
}

func (s *ReviewServiceImpl) find(db *gorm.DB, reviewID string) (*models.UserReview, error) {
	review, err := s.reviewRepo.FindByID(db, reviewID)
	if err != nil {
		if err == repositories.ErrReviewNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return review, nil
}
