package services

import (
	"hwreview_backend/internal/models"
	"hwreview_backend/internal/repositories"
	"hwreview_backend/internal/services/dto"
	"hwreview_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type FavoriteService interface {
	Add(db *gorm.DB, userID, productID string) error
	Remove(db *gorm.DB, userID, productID string) error
	List(db *gorm.DB, userID string, page, pageSize int) (*dto.Paged, error)
}

type FavoriteServiceImpl struct {
	favoriteRepo repositories.FavoriteRepository
	productRepo  repositories.ProductRepository
}

func NewFavoriteService() FavoriteService {
	return &FavoriteServiceImpl{
		favoriteRepo: repositories.NewFavoriteRepository(),
		productRepo:  repositories.NewProductRepository(),
	}
}

func (s *FavoriteServiceImpl) Add(db *gorm.DB, userID, productID string) error {
	if _, err := s.productRepo.FindByID(db, productID); err != nil {
		if err == repositories.ErrProductNotFound {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	favorite := &models.Favorite{UserID: userID, ProductID: productID}
	if err := s.favoriteRepo.Create(db, favorite); err != nil {
		if err == repositories.ErrFavoriteExists {
			return apperrors.ErrAlreadyFavorited
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *FavoriteServiceImpl) Remove(db *gorm.DB, userID, productID string) error {
	err := s.favoriteRepo.DeleteByProduct(db, userID, productID)
	if err != nil {
		if err == repositories.ErrFavoriteNotFound {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *FavoriteServiceImpl) List(db *gorm.DB, userID string, page, pageSize int) (*dto.Paged, error) {
	favorites, total, err := s.favoriteRepo.FindByUser(db, userID, page, pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPaged(favorites, total, page, pageSize), nil
}
