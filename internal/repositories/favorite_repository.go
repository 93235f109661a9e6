package repositories

import (
	"errors"
	"strings"

	"hwreview_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrFavoriteExists   = errors.New("product already favorited")
)

type FavoriteRepository interface {
	Create(db *gorm.DB, favorite *models.Favorite) error
	DeleteByProduct(db *gorm.DB, userID, productID string) error
	FindByUser(db *gorm.DB, userID string, page, pageSize int) ([]models.Favorite, int64, error)
	Exists(db *gorm.DB, userID, productID string) (bool, error)
	CountByUser(db *gorm.DB, userID string) (int64, error)
}

type FavoriteRepositoryImpl struct{}

func NewFavoriteRepository() FavoriteRepository {
	return &FavoriteRepositoryImpl{}
}

func (r *FavoriteRepositoryImpl) Create(db *gorm.DB, favorite *models.Favorite) error {
	err := db.Create(favorite).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate key") {
			return ErrFavoriteExists
		}
		return err
	}
	return nil
}

func (r *FavoriteRepositoryImpl) DeleteByProduct(db *gorm.DB, userID, productID string) error {
	result := db.Delete(&models.Favorite{}, "user_id = ? AND product_id = ?", userID, productID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

func (r *FavoriteRepositoryImpl) FindByUser(db *gorm.DB, userID string, page, pageSize int) ([]models.Favorite, int64, error) {
	query := db.Model(&models.Favorite{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var favorites []models.Favorite
	err := query.Preload("Product").Preload("Product.Category").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&favorites).Error
	if err != nil {
		return nil, 0, err
	}

	return favorites, total, nil
}

func (r *FavoriteRepositoryImpl) Exists(db *gorm.DB, userID, productID string) (bool, error) {
	var count int64
	err := db.Model(&models.Favorite{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	return count > 0, err
}

func (r *FavoriteRepositoryImpl) CountByUser(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Favorite{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
