package repositories

import (
	"errors"

	"hwreview_backend/internal/models"

	"gorm.io/gorm"
)

var ErrSubscriptionNotFound = errors.New("newsletter subscription not found")

type NewsletterRepository interface {
	FindByEmail(db *gorm.DB, email string) (*models.NewsletterSubscription, error)
	Create(db *gorm.DB, sub *models.NewsletterSubscription) error
	SetActive(db *gorm.DB, id string, active bool) error
	FindActive(db *gorm.DB) ([]models.NewsletterSubscription, error)
	FindAll(db *gorm.DB, page, pageSize int) ([]models.NewsletterSubscription, int64, error)
}

type NewsletterRepositoryImpl struct{}

func NewNewsletterRepository() NewsletterRepository {
	return &NewsletterRepositoryImpl{}
}

func (r *NewsletterRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.NewsletterSubscription, error) {
	var sub models.NewsletterSubscription
	err := db.First(&sub, "lower(email) = lower(?)", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *NewsletterRepositoryImpl) Create(db *gorm.DB, sub *models.NewsletterSubscription) error {
	return db.Create(sub).Error
}

func (r *NewsletterRepositoryImpl) SetActive(db *gorm.DB, id string, active bool) error {
	result := db.Model(&models.NewsletterSubscription{}).Where("id = ?", id).Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

func (r *NewsletterRepositoryImpl) FindActive(db *gorm.DB) ([]models.NewsletterSubscription, error) {
	var subs []models.NewsletterSubscription
	err := db.Where("is_active = true").Find(&subs).Error
	return subs, err
}

func (r *NewsletterRepositoryImpl) FindAll(db *gorm.DB, page, pageSize int) ([]models.NewsletterSubscription, int64, error) {
	query := db.Model(&models.NewsletterSubscription{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var subs []models.NewsletterSubscription
	err := query.Order("subscribed_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&subs).Error
	if err != nil {
		return nil, 0, err
	}

	return subs, total, nil
}
