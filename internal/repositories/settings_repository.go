package repositories

import (
	"errors"

	"hwreview_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrSettingNotFound = errors.New("setting not found")

type SettingsRepository interface {
	FindAll(db *gorm.DB) ([]models.SiteSetting, error)
	FindPublic(db *gorm.DB) ([]models.SiteSetting, error)
	FindByKey(db *gorm.DB, key string) (*models.SiteSetting, error)
	Upsert(db *gorm.DB, setting *models.SiteSetting) error
	DeleteByKey(db *gorm.DB, key string) error
}

type SettingsRepositoryImpl struct{}

func NewSettingsRepository() SettingsRepository {
	return &SettingsRepositoryImpl{}
}

func (r *SettingsRepositoryImpl) FindAll(db *gorm.DB) ([]models.SiteSetting, error) {
	var settings []models.SiteSetting
	err := db.Order("category ASC, key ASC").Find(&settings).Error
	return settings, err
}

func (r *SettingsRepositoryImpl) FindPublic(db *gorm.DB) ([]models.SiteSetting, error) {
	var settings []models.SiteSetting
	err := db.Where("is_public = true").Order("key ASC").Find(&settings).Error
	return settings, err
}

func (r *SettingsRepositoryImpl) FindByKey(db *gorm.DB, key string) (*models.SiteSetting, error) {
	var setting models.SiteSetting
	err := db.First(&setting, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		return nil, err
	}
	return &setting, nil
}

// Upsert writes a setting row keyed by its unique key.
func (r *SettingsRepositoryImpl) Upsert(db *gorm.DB, setting *models.SiteSetting) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "category", "description", "is_public", "updated_at"}),
	}).Create(setting).Error
}

func (r *SettingsRepositoryImpl) DeleteByKey(db *gorm.DB, key string) error {
	return db.Delete(&models.SiteSetting{}, "key = ?", key).Error
}
