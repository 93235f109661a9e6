package repositories

import (
	"errors"
	"time"

	"hwreview_backend/internal/models"

	"gorm.io/gorm"
)

var ErrResetCodeNotFound = errors.New("password reset code not found")

type PasswordResetRepository interface {
	Create(db *gorm.DB, code *models.PasswordResetCode) error
	FindValid(db *gorm.DB, userID, code string, now time.Time) (*models.PasswordResetCode, error)
	InvalidateUnused(db *gorm.DB, userID string) error
	MarkUsed(db *gorm.DB, codeID string) error
}

type PasswordResetRepositoryImpl struct{}

func NewPasswordResetRepository() PasswordResetRepository {
	return &PasswordResetRepositoryImpl{}
}

func (r *PasswordResetRepositoryImpl) Create(db *gorm.DB, code *models.PasswordResetCode) error {
	return db.Create(code).Error
}

func (r *PasswordResetRepositoryImpl) FindValid(db *gorm.DB, userID, code string, now time.Time) (*models.PasswordResetCode, error) {
	var reset models.PasswordResetCode
	err := db.
		Where("user_id = ? AND code = ? AND used = false AND expires_at > ?", userID, code, now).
		Order("created_at DESC").
		First(&reset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResetCodeNotFound
		}
		return nil, err
	}
	return &reset, nil
}

// InvalidateUnused marks every outstanding code of the user as used, so
// only the most recently issued code can be redeemed.
func (r *PasswordResetRepositoryImpl) InvalidateUnused(db *gorm.DB, userID string) error {
	return db.Model(&models.PasswordResetCode{}).
		Where("user_id = ? AND used = false", userID).
		Update("used", true).Error
}

func (r *PasswordResetRepositoryImpl) MarkUsed(db *gorm.DB, codeID string) error {
	return db.Model(&models.PasswordResetCode{}).
		Where("id = ?", codeID).
		Update("used", true).Error
}
