package repositories

import (
	"errors"
	"strings"
	"time"

	"hwreview_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserFilter struct {
	Role          models.UserRole
	Status        models.UserStatus
	EmailVerified *bool
	DateFrom      *time.Time
	DateTo        *time.Time
	Search        string
	Page          int
	PageSize      int
}

// UserEngagementStats aggregates a user's activity counters.
type UserEngagementStats struct {
	CommentCount  int64 `json:"comment_count"`
	ReviewCount   int64 `json:"review_count"`
	FavoriteCount int64 `json:"favorite_count"`
	ArticleCount  int64 `json:"article_count"`
}

type UserRepository interface {
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	FindByUsername(db *gorm.DB, username string) (*models.User, error)
	FindByVerificationToken(db *gorm.DB, token string) (*models.User, error)
	Create(db *gorm.DB, user *models.User) error
	Update(db *gorm.DB, userID string, fields map[string]interface{}) error
	UpdateLastLogin(db *gorm.DB, userID string) error
	Delete(db *gorm.DB, userID string) error
	FindWithFilter(db *gorm.DB, criteria UserFilter) ([]models.User, int64, error)
	CountAll(db *gorm.DB) (int64, error)
	CountSince(db *gorm.DB, from, to time.Time) (int64, error)
	GetEngagementStats(db *gorm.DB, userID string) (*UserEngagementStats, error)
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "lower(email) = lower(?)", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByUsername(db *gorm.DB, username string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByVerificationToken(db *gorm.DB, token string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "verification_token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	err := db.Create(user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate key") {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepositoryImpl) Update(db *gorm.DB, userID string, fields map[string]interface{}) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdateLastLogin(db *gorm.DB, userID string) error {
	now := time.Now().UTC()
	return db.Model(&models.User{}).Where("id = ?", userID).Update("last_login_at", now).Error
}

func (r *UserRepositoryImpl) Delete(db *gorm.DB, userID string) error {
	result := db.Delete(&models.User{}, "id = ?", userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) FindWithFilter(db *gorm.DB, criteria UserFilter) ([]models.User, int64, error) {
	query := db.Model(&models.User{})

	if criteria.Role != "" {
		query = query.Where("role = ?", criteria.Role)
	}
	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}
	if criteria.EmailVerified != nil {
		if *criteria.EmailVerified {
			query = query.Where("email_verified IS NOT NULL")
		} else {
			query = query.Where("email_verified IS NULL")
		}
	}
	if criteria.DateFrom != nil {
		query = query.Where("created_at >= ?", *criteria.DateFrom)
	}
	if criteria.DateTo != nil {
		query = query.Where("created_at <= ?", *criteria.DateTo)
	}
	if criteria.Search != "" {
		like := "%" + strings.ToLower(criteria.Search) + "%"
		query = query.Where(
			"lower(email) LIKE ? OR lower(username) LIKE ? OR lower(first_name) LIKE ? OR lower(last_name) LIKE ?",
			like, like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := query.
		Order("created_at DESC").
		Offset((criteria.Page - 1) * criteria.PageSize).
		Limit(criteria.PageSize).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *UserRepositoryImpl) CountAll(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.User{}).Count(&count).Error
	return count, err
}

func (r *UserRepositoryImpl) CountSince(db *gorm.DB, from, to time.Time) (int64, error) {
	var count int64
	err := db.Model(&models.User{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	return count, err
}

func (r *UserRepositoryImpl) GetEngagementStats(db *gorm.DB, userID string) (*UserEngagementStats, error) {
	var stats UserEngagementStats

	if err := db.Model(&models.Comment{}).Where("user_id = ?", userID).Count(&stats.CommentCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.UserReview{}).Where("user_id = ?", userID).Count(&stats.ReviewCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Favorite{}).Where("user_id = ?", userID).Count(&stats.FavoriteCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Article{}).Where("author_id = ?", userID).Count(&stats.ArticleCount).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
