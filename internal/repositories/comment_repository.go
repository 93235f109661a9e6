package repositories

import (
	"errors"
	"time"

	"hwreview_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrVoteNotFound    = errors.New("comment vote not found")
)

type CommentFilter struct {
	ArticleID string
	UserID    string
	Status    models.ModerationStatus
	ParentID  *string
	Page      int
	PageSize  int
}

type CommentRepository interface {
	FindByID(db *gorm.DB, id string) (*models.Comment, error)
	FindWithFilter(db *gorm.DB, criteria CommentFilter) ([]models.Comment, int64, error)
	Create(db *gorm.DB, comment *models.Comment) error
	Update(db *gorm.DB, commentID string, fields map[string]interface{}) error
	Delete(db *gorm.DB, id string) error
	CountByStatus(db *gorm.DB, status models.ModerationStatus) (int64, error)
	CountAll(db *gorm.DB) (int64, error)
	CountSince(db *gorm.DB, from, to time.Time) (int64, error)

	FindVoteByUser(db *gorm.DB, commentID, userID string) (*models.CommentVote, error)
	FindVoteByIP(db *gorm.DB, commentID, ip string) (*models.CommentVote, error)
	CreateVote(db *gorm.DB, vote *models.CommentVote) error
	DeleteVote(db *gorm.DB, voteID string) error
	CountVotes(db *gorm.DB, commentID string) (int64, error)
}

type CommentRepositoryImpl struct{}

func NewCommentRepository() CommentRepository {
	return &CommentRepositoryImpl{}
}

func (r *CommentRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Comment, error) {
	var comment models.Comment
	err := db.Preload("User").First(&comment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepositoryImpl) FindWithFilter(db *gorm.DB, criteria CommentFilter) ([]models.Comment, int64, error) {
	query := db.Model(&models.Comment{})

	if criteria.ArticleID != "" {
		query = query.Where("article_id = ?", criteria.ArticleID)
	}
	if criteria.UserID != "" {
		query = query.Where("user_id = ?", criteria.UserID)
	}
	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}
	if criteria.ParentID != nil {
		if *criteria.ParentID == "" {
			query = query.Where("parent_id IS NULL")
		} else {
			query = query.Where("parent_id = ?", *criteria.ParentID)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []models.Comment
	err := query.Preload("User").
		Order("created_at DESC").
		Offset((criteria.Page - 1) * criteria.PageSize).
		Limit(criteria.PageSize).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

func (r *CommentRepositoryImpl) Create(db *gorm.DB, comment *models.Comment) error {
	return db.Create(comment).Error
}

func (r *CommentRepositoryImpl) Update(db *gorm.DB, commentID string, fields map[string]interface{}) error {
	result := db.Model(&models.Comment{}).Where("id = ?", commentID).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Comment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepositoryImpl) CountByStatus(db *gorm.DB, status models.ModerationStatus) (int64, error) {
	var count int64
	err := db.Model(&models.Comment{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *CommentRepositoryImpl) CountAll(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Comment{}).Count(&count).Error
	return count, err
}

func (r *CommentRepositoryImpl) CountSince(db *gorm.DB, from, to time.Time) (int64, error) {
	var count int64
	err := db.Model(&models.Comment{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	return count, err
}

func (r *CommentRepositoryImpl) FindVoteByUser(db *gorm.DB, commentID, userID string) (*models.CommentVote, error) {
	var vote models.CommentVote
	err := db.First(&vote, "comment_id = ? AND user_id = ?", commentID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVoteNotFound
		}
		return nil, err
	}
	return &vote, nil
}

func (r *CommentRepositoryImpl) FindVoteByIP(db *gorm.DB, commentID, ip string) (*models.CommentVote, error) {
	var vote models.CommentVote
	err := db.First(&vote, "comment_id = ? AND user_id IS NULL AND ip_address = ?", commentID, ip).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVoteNotFound
		}
		return nil, err
	}
	return &vote, nil
}

func (r *CommentRepositoryImpl) CreateVote(db *gorm.DB, vote *models.CommentVote) error {
	return db.Create(vote).Error
}

func (r *CommentRepositoryImpl) DeleteVote(db *gorm.DB, voteID string) error {
	return db.Delete(&models.CommentVote{}, "id = ?", voteID).Error
}

func (r *CommentRepositoryImpl) CountVotes(db *gorm.DB, commentID string) (int64, error) {
	var count int64
	err := db.Model(&models.CommentVote{}).Where("comment_id = ?", commentID).Count(&count).Error
	return count, err
}
