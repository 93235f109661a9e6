package services

import (
	"encoding/json"
	"time"

	"hwreview_backend/internal/logger"
	"hwreview_backend/internal/models"
	"hwreview_backend/internal/repositories"
	"hwreview_backend/internal/services/dto"
	"hwreview_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type NotificationService interface {
	ListOwn(db *gorm.DB, userID string, unreadOnly bool, page, pageSize int) (*dto.NotificationPage, error)
	MarkRead(db *gorm.DB, userID, notificationID string) error
	MarkAllRead(db *gorm.DB, userID string) error

	// Event hooks. Both are best-effort: failures are logged, never
	// propagated to the triggering write.
	NotifyCommentReply(db *gorm.DB, comment, parent *models.Comment)
	NotifyArticlePublished(db *gorm.DB, article *models.Article)
}

type NotificationServiceImpl struct {
	repo repositories.NotificationRepository
}

func NewNotificationService() NotificationService {
	return &NotificationServiceImpl{repo: repositories.NewNotificationRepository()}
}

func (s *NotificationServiceImpl) ListOwn(db *gorm.DB, userID string, unreadOnly bool, page, pageSize int) (*dto.NotificationPage, error) {
	notifications, total, err := s.repo.FindForUser(db, userID, unreadOnly, page, pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	unread, err := s.repo.CountUnread(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.NotificationPage{
		Paged:       *dto.NewPaged(notifications, total, page, pageSize),
		UnreadCount: unread,
	}, nil
}

func (s *NotificationServiceImpl) MarkRead(db *gorm.DB, userID, notificationID string) error {
	err := s.repo.MarkRead(db, notificationID, userID, time.Now().UTC())
	if err != nil {
		if err == repositories.ErrNotificationNotFound {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *NotificationServiceImpl) MarkAllRead(db *gorm.DB, userID string) error {
	if err := s.repo.MarkAllRead(db, userID, time.Now().UTC()); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// NotifyCommentReply tells the parent comment's author about a new
// reply. Guest parents and self-replies produce nothing.
func (s *NotificationServiceImpl) NotifyCommentReply(db *gorm.DB, comment, parent *models.Comment) {
	if parent == nil || parent.UserID == nil {
		return
	}
	if comment.UserID != nil && *comment.UserID == *parent.UserID {
		return
	}

	s.create(db, *parent.UserID, models.NotificationTypeCommentReply, map[string]interface{}{
		"comment_id":        comment.ID,
		"parent_comment_id": parent.ID,
		"article_id":        comment.ArticleID,
	})
}

func (s *NotificationServiceImpl) NotifyArticlePublished(db *gorm.DB, article *models.Article) {
	s.create(db, article.AuthorID, models.NotificationTypeArticlePublished, map[string]interface{}{
		"article_id": article.ID,
		"slug":       article.Slug,
		"title":      article.Title,
	})
}

func (s *NotificationServiceImpl) create(db *gorm.DB, userID string, kind models.NotificationType, payload map[string]interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		logger.WithError(err).Error("notification payload marshal failed", "type", string(kind))
		return
	}
	notification := &models.Notification{
		UserID:  userID,
		Type:    kind,
		Payload: datatypes.JSON(raw),
	}
	if err := s.repo.Create(db, notification); err != nil {
		logger.WithError(err).Error("notification create failed", "type", string(kind), "user_id", userID)
	}
}
