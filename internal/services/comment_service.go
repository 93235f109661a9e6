package services

import (
	"strings"

	"hwreview_backend/internal/models"
	"hwreview_backend/internal/repositories"
	"hwreview_backend/internal/services/dto"
	"hwreview_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// CommentActor identifies who is writing a comment: a registered user
// (UserID set) or a guest (name, optional email).
type CommentActor struct {
	UserID      *string
	AuthorName  string
	AuthorEmail string
	IP          string
}

type CommentService interface {
	Create(db *gorm.DB, actor CommentActor, req dto.CreateCommentRequest) (*models.Comment, error)
	Update(db *gorm.DB, actorID string, actorRole models.UserRole, commentID string, req dto.UpdateCommentRequest) (*models.Comment, error)
	Delete(db *gorm.DB, actorID string, actorRole models.UserRole, commentID string) error
	ListForArticle(db *gorm.DB, articleID string, page, pageSize int) (*dto.Paged, error)
	ListForModeration(db *gorm.DB, query dto.CommentListQuery, page, pageSize int) (*dto.Paged, error)
	Moderate(db *gorm.DB, commentID string, status models.ModerationStatus) (*models.Comment, error)
	ToggleHelpful(db *gorm.DB, userID *string, ip, commentID string) (*dto.VoteResult, error)
}

type CommentServiceImpl struct {
	commentRepo   repositories.CommentRepository
	articleRepo   repositories.ArticleRepository
	notifications NotificationService
}

func NewCommentService(notifications NotificationService) CommentService {
	return &CommentServiceImpl{
		commentRepo:   repositories.NewCommentRepository(),
		articleRepo:   repositories.NewArticleRepository(),
		notifications: notifications,
	}
}

func (s *CommentServiceImpl) Create(db *gorm.DB, actor CommentActor, req dto.CreateCommentRequest) (*models.Comment, error) {
	if actor.UserID == nil && strings.TrimSpace(actor.AuthorName) == "" {
		return nil, apperrors.NewBadRequestError("anonymous comments require an author_name")
	}

	article, err := s.articleRepo.FindByID(db, req.ArticleID)
	if err != nil {
		if err == repositories.ErrArticleNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if !article.IsPublished() {
		return nil, apperrors.ErrInvalidOperation("comments", "article is not open for comments")
	}

	var parent *models.Comment
	if req.ParentID != nil {
		parent, err = s.commentRepo.FindByID(db, *req.ParentID)
		if err != nil {
			if err == repositories.ErrCommentNotFound {
				return nil, apperrors.NewBadRequestError("parent comment does not exist")
			}
			return nil, apperrors.InternalError(err)
		}
		if parent.ArticleID != req.ArticleID {
			return nil, apperrors.NewBadRequestError("parent comment belongs to another article")
		}
	}

	comment := &models.Comment{
		ArticleID: req.ArticleID,
		UserID:    actor.UserID,
		ParentID:  req.ParentID,
		Content:   req.Content,
		Status:    models.ModerationStatusPending,
		IPAddress: actor.IP,
	}
	if actor.UserID == nil {
		comment.AuthorName = strings.TrimSpace(actor.AuthorName)
		comment.AuthorEmail = strings.ToLower(strings.TrimSpace(actor.AuthorEmail))
	}
	if err := s.commentRepo.Create(db, comment); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if parent != nil {
		s.notifications.NotifyCommentReply(db, comment, parent)
	}
	return s.find(db, comment.ID)
}

func (s *CommentServiceImpl) Update(db *gorm.DB, actorID string, actorRole models.UserRole, commentID string, req dto.UpdateCommentRequest) (*models.Comment, error) {
	comment, err := s.find(db, commentID)
	if err != nil {
		return nil, err
	}

	owned := comment.UserID != nil && *comment.UserID == actorID
	if !owned && !actorRole.AtLeast(models.UserRoleAdmin) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	fields := map[string]interface{}{"content": req.Content}
	// Edits by the author go back through moderation.
	if owned && !actorRole.AtLeast(models.UserRoleAdmin) {
		fields["status"] = models.ModerationStatusPending
	}
	if err := s.commentRepo.Update(db, commentID, fields); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.find(db, commentID)
}

func (s *CommentServiceImpl) Delete(db *gorm.DB, actorID string, actorRole models.UserRole, commentID string) error {
	comment, err := s.find(db, commentID)
	if err != nil {
		return err
	}
	owned := comment.UserID != nil && *comment.UserID == actorID
	if !owned && !actorRole.AtLeast(models.UserRoleAdmin) {
		return apperrors.ErrInsufficientPermissions
	}
	if err := s.commentRepo.Delete(db, commentID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// ListForArticle serves the public thread: approved comments only.
func (s *CommentServiceImpl) ListForArticle(db *gorm.DB, articleID string, page, pageSize int) (*dto.Paged, error) {
	criteria := repositories.CommentFilter{
		ArticleID: articleID,
		Status:    models.ModerationStatusApproved,
		Page:      page,
		PageSize:  pageSize,
	}
	comments, total, err := s.commentRepo.FindWithFilter(db, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPaged(comments, total, page, pageSize), nil
}

func (s *CommentServiceImpl) ListForModeration(db *gorm.DB, query dto.CommentListQuery, page, pageSize int) (*dto.Paged, error) {
	criteria := repositories.CommentFilter{
		ArticleID: query.ArticleID,
		UserID:    query.UserID,
		Status:    models.ModerationStatus(query.Status),
		Page:      page,
		PageSize:  pageSize,
	}
	comments, total, err := s.commentRepo.FindWithFilter(db, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPaged(comments, total, page, pageSize), nil
}

func (s *CommentServiceImpl) Moderate(db *gorm.DB, commentID string, status models.ModerationStatus) (*models.Comment, error) {
	if _, err := s.find(db, commentID); err != nil {
		return nil, err
	}
	if err := s.commentRepo.Update(db, commentID, map[string]interface{}{"status": status}); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.find(db, commentID)
}

// ToggleHelpful flips the caller's helpful vote and reports which way
// it went along with the new total. Authenticated callers are keyed by
// user, anonymous callers by IP.
func (s *CommentServiceImpl) ToggleHelpful(db *gorm.DB, userID *string, ip, commentID string) (*dto.VoteResult, error) {
	if _, err := s.find(db, commentID); err != nil {
		return nil, err
	}
	if userID == nil && ip == "" {
		return nil, apperrors.NewBadRequestError("vote identity could not be determined")
	}

	result := &dto.VoteResult{}
	err := db.Transaction(func(tx *gorm.DB) error {
		var vote *models.CommentVote
		var err error
		if userID != nil {
			vote, err = s.commentRepo.FindVoteByUser(tx, commentID, *userID)
		} else {
			vote, err = s.commentRepo.FindVoteByIP(tx, commentID, ip)
		}

		switch err {
		case nil:
			if err := s.commentRepo.DeleteVote(tx, vote.ID); err != nil {
				return apperrors.InternalError(err)
			}
			result.Action = "removed"
		case repositories.ErrVoteNotFound:
			vote := &models.CommentVote{CommentID: commentID}
			if userID != nil {
				vote.UserID = userID
			} else {
				vote.IPAddress = &ip
			}
			if err := s.commentRepo.CreateVote(tx, vote); err != nil {
				return apperrors.InternalError(err)
			}
			result.Action = "added"
		default:
			return apperrors.InternalError(err)
		}

		count, err := s.commentRepo.CountVotes(tx, commentID)
		if err != nil {
			return apperrors.InternalError(err)
		}
		result.HelpfulCount = count
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *CommentServiceImpl) find(db *gorm.DB, commentID string) (*models.Comment, error) {
	comment, err := s.commentRepo.FindByID(db, commentID)
	if err != nil {
		if err == repositories.ErrCommentNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return comment, nil
}
