package dto

import "hwreview_backend/internal/models"

type CreateCommentRequest struct {
	ArticleID string  `json:"article_id" validate:"required,uuid"`
	ParentID  *string `json:"parent_id" validate:"omitempty,uuid"`
	Content   string  `json:"content" validate:"required,max=5000"`

	// Guest commenters identify themselves here; ignored when the
	// request carries a valid token.
	AuthorName  string `json:"author_name" validate:"omitempty,max=100"`
	AuthorEmail string `json:"author_email" validate:"omitempty,email,max=255"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,max=5000"`
}

type ModerateCommentRequest struct {
	Status models.ModerationStatus `json:"status" validate:"required,oneof=pending approved rejected"`
}

type CommentListQuery struct {
	ArticleID string `form:"article_id" validate:"omitempty,uuid"`
	UserID    string `form:"user_id" validate:"omitempty,uuid"`
	Status    string `form:"status" validate:"omitempty,oneof=pending approved rejected"`
}

// VoteResult reports whether the toggle added or removed the caller's
// helpful vote, with the resulting total.
type VoteResult struct {
	Action       string `json:"action"`
	HelpfulCount int64  `json:"helpful_count"`
}

type CreateReviewRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Rating    int    `json:"rating" validate:"required,gte=1,lte=5"`
	Title     string `json:"title" validate:"omitempty,max=300"`
	Content   string `json:"content" validate:"required,max=10000"`
	Pros      string `json:"pros" validate:"omitempty,max=3000"`
	Cons      string `json:"cons" validate:"omitempty,max=3000"`
}

type ModerateReviewRequest struct {
	Status models.ModerationStatus `json:"status" validate:"required,oneof=pending approved rejected"`
}

type ReviewListQuery struct {
	ProductID string `form:"product_id" validate:"omitempty,uuid"`
	UserID    string `form:"user_id" validate:"omitempty,uuid"`
	Rating    *int   `form:"rating" validate:"omitempty,gte=1,lte=5"`
	Status    string `form:"status" validate:"omitempty,oneof=pending approved rejected"`
}

type FavoriteRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
}
