package models

// Comment is left by a registered user or a guest; guests identify
// themselves with a name and optional email instead of an account.
type Comment struct {
	BaseModel
	ArticleID   string           `gorm:"type:uuid;not null;index" json:"article_id"`
	UserID      *string          `gorm:"type:uuid;index" json:"user_id"`
	ParentID    *string          `gorm:"type:uuid;index" json:"parent_id"`
	Content     string           `gorm:"type:text;not null" json:"content"`
	Status      ModerationStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	AuthorName  string           `gorm:"size:100" json:"author_name,omitempty"`
	AuthorEmail string           `gorm:"size:255" json:"author_email,omitempty"`
	IPAddress   string           `gorm:"size:45" json:"-"`

	User    *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Parent  *Comment  `gorm:"foreignKey:ParentID" json:"-"`
	Replies []Comment `gorm:"foreignKey:ParentID" json:"replies,omitempty"`
	Votes   []CommentVote `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"-"`
}

// CommentVote marks a comment as helpful. Exactly one identity column
// is set: authenticated voters are keyed per (comment, user), anonymous
// voters per (comment, ip).
type CommentVote struct {
	BaseModel
	CommentID string  `gorm:"type:uuid;not null;uniqueIndex:idx_comment_votes_comment_user;uniqueIndex:idx_comment_votes_comment_ip" json:"comment_id"`
	UserID    *string `gorm:"type:uuid;uniqueIndex:idx_comment_votes_comment_user" json:"user_id"`
	IPAddress *string `gorm:"size:45;uniqueIndex:idx_comment_votes_comment_ip" json:"-"`
}

type UserReview struct {
	BaseModel
	ProductID  string           `gorm:"type:uuid;not null;uniqueIndex:idx_user_reviews_product_user" json:"product_id"`
	UserID     string           `gorm:"type:uuid;not null;uniqueIndex:idx_user_reviews_product_user" json:"user_id"`
	Rating     int              `gorm:"not null" json:"rating"`
	Title      string           `json:"title"`
	Content    string           `gorm:"type:text" json:"content"`
	Pros       string           `gorm:"type:text" json:"pros"`
	Cons       string           `gorm:"type:text" json:"cons"`
	Status     ModerationStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	IsVerified bool             `gorm:"default:false" json:"is_verified"`

	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

type Favorite struct {
	BaseModel
	UserID    string `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_product" json:"user_id"`
	ProductID string `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_product" json:"product_id"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
