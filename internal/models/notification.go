package models

import (
	"time"

	"gorm.io/datatypes"
)

type NotificationType string

const (
	NotificationTypeCommentReply     NotificationType = "comment_reply"
	NotificationTypeArticlePublished NotificationType = "article_published"
	NotificationTypeSystem           NotificationType = "system"
)

// Notification is a message produced by a system event for one user;
// the payload shape depends on the type.
type Notification struct {
	BaseModel
	UserID  string           `gorm:"type:uuid;not null;index" json:"user_id"`
	Type    NotificationType `gorm:"type:varchar(30);not null" json:"type"`
	Payload datatypes.JSON   `gorm:"type:jsonb" json:"payload"`
	ReadAt  *time.Time       `json:"read_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// IsRead reports whether the owner has seen the notification.
func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}
