package models

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	BaseModel
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	Username     string     `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string     `gorm:"not null" json:"-"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Role         UserRole   `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	Status       UserStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	Avatar       string     `json:"avatar"`
	Bio          string     `gorm:"type:text" json:"bio"`

	EmailVerified             *time.Time `json:"email_verified"`
	VerificationToken         string     `gorm:"index" json:"-"`
	VerificationTokenCreated  *time.Time `json:"-"`
	EmailNotificationsEnabled bool       `gorm:"default:true" json:"email_notifications"`

	NotificationSettings datatypes.JSON `gorm:"type:jsonb" json:"notification_settings"`
	PrivacySettings      datatypes.JSON `gorm:"type:jsonb" json:"privacy_settings"`
	Settings             datatypes.JSON `gorm:"type:jsonb" json:"settings"`

	LastLoginAt *time.Time `json:"last_login_at"`

	// Relations
	Articles  []Article    `gorm:"foreignKey:AuthorID" json:"-"`
	Comments  []Comment    `gorm:"foreignKey:UserID" json:"-"`
	Reviews   []UserReview `gorm:"foreignKey:UserID" json:"-"`
	Favorites []Favorite   `gorm:"foreignKey:UserID" json:"-"`
}

// IsVerified reports whether the email address has been confirmed.
func (u *User) IsVerified() bool {
	return u.EmailVerified != nil
}

// DisplayName is the public-facing name used in comment and review listings.
func (u *User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Username
}

// PasswordResetCode is a short-lived 6-digit code mailed to the user.
// Requesting a new code invalidates all previous unused ones.
type PasswordResetCode struct {
	BaseModel
	UserID    string    `gorm:"not null;index" json:"user_id"`
	Code      string    `gorm:"type:varchar(6);not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Used      bool      `gorm:"default:false" json:"used"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// IsValid reports whether the code can still be redeemed.
func (c *PasswordResetCode) IsValid(now time.Time) bool {
	return !c.Used && now.Before(c.ExpiresAt)
}
