package models

import "time"

// NewsletterSubscription tracks newsletter opt-ins. Unsubscribing only
// deactivates the row so a later subscribe reactivates it.
type NewsletterSubscription struct {
	BaseModel
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	SubscribedAt time.Time `gorm:"not null;default:now()" json:"subscribed_at"`
}
