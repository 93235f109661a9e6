package dto

import (
	"encoding/json"

	"hwreview_backend/internal/models"
)

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
	Bio       *string `json:"bio" validate:"omitempty,max=2000"`
}

// UpdateUserSettingsRequest replaces the user's JSON settings blobs;
// only the keys present are touched.
type UpdateUserSettingsRequest struct {
	NotificationSettings json.RawMessage `json:"notification_settings,omitempty"`
	PrivacySettings      json.RawMessage `json:"privacy_settings,omitempty"`
	Settings             json.RawMessage `json:"settings,omitempty"`
}

type AdminUpdateUserRequest struct {
	Role   *models.UserRole   `json:"role" validate:"omitempty,oneof=member editor admin super_admin"`
	Status *models.UserStatus `json:"status" validate:"omitempty,oneof=active inactive banned"`
}

type UserListQuery struct {
	Role     string `form:"role" validate:"omitempty,oneof=member editor admin super_admin"`
	Status   string `form:"status" validate:"omitempty,oneof=active inactive banned"`
	Verified *bool  `form:"verified"`
	Search   string `form:"search"`
}

// PublicProfileDTO is the reduced view served for other users; gated by
// the profile_visible privacy setting.
type PublicProfileDTO struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	Avatar    string `json:"avatar"`
	Bio       string `json:"bio"`
	JoinedAt  string `json:"joined_at"`
}
