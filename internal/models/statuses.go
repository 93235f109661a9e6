package models

type UserStatus string
type UserRole string
type TagType string
type SpecType string
type ArticleType string
type ArticleStatus string
type ModerationStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
	UserStatusBanned   UserStatus = "banned"

	UserRoleMember     UserRole = "member"
	UserRoleEditor     UserRole = "editor"
	UserRoleAdmin      UserRole = "admin"
	UserRoleSuperAdmin UserRole = "super_admin"

	TagTypeHardware TagType = "hardware"
	TagTypeSoftware TagType = "software"
	TagTypeBrand    TagType = "brand"
	TagTypeGeneral  TagType = "general"

	SpecTypeText    SpecType = "text"
	SpecTypeNumber  SpecType = "number"
	SpecTypeBoolean SpecType = "boolean"
	SpecTypeList    SpecType = "list"

	ArticleTypeReview     ArticleType = "review"
	ArticleTypeBestPicks  ArticleType = "best_picks"
	ArticleTypeComparison ArticleType = "comparison"
	ArticleTypeGuide      ArticleType = "guide"
	ArticleTypeNews       ArticleType = "news"

	ArticleStatusDraft     ArticleStatus = "draft"
	ArticleStatusPublished ArticleStatus = "published"
	ArticleStatusArchived  ArticleStatus = "archived"

	ModerationStatusPending  ModerationStatus = "pending"
	ModerationStatusApproved ModerationStatus = "approved"
	ModerationStatusRejected ModerationStatus = "rejected"
)

// roleRank orders roles for hierarchy checks; higher rank wins.
var roleRank = map[UserRole]int{
	UserRoleMember:     0,
	UserRoleEditor:     1,
	UserRoleAdmin:      2,
	UserRoleSuperAdmin: 3,
}

// AtLeast reports whether r sits at or above required in the role
// hierarchy member < editor < admin < super_admin. Unknown roles rank
// below member.
func (r UserRole) AtLeast(required UserRole) bool {
	rank, ok := roleRank[r]
	if !ok {
		return false
	}
	requiredRank, ok := roleRank[required]
	if !ok {
		return false
	}
	return rank >= requiredRank
}

// Valid reports whether the role is one of the known roles.
func (r UserRole) Valid() bool {
	_, ok := roleRank[r]
	return ok
}
