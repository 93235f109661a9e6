package models

// SiteSetting is a single key/value configuration row. Keys absent from
// the table fall back to the built-in default catalog.
type SiteSetting struct {
	BaseModel
	Key         string `gorm:"uniqueIndex;not null" json:"key"`
	Value       string `gorm:"type:text" json:"value"`
	Category    string `gorm:"type:varchar(30);not null;default:'general';index" json:"category"`
	Description string `gorm:"type:text" json:"description"`
	IsPublic    bool   `gorm:"default:false" json:"is_public"`
}
