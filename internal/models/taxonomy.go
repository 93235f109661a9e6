package models

// Category is a hierarchical content/product grouping.
type Category struct {
	BaseModel
	Name        string  `gorm:"not null" json:"name"`
	Slug        string  `gorm:"uniqueIndex;not null" json:"slug"`
	Description string  `gorm:"type:text" json:"description"`
	Icon        string  `json:"icon"`
	ParentID    *string `gorm:"type:uuid;index" json:"parent_id"`
	SortOrder   int     `gorm:"default:0" json:"sort_order"`
	IsActive    bool    `gorm:"default:true" json:"is_active"`

	Parent   *Category  `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children []Category `gorm:"foreignKey:ParentID" json:"children,omitempty"`
}

type Tag struct {
	BaseModel
	Name string  `gorm:"not null" json:"name"`
	Slug string  `gorm:"uniqueIndex;not null" json:"slug"`
	Type TagType `gorm:"type:varchar(20);not null;default:'general'" json:"type"`
}
