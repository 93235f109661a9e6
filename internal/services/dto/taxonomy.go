package dto

import "hwreview_backend/internal/models"

type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required,max=150"`
	Description string  `json:"description" validate:"omitempty,max=2000"`
	Icon        string  `json:"icon" validate:"omitempty,max=100"`
	ParentID    *string `json:"parent_id" validate:"omitempty,uuid"`
	SortOrder   int     `json:"sort_order"`
	IsActive    *bool   `json:"is_active"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=150"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Icon        *string `json:"icon" validate:"omitempty,max=100"`
	ParentID    *string `json:"parent_id"`
	SortOrder   *int    `json:"sort_order"`
	IsActive    *bool   `json:"is_active"`
}

type CategoryListQuery struct {
	ParentID *string `form:"parent_id"`
	IsActive *bool   `form:"is_active"`
	Name     string  `form:"name"`
}

type CreateTagRequest struct {
	Name string         `json:"name" validate:"required,max=100"`
	Type models.TagType `json:"type" validate:"omitempty,oneof=hardware software brand general"`
}

type UpdateTagRequest struct {
	Name *string         `json:"name" validate:"omitempty,max=100"`
	Type *models.TagType `json:"type" validate:"omitempty,oneof=hardware software brand general"`
}

type TagListQuery struct {
	Type string `form:"type" validate:"omitempty,oneof=hardware software brand general"`
	Name string `form:"name"`
}
