package services

import (
	"hwreview_backend/internal/models"
	"hwreview_backend/internal/repositories"
	"hwreview_backend/internal/services/dto"
	"hwreview_backend/internal/webutil"
	"hwreview_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type TaxonomyService interface {
	GetCategory(db *gorm.DB, idOrSlug string) (*models.Category, error)
	ListCategories(db *gorm.DB, query dto.CategoryListQuery) ([]models.Category, error)
	CreateCategory(db *gorm.DB, req dto.CreateCategoryRequest) (*models.Category, error)
	UpdateCategory(db *gorm.DB, id string, req dto.UpdateCategoryRequest) (*models.Category, error)
	DeleteCategory(db *gorm.DB, id string) error

	GetTag(db *gorm.DB, id string) (*models.Tag, error)
	ListTags(db *gorm.DB, query dto.TagListQuery) ([]models.Tag, error)
	CreateTag(db *gorm.DB, req dto.CreateTagRequest) (*models.Tag, error)
	UpdateTag(db *gorm.DB, id string, req dto.UpdateTagRequest) (*models.Tag, error)
	DeleteTag(db *gorm.DB, id string) error
}

type TaxonomyServiceImpl struct {
	categoryRepo repositories.CategoryRepository
	tagRepo      repositories.TagRepository
}

func NewTaxonomyService() TaxonomyService {
	return &TaxonomyServiceImpl{
		categoryRepo: repositories.NewCategoryRepository(),
		tagRepo:      repositories.NewTagRepository(),
	}
}

// GetCategory accepts either a UUID or a slug; slugs never collide with
// UUIDs because Slugify strips the hyphen groups a UUID requires.
func (s *TaxonomyServiceImpl) GetCategory(db *gorm.DB, idOrSlug string) (*models.Category, error) {
	category, err := s.categoryRepo.FindBySlug(db, idOrSlug)
	if err == nil {
		return category, nil
	}
	if err != repositories.ErrCategoryNotFound {
		return nil, apperrors.InternalError(err)
	}

	category, err = s.categoryRepo.FindByID(db, idOrSlug)
	if err != nil {
		if err == repositories.ErrCategoryNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return category, nil
}

func (s *TaxonomyServiceImpl) ListCategories(db *gorm.DB, query dto.CategoryListQuery) ([]models.Category, error) {
	criteria := repositories.CategoryFilter{
		ParentID: query.ParentID,
		IsActive: query.IsActive,
		Name:     query.Name,
	}
	categories, err := s.categoryRepo.FindWithFilter(db, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return categories, nil
}

func (s *TaxonomyServiceImpl) CreateCategory(db *gorm.DB, req dto.CreateCategoryRequest) (*models.Category, error) {
	if req.ParentID != nil {
		if _, err := s.categoryRepo.FindByID(db, *req.ParentID); err != nil {
			if err == repositories.ErrCategoryNotFound {
				return nil, apperrors.NewBadRequestError("parent category does not exist")
			}
			return nil, apperrors.InternalError(err)
		}
	}

	slug, err := webutil.UniqueSlug(webutil.Slugify(req.Name), func(candidate string) (bool, error) {
		return s.categoryRepo.SlugExists(db, candidate)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	category := &models.Category{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		Icon:        req.Icon,
		ParentID:    req.ParentID,
		SortOrder:   req.SortOrder,
		IsActive:    true,
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.categoryRepo.Create(db, category); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return category, nil
}

func (s *TaxonomyServiceImpl) UpdateCategory(db *gorm.DB, id string, req dto.UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.categoryRepo.FindByID(db, id)
	if err != nil {
		if err == repositories.ErrCategoryNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Name != nil && *req.Name != category.Name {
		category.Name = *req.Name
		slug, err := webutil.UniqueSlug(webutil.Slugify(*req.Name), func(candidate string) (bool, error) {
			if candidate == category.Slug {
				return false, nil
			}
			return s.categoryRepo.SlugExists(db, candidate)
		})
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		category.Slug = slug
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	if req.ParentID != nil {
		if *req.ParentID == "" {
			category.ParentID = nil
		} else {
			if *req.ParentID == category.ID {
				return nil, apperrors.NewBadRequestError("category cannot be its own parent")
			}
			if _, err := s.categoryRepo.FindByID(db, *req.ParentID); err != nil {
				if err == repositories.ErrCategoryNotFound {
					return nil, apperrors.NewBadRequestError("parent category does not exist")
				}
				return nil, apperrors.InternalError(err)
			}
			category.ParentID = req.ParentID
		}
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.categoryRepo.Update(db, category); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return category, nil
}

func (s *TaxonomyServiceImpl) DeleteCategory(db *gorm.DB, id string) error {
	category, err := s.categoryRepo.FindByID(db, id)
	if err != nil {
		if err == repositories.ErrCategoryNotFound {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if len(category.Children) > 0 {
		return apperrors.ErrInvalidOperation("taxonomy", "category still has child categories")
	}
	if err := s.categoryRepo.Delete(db, id); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *TaxonomyServiceImpl) GetTag(db *gorm.DB, id string) (*models.Tag, error) {
	tag, err := s.tagRepo.FindByID(db, id)
	if err != nil {
		if err == repositories.ErrTagNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return tag, nil
}

func (s *TaxonomyServiceImpl) ListTags(db *gorm.DB, query dto.TagListQuery) ([]models.Tag, error) {
	criteria := repositories.TagFilter{
		Type: models.TagType(query.Type),
		Name: query.Name,
	}
	tags, err := s.tagRepo.FindWithFilter(db, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return tags, nil
}

func (s *TaxonomyServiceImpl) CreateTag(db *gorm.DB, req dto.CreateTagRequest) (*models.Tag, error) {
	slug, err := webutil.UniqueSlug(webutil.Slugify(req.Name), func(candidate string) (bool, error) {
		return s.tagRepo.SlugExists(db, candidate)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	tag := &models.Tag{
		Name: req.Name,
		Slug: slug,
		Type: models.TagTypeGeneral,
	}
	if req.Type != "" {
		tag.Type = req.Type
	}

	if err := s.tagRepo.Create(db, tag); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return tag, nil
}

func (s *TaxonomyServiceImpl) UpdateTag(db *gorm.DB, id string, req dto.UpdateTagRequest) (*models.Tag, error) {
	tag, err := s.tagRepo.FindByID(db, id)
	if err != nil {
		if err == repositories.ErrTagNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Name != nil && *req.Name != tag.Name {
		tag.Name = *req.Name
		slug, err := webutil.UniqueSlug(webutil.Slugify(*req.Name), func(candidate string) (bool, error) {
			if candidate == tag.Slug {
				return false, nil
			}
			return s.tagRepo.SlugExists(db, candidate)
		})
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		tag.Slug = slug
	}
	if req.Type != nil {
		tag.Type = *req.Type
	}

	if err := s.tagRepo.Update(db, tag); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return tag, nil
}

func (s *TaxonomyServiceImpl) DeleteTag(db *gorm.DB, id string) error {
	if _, err := s.tagRepo.FindByID(db, id); err != nil {
		if err == repositories.ErrTagNotFound {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if err := s.tagRepo.Delete(db, id); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
