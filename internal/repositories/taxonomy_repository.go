package repositories

import (
	"errors"
	"strings"

	"hwreview_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrTagNotFound      = errors.New("tag not found")
	ErrSlugTaken        = errors.New("slug already in use")
)

type CategoryFilter struct {
	ParentID *string
	IsActive *bool
	Name     string
}

type TagFilter struct {
	Type models.TagType
	Name string
}

type CategoryRepository interface {
	FindByID(db *gorm.DB, id string) (*models.Category, error)
	FindBySlug(db *gorm.DB, slug string) (*models.Category, error)
	FindWithFilter(db *gorm.DB, criteria CategoryFilter) ([]models.Category, error)
	Create(db *gorm.DB, category *models.Category) error
	Update(db *gorm.DB, category *models.Category) error
	Delete(db *gorm.DB, id string) error
	SlugExists(db *gorm.DB, slug string) (bool, error)
}

type CategoryRepositoryImpl struct{}

func NewCategoryRepository() CategoryRepository {
	return &CategoryRepositoryImpl{}
}

func (r *CategoryRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Category, error) {
	var category models.Category
	err := db.Preload("Children").First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepositoryImpl) FindBySlug(db *gorm.DB, slug string) (*models.Category, error) {
	var category models.Category
	err := db.Preload("Children").First(&category, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepositoryImpl) FindWithFilter(db *gorm.DB, criteria CategoryFilter) ([]models.Category, error) {
	query := db.Model(&models.Category{})

	if criteria.ParentID != nil {
		if *criteria.ParentID == "" {
			query = query.Where("parent_id IS NULL")
		} else {
			query = query.Where("parent_id = ?", *criteria.ParentID)
		}
	}
	if criteria.IsActive != nil {
		query = query.Where("is_active = ?", *criteria.IsActive)
	}
	if criteria.Name != "" {
		query = query.Where("lower(name) LIKE ?", "%"+strings.ToLower(criteria.Name)+"%")
	}

	var categories []models.Category
	err := query.Order("sort_order ASC, name ASC").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepositoryImpl) Create(db *gorm.DB, category *models.Category) error {
	err := db.Create(category).Error
	if err != nil && strings.Contains(err.Error(), "duplicate key") {
		return ErrSlugTaken
	}
	return err
}

func (r *CategoryRepositoryImpl) Update(db *gorm.DB, category *models.Category) error {
	return db.Save(category).Error
}

func (r *CategoryRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Category{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepositoryImpl) SlugExists(db *gorm.DB, slug string) (bool, error) {
	var count int64
	err := db.Model(&models.Category{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

type TagRepository interface {
	FindByID(db *gorm.DB, id string) (*models.Tag, error)
	FindWithFilter(db *gorm.DB, criteria TagFilter) ([]models.Tag, error)
	FindOrCreateByName(db *gorm.DB, name string, slug string) (*models.Tag, error)
	Create(db *gorm.DB, tag *models.Tag) error
	Update(db *gorm.DB, tag *models.Tag) error
	Delete(db *gorm.DB, id string) error
	SlugExists(db *gorm.DB, slug string) (bool, error)
}

type TagRepositoryImpl struct{}

func NewTagRepository() TagRepository {
	return &TagRepositoryImpl{}
}

func (r *TagRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Tag, error) {
	var tag models.Tag
	err := db.First(&tag, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return &tag, nil
}

func (r *TagRepositoryImpl) FindWithFilter(db *gorm.DB, criteria TagFilter) ([]models.Tag, error) {
	query := db.Model(&models.Tag{})

	if criteria.Type != "" {
		query = query.Where("type = ?", criteria.Type)
	}
	if criteria.Name != "" {
		query = query.Where("lower(name) LIKE ?", "%"+strings.ToLower(criteria.Name)+"%")
	}

	var tags []models.Tag
	err := query.Order("name ASC").Find(&tags).Error
	return tags, err
}

// FindOrCreateByName resolves a tag by case-insensitive name, creating
// it as a general tag when missing. Used when attaching free-form tag
// input to articles.
func (r *TagRepositoryImpl) FindOrCreateByName(db *gorm.DB, name string, slug string) (*models.Tag, error) {
	var tag models.Tag
	err := db.First(&tag, "lower(name) = lower(?)", name).Error
	if err == nil {
		return &tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag = models.Tag{Name: name, Slug: slug, Type: models.TagTypeGeneral}
	if err := db.Create(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *TagRepositoryImpl) Create(db *gorm.DB, tag *models.Tag) error {
	err := db.Create(tag).Error
	if err != nil && strings.Contains(err.Error(), "duplicate key") {
		return ErrSlugTaken
	}
	return err
}

func (r *TagRepositoryImpl) Update(db *gorm.DB, tag *models.Tag) error {
	return db.Save(tag).Error
}

func (r *TagRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Tag{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTagNotFound
	}
	return nil
}

func (r *TagRepositoryImpl) SlugExists(db *gorm.DB, slug string) (bool, error) {
	var count int64
	err := db.Model(&models.Tag{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}
