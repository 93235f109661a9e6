package repositories

import (
	"errors"
	"strings"
	"time"

	"hwreview_backend/internal/models"

	"gorm.io/gorm"
)

var ErrArticleNotFound = errors.New("article not found")

type ArticleFilter struct {
	Type            models.ArticleType
	Status          models.ArticleStatus
	AuthorID        string
	CategoryID      string
	CategorySlug    string
	TagSlug         string
	Title           string
	PublishedAfter  *time.Time
	PublishedBefore *time.Time
	Search          string
	Page            int
	PageSize        int
}

type ArticleRepository interface {
	FindByID(db *gorm.DB, id string) (*models.Article, error)
	FindBySlug(db *gorm.DB, slug string) (*models.Article, error)
	FindWithFilter(db *gorm.DB, criteria ArticleFilter) ([]models.Article, int64, error)
	FindRecent(db *gorm.DB, limit int) ([]models.Article, error)
	Create(db *gorm.DB, article *models.Article) error
	Update(db *gorm.DB, article *models.Article) error
	Delete(db *gorm.DB, id string) error
	SlugExists(db *gorm.DB, slug string) (bool, error)
	ReplaceTags(db *gorm.DB, article *models.Article, tags []models.Tag) error
	ReplaceProducts(db *gorm.DB, article *models.Article, products []models.Product) error
	IncrementViewCount(db *gorm.DB, id string) error
	CountAll(db *gorm.DB) (int64, error)
	CountPublishedByCategory(db *gorm.DB, categoryID string) (int64, error)
}

type ArticleRepositoryImpl struct{}

func NewArticleRepository() ArticleRepository {
	return &ArticleRepositoryImpl{}
}

func (r *ArticleRepositoryImpl) preload(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Category").
		Preload("Products").
		Preload("Tags")
}

func (r *ArticleRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Article, error) {
	var article models.Article
	err := r.preload(db).First(&article, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	return &article, nil
}

func (r *ArticleRepositoryImpl) FindBySlug(db *gorm.DB, slug string) (*models.Article, error) {
	var article models.Article
	err := r.preload(db).First(&article, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	return &article, nil
}

func (r *ArticleRepositoryImpl) FindWithFilter(db *gorm.DB, criteria ArticleFilter) ([]models.Article, int64, error) {
	query := db.Model(&models.Article{})

	if criteria.Type != "" {
		query = query.Where("type = ?", criteria.Type)
	}
	if criteria.Status != "" {
		query = query.Where("articles.status = ?", criteria.Status)
	}
	if criteria.AuthorID != "" {
		query = query.Where("author_id = ?", criteria.AuthorID)
	}
	if criteria.CategoryID != "" {
		query = query.Where("category_id = ?", criteria.CategoryID)
	}
	if criteria.CategorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = articles.category_id").
			Where("categories.slug = ?", criteria.CategorySlug)
	}
	if criteria.TagSlug != "" {
		query = query.Joins("JOIN article_tags ON article_tags.article_id = articles.id").
			Joins("JOIN tags ON tags.id = article_tags.tag_id").
			Where("tags.slug = ?", criteria.TagSlug)
	}
	if criteria.Title != "" {
		query = query.Where("lower(title) LIKE ?", "%"+strings.ToLower(criteria.Title)+"%")
	}
	if criteria.PublishedAfter != nil {
		query = query.Where("published_at >= ?", *criteria.PublishedAfter)
	}
	if criteria.PublishedBefore != nil {
		query = query.Where("published_at <= ?", *criteria.PublishedBefore)
	}
	if criteria.Search != "" {
		like := "%" + strings.ToLower(criteria.Search) + "%"
		query = query.Where("lower(title) LIKE ? OR lower(summary) LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var articles []models.Article
	err := r.preload(query).
		Order("COALESCE(published_at, articles.created_at) DESC").
		Offset((criteria.Page - 1) * criteria.PageSize).
		Limit(criteria.PageSize).
		Find(&articles).Error
	if err != nil {
		return nil, 0, err
	}

	return articles, total, nil
}

func (r *ArticleRepositoryImpl) FindRecent(db *gorm.DB, limit int) ([]models.Article, error) {
	var articles []models.Article
	err := db.Preload("Author").Preload("Category").
		Order("created_at DESC").Limit(limit).Find(&articles).Error
	return articles, err
}

func (r *ArticleRepositoryImpl) Create(db *gorm.DB, article *models.Article) error {
	return db.Omit("Products", "Tags", "Author", "Category").Create(article).Error
}

func (r *ArticleRepositoryImpl) Update(db *gorm.DB, article *models.Article) error {
	return db.Omit("Products", "Tags", "Author", "Category", "Comments").Save(article).Error
}

func (r *ArticleRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Select("Comments").Delete(&models.Article{BaseModel: models.BaseModel{ID: id}})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrArticleNotFound
	}
	return nil
}

func (r *ArticleRepositoryImpl) SlugExists(db *gorm.DB, slug string) (bool, error) {
	var count int64
	err := db.Model(&models.Article{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *ArticleRepositoryImpl) ReplaceTags(db *gorm.DB, article *models.Article, tags []models.Tag) error {
	return db.Model(article).Association("Tags").Replace(tags)
}

func (r *ArticleRepositoryImpl) ReplaceProducts(db *gorm.DB, article *models.Article, products []models.Product) error {
	return db.Model(article).Association("Products").Replace(products)
}

func (r *ArticleRepositoryImpl) IncrementViewCount(db *gorm.DB, id string) error {
	return db.Model(&models.Article{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *ArticleRepositoryImpl) CountAll(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Article{}).Count(&count).Error
	return count, err
}

func (r *ArticleRepositoryImpl) CountPublishedByCategory(db *gorm.DB, categoryID string) (int64, error) {
	var count int64
	err := db.Model(&models.Article{}).
		Where("category_id = ? AND status = ?", categoryID, models.ArticleStatusPublished).
		Count(&count).Error
	return count, err
}
