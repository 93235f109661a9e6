package repositories

import (
	"errors"
	"math"
	"strings"

	"hwreview_backend/internal/models"

	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

type ProductFilter struct {
	Brand          string
	Model          string
	CategoryID     string
	CategorySlug   string
	ReleaseYear    *int
	ReleaseYearMin *int
	ReleaseYearMax *int
	PriceMin       *float64
	PriceMax       *float64
	IsActive       *bool
	Search         string
	Page           int
	PageSize       int
}

// RatingSummary carries the aggregates computed from approved reviews.
type RatingSummary struct {
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}

// MerchantStat ranks merchants by how many affiliate links they carry.
type MerchantStat struct {
	MerchantName string `json:"merchant_name"`
	LinkCount    int64  `json:"link_count"`
}

type ProductRepository interface {
	FindByID(db *gorm.DB, id string) (*models.Product, error)
	FindBySlug(db *gorm.DB, slug string) (*models.Product, error)
	FindWithFilter(db *gorm.DB, criteria ProductFilter) ([]models.Product, int64, error)
	FindRecent(db *gorm.DB, limit int) ([]models.Product, error)
	Create(db *gorm.DB, product *models.Product) error
	Update(db *gorm.DB, product *models.Product) error
	Delete(db *gorm.DB, id string) error
	SlugExists(db *gorm.DB, slug string) (bool, error)
	CountAll(db *gorm.DB) (int64, error)
	CountByCategory(db *gorm.DB, categoryID string) (int64, error)

	ReplaceSpecifications(db *gorm.DB, productID string, specs []models.ProductSpecification) error
	ReplaceAffiliateLinks(db *gorm.DB, productID string, links []models.AffiliateLink) error
	FindAffiliateLink(db *gorm.DB, linkID string) (*models.AffiliateLink, error)
	TopMerchants(db *gorm.DB, limit int) ([]MerchantStat, error)

	GetRatingSummary(db *gorm.DB, productID string) (*RatingSummary, error)

	CreatePriceHistory(db *gorm.DB, entry *models.PriceHistory) error
	FindPriceHistory(db *gorm.DB, productID string) ([]models.PriceHistory, error)
}

type ProductRepositoryImpl struct{}

func NewProductRepository() ProductRepository {
	return &ProductRepositoryImpl{}
}

func (r *ProductRepositoryImpl) preload(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Category").
		Preload("Specifications", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("AffiliateLinks", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		})
}

func (r *ProductRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Product, error) {
	var product models.Product
	err := r.preload(db).First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepositoryImpl) FindBySlug(db *gorm.DB, slug string) (*models.Product, error) {
	var product models.Product
	err := r.preload(db).First(&product, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepositoryImpl) FindWithFilter(db *gorm.DB, criteria ProductFilter) ([]models.Product, int64, error) {
	query := db.Model(&models.Product{})

	if criteria.Brand != "" {
		query = query.Where("lower(brand) LIKE ?", "%"+strings.ToLower(criteria.Brand)+"%")
	}
	if criteria.Model != "" {
		query = query.Where("lower(model) LIKE ?", "%"+strings.ToLower(criteria.Model)+"%")
	}
	if criteria.CategoryID != "" {
		query = query.Where("category_id = ?", criteria.CategoryID)
	}
	if criteria.CategorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", criteria.CategorySlug)
	}
	if criteria.ReleaseYear != nil {
		query = query.Where("release_year = ?", *criteria.ReleaseYear)
	}
	if criteria.ReleaseYearMin != nil {
		query = query.Where("release_year >= ?", *criteria.ReleaseYearMin)
	}
	if criteria.ReleaseYearMax != nil {
		query = query.Where("release_year <= ?", *criteria.ReleaseYearMax)
	}
	if criteria.PriceMin != nil {
		query = query.Where("price >= ?", *criteria.PriceMin)
	}
	if criteria.PriceMax != nil {
		query = query.Where("price <= ?", *criteria.PriceMax)
	}
	if criteria.IsActive != nil {
		query = query.Where("is_active = ?", *criteria.IsActive)
	}
	if criteria.Search != "" {
		like := "%" + strings.ToLower(criteria.Search) + "%"
		query = query.Where("lower(brand) LIKE ? OR lower(model) LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	err := r.preload(query).
		Order("created_at DESC").
		Offset((criteria.Page - 1) * criteria.PageSize).
		Limit(criteria.PageSize).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *ProductRepositoryImpl) FindRecent(db *gorm.DB, limit int) ([]models.Product, error) {
	var products []models.Product
	err := db.Preload("Category").Order("created_at DESC").Limit(limit).Find(&products).Error
	return products, err
}

func (r *ProductRepositoryImpl) Create(db *gorm.DB, product *models.Product) error {
	return db.Create(product).Error
}

func (r *ProductRepositoryImpl) Update(db *gorm.DB, product *models.Product) error {
	return db.Omit("Specifications", "AffiliateLinks", "PriceHistory", "Reviews", "Category").
		Save(product).Error
}

func (r *ProductRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *ProductRepositoryImpl) SlugExists(db *gorm.DB, slug string) (bool, error) {
	var count int64
	err := db.Model(&models.Product{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *ProductRepositoryImpl) CountAll(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Product{}).Count(&count).Error
	return count, err
}

func (r *ProductRepositoryImpl) CountByCategory(db *gorm.DB, categoryID string) (int64, error) {
	var count int64
	err := db.Model(&models.Product{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

// ReplaceSpecifications reconciles the stored spec rows with the
// incoming set inside one transaction: rows matched by name are updated
// in place, new names are inserted, and names absent from the input are
// deleted. This keeps row IDs stable across edits.
func (r *ProductRepositoryImpl) ReplaceSpecifications(db *gorm.DB, productID string, specs []models.ProductSpecification) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var existing []models.ProductSpecification
		if err := tx.Where("product_id = ?", productID).Find(&existing).Error; err != nil {
			return err
		}

		byName := make(map[string]*models.ProductSpecification, len(existing))
		for i := range existing {
			byName[existing[i].Name] = &existing[i]
		}

		seen := make(map[string]bool, len(specs))
		for i := range specs {
			spec := &specs[i]
			spec.ProductID = productID
			seen[spec.Name] = true

			if current, ok := byName[spec.Name]; ok {
				updates := map[string]interface{}{
					"value":      spec.Value,
					"type":       spec.Type,
					"unit":       spec.Unit,
					"sort_order": spec.SortOrder,
					"is_visible": spec.IsVisible,
				}
				if err := tx.Model(&models.ProductSpecification{}).
					Where("id = ?", current.ID).
					Updates(updates).Error; err != nil {
					return err
				}
			} else {
				if err := tx.Create(spec).Error; err != nil {
					return err
				}
			}
		}

		for name, current := range byName {
			if !seen[name] {
				if err := tx.Delete(&models.ProductSpecification{}, "id = ?", current.ID).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
}

// ReplaceAffiliateLinks applies the same diff-and-apply reconciliation
// to affiliate links, matching rows by merchant name.
func (r *ProductRepositoryImpl) ReplaceAffiliateLinks(db *gorm.DB, productID string, links []models.AffiliateLink) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var existing []models.AffiliateLink
		if err := tx.Where("product_id = ?", productID).Find(&existing).Error; err != nil {
			return err
		}

		byMerchant := make(map[string]*models.AffiliateLink, len(existing))
		for i := range existing {
			byMerchant[existing[i].MerchantName] = &existing[i]
		}

		seen := make(map[string]bool, len(links))
		for i := range links {
			link := &links[i]
			link.ProductID = productID
			seen[link.MerchantName] = true

			if current, ok := byMerchant[link.MerchantName]; ok {
				updates := map[string]interface{}{
					"url":        link.URL,
					"price":      link.Price,
					"currency":   link.Currency,
					"is_active":  link.IsActive,
					"sort_order": link.SortOrder,
				}
				if err := tx.Model(&models.AffiliateLink{}).
					Where("id = ?", current.ID).
					Updates(updates).Error; err != nil {
					return err
				}
			} else {
				if err := tx.Create(link).Error; err != nil {
					return err
				}
			}
		}

		for merchant, current := range byMerchant {
			if !seen[merchant] {
				if err := tx.Delete(&models.AffiliateLink{}, "id = ?", current.ID).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
}

func (r *ProductRepositoryImpl) FindAffiliateLink(db *gorm.DB, linkID string) (*models.AffiliateLink, error) {
	var link models.AffiliateLink
	err := db.First(&link, "id = ?", linkID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &link, nil
}

func (r *ProductRepositoryImpl) TopMerchants(db *gorm.DB, limit int) ([]MerchantStat, error) {
	var stats []MerchantStat
	err := db.Model(&models.AffiliateLink{}).
		Select("merchant_name, COUNT(*) AS link_count").
		Group("merchant_name").
		Order("link_count DESC").
		Limit(limit).
		Scan(&stats).Error
	return stats, err
}

// GetRatingSummary averages approved review ratings, rounded to one
// decimal place. Products without approved reviews report zero.
func (r *ProductRepositoryImpl) GetRatingSummary(db *gorm.DB, productID string) (*RatingSummary, error) {
	var row struct {
		Avg   *float64
		Count int64
	}
	err := db.Model(&models.UserReview{}).
		Select("AVG(rating) AS avg, COUNT(*) AS count").
		Where("product_id = ? AND status = ?", productID, models.ModerationStatusApproved).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	summary := &RatingSummary{ReviewCount: row.Count}
	if row.Avg != nil {
		summary.AverageRating = math.Round(*row.Avg*10) / 10
	}
	return summary, nil
}

func (r *ProductRepositoryImpl) CreatePriceHistory(db *gorm.DB, entry *models.PriceHistory) error {
	return db.Create(entry).Error
}

func (r *ProductRepositoryImpl) FindPriceHistory(db *gorm.DB, productID string) ([]models.PriceHistory, error) {
	var entries []models.PriceHistory
	err := db.Where("product_id = ?", productID).Order("recorded_at DESC").Find(&entries).Error
	return entries, err
}
