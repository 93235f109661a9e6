package services

import (
	"strconv"

	"hwreview_backend/internal/config"
	"hwreview_backend/internal/imageprocessor"
	"hwreview_backend/internal/models"
	"hwreview_backend/internal/repositories"
	"hwreview_backend/internal/services/dto"
	"hwreview_backend/internal/storage"
	"hwreview_backend/internal/webutil"
	"hwreview_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ProductService interface {
	Get(db *gorm.DB, idOrSlug string) (*dto.ProductDTO, error)
	List(db *gorm.DB, query dto.ProductListQuery, page, pageSize int) (*dto.Paged, error)
	Create(db *gorm.DB, req dto.CreateProductRequest) (*dto.ProductDTO, error)
	Update(db *gorm.DB, id string, req dto.UpdateProductRequest) (*dto.ProductDTO, error)
	Delete(db *gorm.DB, id string) error

	RecordPrice(db *gorm.DB, productID string, req dto.RecordPriceRequest) error
	PriceHistory(db *gorm.DB, productID string) ([]dto.PricePointDTO, error)

	// SpecsFromForm and LinksFromForm normalize bracket-indexed
	// multipart fields (specs[0][name], links[0][merchant_name]).
	SpecsFromForm(form map[string][]string) []dto.SpecificationInput
	LinksFromForm(form map[string][]string) []dto.AffiliateLinkInput
}

type ProductServiceImpl struct {
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
	store        storage.Storage
	processor    *imageprocessor.Processor
}

func NewProductService(store storage.Storage) ProductService {
	return &ProductServiceImpl{
		productRepo:  repositories.NewProductRepository(),
		categoryRepo: repositories.NewCategoryRepository(),
		store:        store,
		processor:    imageprocessor.NewProcessor(config.GetConfig().Upload.ImageQuality),
	}
}

func (s *ProductServiceImpl) Get(db *gorm.DB, idOrSlug string) (*dto.ProductDTO, error) {
	product, err := s.resolve(db, idOrSlug)
	if err != nil {
		return nil, err
	}
	return s.withRating(db, product)
}


// resolve finds a product by slug or id without the rating aggregate.
func (s *ProductServiceImpl) resolve(db *gorm.DB, idOrSlug string) (*models.Product, error) {
	product, err := s.productRepo.FindBySlug(db, idOrSlug)
	if err == repositories.ErrProductNotFound {
		product, err = s.productRepo.FindByID(db, idOrSlug)
	}
	if err != nil {
		if err == repositories.ErrProductNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return product, nil
}

func (s *ProductServiceImpl) List(db *gorm.DB, query dto.ProductListQuery, page, pageSize int) (*dto.Paged, error) {
	criteria := repositories.ProductFilter{
		Brand:          query.Brand,
		Model:          query.Model,
		CategoryID:     query.CategoryID,
		CategorySlug:   query.CategorySlug,
		ReleaseYear:    query.ReleaseYear,
		ReleaseYearMin: query.ReleaseYearMin,
		ReleaseYearMax: query.ReleaseYearMax,
		PriceMin:       query.PriceMin,
		PriceMax:       query.PriceMax,
		IsActive:       query.IsActive,
		Search:         query.Search,
		Page:           page,
		PageSize:       pageSize,
	}
	products, total, err := s.productRepo.FindWithFilter(db, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.ProductDTO, 0, len(products))
	for i := range products {
		item, err := s.withRating(db, &products[i])
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return dto.NewPaged(items, total, page, pageSize), nil
}

func (s *ProductServiceImpl) Create(db *gorm.DB, req dto.CreateProductRequest) (*dto.ProductDTO, error) {
	if _, err := s.categoryRepo.FindByID(db, req.CategoryID); err != nil {
		if err == repositories.ErrCategoryNotFound {
			return nil, apperrors.NewBadRequestError("category does not exist")
		}
		return nil, apperrors.InternalError(err)
	}

	product := &models.Product{
		Brand:       req.Brand,
		Model:       req.Model,
		CategoryID:  &req.CategoryID,
		ReleaseYear: req.ReleaseYear,
		Price:       req.Price,
		IsActive:    true,
	}
	if req.Currency != "" {
		product.Currency = req.Currency
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	product.Image = req.Image
	if req.ImageFile != nil && req.ImageFile.Size > 0 {
		url, err := saveImage(s.store, s.processor, "products", imageprocessor.SizeCard, req.ImageFile)
		if err != nil {
			return nil, err
		}
		product.Image = url
	}

	slug, err := webutil.UniqueSlug(webutil.Slugify(product.FullName()), func(candidate string) (bool, error) {
		return s.productRepo.SlugExists(db, candidate)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	product.Slug = slug

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.productRepo.Create(tx, product); err != nil {
			return apperrors.InternalError(err)
		}
		if len(req.Specifications) > 0 {
			if err := s.productRepo.ReplaceSpecifications(tx, product.ID, buildSpecs(product.ID, req.Specifications)); err != nil {
				return apperrors.InternalError(err)
			}
		}
		if len(req.AffiliateLinks) > 0 {
			if err := s.productRepo.ReplaceAffiliateLinks(tx, product.ID, buildLinks(product.ID, req.AffiliateLinks)); err != nil {
				return apperrors.InternalError(err)
			}
		}
		if product.Price != nil {
			entry := &models.PriceHistory{ProductID: product.ID, Price: *product.Price, Currency: product.Currency}
			if err := s.productRepo.CreatePriceHistory(tx, entry); err != nil {
				return apperrors.InternalError(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(db, product.ID)
}

func (s *ProductServiceImpl) Update(db *gorm.DB, idOrSlug string, req dto.UpdateProductRequest) (*dto.ProductDTO, error) {
	product, err := s.resolve(db, idOrSlug)
	if err != nil {
		return nil, err
	}

	nameChanged := false
	if req.Brand != nil && *req.Brand != product.Brand {
		product.Brand = *req.Brand
		nameChanged = true
	}
	if req.Model != nil && *req.Model != product.Model {
		product.Model = *req.Model
		nameChanged = true
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(db, *req.CategoryID); err != nil {
			if err == repositories.ErrCategoryNotFound {
				return nil, apperrors.NewBadRequestError("category does not exist")
			}
			return nil, apperrors.InternalError(err)
		}
		product.CategoryID = req.CategoryID
	}
	if req.ReleaseYear != nil {
		product.ReleaseYear = req.ReleaseYear
	}
	priceChanged := false
	if req.Price != nil && (product.Price == nil || *product.Price != *req.Price) {
		product.Price = req.Price
		priceChanged = true
	}
	if req.Currency != nil {
		product.Currency = *req.Currency
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if req.Image != nil {
		product.Image = *req.Image
	}
	if req.ImageFile != nil && req.ImageFile.Size > 0 {
		url, err := saveImage(s.store, s.processor, "products", imageprocessor.SizeCard, req.ImageFile)
		if err != nil {
			return nil, err
		}
		product.Image = url
	}

	if nameChanged {
		slug, err := webutil.UniqueSlug(webutil.Slugify(product.FullName()), func(candidate string) (bool, error) {
			if candidate == product.Slug {
				return false, nil
			}
			return s.productRepo.SlugExists(db, candidate)
		})
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		product.Slug = slug
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.productRepo.Update(tx, product); err != nil {
			return apperrors.InternalError(err)
		}
		if req.Specifications != nil {
			if err := s.productRepo.ReplaceSpecifications(tx, product.ID, buildSpecs(product.ID, req.Specifications)); err != nil {
				return apperrors.InternalError(err)
			}
		}
		if req.AffiliateLinks != nil {
			if err := s.productRepo.ReplaceAffiliateLinks(tx, product.ID, buildLinks(product.ID, req.AffiliateLinks)); err != nil {
				return apperrors.InternalError(err)
			}
		}
		if priceChanged && product.Price != nil {
			entry := &models.PriceHistory{ProductID: product.ID, Price: *product.Price, Currency: product.Currency}
			if err := s.productRepo.CreatePriceHistory(tx, entry); err != nil {
				return apperrors.InternalError(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(db, product.ID)
}

func (s *ProductServiceImpl) Delete(db *gorm.DB, idOrSlug string) error {
	product, err := s.resolve(db, idOrSlug)
	if err != nil {
		return err
	}
	if err := s.productRepo.Delete(db, product.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ProductServiceImpl) RecordPrice(db *gorm.DB, idOrSlug string, req dto.RecordPriceRequest) error {
	product, err := s.resolve(db, idOrSlug)
	if err != nil {
		return err
	}

	currency := req.Currency
	if currency == "" {
		currency = product.Currency
	}
	entry := &models.PriceHistory{ProductID: product.ID, Price: req.Price, Currency: currency}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := s.productRepo.CreatePriceHistory(tx, entry); err != nil {
			return apperrors.InternalError(err)
		}
		price := req.Price
		product.Price = &price
		product.Currency = currency
		if err := s.productRepo.Update(tx, product); err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	})
}

func (s *ProductServiceImpl) PriceHistory(db *gorm.DB, idOrSlug string) ([]dto.PricePointDTO, error) {
	product, err := s.resolve(db, idOrSlug)
	if err != nil {
		return nil, err
	}

	history, err := s.productRepo.FindPriceHistory(db, product.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	points := make([]dto.PricePointDTO, 0, len(history))
	for _, entry := range history {
		points = append(points, dto.PricePointDTO{
			Price:      entry.Price,
			Currency:   entry.Currency,
			RecordedAt: entry.RecordedAt,
		})
	}
	return points, nil
}

func (s *ProductServiceImpl) SpecsFromForm(form map[string][]string) []dto.SpecificationInput {
	raw := webutil.ParseIndexedObjects(form, "specs")
	specs := make([]dto.SpecificationInput, 0, len(raw))
	for i, obj := range raw {
		spec := dto.SpecificationInput{
			Name:      obj["name"],
			Value:     obj["value"],
			Type:      obj["type"],
			Unit:      obj["unit"],
			SortOrder: i,
		}
		if v, ok := obj["sort_order"]; ok {
			if n, err := strconv.Atoi(v); err == nil {
				spec.SortOrder = n
			}
		}
		if v, ok := obj["is_visible"]; ok {
			visible := webutil.ParseBool(v)
			spec.IsVisible = &visible
		}
		if spec.Name != "" && spec.Value != "" {
			specs = append(specs, spec)
		}
	}
	return specs
}

func (s *ProductServiceImpl) LinksFromForm(form map[string][]string) []dto.AffiliateLinkInput {
	raw := webutil.ParseIndexedObjects(form, "affiliate_links")
	links := make([]dto.AffiliateLinkInput, 0, len(raw))
	for i, obj := range raw {
		link := dto.AffiliateLinkInput{
			MerchantName: obj["merchant_name"],
			URL:          obj["url"],
			Currency:     obj["currency"],
			SortOrder:    i,
		}
		if v, ok := obj["price"]; ok && v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				link.Price = &f
			}
		}
		if v, ok := obj["is_active"]; ok {
			active := webutil.ParseBool(v)
			link.IsActive = &active
		}
		if link.MerchantName != "" && link.URL != "" {
			links = append(links, link)
		}
	}
	return links
}

func (s *ProductServiceImpl) withRating(db *gorm.DB, product *models.Product) (*dto.ProductDTO, error) {
	summary, err := s.productRepo.GetRatingSummary(db, product.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	item := &dto.ProductDTO{Product: *product, ReviewCount: summary.ReviewCount}
	if summary.ReviewCount > 0 {
		avg := summary.AverageRating
		item.AverageRating = &avg
	}
	return item, nil
}

func buildSpecs(productID string, inputs []dto.SpecificationInput) []models.ProductSpecification {
	specs := make([]models.ProductSpecification, 0, len(inputs))
	for _, in := range inputs {
		spec := models.ProductSpecification{
			ProductID: productID,
			Name:      in.Name,
			Value:     in.Value,
			Type:      models.SpecTypeText,
			Unit:      in.Unit,
			SortOrder: in.SortOrder,
			IsVisible: true,
		}
		if in.Type != "" {
			spec.Type = models.SpecType(in.Type)
		}
		if in.IsVisible != nil {
			spec.IsVisible = *in.IsVisible
		}
		specs = append(specs, spec)
	}
	return specs
}

func buildLinks(productID string, inputs []dto.AffiliateLinkInput) []models.AffiliateLink {
	links := make([]models.AffiliateLink, 0, len(inputs))
	for _, in := range inputs {
		link := models.AffiliateLink{
			ProductID:    productID,
			MerchantName: in.MerchantName,
			URL:          in.URL,
			Price:        in.Price,
			Currency:     in.Currency,
			IsActive:     true,
			SortOrder:    in.SortOrder,
		}
		if in.IsActive != nil {
			link.IsActive = *in.IsActive
		}
		links = append(links, link)
	}
	return links
}
