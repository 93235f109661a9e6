package services

import (
	"encoding/json"
	"mime/multipart"
	"time"

	"hwreview_backend/internal/config"
	"hwreview_backend/internal/imageprocessor"
	"hwreview_backend/internal/logger"
	"hwreview_backend/internal/models"
	"hwreview_backend/internal/repositories"
	"hwreview_backend/internal/services/dto"
	"hwreview_backend/internal/storage"
	"hwreview_backend/internal/webutil"
	"hwreview_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ArticleService interface {
	Get(db *gorm.DB, idOrSlug string) (*models.Article, error)
	GetPublished(db *gorm.DB, idOrSlug string) (*models.Article, error)
	List(db *gorm.DB, query dto.ArticleListQuery, page, pageSize int) (*dto.Paged, error)
	Create(db *gorm.DB, authorID string, req dto.CreateArticleRequest) (*models.Article, error)
	Update(db *gorm.DB, id string, req dto.UpdateArticleRequest) (*models.Article, error)
	Delete(db *gorm.DB, id string) error

	Publish(db *gorm.DB, id string) (*models.Article, error)
	Archive(db *gorm.DB, id string) (*models.Article, error)
	RecordView(db *gorm.DB, id string) error
}

type ArticleServiceImpl struct {
	articleRepo   repositories.ArticleRepository
	categoryRepo  repositories.CategoryRepository
	tagRepo       repositories.TagRepository
	productRepo   repositories.ProductRepository
	newsletter    NewsletterService
	notifications NotificationService
	store         storage.Storage
	processor     *imageprocessor.Processor
}

func NewArticleService(newsletter NewsletterService, notifications NotificationService, store storage.Storage) ArticleService {
	return &ArticleServiceImpl{
		articleRepo:   repositories.NewArticleRepository(),
		categoryRepo:  repositories.NewCategoryRepository(),
		tagRepo:       repositories.NewTagRepository(),
		productRepo:   repositories.NewProductRepository(),
		newsletter:    newsletter,
		notifications: notifications,
		store:         store,
		processor:     imageprocessor.NewProcessor(config.GetConfig().Upload.ImageQuality),
	}
}

func (s *ArticleServiceImpl) Get(db *gorm.DB, idOrSlug string) (*models.Article, error) {
	article, err := s.articleRepo.FindBySlug(db, idOrSlug)
	if err == repositories.ErrArticleNotFound {
		article, err = s.articleRepo.FindByID(db, idOrSlug)
	}
	if err != nil {
		if err == repositories.ErrArticleNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return article, nil
}

// GetPublished serves the public read path; drafts and archived
// articles stay hidden.
func (s *ArticleServiceImpl) GetPublished(db *gorm.DB, idOrSlug string) (*models.Article, error) {
	article, err := s.Get(db, idOrSlug)
	if err != nil {
		return nil, err
	}
	if !article.IsPublished() {
		return nil, apperrors.ErrNotFound(repositories.ErrArticleNotFound)
	}
	return article, nil
}

func (s *ArticleServiceImpl) List(db *gorm.DB, query dto.ArticleListQuery, page, pageSize int) (*dto.Paged, error) {
	criteria := repositories.ArticleFilter{
		Type:         models.ArticleType(query.Type),
		Status:       models.ArticleStatus(query.Status),
		AuthorID:     query.AuthorID,
		CategoryID:   query.CategoryID,
		CategorySlug: query.CategorySlug,
		TagSlug:      query.Tag,
		Search:       query.Search,
		Page:         page,
		PageSize:     pageSize,
	}
	articles, total, err := s.articleRepo.FindWithFilter(db, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPaged(articles, total, page, pageSize), nil
}

func (s *ArticleServiceImpl) Create(db *gorm.DB, authorID string, req dto.CreateArticleRequest) (*models.Article, error) {
	if _, err := s.categoryRepo.FindByID(db, req.CategoryID); err != nil {
		if err == repositories.ErrCategoryNotFound {
			return nil, apperrors.NewBadRequestError("category does not exist")
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.applyItemImages(req.Extension, req.ItemImages); err != nil {
		return nil, err
	}
	extension, err := marshalExtension(req.Type, req.Extension)
	if err != nil {
		return nil, err
	}

	slug, err := webutil.UniqueSlug(webutil.Slugify(req.Title), func(candidate string) (bool, error) {
		return s.articleRepo.SlugExists(db, candidate)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	article := &models.Article{
		Title:         req.Title,
		Slug:          slug,
		Type:          req.Type,
		Status:        models.ArticleStatusDraft,
		AuthorID:      authorID,
		CategoryID:    &req.CategoryID,
		Summary:       req.Summary,
		Content:       req.Content,
		FeaturedImage: req.FeaturedImage,
		OgImage:       req.OgImage,
		Extension:     extension,
	}
	if req.FeaturedImageFile != nil && req.FeaturedImageFile.Size > 0 {
		url, err := saveImage(s.store, s.processor, "articles", imageprocessor.SizeFull, req.FeaturedImageFile)
		if err != nil {
			return nil, err
		}
		article.FeaturedImage = url
	}
	if req.OgImageFile != nil && req.OgImageFile.Size > 0 {
		url, err := saveImage(s.store, s.processor, "articles/og", imageprocessor.SizeCard, req.OgImageFile)
		if err != nil {
			return nil, err
		}
		article.OgImage = url
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.articleRepo.Create(tx, article); err != nil {
			return apperrors.InternalError(err)
		}
		if err := s.applyTags(tx, article, req.Tags); err != nil {
			return err
		}
		return s.applyProducts(tx, article, req.ProductIDs)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(db, article.ID)
}

func (s *ArticleServiceImpl) Update(db *gorm.DB, idOrSlug string, req dto.UpdateArticleRequest) (*models.Article, error) {
	article, err := s.Get(db, idOrSlug)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != article.Title {
		article.Title = *req.Title
		slug, err := webutil.UniqueSlug(webutil.Slugify(*req.Title), func(candidate string) (bool, error) {
			if candidate == article.Slug {
				return false, nil
			}
			return s.articleRepo.SlugExists(db, candidate)
		})
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		article.Slug = slug
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(db, *req.CategoryID); err != nil {
			if err == repositories.ErrCategoryNotFound {
				return nil, apperrors.NewBadRequestError("category does not exist")
			}
			return nil, apperrors.InternalError(err)
		}
		article.CategoryID = req.CategoryID
	}
	if req.Summary != nil {
		article.Summary = *req.Summary
	}
	if req.Content != nil {
		article.Content = *req.Content
	}
	if req.FeaturedImage != nil {
		article.FeaturedImage = *req.FeaturedImage
	}
	if req.OgImage != nil {
		article.OgImage = *req.OgImage
	}
	if req.FeaturedImageFile != nil && req.FeaturedImageFile.Size > 0 {
		url, err := saveImage(s.store, s.processor, "articles", imageprocessor.SizeFull, req.FeaturedImageFile)
		if err != nil {
			return nil, err
		}
		article.FeaturedImage = url
	}
	if req.OgImageFile != nil && req.OgImageFile.Size > 0 {
		url, err := saveImage(s.store, s.processor, "articles/og", imageprocessor.SizeCard, req.OgImageFile)
		if err != nil {
			return nil, err
		}
		article.OgImage = url
	}
	if req.Extension != nil {
		if err := s.applyItemImages(req.Extension, req.ItemImages); err != nil {
			return nil, err
		}
		extension, err := marshalExtension(article.Type, req.Extension)
		if err != nil {
			return nil, err
		}
		article.Extension = extension
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.articleRepo.Update(tx, article); err != nil {
			return apperrors.InternalError(err)
		}
		if req.Tags != nil {
			if err := s.applyTags(tx, article, req.Tags); err != nil {
				return err
			}
		}
		if req.ProductIDs != nil {
			if err := s.applyProducts(tx, article, req.ProductIDs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(db, article.ID)
}

func (s *ArticleServiceImpl) Delete(db *gorm.DB, idOrSlug string) error {
	article, err := s.Get(db, idOrSlug)
	if err != nil {
		return err
	}
	if err := s.articleRepo.Delete(db, article.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// Publish makes the article public. The published_at stamp is written
// once, on the first publish, and the newsletter goes out only then;
// re-publishing an archived article changes status alone.
func (s *ArticleServiceImpl) Publish(db *gorm.DB, idOrSlug string) (*models.Article, error) {
	article, err := s.Get(db, idOrSlug)
	if err != nil {
		return nil, err
	}

	if article.IsPublished() {
		return article, nil
	}

	firstPublish := article.PublishedAt == nil
	article.Status = models.ArticleStatusPublished
	if firstPublish {
		now := time.Now().UTC()
		article.PublishedAt = &now
	}

	if err := s.articleRepo.Update(db, article); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if firstPublish {
		s.notifications.NotifyArticlePublished(db, article)
		go func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("newsletter dispatch panicked", "article_id", article.ID, "panic", r)
				}
			}()
			s.newsletter.DispatchArticle(db, article)
		}()
	}
	return article, nil
}

func (s *ArticleServiceImpl) Archive(db *gorm.DB, idOrSlug string) (*models.Article, error) {
	article, err := s.Get(db, idOrSlug)
	if err != nil {
		return nil, err
	}

	if article.Status == models.ArticleStatusArchived {
		return article, nil
	}
	article.Status = models.ArticleStatusArchived
	if err := s.articleRepo.Update(db, article); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return article, nil
}

func (s *ArticleServiceImpl) RecordView(db *gorm.DB, id string) error {
	if err := s.articleRepo.IncrementViewCount(db, id); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ArticleServiceImpl) applyTags(tx *gorm.DB, article *models.Article, names []string) error {
	if names == nil {
		return nil
	}
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		slug := webutil.Slugify(name)
		if slug == "" {
			continue
		}
		tag, err := s.tagRepo.FindOrCreateByName(tx, name, slug)
		if err != nil {
			return apperrors.InternalError(err)
		}
		tags = append(tags, *tag)
	}
	if err := s.articleRepo.ReplaceTags(tx, article, tags); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ArticleServiceImpl) applyProducts(tx *gorm.DB, article *models.Article, ids []string) error {
	if ids == nil {
		return nil
	}
	products := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		product, err := s.productRepo.FindByID(tx, id)
		if err != nil {
			if err == repositories.ErrProductNotFound {
				return apperrors.NewBadRequestError("linked product does not exist")
			}
			return apperrors.InternalError(err)
		}
		products = append(products, *product)
	}
	if err := s.articleRepo.ReplaceProducts(tx, article, products); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// applyItemImages stores uploaded per-item images and stamps the
// matching best-list pick with the resulting URL. Indexes outside the
// pick list and empty files are ignored.
func (s *ArticleServiceImpl) applyItemImages(ext *models.ArticleExtension, files map[int]*multipart.FileHeader) error {
	if ext == nil || ext.BestPicks == nil || len(files) == 0 {
		return nil
	}
	for idx, file := range files {
		if file == nil || file.Size == 0 {
			continue
		}
		if idx < 0 || idx >= len(ext.BestPicks.Picks) {
			continue
		}
		url, err := saveImage(s.store, s.processor, "articles/items", imageprocessor.SizeCard, file)
		if err != nil {
			return err
		}
		ext.BestPicks.Picks[idx].Image = url
	}
	return nil
}

// marshalExtension checks the extension branch against the article type
// before persisting it. Guides and news carry no extension.
func marshalExtension(articleType models.ArticleType, ext *models.ArticleExtension) (datatypes.JSON, error) {
	if ext == nil {
		return nil, nil
	}

	switch articleType {
	case models.ArticleTypeReview:
		if ext.Review == nil || ext.BestPicks != nil || ext.Comparison != nil {
			return nil, apperrors.NewBadRequestError("review articles take a review extension")
		}
	case models.ArticleTypeBestPicks:
		if ext.BestPicks == nil || ext.Review != nil || ext.Comparison != nil {
			return nil, apperrors.NewBadRequestError("best-picks articles take a best_picks extension")
		}
		if len(ext.BestPicks.Picks) == 0 {
			return nil, apperrors.NewBadRequestError("best_picks extension needs at least one pick")
		}
	case models.ArticleTypeComparison:
		if ext.Comparison == nil || ext.Review != nil || ext.BestPicks != nil {
			return nil, apperrors.NewBadRequestError("comparison articles take a comparison extension")
		}
		if len(ext.Comparison.ProductIDs) < 2 {
			return nil, apperrors.NewBadRequestError("comparison extension needs at least two products")
		}
	default:
		return nil, apperrors.NewBadRequestError("this article type does not take an extension")
	}

	raw, err := json.Marshal(ext)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return datatypes.JSON(raw), nil
}
