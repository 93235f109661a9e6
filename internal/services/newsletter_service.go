package services

import (
	"fmt"
	"strings"
	"time"

	"hwreview_backend/internal/config"
	"hwreview_backend/internal/email"
	"hwreview_backend/internal/logger"
	"hwreview_backend/internal/models"
	"hwreview_backend/internal/repositories"
	"hwreview_backend/internal/services/dto"
	"hwreview_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type NewsletterService interface {
	Subscribe(db *gorm.DB, emailAddr string) (*models.NewsletterSubscription, error)
	Unsubscribe(db *gorm.DB, emailAddr string) error
	List(db *gorm.DB, page, pageSize int) (*dto.Paged, error)

	// DispatchArticle mails a published article to all active
	// subscribers. Runs synchronously; callers dispatch from a goroutine.
	DispatchArticle(db *gorm.DB, article *models.Article)
}

type NewsletterServiceImpl struct {
	subRepo  repositories.NewsletterRepository
	userRepo repositories.UserRepository
	settings SettingsService
	mailer   email.Mailer
}

func NewNewsletterService(settings SettingsService, mailer email.Mailer) NewsletterService {
	return &NewsletterServiceImpl{
		subRepo:  repositories.NewNewsletterRepository(),
		userRepo: repositories.NewUserRepository(),
		settings: settings,
		mailer:   mailer,
	}
}

func (s *NewsletterServiceImpl) Subscribe(db *gorm.DB, emailAddr string) (*models.NewsletterSubscription, error) {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))

	sub, err := s.subRepo.FindByEmail(db, emailAddr)
	if err == nil {
		if !sub.IsActive {
			if err := s.subRepo.SetActive(db, sub.ID, true); err != nil {
				return nil, apperrors.InternalError(err)
			}
			sub.IsActive = true
		}
		return sub, nil
	}
	if err != repositories.ErrSubscriptionNotFound {
		return nil, apperrors.InternalError(err)
	}

	sub = &models.NewsletterSubscription{
		Email:        emailAddr,
		IsActive:     true,
		SubscribedAt: time.Now().UTC(),
	}
	if err := s.subRepo.Create(db, sub); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return sub, nil
}

func (s *NewsletterServiceImpl) Unsubscribe(db *gorm.DB, emailAddr string) error {
	sub, err := s.subRepo.FindByEmail(db, emailAddr)
	if err != nil {
		// Unsubscribing an unknown address is not an error.
		if err == repositories.ErrSubscriptionNotFound {
			return nil
		}
		return apperrors.InternalError(err)
	}
	if !sub.IsActive {
		return nil
	}
	if err := s.subRepo.SetActive(db, sub.ID, false); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *NewsletterServiceImpl) List(db *gorm.DB, page, pageSize int) (*dto.Paged, error) {
	subs, total, err := s.subRepo.FindAll(db, page, pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPaged(subs, total, page, pageSize), nil
}

func (s *NewsletterServiceImpl) DispatchArticle(db *gorm.DB, article *models.Article) {
	if s.settings.Get(db, "newsletter_enabled") == "false" {
		return
	}

	subs, err := s.subRepo.FindActive(db)
	if err != nil {
		logger.WithError(err).Error("failed to load newsletter subscribers", "article_id", article.ID)
		return
	}

	siteName := s.settings.SiteName(db)
	articleURL := fmt.Sprintf("%s/articles/%s", config.GetConfig().Frontend.BaseURL, article.Slug)
	subject, html, text := email.NewsletterEmail(siteName, article.Title, article.Summary, articleURL)

	sent := 0
	for _, sub := range subs {
		// Article mail only goes to subscribers with a registered account
		// that kept email notifications on; a bare subscription row is
		// not enough.
		user, err := s.userRepo.FindByEmail(db, sub.Email)
		if err != nil {
			if err != repositories.ErrUserNotFound {
				logger.WithError(err).Warn("subscriber account lookup failed", "email", sub.Email)
			}
			continue
		}
		if !user.EmailNotificationsEnabled {
			continue
		}
		if err := s.mailer.Send(sub.Email, subject, html, text); err != nil {
			logger.WithError(err).Warn("newsletter delivery failed", "email", sub.Email)
			continue
		}
		sent++
	}
	logger.Info("newsletter dispatched", "article_id", article.ID, "recipients", sent)
}
