package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"sort"
	"strings"

	"hwreview_backend/internal/logger"
	"hwreview_backend/internal/models"
	"hwreview_backend/internal/repositories"
	"hwreview_backend/internal/services/dto"
	"hwreview_backend/internal/storage"
	"hwreview_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// defaultSetting describes one entry of the built-in settings catalog.
// Stored rows override the default value; unknown keys submitted by an
// admin are stored under the "advanced" category.
type defaultSetting struct {
	Key         string
	Value       string
	Category    string
	Description string
	IsPublic    bool
}

var defaultSettings = []defaultSetting{
	{"site_name", "Hardware Review", "general", "Site name shown in titles and email", true},
	{"site_description", "In-depth hardware reviews and buying guides", "general", "Short description used on the homepage", true},
	{"site_url", "", "general", "Canonical site URL", true},
	{"contact_email", "", "general", "Public contact address", true},
	{"items_per_page", "20", "general", "Default page size for listings", false},

	{"primary_color", "#3b82f6", "appearance", "Primary brand color", true},
	{"secondary_color", "#1e293b", "appearance", "Secondary brand color", true},
	{"logo", "", "appearance", "Site logo image", true},
	{"favicon", "", "appearance", "Site favicon", true},

	{"meta_title", "", "seo", "Default meta title", true},
	{"meta_description", "", "seo", "Default meta description", true},
	{"meta_keywords", "", "seo", "Default meta keywords", true},
	{"google_analytics_id", "", "seo", "GA measurement ID", false},

	{"notify_on_new_comment", "true", "notifications", "Email admins on new comments", false},
	{"notify_on_new_review", "true", "notifications", "Email admins on new reviews", false},
	{"newsletter_enabled", "true", "notifications", "Send newsletter on publish", false},

	{"twitter_url", "", "integrations", "Twitter profile URL", true},
	{"youtube_url", "", "integrations", "YouTube channel URL", true},
	{"instagram_url", "", "integrations", "Instagram profile URL", true},

	{"maintenance_mode", "false", "advanced", "Serve a maintenance page to visitors", true},
	{"comments_require_approval", "true", "advanced", "Hold new comments for moderation", false},
}

// fileSettingKeys are stored as uploaded files; their value is the
// public URL of the stored file.
var fileSettingKeys = map[string]bool{"logo": true, "favicon": true}

type SettingsService interface {
	GetAll(db *gorm.DB) (dto.GroupedSettings, error)
	GetPublic(db *gorm.DB) (map[string]string, error)
	BulkUpdate(db *gorm.DB, values map[string]string, files map[string]*multipart.FileHeader) (dto.GroupedSettings, error)
	SiteName(db *gorm.DB) string
	Get(db *gorm.DB, key string) string
}

type SettingsServiceImpl struct {
	repo  repositories.SettingsRepository
	store storage.Storage
}

func NewSettingsService(store storage.Storage) SettingsService {
	return &SettingsServiceImpl{
		repo:  repositories.NewSettingsRepository(),
		store: store,
	}
}

func (s *SettingsServiceImpl) GetAll(db *gorm.DB) (dto.GroupedSettings, error) {
	stored, err := s.repo.FindAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return mergeSettings(stored), nil
}

func (s *SettingsServiceImpl) GetPublic(db *gorm.DB) (map[string]string, error) {
	stored, err := s.repo.FindPublic(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make(map[string]string)
	for _, def := range defaultSettings {
		if def.IsPublic {
			out[def.Key] = def.Value
		}
	}
	for _, row := range stored {
		out[row.Key] = row.Value
	}
	return out, nil
}

// BulkUpdate applies the submitted values on top of the catalog. For
// file-backed keys: an uploaded file replaces the stored one, an empty
// value clears it, and an absent key leaves it untouched.
func (s *SettingsServiceImpl) BulkUpdate(db *gorm.DB, values map[string]string, files map[string]*multipart.FileHeader) (dto.GroupedSettings, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		for key := range fileSettingKeys {
			if err := s.applyFileSetting(tx, key, values, files); err != nil {
				return err
			}
		}

		for key, value := range values {
			if fileSettingKeys[key] {
				continue
			}
			def, known := lookupDefault(key)
			setting := &models.SiteSetting{
				Key:      key,
				Value:    value,
				Category: "advanced",
			}
			if known {
				setting.Category = def.Category
				setting.Description = def.Description
				setting.IsPublic = def.IsPublic
			}
			if err := s.repo.Upsert(tx, setting); err != nil {
				return apperrors.InternalError(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetAll(db)
}

func (s *SettingsServiceImpl) applyFileSetting(tx *gorm.DB, key string, values map[string]string, files map[string]*multipart.FileHeader) error {
	file := files[key]
	value, submitted := values[key]

	switch {
	case file != nil:
		url, err := s.storeSettingFile(key, file)
		if err != nil {
			return err
		}
		def, _ := lookupDefault(key)
		return s.upsertOrInternal(tx, key, url, def)
	case submitted && value == "":
		s.deleteSettingFile(key)
		def, _ := lookupDefault(key)
		return s.upsertOrInternal(tx, key, "", def)
	default:
		return nil
	}
}

func (s *SettingsServiceImpl) upsertOrInternal(tx *gorm.DB, key, value string, def defaultSetting) error {
	setting := &models.SiteSetting{
		Key:         key,
		Value:       value,
		Category:    def.Category,
		Description: def.Description,
		IsPublic:    def.IsPublic,
	}
	if setting.Category == "" {
		setting.Category = "advanced"
	}
	if err := s.repo.Upsert(tx, setting); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *SettingsServiceImpl) storeSettingFile(key string, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		ext = ".png"
	}
	path := fmt.Sprintf("settings/%s%s", key, ext)

	s.deleteSettingFile(key)

	ctx := context.Background()
	contentType := file.Header.Get("Content-Type")
	if err := s.store.Save(ctx, path, src, contentType); err != nil {
		return "", apperrors.InternalError(err)
	}
	url, err := s.store.GetURL(ctx, path)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	return url, nil
}

// deleteSettingFile removes any stored variant of a file-backed key.
// Extensions differ between uploads, so all candidates are tried.
func (s *SettingsServiceImpl) deleteSettingFile(key string) {
	ctx := context.Background()
	for _, ext := range []string{".png", ".jpg", ".jpeg", ".gif", ".svg", ".ico", ".webp"} {
		path := fmt.Sprintf("settings/%s%s", key, ext)
		if ok, _ := s.store.Exists(ctx, path); ok {
			if err := s.store.Delete(ctx, path); err != nil {
				logger.WithError(err).Warn("failed to delete stored setting file", "path", path)
			}
		}
	}
}

func (s *SettingsServiceImpl) SiteName(db *gorm.DB) string {
	return s.Get(db, "site_name")
}

// Get returns the effective value of a single key, falling back to the
// catalog default.
func (s *SettingsServiceImpl) Get(db *gorm.DB, key string) string {
	row, err := s.repo.FindByKey(db, key)
	if err == nil && row.Value != "" {
		return row.Value
	}
	if def, ok := lookupDefault(key); ok {
		return def.Value
	}
	return ""
}

func lookupDefault(key string) (defaultSetting, bool) {
	for _, def := range defaultSettings {
		if def.Key == key {
			return def, true
		}
	}
	return defaultSetting{}, false
}

func mergeSettings(stored []models.SiteSetting) dto.GroupedSettings {
	byKey := make(map[string]models.SiteSetting, len(stored))
	for _, row := range stored {
		byKey[row.Key] = row
	}

	grouped := make(dto.GroupedSettings)
	seen := make(map[string]bool)
	for _, def := range defaultSettings {
		val := dto.SettingValue{
			Key:         def.Key,
			Value:       def.Value,
			Description: def.Description,
			IsPublic:    def.IsPublic,
		}
		if row, ok := byKey[def.Key]; ok {
			val.Value = row.Value
		}
		grouped[def.Category] = append(grouped[def.Category], val)
		seen[def.Key] = true
	}

	// Stored keys outside the catalog still surface for the admin UI.
	var extras []models.SiteSetting
	for _, row := range stored {
		if !seen[row.Key] {
			extras = append(extras, row)
		}
	}
	sort.Slice(extras, func(i, j int) bool { return extras[i].Key < extras[j].Key })
	for _, row := range extras {
		category := row.Category
		if category == "" {
			category = "advanced"
		}
		grouped[category] = append(grouped[category], dto.SettingValue{
			Key:         row.Key,
			Value:       row.Value,
			Description: row.Description,
			IsPublic:    row.IsPublic,
		})
	}
	return grouped
}
