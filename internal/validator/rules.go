package validator

import (
	"log"

	"hwreview_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules adds domain status tags to the validator. Empty
// values pass; combine with required when the field is mandatory.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-article-type", validateArticleType)
	mustRegister("is-article-status", validateArticleStatus)
	mustRegister("is-moderation-status", validateModerationStatus)
	mustRegister("is-spec-type", validateSpecType)
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.UserRole(value).Valid()
}

func validateArticleType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.ArticleType(value) {
	case models.ArticleTypeReview, models.ArticleTypeBestPicks, models.ArticleTypeComparison,
		models.ArticleTypeGuide, models.ArticleTypeNews:
		return true
	default:
		return false
	}
}

func validateArticleStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.ArticleStatus(value) {
	case models.ArticleStatusDraft, models.ArticleStatusPublished, models.ArticleStatusArchived:
		return true
	default:
		return false
	}
}

func validateModerationStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.ModerationStatus(value) {
	case models.ModerationStatusPending, models.ModerationStatusApproved, models.ModerationStatusRejected:
		return true
	default:
		return false
	}
}

func validateSpecType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.SpecType(value) {
	case models.SpecTypeText, models.SpecTypeNumber, models.SpecTypeBoolean, models.SpecTypeList:
		return true
	default:
		return false
	}
}
