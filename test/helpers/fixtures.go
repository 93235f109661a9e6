package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"hwreview_backend/internal/models"
	"hwreview_backend/internal/webutil"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateUser inserts a user, hashing the password when a raw one was
// provided. Users default to active and verified so they can log in.
func CreateUser(t *testing.T, db *gorm.DB, user *models.User) {
	if user.PasswordHash != "" && !strings.HasPrefix(user.PasswordHash, "$2a$") {
		hashed, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
		require.NoError(t, err, "hashing test password must not fail")
		user.PasswordHash = string(hashed)
	}
	if user.Status == "" {
		user.Status = models.UserStatusActive
	}
	if user.Role == "" {
		user.Role = models.UserRoleMember
	}
	if user.EmailVerified == nil {
		now := time.Now().UTC()
		user.EmailVerified = &now
	}

	require.NoError(t, db.Create(user).Error, "creating test user must not fail")
}

// CreateAndLoginUser creates a verified user and logs it in through the
// API, returning the access token.
func CreateAndLoginUser(t *testing.T, ts *TestServer, tx *gorm.DB, username, emailAddr, password string, role models.UserRole) (string, *models.User) {
	user := &models.User{
		Username:     username,
		Email:        emailAddr,
		PasswordHash: password,
		Role:         role,
	}
	CreateUser(t, tx, user)

	loginBody := map[string]interface{}{
		"email":    emailAddr,
		"password": password,
	}
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	require.Equal(t, http.StatusOK, res.Code, "login must succeed, got: "+bodyStr)

	var envelope struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &envelope))
	require.NotEmpty(t, envelope.Data.AccessToken, "login response must carry a token")

	return envelope.Data.AccessToken, user
}

func CreateTestCategory(t *testing.T, tx *gorm.DB, name string) *models.Category {
	category := &models.Category{
		Name:     name,
		Slug:     webutil.Slugify(name),
		IsActive: true,
	}
	require.NoError(t, tx.Create(category).Error)
	return category
}

func CreateTestProduct(t *testing.T, tx *gorm.DB, brand, model string, categoryID *string) *models.Product {
	product := &models.Product{
		Brand:      brand,
		Model:      model,
		Slug:       webutil.Slugify(brand + " " + model),
		CategoryID: categoryID,
		IsActive:   true,
	}
	require.NoError(t, tx.Create(product).Error)
	return product
}

func CreateTestArticle(t *testing.T, tx *gorm.DB, authorID, title string, status models.ArticleStatus) *models.Article {
	article := &models.Article{
		Title:    title,
		Slug:     webutil.Slugify(title),
		Type:     models.ArticleTypeNews,
		Status:   status,
		AuthorID: authorID,
		Content:  fmt.Sprintf("Body of %s", title),
	}
	if status == models.ArticleStatusPublished {
		now := time.Now().UTC()
		article.PublishedAt = &now
	}
	require.NoError(t, tx.Create(article).Error)
	return article
}

func CreateTestComment(t *testing.T, tx *gorm.DB, articleID, userID, content string, status models.ModerationStatus) *models.Comment {
	comment := &models.Comment{
		ArticleID: articleID,
		UserID:    &userID,
		Content:   content,
		Status:    status,
	}
	require.NoError(t, tx.Create(comment).Error)
	return comment
}

func CreateTestReview(t *testing.T, tx *gorm.DB, productID, userID string, rating int, status models.ModerationStatus) *models.UserReview {
	review := &models.UserReview{
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Title:     "Test review",
		Content:   "Detailed impressions",
		Status:    status,
	}
	require.NoError(t, tx.Create(review).Error)
	return review
}
