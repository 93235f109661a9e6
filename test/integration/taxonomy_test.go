package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"hwreview_backend/internal/models"
	"hwreview_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryCRUD(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	adminToken, _ := helpers.CreateAndLoginUser(t, ts, tx, "taxadmin", "taxadmin@example.com", "Str0ngPassw0rd!", models.UserRoleAdmin)

	res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/categories", adminToken,
		map[string]interface{}{"name": "Cooling Solutions"})
	require.Equal(t, http.StatusCreated, res.Code, body)

	var created struct {
		Data models.Category `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	assert.Equal(t, "cooling-solutions", created.Data.Slug)

	// Fetch by slug works the same as by id.
	res, body = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/categories/cooling-solutions", "", nil)
	require.Equal(t, http.StatusOK, res.Code, body)

	res, body = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/categories/"+created.Data.ID, "", nil)
	require.Equal(t, http.StatusOK, res.Code, body)

	res, body = ts.SendRequest(t, tx, http.MethodPut, "/api/v1/categories/"+created.Data.ID, adminToken,
		map[string]interface{}{"description": "AIOs, air coolers and fans"})
	require.Equal(t, http.StatusOK, res.Code, body)
	assert.Contains(t, body, "AIOs")

	res, _ = ts.SendRequest(t, tx, http.MethodDelete, "/api/v1/categories/"+created.Data.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, res.Code)
}

func TestCategoryDeleteBlockedByChildren(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	adminToken, _ := helpers.CreateAndLoginUser(t, ts, tx, "treeadmin", "treeadmin@example.com", "Str0ngPassw0rd!", models.UserRoleAdmin)

	parent := helpers.CreateTestCategory(t, tx, "Peripherals")
	child := &models.Category{Name: "Keyboards", Slug: "keyboards", ParentID: &parent.ID, IsActive: true}
	require.NoError(t, tx.Create(child).Error)

	res, _ := ts.SendRequest(t, tx, http.MethodDelete, "/api/v1/categories/"+parent.ID, adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestTagCreationRequiresAdmin(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	memberToken, _ := helpers.CreateAndLoginUser(t, ts, tx, "tagmember", "tagmember@example.com", "Str0ngPassw0rd!", models.UserRoleMember)

	res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/tags", memberToken,
		map[string]interface{}{"name": "RGB"})
	assert.Equal(t, http.StatusForbidden, res.Code)
}

func TestSearchBuckets(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	author := &models.User{Username: "searchauthor", Email: "searchauthor@example.com", PasswordHash: "Str0ngPassw0rd!", Role: models.UserRoleEditor}
	helpers.CreateUser(t, tx, author)

	helpers.CreateTestCategory(t, tx, "Mechanical Keyboards")
	helpers.CreateTestProduct(t, tx, "Keychron", "Q1 Pro", nil)
	helpers.CreateTestArticle(t, tx, author.ID, "Keychron Q1 Pro review", models.ArticleStatusPublished)
	// Drafts must not leak through search.
	helpers.CreateTestArticle(t, tx, author.ID, "Keychron upcoming drafts", models.ArticleStatusDraft)

	res, body := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/search?q=keychron", "", nil)
	require.Equal(t, http.StatusOK, res.Code, body)
	assert.Contains(t, body, "Keychron Q1 Pro review")
	assert.Contains(t, body, "Q1 Pro")
	assert.NotContains(t, body, "upcoming drafts")

	// Queries shorter than two characters are rejected.
	res, _ = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/search?q=k", "", nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestNewsletterSubscribeIsIdempotent(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	body := map[string]interface{}{"email": "Reader@Example.com"}

	res, resBody := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/newsletter/subscribe", "", body)
	require.Equal(t, http.StatusCreated, res.Code, resBody)

	// Re-subscribing reactivates rather than erroring.
	res, resBody = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/newsletter/subscribe", "", body)
	require.Equal(t, http.StatusCreated, res.Code, resBody)

	var count int64
	require.NoError(t, tx.Model(&models.NewsletterSubscription{}).
		Where("email = ?", "reader@example.com").Count(&count).Error)
	assert.EqualValues(t, 1, count)

	res, _ = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/newsletter/unsubscribe", "", body)
	assert.Equal(t, http.StatusOK, res.Code)

	var sub models.NewsletterSubscription
	require.NoError(t, tx.Where("email = ?", "reader@example.com").First(&sub).Error)
	assert.False(t, sub.IsActive)
}
