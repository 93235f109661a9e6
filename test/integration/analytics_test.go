package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"hwreview_backend/internal/models"
	"hwreview_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackViewAnonymous(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	author := &models.User{Username: "viewauthor", Email: "viewauthor@example.com", PasswordHash: "Str0ngPassw0rd!", Role: models.UserRoleEditor}
	helpers.CreateUser(t, tx, author)
	article := helpers.CreateTestArticle(t, tx, author.ID, "Case fan showdown", models.ArticleStatusPublished)

	res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/track/view", "",
		map[string]interface{}{"content_type": "article", "object_id": article.ID})
	require.Equal(t, http.StatusOK, res.Code, body)

	var count int64
	require.NoError(t, tx.Model(&models.ViewEvent{}).
		Where("content_type = ? AND object_id = ?", "article", article.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// Article view counter is bumped alongside the event.
	var updated models.Article
	require.NoError(t, tx.First(&updated, "id = ?", article.ID).Error)
	assert.EqualValues(t, 1, updated.ViewCount)
}

func TestTrackClickReturnsMerchantURL(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	product := helpers.CreateTestProduct(t, tx, "ASUS", "ROG Swift", nil)
	link := &models.AffiliateLink{
		ProductID:    product.ID,
		MerchantName: "Newegg",
		URL:          "https://example.com/rog-swift",
		IsActive:     true,
	}
	require.NoError(t, tx.Create(link).Error)

	res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/track/click", "",
		map[string]interface{}{"affiliate_link_id": link.ID})
	require.Equal(t, http.StatusOK, res.Code, body)
	assert.Contains(t, body, "https://example.com/rog-swift")

	var count int64
	require.NoError(t, tx.Model(&models.ClickEvent{}).
		Where("affiliate_link_id = ?", link.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestMonthlyRollup(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	adminToken, admin := helpers.CreateAndLoginUser(t, ts, tx, "statadmin", "statadmin@example.com", "Str0ngPassw0rd!", models.UserRoleAdmin)
	article := helpers.CreateTestArticle(t, tx, admin.ID, "Rolled up piece", models.ArticleStatusPublished)

	for i := 0; i < 3; i++ {
		res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/track/view", "",
			map[string]interface{}{"content_type": "article", "object_id": article.ID})
		require.Equal(t, http.StatusOK, res.Code, body)
	}

	now := time.Now().UTC()
	res, body := ts.SendRequest(t, tx, http.MethodPost,
		fmt.Sprintf("/api/v1/admin/analytics/rollup?year=%d&month=%d", now.Year(), int(now.Month())),
		adminToken, nil)
	require.Equal(t, http.StatusOK, res.Code, body)

	var envelope struct {
		Data models.MonthlyAnalytics `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &envelope))
	assert.Equal(t, now.Year(), envelope.Data.Year)
	assert.Equal(t, int(now.Month()), envelope.Data.Month)
	assert.GreaterOrEqual(t, envelope.Data.ArticleViews, int64(3))

	// The rollup is fetchable afterwards.
	res, body = ts.SendRequest(t, tx, http.MethodGet,
		fmt.Sprintf("/api/v1/admin/analytics/monthly/%d/%d", now.Year(), int(now.Month())),
		adminToken, nil)
	assert.Equal(t, http.StatusOK, res.Code, body)
}

func TestDashboardRequiresAdmin(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	editorToken, _ := helpers.CreateAndLoginUser(t, ts, tx, "dashed", "dashed@example.com", "Str0ngPassw0rd!", models.UserRoleEditor)

	res, _ := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/admin/analytics/dashboard", editorToken, nil)
	assert.Equal(t, http.StatusForbidden, res.Code)

	adminToken, _ := helpers.CreateAndLoginUser(t, ts, tx, "dashadmin", "dashadmin@example.com", "Str0ngPassw0rd!", models.UserRoleAdmin)
	res, body := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/admin/analytics/dashboard", adminToken, nil)
	assert.Equal(t, http.StatusOK, res.Code, body)
	assert.Contains(t, body, "overview")
}
