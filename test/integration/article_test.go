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

func TestArticleCreateRequiresEditor(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	memberToken, _ := helpers.CreateAndLoginUser(t, ts, tx, "plainmember", "plainmember@example.com", "Str0ngPassw0rd!", models.UserRoleMember)
	category := helpers.CreateTestCategory(t, tx, "Graphics Cards")

	body := map[string]interface{}{
		"title":       "Forbidden draft",
		"type":        "news",
		"category_id": category.ID,
		"content":     "Body",
	}
	res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/articles", memberToken, body)
	assert.Equal(t, http.StatusForbidden, res.Code)
}

func TestArticleSlugCollision(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	editorToken, _ := helpers.CreateAndLoginUser(t, ts, tx, "slugeditor", "slugeditor@example.com", "Str0ngPassw0rd!", models.UserRoleEditor)
	category := helpers.CreateTestCategory(t, tx, "Monitors")

	body := map[string]interface{}{
		"title":       "Best Budget Monitor",
		"type":        "news",
		"category_id": category.ID,
		"content":     "First take",
	}

	slugs := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		res, resBody := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/articles", editorToken, body)
		require.Equal(t, http.StatusCreated, res.Code, resBody)

		var envelope struct {
			Data models.Article `json:"data"`
		}
		require.NoError(t, json.Unmarshal([]byte(resBody), &envelope))
		slugs = append(slugs, envelope.Data.Slug)
	}

	assert.Equal(t, "best-budget-monitor", slugs[0])
	assert.Equal(t, "best-budget-monitor-1", slugs[1])
	assert.Equal(t, "best-budget-monitor-2", slugs[2])
}

func TestArticlePublishStampsOnce(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	editorToken, editor := helpers.CreateAndLoginUser(t, ts, tx, "pubeditor", "pubeditor@example.com", "Str0ngPassw0rd!", models.UserRoleEditor)
	article := helpers.CreateTestArticle(t, tx, editor.ID, "RTX 5080 first look", models.ArticleStatusDraft)

	res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/articles/"+article.Slug+"/publish", editorToken, nil)
	require.Equal(t, http.StatusOK, res.Code, body)

	var published models.Article
	require.NoError(t, tx.First(&published, "id = ?", article.ID).Error)
	require.NotNil(t, published.PublishedAt)
	firstStamp := *published.PublishedAt

	// Archive and publish again: status flips, the stamp does not move.
	res, body = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/articles/"+article.Slug+"/archive", editorToken, nil)
	require.Equal(t, http.StatusOK, res.Code, body)

	res, body = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/articles/"+article.Slug+"/publish", editorToken, nil)
	require.Equal(t, http.StatusOK, res.Code, body)

	require.NoError(t, tx.First(&published, "id = ?", article.ID).Error)
	require.NotNil(t, published.PublishedAt)
	assert.True(t, published.PublishedAt.Equal(firstStamp), "published_at must not change on re-publish")
	assert.Equal(t, models.ArticleStatusPublished, published.Status)
}

func TestDraftArticleHiddenFromPublic(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	editorToken, editor := helpers.CreateAndLoginUser(t, ts, tx, "drafteditor", "drafteditor@example.com", "Str0ngPassw0rd!", models.UserRoleEditor)
	draft := helpers.CreateTestArticle(t, tx, editor.ID, "Unreleased CPU preview", models.ArticleStatusDraft)

	// Anonymous readers get a 404 for drafts.
	res, _ := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/articles/"+draft.Slug, "", nil)
	assert.Equal(t, http.StatusNotFound, res.Code)

	// The editor still sees it.
	res, body := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/articles/"+draft.Slug, editorToken, nil)
	assert.Equal(t, http.StatusOK, res.Code, body)
	assert.Contains(t, body, draft.Title)
}

func TestArticleExtensionMustMatchType(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	editorToken, _ := helpers.CreateAndLoginUser(t, ts, tx, "exteditor", "exteditor@example.com", "Str0ngPassw0rd!", models.UserRoleEditor)
	category := helpers.CreateTestCategory(t, tx, "Laptops")

	// A news article may not carry a review payload.
	body := map[string]interface{}{
		"title":       "News with wrong payload",
		"type":        "news",
		"category_id": category.ID,
		"content":     "Body",
		"extension": map[string]interface{}{
			"review": map[string]interface{}{"overall_score": 8.5},
		},
	}
	res, resBody := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/articles", editorToken, body)
	assert.Equal(t, http.StatusBadRequest, res.Code, resBody)
}

func TestArticleMultipartCreate(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	editorToken, _ := helpers.CreateAndLoginUser(t, ts, tx, "formwriter", "formwriter@example.com", "Str0ngPassw0rd!", models.UserRoleEditor)
	category := helpers.CreateTestCategory(t, tx, "Peripherals")

	res, body := ts.SendMultipartRequest(t, tx, http.MethodPost, "/api/v1/articles", editorToken, map[string][]string{
		"title":       {"Webcam buying notes"},
		"type":        {"news"},
		"category_id": {category.ID},
		"content":     {"Sensor size beats megapixels."},
		"og_image":    {"/media/articles/og/webcam.jpg"},
		"tags":        {"webcams, streaming"},
	})
	require.Equal(t, http.StatusCreated, res.Code, body)

	var created struct {
		Data models.Article `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	assert.Equal(t, "webcam-buying-notes", created.Data.Slug)
	assert.Equal(t, "/media/articles/og/webcam.jpg", created.Data.OgImage)

	var tagCount int64
	require.NoError(t, tx.Table("article_tags").Where("article_id = ?", created.Data.ID).Count(&tagCount).Error)
	assert.EqualValues(t, 2, tagCount)
}
