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

func TestCommentModerationFlow(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	adminToken, admin := helpers.CreateAndLoginUser(t, ts, tx, "modadmin", "modadmin@example.com", "Str0ngPassw0rd!", models.UserRoleAdmin)
	memberToken, _ := helpers.CreateAndLoginUser(t, ts, tx, "talker", "talker@example.com", "Str0ngPassw0rd!", models.UserRoleMember)
	article := helpers.CreateTestArticle(t, tx, admin.ID, "SSD roundup", models.ArticleStatusPublished)

	res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/comments", memberToken,
		map[string]interface{}{"article_id": article.ID, "content": "Great roundup!"})
	require.Equal(t, http.StatusCreated, res.Code, body)

	var created struct {
		Data models.Comment `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	assert.Equal(t, models.ModerationStatusPending, created.Data.Status)

	// Pending comments are invisible on the public listing.
	res, body = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/articles/"+article.Slug+"/comments", "", nil)
	require.Equal(t, http.StatusOK, res.Code, body)
	assert.NotContains(t, body, "Great roundup!")

	res, body = ts.SendRequest(t, tx, http.MethodPut, "/api/v1/admin/comments/"+created.Data.ID+"/moderate", adminToken,
		map[string]interface{}{"status": "approved"})
	require.Equal(t, http.StatusOK, res.Code, body)

	res, body = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/articles/"+article.Slug+"/comments", "", nil)
	require.Equal(t, http.StatusOK, res.Code, body)
	assert.Contains(t, body, "Great roundup!")
}

func TestCommentOnDraftRejected(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	memberToken, member := helpers.CreateAndLoginUser(t, ts, tx, "earlybird", "earlybird@example.com", "Str0ngPassw0rd!", models.UserRoleMember)
	draft := helpers.CreateTestArticle(t, tx, member.ID, "Unpublished piece", models.ArticleStatusDraft)

	res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/comments", memberToken,
		map[string]interface{}{"article_id": draft.ID, "content": "first!"})
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestHelpfulVoteToggle(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, voter := helpers.CreateAndLoginUser(t, ts, tx, "voter", "voter@example.com", "Str0ngPassw0rd!", models.UserRoleMember)
	article := helpers.CreateTestArticle(t, tx, voter.ID, "PSU tier list", models.ArticleStatusPublished)
	comment := helpers.CreateTestComment(t, tx, article.ID, voter.ID, "Very useful", models.ModerationStatusApproved)

	path := "/api/v1/comments/" + comment.ID + "/helpful"

	res, body := ts.SendRequest(t, tx, http.MethodPost, path, token, nil)
	require.Equal(t, http.StatusOK, res.Code, body)

	var result struct {
		Data struct {
			Action       string `json:"action"`
			HelpfulCount int64  `json:"helpful_count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &result))
	assert.Equal(t, "added", result.Data.Action)
	assert.EqualValues(t, 1, result.Data.HelpfulCount)

	// Second vote from the same user removes the first.
	res, body = ts.SendRequest(t, tx, http.MethodPost, path, token, nil)
	require.Equal(t, http.StatusOK, res.Code, body)
	require.NoError(t, json.Unmarshal([]byte(body), &result))
	assert.Equal(t, "removed", result.Data.Action)
	assert.EqualValues(t, 0, result.Data.HelpfulCount)
}

func TestReviewOncePerProduct(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateAndLoginUser(t, ts, tx, "onereview", "onereview@example.com", "Str0ngPassw0rd!", models.UserRoleMember)
	product := helpers.CreateTestProduct(t, tx, "Logitech", "MX Master 4", nil)

	body := map[string]interface{}{
		"product_id": product.ID,
		"rating":     5,
		"title":      "Superb mouse",
		"content":    "Worth every penny",
	}

	res, resBody := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/reviews", token, body)
	require.Equal(t, http.StatusCreated, res.Code, resBody)

	var created struct {
		Data models.UserReview `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(resBody), &created))
	assert.Equal(t, models.ModerationStatusPending, created.Data.Status)

	res, _ = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/reviews", token, body)
	assert.Equal(t, http.StatusConflict, res.Code)
}

func TestReviewModerationGatesPublicListing(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	adminToken, _ := helpers.CreateAndLoginUser(t, ts, tx, "reviewadmin", "reviewadmin@example.com", "Str0ngPassw0rd!", models.UserRoleAdmin)
	reviewer := &models.User{Username: "quietfan", Email: "quietfan@example.com", PasswordHash: "Str0ngPassw0rd!"}
	helpers.CreateUser(t, tx, reviewer)
	product := helpers.CreateTestProduct(t, tx, "Samsung", "990 Pro", nil)

	review := helpers.CreateTestReview(t, tx, product.ID, reviewer.ID, 4, models.ModerationStatusPending)

	res, body := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/products/"+product.Slug+"/reviews", "", nil)
	require.Equal(t, http.StatusOK, res.Code, body)
	assert.NotContains(t, body, review.ID)

	res, body = ts.SendRequest(t, tx, http.MethodPut, "/api/v1/admin/reviews/"+review.ID+"/moderate", adminToken,
		map[string]interface{}{"status": "approved"})
	require.Equal(t, http.StatusOK, res.Code, body)

	res, body = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/products/"+product.Slug+"/reviews", "", nil)
	require.Equal(t, http.StatusOK, res.Code, body)
	assert.Contains(t, body, review.ID)
}

func TestAnonymousCommentRequiresName(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, author := helpers.CreateAndLoginUser(t, ts, tx, "colauthor", "colauthor@example.com", "Str0ngPassw0rd!", models.UserRoleEditor)
	article := helpers.CreateTestArticle(t, tx, author.ID, "Case fan shootout", models.ArticleStatusPublished)

	// No token and no author_name: the comment has no identity.
	res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/comments", "",
		map[string]interface{}{"article_id": article.ID, "content": "drive-by"})
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/comments", "",
		map[string]interface{}{"article_id": article.ID, "content": "Noctua still wins", "author_name": "Guest Greta", "author_email": "greta@example.com"})
	require.Equal(t, http.StatusCreated, res.Code, body)

	var created struct {
		Data models.Comment `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	assert.Nil(t, created.Data.UserID)
	assert.Equal(t, "Guest Greta", created.Data.AuthorName)

	// The guest's address is stored for vote identity, never exposed.
	var stored models.Comment
	require.NoError(t, tx.First(&stored, "id = ?", created.Data.ID).Error)
	assert.NotEmpty(t, stored.IPAddress)
	assert.NotContains(t, body, stored.IPAddress)
}

func TestAnonymousCommentIgnoresGuestFieldsWhenAuthenticated(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, member := helpers.CreateAndLoginUser(t, ts, tx, "signedin", "signedin@example.com", "Str0ngPassw0rd!", models.UserRoleMember)
	article := helpers.CreateTestArticle(t, tx, member.ID, "AIO cooler picks", models.ArticleStatusPublished)

	res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/comments", token,
		map[string]interface{}{"article_id": article.ID, "content": "Nice picks", "author_name": "Impostor"})
	require.Equal(t, http.StatusCreated, res.Code, body)

	var created struct {
		Data models.Comment `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	require.NotNil(t, created.Data.UserID)
	assert.Equal(t, member.ID, *created.Data.UserID)
	assert.Empty(t, created.Data.AuthorName)
}

func TestHelpfulVoteAnonymousKeyedByIP(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, member := helpers.CreateAndLoginUser(t, ts, tx, "ipvoter", "ipvoter@example.com", "Str0ngPassw0rd!", models.UserRoleMember)
	article := helpers.CreateTestArticle(t, tx, member.ID, "Keyboard switch guide", models.ArticleStatusPublished)
	comment := helpers.CreateTestComment(t, tx, article.ID, member.ID, "Tactile all the way", models.ModerationStatusApproved)

	path := "/api/v1/comments/" + comment.ID + "/helpful"

	var result struct {
		Data struct {
			Action       string `json:"action"`
			HelpfulCount int64  `json:"helpful_count"`
		} `json:"data"`
	}

	// An account vote and an anonymous vote are distinct identities,
	// even from the same address.
	res, body := ts.SendRequest(t, tx, http.MethodPost, path, token, nil)
	require.Equal(t, http.StatusOK, res.Code, body)

	res, body = ts.SendRequest(t, tx, http.MethodPost, path, "", nil)
	require.Equal(t, http.StatusOK, res.Code, body)
	require.NoError(t, json.Unmarshal([]byte(body), &result))
	assert.Equal(t, "added", result.Data.Action)
	assert.EqualValues(t, 2, result.Data.HelpfulCount)

	// A repeat anonymous vote from the same address removes only its own.
	res, body = ts.SendRequest(t, tx, http.MethodPost, path, "", nil)
	require.Equal(t, http.StatusOK, res.Code, body)
	require.NoError(t, json.Unmarshal([]byte(body), &result))
	assert.Equal(t, "removed", result.Data.Action)
	assert.EqualValues(t, 1, result.Data.HelpfulCount)
}
