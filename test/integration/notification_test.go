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

type notificationListEnvelope struct {
	Data struct {
		Items       []models.Notification `json:"items"`
		Total       int64                 `json:"total"`
		UnreadCount int64                 `json:"unread_count"`
	} `json:"data"`
}

func TestCommentReplyNotifiesParentAuthor(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	parentToken, parentAuthor := helpers.CreateAndLoginUser(t, ts, tx, "threadstarter", "threadstarter@example.com", "Str0ngPassw0rd!", models.UserRoleMember)
	replierToken, _ := helpers.CreateAndLoginUser(t, ts, tx, "replier", "replier@example.com", "Str0ngPassw0rd!", models.UserRoleMember)
	article := helpers.CreateTestArticle(t, tx, parentAuthor.ID, "Monitor panel explainer", models.ArticleStatusPublished)
	parent := helpers.CreateTestComment(t, tx, article.ID, parentAuthor.ID, "OLED or bust", models.ModerationStatusApproved)

	res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/comments", replierToken,
		map[string]interface{}{"article_id": article.ID, "parent_id": parent.ID, "content": "Mini-LED disagrees"})
	require.Equal(t, http.StatusCreated, res.Code, body)

	res, body = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/notifications", parentToken, nil)
	require.Equal(t, http.StatusOK, res.Code, body)

	var listed notificationListEnvelope
	require.NoError(t, json.Unmarshal([]byte(body), &listed))
	require.Len(t, listed.Data.Items, 1)
	assert.EqualValues(t, 1, listed.Data.UnreadCount)

	notification := listed.Data.Items[0]
	assert.Equal(t, models.NotificationTypeCommentReply, notification.Type)
	assert.Nil(t, notification.ReadAt)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(notification.Payload, &payload))
	assert.Equal(t, parent.ID, payload["parent_comment_id"])
	assert.Equal(t, article.ID, payload["article_id"])

	res, body = ts.SendRequest(t, tx, http.MethodPut, "/api/v1/notifications/"+notification.ID+"/read", parentToken, nil)
	require.Equal(t, http.StatusOK, res.Code, body)

	res, body = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/notifications?unread=true", parentToken, nil)
	require.Equal(t, http.StatusOK, res.Code, body)
	require.NoError(t, json.Unmarshal([]byte(body), &listed))
	assert.Empty(t, listed.Data.Items)
	assert.EqualValues(t, 0, listed.Data.UnreadCount)
}

func TestSelfReplyCreatesNoNotification(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, author := helpers.CreateAndLoginUser(t, ts, tx, "monologue", "monologue@example.com", "Str0ngPassw0rd!", models.UserRoleMember)
	article := helpers.CreateTestArticle(t, tx, author.ID, "NAS build log", models.ArticleStatusPublished)
	parent := helpers.CreateTestComment(t, tx, article.ID, author.ID, "Part one", models.ModerationStatusApproved)

	res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/comments", token,
		map[string]interface{}{"article_id": article.ID, "parent_id": parent.ID, "content": "Part two"})
	require.Equal(t, http.StatusCreated, res.Code, body)

	var count int64
	require.NoError(t, tx.Model(&models.Notification{}).Where("user_id = ?", author.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestReplyToGuestCommentCreatesNoNotification(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	replierToken, replier := helpers.CreateAndLoginUser(t, ts, tx, "guestreplier", "guestreplier@example.com", "Str0ngPassw0rd!", models.UserRoleMember)
	article := helpers.CreateTestArticle(t, tx, replier.ID, "PSU efficiency myths", models.ArticleStatusPublished)

	res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/comments", "",
		map[string]interface{}{"article_id": article.ID, "content": "80 Plus is marketing", "author_name": "Sceptic Sam"})
	require.Equal(t, http.StatusCreated, res.Code, body)

	var guestComment struct {
		Data models.Comment `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &guestComment))

	res, body = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/comments", replierToken,
		map[string]interface{}{"article_id": article.ID, "parent_id": guestComment.Data.ID, "content": "It is not"})
	require.Equal(t, http.StatusCreated, res.Code, body)

	var count int64
	require.NoError(t, tx.Model(&models.Notification{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestPublishNotifiesAuthor(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	editorToken, editor := helpers.CreateAndLoginUser(t, ts, tx, "publishinged", "publishinged@example.com", "Str0ngPassw0rd!", models.UserRoleEditor)
	draft := helpers.CreateTestArticle(t, tx, editor.ID, "Chipset roadmap", models.ArticleStatusDraft)

	res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/articles/"+draft.ID+"/publish", editorToken, nil)
	require.Equal(t, http.StatusOK, res.Code, body)

	res, body = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/notifications", editorToken, nil)
	require.Equal(t, http.StatusOK, res.Code, body)

	var listed notificationListEnvelope
	require.NoError(t, json.Unmarshal([]byte(body), &listed))
	require.Len(t, listed.Data.Items, 1)
	assert.Equal(t, models.NotificationTypeArticlePublished, listed.Data.Items[0].Type)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(listed.Data.Items[0].Payload, &payload))
	assert.Equal(t, draft.ID, payload["article_id"])
	assert.Equal(t, draft.Slug, payload["slug"])

	// Re-publishing after archive must not notify again.
	res, body = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/articles/"+draft.ID+"/archive", editorToken, nil)
	require.Equal(t, http.StatusOK, res.Code, body)
	res, body = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/articles/"+draft.ID+"/publish", editorToken, nil)
	require.Equal(t, http.StatusOK, res.Code, body)

	var count int64
	require.NoError(t, tx.Model(&models.Notification{}).Where("user_id = ?", editor.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	res, body = ts.SendRequest(t, tx, http.MethodPut, "/api/v1/notifications/read-all", editorToken, nil)
	require.Equal(t, http.StatusOK, res.Code, body)
	res, body = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/notifications", editorToken, nil)
	require.Equal(t, http.StatusOK, res.Code, body)
	require.NoError(t, json.Unmarshal([]byte(body), &listed))
	assert.EqualValues(t, 0, listed.Data.UnreadCount)
}
