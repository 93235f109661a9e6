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

func TestPublicSettingsExposeDefaults(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, body := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/settings", "", nil)
	require.Equal(t, http.StatusOK, res.Code, body)

	var envelope struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &envelope))
	assert.Equal(t, "Hardware Review", envelope.Data["site_name"])
}

func TestBulkUpdateOverridesAndKeepsDefaults(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	adminToken, _ := helpers.CreateAndLoginUser(t, ts, tx, "siteadmin", "siteadmin@example.com", "Str0ngPassw0rd!", models.UserRoleAdmin)

	res, body := ts.SendRequest(t, tx, http.MethodPut, "/api/v1/admin/settings", adminToken,
		map[string]interface{}{"settings": map[string]string{
			"site_name":     "Overclocked Weekly",
			"custom_footer": "custom value",
		}})
	require.Equal(t, http.StatusOK, res.Code, body)

	// Override lands, untouched defaults survive the merge.
	res, body = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/settings", "", nil)
	require.Equal(t, http.StatusOK, res.Code, body)

	var envelope struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &envelope))
	assert.Equal(t, "Overclocked Weekly", envelope.Data["site_name"])
	assert.Equal(t, "#3b82f6", envelope.Data["primary_color"])
}

func TestSettingsUpdateRequiresAdmin(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	editorToken, _ := helpers.CreateAndLoginUser(t, ts, tx, "settingseditor", "settingseditor@example.com", "Str0ngPassw0rd!", models.UserRoleEditor)

	res, _ := ts.SendRequest(t, tx, http.MethodPut, "/api/v1/admin/settings", editorToken,
		map[string]interface{}{"settings": map[string]string{"site_name": "nope"}})
	assert.Equal(t, http.StatusForbidden, res.Code)
}
