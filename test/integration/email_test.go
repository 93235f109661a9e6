package integration_test

import (
	"net/http"
	"testing"

	"hwreview_backend/internal/models"
	"hwreview_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailTestRequiresAdmin(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	memberToken, _ := helpers.CreateAndLoginUser(t, ts, tx, "mailmember", "mailmember@example.com", "Str0ngPassw0rd!", models.UserRoleMember)

	res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/admin/email/test", memberToken,
		map[string]interface{}{"to": "smtp-check@example.com"})
	assert.Equal(t, http.StatusForbidden, res.Code)
}

func TestEmailTestSendsToRecipient(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	adminToken, _ := helpers.CreateAndLoginUser(t, ts, tx, "mailadmin", "mailadmin@example.com", "Str0ngPassw0rd!", models.UserRoleAdmin)

	// The recipient address is mandatory.
	res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/admin/email/test", adminToken,
		map[string]interface{}{"subject": "SMTP check"})
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/admin/email/test", adminToken,
		map[string]interface{}{"to": "inbox@example.com", "subject": "SMTP check", "message": "Hello from the test bench"})
	require.Equal(t, http.StatusOK, res.Code, body)
	assert.Contains(t, body, "Test email sent")
}
