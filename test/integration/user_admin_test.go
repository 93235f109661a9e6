package integration_test

import (
	"net/http"
	"testing"

	"hwreview_backend/internal/models"
	"hwreview_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminCannotDeleteSuperAdmin(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	adminToken, _ := helpers.CreateAndLoginUser(t, ts, tx, "plainadmin", "plainadmin@example.com", "Str0ngPassw0rd!", models.UserRoleAdmin)
	target := &models.User{Username: "rootuser", Email: "rootuser@example.com", PasswordHash: "Str0ngPassw0rd!", Role: models.UserRoleSuperAdmin}
	helpers.CreateUser(t, tx, target)

	res, _ := ts.SendRequest(t, tx, http.MethodDelete, "/api/v1/admin/users/"+target.ID, adminToken, nil)
	assert.Equal(t, http.StatusForbidden, res.Code)

	var count int64
	require.NoError(t, tx.Model(&models.User{}).Where("id = ?", target.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSuperAdminCanDeleteSuperAdmin(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	superToken, _ := helpers.CreateAndLoginUser(t, ts, tx, "rootactor", "rootactor@example.com", "Str0ngPassw0rd!", models.UserRoleSuperAdmin)
	target := &models.User{Username: "rootpeer", Email: "rootpeer@example.com", PasswordHash: "Str0ngPassw0rd!", Role: models.UserRoleSuperAdmin}
	helpers.CreateUser(t, tx, target)

	res, body := ts.SendRequest(t, tx, http.MethodDelete, "/api/v1/admin/users/"+target.ID, superToken, nil)
	require.Equal(t, http.StatusOK, res.Code, body)

	var count int64
	require.NoError(t, tx.Model(&models.User{}).Where("id = ?", target.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
