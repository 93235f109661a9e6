package integration_test

import (
	"net/http"
	"testing"
	"time"

	"hwreview_backend/internal/models"
	"hwreview_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterThenLoginUnverified(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	registerBody := map[string]interface{}{
		"email":    "newcomer@example.com",
		"username": "newcomer",
		"password": "Str0ngPassw0rd!",
	}
	regRes, regBody := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/register", "", registerBody)
	assert.Equal(t, http.StatusCreated, regRes.Code, regBody)
	assert.Contains(t, regBody, "newcomer@example.com")

	// A fresh account has not verified its email yet; login is refused.
	loginBody := map[string]interface{}{
		"email":    "newcomer@example.com",
		"password": "Str0ngPassw0rd!",
	}
	logRes, logBody := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	assert.Equal(t, http.StatusForbidden, logRes.Code, logBody)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	helpers.CreateAndLoginUser(t, ts, tx, "taken", "taken@example.com", "Str0ngPassw0rd!", models.UserRoleMember)

	registerBody := map[string]interface{}{
		"email":    "taken@example.com",
		"username": "someoneelse",
		"password": "Str0ngPassw0rd!",
	}
	res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/register", "", registerBody)
	assert.Equal(t, http.StatusConflict, res.Code, body)
}

func TestVerifyEmailFlow(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	registerBody := map[string]interface{}{
		"email":    "pending@example.com",
		"username": "pending",
		"password": "Str0ngPassw0rd!",
	}
	res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/register", "", registerBody)
	require.Equal(t, http.StatusCreated, res.Code, body)

	var user models.User
	require.NoError(t, tx.Where("email = ?", "pending@example.com").First(&user).Error)
	require.NotEmpty(t, user.VerificationToken)

	verifyBody := map[string]interface{}{
		"email": "pending@example.com",
		"token": user.VerificationToken,
	}
	vRes, vBody := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/verify-email", "", verifyBody)
	assert.Equal(t, http.StatusOK, vRes.Code, vBody)

	loginBody := map[string]interface{}{
		"email":    "pending@example.com",
		"password": "Str0ngPassw0rd!",
	}
	lRes, lBody := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	assert.Equal(t, http.StatusOK, lRes.Code, lBody)
	assert.Contains(t, lBody, "access_token")
}

func TestPasswordResetFlow(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, user := helpers.CreateAndLoginUser(t, ts, tx, "forgetful", "forgetful@example.com", "OldPassw0rd!", models.UserRoleMember)

	reqRes, reqBody := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/password-reset", "",
		map[string]interface{}{"email": user.Email})
	require.Equal(t, http.StatusOK, reqRes.Code, reqBody)

	var code models.PasswordResetCode
	require.NoError(t, tx.Where("user_id = ? AND used = false", user.ID).
		Order("created_at DESC").First(&code).Error)
	require.Len(t, code.Code, 6)
	assert.True(t, code.ExpiresAt.After(time.Now()))

	confirmBody := map[string]interface{}{
		"email":        user.Email,
		"code":         code.Code,
		"new_password": "NewPassw0rd!",
	}
	cRes, cBody := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/password-reset/confirm", "", confirmBody)
	assert.Equal(t, http.StatusOK, cRes.Code, cBody)

	// Old password is dead, new one works.
	oldRes, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/login", "",
		map[string]interface{}{"email": user.Email, "password": "OldPassw0rd!"})
	assert.Equal(t, http.StatusUnauthorized, oldRes.Code)

	newRes, newBody := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/login", "",
		map[string]interface{}{"email": user.Email, "password": "NewPassw0rd!"})
	assert.Equal(t, http.StatusOK, newRes.Code, newBody)

	// The code is single-use.
	againRes, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/password-reset/confirm", "", confirmBody)
	assert.Equal(t, http.StatusUnauthorized, againRes.Code)
}

func TestChangePasswordRequiresAuth(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/change-password", "",
		map[string]interface{}{"current_password": "a", "new_password": "Str0ngPassw0rd!"})
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}
