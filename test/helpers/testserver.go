package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"hwreview_backend/internal/app"
	"hwreview_backend/internal/config"
	"hwreview_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// TestServer runs the full application stack against a test database.
// Requests are served in-process so a per-test transaction placed into
// the request context reaches DBMiddleware and every table write rolls
// back at the end of the test.
type TestServer struct {
	Router *gin.Engine
	DB     *gorm.DB
}

// NewTestServer connects to TEST_DATABASE_URL and builds the router.
// Tests calling it are skipped when the variable is not set.
func NewTestServer(t *testing.T) *TestServer {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	os.Setenv("DATABASE_URL", dsn)
	os.Setenv("SERVER_ENV", "test")
	if os.Getenv("JWT_SECRET") == "" {
		os.Setenv("JWT_SECRET", "integration-test-secret")
	}

	gin.SetMode(gin.TestMode)

	config.LoadConfig()
	cfg := config.GetConfig()

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := app.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	router, _ := app.SetupApp(cfg, db)

	return &TestServer{Router: router, DB: db}
}

func (ts *TestServer) Close() {
	sqlDB, err := ts.DB.DB()
	if err == nil {
		sqlDB.Close()
	}
}

func (ts *TestServer) BeginTransaction(t *testing.T) *gorm.DB {
	tx := ts.DB.Begin()
	if tx.Error != nil {
		t.Fatalf("failed to begin transaction: %v", tx.Error)
	}
	return tx
}

func (ts *TestServer) RollbackTransaction(t *testing.T, tx *gorm.DB) {
	if err := tx.Rollback().Error; err != nil && err != gorm.ErrInvalidTransaction {
		t.Logf("rollback failed: %v", err)
	}
}

// SendRequest serves a JSON request through the router. When tx is not
// nil it is injected into the request context, making the handler chain
// operate inside the test transaction.
func (ts *TestServer) SendRequest(t *testing.T, tx *gorm.DB, method, path, token string, body interface{}) (*httptest.ResponseRecorder, string) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, path, reqBody)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return ts.serve(t, tx, req, token)
}

// SendMultipartRequest serves a multipart/form-data request built from
// plain string fields, for handlers with form-based admin clients.
func (ts *TestServer) SendMultipartRequest(t *testing.T, tx *gorm.DB, method, path, token string, fields map[string][]string) (*httptest.ResponseRecorder, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, values := range fields {
		for _, value := range values {
			if err := writer.WriteField(key, value); err != nil {
				t.Fatalf("failed to write form field %s: %v", key, err)
			}
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req, err := http.NewRequest(method, path, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return ts.serve(t, tx, req, token)
}

func (ts *TestServer) serve(t *testing.T, tx *gorm.DB, req *http.Request, token string) (*httptest.ResponseRecorder, string) {
	// ServeHTTP skips the network layer, so stamp a client address for
	// handlers keyed on c.ClientIP().
	req.RemoteAddr = "203.0.113.7:52100"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if tx != nil {
		ctx := context.WithValue(req.Context(), contextkeys.DBContextKey, tx)
		req = req.WithContext(ctx)
	}

	rec := httptest.NewRecorder()
	ts.Router.ServeHTTP(rec, req)

	return rec, rec.Body.String()
}
