package integration_test

import (
	"os"
	"sync"
	"testing"

	"hwreview_backend/test/helpers"
)

var (
	globalTestServer *helpers.TestServer
	serverOnce       sync.Once
)

// GetTestServer builds the shared application stack on first use.
// Individual tests run inside their own transactions, so the server
// can be shared safely across parallel tests.
func GetTestServer(t *testing.T) *helpers.TestServer {
	serverOnce.Do(func() {
		globalTestServer = helpers.NewTestServer(t)
	})
	if globalTestServer == nil {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}
	return globalTestServer
}

func TestMain(m *testing.M) {
	code := m.Run()

	if globalTestServer != nil {
		globalTestServer.Close()
	}

	os.Exit(code)
}
