package app_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gudang/internal/app"
	"gudang/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func testConfig(driver, dsn, prefix string) *config.Config {
	return &config.Config{
		Env:            "test",
		AppPort:        ":0",
		APIPrefix:      prefix,
		DatabaseDriver: driver,
		DatabaseDSN:    dsn,
		JWTSecret:      "a_secret_of_at_least_thirty_two_bytes",
		TokenTTL:       time.Hour,
		BcryptCost:     bcrypt.MinCost,
		PurgeSchedule:  "@every 1h",
	}
}

func newServer(t *testing.T, cfg *config.Config) *fiber.App {
	t.Helper()
	c, err := app.NewContainer(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	require.NoError(t, c.Migrate())
	return app.NewServer(c)
}

func send(t *testing.T, srv *fiber.App, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestServer_Health(t *testing.T) {
	srv := newServer(t, testConfig("memory", "", "/api"))

	status, body := send(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])
}

func TestServer_RoutesUnderPrefix(t *testing.T) {
	srv := newServer(t, testConfig("memory", "", "/api"))

	status, body := send(t, srv, http.MethodPost, "/api/register", map[string]string{
		"name":                  "Alice",
		"email":                 "alice@example.com",
		"password":              "secret",
		"password_confirmation": "secret",
	})
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["token"])

	status, body = send(t, srv, http.MethodPost, "/register", map[string]string{})
	assert.Equal(t, http.StatusNotFound, status)
	assert.NotEmpty(t, body["message"])
}

func TestServer_SQLiteDriver(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	srv := newServer(t, testConfig("sqlite", dsn, ""))

	status, _ := send(t, srv, http.MethodPost, "/register", map[string]string{
		"name":                  "Alice",
		"email":                 "alice@example.com",
		"password":              "secret",
		"password_confirmation": "secret",
	})
	require.Equal(t, http.StatusOK, status)

	status, body := send(t, srv, http.MethodPost, "/login", map[string]string{
		"email":    "alice@example.com",
		"password": "secret",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["token"])
}

func TestNewContainer_BadDatabase(t *testing.T) {
	_, err := app.NewContainer(testConfig("oracle", "dsn", ""), zap.NewNop())
	assert.Error(t, err)
}
