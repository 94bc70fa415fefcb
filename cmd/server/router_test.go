package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck-api/internal/config"
	"github.com/taskdeck/taskdeck-api/internal/mocks"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

func newTestApplication() *application {
	return &application{
		config: &config.Config{
			Server: config.ServerConfig{Port: 8000, LogLevel: "info"},
		},
		logger:           slog.Default(),
		userStore:        &mocks.MockUserStore{},
		taskStore:        &mocks.MockTaskStore{Page: &store.TaskPage{}},
		jwtService:       &mocks.MockJWTService{Token: "access-token", RefreshToken: "refresh-token"},
		passwordVerifier: &mocks.MockPasswordVerifier{ShouldSucceed: true},
		blacklist:        auth.NewMemoryBlacklist(),
		registry:         prometheus.NewRegistry(),
	}
}

func TestRouterHealth(t *testing.T) {
	t.Parallel()

	router := newTestApplication().setupRouter()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())
}

func TestRouterMetrics(t *testing.T) {
	t.Parallel()

	router := newTestApplication().setupRouter()

	// Generate at least one observation before scraping.
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "taskdeck_http_requests_total")
}

func TestRouterProtectedRoutesRequireAuth(t *testing.T) {
	t.Parallel()

	app := newTestApplication()
	app.jwtService = &mocks.MockJWTService{ValidateErr: auth.ErrInvalidToken}
	router := app.setupRouter()

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/users/me"},
		{http.MethodPut, "/api/users/me"},
		{http.MethodDelete, "/api/users/me"},
		{http.MethodGet, "/api/tasks"},
		{http.MethodGet, "/api/tasks/stats"},
		{http.MethodPost, "/api/tasks"},
	}

	for _, tc := range paths {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code, "%s %s", tc.method, tc.path)
	}
}

func TestRouterRegisterFlow(t *testing.T) {
	t.Parallel()

	router := newTestApplication().setupRouter()

	body, err := json.Marshal(map[string]interface{}{
		"email":     "new@example.com",
		"password":  "password1234",
		"full_name": "New User",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	var resp struct {
		UserID       uuid.UUID `json:"user_id"`
		AccessToken  string    `json:"access_token"`
		RefreshToken string    `json:"refresh_token"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.NotEqual(t, uuid.Nil, resp.UserID)
	assert.Equal(t, "access-token", resp.AccessToken)
	assert.Equal(t, "refresh-token", resp.RefreshToken)
}
