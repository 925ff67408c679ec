package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"spendlog/internal/handlers"
	"spendlog/internal/service"
	"spendlog/internal/storage"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	db, err := storage.Open(":memory:")
	require.NoError(t, err, "failed to create database")
	t.Cleanup(func() { db.Close() })

	// Use relative paths for tests running in cmd/server
	h := handlers.New(service.NewAuth(db), service.NewExpenses(db), logrus.New(), "../../web/templates", false)
	return h.Routes("../../web/static")
}

func TestRoutes(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{
			name:       "Root redirects anonymous users",
			method:     "GET",
			path:       "/",
			wantStatus: http.StatusFound,
		},
		{
			name:       "Health check responds",
			method:     "GET",
			path:       "/healthz",
			wantStatus: http.StatusOK,
		},
		{
			name:       "Dashboard requires auth",
			method:     "GET",
			path:       "/dashboard",
			wantStatus: http.StatusFound,
		},
		{
			name:       "Add form requires auth",
			method:     "GET",
			path:       "/add",
			wantStatus: http.StatusFound,
		},
		{
			name:       "Delete requires auth",
			method:     "POST",
			path:       "/delete/1",
			wantStatus: http.StatusFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code,
				"%s %s returned unexpected status", tt.method, tt.path)
		})
	}
}

func TestProtectedRoutesRedirectToLogin(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest("GET", "/dashboard", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}
