package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/maxviazov/worldcities-service/internal/handler"
)

// stubPinger implements handler.Pinger for health endpoints.
type stubPinger struct{ err error }

func (s stubPinger) Ping(ctx context.Context) error { return s.err }

func newHealthEngine(p handler.Pinger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// nil services: only health and docs routes are exercised here
	handler.Register(r, p, nil, nil)
	return r
}

func TestHealthRoutes(t *testing.T) {
	cases := []struct {
		name     string
		pinger   stubPinger
		path     string
		wantCode int
	}{
		{"live root", stubPinger{}, "/live", http.StatusOK},
		{"ready root", stubPinger{}, "/ready", http.StatusOK},
		{"live api", stubPinger{}, "/api/health/live", http.StatusOK},
		{"ready api", stubPinger{}, "/api/health/ready", http.StatusOK},
		{"live ignores storage", stubPinger{err: errors.New("db down")}, "/live", http.StatusOK},
		{"ready unavailable", stubPinger{err: errors.New("db down")}, "/api/health/ready", http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			newHealthEngine(tc.pinger).ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
			assert.Equal(t, tc.wantCode, w.Code, w.Body.String())
		})
	}
}

func TestReadiness_DoesNotLeakError(t *testing.T) {
	w := httptest.NewRecorder()
	newHealthEngine(stubPinger{err: errors.New("password authentication failed")}).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestDocs(t *testing.T) {
	r := newHealthEngine(stubPinger{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/cities")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/docs", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
}
