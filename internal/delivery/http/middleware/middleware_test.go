package middleware

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"strings"
	"testing"
	"time"

	"jbfsport-backend/config"
	"jbfsport-backend/internal/domain"
	"jbfsport-backend/pkg/logger"
	"jbfsport-backend/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func token(t *testing.T, role string) string {
	t.Helper()
	utils.SetSecret("middleware-secret")
	tok, err := utils.GenerateJWT(utils.Claims{UserID: "a1", Username: "gerant", Email: "g@jbfsport.fr", Role: role}, time.Hour)
	require.NoError(t, err)
	return tok
}

func echoAdmin(w http.ResponseWriter, r *http.Request) {
	admin, ok := AdminFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	_, _ = io.WriteString(w, admin.ID+":"+admin.Role)
}

func TestAuthMiddleware(t *testing.T) {
	h := AuthMiddleware(http.HandlerFunc(echoAdmin))

	t.Run("no token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("bearer header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token(t, domain.RoleAdmin))
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "a1:admin", rec.Body.String())
	})

	t.Run("cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: token(t, domain.RoleAdmin)})
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestAdminMiddleware(t *testing.T) {
	h := RequireAdmin(echoAdmin)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, "editor"))
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	AdminMiddleware(http.HandlerFunc(echoAdmin)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCORSMiddleware(t *testing.T) {
	cfg := &config.Config{AllowedOrigin: "https://jbfsport.fr, https://admin.jbfsport.fr"}
	h := NewCORSMiddleware(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/categories", nil)
	req.Header.Set("Origin", "https://admin.jbfsport.fr")
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://admin.jbfsport.fr", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	req.Header.Set("Origin", "https://evil.example")
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSMiddlewareWildcard(t *testing.T) {
	h := NewCORSMiddleware(&config.Config{AllowedOrigin: "*"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/categories", nil)
	req.Header.Set("Origin", "https://jbfsport.fr")
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rl := NewRateLimiter(ctx, 1, 2, time.Hour, time.Millisecond)
	defer rl.Shutdown()

	h := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	do := func(ip string) int {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":40000"
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do("1.1.1.1"))
	assert.Equal(t, http.StatusOK, do("1.1.1.1"))
	assert.Equal(t, http.StatusTooManyRequests, do("1.1.1.1"))
	assert.Equal(t, http.StatusOK, do("2.2.2.2"))
	assert.Equal(t, 2, rl.visitorCount())

	time.Sleep(5 * time.Millisecond)
	rl.evictIdle()
	assert.Equal(t, 0, rl.visitorCount())
}

func TestRateLimiterIgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rl := NewRateLimiter(ctx, 0.001, 2, time.Hour, time.Hour)
	defer rl.Shutdown()

	h := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	limited := 0
	for i := 0; i < 50; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/login", nil)
		req.RemoteAddr = "203.0.113.50:40000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.1.%d.%d", i/250, i%250))
		req.Header.Set("X-Real-IP", fmt.Sprintf("10.2.0.%d", i))
		h.ServeHTTP(rec, req)
		if rec.Code == http.StatusTooManyRequests {
			limited++
		}
	}

	assert.Equal(t, 48, limited)
	assert.Equal(t, 1, rl.visitorCount())
}

func TestRateLimiterBehindTrustedProxy(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rl := NewRateLimiter(ctx, 0.001, 1, time.Hour, time.Hour).
		TrustProxies(netip.MustParsePrefix("10.0.0.0/8"))
	defer rl.Shutdown()

	h := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	do := func(xff string) int {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.2:40000"
		req.Header.Set("X-Forwarded-For", xff)
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	// the client controls everything left of what the proxy appended
	assert.Equal(t, http.StatusOK, do("1.2.3.4, 198.51.100.9"))
	assert.Equal(t, http.StatusTooManyRequests, do("5.6.7.8, 198.51.100.9"))
	assert.Equal(t, http.StatusOK, do("198.51.100.10"))
	assert.Equal(t, 2, rl.visitorCount())
}

func TestClientIP(t *testing.T) {
	trusted := []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8"), netip.MustParsePrefix("192.0.2.1/32")}

	tests := []struct {
		name    string
		remote  string
		xff     string
		realIP  string
		trusted []netip.Prefix
		want    string
	}{
		{"plain connection", "192.0.2.7:51234", "", "", nil, "192.0.2.7"},
		{"headers from untrusted peer", "192.0.2.7:51234", "203.0.113.9", "198.51.100.2", trusted, "192.0.2.7"},
		{"no trusted proxies configured", "10.0.0.2:51234", "203.0.113.9", "", nil, "10.0.0.2"},
		{"rightmost untrusted hop", "10.0.0.2:51234", "1.1.1.1, 203.0.113.9, 10.0.0.7", "", trusted, "203.0.113.9"},
		{"real ip from trusted peer", "192.0.2.1:51234", "", "198.51.100.2", trusted, "198.51.100.2"},
		{"all hops trusted", "10.0.0.2:51234", "10.0.0.3", "", trusted, "10.0.0.2"},
		{"ipv4-mapped peer", "[::ffff:10.0.0.2]:51234", "203.0.113.9", "", trusted, "203.0.113.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}
			assert.Equal(t, tt.want, clientIP(req, tt.trusted))
		})
	}
}

func TestMetricsUsesRoutePattern(t *testing.T) {
	m := NewMetrics("jbfsport")
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/pages/{categorySlug}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	h := m.Middleware(mux)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/pages/football", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/pages/tennis", nil))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.True(t, strings.Contains(body,
		`jbfsport_http_requests_total{method="GET",route="GET /api/v1/pages/{categorySlug}",status="404"} 2`), body)
	assert.Contains(t, body, "jbfsport_http_request_duration_seconds_bucket")
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	h := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, rec.Header().Get("X-Request-ID"), 8)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "upstream-42")
	h.ServeHTTP(rec, req)
	assert.Equal(t, "upstream-42", rec.Header().Get("X-Request-ID"))
}

func TestRequestLoggerTagsAdmin(t *testing.T) {
	var buf bytes.Buffer
	h := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := logger.WithContext(r.Context()).Output(&buf)
		l.Info().Msg("inside")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/me", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, domain.RoleAdmin))
	req.Header.Set("X-Request-ID", "req-1")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Contains(t, buf.String(), `"user_id":"a1"`)
	assert.Contains(t, buf.String(), `"request_id":"req-1"`)

	buf.Reset()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil))
	assert.NotContains(t, buf.String(), "user_id")
}
