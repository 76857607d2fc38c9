package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/netip"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/agencysite/internal/config"
	"github.com/templui/agencysite/internal/ctxkeys"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestChainOrder(t *testing.T) {
	var order []string
	mk := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(okHandler), mk("a"), mk("b"), mk("c"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestConfigStoresSanitizedCopy(t *testing.T) {
	cfg := &config.Config{AppName: "Agency", RelayAccessToken: "secret", ResendAPIKey: "re_secret"}

	var got *config.Config
	h := Config(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = ctxkeys.Config(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotNil(t, got)
	assert.Equal(t, "Agency", got.AppName)
	assert.Empty(t, got.RelayAccessToken)
	assert.Empty(t, got.ResendAPIKey)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ctxkeys.RequestID(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		_, err := uuid.Parse(seen)
		require.NoError(t, err)
		assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))
	})

	t.Run("inbound reused", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", id)
		h.ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, id, seen)
	})

	t.Run("malformed inbound replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "<script>")
		h.ServeHTTP(httptest.NewRecorder(), req)
		assert.NotEqual(t, "<script>", seen)
	})
}

func TestCSRFProtection(t *testing.T) {
	h := CSRFProtection(http.HandlerFunc(okHandler))

	// GET issues a token cookie
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, csrfCookieName, cookie.Name)

	t.Run("missing token rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/contact", nil)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("header token accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/contact", nil)
		req.AddCookie(cookie)
		req.Header.Set(CSRFHeader, cookie.Value)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("form token accepted", func(t *testing.T) {
		form := url.Values{CSRFFormField: {cookie.Value}}
		req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong token rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/contact", nil)
		req.AddCookie(cookie)
		req.Header.Set(CSRFHeader, generateCSRFToken())
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestSecurityHeaders(t *testing.T) {
	cfg := &config.Config{AppEnv: "production", S3Endpoint: "https://cdn.example.com/"}

	var nonce string
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nonce = templ.GetNonce(r.Context())
	}), Config(cfg), NonceMiddleware, SecurityHeaders)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	csp := rec.Header().Get("Content-Security-Policy")
	require.NotEmpty(t, nonce)
	assert.Contains(t, csp, "'nonce-"+nonce+"'")
	assert.Contains(t, csp, "img-src 'self' data: https://cdn.example.com")
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestRateLimiterWindow(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	ok, _ := rl.Allow("1.2.3.4")
	assert.True(t, ok)
	now = now.Add(10 * time.Second)
	ok, _ = rl.Allow("1.2.3.4")
	assert.True(t, ok)

	ok, retry := rl.Allow("1.2.3.4")
	assert.False(t, ok)
	assert.Equal(t, 50*time.Second, retry)

	// Other clients are independent
	ok, _ = rl.Allow("5.6.7.8")
	assert.True(t, ok)

	now = now.Add(51 * time.Second)
	ok, _ = rl.Allow("1.2.3.4")
	assert.True(t, ok)
}

func TestRateLimiterCleanup(t *testing.T) {
	now := time.Now()
	rl := NewRateLimiter(1, time.Minute)
	rl.now = func() time.Time { return now }

	rl.Allow("1.2.3.4")
	now = now.Add(2 * time.Minute)
	rl.Cleanup()

	assert.Empty(t, rl.requests)
}

func TestRotatingForwardedForKeepsWindow(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	var allowed []bool
	h := RealIP(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, _ := rl.Allow(ctxkeys.ClientIP(r.Context()))
		allowed = append(allowed, ok)
	}))

	for _, xff := range []string{"1.1.1.1", "2.2.2.2", "3.3.3.3", "4.4.4.4"} {
		req := httptest.NewRequest(http.MethodPost, "/contact", nil)
		req.RemoteAddr = "198.51.100.7:4321"
		req.Header.Set("X-Forwarded-For", xff)
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, []bool{true, true, false, false}, allowed)
}

func TestClientIP(t *testing.T) {
	proxies := []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")}

	tests := []struct {
		name    string
		trusted []netip.Prefix
		headers map[string]string
		remote  string
		want    string
	}{
		{"untrusted peer ignores forwarded", nil, map[string]string{"X-Forwarded-For": "1.1.1.1"}, "3.3.3.3:1234", "3.3.3.3"},
		{"untrusted peer ignores real ip", nil, map[string]string{"X-Real-IP": "4.4.4.4"}, "3.3.3.3:1234", "3.3.3.3"},
		{"trusted proxy appends client", proxies, map[string]string{"X-Forwarded-For": "6.6.6.6, 1.1.1.1"}, "10.0.0.2:1234", "1.1.1.1"},
		{"skips trusted hops", proxies, map[string]string{"X-Forwarded-For": "1.1.1.1, 10.0.0.9"}, "10.0.0.2:1234", "1.1.1.1"},
		{"trusted real ip", proxies, map[string]string{"X-Real-IP": " 4.4.4.4 "}, "10.0.0.2:1234", "4.4.4.4"},
		{"trusted without headers", proxies, nil, "10.0.0.2:1234", "10.0.0.2"},
		{"ipv6 peer", nil, nil, "[2001:db8::1]:443", "2001:db8::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientIP(req, tt.trusted))
		})
	}
}
