package middleware

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/templui/agencysite/internal/ctxkeys"
)

// nonceKey is the context key for the CSP nonce. templ keeps its own copy
// for templ.GetNonce; this one is read by SecurityHeaders.
type nonceKey struct{}

// NonceMiddleware generates a per-request CSP nonce. Inline scripts rendered
// with that nonce run; any other inline script is blocked.
func NonceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nonce, err := generateNonce()
		if err != nil {
			// Continue without nonce; SecurityHeaders then allows no inline scripts
			next.ServeHTTP(w, r)
			return
		}

		ctx := templ.WithNonce(r.Context(), nonce)
		ctx = context.WithValue(ctx, nonceKey{}, nonce)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetNonce retrieves the nonce from context for use in middleware
func GetNonce(ctx context.Context) string {
	nonce, _ := ctx.Value(nonceKey{}).(string)
	return nonce
}

// generateNonce returns 16 random bytes, base64 encoded
func generateNonce() (string, error) {
	b := make([]byte, 16)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// SecurityHeaders sets CSP and the usual hardening headers.
// Must run after Config and NonceMiddleware.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Content-Security-Policy", contentSecurityPolicy(r))
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")

		cfg := ctxkeys.Config(r.Context())
		if cfg != nil && cfg.IsProduction() {
			h.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}

func contentSecurityPolicy(r *http.Request) string {
	scriptSrc := []string{"'self'"}
	if nonce := GetNonce(r.Context()); nonce != "" {
		scriptSrc = append(scriptSrc, fmt.Sprintf("'nonce-%s'", nonce))
	}

	imgSrc := []string{"'self'", "data:"}
	connectSrc := []string{"'self'"}

	if cfg := ctxkeys.Config(r.Context()); cfg != nil {
		switch {
		case cfg.S3Endpoint != "":
			imgSrc = append(imgSrc, strings.TrimSuffix(cfg.S3Endpoint, "/"))
		case cfg.S3Bucket != "":
			imgSrc = append(imgSrc, fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region))
		}
		if cfg.PlausibleDomain != "" {
			host := "https://" + cfg.PlausibleHost
			scriptSrc = append(scriptSrc, host)
			connectSrc = append(connectSrc, host)
		}
	}

	directives := []string{
		"default-src 'self'",
		"script-src " + strings.Join(scriptSrc, " "),
		"style-src 'self' 'unsafe-inline'",
		"img-src " + strings.Join(imgSrc, " "),
		"connect-src " + strings.Join(connectSrc, " "),
		"frame-ancestors 'none'",
		"base-uri 'self'",
		"form-action 'self'",
	}
	return strings.Join(directives, "; ")
}
