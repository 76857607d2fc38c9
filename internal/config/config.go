package config

import (
	"log/slog"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Relay providers
const (
	RelayEmailJS = "emailjs"
	RelayResend  = "resend"
	RelayLog     = "log"
)

type Config struct {
	// Application
	AppName     string
	AppEnv      string
	AppURL      string
	Port        string
	AppTagline  string
	ContentPath string

	// Agency contact details shown next to the form
	ContactEmail  string
	ContactPhone  string
	ContactOffice string

	// Relay
	RelayProvider    string // "emailjs", "resend" or "log"
	RelayServiceID   string
	RelayTemplateID  string
	RelayAccessToken string
	RelayTimeout     time.Duration
	// Relay - EmailJS
	EmailJSPublicKey string
	EmailJSBaseURL   string
	// Relay - Resend
	ResendAPIKey string
	EmailFrom    string
	ContactInbox string

	// Contact form abuse protection (server side only)
	ContactRateLimit  int
	ContactRateWindow time.Duration
	// Reverse proxies whose X-Forwarded-For / X-Real-IP headers are believed
	TrustedProxies []netip.Prefix

	// Analytics (optional)
	PlausibleDomain string
	PlausibleHost   string

	// Observability (optional)
	SentryDSN string

	// Asset storage (optional, S3-compatible). Empty bucket serves embedded assets.
	S3Region              string
	S3Bucket              string
	S3AccessKey           string
	S3SecretKey           string
	S3Endpoint            string
	S3PresignExpiryPublic time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	appEnv := envRequired("APP_ENV") // Required: 'development' or 'production'

	defaultRelay := RelayEmailJS
	if appEnv == "development" {
		defaultRelay = RelayLog
	}

	cfg := &Config{
		// Application
		AppName:     envString("APP_NAME", "Nexa Digital"),
		AppEnv:      appEnv,
		AppURL:      envRequired("APP_URL"), // Required: base URL for sitemap and canonical links
		Port:        envString("PORT", "8090"),
		AppTagline:  envString("APP_TAGLINE", "Digital solutions that move your business forward"),
		ContentPath: envString("CONTENT_PATH", "content"),

		ContactEmail:  envString("CONTACT_EMAIL", "santmax2010@gmail.com"),
		ContactPhone:  envString("CONTACT_PHONE", "+91 7428961025"),
		ContactOffice: envString("CONTACT_OFFICE", "Greater Noida, India"),

		// Relay (access token is a secret: env only, never logged; optional for emailjs)
		RelayProvider:    envString("RELAY_PROVIDER", defaultRelay),
		RelayServiceID:   envString("RELAY_SERVICE_ID", "hBpNLyRgMukbaXoXI"),
		RelayTemplateID:  envString("RELAY_TEMPLATE_ID", "template_7m9vkrk"),
		RelayAccessToken: envString("RELAY_ACCESS_TOKEN", ""),
		RelayTimeout:     envDuration("RELAY_TIMEOUT", 12*time.Second),
		EmailJSPublicKey: envString("EMAILJS_PUBLIC_KEY", ""),
		EmailJSBaseURL:   envString("EMAILJS_BASE_URL", "https://api.emailjs.com"),
		ResendAPIKey:     envString("RESEND_API_KEY", ""),
		EmailFrom:        envString("EMAIL_FROM", "noreply@example.com"),
		ContactInbox:     envString("CONTACT_INBOX", envString("CONTACT_EMAIL", "santmax2010@gmail.com")),

		ContactRateLimit:  envInt("CONTACT_RATE_LIMIT", 5),
		ContactRateWindow: envDuration("CONTACT_RATE_WINDOW", 10*time.Minute),
		TrustedProxies:    envPrefixes("TRUSTED_PROXIES"),

		// Analytics
		PlausibleDomain: envString("PLAUSIBLE_DOMAIN", ""),
		PlausibleHost:   envString("PLAUSIBLE_HOST", "plausible.io"),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Storage
		S3Region:              envString("S3_REGION", "us-east-1"),
		S3Bucket:              envString("S3_BUCKET", ""),
		S3AccessKey:           envString("S3_ACCESS_KEY", ""),
		S3SecretKey:           envString("S3_SECRET_KEY", ""),
		S3Endpoint:            envString("S3_ENDPOINT", ""),
		S3PresignExpiryPublic: envDuration("S3_PRESIGN_EXPIRY_PUBLIC", 168*time.Hour), // 7 days
	}

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures the selected relay is configured for production deployments.
// Development falls back to the log relay so the form works without credentials.
func validateProduction(cfg *Config) {
	if err := cfg.RelayConfigError(); err != "" {
		slog.Error("production deployment requires relay credentials",
			"provider", cfg.RelayProvider,
			"missing", err,
			"hint", "set APP_ENV=development for local testing with the log relay")
		os.Exit(1)
	}
}

// RelayConfigError names the first missing setting for the selected relay, or "" when complete.
func (c *Config) RelayConfigError() string {
	switch c.RelayProvider {
	case RelayEmailJS:
		// RELAY_ACCESS_TOKEN is only needed when the EmailJS account runs in strict mode
		if c.EmailJSPublicKey == "" {
			return "EMAILJS_PUBLIC_KEY"
		}
	case RelayResend:
		if c.ResendAPIKey == "" {
			return "RESEND_API_KEY"
		}
		if c.ContactInbox == "" {
			return "CONTACT_INBOX"
		}
	case RelayLog:
		if c.IsProduction() {
			return "RELAY_PROVIDER (log relay is development only)"
		}
	default:
		return "RELAY_PROVIDER (supported: emailjs, resend, log)"
	}
	return ""
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

// envPrefixes parses a comma separated list of CIDRs or bare IPs.
// Invalid entries are skipped with a warning.
func envPrefixes(key string) []netip.Prefix {
	var out []netip.Prefix
	for _, entry := range strings.Split(os.Getenv(key), ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		prefix, err := parsePrefix(entry)
		if err != nil {
			slog.Warn("config invalid proxy address, skipping", "key", key, "value", entry)
			continue
		}
		out = append(out, prefix)
	}
	return out
}

func parsePrefix(s string) (netip.Prefix, error) {
	if strings.Contains(s, "/") {
		p, err := netip.ParsePrefix(s)
		return p.Masked(), err
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Prefix{}, err
	}
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Sanitized returns a copy of the config with only public/safe fields.
// Relay credentials and storage keys are excluded.
// Safe to expose in ctx, templates and client-facing contexts.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName:    c.AppName,
		AppEnv:     c.AppEnv,
		AppURL:     c.AppURL,
		Port:       c.Port,
		AppTagline: c.AppTagline,

		ContactEmail:  c.ContactEmail,
		ContactPhone:  c.ContactPhone,
		ContactOffice: c.ContactOffice,

		RelayProvider: c.RelayProvider,

		PlausibleDomain: c.PlausibleDomain,
		PlausibleHost:   c.PlausibleHost,

		S3Endpoint: c.S3Endpoint, // Needed for CSP img-src
		S3Bucket:   c.S3Bucket,
		S3Region:   c.S3Region,
	}
}
