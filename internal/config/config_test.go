package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDevelopmentDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("APP_URL", "http://localhost:8090")

	cfg := Load()

	require.True(t, cfg.IsDevelopment())
	assert.Equal(t, RelayLog, cfg.RelayProvider)
	assert.Equal(t, "hBpNLyRgMukbaXoXI", cfg.RelayServiceID)
	assert.Equal(t, "template_7m9vkrk", cfg.RelayTemplateID)
	assert.Equal(t, 12*time.Second, cfg.RelayTimeout)
	assert.Equal(t, 5, cfg.ContactRateLimit)
	assert.Equal(t, 10*time.Minute, cfg.ContactRateWindow)
	assert.Empty(t, cfg.RelayConfigError())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("APP_URL", "http://localhost:8090")
	t.Setenv("RELAY_PROVIDER", RelayEmailJS)
	t.Setenv("RELAY_TIMEOUT", "3s")
	t.Setenv("CONTACT_RATE_LIMIT", "not-a-number")

	cfg := Load()

	assert.Equal(t, RelayEmailJS, cfg.RelayProvider)
	assert.Equal(t, 3*time.Second, cfg.RelayTimeout)
	assert.Equal(t, 5, cfg.ContactRateLimit)
	assert.Equal(t, "EMAILJS_PUBLIC_KEY", cfg.RelayConfigError())
}

func TestLoadTrustedProxies(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("APP_URL", "http://localhost:8090")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.0.2.1,not-an-ip, ::1")

	cfg := Load()

	require.Len(t, cfg.TrustedProxies, 3)
	assert.Equal(t, "10.0.0.0/8", cfg.TrustedProxies[0].String())
	assert.Equal(t, "192.0.2.1/32", cfg.TrustedProxies[1].String())
	assert.Equal(t, "::1/128", cfg.TrustedProxies[2].String())
}

func TestRelayConfigError(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"emailjs complete", Config{RelayProvider: RelayEmailJS, RelayAccessToken: "t", EmailJSPublicKey: "k"}, ""},
		{"emailjs missing key", Config{RelayProvider: RelayEmailJS, RelayAccessToken: "t"}, "EMAILJS_PUBLIC_KEY"},
		{"emailjs public key only", Config{RelayProvider: RelayEmailJS, EmailJSPublicKey: "k"}, ""},
		{"resend missing api key", Config{RelayProvider: RelayResend, ContactInbox: "a@b.com"}, "RESEND_API_KEY"},
		{"log in production", Config{RelayProvider: RelayLog, AppEnv: "production"}, "RELAY_PROVIDER (log relay is development only)"},
		{"unknown", Config{RelayProvider: "smtp"}, "RELAY_PROVIDER (supported: emailjs, resend, log)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.RelayConfigError())
		})
	}
}

func TestSanitizedDropsSecrets(t *testing.T) {
	cfg := &Config{
		AppName:          "Nexa",
		RelayAccessToken: "secret",
		ResendAPIKey:     "re_123",
		S3SecretKey:      "s3",
		EmailJSPublicKey: "pk",
	}

	safe := cfg.Sanitized()

	assert.Equal(t, "Nexa", safe.AppName)
	assert.Empty(t, safe.RelayAccessToken)
	assert.Empty(t, safe.ResendAPIKey)
	assert.Empty(t, safe.S3SecretKey)
	assert.Empty(t, safe.EmailJSPublicKey)
}
