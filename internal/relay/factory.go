package relay

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/resend/resend-go/v2"
	"github.com/templui/agencysite/internal/config"
)

// New creates a relay based on configuration
func New(cfg *config.Config) (Relay, error) {
	provider := cfg.RelayProvider

	slog.Info("initializing relay", "provider", provider, "timeout", cfg.RelayTimeout)

	if missing := cfg.RelayConfigError(); missing != "" {
		return nil, fmt.Errorf("relay %q is not configured: missing %s", provider, missing)
	}

	switch provider {
	case config.RelayEmailJS:
		client := &http.Client{Timeout: cfg.RelayTimeout}
		return NewEmailJS(cfg.EmailJSBaseURL, cfg.EmailJSPublicKey, client, cfg.RelayTimeout), nil

	case config.RelayResend:
		client := resend.NewCustomClient(&http.Client{Timeout: cfg.RelayTimeout}, cfg.ResendAPIKey)
		return NewResend(client, cfg.EmailFrom, cfg.ContactInbox), nil

	case config.RelayLog:
		return NewLog(slog.Default()), nil

	default:
		return nil, fmt.Errorf("unknown relay provider: %s (supported: emailjs, resend, log)", provider)
	}
}
