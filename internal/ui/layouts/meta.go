package layouts

import (
	"context"
	"fmt"

	"github.com/templui/agencysite/internal/config"
	"github.com/templui/agencysite/internal/ctxkeys"
	"github.com/templui/agencysite/internal/middleware"
	"github.com/templui/agencysite/internal/ui/components/toast"
)

// htmxConfig swaps 422, 409 and 429 responses so inline errors and their
// toasts render. Other 4xx/5xx keep the page and raise htmx:responseError.
const htmxConfig = `{"responseHandling":[` +
	`{"code":"204","swap":false},` +
	`{"code":"[23]..","swap":true},` +
	`{"code":"(409|422|429)","swap":true},` +
	`{"code":"[45]..","swap":false,"error":true}]}`

type Meta struct {
	Title       string
	Description string
	// Toasts render inline, for responses to plain form posts
	Toasts []toast.Props
}

func pageTitle(ctx context.Context, meta Meta) string {
	appName := ""
	if cfg := ctxkeys.Config(ctx); cfg != nil {
		appName = cfg.AppName
	}
	if meta.Title == "" {
		return appName
	}
	return fmt.Sprintf("%s | %s", meta.Title, appName)
}

func pageDescription(ctx context.Context, meta Meta) string {
	if meta.Description != "" {
		return meta.Description
	}
	if cfg := ctxkeys.Config(ctx); cfg != nil {
		return cfg.AppTagline
	}
	return ""
}

// csrfHeaders makes every HTMX request carry the CSRF token
func csrfHeaders(ctx context.Context) string {
	return fmt.Sprintf(`{"%s":"%s"}`, middleware.CSRFHeader, ctxkeys.CSRFToken(ctx))
}

func plausibleScript(cfg *config.Config) string {
	return "https://" + cfg.PlausibleHost + "/js/script.js"
}
