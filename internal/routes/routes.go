package routes

import (
	"io/fs"
	"net/http"

	"github.com/templui/agencysite/assets"
	"github.com/templui/agencysite/internal/app"
	"github.com/templui/agencysite/internal/handler"
	"github.com/templui/agencysite/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	home := handler.NewHomeHandler(app.SiteService, app.Storage)
	contact := handler.NewContactHandler(app.Relay, app.Cfg, home, app.ContactLimiter)
	legal := handler.NewLegalHandler(app.LegalService)
	seo := handler.NewSEOHandler(app.SitemapService, app.Cfg.AppURL)

	mux := http.NewServeMux()

	// Static files
	sub, _ := fs.Sub(assets.AssetsFS, ".")
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.FS(sub))))

	// Probes
	mux.HandleFunc("GET /healthz", handler.Health)

	// SEO
	mux.HandleFunc("GET /robots.txt", seo.Robots)
	mux.HandleFunc("GET /sitemap.xml", seo.Sitemap)

	// Home
	mux.HandleFunc("GET /{$}", home.HomePage)

	// Contact (valid submits rate limited per client IP)
	mux.HandleFunc("POST /contact", contact.Submit)
	mux.HandleFunc("POST /contact/fields/{field}", contact.Field)

	// Content
	mux.HandleFunc("GET /legal/{page}", legal.ShowPage)

	// 404
	mux.HandleFunc("/{path...}", home.NotFoundPage)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Config(app.Cfg), // Config must be first (needed by SecurityHeaders for S3 endpoint)
		middleware.RequestID,
		middleware.RealIP(app.Cfg.TrustedProxies),
		middleware.NonceMiddleware, // Must be before SecurityHeaders
		middleware.SecurityHeaders,
		middleware.RequestLogging,
		middleware.CSRFProtection,
		middleware.WithURLPath,
	)

	return handler
}
