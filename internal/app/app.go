package app

import (
	"fmt"
	"time"

	"github.com/templui/agencysite/internal/config"
	"github.com/templui/agencysite/internal/middleware"
	"github.com/templui/agencysite/internal/relay"
	"github.com/templui/agencysite/internal/service"
	"github.com/templui/agencysite/internal/storage"
)

type App struct {
	Cfg            *config.Config
	Relay          relay.Relay
	Storage        storage.Storage
	SiteService    *service.SiteService
	LegalService   *service.LegalService
	SitemapService *service.SitemapService
	ContactLimiter *middleware.RateLimiter

	stop chan struct{}
}

func New(cfg *config.Config) (*App, error) {
	// Relay
	contactRelay, err := relay.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize relay: %w", err)
	}

	// Storage
	assetStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Services
	siteService := service.NewSiteService(cfg.ContentPath)
	err = siteService.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load site content: %w", err)
	}
	legalService := service.NewLegalService(cfg.ContentPath, cfg.IsDevelopment())
	sitemapService := service.NewSitemapService(legalService, cfg.AppURL)

	stop := make(chan struct{})
	limiter := middleware.NewRateLimiter(cfg.ContactRateLimit, cfg.ContactRateWindow)
	limiter.StartCleanup(5*time.Minute, stop)

	return &App{
		Cfg:            cfg,
		Relay:          contactRelay,
		Storage:        assetStorage,
		SiteService:    siteService,
		LegalService:   legalService,
		SitemapService: sitemapService,
		ContactLimiter: limiter,
		stop:           stop,
	}, nil
}

func (a *App) Close() error {
	if a.stop != nil {
		close(a.stop)
		a.stop = nil
	}
	return nil
}
