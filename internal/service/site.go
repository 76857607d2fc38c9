package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/templui/agencysite/internal/markdown"
	"github.com/templui/agencysite/internal/model"
)

const siteFile = "site.md"

// SiteService serves the landing page content.
// Content lives in <contentDir>/site.md: YAML frontmatter for the sections,
// markdown body for the About text. Missing sections fall back to defaults.
type SiteService struct {
	contentDir string
	parser     *markdown.Parser

	mu   sync.RWMutex
	site *model.Site
}

func NewSiteService(contentDir string) *SiteService {
	return &SiteService{
		contentDir: contentDir,
		parser:     markdown.NewParser(),
		site:       model.DefaultSite(),
	}
}

// Load reads the content file. A missing file keeps the defaults.
func (s *SiteService) Load() error {
	path := filepath.Join(s.contentDir, siteFile)
	source, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Info("no site content file, using defaults", "path", path)
			return nil
		}
		return fmt.Errorf("failed to read site content: %w", err)
	}

	site := model.DefaultSite()
	defaultAbout := site.About.HTML
	html, err := s.parser.ParseInto(source, site)
	if err != nil {
		return fmt.Errorf("failed to parse site content: %w", err)
	}

	site.About.HTML = strings.TrimSpace(string(html))
	if site.About.HTML == "" {
		site.About.HTML = defaultAbout
	}

	s.mu.Lock()
	s.site = site
	s.mu.Unlock()

	slog.Info("site content loaded", "path", path, "services", len(site.Services), "team", len(site.Team))
	return nil
}

// Site returns the current content. Callers must not modify it.
func (s *SiteService) Site() *model.Site {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.site
}

// Watch reloads content whenever a file in the content directory changes,
// until ctx is done. Rapid bursts of events trigger a single reload.
func (s *SiteService) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create content watcher: %w", err)
	}

	err = watcher.Add(s.contentDir)
	if err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", s.contentDir, err)
	}

	go func() {
		defer func() { _ = watcher.Close() }()

		var debounce <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
					debounce = time.After(100 * time.Millisecond)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("content watcher error", "error", err)
			case <-debounce:
				debounce = nil
				if err := s.Load(); err != nil {
					slog.Warn("content reload failed", "error", err)
				}
			}
		}
	}()

	return nil
}
