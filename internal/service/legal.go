package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/templui/agencysite/internal/markdown"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrPageNotFound is returned for unknown legal page slugs.
var ErrPageNotFound = errors.New("legal page not found")

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

type LegalPage struct {
	Title       string
	Slug        string
	Content     string
	LastUpdated string
}

type LegalService struct {
	contentDir string
	reload     bool
	parser     *markdown.Parser

	mu    sync.RWMutex
	pages map[string]*LegalPage
}

// NewLegalService serves markdown pages from <contentDir>/legal.
// With reload set, every lookup re-reads the file (development).
func NewLegalService(contentDir string, reload bool) *LegalService {
	return &LegalService{
		contentDir: filepath.Join(contentDir, "legal"),
		reload:     reload,
		parser:     markdown.NewParser(),
		pages:      make(map[string]*LegalPage),
	}
}

// Slugs lists the pages available on disk.
func (s *LegalService) Slugs() []string {
	files, err := os.ReadDir(s.contentDir)
	if err != nil {
		return nil
	}

	var slugs []string
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".md") {
			continue
		}
		slug := strings.TrimSuffix(file.Name(), ".md")
		if slugPattern.MatchString(slug) {
			slugs = append(slugs, slug)
		}
	}
	return slugs
}

func (s *LegalService) Page(slug string) (*LegalPage, error) {
	if !slugPattern.MatchString(slug) {
		return nil, ErrPageNotFound
	}

	if !s.reload {
		s.mu.RLock()
		page, ok := s.pages[slug]
		s.mu.RUnlock()
		if ok {
			return page, nil
		}
	}

	page, err := s.loadPage(slug)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.pages[slug] = page
	s.mu.Unlock()

	return page, nil
}

func (s *LegalService) loadPage(slug string) (*LegalPage, error) {
	filePath := filepath.Join(s.contentDir, slug+".md")
	content, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrPageNotFound
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	html, meta, err := s.parser.ParseWithFrontmatter(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse markdown: %w", err)
	}

	title, _ := meta["title"].(string)
	if title == "" {
		// Generate title from slug
		title = cases.Title(language.English).String(strings.ReplaceAll(slug, "-", " "))
	}

	lastUpdated := formatDate(meta["lastUpdated"])
	if lastUpdated == "" {
		info, err := os.Stat(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to get file info: %w", err)
		}
		lastUpdated = info.ModTime().Format("January 2, 2006")
	}

	return &LegalPage{
		Title:       title,
		Slug:        slug,
		Content:     string(html),
		LastUpdated: lastUpdated,
	}, nil
}

// formatDate accepts a frontmatter date as time.Time or an ISO string.
func formatDate(value any) string {
	switch v := value.(type) {
	case time.Time:
		return v.Format("January 2, 2006")
	case string:
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return v
		}
		return t.Format("January 2, 2006")
	}
	return ""
}
