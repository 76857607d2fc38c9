package service

import (
	"encoding/xml"
	"strings"
	"time"

	"github.com/templui/agencysite/internal/model"
)

// publicRoutes defines the static public routes included in the sitemap
var publicRoutes = []struct {
	Path       string
	Priority   string
	ChangeFreq string
}{
	{"/", "1.0", "weekly"},
}

type SitemapService struct {
	legalService *LegalService
	baseURL      string
	now          func() time.Time
}

// NewSitemapService creates a new sitemap service
func NewSitemapService(legalService *LegalService, baseURL string) *SitemapService {
	return &SitemapService{
		legalService: legalService,
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		now:          time.Now,
	}
}

// GenerateSitemap generates the sitemap for the landing page and legal pages
func (s *SitemapService) GenerateSitemap() ([]byte, error) {
	today := s.now().Format("2006-01-02")

	sitemap := model.Sitemap{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
	}

	for _, route := range publicRoutes {
		sitemap.URLs = append(sitemap.URLs, model.SitemapURL{
			Loc:        s.baseURL + route.Path,
			LastMod:    today,
			ChangeFreq: route.ChangeFreq,
			Priority:   route.Priority,
		})
	}

	for _, slug := range s.legalService.Slugs() {
		sitemap.URLs = append(sitemap.URLs, model.SitemapURL{
			Loc:        s.baseURL + "/legal/" + slug,
			LastMod:    today,
			ChangeFreq: "yearly",
			Priority:   "0.3",
		})
	}

	output, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}

	return []byte(xml.Header + string(output)), nil
}
