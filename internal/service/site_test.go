package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/agencysite/internal/model"
)

const testSiteContent = `---
hero:
  title: "We build"
  highlight: "software"
services:
  - title: Cloud
    description: Lift and shift.
    icon: "☁️"
---

We are a **small** team.
`

func TestSiteServiceDefaultsWithoutContent(t *testing.T) {
	s := NewSiteService(t.TempDir())

	require.NoError(t, s.Load())

	assert.Equal(t, model.DefaultSite(), s.Site())
}

func TestSiteServiceLoadsContent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, siteFile), []byte(testSiteContent), 0o644))

	s := NewSiteService(dir)
	require.NoError(t, s.Load())

	site := s.Site()
	assert.Equal(t, "We build", site.Hero.Title)
	assert.Equal(t, "software", site.Hero.Highlight)
	require.Len(t, site.Services, 1)
	assert.Equal(t, "Cloud", site.Services[0].Title)
	assert.Equal(t, "<p>We are a <strong>small</strong> team.</p>", site.About.HTML)
	// sections absent from the file keep their defaults
	assert.Len(t, site.Team, 4)
}

func TestSiteServiceInvalidFrontmatter(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, siteFile), []byte("---\nservices: [\n---\nbody"), 0o644))

	s := NewSiteService(dir)
	assert.Error(t, s.Load())
	assert.Equal(t, model.DefaultSite(), s.Site(), "failed load keeps previous content")
}

func TestSiteServiceWatchReloads(t *testing.T) {
	dir := t.TempDir()
	s := NewSiteService(dir)
	require.NoError(t, s.Load())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.Watch(ctx))

	require.NoError(t, os.WriteFile(filepath.Join(dir, siteFile), []byte(testSiteContent), 0o644))

	assert.Eventually(t, func() bool {
		return s.Site().Hero.Title == "We build"
	}, 3*time.Second, 20*time.Millisecond)
}
