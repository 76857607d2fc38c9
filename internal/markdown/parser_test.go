package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStripsScripts(t *testing.T) {
	p := NewParser()

	html, err := p.Parse([]byte("# Hello\n\n<script>alert(1)</script>\n\nSome **bold** text."))
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, `<h1 id="hello">Hello</h1>`)
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.NotContains(t, out, "<script>")
}

func TestParseWithFrontmatter(t *testing.T) {
	p := NewParser()
	src := []byte("---\ntitle: Privacy Policy\nlastUpdated: 2026-01-02\n---\n\nWe keep nothing.\n")

	html, meta, err := p.ParseWithFrontmatter(src)
	require.NoError(t, err)

	assert.Equal(t, "Privacy Policy", meta["title"])
	assert.Contains(t, string(html), "<p>We keep nothing.</p>")
	assert.NotContains(t, string(html), "title:")
}

func TestParseIntoStruct(t *testing.T) {
	type doc struct {
		Title string   `yaml:"title"`
		Tags  []string `yaml:"tags"`
	}
	p := NewParser()

	var d doc
	_, err := p.ParseInto([]byte("---\ntitle: Services\ntags: [web, cloud]\n---\nbody"), &d)
	require.NoError(t, err)
	assert.Equal(t, doc{Title: "Services", Tags: []string{"web", "cloud"}}, d)

	d = doc{Title: "kept"}
	_, err = p.ParseInto([]byte("no frontmatter"), &d)
	require.NoError(t, err)
	assert.Equal(t, "kept", d.Title)
}
