package markdown

import (
	"bytes"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"go.abhg.dev/goldmark/frontmatter"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// sanitizer allows the markup content authors need and nothing executable
func sanitizer() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.UGCPolicy()
		policy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
		policy.RequireNoFollowOnLinks(false)
	})
	return policy
}

type Parser struct {
	md goldmark.Markdown
}

func NewParser() *Parser {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
			&frontmatter.Extender{},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithXHTML(),
		),
	)

	return &Parser{
		md: md,
	}
}

// Parse renders markdown to sanitized HTML.
func (p *Parser) Parse(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	err := p.md.Convert(source, &buf)
	if err != nil {
		return nil, err
	}
	return sanitizer().SanitizeBytes(buf.Bytes()), nil
}

// ParseWithFrontmatter renders the body and decodes the YAML frontmatter into meta.
func (p *Parser) ParseWithFrontmatter(source []byte) (content []byte, meta map[string]any, err error) {
	meta = make(map[string]any)
	content, err = p.ParseInto(source, &meta)
	if err != nil {
		return nil, nil, err
	}
	return content, meta, nil
}

// ParseInto renders the body and decodes the frontmatter into v, which is
// left untouched when the document has no frontmatter.
func (p *Parser) ParseInto(source []byte, v any) ([]byte, error) {
	ctx := parser.NewContext()
	var buf bytes.Buffer

	err := p.md.Convert(source, &buf, parser.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	if data := frontmatter.Get(ctx); data != nil {
		err = data.Decode(v)
		if err != nil {
			return nil, err
		}
	}

	return sanitizer().SanitizeBytes(buf.Bytes()), nil
}
