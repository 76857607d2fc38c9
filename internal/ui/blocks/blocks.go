package blocks

import (
	"context"

	"github.com/templui/agencysite/internal/ctxkeys"
)

// AssetURL resolves a stored asset path (team photos, client logos) to a URL
type AssetURL func(path string) string

type navLink struct {
	href  string
	label string
}

var navLinks = []navLink{
	{"/#home", "Home"},
	{"/#about", "About"},
	{"/#services", "Services"},
	{"/#team", "Team"},
	{"/#contact", "Contact"},
}

func appName(ctx context.Context) string {
	if cfg := ctxkeys.Config(ctx); cfg != nil {
		return cfg.AppName
	}
	return ""
}
