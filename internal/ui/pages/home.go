package pages

import (
	"github.com/templui/agencysite/internal/model"
	"github.com/templui/agencysite/internal/ui/blocks"
	"github.com/templui/agencysite/internal/ui/components/toast"
)

type HomeData struct {
	Site  *model.Site
	Form  blocks.FormState
	Asset blocks.AssetURL
	// Toasts render inline, for responses to plain form posts
	Toasts []toast.Props
}
