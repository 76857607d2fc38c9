package handler

import (
	"net/http"

	"github.com/templui/agencysite/internal/service"
	"github.com/templui/agencysite/internal/storage"
	"github.com/templui/agencysite/internal/ui"
	"github.com/templui/agencysite/internal/ui/blocks"
	"github.com/templui/agencysite/internal/ui/components/toast"
	"github.com/templui/agencysite/internal/ui/pages"
)

type HomeHandler struct {
	siteService *service.SiteService
	assets      storage.Storage
}

func NewHomeHandler(siteService *service.SiteService, assets storage.Storage) *HomeHandler {
	return &HomeHandler{
		siteService: siteService,
		assets:      assets,
	}
}

func (h *HomeHandler) HomePage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, blocks.FormState{}, nil)
}

func (h *HomeHandler) NotFoundPage(w http.ResponseWriter, r *http.Request) {
	ui.RenderStatus(w, r, http.StatusNotFound, pages.NotFound())
}

// render writes the full page with the given contact form state
func (h *HomeHandler) render(w http.ResponseWriter, r *http.Request, status int, form blocks.FormState, toasts []toast.Props) {
	ui.RenderStatus(w, r, status, pages.Home(pages.HomeData{
		Site:   h.siteService.Site(),
		Form:   form,
		Asset:  h.assets.URL,
		Toasts: toasts,
	}))
}
