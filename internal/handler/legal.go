package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/templui/agencysite/internal/service"
	"github.com/templui/agencysite/internal/ui"
	"github.com/templui/agencysite/internal/ui/pages"
)

type LegalHandler struct {
	legalService *service.LegalService
}

func NewLegalHandler(legalService *service.LegalService) *LegalHandler {
	return &LegalHandler{
		legalService: legalService,
	}
}

func (h *LegalHandler) ShowPage(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("page")

	page, err := h.legalService.Page(slug)
	if err != nil {
		if !errors.Is(err, service.ErrPageNotFound) {
			slog.ErrorContext(r.Context(), "failed to load legal page", "slug", slug, "error", err)
		}
		ui.RenderStatus(w, r, http.StatusNotFound, pages.NotFound())
		return
	}

	ui.Render(w, r, pages.Legal(page))
}
