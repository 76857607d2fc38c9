package handler

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/templui/agencysite/internal/config"
	"github.com/templui/agencysite/internal/contact"
	"github.com/templui/agencysite/internal/ctxkeys"
	"github.com/templui/agencysite/internal/relay"
	"github.com/templui/agencysite/internal/ui"
	"github.com/templui/agencysite/internal/ui/blocks"
)

// Limiter bounds how many valid submits one client may send
type Limiter interface {
	Allow(key string) (bool, time.Duration)
}

type ContactHandler struct {
	relay   relay.Relay
	opts    contact.Options
	home    *HomeHandler
	limiter Limiter
}

func NewContactHandler(r relay.Relay, cfg *config.Config, home *HomeHandler, limiter Limiter) *ContactHandler {
	return &ContactHandler{
		relay: r,
		opts: contact.Options{
			ServiceID:   cfg.RelayServiceID,
			TemplateID:  cfg.RelayTemplateID,
			AccessToken: cfg.RelayAccessToken,
			Timeout:     cfg.RelayTimeout,
		},
		home:    home,
		limiter: limiter,
	}
}

// newForm builds the form for one request from the posted values
func (h *ContactHandler) newForm(r *http.Request, n contact.Notifier, values contact.Fields, touched []contact.Field) *contact.Form {
	opts := h.opts
	opts.Logger = slog.Default().With("request_id", ctxkeys.RequestID(r.Context()))

	form := contact.NewForm(h.relay, n, opts)
	form.Restore(values, touched...)
	return form
}

// Submit validates and relays the form. HTMX requests get the form back
// with any toast out of band; plain posts get the whole page.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	toasts := &blocks.Toasts{}
	values, touched := parseContactForm(r)
	form := h.newForm(r, toasts, values, touched)

	// Only submits that would reach the relay use up the quota
	if h.limiter != nil && len(contact.Validate(values)) == 0 {
		allowed, retryAfter := h.limiter.Allow(limiterKey(r))
		if !allowed {
			slog.WarnContext(r.Context(), "contact submit rate limited", "client_ip", limiterKey(r))
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			toasts.Notify(r.Context(), contact.RateLimitedNotice())
			h.respond(w, r, http.StatusTooManyRequests, form, toasts)
			return
		}
	}

	status, ok := submitStatus(r.Context(), form.Submit(r.Context()), toasts)
	if !ok {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.respond(w, r, status, form, toasts)
}

// submitStatus maps a submit outcome to the response status. Outcomes the
// user should hear about are reported through n. ok is false for errors the
// form does not know.
func submitStatus(ctx context.Context, err error, n contact.Notifier) (status int, ok bool) {
	var validationErr *contact.ValidationError
	var submissionErr *contact.SubmissionError
	switch {
	case err == nil:
		return http.StatusOK, true
	case errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity, true
	case errors.As(err, &submissionErr):
		// Already logged by the form; the user sees the error toast
		return http.StatusOK, true
	case errors.Is(err, contact.ErrSubmitInFlight):
		n.Notify(ctx, contact.BusyNotice())
		return http.StatusConflict, true
	default:
		slog.ErrorContext(ctx, "unexpected contact submit error", "error", err)
		return http.StatusInternalServerError, false
	}
}

// respond renders the form in its current state with the collected toasts
func (h *ContactHandler) respond(w http.ResponseWriter, r *http.Request, status int, form *contact.Form, toasts *blocks.Toasts) {
	state := blocks.NewFormState(form)
	if !isHTMX(r) {
		h.home.render(w, r, status, state, blocks.NoticeToasts(toasts.Notices()))
		return
	}
	ui.RenderStatus(w, r, status, blocks.ContactForm(state), toasts.OOB())
}

// Field revalidates one field. On blur the field becomes touched and its
// whole group is re-rendered. On input only the error slot of an already
// touched field is returned so the input keeps focus.
func (h *ContactHandler) Field(w http.ResponseWriter, r *http.Request) {
	field, ok := contact.ParseField(r.PathValue("field"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	values, touched := parseContactForm(r)

	if r.URL.Query().Get("event") == blocks.EventInput {
		value := values.Get(field)
		values.Set(field, "")
		form := h.newForm(r, nil, values, touched)
		form.UpdateField(field, value)
		ui.Render(w, r, blocks.FieldError(field, form.VisibleErrors()[field]))
		return
	}

	form := h.newForm(r, nil, values, touched)
	form.BlurField(field)
	ui.Render(w, r, blocks.ContactField(field, form.Values().Get(field), form.VisibleErrors()[field], true))
}

// parseContactForm reads the three values and the touched set
func parseContactForm(r *http.Request) (contact.Fields, []contact.Field) {
	_ = r.ParseForm()

	var values contact.Fields
	for _, f := range contact.AllFields {
		values.Set(f, r.PostForm.Get(string(f)))
	}

	var touched []contact.Field
	for _, name := range r.PostForm["touched"] {
		if f, ok := contact.ParseField(strings.TrimSpace(name)); ok {
			touched = append(touched, f)
		}
	}
	return values, touched
}

// limiterKey is the client IP resolved by the RealIP middleware
func limiterKey(r *http.Request) string {
	if ip := ctxkeys.ClientIP(r.Context()); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
