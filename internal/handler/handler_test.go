package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/agencysite/internal/config"
	"github.com/templui/agencysite/internal/contact"
	"github.com/templui/agencysite/internal/middleware"
	"github.com/templui/agencysite/internal/relay"
	"github.com/templui/agencysite/internal/service"
	"github.com/templui/agencysite/internal/storage"
)

type stubRelay struct {
	mu   sync.Mutex
	sent []relay.Message
	err  error
}

func (s *stubRelay) Name() string { return "stub" }

func (s *stubRelay) Send(_ context.Context, msg relay.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return s.err
}

func (s *stubRelay) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func testConfig() *config.Config {
	return &config.Config{
		AppName:          "Nexa Digital",
		AppURL:           "https://agency.example.com",
		RelayServiceID:   "svc_1",
		RelayTemplateID:  "template_1",
		RelayAccessToken: "tok_secret",
		RelayTimeout:     time.Second,
	}
}

func newContactHandler(r relay.Relay) *ContactHandler {
	return newLimitedContactHandler(r, middleware.NewRateLimiter(100, time.Minute))
}

func newLimitedContactHandler(r relay.Relay, limiter Limiter) *ContactHandler {
	home := NewHomeHandler(service.NewSiteService(""), storage.NewEmbedded("/assets"))
	return NewContactHandler(r, testConfig(), home, limiter)
}

func fieldMux(h *ContactHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /contact/fields/{field}", h.Field)
	return mux
}

func postForm(target string, form url.Values, htmx bool) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return req
}

func validForm() url.Values {
	return url.Values{
		"name":    {"Alice Smith"},
		"email":   {"alice@example.com"},
		"message": {"I would like to discuss a web project."},
	}
}

func TestSubmitInvalidReturns422WithoutRelay(t *testing.T) {
	stub := &stubRelay{}
	h := newContactHandler(stub)

	rec := httptest.NewRecorder()
	h.Submit(rec, postForm("/contact", url.Values{"name": {"A"}, "email": {"bad"}}, true))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Zero(t, stub.calls())

	body := rec.Body.String()
	assert.Contains(t, body, `id="contact-form"`)
	assert.Contains(t, body, contact.MsgTooShort)
	assert.Contains(t, body, contact.MsgInvalidAddress)
	assert.Contains(t, body, contact.MsgRequired)
	assert.Equal(t, 3, strings.Count(body, `name="touched"`))
	assert.NotContains(t, body, "hx-swap-oob")
}

func TestSubmitSuccessClearsFormAndToasts(t *testing.T) {
	stub := &stubRelay{}
	h := newContactHandler(stub)

	rec := httptest.NewRecorder()
	h.Submit(rec, postForm("/contact", validForm(), true))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, stub.calls())

	msg := stub.sent[0]
	assert.Equal(t, "svc_1", msg.ServiceID)
	assert.Equal(t, "template_1", msg.TemplateID)
	assert.Equal(t, "tok_secret", msg.AccessToken)
	assert.Equal(t, relay.TemplateParams{
		Name:    "Alice Smith",
		Email:   "alice@example.com",
		Message: "I would like to discuss a web project.",
	}, msg.Params)

	body := rec.Body.String()
	assert.NotContains(t, body, "Alice Smith")
	assert.Contains(t, body, `hx-swap-oob="beforeend"`)
	assert.Contains(t, body, `data-toast="success"`)
	assert.Contains(t, body, "Thanks for contacting. We&#39;ll get back to you as soon as possible")
}

func TestSubmitRelayFailureKeepsValues(t *testing.T) {
	stub := &stubRelay{err: errors.New("relay down")}
	h := newContactHandler(stub)

	rec := httptest.NewRecorder()
	h.Submit(rec, postForm("/contact", validForm(), true))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, stub.calls())

	body := rec.Body.String()
	assert.Contains(t, body, `value="Alice Smith"`)
	assert.Contains(t, body, `data-toast="error"`)
	assert.Contains(t, body, "There was a problem sending your message. Please try again.")
	assert.NotContains(t, body, "relay down")
}

func TestSubmitPlainPostRendersPage(t *testing.T) {
	stub := &stubRelay{}
	h := newContactHandler(stub)

	rec := httptest.NewRecorder()
	h.Submit(rec, postForm("/contact", validForm(), false))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "<!doctype html>"))
	assert.Contains(t, body, `data-toast="success"`)
	assert.NotContains(t, body, "hx-swap-oob")
}

func TestBlurRendersOnlyThatField(t *testing.T) {
	mux := fieldMux(newContactHandler(&stubRelay{}))

	form := url.Values{"name": {"A"}, "email": {"bad"}, "touched": {"email"}}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, postForm("/contact/fields/name", form, true))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `id="field-name"`)
	assert.Contains(t, body, contact.MsgTooShort)
	assert.Contains(t, body, `name="touched" value="name"`)
	assert.Contains(t, body, `hx-post="/contact/fields/name?event=input"`)
	assert.NotContains(t, body, "field-email")
	assert.NotContains(t, body, contact.MsgInvalidAddress)
}

func TestInputClearsTouchedFieldError(t *testing.T) {
	mux := fieldMux(newContactHandler(&stubRelay{}))

	// The blur left "A" with an error; typing fixes it without another blur
	form := url.Values{"name": {"Alice"}, "touched": {"name"}}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, postForm("/contact/fields/name?event=input", form, true))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, `<div id="name-error"`))
	assert.NotContains(t, body, contact.MsgTooShort)
	assert.NotContains(t, body, `id="field-name"`)
	assert.NotContains(t, body, "<input")
}

func TestInputShowsTouchedFieldError(t *testing.T) {
	mux := fieldMux(newContactHandler(&stubRelay{}))

	form := url.Values{"email": {"alice@"}, "touched": {"email"}}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, postForm("/contact/fields/email?event=input", form, true))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), contact.MsgInvalidAddress)
}

func TestInputUntouchedFieldStaysQuiet(t *testing.T) {
	mux := fieldMux(newContactHandler(&stubRelay{}))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, postForm("/contact/fields/email?event=input", url.Values{"email": {"bad"}}, true))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), contact.MsgInvalidAddress)
}

func TestFieldUnknown(t *testing.T) {
	mux := fieldMux(newContactHandler(&stubRelay{}))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, postForm("/contact/fields/phone", url.Values{}, true))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInvalidSubmitsDoNotUseQuota(t *testing.T) {
	stub := &stubRelay{}
	h := newLimitedContactHandler(stub, middleware.NewRateLimiter(2, time.Minute))

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		h.Submit(rec, postForm("/contact", url.Values{"name": {"A"}}, true))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	}

	rec := httptest.NewRecorder()
	h.Submit(rec, postForm("/contact", validForm(), true))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, stub.calls())
}

func TestSubmitOverLimitRendersToast(t *testing.T) {
	stub := &stubRelay{}
	h := newLimitedContactHandler(stub, middleware.NewRateLimiter(1, time.Minute))

	rec := httptest.NewRecorder()
	h.Submit(rec, postForm("/contact", validForm(), true))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.Submit(rec, postForm("/contact", validForm(), true))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, 1, stub.calls())
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	body := rec.Body.String()
	assert.Contains(t, body, `id="contact-form"`)
	assert.Contains(t, body, `value="Alice Smith"`)
	assert.Contains(t, body, `hx-swap-oob="beforeend"`)
	assert.Contains(t, body, `data-toast="error"`)
	assert.Contains(t, body, contact.RateLimitedMessage)
}

func TestSubmitOverLimitPlainPost(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, time.Minute)
	limiter.Allow("192.0.2.1:1234")
	h := newLimitedContactHandler(&stubRelay{}, limiter)

	rec := httptest.NewRecorder()
	h.Submit(rec, postForm("/contact", validForm(), false))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "<!doctype html>"))
	assert.Contains(t, body, contact.RateLimitedMessage)
	assert.NotContains(t, body, "hx-swap-oob")
}

func TestSubmitStatus(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		ok      bool
		message string
	}{
		{"success", nil, http.StatusOK, true, ""},
		{"validation", &contact.ValidationError{}, http.StatusUnprocessableEntity, true, ""},
		{"relay failure", &contact.SubmissionError{Relay: "stub", Cause: errors.New("down")}, http.StatusOK, true, ""},
		{"in flight", contact.ErrSubmitInFlight, http.StatusConflict, true, contact.BusyMessage},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []contact.Notice
			n := contact.NotifierFunc(func(_ context.Context, notice contact.Notice) {
				got = append(got, notice)
			})

			status, ok := submitStatus(context.Background(), tt.err, n)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.ok, ok)
			if tt.message == "" {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, contact.SeverityError, got[0].Severity)
			assert.Equal(t, tt.message, got[0].Message)
		})
	}
}

func TestHomePage(t *testing.T) {
	h := NewHomeHandler(service.NewSiteService(t.TempDir()), storage.NewEmbedded("/assets"))

	rec := httptest.NewRecorder()
	h.HomePage(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="contact-form"`)
	assert.Contains(t, rec.Body.String(), `/assets/img/team/memb-1.svg`)

	rec = httptest.NewRecorder()
	h.NotFoundPage(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLegalPage(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "legal"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "legal", "privacy.md"),
		[]byte("---\ntitle: Privacy Policy\nlastUpdated: 2026-01-15\n---\n\nWe keep nothing.\n"), 0o644))

	h := NewLegalHandler(service.NewLegalService(dir, false))
	mux := http.NewServeMux()
	mux.HandleFunc("GET /legal/{page}", h.ShowPage)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/legal/privacy", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Privacy Policy")
	assert.Contains(t, rec.Body.String(), "We keep nothing.")

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/legal/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSEOHandler(t *testing.T) {
	legal := service.NewLegalService(t.TempDir(), false)
	h := NewSEOHandler(service.NewSitemapService(legal, "https://agency.example.com/"), "https://agency.example.com/")

	rec := httptest.NewRecorder()
	h.Robots(rec, httptest.NewRequest(http.MethodGet, "/robots.txt", nil))
	assert.Contains(t, rec.Body.String(), "Sitemap: https://agency.example.com/sitemap.xml")

	rec = httptest.NewRecorder()
	h.Sitemap(rec, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))
	assert.Equal(t, "application/xml; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<loc>https://agency.example.com/</loc>")
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	Health(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, "ok", rec.Body.String())
}
