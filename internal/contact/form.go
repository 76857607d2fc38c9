// Package contact implements the contact form: field state, validation and
// a single-flight submission to an email relay.
package contact

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/templui/agencysite/internal/relay"
)

type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
)

// DefaultTimeout bounds how long a form stays in StatusSubmitting.
const DefaultTimeout = 12 * time.Second

// Options carries the fixed relay identifiers and the access token.
// The token comes from process configuration and is never logged.
type Options struct {
	ServiceID   string
	TemplateID  string
	AccessToken string
	Timeout     time.Duration
	Logger      *slog.Logger
}

// Form is the state of one contact form for one page view.
// It is safe for concurrent use; at most one relay call is in flight.
type Form struct {
	relay    relay.Relay
	notifier Notifier
	opts     Options

	mu        sync.Mutex
	values    Fields
	errors    Errors
	touched   map[Field]bool
	attempted bool
	status    Status
}

func NewForm(r relay.Relay, n Notifier, opts Options) *Form {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if n == nil {
		n = NotifierFunc(func(context.Context, Notice) {})
	}
	return &Form{
		relay:    r,
		notifier: n,
		opts:     opts,
		errors:   Errors{},
		touched:  make(map[Field]bool),
		status:   StatusIdle,
	}
}

// Restore rebuilds form state posted back by a browser: values plus the
// fields already touched. Errors are recomputed for touched fields only.
func (f *Form) Restore(values Fields, touched ...Field) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.values = values
	f.errors = Errors{}
	f.touched = make(map[Field]bool, len(touched))
	for _, field := range touched {
		f.touched[field] = true
		f.revalidate(field)
	}
}

// UpdateField sets a value. The field's error is recomputed when the field
// was already touched or a submit was attempted.
func (f *Form) UpdateField(field Field, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.values.Set(field, value)
	if f.touched[field] || f.attempted {
		f.revalidate(field)
	}
}

// BlurField marks the field touched and recomputes its error.
func (f *Form) BlurField(field Field) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.touched[field] = true
	f.revalidate(field)
}

// revalidate must be called with mu held.
func (f *Form) revalidate(field Field) {
	if msg := ValidateField(f.values, field); msg != "" {
		f.errors[field] = msg
		return
	}
	delete(f.errors, field)
}

// Submit validates every field and, when all pass, sends the values to the
// relay once. The outcome is reported through the notifier.
//
// Returns ErrSubmitInFlight, *ValidationError or *SubmissionError. Callers
// present those to the user; none of them need further handling.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.status == StatusSubmitting {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}

	// A new submit clears any previous outcome.
	f.status = StatusIdle
	f.attempted = true

	errs := Validate(f.values)
	if len(errs) > 0 {
		for _, field := range AllFields {
			f.touched[field] = true
		}
		f.errors = errs
		f.mu.Unlock()
		return &ValidationError{Errors: errs.clone()}
	}

	f.errors = Errors{}
	f.status = StatusSubmitting
	msg := relay.Message{
		ServiceID:   f.opts.ServiceID,
		TemplateID:  f.opts.TemplateID,
		AccessToken: f.opts.AccessToken,
		Params: relay.TemplateParams{
			Name:    f.values.Name,
			Email:   f.values.Email,
			Message: f.values.Message,
		},
	}
	f.mu.Unlock()

	sendCtx, cancel := context.WithTimeout(ctx, f.opts.Timeout)
	err := f.relay.Send(sendCtx, msg)
	cancel()

	if err != nil {
		f.mu.Lock()
		f.status = StatusFailed
		f.mu.Unlock()

		f.opts.Logger.ErrorContext(ctx, "contact submission failed",
			"relay", f.relay.Name(),
			"error", err,
		)
		f.notifier.Notify(ctx, failureNotice())
		return &SubmissionError{Relay: f.relay.Name(), Cause: err}
	}

	f.mu.Lock()
	f.values = Fields{}
	f.errors = Errors{}
	f.touched = make(map[Field]bool)
	f.attempted = false
	f.status = StatusSucceeded
	f.mu.Unlock()

	f.opts.Logger.InfoContext(ctx, "contact submission sent", "relay", f.relay.Name())
	f.notifier.Notify(ctx, successNotice())
	return nil
}

// Dismiss is called when the outcome notice goes away.
func (f *Form) Dismiss() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.status == StatusSucceeded || f.status == StatusFailed {
		f.status = StatusIdle
	}
}

func (f *Form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

func (f *Form) Values() Fields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Errors returns every current validation error.
func (f *Form) Errors() Errors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors.clone()
}

// VisibleErrors returns errors of touched fields, the ones shown inline.
func (f *Form) VisibleErrors() Errors {
	f.mu.Lock()
	defer f.mu.Unlock()

	visible := Errors{}
	for field, msg := range f.errors {
		if f.touched[field] {
			visible[field] = msg
		}
	}
	return visible
}

func (f *Form) Touched(field Field) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.touched[field]
}

// TouchedFields lists touched fields in display order.
func (f *Form) TouchedFields() []Field {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []Field
	for _, field := range AllFields {
		if f.touched[field] {
			out = append(out, field)
		}
	}
	return out
}
