package contact

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/agencysite/internal/relay"
)

type stubRelay struct {
	mu      sync.Mutex
	calls   []relay.Message
	err     error
	block   chan struct{}
	started chan struct{}
}

func (s *stubRelay) Name() string { return "stub" }

func (s *stubRelay) Send(ctx context.Context, msg relay.Message) error {
	s.mu.Lock()
	s.calls = append(s.calls, msg)
	s.mu.Unlock()

	if s.started != nil {
		s.started <- struct{}{}
	}
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return s.err
}

func (s *stubRelay) Calls() []relay.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]relay.Message(nil), s.calls...)
}

type recordingNotifier struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *recordingNotifier) Notify(_ context.Context, n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *recordingNotifier) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestForm(r relay.Relay, n Notifier) *Form {
	return NewForm(r, n, Options{
		ServiceID:   "svc_test",
		TemplateID:  "template_test",
		AccessToken: "token_test",
		Timeout:     time.Second,
		Logger:      quietLogger(),
	})
}

func fill(f *Form, v Fields) {
	f.UpdateField(FieldName, v.Name)
	f.UpdateField(FieldEmail, v.Email)
	f.UpdateField(FieldMessage, v.Message)
}

func TestUpdateFieldValidatesOnlyTouched(t *testing.T) {
	f := newTestForm(&stubRelay{}, nil)

	f.UpdateField(FieldName, "A")
	assert.Empty(t, f.Errors(), "untouched field is not validated on change")

	f.BlurField(FieldName)
	assert.Equal(t, Errors{FieldName: MsgTooShort}, f.Errors())
	assert.True(t, f.Touched(FieldName))

	f.UpdateField(FieldName, "Alice")
	assert.Empty(t, f.Errors(), "touched field revalidates on change")
}

func TestUpdateFieldValidatesAfterSubmitAttempt(t *testing.T) {
	f := newTestForm(&stubRelay{}, nil)

	err := f.Submit(context.Background())
	require.Error(t, err)

	f.UpdateField(FieldEmail, "still-wrong")
	assert.Equal(t, MsgInvalidAddress, f.Errors()[FieldEmail])
}

func TestVisibleErrorsOnlyForTouched(t *testing.T) {
	f := newTestForm(&stubRelay{}, nil)
	f.Restore(Fields{Name: "A", Email: "bad"}, FieldEmail)

	assert.Equal(t, Errors{FieldEmail: MsgInvalidAddress}, f.VisibleErrors())
	assert.Equal(t, []Field{FieldEmail}, f.TouchedFields())
}

// Scenario A
func TestSubmitShortMessage(t *testing.T) {
	r := &stubRelay{}
	n := &recordingNotifier{}
	f := newTestForm(r, n)
	fill(f, Fields{Name: "Al", Email: "a@b.com", Message: "short"})

	err := f.Submit(context.Background())

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, Errors{FieldMessage: MsgTooShort}, verr.Errors)
	assert.Equal(t, Errors{FieldMessage: MsgTooShort}, f.Errors())
	assert.Empty(t, r.Calls())
	assert.Empty(t, n.Notices())
	assert.Equal(t, StatusIdle, f.Status())
	for _, field := range AllFields {
		assert.True(t, f.Touched(field), "submit touches %s", field)
	}
}

// Scenario D
func TestSubmitInvalidEmail(t *testing.T) {
	r := &stubRelay{}
	f := newTestForm(r, nil)
	fill(f, Fields{Name: "Alice", Email: "not-an-email", Message: "A long enough message."})

	err := f.Submit(context.Background())

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, Errors{FieldEmail: MsgInvalidAddress}, verr.Errors)
	assert.Empty(t, r.Calls())
}

// Scenario B
func TestSubmitSuccess(t *testing.T) {
	r := &stubRelay{}
	n := &recordingNotifier{}
	f := newTestForm(r, n)
	fill(f, validFields())
	f.BlurField(FieldName)

	err := f.Submit(context.Background())
	require.NoError(t, err)

	calls := r.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, relay.Message{
		ServiceID:   "svc_test",
		TemplateID:  "template_test",
		AccessToken: "token_test",
		Params: relay.TemplateParams{
			Name:    "Alice Smith",
			Email:   "alice@example.com",
			Message: "I would like to discuss a web project.",
		},
	}, calls[0])

	assert.Equal(t, StatusSucceeded, f.Status())
	assert.Equal(t, Fields{}, f.Values())
	assert.Empty(t, f.TouchedFields())
	assert.Empty(t, f.Errors())

	notices := n.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, SeveritySuccess, notices[0].Severity)
	assert.Equal(t, SuccessMessage, notices[0].Message)
	assert.Equal(t, 5*time.Second, notices[0].Duration)
	assert.Equal(t, PositionTopCenter, notices[0].Position)

	f.Dismiss()
	assert.Equal(t, StatusIdle, f.Status())
}

// Scenario C
func TestSubmitRelayFailure(t *testing.T) {
	cause := errors.New("connection refused")
	r := &stubRelay{err: cause}
	n := &recordingNotifier{}
	f := newTestForm(r, n)
	fill(f, validFields())

	err := f.Submit(context.Background())

	var serr *SubmissionError
	require.ErrorAs(t, err, &serr)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "stub", serr.Relay)
	assert.Len(t, r.Calls(), 1)
	assert.Equal(t, StatusFailed, f.Status())
	assert.Equal(t, validFields(), f.Values(), "values are kept for retry")

	notices := n.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, SeverityError, notices[0].Severity)
	assert.Equal(t, FailureMessage, notices[0].Message)
	assert.NotContains(t, notices[0].Message, cause.Error())

	f.Dismiss()
	assert.Equal(t, StatusIdle, f.Status())
}

func TestRetryAfterFailure(t *testing.T) {
	r := &stubRelay{err: errors.New("boom")}
	f := newTestForm(r, nil)
	fill(f, validFields())

	require.Error(t, f.Submit(context.Background()))
	assert.Equal(t, StatusFailed, f.Status())

	r.mu.Lock()
	r.err = nil
	r.mu.Unlock()

	require.NoError(t, f.Submit(context.Background()))
	assert.Len(t, r.Calls(), 2, "one relay call per user submit, no automatic retry")
	assert.Equal(t, StatusSucceeded, f.Status())
}

func TestSubmitWhileInFlight(t *testing.T) {
	r := &stubRelay{block: make(chan struct{}), started: make(chan struct{}, 1)}
	f := newTestForm(r, nil)
	fill(f, validFields())

	done := make(chan error, 1)
	go func() {
		done <- f.Submit(context.Background())
	}()

	<-r.started
	assert.Equal(t, StatusSubmitting, f.Status())

	err := f.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(r.block)
	require.NoError(t, <-done)
	assert.Len(t, r.Calls(), 1)
}

func TestSubmitTimeoutBoundsSubmitting(t *testing.T) {
	r := &stubRelay{block: make(chan struct{})}
	defer close(r.block)
	n := &recordingNotifier{}
	f := NewForm(r, n, Options{Timeout: 20 * time.Millisecond, Logger: quietLogger()})
	fill(f, validFields())

	err := f.Submit(context.Background())

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, StatusFailed, f.Status())
	require.Len(t, n.Notices(), 1)
	assert.Equal(t, SeverityError, n.Notices()[0].Severity)
}

func TestRelayCalledOnlyWhenAllValid(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(8086)
	parameters.MinSuccessfulTests = 150

	properties := gopter.NewProperties(parameters)

	emails := map[string]bool{
		"a@b.com":           true,
		"alice@example.com": true,
		"not-an-email":      false,
		"":                  false,
		"x@":                false,
		"@example.com":      false,
	}

	properties.Property("submit calls the relay iff every field is valid", prop.ForAll(
		func(nameLen, msgLen int, email string) bool {
			r := &stubRelay{}
			f := newTestForm(r, nil)
			fill(f, Fields{
				Name:    strings.Repeat("n", nameLen),
				Email:   email,
				Message: strings.Repeat("m", msgLen),
			})

			err := f.Submit(context.Background())

			valid := nameLen >= 2 && nameLen <= 50 &&
				msgLen >= 10 && msgLen <= 1000 &&
				emails[email]
			if valid {
				return err == nil && len(r.Calls()) == 1
			}
			var verr *ValidationError
			return errors.As(err, &verr) && len(r.Calls()) == 0 && len(verr.Errors) > 0
		},
		gen.IntRange(0, 60),
		gen.IntRange(0, 1010),
		gen.OneConstOf("a@b.com", "alice@example.com", "not-an-email", "", "x@", "@example.com"),
	))

	properties.TestingRun(t)
}
