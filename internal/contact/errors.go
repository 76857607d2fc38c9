package contact

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSubmitInFlight is returned when Submit is called while a submission is pending.
var ErrSubmitInFlight = errors.New("contact: submission already in flight")

// ValidationError reports fields that failed validation. Nothing was sent.
type ValidationError struct {
	Errors Errors
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, f := range AllFields {
		if msg, ok := e.Errors[f]; ok {
			parts = append(parts, fmt.Sprintf("%s: %s", f, msg))
		}
	}
	return "contact: invalid form: " + strings.Join(parts, ", ")
}

// SubmissionError reports a relay failure. The cause is for logs only.
type SubmissionError struct {
	Relay string
	Cause error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("contact: %s relay failed: %v", e.Relay, e.Cause)
}

func (e *SubmissionError) Unwrap() error {
	return e.Cause
}
