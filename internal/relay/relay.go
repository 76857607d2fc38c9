// Package relay delivers contact submissions to a third-party email service.
package relay

import (
	"context"
	"fmt"
)

// TemplateParams are the form values the relay template renders.
type TemplateParams struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Message is a single contact submission addressed to a relay template.
type Message struct {
	ServiceID   string
	TemplateID  string
	AccessToken string
	Params      TemplateParams
}

// Relay defines the interface that all email relays must implement
type Relay interface {
	// Send delivers the message. Any error means the message was not accepted.
	Send(ctx context.Context, msg Message) error

	// Name returns the relay name (e.g., "emailjs", "resend")
	Name() string
}

// StatusError is returned when the relay answers with a non-success status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("relay rejected request: status %d", e.StatusCode)
	}
	return fmt.Sprintf("relay rejected request: status %d: %s", e.StatusCode, e.Body)
}
