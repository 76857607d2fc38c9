package contact

import (
	"context"
	"time"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

const (
	NoticeDuration    = 5 * time.Second
	PositionTopCenter = "top-center"

	SuccessMessage     = "Thanks for contacting. We'll get back to you as soon as possible"
	FailureMessage     = "There was a problem sending your message. Please try again."
	RateLimitedMessage = "You have sent several messages in a short time. Please try again in a few minutes."
	BusyMessage        = "Your message is already being sent."
)

// Notice is a transient, dismissible message reporting a submit outcome.
type Notice struct {
	Severity Severity
	Message  string
	Duration time.Duration
	Position string
}

// Notifier shows notices to the user. Fire and forget.
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, n Notice)

func (f NotifierFunc) Notify(ctx context.Context, n Notice) {
	f(ctx, n)
}

func successNotice() Notice {
	return Notice{
		Severity: SeveritySuccess,
		Message:  SuccessMessage,
		Duration: NoticeDuration,
		Position: PositionTopCenter,
	}
}

func failureNotice() Notice {
	return errorNotice(FailureMessage)
}

// RateLimitedNotice is shown when a valid submit is refused before reaching the relay.
func RateLimitedNotice() Notice {
	return errorNotice(RateLimitedMessage)
}

// BusyNotice is shown when a submit arrives while another is in flight.
func BusyNotice() Notice {
	return errorNotice(BusyMessage)
}

func errorNotice(msg string) Notice {
	return Notice{
		Severity: SeverityError,
		Message:  msg,
		Duration: NoticeDuration,
		Position: PositionTopCenter,
	}
}
