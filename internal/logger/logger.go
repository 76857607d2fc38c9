package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/getsentry/sentry-go"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
)

// Log is the global logger instance
var Log *slog.Logger

// redactedKeys are attribute keys whose values never reach a log sink.
var redactedKeys = map[string]bool{
	"access_token": true,
	"accesstoken":  true,
	"api_key":      true,
	"token":        true,
	"password":     true,
}

// Init initializes the global logger based on environment
// Development: Text format with Debug level
// Production: JSON format with Info level
// Optionally sends errors to Sentry for error tracking
func Init(isDev bool, sentryDSN string) {
	var handlers []slog.Handler

	opts := &slog.HandlerOptions{
		Level:       slog.LevelInfo,
		ReplaceAttr: Redact,
	}

	if isDev {
		opts.Level = slog.LevelDebug
		handlers = append(handlers, slog.NewTextHandler(os.Stdout, opts))
	} else {
		handlers = append(handlers, slog.NewJSONHandler(os.Stdout, opts))
	}

	// Optional Sentry handler (sends errors only)
	if sentryDSN != "" {
		env := "production"
		if isDev {
			env = "development"
		}
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              sentryDSN,
			Environment:      env,
			TracesSampleRate: 0.2,
		})
		if err == nil {
			handlers = append(handlers, slogsentry.Option{
				Level:       slog.LevelError,
				ReplaceAttr: Redact,
			}.NewSentryHandler())
		}
	}

	Log = New(handlers...)
	slog.SetDefault(Log)
}

// New builds a logger that fans out to every handler given.
func New(handlers ...slog.Handler) *slog.Logger {
	if len(handlers) == 1 {
		return slog.New(handlers[0])
	}
	return slog.New(slogmulti.Fanout(handlers...))
}

// Redact replaces the value of secret-bearing attributes.
func Redact(groups []string, a slog.Attr) slog.Attr {
	if redactedKeys[strings.ToLower(a.Key)] {
		return slog.String(a.Key, "[redacted]")
	}
	return a
}
