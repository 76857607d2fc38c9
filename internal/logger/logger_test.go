package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactHidesSecrets(t *testing.T) {
	var buf bytes.Buffer
	log := New(slog.NewTextHandler(&buf, &slog.HandlerOptions{ReplaceAttr: Redact}))

	log.Info("relay configured", "access_token", "s3cr3t", "provider", "emailjs")

	out := buf.String()
	assert.NotContains(t, out, "s3cr3t")
	assert.Contains(t, out, "access_token=[redacted]")
	assert.Contains(t, out, "provider=emailjs")
}

func TestNewFansOut(t *testing.T) {
	var a, b bytes.Buffer
	log := New(slog.NewTextHandler(&a, nil), slog.NewJSONHandler(&b, nil))

	log.Warn("hello")

	assert.Contains(t, a.String(), "hello")
	assert.Contains(t, b.String(), `"msg":"hello"`)
}
