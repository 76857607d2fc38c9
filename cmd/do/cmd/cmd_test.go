package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/agencysite/internal/config"
	"github.com/templui/agencysite/internal/contact"
	"github.com/templui/agencysite/internal/relay"
)

func TestSendContactValid(t *testing.T) {
	var out bytes.Buffer
	cfg := &config.Config{RelayTimeout: time.Second}

	err := sendContact(context.Background(), &out, relay.NewLog(nil), cfg, contact.Fields{
		Name:    "Alice Smith",
		Email:   "alice@example.com",
		Message: "Testing the relay from the command line.",
	})
	require.NoError(t, err)
	assert.Equal(t, "[success] "+contact.SuccessMessage+"\n", out.String())
}

func TestSendContactInvalid(t *testing.T) {
	var out bytes.Buffer
	cfg := &config.Config{RelayTimeout: time.Second}

	err := sendContact(context.Background(), &out, relay.NewLog(nil), cfg, contact.Fields{Name: "A"})
	require.Error(t, err)
	assert.Contains(t, out.String(), "--name: too short")
	assert.Contains(t, out.String(), "--email: required")
	assert.Contains(t, out.String(), "--message: required")
}

type memStorage struct {
	files map[string]string
	types map[string]string
}

func (m *memStorage) Save(_ context.Context, path string, r io.Reader, contentType string) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.files[path] = string(b)
	m.types[path] = contentType
	return nil
}

func (m *memStorage) URL(path string) string { return "mem://" + path }

func TestPushAssets(t *testing.T) {
	fsys := fstest.MapFS{
		"favicon.svg":          {Data: []byte("<svg/>")},
		"team/memb-1.svg":      {Data: []byte("<svg>1</svg>")},
		"clients/client-1.png": {Data: []byte("png")},
	}
	s := &memStorage{files: map[string]string{}, types: map[string]string{}}

	n, err := pushAssets(context.Background(), s, fsys, "img")
	require.NoError(t, err)

	assert.Equal(t, 3, n)
	assert.Equal(t, "<svg>1</svg>", s.files["img/team/memb-1.svg"])
	assert.Equal(t, "image/svg+xml", s.types["img/favicon.svg"])
	assert.Equal(t, "image/png", s.types["img/clients/client-1.png"])
}

func TestSkipTempl(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.MkdirAll("internal/ui", 0o755))

	src := filepath.Join("internal", "ui", "page.templ")
	out := filepath.Join("internal", "ui", "page_templ.go")
	require.NoError(t, os.WriteFile(src, []byte("package ui"), 0o644))
	assert.False(t, skipTempl(), "missing output")

	require.NoError(t, os.WriteFile(out, []byte("package ui"), 0o644))
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(src, past, past))
	assert.True(t, skipTempl())

	require.NoError(t, os.Chtimes(src, time.Now().Add(time.Hour), time.Now().Add(time.Hour)))
	assert.False(t, skipTempl(), "stale output")
}
