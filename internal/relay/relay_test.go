package relay

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/agencysite/internal/config"
)

func testMessage() Message {
	return Message{
		ServiceID:   "svc_1",
		TemplateID:  "template_1",
		AccessToken: "tok_secret",
		Params: TemplateParams{
			Name:    "Alice Smith",
			Email:   "alice@example.com",
			Message: "I would like to discuss a web project.",
		},
	}
}

func TestEmailJSSendsPayload(t *testing.T) {
	var got emailJSRequest
	var gotPath, gotContentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		_, _ = w.Write([]byte("OK"))
	}))
	defer srv.Close()

	ej := NewEmailJS(srv.URL+"/", "pk_public", srv.Client(), time.Second)
	err := ej.Send(context.Background(), testMessage())
	require.NoError(t, err)

	assert.Equal(t, emailJSSendPath, gotPath)
	assert.Equal(t, "application/json", gotContentType)

	want := emailJSRequest{
		ServiceID:   "svc_1",
		TemplateID:  "template_1",
		UserID:      "pk_public",
		AccessToken: "tok_secret",
		TemplateParams: TemplateParams{
			Name:    "Alice Smith",
			Email:   "alice@example.com",
			Message: "I would like to discuss a web project.",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("request body mismatch (-want +got):\n%s", diff)
	}
}

func TestEmailJSRejectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("The access token is invalid"))
	}))
	defer srv.Close()

	ej := NewEmailJS(srv.URL, "pk", srv.Client(), time.Second)
	err := ej.Send(context.Background(), testMessage())

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
	assert.Equal(t, "The access token is invalid", statusErr.Body)
	assert.NotContains(t, err.Error(), "tok_secret")
}

func TestEmailJSTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ej := NewEmailJS(srv.URL, "pk", nil, 50*time.Millisecond)

	start := time.Now()
	err := ej.Send(context.Background(), testMessage())

	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestEmailJSContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	ej := NewEmailJS(srv.URL, "pk", srv.Client(), 0)
	err := ej.Send(ctx, testMessage())

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestResendSendsToInbox(t *testing.T) {
	var gotPath string
	var got map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"email_123"}`))
	}))
	defer srv.Close()

	client := resend.NewCustomClient(srv.Client(), "re_test")
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	client.BaseURL = base

	r := NewResend(client, "noreply@example.com", "inbox@agency.test")
	err = r.Send(context.Background(), testMessage())
	require.NoError(t, err)

	assert.Equal(t, "/emails", gotPath)
	assert.Equal(t, "New contact from Alice Smith", got["subject"])
	assert.Equal(t, []any{"inbox@agency.test"}, got["to"])
	assert.Contains(t, got["text"], "I would like to discuss a web project.")
}

func TestLogRelayAcceptsMessage(t *testing.T) {
	l := NewLog(nil)
	assert.NoError(t, l.Send(context.Background(), testMessage()))
	assert.Equal(t, "log", l.Name())
}

func TestNewSelectsProvider(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		want    string
		wantErr bool
	}{
		{
			name: "emailjs",
			cfg:  config.Config{RelayProvider: config.RelayEmailJS, RelayAccessToken: "t", EmailJSPublicKey: "pk", RelayTimeout: time.Second},
			want: "emailjs",
		},
		{
			name: "resend",
			cfg:  config.Config{RelayProvider: config.RelayResend, ResendAPIKey: "re_1", ContactInbox: "a@b.com", RelayTimeout: time.Second},
			want: "resend",
		},
		{
			name: "log in development",
			cfg:  config.Config{RelayProvider: config.RelayLog, AppEnv: "development"},
			want: "log",
		},
		{
			name: "emailjs without strict mode token",
			cfg:  config.Config{RelayProvider: config.RelayEmailJS, EmailJSPublicKey: "pk", RelayTimeout: time.Second},
			want: "emailjs",
		},
		{
			name:    "emailjs without public key",
			cfg:     config.Config{RelayProvider: config.RelayEmailJS, RelayAccessToken: "t"},
			wantErr: true,
		},
		{
			name:    "unknown",
			cfg:     config.Config{RelayProvider: "pigeon"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(&tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Name())
		})
	}
}
