package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	emailJSSendPath = "/api/v1.0/email/send"
	maxErrorBody    = 512
)

// EmailJS sends messages through the EmailJS REST API.
type EmailJS struct {
	client    *http.Client
	baseURL   string
	publicKey string
}

type emailJSRequest struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	AccessToken    string         `json:"accessToken,omitempty"`
	TemplateParams TemplateParams `json:"template_params"`
}

// NewEmailJS creates an EmailJS relay. A nil client gets one with the given timeout.
func NewEmailJS(baseURL, publicKey string, client *http.Client, timeout time.Duration) *EmailJS {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &EmailJS{
		client:    client,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		publicKey: publicKey,
	}
}

func (e *EmailJS) Name() string {
	return "emailjs"
}

func (e *EmailJS) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(emailJSRequest{
		ServiceID:      msg.ServiceID,
		TemplateID:     msg.TemplateID,
		UserID:         e.publicKey,
		AccessToken:    msg.AccessToken,
		TemplateParams: msg.Params,
	})
	if err != nil {
		return fmt.Errorf("failed to encode emailjs request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+emailJSSendPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build emailjs request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("emailjs request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(snippet)),
	}
}
