package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/limitless-llc/checkout-relay/internal/config"
)

// maxUpstreamBody bounds how much of a provider error body is read back for
// diagnostics.
const maxUpstreamBody = 1024

// UpstreamError is a non-2xx reply from the email provider.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("MailChannels-style upstream error: %d: %s", e.Status, e.Body)
}

// Sender submits a rendered order email. Satisfied by *Client; tests supply
// stubs.
type Sender interface {
	Send(ctx context.Context, subject, replyTo string, rendered Rendered) error
}

// Client talks to a MailChannels-style transactional email API.
type Client struct {
	cfg        config.MailConfig
	httpClient *http.Client
}

// NewClient creates a mail client for the configured provider endpoint.
func NewClient(cfg config.MailConfig) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// MailChannels send-request schema. Only the fields this service uses.

type address struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type personalization struct {
	To []address `json:"to"`
}

type content struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sendRequest struct {
	Personalizations []personalization `json:"personalizations"`
	From             address           `json:"from"`
	ReplyTo          address           `json:"reply_to"`
	Subject          string            `json:"subject"`
	Content          []content         `json:"content"`
}

// Send posts the order email to the provider. The recipient and sender are
// fixed configuration; replyTo should be the customer's email when known,
// otherwise the operational recipient so replies always land somewhere.
func (c *Client) Send(ctx context.Context, subject, replyTo string, rendered Rendered) error {
	if replyTo == "" {
		replyTo = c.cfg.To
	}

	payload := sendRequest{
		Personalizations: []personalization{
			{To: []address{{Email: c.cfg.To}}},
		},
		From:    address{Email: c.cfg.FromEmail, Name: c.cfg.FromName},
		ReplyTo: address{Email: replyTo},
		Subject: subject,
		Content: []content{
			{Type: "text/plain", Value: rendered.Text},
			{Type: "text/html", Value: rendered.HTML},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode mail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call mail API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Bounded read: provider error bodies are diagnostics, not payload.
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
		return &UpstreamError{
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(raw)),
		}
	}

	return nil
}
