package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sintechbr/sst/internal/pkg/env"
)

// ErrNotConfigured is returned when the messaging endpoint or token is
// missing. Callers treat notification as best-effort and skip.
var ErrNotConfigured = errors.New("whatsapp API is not configured")

const defaultTimeout = 10 * time.Second

// Sender is the outbound notification contract.
type Sender interface {
	Send(ctx context.Context, phone, message string) error
}

// Client posts messages to the WhatsApp gateway.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
}

// NewClient builds a client from explicit settings.
func NewClient(endpoint, token string) *Client {
	return &Client{
		endpoint: endpoint,
		token:    token,
		http:     &http.Client{Timeout: defaultTimeout},
	}
}

// NewClientFromEnv builds a client from WHATSAPP_API_URL and
// WHATSAPP_TOKEN. The client is still usable when unconfigured; Send
// reports ErrNotConfigured.
func NewClientFromEnv() *Client {
	return NewClient(
		env.GetEnv("WHATSAPP_API_URL", ""),
		env.GetEnv("WHATSAPP_TOKEN", ""),
	)
}

type sendRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// Send posts a message to a phone number. Only success/failure is
// consumed from the gateway response.
func (c *Client) Send(ctx context.Context, phone, message string) error {
	if c.endpoint == "" || c.token == "" {
		return ErrNotConfigured
	}

	body, err := json.Marshal(sendRequest{Phone: phone, Message: message})
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("whatsapp gateway returned status %d", resp.StatusCode)
	}
	return nil
}
