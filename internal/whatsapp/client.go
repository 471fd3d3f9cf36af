// Package whatsapp sends template messages through the WhatsApp Business
// Cloud API (graph.facebook.com). Templates are pre-approved formats
// parameterized by positional text variables.
package whatsapp

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

const defaultBaseURL = "https://graph.facebook.com/v17.0"

// Client calls the Cloud API messages endpoint for one sender number.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	token         string
	phoneNumberID string
}

// New creates a client bound to the configured sender phone-number id.
func New(token, phoneNumberID string) *Client {
	return &Client{
		httpClient:    &http.Client{Timeout: 15 * time.Second},
		baseURL:       defaultBaseURL,
		token:         token,
		phoneNumberID: phoneNumberID,
	}
}

// NewWithBaseURL is used by tests to point the client at a fake gateway.
func NewWithBaseURL(token, phoneNumberID, baseURL string) *Client {
	c := New(token, phoneNumberID)
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

type templatePayload struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Template         template `json:"template"`
}

type template struct {
	Name       string      `json:"name"`
	Language   language    `json:"language"`
	Components []component `json:"components"`
}

type language struct {
	Code string `json:"code"`
}

type component struct {
	Type       string      `json:"type"`
	Parameters []parameter `json:"parameters"`
}

type parameter struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// SendTemplate sends a template message with positional body variables. The
// recipient is a phone number without the leading +.
func (c *Client) SendTemplate(ctx context.Context, to, templateName string, variables []string) error {
	if c.token == "" || c.phoneNumberID == "" {
		return fmt.Errorf("whatsapp credentials are not configured")
	}
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("recipient number missing")
	}

	params := make([]parameter, 0, len(variables))
	for _, v := range variables {
		params = append(params, parameter{Type: "text", Text: v})
	}

	payload := templatePayload{
		MessagingProduct: "whatsapp",
		To:               strings.TrimPrefix(to, "+"),
		Type:             "template",
		Template: template{
			Name:     templateName,
			Language: language{Code: "en_US"},
			Components: []component{
				{Type: "body", Parameters: params},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode whatsapp payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build whatsapp request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("whatsapp send failed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}
