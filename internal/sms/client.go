// Package sms sends plain text alerts via Twilio.
package sms

import (
	"fmt"
	"strings"

	twilio "github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Client wraps Twilio messaging for SMS text alerts.
type Client struct {
	client *twilio.RestClient
	from   string
}

// New creates a Twilio client bound to the configured sender number. An empty
// account SID leaves the client unconfigured; sends then fail loudly.
func New(accountSID, authToken, from string) *Client {
	if accountSID == "" {
		return &Client{}
	}
	return &Client{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{Username: accountSID, Password: authToken}),
		from:   from,
	}
}

// Send sends an SMS message to the given number.
func (c *Client) Send(to, body string) error {
	if c.client == nil {
		return fmt.Errorf("twilio client not initialised")
	}
	if strings.TrimSpace(c.from) == "" {
		return fmt.Errorf("twilio sender number is not configured")
	}
	recipient := normalizeNumber(to)
	if recipient == "" {
		return fmt.Errorf("recipient number missing or invalid")
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(recipient)
	params.SetFrom(normalizeNumber(c.from))
	params.SetBody(body)

	if _, err := c.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio send message error: %w", err)
	}
	return nil
}

func normalizeNumber(number string) string {
	trimmed := strings.TrimSpace(number)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "+") {
		return trimmed
	}
	return "+" + trimmed
}
