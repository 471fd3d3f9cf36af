// Package outbox dispatches durably queued outbound messages once their
// fire-at time arrives. Each message is attempted at most once; gateway
// failures are logged and recorded, never retried.
package outbox

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pathakanu/mailmind/internal/model"
	"github.com/pathakanu/mailmind/internal/store"
)

// WhatsAppSender sends a template message with positional variables.
type WhatsAppSender interface {
	SendTemplate(ctx context.Context, to, templateName string, variables []string) error
}

// SMSSender sends a plain text message.
type SMSSender interface {
	Send(to, body string) error
}

// Dispatcher drains due messages from the outbox store.
type Dispatcher struct {
	outbox   *store.OutboxStore
	whatsapp WhatsAppSender
	sms      SMSSender
	logger   *zap.Logger
	now      func() time.Time
}

func New(outbox *store.OutboxStore, whatsapp WhatsAppSender, sms SMSSender, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		outbox:   outbox,
		whatsapp: whatsapp,
		sms:      sms,
		logger:   logger,
		now:      time.Now,
	}
}

// WithNow overrides the clock. Used by tests.
func (d *Dispatcher) WithNow(now func() time.Time) *Dispatcher {
	d.now = now
	return d
}

// DispatchDue sends every due message and marks it sent, recording any
// gateway error alongside. Returns how many messages were attempted.
func (d *Dispatcher) DispatchDue(ctx context.Context) (int, error) {
	now := d.now()
	due, err := d.outbox.DueMessages(ctx, now)
	if err != nil {
		return 0, err
	}

	for _, msg := range due {
		sendErr := d.send(ctx, msg)
		errText := ""
		if sendErr != nil {
			errText = sendErr.Error()
			d.logger.Warn("outbox: send failed",
				zap.String("message", msg.ID),
				zap.String("channel", msg.Channel),
				zap.Error(sendErr),
			)
		}
		if err := d.outbox.MarkSent(ctx, msg.ID, now, errText); err != nil {
			d.logger.Error("outbox: mark sent", zap.String("message", msg.ID), zap.Error(err))
		}
	}
	return len(due), nil
}

func (d *Dispatcher) send(ctx context.Context, msg model.OutboundMessage) error {
	switch msg.Channel {
	case model.ChannelWhatsApp:
		if d.whatsapp == nil {
			return fmt.Errorf("whatsapp gateway not configured")
		}
		return d.whatsapp.SendTemplate(ctx, msg.Recipient, msg.TemplateName, msg.Variables)
	case model.ChannelSMS:
		if d.sms == nil {
			return fmt.Errorf("sms gateway not configured")
		}
		return d.sms.Send(msg.Recipient, smsBody(msg.Variables))
	default:
		return fmt.Errorf("unknown channel %q", msg.Channel)
	}
}

// smsBody flattens the template variables [title, description, "date time"]
// into a single text message.
func smsBody(variables []string) string {
	switch len(variables) {
	case 0:
		return "Reminder"
	case 1:
		return fmt.Sprintf("Reminder: %s", variables[0])
	case 2:
		return fmt.Sprintf("Reminder: %s - %s", variables[0], variables[1])
	default:
		return fmt.Sprintf("Reminder: %s - %s (due %s)", variables[0], variables[1], variables[2])
	}
}
