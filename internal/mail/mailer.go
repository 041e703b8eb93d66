package mail

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// Message is a plain-text notification email.
type Message struct {
	To      []string
	Subject string
	Text    string
}

// Notifier delivers notification emails. The contract is at-most-once,
// best-effort: callers commit their state change first, dispatch the message
// after, and treat failures as log-only events.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// ResendNotifier delivers mail through the Resend API.
type ResendNotifier struct {
	client *resend.Client
	from   string
}

var _ Notifier = (*ResendNotifier)(nil)

// NewResendNotifier creates a notifier using the configured API key.
func NewResendNotifier(apiKey, from string) *ResendNotifier {
	return &ResendNotifier{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// Send delivers one message, returning the transport error for the caller to
// log and swallow.
func (n *ResendNotifier) Send(ctx context.Context, msg Message) error {
	params := &resend.SendEmailRequest{
		From:    n.from,
		To:      msg.To,
		Subject: msg.Subject,
		Text:    msg.Text,
	}
	if _, err := n.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
