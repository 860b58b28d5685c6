package mail

import (
	"context"
	"io"
)

// Message is a provider-agnostic email payload. The mailer fills To,
// Subject, and the bodies from the event it consumed; everything else is
// optional.
type Message struct {
	// From overrides the configured default sender when set.
	From string
	// To lists the recipients.
	To []string
	// Cc lists carbon copy recipients.
	Cc []string
	// Bcc lists blind carbon copy recipients.
	Bcc []string
	// Subject is the subject line.
	Subject string
	// TextBody is the plain-text body.
	TextBody string
	// HTMLBody is an optional HTML alternative.
	HTMLBody string
}

// Mail delivers messages through some provider.
type Mail interface {
	io.Closer
	// Send dispatches msg. The error carries the provider's reason verbatim.
	Send(ctx context.Context, msg Message) error
}
