package mail

import (
	"context"
	"io"
)

// Attachment is a file carried along with a message.
type Attachment struct {
	// Filename is the name presented to the recipient.
	Filename string
	// ContentType is the MIME type of the content.
	ContentType string
	// Content is the raw file bytes.
	Content []byte
}

// Message represents an email payload.
//
// Fields are intentionally provider-agnostic so they can be sent using SMTP or
// other delivery mechanisms.
type Message struct {
	// From is an optional explicit sender; fallback depends on implementation.
	From string
	// To lists required recipients.
	To []string
	// Cc lists carbon copy recipients.
	Cc []string
	// Bcc lists blind carbon copy recipients.
	Bcc []string
	// Subject is the email subject line.
	Subject string
	// TextBody is the plain-text body; preferred when HTMLBody is empty.
	TextBody string
	// HTMLBody is the optional HTML body.
	HTMLBody string
	// Attachments are optional files delivered with the message.
	Attachments []Attachment
}

// Mail abstracts an email provider (SMTP, third-party API, etc).
type Mail interface {
	io.Closer
	// Send dispatches the given message using the underlying provider.
	Send(ctx context.Context, msg Message) error
}
