package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/designdynasty/authkit/internal/contact/entity"
	"github.com/designdynasty/authkit/internal/pkg/instrument"
	"github.com/designdynasty/authkit/internal/pkg/mail"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Mail relays contact submissions to the site owner and acknowledges
// senders.
type Mail struct {
	client mail.Mail
	from   string
	owner  string
	ins    instrument.Instrumentation
}

func New(client mail.Mail, from, owner string, ins instrument.Instrumentation) *Mail {
	return &Mail{client: client, from: from, owner: owner, ins: ins}
}

func (m *Mail) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return m.ins.Tracer("contact.outbound.email").Start(ctx, name)
}

func (m *Mail) send(ctx context.Context, span trace.Span, msg mail.Message) error {
	if err := m.client.Send(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func attachments(att *entity.Attachment) []mail.Attachment {
	if att == nil {
		return nil
	}
	return []mail.Attachment{{
		Filename:    att.Filename,
		ContentType: att.ContentType,
		Content:     att.Content,
	}}
}

func (m *Mail) RelaySubmission(ctx context.Context, sub entity.Submission) error {
	ctx, span := m.startSpan(ctx, "RelaySubmission")
	defer span.End()

	var b strings.Builder
	fmt.Fprintf(&b, "Reference: %s\n", sub.Reference)
	fmt.Fprintf(&b, "Name: %s\nEmail: %s\nMobile: %s\n\n", sub.Name, sub.Email, sub.Mobile)
	fmt.Fprintf(&b, "%s\n", sub.Message)
	if sub.LinkURL != "" {
		fmt.Fprintf(&b, "\nAttachment: %s\n", sub.LinkURL)
	}

	return m.send(ctx, span, mail.Message{
		From:        m.from,
		To:          []string{m.owner},
		Subject:     fmt.Sprintf("Contact form submission %s", sub.Reference),
		TextBody:    b.String(),
		Attachments: attachments(sub.Attachment),
	})
}

func (m *Mail) RelayBrief(ctx context.Context, brief entity.Brief) error {
	ctx, span := m.startSpan(ctx, "RelayBrief")
	defer span.End()

	var b strings.Builder
	fmt.Fprintf(&b, "Reference: %s\n", brief.Reference)
	fmt.Fprintf(&b, "Name: %s\nEmail: %s\nMobile: %s\nCompany: %s\n\n", brief.Name, brief.Email, brief.Mobile, brief.Company)
	fmt.Fprintf(&b, "Project type: %s\nBudget: %s\nTimeline: %s\n\n", brief.ProjectType, brief.Budget, brief.Timeline)
	fmt.Fprintf(&b, "%s\n", brief.Description)
	if brief.LinkURL != "" {
		fmt.Fprintf(&b, "\nAttachment: %s\n", brief.LinkURL)
	}

	return m.send(ctx, span, mail.Message{
		From:        m.from,
		To:          []string{m.owner},
		Subject:     fmt.Sprintf("Project brief %s", brief.Reference),
		TextBody:    b.String(),
		Attachments: attachments(brief.Attachment),
	})
}

func (m *Mail) AckSender(ctx context.Context, to, name, reference string) error {
	ctx, span := m.startSpan(ctx, "AckSender")
	defer span.End()

	return m.send(ctx, span, mail.Message{
		From:    m.from,
		To:      []string{to},
		Subject: "We received your message",
		TextBody: fmt.Sprintf(
			"Hi %s,\n\nThanks for reaching out. Your reference number is %s. We will get back to you shortly.\n",
			name, reference),
	})
}
