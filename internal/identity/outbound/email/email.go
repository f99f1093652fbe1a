package email

import (
	"context"
	"fmt"
	"time"

	"github.com/designdynasty/authkit/internal/pkg/instrument"
	"github.com/designdynasty/authkit/internal/pkg/mail"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Mail sends the identity mails that carry secrets. Every send here is
// synchronous; the caller decides whether a failure is fatal.
type Mail struct {
	client mail.Mail
	from   string
	ins    instrument.Instrumentation
}

func New(client mail.Mail, from string, ins instrument.Instrumentation) *Mail {
	return &Mail{client: client, from: from, ins: ins}
}

func (m *Mail) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return m.ins.Tracer("identity.outbound.email").Start(ctx, name)
}

func (m *Mail) send(ctx context.Context, span trace.Span, msg mail.Message) error {
	if err := m.client.Send(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (m *Mail) SendOtp(ctx context.Context, to, name, code string, expiresAt time.Time) error {
	ctx, span := m.startSpan(ctx, "SendOtp")
	defer span.End()

	return m.send(ctx, span, mail.Message{
		From:    m.from,
		To:      []string{to},
		Subject: "Your verification code",
		TextBody: fmt.Sprintf(
			"Hi %s,\n\nYour verification code is %s. It expires at %s.\n\nIf you did not request this, you can ignore this email.\n",
			name, code, expiresAt.UTC().Format(time.RFC1123)),
		HTMLBody: fmt.Sprintf(
			"<p>Hi %s,</p><p>Your verification code is <b>%s</b>. It expires at %s.</p><p>If you did not request this, you can ignore this email.</p>",
			name, code, expiresAt.UTC().Format(time.RFC1123)),
	})
}

func (m *Mail) SendTemporaryPassword(ctx context.Context, to, name, password string) error {
	ctx, span := m.startSpan(ctx, "SendTemporaryPassword")
	defer span.End()

	return m.send(ctx, span, mail.Message{
		From:    m.from,
		To:      []string{to},
		Subject: "Your account is ready",
		TextBody: fmt.Sprintf(
			"Hi %s,\n\nYour account has been created. Your temporary password is %s.\n\nPlease log in and change it right away.\n",
			name, password),
		HTMLBody: fmt.Sprintf(
			"<p>Hi %s,</p><p>Your account has been created. Your temporary password is <b>%s</b>.</p><p>Please log in and change it right away.</p>",
			name, password),
	})
}

func (m *Mail) SendResetPassword(ctx context.Context, to, name, password string) error {
	ctx, span := m.startSpan(ctx, "SendResetPassword")
	defer span.End()

	return m.send(ctx, span, mail.Message{
		From:    m.from,
		To:      []string{to},
		Subject: "Your password has been reset",
		TextBody: fmt.Sprintf(
			"Hi %s,\n\nYour new password is %s.\n\nPlease log in and change it right away.\n",
			name, password),
		HTMLBody: fmt.Sprintf(
			"<p>Hi %s,</p><p>Your new password is <b>%s</b>.</p><p>Please log in and change it right away.</p>",
			name, password),
	})
}
