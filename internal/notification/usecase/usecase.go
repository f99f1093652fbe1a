package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/designdynasty/authkit/internal/pkg/clock"
	"github.com/designdynasty/authkit/internal/pkg/config"
	"github.com/designdynasty/authkit/internal/pkg/idempotency"
	"github.com/designdynasty/authkit/internal/pkg/instrument"
	"github.com/designdynasty/authkit/internal/pkg/mail"
	"github.com/designdynasty/authkit/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoMail interface {
	Send(ctx context.Context, msg mail.Message) error
}

type Usecase struct {
	repoMail    repoMail
	idempotency idempotency.Idempotency
	cfg         config.Config
	clock       clock.Clocker
	validator   validator.Validator
	ins         instrument.Instrumentation
}

type Dependency struct {
	RepoMail    repoMail
	Idempotency idempotency.Idempotency
	Config      config.Config
	Clock       clock.Clocker
	Validator   validator.Validator
	Instrument  instrument.Instrumentation
}

func NewNotification(dep Dependency) *Usecase {
	return &Usecase{
		repoMail:    dep.RepoMail,
		idempotency: dep.Idempotency,
		cfg:         dep.Config,
		clock:       dep.Clock,
		validator:   dep.Validator,
		ins:         dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("notification.usecase").Start(ctx, name)
}

// adminRecipients reads the comma-separated admin list, dropping empty
// entries so an unset key yields no recipients.
func (s *Usecase) adminRecipients() []string {
	var out []string
	for _, e := range s.cfg.GetArray("modules.notification.admin_emails") {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}

// sendWithRetry delivers an admin mail with exponential backoff. These
// mails carry no secrets, so after the retry budget is spent the failure
// is logged and dropped.
func (s *Usecase) sendWithRetry(ctx context.Context, msg mail.Message) error {
	backoff := retry.NewExponential(500 * time.Millisecond)
	backoff = retry.WithMaxRetries(3, backoff)

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := s.repoMail.Send(ctx, msg); err != nil {
			slog.WarnContext(ctx, "admin mail send failed, will retry", "subject", msg.Subject, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
}

// deliverOnce wraps a delivery in an idempotency guard keyed by event id so
// redelivered messages do not duplicate admin mail.
func (s *Usecase) deliverOnce(ctx context.Context, eventID string, fn func(context.Context) error) error {
	return s.idempotency.Exec(ctx, "notification:"+eventID, fn,
		idempotency.WithLockDuration(time.Minute),
		idempotency.WithStateTTL(24*time.Hour),
	)
}
