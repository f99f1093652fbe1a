package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/designdynasty/authkit/internal/pkg/idempotency"
	"github.com/designdynasty/authkit/internal/pkg/mail"
)

type ConsumeUserRegisteredInput struct {
	EventID      string `validate:"required"`
	UserID       string `validate:"required"`
	Email        string `validate:"required,email"`
	Name         string `validate:"required"`
	Mobile       string
	RegisteredAt time.Time
}

func (s *Usecase) ConsumeUserRegistered(ctx context.Context, in ConsumeUserRegisteredInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeUserRegistered")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "dropping malformed user registered event", "event_id", in.EventID, "error", err)
		return nil
	}

	recipients := s.adminRecipients()
	if len(recipients) == 0 {
		slog.WarnContext(ctx, "no admin recipients configured, skipping registration notification", "event_id", in.EventID)
		return nil
	}

	err := s.deliverOnce(ctx, in.EventID, func(ctx context.Context) error {
		return s.sendWithRetry(ctx, mail.Message{
			To:      recipients,
			Subject: "New user registration",
			TextBody: fmt.Sprintf(
				"A new user has registered.\n\nName: %s\nEmail: %s\nMobile: %s\nRegistered: %s\n",
				in.Name, in.Email, in.Mobile, in.RegisteredAt.UTC().Format(time.RFC1123)),
		})
	})
	if errors.Is(err, idempotency.ErrAlreadyCompleted) || errors.Is(err, idempotency.ErrAlreadyInProgress) {
		slog.InfoContext(ctx, "registration notification already handled", "event_id", in.EventID)
		return nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to notify admins of registration", "event_id", in.EventID, "error", err)
		return err
	}

	return nil
}
