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

type ConsumeUserLoggedInInput struct {
	EventID  string `validate:"required"`
	UserID   string `validate:"required"`
	Email    string `validate:"required,email"`
	Name     string `validate:"required"`
	LoggedAt time.Time
}

func (s *Usecase) ConsumeUserLoggedIn(ctx context.Context, in ConsumeUserLoggedInInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeUserLoggedIn")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "dropping malformed user logged in event", "event_id", in.EventID, "error", err)
		return nil
	}

	recipients := s.adminRecipients()
	if len(recipients) == 0 {
		slog.WarnContext(ctx, "no admin recipients configured, skipping login notification", "event_id", in.EventID)
		return nil
	}

	err := s.deliverOnce(ctx, in.EventID, func(ctx context.Context) error {
		return s.sendWithRetry(ctx, mail.Message{
			To:      recipients,
			Subject: "User login",
			TextBody: fmt.Sprintf(
				"User %s (%s) logged in at %s.\n",
				in.Name, in.Email, in.LoggedAt.UTC().Format(time.RFC1123)),
		})
	})
	if errors.Is(err, idempotency.ErrAlreadyCompleted) || errors.Is(err, idempotency.ErrAlreadyInProgress) {
		slog.InfoContext(ctx, "login notification already handled", "event_id", in.EventID)
		return nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to notify admins of login", "event_id", in.EventID, "error", err)
		return err
	}

	return nil
}
