package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/designdynasty/authkit/internal/identity/entity"
	"github.com/designdynasty/authkit/internal/pkg/goerror"
)

type PasswordForgotInput struct {
	Email string `validate:"required,email"`
}

func (s *Usecase) PasswordForgot(ctx context.Context, in PasswordForgotInput) error {
	ctx, span := s.startSpan(ctx, "PasswordForgot")
	defer span.End()

	in.Email = entity.NormalizeEmail(in.Email)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "password reset requested for unknown user", "email", in.Email)
		return goerror.NewBusiness("No account found with this email", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	record, err := s.issueOtp(ctx, user.Email, user.Name, user.Mobile)
	if err != nil {
		return err
	}

	if err := s.repoEmail.SendOtp(ctx, user.Email, user.Name, record.Code, record.ExpiresAt); err != nil {
		slog.ErrorContext(ctx, "failed to send password reset code", "email", user.Email, "error", err)
		return goerror.NewDelivery(err, "Failed to send the verification code, please try again")
	}

	return nil
}
