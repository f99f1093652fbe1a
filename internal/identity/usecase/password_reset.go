package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/designdynasty/authkit/internal/identity/entity"
	"github.com/designdynasty/authkit/internal/pkg/goerror"
)

type PasswordResetInput struct {
	Email string `validate:"required,email"`
	Otp   string `validate:"required,otp"`
}

func (s *Usecase) PasswordReset(ctx context.Context, in PasswordResetInput) error {
	ctx, span := s.startSpan(ctx, "PasswordReset")
	defer span.End()

	in.Email = entity.NormalizeEmail(in.Email)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "password reset for unknown user", "email", in.Email)
		return goerror.NewBusiness("No account found with this email", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	record, err := s.validateOtp(ctx, in.Email, in.Otp)
	if err != nil {
		return err
	}

	password := s.generatePassword()

	hash, err := s.bcrypt.Hash(password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash generated password", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	changed, err := s.repoDB.UpdateUserPassword(ctx, user.Email, string(hash))
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update user password", "email", user.Email, "error", err)
		return goerror.NewServer(err)
	}
	if !changed {
		slog.WarnContext(ctx, "password update matched no user", "email", user.Email)
		return goerror.NewBusiness("No account found with this email", goerror.CodeNotFound)
	}

	// The rotated password only exists in this email, so a send failure
	// has to fail the request.
	if err := s.repoEmail.SendResetPassword(ctx, user.Email, user.Name, password); err != nil {
		slog.ErrorContext(ctx, "failed to send rotated password", "email", user.Email, "error", err)
		return goerror.NewDelivery(err, "Password was reset but the email failed, please try again")
	}

	s.consumeOtp(ctx, record.ID)

	return nil
}
