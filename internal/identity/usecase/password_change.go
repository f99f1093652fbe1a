package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/designdynasty/authkit/internal/identity/entity"
	"github.com/designdynasty/authkit/internal/pkg/goerror"
	"github.com/designdynasty/authkit/internal/pkg/jwt"
)

type PasswordChangeInput struct {
	Email       string `validate:"required,email"`
	OldPassword string `validate:"required"`
	NewPassword string `validate:"required,min=8,max=72"`
}

func (s *Usecase) PasswordChange(ctx context.Context, in PasswordChangeInput) error {
	ctx, span := s.startSpan(ctx, "PasswordChange")
	defer span.End()

	in.Email = entity.NormalizeEmail(in.Email)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	// The token owner may only rotate their own password.
	if entity.NormalizeEmail(clm.UserEmail) != in.Email {
		slog.WarnContext(ctx, "password change email does not match token", "user_id", clm.UserID)
		return goerror.NewBusiness("You can only change your own password", goerror.CodeForbidden)
	}

	user, err := s.repoDB.GetUserByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "email", in.Email)
		return goerror.NewBusiness("No account found with this email", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	if !s.bcrypt.Verify(user.PasswordHash, in.OldPassword) {
		slog.WarnContext(ctx, "old password mismatch", "user_id", user.ID)
		return goerror.NewBusiness("Old password is incorrect", goerror.CodeUnauthorized)
	}

	hash, err := s.bcrypt.Hash(in.NewPassword)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash new password", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	changed, err := s.repoDB.UpdateUserPassword(ctx, user.Email, string(hash))
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update user password", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}
	if !changed {
		slog.WarnContext(ctx, "password update matched no user", "email", user.Email)
		return goerror.NewBusiness("No account found with this email", goerror.CodeNotFound)
	}

	return nil
}
