package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/designdynasty/authkit/internal/identity/entity"
	"github.com/designdynasty/authkit/internal/pkg/goerror"
)

type RegisterInput struct {
	Name   string `validate:"required,min=2,max=100,alphaspace"`
	Email  string `validate:"required,email"`
	Mobile string `validate:"required,min=7,max=15"`
}

func (s *Usecase) Register(ctx context.Context, in RegisterInput) error {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	in.Email = entity.NormalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	in.Mobile = strings.TrimSpace(in.Mobile)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	_, err := s.repoDB.GetUserByEmail(ctx, in.Email)
	if err == nil {
		return goerror.NewBusiness("An account with this email already exists", goerror.CodeConflict)
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	record, err := s.issueOtp(ctx, in.Email, in.Name, in.Mobile)
	if err != nil {
		return err
	}

	if err := s.repoEmail.SendOtp(ctx, in.Email, in.Name, record.Code, record.ExpiresAt); err != nil {
		slog.ErrorContext(ctx, "failed to send otp email", "email", in.Email, "error", err)
		return goerror.NewDelivery(err, "Failed to send the verification code, please try again")
	}

	return nil
}
