package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/designdynasty/authkit/internal/identity/entity"
	"github.com/designdynasty/authkit/internal/pkg/goerror"
)

type VerifyOtpInput struct {
	Email string `validate:"required,email"`
	Otp   string `validate:"required,otp"`
}

type VerifyOtpOutput struct {
	Profile entity.Profile
}

// VerifyOtp completes a registration: it checks the submitted passcode
// against the newest pending record, creates the account with a generated
// password, mails that password, notifies the admin, and finally spends the
// passcode.
func (s *Usecase) VerifyOtp(ctx context.Context, in VerifyOtpInput) (*VerifyOtpOutput, error) {
	ctx, span := s.startSpan(ctx, "VerifyOtp")
	defer span.End()

	in.Email = entity.NormalizeEmail(in.Email)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	record, err := s.validateOtp(ctx, in.Email, in.Otp)
	if err != nil {
		return nil, err
	}

	password := s.generatePassword()
	passwordHash, err := s.bcrypt.Hash(password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash generated password", "error", err)
		return nil, goerror.NewServer(err)
	}

	user, err := s.repoDB.CreateUser(ctx, entity.NewUser{
		Name:         record.Name,
		Email:        in.Email,
		Mobile:       record.Mobile,
		PasswordHash: string(passwordHash),
		Role:         entity.RoleUser,
	})
	if errors.Is(err, goerror.ErrConflict) {
		// Account creation aborted; the passcode is left pending.
		slog.WarnContext(ctx, "account already exists on verify", "email", in.Email)
		return nil, goerror.NewBusiness("An account with this email already exists", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create user", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoEmail.SendTemporaryPassword(ctx, user.Email, user.Name, password); err != nil {
		slog.ErrorContext(ctx, "failed to send temporary password email", "user_id", user.ID, "error", err)
		return nil, goerror.NewDelivery(err, "Account created but the password email failed, please use forgot password")
	}

	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := s.repoMessaging.PublishUserRegistered(ctx, UserRegisteredEvent{
			UserID:       user.ID,
			Email:        user.Email,
			Name:         user.Name,
			Mobile:       user.Mobile,
			RegisteredAt: user.CreatedAt,
		}); err != nil {
			slog.ErrorContext(ctx, "failed to publish user registered event", "user_id", user.ID, "error", err)
		}
		return nil
	})

	s.consumeOtp(ctx, record.ID)

	return &VerifyOtpOutput{Profile: entity.ProfileFromUser(*user)}, nil
}
