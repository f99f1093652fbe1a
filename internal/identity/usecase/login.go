package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/designdynasty/authkit/internal/identity/entity"
	"github.com/designdynasty/authkit/internal/pkg/goerror"
)

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type LoginOutput struct {
	Token   string
	Profile entity.Profile
}

func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	in.Email = entity.NormalizeEmail(in.Email)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "email", in.Email)
		return nil, goerror.NewBusiness("Invalid email or password", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.bcrypt.Verify(user.PasswordHash, in.Password) {
		slog.WarnContext(ctx, "password mismatch", "user_id", user.ID)
		return nil, goerror.NewBusiness("Invalid email or password", goerror.CodeUnauthorized)
	}

	token, err := s.jwt.Generate(user.ID, user.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate session token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	// Login succeeded; a lost notification must never fail the request.
	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := s.repoMessaging.PublishUserLoggedIn(ctx, UserLoggedInEvent{
			UserID:   user.ID,
			Email:    user.Email,
			Name:     user.Name,
			LoggedAt: s.clock.Now(),
		}); err != nil {
			slog.ErrorContext(ctx, "failed to publish user logged in event", "user_id", user.ID, "error", err)
		}
		return nil
	})

	return &LoginOutput{
		Token:   token,
		Profile: entity.ProfileFromUser(*user),
	}, nil
}
