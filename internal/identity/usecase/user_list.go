package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/samber/lo"

	"github.com/designdynasty/authkit/internal/identity/entity"
	"github.com/designdynasty/authkit/internal/pkg/goerror"
	"github.com/designdynasty/authkit/internal/pkg/jwt"
)

type UserListOutput struct {
	Users []entity.Profile
}

func (s *Usecase) UserList(ctx context.Context) (*UserListOutput, error) {
	ctx, span := s.startSpan(ctx, "UserList")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	caller, err := s.repoDB.GetUserByEmail(ctx, entity.NormalizeEmail(clm.UserEmail))
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "token holder not found", "user_id", clm.UserID)
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if caller.Role != entity.RoleAdmin {
		slog.WarnContext(ctx, "user list requested without admin role", "user_id", caller.ID)
		return nil, goerror.NewBusiness("Admin role required", goerror.CodeForbidden)
	}

	users, err := s.repoDB.GetUserList(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list users", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &UserListOutput{
		Users: lo.Map(users, func(u entity.User, _ int) entity.Profile {
			return entity.ProfileFromUser(u)
		}),
	}, nil
}
