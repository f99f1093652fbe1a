package inbound

import (
	"context"

	"github.com/designdynasty/authkit/internal/notification/usecase"
)

type uc interface {
	ConsumeUserRegistered(ctx context.Context, in usecase.ConsumeUserRegisteredInput) error
	ConsumeUserLoggedIn(ctx context.Context, in usecase.ConsumeUserLoggedInInput) error
}
