package inbound

import (
	"context"

	"github.com/designdynasty/authkit/internal/identity/usecase"
	"github.com/designdynasty/authkit/internal/pkg/router"
)

type uc interface {
	Register(ctx context.Context, in usecase.RegisterInput) error
	VerifyOtp(ctx context.Context, in usecase.VerifyOtpInput) (*usecase.VerifyOtpOutput, error)
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)

	PasswordForgot(ctx context.Context, in usecase.PasswordForgotInput) error
	PasswordReset(ctx context.Context, in usecase.PasswordResetInput) error
	PasswordChange(ctx context.Context, in usecase.PasswordChangeInput) error

	UserList(ctx context.Context) (*usecase.UserListOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/auth/register", end.Register)
	r.POST("/auth/verify-otp", end.VerifyOtp)
	r.POST("/auth/login", end.Login)

	r.POST("/auth/forgot-password", end.PasswordForgot)
	r.POST("/auth/reset-password", end.PasswordReset)
	r.POST("/auth/change-password", end.PasswordChange) // need authenticated

	r.GET("/users", end.UserList) // need authenticated & admin role
}
