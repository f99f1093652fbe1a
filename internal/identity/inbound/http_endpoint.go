package inbound

import (
	"github.com/designdynasty/authkit/internal/identity/entity"
	"github.com/designdynasty/authkit/internal/identity/usecase"
	"github.com/designdynasty/authkit/internal/pkg/router"
	"github.com/samber/lo"
)

// HTTPEndpoint exposes HTTP handlers for registration and authentication.
type HTTPEndpoint struct {
	uc uc
}

// Register starts a registration by issuing and emailing a passcode.
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.Register(r.Context(), usecase.RegisterInput{
		Name:   req.Name,
		Email:  req.Email,
		Mobile: req.Mobile,
	}); err != nil {
		return nil, err
	}

	return RegisterResponse{}, nil
}

// VerifyOtp completes a registration, creating the account and mailing
// its temporary password.
func (h *HTTPEndpoint) VerifyOtp(r *router.Request) (any, error) {
	var req VerifyOtpRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.VerifyOtp(r.Context(), usecase.VerifyOtpInput{
		Email: req.Email,
		Otp:   req.Otp,
	})
	if err != nil {
		return nil, err
	}

	return VerifyOtpResponse{User: profileResponseFrom(resp.Profile)}, nil
}

// Login authenticates a user and returns a session token with the profile.
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return LoginResponse{
		Token: resp.Token,
		User:  profileResponseFrom(resp.Profile),
	}, nil
}

// PasswordForgot issues and emails a reset passcode for an existing account.
func (h *HTTPEndpoint) PasswordForgot(r *router.Request) (any, error) {
	var req PasswordForgotRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.PasswordForgot(r.Context(), usecase.PasswordForgotInput{
		Email: req.Email,
	}); err != nil {
		return nil, err
	}

	return PasswordForgotResponse{}, nil
}

// PasswordReset rotates the password after passcode verification and mails
// the new one.
func (h *HTTPEndpoint) PasswordReset(r *router.Request) (any, error) {
	var req PasswordResetRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.PasswordReset(r.Context(), usecase.PasswordResetInput{
		Email: req.Email,
		Otp:   req.Otp,
	}); err != nil {
		return nil, err
	}

	return PasswordResetResponse{}, nil
}

// PasswordChange rotates the password in place for the authenticated user.
func (h *HTTPEndpoint) PasswordChange(r *router.Request) (any, error) {
	var req PasswordChangeRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.PasswordChange(r.Context(), usecase.PasswordChangeInput{
		Email:       req.Email,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	}); err != nil {
		return nil, err
	}

	return PasswordChangeResponse{}, nil
}

// UserList returns all accounts, admin only, password hashes excluded.
func (h *HTTPEndpoint) UserList(r *router.Request) (any, error) {
	resp, err := h.uc.UserList(r.Context())
	if err != nil {
		return nil, err
	}

	return UserListResponse{
		Users: lo.Map(resp.Users, func(p entity.Profile, _ int) ProfileResponse {
			return profileResponseFrom(p)
		}),
	}, nil
}
