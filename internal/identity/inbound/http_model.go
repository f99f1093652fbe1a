package inbound

import (
	"time"

	"github.com/designdynasty/authkit/internal/identity/entity"
)

type RegisterRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
}

type RegisterResponse struct{}

func (RegisterResponse) Message() string {
	return "OTP sent successfully to your email."
}

type VerifyOtpRequest struct {
	Email string `json:"email"`
	Otp   string `json:"otp"`
}

type VerifyOtpResponse struct {
	User ProfileResponse `json:"user"`
}

func (VerifyOtpResponse) Message() string {
	return "Account created successfully. Your password has been sent to your email."
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string          `json:"token"`
	User  ProfileResponse `json:"user"`
}

func (LoginResponse) Message() string {
	return "Login successful."
}

type PasswordForgotRequest struct {
	Email string `json:"email"`
}

type PasswordForgotResponse struct{}

func (PasswordForgotResponse) Message() string {
	return "OTP sent successfully to your email."
}

type PasswordResetRequest struct {
	Email string `json:"email"`
	Otp   string `json:"otp"`
}

type PasswordResetResponse struct{}

func (PasswordResetResponse) Message() string {
	return "Password reset successfully. Your new password has been sent to your email."
}

type PasswordChangeRequest struct {
	Email       string `json:"email"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type PasswordChangeResponse struct{}

func (PasswordChangeResponse) Message() string {
	return "Password changed successfully."
}

type ProfileResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Mobile    string    `json:"mobile"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func profileResponseFrom(p entity.Profile) ProfileResponse {
	return ProfileResponse{
		ID:        p.ID,
		Username:  p.Username,
		Email:     p.Email,
		Mobile:    p.Mobile,
		Role:      p.Role.String(),
		CreatedAt: p.CreatedAt,
	}
}

type UserListResponse struct {
	Users []ProfileResponse `json:"users"`
}
