package auth

import (
	"context"

	"github.com/georgemunganga/printa-dashboard/internal/session"
)

// Service defines the interface for authentication-related business logic.
type Service interface {
	// Login exchanges credentials for an access token, stores the session and
	// returns the caller's role and landing page.
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)

	// Logout tells the server and clears the stored session.
	Logout(ctx context.Context) error

	// ForgotPassword asks the server to email a one-time code.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword sets a new password using the emailed code.
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error

	// Session returns the stored session.
	Session() (session.Context, error)
}

// Repository is the upstream authentication API.
type Repository interface {
	Login(ctx context.Context, req LoginRequest) (token string, err error)
	Logout(ctx context.Context) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
	// ForgetSession drops every result read under the previous session.
	ForgetSession()
}

// LoginRequest is the login form.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult describes the session started by a login.
type LoginResult struct {
	Role session.Role `json:"role"`
	Home string       `json:"home"`
}

// ResetPasswordRequest is the reset-password form.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}
