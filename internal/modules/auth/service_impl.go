package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/juju/loggo/v2"

	"github.com/georgemunganga/printa-dashboard/internal/form"
	"github.com/georgemunganga/printa-dashboard/internal/session"
)

var logger = loggo.GetLogger("printa.auth")

type service struct {
	repo  Repository
	store session.Store
}

// NewService creates a new auth service.
func NewService(repo Repository, store session.Store) Service {
	return &service{repo: repo, store: store}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := form.NewValidator().Fields(
		form.Required("email", form.Email, req.Email),
		form.Required("password", form.Text, req.Password),
	).Err(); err != nil {
		return nil, err
	}

	token, err := s.repo.Login(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	role, err := session.RoleFromToken(token)
	if err != nil {
		logger.Warningf("rejecting login for %s: %v", req.Email, err)
		if cerr := s.store.Clear(); cerr != nil {
			logger.Errorf("clearing session: %v", cerr)
		}
		s.repo.ForgetSession()
		return nil, form.Forbidden("Unauthorized: Invalid role")
	}

	if err := s.store.Save(session.Context{Token: token, Role: role}); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}
	s.repo.ForgetSession()
	logger.Infof("%s logged in as %s", req.Email, role)
	return &LoginResult{Role: role, Home: role.Home()}, nil
}

func (s *service) Logout(ctx context.Context) error {
	if err := s.repo.Logout(ctx); err != nil {
		logger.Warningf("server logout: %v", err)
	}
	err := s.store.Clear()
	s.repo.ForgetSession()
	if err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

func (s *service) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if err := form.NewValidator().Fields(form.Required("email", form.Email, email)).Err(); err != nil {
		return err
	}
	if err := s.repo.ForgotPassword(ctx, email); err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}
	return nil
}

func (s *service) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	req.Email = strings.TrimSpace(req.Email)
	req.OTP = strings.TrimSpace(req.OTP)
	if err := form.NewValidator().Fields(
		form.Required("email", form.Email, req.Email),
		form.Required("otp", form.Text, req.OTP),
		form.Required("newPassword", form.Text, req.NewPassword),
	).Err(); err != nil {
		return err
	}
	if err := s.repo.ResetPassword(ctx, req); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	return nil
}

func (s *service) Session() (session.Context, error) {
	return s.store.Load()
}
