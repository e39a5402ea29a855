package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/georgemunganga/printa-dashboard/internal/form"
	"github.com/georgemunganga/printa-dashboard/internal/session"
)

// Service defines the interface for sales-user business logic.
type Service interface {
	ListSalesUsers(ctx context.Context) ([]SalesUser, error)
	// CreateSalesUser registers a sales account. Only admins may do this.
	CreateSalesUser(ctx context.Context, sess session.Context, email, password string) error
}

type service struct {
	repo Repository
}

// NewService creates a new user service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListSalesUsers(ctx context.Context) ([]SalesUser, error) {
	users, err := s.repo.ListSalesUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sales users: %w", err)
	}
	return users, nil
}

func (s *service) CreateSalesUser(ctx context.Context, sess session.Context, email, password string) error {
	if !sess.IsAdmin() {
		return form.Forbidden("Only admins can create sales users.")
	}
	email = strings.TrimSpace(email)
	if err := form.NewValidator().Fields(
		form.Required("email", form.Email, email),
		form.Required("password", form.Text, password),
	).Err(); err != nil {
		return err
	}
	req := CreateSalesUserRequest{Email: email, Password: password, Role: RoleSalesUser}
	if err := s.repo.CreateSalesUser(ctx, req); err != nil {
		return fmt.Errorf("create sales user: %w", err)
	}
	return nil
}
