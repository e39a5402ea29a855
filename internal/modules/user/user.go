package user

import (
	"context"
	"time"
)

// RoleSalesUser is the role given to accounts created from the dashboard.
const RoleSalesUser = "salesUser"

// SalesUser is a sales account that prospects can be assigned to.
type SalesUser struct {
	ID        string    `json:"_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// CreateSalesUserRequest is the sign-up form for a new sales account.
type CreateSalesUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Repository defines data access for sales users.
type Repository interface {
	ListSalesUsers(ctx context.Context) ([]SalesUser, error)
	CreateSalesUser(ctx context.Context, req CreateSalesUserRequest) error
}
