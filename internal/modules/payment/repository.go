package payment

import "context"

// Repository defines payment data access.
type Repository interface {
	// Insert records req against the paying customer.
	Insert(ctx context.Context, req *Request) (*Payment, error)
	History(ctx context.Context, customerID string) ([]*Payment, error)
}
