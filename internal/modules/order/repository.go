package order

import (
	"context"
	"net/url"
)

// Repository defines data access for orders.
type Repository interface {
	// List returns the orders matching params.
	List(ctx context.Context, params url.Values) ([]*Order, error)

	// Get retrieves a single order with populated line items.
	Get(ctx context.Context, id string) (*Order, error)

	Create(ctx context.Context, req OrderRequest) (*Order, error)

	// Update sends a partial edit of an order.
	Update(ctx context.Context, id string, req UpdateRequest) (*Order, error)

	Delete(ctx context.Context, id string) error

	// Document downloads one of the order's PDFs. path is one of the
	// endpoints' PDF paths.
	Document(ctx context.Context, path, id string) ([]byte, error)
}
