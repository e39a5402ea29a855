package catalog

import "context"

// Repository defines read access to the product catalog.
type Repository interface {
	List(ctx context.Context) ([]*Product, error)
	ListByCategory(ctx context.Context, categoryID string) ([]*Product, error)
}
