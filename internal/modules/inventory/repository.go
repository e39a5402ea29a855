package inventory

import "context"

// Repository defines inventory data access.
type Repository interface {
	List(ctx context.Context) ([]*Item, error)
	PacketSizes(ctx context.Context) ([]string, error)
	Create(ctx context.Context, req ItemRequest) (*Item, error)
	Update(ctx context.Context, id string, req ItemRequest) (*Item, error)
	Delete(ctx context.Context, id string) error
}
