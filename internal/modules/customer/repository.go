package customer

import "context"

// Repository defines customer data access.
type Repository interface {
	List(ctx context.Context) ([]*Customer, error)
	Get(ctx context.Context, id string) (*Customer, error)
	Create(ctx context.Context, p *Payload) (*Customer, error)
	Update(ctx context.Context, id string, p *Payload) (*Customer, error)
	Delete(ctx context.Context, id string) error
}
