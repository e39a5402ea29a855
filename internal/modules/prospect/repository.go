package prospect

import "context"

// Repository defines prospect data access.
type Repository interface {
	List(ctx context.Context) ([]*Prospect, error)
	Get(ctx context.Context, id string) (*Prospect, error)
	Create(ctx context.Context, p *Payload) (*Prospect, error)
	Update(ctx context.Context, id string, p *Payload) (*Prospect, error)
	// Assign sets only the prospect's salesperson.
	Assign(ctx context.Context, id, salesPersonID string) error
	Delete(ctx context.Context, id string) error
	Convert(ctx context.Context, id string) error
	SendEmail(ctx context.Context, id string) error
}
