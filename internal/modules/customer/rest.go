package customer

import (
	"context"

	"github.com/georgemunganga/printa-dashboard/internal/endpoints"
	"github.com/georgemunganga/printa-dashboard/internal/rest"
)

type restRepo struct{ client *rest.Client }

// NewRESTRepository creates a customer repository over the upstream API.
func NewRESTRepository(client *rest.Client) Repository { return &restRepo{client: client} }

func (r *restRepo) List(ctx context.Context) ([]*Customer, error) {
	var customers []*Customer
	if err := r.client.Query(ctx, endpoints.GetCustomers, rest.NoArg, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *restRepo) Get(ctx context.Context, id string) (*Customer, error) {
	c := &Customer{}
	if err := r.client.Query(ctx, endpoints.GetCustomer, rest.ID(id), c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *restRepo) Create(ctx context.Context, p *Payload) (*Customer, error) {
	c := &Customer{}
	if err := r.client.Mutate(ctx, endpoints.AddCustomer, rest.NoArg, p, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *restRepo) Update(ctx context.Context, id string, p *Payload) (*Customer, error) {
	c := &Customer{}
	if err := r.client.Mutate(ctx, endpoints.UpdateCustomer, rest.ID(id), p, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *restRepo) Delete(ctx context.Context, id string) error {
	return r.client.Mutate(ctx, endpoints.DeleteCustomer, rest.ID(id), nil, nil)
}
