package order

import (
	"context"
	"net/url"

	"github.com/georgemunganga/printa-dashboard/internal/endpoints"
	"github.com/georgemunganga/printa-dashboard/internal/rest"
)

type restRepo struct{ client *rest.Client }

// NewRESTRepository creates an order repository over the upstream API.
func NewRESTRepository(client *rest.Client) Repository { return &restRepo{client: client} }

func (r *restRepo) List(ctx context.Context, params url.Values) ([]*Order, error) {
	var orders []*Order
	if err := r.client.Query(ctx, endpoints.GetOrders, rest.Arg{Params: params}, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *restRepo) Get(ctx context.Context, id string) (*Order, error) {
	o := &Order{}
	if err := r.client.Query(ctx, endpoints.GetOrder, rest.ID(id), o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *restRepo) Create(ctx context.Context, req OrderRequest) (*Order, error) {
	o := &Order{}
	if err := r.client.Mutate(ctx, endpoints.AddOrder, rest.NoArg, req, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *restRepo) Update(ctx context.Context, id string, req UpdateRequest) (*Order, error) {
	o := &Order{}
	if err := r.client.Mutate(ctx, endpoints.UpdateOrder, rest.ID(id), req, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *restRepo) Delete(ctx context.Context, id string) error {
	return r.client.Mutate(ctx, endpoints.DeleteOrder, rest.ID(id), nil, nil)
}

func (r *restRepo) Document(ctx context.Context, path, id string) ([]byte, error) {
	return r.client.Download(ctx, path, rest.ID(id))
}
