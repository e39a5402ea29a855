package inventory

import (
	"context"

	"github.com/georgemunganga/printa-dashboard/internal/endpoints"
	"github.com/georgemunganga/printa-dashboard/internal/rest"
)

type restRepo struct{ client *rest.Client }

// NewRESTRepository creates an inventory repository over the upstream API.
func NewRESTRepository(client *rest.Client) Repository { return &restRepo{client: client} }

func (r *restRepo) List(ctx context.Context) ([]*Item, error) {
	var items []*Item
	if err := r.client.Query(ctx, endpoints.GetInventory, rest.NoArg, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *restRepo) PacketSizes(ctx context.Context) ([]string, error) {
	var sizes []string
	if err := r.client.Query(ctx, endpoints.GetPacketSizes, rest.NoArg, &sizes); err != nil {
		return nil, err
	}
	return sizes, nil
}

func (r *restRepo) Create(ctx context.Context, req ItemRequest) (*Item, error) {
	item := &Item{}
	if err := r.client.Mutate(ctx, endpoints.AddInventory, rest.NoArg, req, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (r *restRepo) Update(ctx context.Context, id string, req ItemRequest) (*Item, error) {
	item := &Item{}
	if err := r.client.Mutate(ctx, endpoints.UpdateInventory, rest.ID(id), req, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (r *restRepo) Delete(ctx context.Context, id string) error {
	return r.client.Mutate(ctx, endpoints.DeleteInventory, rest.ID(id), nil, nil)
}
