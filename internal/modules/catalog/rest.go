package catalog

import (
	"context"

	"github.com/georgemunganga/printa-dashboard/internal/endpoints"
	"github.com/georgemunganga/printa-dashboard/internal/rest"
)

type restRepo struct{ client *rest.Client }

// NewRESTRepository creates a catalog repository over the upstream API.
func NewRESTRepository(client *rest.Client) Repository { return &restRepo{client: client} }

func (r *restRepo) List(ctx context.Context) ([]*Product, error) {
	var products []*Product
	if err := r.client.Query(ctx, endpoints.GetProducts, rest.NoArg, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *restRepo) ListByCategory(ctx context.Context, categoryID string) ([]*Product, error) {
	var products []*Product
	if err := r.client.Query(ctx, endpoints.GetProductsByCategory, rest.ID(categoryID), &products); err != nil {
		return nil, err
	}
	return products, nil
}
