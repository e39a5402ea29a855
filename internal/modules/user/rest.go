package user

import (
	"context"

	"github.com/georgemunganga/printa-dashboard/internal/endpoints"
	"github.com/georgemunganga/printa-dashboard/internal/rest"
)

type restRepository struct {
	client *rest.Client
}

// NewRESTRepository creates a user repository over the upstream API.
func NewRESTRepository(client *rest.Client) Repository {
	return &restRepository{client: client}
}

func (r *restRepository) ListSalesUsers(ctx context.Context) ([]SalesUser, error) {
	var users []SalesUser
	if err := r.client.Query(ctx, endpoints.GetSalesUsers, rest.NoArg, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *restRepository) CreateSalesUser(ctx context.Context, req CreateSalesUserRequest) error {
	return r.client.Mutate(ctx, endpoints.CreateSalesUser, rest.NoArg, req, nil)
}
