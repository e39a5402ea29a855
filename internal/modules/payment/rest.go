package payment

import (
	"context"

	"github.com/georgemunganga/printa-dashboard/internal/endpoints"
	"github.com/georgemunganga/printa-dashboard/internal/rest"
)

type restRepo struct{ client *rest.Client }

// NewRESTRepository creates a payment repository over the upstream API.
func NewRESTRepository(client *rest.Client) Repository { return &restRepo{client: client} }

func (r *restRepo) Insert(ctx context.Context, req *Request) (*Payment, error) {
	p := &Payment{}
	if err := r.client.Mutate(ctx, endpoints.InsertPayment, rest.ID(req.StoreID), req, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *restRepo) History(ctx context.Context, customerID string) ([]*Payment, error) {
	var payments []*Payment
	if err := r.client.Query(ctx, endpoints.GetPaymentHistory, rest.ID(customerID), &payments); err != nil {
		return nil, err
	}
	return payments, nil
}
