package prospect

import (
	"context"

	"github.com/georgemunganga/printa-dashboard/internal/endpoints"
	"github.com/georgemunganga/printa-dashboard/internal/rest"
)

type restRepo struct{ client *rest.Client }

// NewRESTRepository creates a prospect repository over the upstream API.
func NewRESTRepository(client *rest.Client) Repository { return &restRepo{client: client} }

func (r *restRepo) List(ctx context.Context) ([]*Prospect, error) {
	var prospects []*Prospect
	if err := r.client.Query(ctx, endpoints.GetProspects, rest.NoArg, &prospects); err != nil {
		return nil, err
	}
	return prospects, nil
}

func (r *restRepo) Get(ctx context.Context, id string) (*Prospect, error) {
	p := &Prospect{}
	if err := r.client.Query(ctx, endpoints.GetProspect, rest.ID(id), p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *restRepo) Create(ctx context.Context, p *Payload) (*Prospect, error) {
	out := &Prospect{}
	if err := r.client.Mutate(ctx, endpoints.AddProspect, rest.NoArg, p, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *restRepo) Update(ctx context.Context, id string, p *Payload) (*Prospect, error) {
	out := &Prospect{}
	if err := r.client.Mutate(ctx, endpoints.UpdateProspect, rest.ID(id), p, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *restRepo) Assign(ctx context.Context, id, salesPersonID string) error {
	body := map[string]string{"assignedSalesPerson": salesPersonID}
	return r.client.Mutate(ctx, endpoints.UpdateProspect, rest.ID(id), body, nil)
}

func (r *restRepo) Delete(ctx context.Context, id string) error {
	return r.client.Mutate(ctx, endpoints.DeleteProspect, rest.ID(id), nil, nil)
}

func (r *restRepo) Convert(ctx context.Context, id string) error {
	return r.client.Mutate(ctx, endpoints.ConvertProspect, rest.ID(id), nil, nil)
}

func (r *restRepo) SendEmail(ctx context.Context, id string) error {
	return r.client.Mutate(ctx, endpoints.SendProspectEmail, rest.ID(id), nil, nil)
}
