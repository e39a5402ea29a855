package container

import (
	"context"
	"io"

	"github.com/georgemunganga/printa-dashboard/internal/endpoints"
	"github.com/georgemunganga/printa-dashboard/internal/rest"
)

// importField is the multipart field carrying the spreadsheet.
const importField = "file"

type restRepo struct{ client *rest.Client }

// NewRESTRepository creates a container repository over the upstream API.
func NewRESTRepository(client *rest.Client) Repository { return &restRepo{client: client} }

func (r *restRepo) List(ctx context.Context) ([]*Container, error) {
	var containers []*Container
	if err := r.client.Query(ctx, endpoints.GetContainers, rest.NoArg, &containers); err != nil {
		return nil, err
	}
	return containers, nil
}

func (r *restRepo) Get(ctx context.Context, id string) (*Container, error) {
	c := &Container{}
	if err := r.client.Query(ctx, endpoints.GetContainer, rest.ID(id), c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *restRepo) Create(ctx context.Context, req ContainerRequest) (*Container, error) {
	c := &Container{}
	if err := r.client.Mutate(ctx, endpoints.AddContainer, rest.NoArg, req, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *restRepo) Update(ctx context.Context, id string, req ContainerRequest) (*Container, error) {
	c := &Container{}
	if err := r.client.Mutate(ctx, endpoints.UpdateContainer, rest.ID(id), req, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *restRepo) Delete(ctx context.Context, id string) error {
	return r.client.Mutate(ctx, endpoints.DeleteContainer, rest.ID(id), nil, nil)
}

func (r *restRepo) Import(ctx context.Context, filename string, content io.Reader) ([]*Container, error) {
	body := &rest.Multipart{Files: []rest.FilePart{{Field: importField, Filename: filename, Content: content}}}
	var containers []*Container
	if err := r.client.Mutate(ctx, endpoints.ImportContainer, rest.NoArg, body, &containers); err != nil {
		return nil, err
	}
	return containers, nil
}
