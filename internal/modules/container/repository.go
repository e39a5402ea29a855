package container

import (
	"context"
	"io"
)

// Repository defines container data access.
type Repository interface {
	List(ctx context.Context) ([]*Container, error)
	Get(ctx context.Context, id string) (*Container, error)
	Create(ctx context.Context, req ContainerRequest) (*Container, error)
	Update(ctx context.Context, id string, req ContainerRequest) (*Container, error)
	Delete(ctx context.Context, id string) error
	// Import uploads a spreadsheet describing one or more containers.
	Import(ctx context.Context, filename string, content io.Reader) ([]*Container, error)
}
