package container

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/juju/loggo/v2"

	"github.com/georgemunganga/printa-dashboard/internal/form"
)

var logger = loggo.GetLogger("printa.container")

// Service defines container business logic.
type Service interface {
	ListContainers(ctx context.Context) ([]*Container, error)
	GetContainer(ctx context.Context, id string) (*Container, error)
	CreateContainer(ctx context.Context, req ContainerRequest) (*Container, error)
	UpdateContainer(ctx context.Context, id string, req ContainerRequest) (*Container, error)
	DeleteContainer(ctx context.Context, id string) error
	// ImportExcel creates containers from an .xlsx or .xls spreadsheet.
	ImportExcel(ctx context.Context, filename string, content io.Reader) ([]*Container, error)
}

type service struct{ repo Repository }

// NewService creates a new container service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) ListContainers(ctx context.Context) ([]*Container, error) {
	containers, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}
	return containers, nil
}

func (s *service) GetContainer(ctx context.Context, id string) (*Container, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get container %s: %w", id, err)
	}
	return c, nil
}

func (s *service) CreateContainer(ctx context.Context, req ContainerRequest) (*Container, error) {
	if req.ContainerStatus == "" {
		req.ContainerStatus = StatusPending
	}
	if err := validate(req); err != nil {
		return nil, err
	}
	c, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("add container: %w", err)
	}
	return c, nil
}

func (s *service) UpdateContainer(ctx context.Context, id string, req ContainerRequest) (*Container, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	c, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update container %s: %w", id, err)
	}
	return c, nil
}

func (s *service) DeleteContainer(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete container %s: %w", id, err)
	}
	return nil
}

func (s *service) ImportExcel(ctx context.Context, filename string, content io.Reader) ([]*Container, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls":
	default:
		return nil, form.Invalid(importField, "Only Excel files (.xlsx, .xls) can be imported.")
	}
	containers, err := s.repo.Import(ctx, filename, content)
	if err != nil {
		return nil, fmt.Errorf("import containers from %s: %w", filename, err)
	}
	logger.Infof("imported %d containers from %s", len(containers), filename)
	return containers, nil
}

func validate(req ContainerRequest) error {
	v := form.NewValidator().Fields(
		form.Required("containerNumber", form.Text, req.ContainerNumber),
		form.Required("containerName", form.Text, req.ContainerName),
	).
		Check(req.ContainerStatus.Valid(), "containerStatus", "Unknown container status.").
		Check(!req.ShippingCost.Negative(), "shippingCost", "Cannot be negative.")
	for i, p := range req.ContainerProducts {
		prefix := "containerProducts." + strconv.Itoa(i) + "."
		v.Fields(form.Required(prefix+"itemNumber", form.Text, p.ItemNumber)).
			Check(p.Quantity > 0, prefix+"quantity", form.MsgPositiveInt)
	}
	return v.Err()
}
