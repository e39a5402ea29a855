package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/georgemunganga/printa-dashboard/internal/form"
)

const msgNegative = "Cannot be negative."

// Service defines inventory business logic.
type Service interface {
	ListItems(ctx context.Context) ([]*Item, error)
	PacketSizes(ctx context.Context) ([]string, error)
	CreateItem(ctx context.Context, req ItemRequest) (*Item, error)
	UpdateItem(ctx context.Context, id string, req ItemRequest) (*Item, error)
	DeleteItem(ctx context.Context, id string) error
}

type service struct{ repo Repository }

// NewService creates a new inventory service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) ListItems(ctx context.Context) ([]*Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	return items, nil
}

func (s *service) PacketSizes(ctx context.Context) ([]string, error) {
	sizes, err := s.repo.PacketSizes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list packet sizes: %w", err)
	}
	return sizes, nil
}

func (s *service) CreateItem(ctx context.Context, req ItemRequest) (*Item, error) {
	req.ItemNumber = strings.TrimSpace(req.ItemNumber)
	v := form.NewValidator().Fields(form.Required("itemNumber", form.Text, req.ItemNumber))
	if err := validate(v, req); err != nil {
		return nil, err
	}
	item, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("add inventory item: %w", err)
	}
	return item, nil
}

func (s *service) UpdateItem(ctx context.Context, id string, req ItemRequest) (*Item, error) {
	req.ItemNumber = ""
	if err := validate(form.NewValidator(), req); err != nil {
		return nil, err
	}
	item, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update inventory item %s: %w", id, err)
	}
	return item, nil
}

func (s *service) DeleteItem(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete inventory item %s: %w", id, err)
	}
	return nil
}

func validate(v *form.Validator, req ItemRequest) error {
	return v.Fields(
		form.Required("name", form.Text, req.Name),
		form.Required("packetSize", form.Text, req.PacketSize),
	).
		Check(!req.PurchasePrice.Negative(), "purchasePrice", msgNegative).
		Check(!req.SalesPrice.Negative(), "salesPrice", msgNegative).
		Check(!req.CompetitorPrice.Negative(), "competitorPrice", msgNegative).
		Check(req.Quantity >= 0, "quantity", msgNegative).
		Check(req.ReorderPointOfQuantity >= 0, "reorderPointOfQuantity", msgNegative).
		Err()
}
