package customer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/juju/loggo/v2"

	"github.com/georgemunganga/printa-dashboard/internal/modules/order"
)

var logger = loggo.GetLogger("printa.customer")

// Service defines customer business logic.
type Service interface {
	// ListCustomers returns customers whose store name contains search,
	// sorted by store name.
	ListCustomers(ctx context.Context, search string) ([]*Customer, error)
	GetCustomer(ctx context.Context, id string) (*Customer, error)

	// OpenOrders returns the customer's orders with a positive open balance.
	OpenOrders(ctx context.Context, id string) ([]*order.Order, error)

	// CreateCustomer submits d. Validation failures are recorded in d and
	// nothing is sent; server field errors are merged into d.Errors.
	CreateCustomer(ctx context.Context, d *Draft) (*Customer, error)
	UpdateCustomer(ctx context.Context, id string, d *Draft) (*Customer, error)
	DeleteCustomer(ctx context.Context, id string) error
}

type service struct{ repo Repository }

// NewService creates a new customer service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) ListCustomers(ctx context.Context, search string) ([]*Customer, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	search = strings.ToLower(strings.TrimSpace(search))
	customers := make([]*Customer, 0, len(all))
	for _, c := range all {
		if c.IsDeleted {
			continue
		}
		if search == "" || strings.Contains(strings.ToLower(c.StoreName), search) {
			customers = append(customers, c)
		}
	}
	sort.SliceStable(customers, func(i, j int) bool {
		return strings.ToLower(customers[i].StoreName) < strings.ToLower(customers[j].StoreName)
	})
	return customers, nil
}

func (s *service) GetCustomer(ctx context.Context, id string) (*Customer, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get customer %s: %w", id, err)
	}
	return c, nil
}

func (s *service) OpenOrders(ctx context.Context, id string) ([]*order.Order, error) {
	c, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.OpenOrders(), nil
}

func (s *service) CreateCustomer(ctx context.Context, d *Draft) (*Customer, error) {
	p, err := d.Submit()
	if err != nil {
		return nil, err
	}
	c, err := s.repo.Create(ctx, p)
	if err != nil {
		d.ApplyError(err)
		return nil, fmt.Errorf("add customer: %w", err)
	}
	logger.Infof("customer %q added", p.StoreName)
	return c, nil
}

func (s *service) UpdateCustomer(ctx context.Context, id string, d *Draft) (*Customer, error) {
	p, err := d.Submit()
	if err != nil {
		return nil, err
	}
	c, err := s.repo.Update(ctx, id, p)
	if err != nil {
		d.ApplyError(err)
		return nil, fmt.Errorf("update customer %s: %w", id, err)
	}
	return c, nil
}

func (s *service) DeleteCustomer(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete customer %s: %w", id, err)
	}
	return nil
}
