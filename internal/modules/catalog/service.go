package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/juju/errors"
)

// Service defines catalog lookups shared by the order and prospect forms.
type Service interface {
	ListProducts(ctx context.Context) ([]*Product, error)
	ListByCategory(ctx context.Context, categoryID string) ([]*Product, error)
	// Lookup resolves a product by id. It fails with a NotFound error when
	// the catalog has no such product.
	Lookup(ctx context.Context, id string) (*Product, error)
	// Search returns products whose name or item number contains term.
	Search(ctx context.Context, term string) ([]*Product, error)
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) ListProducts(ctx context.Context) ([]*Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *service) ListByCategory(ctx context.Context, categoryID string) ([]*Product, error) {
	if strings.TrimSpace(categoryID) == "" {
		return nil, errors.NotValidf("empty category")
	}
	products, err := s.repo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list products in category %s: %w", categoryID, err)
	}
	return products, nil
}

func (s *service) Lookup(ctx context.Context, id string) (*Product, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, errors.NotFoundf("product %q", id)
}

func (s *service) Search(ctx context.Context, term string) ([]*Product, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return products, nil
	}
	var out []*Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), term) || strings.Contains(strings.ToLower(p.ItemNumber), term) {
			out = append(out, p)
		}
	}
	return out, nil
}
