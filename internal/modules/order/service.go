package order

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-querystring/query"
	"github.com/juju/errors"
	"github.com/juju/loggo/v2"

	"github.com/georgemunganga/printa-dashboard/internal/endpoints"
	"github.com/georgemunganga/printa-dashboard/internal/form"
	"github.com/georgemunganga/printa-dashboard/internal/modules/catalog"
	"github.com/georgemunganga/printa-dashboard/internal/money"
)

var logger = loggo.GetLogger("printa.order")

const (
	msgShippingCharge = "Please enter a valid shipping charge amount."
	msgDiscount       = "Discount must be a non-negative amount."
	msgNoProducts     = "An order needs at least one product."
)

// Service defines the order management business logic.
type Service interface {
	// ListOrders returns the orders matching filter.
	ListOrders(ctx context.Context, filter ListFilter) ([]*Order, error)

	// GetOrder retrieves a full order with its line items.
	GetOrder(ctx context.Context, id string) (*Order, error)

	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
	UpdateOrder(ctx context.Context, id string, req UpdateRequest) (*Order, error)
	DeleteOrder(ctx context.Context, id string) error

	// AddShippingCharge sets the shipping charge of an order from user input.
	AddShippingCharge(ctx context.Context, id, amount string) (*Order, error)

	// AddLineItem appends a catalog product to an existing order.
	AddLineItem(ctx context.Context, id string, in LineInput) (*Order, error)

	// Invoice, DeliverySheet and ShipToAddress download the order's PDFs.
	Invoice(ctx context.Context, id string) (*Document, error)
	DeliverySheet(ctx context.Context, id string) (*Document, error)
	ShipToAddress(ctx context.Context, id string) (*Document, error)
}

type service struct {
	repo     Repository
	products catalog.Service
}

// NewService creates a new order service. Extra line items are resolved
// against products.
func NewService(repo Repository, products catalog.Service) Service {
	return &service{repo: repo, products: products}
}

func (s *service) ListOrders(ctx context.Context, filter ListFilter) ([]*Order, error) {
	params, err := query.Values(filter)
	if err != nil {
		return nil, errors.Annotate(err, "encoding order filter")
	}
	orders, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *service) GetOrder(ctx context.Context, id string) (*Order, error) {
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}
	return o, nil
}

func (s *service) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	v := form.NewValidator().Fields(
		form.Required("storeId", form.Text, req.StoreID),
		form.Required("date", form.Text, req.Date),
	).Check(len(req.Products) > 0, "products", msgNoProducts)
	for i, line := range req.Products {
		checkLine(v, fmt.Sprintf("products.%d.", i), line)
	}
	if req.ShippingCharge != nil {
		v.Check(!req.ShippingCharge.Negative(), "shippingCharge", msgShippingCharge)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	o, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("add order: %w", err)
	}
	logger.Infof("order %s created for store %s", o.ID, req.StoreID)
	return o, nil
}

func (s *service) UpdateOrder(ctx context.Context, id string, req UpdateRequest) (*Order, error) {
	v := form.NewValidator()
	for i, line := range req.Products {
		checkLine(v, fmt.Sprintf("products.%d.", i), line)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	o, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update order %s: %w", id, err)
	}
	return o, nil
}

func (s *service) DeleteOrder(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete order %s: %w", id, err)
	}
	return nil
}

func (s *service) AddShippingCharge(ctx context.Context, id, amount string) (*Order, error) {
	charge, err := money.Parse(amount)
	if err != nil {
		return nil, form.Invalid("shippingCharge", msgShippingCharge)
	}
	return s.UpdateOrder(ctx, id, UpdateRequest{ShippingCharge: &charge})
}

func (s *service) AddLineItem(ctx context.Context, id string, in LineInput) (*Order, error) {
	v := form.NewValidator().
		Fields(form.Required("productId", form.Text, in.ProductID)).
		Check(in.Quantity > 0, "quantity", form.MsgPositiveInt)
	discount := money.Zero
	if strings.TrimSpace(in.Discount) != "" {
		d, err := money.Parse(in.Discount)
		v.Check(err == nil, "discount", msgDiscount)
		discount = d
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if _, err := s.products.Lookup(ctx, in.ProductID); err != nil {
		if errors.Is(err, errors.NotFound) {
			return nil, form.Invalid("productId", "Select a product from the catalog.")
		}
		return nil, err
	}

	o, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	lines := make([]LineRequest, 0, len(o.Products)+1)
	for _, item := range o.Products {
		lines = append(lines, LineRequest{ProductID: item.Product.ID, Quantity: item.Quantity, Discount: item.Discount})
	}
	lines = append(lines, LineRequest{ProductID: in.ProductID, Quantity: in.Quantity, Discount: discount})
	return s.UpdateOrder(ctx, id, UpdateRequest{Products: lines})
}

func (s *service) Invoice(ctx context.Context, id string) (*Document, error) {
	return s.document(ctx, endpoints.OrderInvoicePath, id, "invoice")
}

func (s *service) DeliverySheet(ctx context.Context, id string) (*Document, error) {
	return s.document(ctx, endpoints.DeliverySheetPath, id, "delivery-sheet")
}

func (s *service) ShipToAddress(ctx context.Context, id string) (*Document, error) {
	return s.document(ctx, endpoints.ShipToAddressPath, id, "ship-to-address")
}

func (s *service) document(ctx context.Context, path, id, kind string) (*Document, error) {
	content, err := s.repo.Document(ctx, path, id)
	if err != nil {
		return nil, fmt.Errorf("download %s for order %s: %w", kind, id, err)
	}
	return &Document{Filename: fmt.Sprintf("%s-%s.pdf", kind, id), Content: content}, nil
}

// ── helpers ──────────────────────────────────────────────────

func checkLine(v *form.Validator, prefix string, line LineRequest) {
	v.Fields(form.Required(prefix+"productId", form.Text, line.ProductID)).
		Check(line.Quantity > 0, prefix+"quantity", form.MsgPositiveInt).
		Check(!line.Discount.Negative(), prefix+"discount", msgDiscount)
}
