package payment

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/loggo/v2"
	"golang.org/x/sync/singleflight"

	"github.com/georgemunganga/printa-dashboard/internal/form"
	"github.com/georgemunganga/printa-dashboard/internal/modules/customer"
	"github.com/georgemunganga/printa-dashboard/internal/modules/order"
	"github.com/georgemunganga/printa-dashboard/internal/modules/upload"
	"github.com/georgemunganga/printa-dashboard/internal/money"
)

var logger = loggo.GetLogger("printa.payment")

const (
	MsgCheckImage = "Check Image is required for check payments"
	MsgNoOrder    = "Please select at least one order to apply the payment."
	MsgAmount     = "Invalid amount format (e.g., 123.45)"
)

// IdempotencyWindow is how long a recorded payment is returned again for a
// repeated idempotency key.
const IdempotencyWindow = 24 * time.Hour

// Service defines payment business logic.
type Service interface {
	// RecordPayment validates f and records it. A non-empty idempotency key
	// already used by a recorded payment returns that payment again.
	RecordPayment(ctx context.Context, idempotencyKey string, f Form) (*Payment, error)
	// UploadCheckImage stores a scanned check and returns its URL.
	UploadCheckImage(ctx context.Context, filename string, content io.Reader) (string, error)
	// OpenOrders lists the customer's orders a payment can be applied to.
	OpenOrders(ctx context.Context, customerID string) ([]*order.Order, error)
	History(ctx context.Context, customerID string) (*History, error)
}

type recordedPayment struct {
	payment *Payment
	at      time.Time
}

type service struct {
	repo      Repository
	customers customer.Service
	uploads   upload.Service
	clock     clock.Clock

	// Submits sharing an idempotency key run once.
	inflight singleflight.Group
	mu       sync.Mutex
	recorded map[string]recordedPayment
}

// NewService creates a new payment service.
func NewService(repo Repository, customers customer.Service, uploads upload.Service, clk clock.Clock) Service {
	return &service{
		repo:      repo,
		customers: customers,
		uploads:   uploads,
		clock:     clk,
		recorded:  make(map[string]recordedPayment),
	}
}

// lookup returns the payment recorded under key within the window, and
// forgets every older one.
func (s *service) lookup(key string) (*Payment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	for k, r := range s.recorded {
		if now.Sub(r.at) >= IdempotencyWindow {
			delete(s.recorded, k)
		}
	}
	r, ok := s.recorded[key]
	return r.payment, ok
}

func (s *service) remember(key string, p *Payment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recorded[key] = recordedPayment{payment: p, at: s.clock.Now()}
}

// validate checks f on its own, without looking up the customer's orders.
func validate(f Form) error {
	v := form.NewValidator().Fields(
		form.Required("storeId", form.Text, f.StoreID),
		form.Required("forOrderId", form.Text, f.ForOrderID).With(MsgNoOrder),
		form.Required("amount", form.Text, f.Amount).With("Amount Received is required"),
		form.Required("date", form.Text, f.Date).With("Payment Date is required"),
	)
	if strings.TrimSpace(f.Amount) != "" {
		v.Check(money.ValidAmount(f.Amount), "amount", MsgAmount)
	}
	if f.Method == "" {
		v.Check(false, "method", "Payment Method is required")
	} else {
		v.Check(f.Method.Valid(), "method", "Select a payment method.")
	}
	if f.Method == MethodCheck {
		v.Fields(
			form.Required("checkNumber", form.Text, f.CheckNumber).With("Check Number is required"),
			form.Required("checkImage", form.Text, f.CheckImage).With(MsgCheckImage),
		)
	}
	return v.Err()
}

func (s *service) RecordPayment(ctx context.Context, idempotencyKey string, f Form) (*Payment, error) {
	if idempotencyKey == "" {
		return s.record(ctx, f)
	}
	if p, ok := s.lookup(idempotencyKey); ok {
		return p, nil
	}
	v, err, _ := s.inflight.Do(idempotencyKey, func() (any, error) {
		// A submit that finished after our lookup has already been stored.
		if p, ok := s.lookup(idempotencyKey); ok {
			return p, nil
		}
		p, err := s.record(ctx, f)
		if err != nil {
			return nil, err
		}
		s.remember(idempotencyKey, p)
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Payment), nil
}

func (s *service) record(ctx context.Context, f Form) (*Payment, error) {
	if err := validate(f); err != nil {
		return nil, err
	}

	open, err := s.customers.OpenOrders(ctx, f.StoreID)
	if err != nil {
		return nil, err
	}
	found := false
	for _, o := range open {
		if o.ID == f.ForOrderID {
			found = true
			break
		}
	}
	if !found {
		return nil, form.Invalid("forOrderId", "Select an order with an open balance.")
	}

	amount, err := money.Parse(f.Amount)
	if err != nil {
		return nil, form.Invalid("amount", MsgAmount)
	}
	req := &Request{
		StoreID:     f.StoreID,
		ForOrderID:  f.ForOrderID,
		Amount:      amount,
		CheckNumber: NoCheck,
		Date:        f.Date,
		Method:      f.Method,
		CheckImage:  NoCheck,
	}
	if f.Method == MethodCheck {
		req.CheckNumber = strings.TrimSpace(f.CheckNumber)
		req.CheckImage = f.CheckImage
	}

	p, err := s.repo.Insert(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("record payment for order %s: %w", f.ForOrderID, err)
	}
	logger.Infof("payment of %s recorded for order %s", amount, f.ForOrderID)
	return p, nil
}

func (s *service) UploadCheckImage(ctx context.Context, filename string, content io.Reader) (string, error) {
	file, err := s.uploads.Upload(ctx, filename, content)
	var verr *form.ValidationError
	if errors.As(err, &verr) {
		return "", form.Invalid("checkImage", verr.Fields["file"])
	} else if err != nil {
		return "", err
	}
	return file.URL, nil
}

func (s *service) OpenOrders(ctx context.Context, customerID string) ([]*order.Order, error) {
	return s.customers.OpenOrders(ctx, customerID)
}

func (s *service) History(ctx context.Context, customerID string) (*History, error) {
	payments, err := s.repo.History(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("payment history of %s: %w", customerID, err)
	}
	h := &History{Payments: payments, Total: money.Zero}
	for _, p := range payments {
		h.Total = h.Total.Add(p.Amount)
	}
	return h, nil
}
