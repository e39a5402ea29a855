package prospect

import (
	"context"
	"fmt"
	"strings"

	"github.com/juju/errors"
	"github.com/juju/loggo/v2"

	"github.com/georgemunganga/printa-dashboard/internal/form"
	"github.com/georgemunganga/printa-dashboard/internal/modules/catalog"
	"github.com/georgemunganga/printa-dashboard/internal/modules/user"
	"github.com/georgemunganga/printa-dashboard/internal/session"
)

var logger = loggo.GetLogger("printa.prospect")

// PageSize is the number of prospects on one listing page.
const PageSize = 10

// Service defines prospect business logic.
type Service interface {
	// ListProspects returns the given 1-based page of prospects whose store
	// name contains search. Converted prospects are left out.
	ListProspects(ctx context.Context, search string, page int) (*Page, error)
	GetProspect(ctx context.Context, id string) (*Prospect, error)

	// Quote resolves productID through the catalog into a quote at the
	// product's sales price.
	Quote(ctx context.Context, productID string) (QuotedItem, error)

	// CreateProspect submits d. Only admins may add prospects.
	CreateProspect(ctx context.Context, sess session.Context, d *Draft) (*Prospect, error)
	UpdateProspect(ctx context.Context, sess session.Context, id string, d *Draft) (*Prospect, error)
	DeleteProspect(ctx context.Context, id string) error

	// AssignSalesPerson hands the prospect to a sales user. Only admins may
	// do this.
	AssignSalesPerson(ctx context.Context, sess session.Context, id, salesPersonID string) error
	ConvertProspect(ctx context.Context, id string) error
	SendEmail(ctx context.Context, id string) error
}

type service struct {
	repo     Repository
	products catalog.Service
	users    user.Service
}

// NewService creates a new prospect service.
func NewService(repo Repository, products catalog.Service, users user.Service) Service {
	return &service{repo: repo, products: products, users: users}
}

func (s *service) ListProspects(ctx context.Context, search string, page int) (*Page, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list prospects: %w", err)
	}
	search = strings.ToLower(strings.TrimSpace(search))
	var matched []*Prospect
	for _, p := range all {
		if p.IsDeleted || p.Status == StatusConverted {
			continue
		}
		if search == "" || strings.Contains(strings.ToLower(p.StoreName), search) {
			matched = append(matched, p)
		}
	}

	totalPages := (len(matched) + PageSize - 1) / PageSize
	if page < 1 {
		page = 1
	}
	start := (page - 1) * PageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return &Page{
		Prospects:  append([]*Prospect{}, matched[start:end]...),
		Page:       page,
		TotalPages: totalPages,
		Total:      len(matched),
	}, nil
}

func (s *service) GetProspect(ctx context.Context, id string) (*Prospect, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get prospect %s: %w", id, err)
	}
	return p, nil
}

func (s *service) Quote(ctx context.Context, productID string) (QuotedItem, error) {
	p, err := s.products.Lookup(ctx, productID)
	if err != nil {
		return QuotedItem{}, err
	}
	return QuoteFor(p), nil
}

// resolveQuotes fills each staged quote from the catalog. Prices are kept
// for admins; anyone else gets the previously quoted price for the product,
// or its sales price for a new quote.
func (s *service) resolveQuotes(ctx context.Context, d *Draft, previous []QuotedItem) error {
	quoted := make(map[string]QuotedItem, len(previous))
	for _, q := range previous {
		quoted[q.ProductObjID] = q
	}

	errs := form.FieldErrors{}
	for i, it := range d.Quotes.Items() {
		if it.Value.ProductObjID == "" {
			continue
		}
		p, err := s.products.Lookup(ctx, it.Value.ProductObjID)
		if errors.Is(err, errors.NotFound) {
			errs.Add(fmt.Sprintf("quotedList.%d.productObjId", i), "Select a product from the catalog.")
			continue
		} else if err != nil {
			return err
		}
		resolved := QuoteFor(p)
		switch prev, ok := quoted[p.ID]; {
		case d.admin:
			resolved.Price = it.Value.Price
		case ok:
			resolved.Price = prev.Price
		}
		if err := d.Quotes.Update(it.Key, func(q *QuotedItem) { *q = resolved }); err != nil {
			errs.Add(fmt.Sprintf("quotedList.%d", i), fmt.Sprintf("Quoted item %d has missing required fields.", i+1))
		}
	}
	if len(errs) > 0 {
		d.Errors = errs
		return &form.ValidationError{Fields: errs}
	}
	return nil
}

func (s *service) CreateProspect(ctx context.Context, sess session.Context, d *Draft) (*Prospect, error) {
	if !sess.IsAdmin() {
		return nil, form.Forbidden("Only admins can add prospects.")
	}
	if err := s.resolveQuotes(ctx, d, nil); err != nil {
		return nil, err
	}
	payload, err := d.Submit()
	if err != nil {
		return nil, err
	}
	p, err := s.repo.Create(ctx, payload)
	if err != nil {
		d.ApplyError(err)
		return nil, fmt.Errorf("add prospect: %w", err)
	}
	logger.Infof("prospect %q added", payload.StoreName)
	return p, nil
}

func (s *service) UpdateProspect(ctx context.Context, sess session.Context, id string, d *Draft) (*Prospect, error) {
	var previous []QuotedItem
	if !sess.IsAdmin() {
		current, err := s.GetProspect(ctx, id)
		if err != nil {
			return nil, err
		}
		previous = current.QuotedList
	}
	if err := s.resolveQuotes(ctx, d, previous); err != nil {
		return nil, err
	}
	payload, err := d.Submit()
	if err != nil {
		return nil, err
	}
	p, err := s.repo.Update(ctx, id, payload)
	if err != nil {
		d.ApplyError(err)
		return nil, fmt.Errorf("update prospect %s: %w", id, err)
	}
	return p, nil
}

func (s *service) DeleteProspect(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete prospect %s: %w", id, err)
	}
	return nil
}

func (s *service) AssignSalesPerson(ctx context.Context, sess session.Context, id, salesPersonID string) error {
	if !sess.IsAdmin() {
		return form.Forbidden("Only admins can assign a sales person.")
	}
	salesPersonID = strings.TrimSpace(salesPersonID)
	if salesPersonID == "" {
		return form.Invalid("assignedSalesPerson", MsgSalesPersonRequired)
	}

	users, err := s.users.ListSalesUsers(ctx)
	if err != nil {
		return err
	}
	found := false
	for _, u := range users {
		if u.ID == salesPersonID && u.Role == user.RoleSalesUser {
			found = true
			break
		}
	}
	if !found {
		return form.Invalid("assignedSalesPerson", "Select a sales person from the list.")
	}

	if err := s.repo.Assign(ctx, id, salesPersonID); err != nil {
		return fmt.Errorf("assign prospect %s: %w", id, err)
	}
	logger.Infof("prospect %s assigned to %s", id, salesPersonID)
	return nil
}

func (s *service) ConvertProspect(ctx context.Context, id string) error {
	if err := s.repo.Convert(ctx, id); err != nil {
		return fmt.Errorf("convert prospect %s: %w", id, err)
	}
	logger.Infof("prospect %s converted", id)
	return nil
}

func (s *service) SendEmail(ctx context.Context, id string) error {
	if err := s.repo.SendEmail(ctx, id); err != nil {
		return fmt.Errorf("email prospect %s: %w", id, err)
	}
	return nil
}
