package prospect

import (
	"fmt"
	"strings"

	"github.com/juju/errors"

	"github.com/georgemunganga/printa-dashboard/internal/form"
	"github.com/georgemunganga/printa-dashboard/internal/modules/catalog"
	"github.com/georgemunganga/printa-dashboard/internal/money"
	"github.com/georgemunganga/printa-dashboard/internal/session"
	"github.com/georgemunganga/printa-dashboard/internal/sublist"
)

const (
	MsgQuoteIncomplete     = "All required quote fields must be filled."
	MsgFollowUpIncomplete  = "All required follow-up fields must be filled."
	MsgSalesPersonRequired = "Sales person is required for admins."
)

// checkQuote rejects quoted items without a product or with no price.
func checkQuote(q QuotedItem) error {
	if q.ProductObjID == "" || q.ItemNumber == "" || q.ItemName == "" || !q.Price.Positive() {
		return form.Rule(MsgQuoteIncomplete)
	}
	return nil
}

func checkFollowUp(a FollowUpActivity) error {
	if strings.TrimSpace(a.Activity) == "" || strings.TrimSpace(a.ActivityDate) == "" || !a.ActivityMedium.Valid() {
		return form.Rule(MsgFollowUpIncomplete)
	}
	return nil
}

// QuoteFor returns a quote for p at its sales price.
func QuoteFor(p *catalog.Product) QuotedItem {
	return QuotedItem{
		ProductObjID: p.ID,
		ItemNumber:   p.ItemNumber,
		ItemName:     p.Name,
		Price:        p.SalesPrice,
		PacketSize:   p.PacketSize,
	}
}

// Form is the add/edit prospect form as typed by the user. Quotes and
// follow-ups are staged separately in the Draft.
type Form struct {
	Contact
	Status              Status `json:"status"`
	AssignedSalesPerson string `json:"assignedSalesPerson"`
}

func (f *Form) text(name string) (*string, bool) {
	c := &f.Contact
	switch name {
	case "storeName":
		return &c.StoreName, true
	case "storePhone":
		return &c.StorePhone, true
	case "storePersonEmail":
		return &c.StorePersonEmail, true
	case "storePersonName":
		return &c.StorePersonName, true
	case "storePersonPhone":
		return &c.StorePersonPhone, true
	case "salesTaxId":
		return &c.SalesTaxID, true
	case "shippingAddress":
		return &c.ShippingAddress, true
	case "shippingState":
		return &c.ShippingState, true
	case "shippingZipcode":
		return &c.ShippingZipcode, true
	case "shippingCity":
		return &c.ShippingCity, true
	case "miscellaneousDocImage":
		return &c.MiscellaneousDocImage, true
	case "leadSource":
		return &c.LeadSource, true
	case "note":
		return &c.Note, true
	case "competitorStatement":
		return &c.CompetitorStatement, true
	}
	return nil, false
}

func normalize(name, value string) string {
	switch name {
	case "storePhone", "storePersonPhone":
		return form.TypePhone(value)
	case "shippingZipcode":
		return form.NormalizeZip(value)
	}
	return value
}

// Draft is the state of a prospect form for one caller.
type Draft struct {
	Form      Form
	Quotes    *sublist.List[QuotedItem]
	FollowUps *sublist.List[FollowUpActivity]
	Errors    form.FieldErrors

	admin bool
}

// NewDraft returns an empty add-prospect form for the caller.
func NewDraft(sess session.Context) *Draft {
	return DraftOf(sess, Form{Status: StatusContacted}, nil, nil)
}

// DraftOf returns a draft holding f and the given lists, with phone and zip
// inputs normalized. The lists are loaded as is and checked on Validate.
func DraftOf(sess session.Context, f Form, quotes []QuotedItem, followUps []FollowUpActivity) *Draft {
	d := &Draft{
		Form:      f,
		Quotes:    sublist.Of(checkQuote, quotes...),
		FollowUps: sublist.Of(checkFollowUp, followUps...),
		Errors:    form.FieldErrors{},
		admin:     sess.IsAdmin(),
	}
	for _, name := range []string{"storePhone", "storePersonPhone", "shippingZipcode"} {
		p, _ := d.Form.text(name)
		*p = normalize(name, *p)
	}
	if d.Form.Status == "" {
		d.Form.Status = StatusContacted
	}
	return d
}

// EditDraft returns the edit form pre-filled from p.
func EditDraft(sess session.Context, p *Prospect) *Draft {
	f := Form{Contact: p.Contact, Status: p.Status, AssignedSalesPerson: p.AssignedSalesPerson.ID}
	f.StorePhone = form.FormatPhone(p.StorePhone)
	f.StorePersonPhone = form.FormatPhone(p.StorePersonPhone)
	return DraftOf(sess, f, p.QuotedList, p.FollowUpActivities)
}

// Change sets a text field from user input and clears its error.
func (d *Draft) Change(name, value string) error {
	p, ok := d.Form.text(name)
	if !ok {
		return errors.NotValidf("prospect field %q", name)
	}
	*p = normalize(name, value)
	d.Errors.Clear(name)
	return nil
}

// SetStatus moves the prospect to s.
func (d *Draft) SetStatus(s Status) error {
	if !s.Valid() {
		return errors.NotValidf("status %q", s)
	}
	d.Form.Status = s
	d.Errors.Clear("status")
	return nil
}

// SetSalesPerson assigns the prospect. Only admins may do this.
func (d *Draft) SetSalesPerson(id string) error {
	if !d.admin {
		return form.Forbidden("Only admins can assign a sales person.")
	}
	d.Form.AssignedSalesPerson = strings.TrimSpace(id)
	d.Errors.Clear("assignedSalesPerson")
	return nil
}

// AddQuote stages q. An incomplete quote leaves the list unchanged.
func (d *Draft) AddQuote(q QuotedItem) (string, error) {
	return d.Quotes.Add(q)
}

// SetQuotePrice changes the price of the quote under key. Only admins may
// do this, and the price must stay above zero.
func (d *Draft) SetQuotePrice(key, price string) error {
	if !d.admin {
		return form.Forbidden("Only admins can change quoted prices.")
	}
	amt, err := money.Parse(price)
	if err != nil {
		return form.Invalid("price", "Please enter a valid price.")
	}
	return d.Quotes.Update(key, func(q *QuotedItem) { q.Price = amt })
}

// AddFollowUp stages a. An incomplete activity leaves the list unchanged.
func (d *Draft) AddFollowUp(a FollowUpActivity) (string, error) {
	a.Activity = strings.TrimSpace(a.Activity)
	return d.FollowUps.Add(a)
}

// Validate returns every error of the current form at once.
func (d *Draft) Validate() form.FieldErrors {
	f := &d.Form
	v := form.NewValidator().Fields(
		form.Required("storeName", form.Text, f.StoreName).With("Store name is required."),
		form.Required("storePhone", form.Phone, f.StorePhone),
		form.Required("storePersonEmail", form.Email, f.StorePersonEmail),
		form.Required("storePersonName", form.Text, f.StorePersonName).With("Customer name is required."),
		form.Required("storePersonPhone", form.Phone, f.StorePersonPhone),
		form.Required("shippingAddress", form.Text, f.ShippingAddress).With("Shipping address is required."),
		form.Required("shippingCity", form.Text, f.ShippingCity).With("Shipping city is required."),
		form.Required("shippingState", form.Text, f.ShippingState).With("Shipping state is required."),
		form.Required("shippingZipcode", form.Zip, f.ShippingZipcode),
	).Check(f.Status.Valid(), "status", "Select a status.")
	if d.admin {
		v.Check(strings.TrimSpace(f.AssignedSalesPerson) != "", "assignedSalesPerson", MsgSalesPersonRequired)
	}
	for i, q := range d.Quotes.Values() {
		v.Check(checkQuote(q) == nil, fmt.Sprintf("quotedList.%d", i),
			fmt.Sprintf("Quoted item %d has missing required fields.", i+1))
	}
	for i, a := range d.FollowUps.Values() {
		v.Check(checkFollowUp(a) == nil, fmt.Sprintf("followUpActivities.%d", i),
			fmt.Sprintf("Follow-up %d has missing required fields.", i+1))
	}
	return v.Errors()
}

// Submit validates the form and returns the wire payload, or records the
// complete error map in Errors and returns a *form.ValidationError. The
// salesperson is only sent for admins; for anyone else the server keeps
// the current assignment.
func (d *Draft) Submit() (*Payload, error) {
	errs := d.Validate()
	d.Errors = errs
	if len(errs) > 0 {
		return nil, &form.ValidationError{Fields: errs}
	}

	c := d.Form.Contact
	c.StoreName = strings.TrimSpace(c.StoreName)
	c.StorePersonName = strings.TrimSpace(c.StorePersonName)
	c.StorePersonEmail = strings.TrimSpace(c.StorePersonEmail)
	c.StorePhone = form.PhoneWire(c.StorePhone)
	c.StorePersonPhone = form.PhoneWire(c.StorePersonPhone)
	p := &Payload{
		Contact:            c,
		Status:             d.Form.Status,
		FollowUpActivities: d.FollowUps.Values(),
		QuotedList:         d.Quotes.Values(),
	}
	if d.admin {
		p.AssignedSalesPerson = strings.TrimSpace(d.Form.AssignedSalesPerson)
	}
	return p, nil
}

// ApplyError merges the field errors of a failed save into Errors and
// returns the message to show globally, if any.
func (d *Draft) ApplyError(err error) string {
	return form.Classify(err).ApplyTo(d.Errors)
}
