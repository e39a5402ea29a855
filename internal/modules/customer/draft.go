package customer

import (
	"strconv"
	"strings"

	"github.com/juju/errors"

	"github.com/georgemunganga/printa-dashboard/internal/form"
)

// Form is the add/edit customer form as typed by the user.
type Form struct {
	StoreName            string         `json:"storeName"`
	StorePhone           string         `json:"storePhone"`
	StorePersonName      string         `json:"storePersonName"`
	StorePersonPhone     string         `json:"storePersonPhone"`
	StorePersonEmail     string         `json:"storePersonEmail"`
	BillingAddress       string         `json:"billingAddress"`
	BillingCity          string         `json:"billingCity"`
	BillingState         string         `json:"billingState"`
	BillingZipcode       string         `json:"billingZipcode"`
	ShippingAddress      string         `json:"shippingAddress"`
	ShippingCity         string         `json:"shippingCity"`
	ShippingState        string         `json:"shippingState"`
	ShippingZipcode      string         `json:"shippingZipcode"`
	SameAsBillingAddress bool           `json:"sameAsBillingAddress"`
	SalesTaxID           string         `json:"salesTaxId"`
	TermDays             string         `json:"termDays"`
	AcceptDeliveryDays   DeliveryDays   `json:"acceptDeliveryDays"`
	ShippingStatus       ShippingStatus `json:"shippingStatus"`
	Note                 string         `json:"note"`
	BankACHInfo          string         `json:"bankAchInfo"`
	CreditApplication    string         `json:"creditApplication"`
	OwnerLegalFrontImage string         `json:"ownerLegalFrontImage"`
	OwnerLegalBackImage  string         `json:"ownerLegalBackImage"`
	VoidedCheckImage     string         `json:"voidedCheckImage"`
	Miscellaneous        string         `json:"miscellaneous"`
}

// text returns the string field called name.
func (f *Form) text(name string) (*string, bool) {
	switch name {
	case "storeName":
		return &f.StoreName, true
	case "storePhone":
		return &f.StorePhone, true
	case "storePersonName":
		return &f.StorePersonName, true
	case "storePersonPhone":
		return &f.StorePersonPhone, true
	case "storePersonEmail":
		return &f.StorePersonEmail, true
	case "billingAddress":
		return &f.BillingAddress, true
	case "billingCity":
		return &f.BillingCity, true
	case "billingState":
		return &f.BillingState, true
	case "billingZipcode":
		return &f.BillingZipcode, true
	case "shippingAddress":
		return &f.ShippingAddress, true
	case "shippingCity":
		return &f.ShippingCity, true
	case "shippingState":
		return &f.ShippingState, true
	case "shippingZipcode":
		return &f.ShippingZipcode, true
	case "salesTaxId":
		return &f.SalesTaxID, true
	case "termDays":
		return &f.TermDays, true
	case "note":
		return &f.Note, true
	case "bankAchInfo":
		return &f.BankACHInfo, true
	case "creditApplication":
		return &f.CreditApplication, true
	case "ownerLegalFrontImage":
		return &f.OwnerLegalFrontImage, true
	case "ownerLegalBackImage":
		return &f.OwnerLegalBackImage, true
	case "voidedCheckImage":
		return &f.VoidedCheckImage, true
	case "miscellaneous":
		return &f.Miscellaneous, true
	}
	return nil, false
}

var shippingFields = []string{"shippingAddress", "shippingCity", "shippingState", "shippingZipcode"}

// Draft is the state of a customer form between keystrokes and submit.
type Draft struct {
	Form   Form
	Errors form.FieldErrors
}

// NewDraft returns an empty add-customer form with its defaults.
func NewDraft() *Draft {
	return &Draft{
		Form:   Form{TermDays: DefaultTermDays, ShippingStatus: ShippingSilver},
		Errors: form.FieldErrors{},
	}
}

// DraftOf returns a draft holding f with phone and zip inputs normalized.
func DraftOf(f Form) *Draft {
	d := &Draft{Form: f, Errors: form.FieldErrors{}}
	for _, name := range []string{"storePhone", "storePersonPhone", "billingZipcode", "shippingZipcode"} {
		p, _ := d.Form.text(name)
		*p = normalize(name, *p)
	}
	if d.Form.ShippingStatus == "" {
		d.Form.ShippingStatus = ShippingSilver
	}
	return d
}

// EditDraft returns the edit form pre-filled from c. A customer saved
// without a shipping tier is shown as SILVER.
func EditDraft(c *Customer) *Draft {
	d := &Draft{
		Form: Form{
			StoreName:            c.StoreName,
			StorePhone:           form.FormatPhone(c.StorePhone),
			StorePersonName:      c.StorePersonName,
			StorePersonPhone:     form.FormatPhone(c.StorePersonPhone),
			StorePersonEmail:     c.StorePersonEmail,
			BillingAddress:       c.BillingAddress,
			BillingCity:          c.BillingCity,
			BillingState:         c.BillingState,
			BillingZipcode:       c.BillingZipcode,
			ShippingAddress:      c.ShippingAddress,
			ShippingCity:         c.ShippingCity,
			ShippingState:        c.ShippingState,
			ShippingZipcode:      c.ShippingZipcode,
			SalesTaxID:           c.SalesTaxID,
			TermDays:             strconv.Itoa(c.TermDays),
			AcceptDeliveryDays:   c.AcceptedDeliveryDays,
			ShippingStatus:       c.ShippingStatus,
			Note:                 c.Note,
			BankACHInfo:          c.BankACHAccountInfo,
			CreditApplication:    c.CreditApplication,
			OwnerLegalFrontImage: c.OwnerLegalFrontImage,
			OwnerLegalBackImage:  c.OwnerLegalBackImage,
			VoidedCheckImage:     c.VoidedCheckImage,
			Miscellaneous:        c.Miscellaneous,
		},
		Errors: form.FieldErrors{},
	}
	if d.Form.ShippingStatus == "" {
		d.Form.ShippingStatus = ShippingSilver
	}
	return d
}

func normalize(name, value string) string {
	switch name {
	case "storePhone", "storePersonPhone":
		return form.TypePhone(value)
	case "billingZipcode", "shippingZipcode":
		return form.NormalizeZip(value)
	}
	return value
}

// Change sets a text field from user input and clears its error.
func (d *Draft) Change(name, value string) error {
	p, ok := d.Form.text(name)
	if !ok {
		return errors.NotValidf("customer field %q", name)
	}
	*p = normalize(name, value)
	d.Errors.Clear(name)
	return nil
}

// SetShippingStatus picks the customer's tier.
func (d *Draft) SetShippingStatus(s ShippingStatus) {
	d.Form.ShippingStatus = s
	d.Errors.Clear("shippingStatus")
}

// ToggleDeliveryDay adds or removes day from the accepted delivery days.
func (d *Draft) ToggleDeliveryDay(day string) error {
	if err := d.Form.AcceptDeliveryDays.Toggle(day); err != nil {
		return err
	}
	if d.Form.AcceptDeliveryDays.Len() > 0 {
		d.Errors.Clear("acceptDeliveryDays")
	}
	return nil
}

// SetSameAsBilling copies the billing address into the shipping address
// while on.
func (d *Draft) SetSameAsBilling(on bool) {
	d.Form.SameAsBillingAddress = on
	if on {
		d.copyBilling()
		d.Errors.Clear(shippingFields...)
	}
}

func (d *Draft) copyBilling() {
	f := &d.Form
	f.ShippingAddress = f.BillingAddress
	f.ShippingCity = f.BillingCity
	f.ShippingState = f.BillingState
	f.ShippingZipcode = f.BillingZipcode
}

// Validate returns every error of the current form at once.
func (d *Draft) Validate() form.FieldErrors {
	f := &d.Form
	return form.NewValidator().Fields(
		form.Required("storeName", form.Text, f.StoreName),
		form.Required("storePhone", form.Phone, f.StorePhone),
		form.Required("storePersonName", form.Text, f.StorePersonName),
		form.Required("storePersonPhone", form.Phone, f.StorePersonPhone),
		form.Required("storePersonEmail", form.Email, f.StorePersonEmail),
		form.Required("billingAddress", form.Text, f.BillingAddress),
		form.Required("billingCity", form.Text, f.BillingCity),
		form.Required("billingState", form.Text, f.BillingState),
		form.Required("billingZipcode", form.Zip, f.BillingZipcode),
		form.Required("shippingAddress", form.Text, f.ShippingAddress),
		form.Required("shippingCity", form.Text, f.ShippingCity),
		form.Required("shippingState", form.Text, f.ShippingState),
		form.Required("shippingZipcode", form.Zip, f.ShippingZipcode),
		form.NonEmpty("acceptDeliveryDays", f.AcceptDeliveryDays.Len(), form.MsgDeliveryDays),
		form.Required("termDays", form.PositiveInt, f.TermDays).With(form.MsgTermDays),
	).
		Check(f.ShippingStatus.Valid(), "shippingStatus", "Select a shipping status.").
		Errors()
}

// Submit validates the form. On failure the complete error map replaces
// Errors and a *form.ValidationError is returned; otherwise Errors is
// cleared and the wire payload is returned.
func (d *Draft) Submit() (*Payload, error) {
	if d.Form.SameAsBillingAddress {
		d.copyBilling()
	}
	errs := d.Validate()
	d.Errors = errs
	if len(errs) > 0 {
		return nil, &form.ValidationError{Fields: errs}
	}

	f := &d.Form
	termDays, _ := strconv.Atoi(strings.TrimSpace(f.TermDays))
	salesTaxID := strings.TrimSpace(f.SalesTaxID)
	if salesTaxID == "" {
		salesTaxID = DefaultSalesTaxID
	}
	return &Payload{
		StoreName:            strings.TrimSpace(f.StoreName),
		StorePhone:           form.PhoneWire(f.StorePhone),
		StorePersonEmail:     strings.TrimSpace(f.StorePersonEmail),
		StorePersonName:      strings.TrimSpace(f.StorePersonName),
		StorePersonPhone:     form.PhoneWire(f.StorePersonPhone),
		BillingAddress:       f.BillingAddress,
		BillingCity:          f.BillingCity,
		BillingState:         f.BillingState,
		BillingZipcode:       f.BillingZipcode,
		ShippingAddress:      f.ShippingAddress,
		ShippingCity:         f.ShippingCity,
		ShippingState:        f.ShippingState,
		ShippingZipcode:      f.ShippingZipcode,
		SalesTaxID:           salesTaxID,
		AcceptedDeliveryDays: f.AcceptDeliveryDays,
		BankACHAccountInfo:   f.BankACHInfo,
		CreditApplication:    f.CreditApplication,
		OwnerLegalFrontImage: f.OwnerLegalFrontImage,
		OwnerLegalBackImage:  f.OwnerLegalBackImage,
		VoidedCheckImage:     f.VoidedCheckImage,
		Miscellaneous:        f.Miscellaneous,
		TermDays:             termDays,
		ShippingStatus:       f.ShippingStatus,
		Note:                 f.Note,
	}, nil
}

// ApplyError merges the field errors of a failed save into Errors and
// returns the message to show globally, if any.
func (d *Draft) ApplyError(err error) string {
	return form.Classify(err).ApplyTo(d.Errors)
}
