package form

import (
	"sort"
	"strconv"
	"strings"
)

// Messages shown next to invalid fields.
const (
	MsgRequired     = "This field is required."
	MsgPhone        = "Phone number must be in format (XXX)XXX-XXXX."
	MsgZip          = "Zipcode must be 5 digits."
	MsgEmail        = "Invalid email format."
	MsgPositiveInt  = "Must be a positive whole number."
	MsgTermDays     = "Valid term days are required."
	MsgDeliveryDays = "At least one delivery day is required."
)

// FieldErrors maps a field name to the message shown next to it.
type FieldErrors map[string]string

// Add records msg for field unless the field already has an error.
func (fe FieldErrors) Add(field, msg string) {
	if _, ok := fe[field]; !ok {
		fe[field] = msg
	}
}

// Has reports whether field has an error.
func (fe FieldErrors) Has(field string) bool {
	_, ok := fe[field]
	return ok
}

// Clear removes the error of each named field.
func (fe FieldErrors) Clear(fields ...string) {
	for _, f := range fields {
		delete(fe, f)
	}
}

// Merge copies every error of other into fe, replacing existing messages.
func (fe FieldErrors) Merge(other FieldErrors) {
	for k, v := range other {
		fe[k] = v
	}
}

// Names returns the fields with errors in sorted order.
func (fe FieldErrors) Names() []string {
	names := make([]string, 0, len(fe))
	for k := range fe {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Kind selects the type rule applied to a field.
type Kind int

const (
	Text Kind = iota
	Phone
	Zip
	Email
	PositiveInt
	Set
)

// Field is one input of a form at submit time. Set fields carry their size
// in Items instead of a Value.
type Field struct {
	Name     string
	Kind     Kind
	Value    string
	Items    int
	Required bool
	// Message replaces the default message for this field.
	Message string
}

// Required returns a required field of the given kind.
func Required(name string, kind Kind, value string) Field {
	return Field{Name: name, Kind: kind, Value: value, Required: true}
}

// Optional returns a field that is checked only when non-empty.
func Optional(name string, kind Kind, value string) Field {
	return Field{Name: name, Kind: kind, Value: value}
}

// NonEmpty returns a required set-valued field holding n items.
func NonEmpty(name string, n int, msg string) Field {
	return Field{Name: name, Kind: Set, Items: n, Required: true, Message: msg}
}

// With returns f with its message replaced.
func (f Field) With(msg string) Field {
	f.Message = msg
	return f
}

func (f Field) empty() bool {
	if f.Kind == Set {
		return f.Items == 0
	}
	return strings.TrimSpace(f.Value) == ""
}

// Check returns the error message for f, or "" when it is valid.
func (f Field) Check() string {
	if f.empty() {
		if !f.Required {
			return ""
		}
		return f.message(MsgRequired)
	}
	switch f.Kind {
	case Phone:
		if !ValidPhone(f.Value) {
			return f.message(MsgPhone)
		}
	case Zip:
		if !ValidZip(f.Value) {
			return f.message(MsgZip)
		}
	case Email:
		if !ValidEmail(strings.TrimSpace(f.Value)) {
			return f.message(MsgEmail)
		}
	case PositiveInt:
		if n, err := strconv.Atoi(strings.TrimSpace(f.Value)); err != nil || n <= 0 {
			return f.message(MsgPositiveInt)
		}
	}
	return ""
}

func (f Field) message(def string) string {
	if f.Message != "" {
		return f.Message
	}
	return def
}

// Validate checks every field and returns the complete error map. An empty
// map means the form may be submitted.
func Validate(fields ...Field) FieldErrors {
	errs := FieldErrors{}
	for _, f := range fields {
		if msg := f.Check(); msg != "" {
			errs.Add(f.Name, msg)
		}
	}
	return errs
}

// Validator accumulates field checks and free-form rules for one submit.
type Validator struct {
	errs FieldErrors
}

// NewValidator returns an empty Validator.
func NewValidator() *Validator { return &Validator{errs: FieldErrors{}} }

// Fields applies Validate to fields.
func (v *Validator) Fields(fields ...Field) *Validator {
	for name, msg := range Validate(fields...) {
		v.errs.Add(name, msg)
	}
	return v
}

// Check records msg for field when ok is false.
func (v *Validator) Check(ok bool, field, msg string) *Validator {
	if !ok {
		v.errs.Add(field, msg)
	}
	return v
}

// Errors returns the accumulated errors.
func (v *Validator) Errors() FieldErrors { return v.errs }

// Err returns a *ValidationError when any check failed.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: v.errs}
}
