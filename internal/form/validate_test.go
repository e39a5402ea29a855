package form

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	jujuerrors "github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/printa-dashboard/internal/rest"
)

// candidate values per kind: one valid, one empty, one malformed.
var samples = map[Kind][3]string{
	Text:        {"Acme", "", ""},
	Phone:       {"(123)456-7890", "", "12345"},
	Zip:         {"12345", "", "1234"},
	Email:       {"ops@acme.com", "", "ops@acme"},
	PositiveInt: {"30", "", "-3"},
}

// TestValidateCompleteness checks every combination of kind, requiredness
// and value state: an error appears exactly when the field is required and
// empty, or non-empty and malformed.
func TestValidateCompleteness(t *testing.T) {
	for kind, values := range samples {
		for state, value := range values {
			for _, required := range []bool{true, false} {
				f := Field{Name: "f", Kind: kind, Value: value, Required: required}
				errs := Validate(f)

				empty := value == ""
				want := (empty && required) || (!empty && state != 0)
				assert.Equal(t, want, errs.Has("f"), fmt.Sprintf("kind=%d value=%q required=%v", kind, value, required))
			}
		}
	}
}

func TestValidateReportsAllFieldsAtOnce(t *testing.T) {
	errs := Validate(
		Required("storeName", Text, ""),
		Required("storePhone", Phone, "12"),
		Required("billingZipcode", Zip, "123"),
		Required("storePersonEmail", Email, "x"),
		Required("termDays", PositiveInt, "0").With(MsgTermDays),
		NonEmpty("acceptDeliveryDays", 0, MsgDeliveryDays),
		Required("billingCity", Text, "Austin"),
	)
	assert.Equal(t, FieldErrors{
		"storeName":          MsgRequired,
		"storePhone":         MsgPhone,
		"billingZipcode":     MsgZip,
		"storePersonEmail":   MsgEmail,
		"termDays":           MsgTermDays,
		"acceptDeliveryDays": MsgDeliveryDays,
	}, errs)
}

func TestSetField(t *testing.T) {
	assert.Empty(t, Validate(NonEmpty("days", 2, MsgDeliveryDays)))
	assert.Equal(t, MsgDeliveryDays, Validate(NonEmpty("days", 0, MsgDeliveryDays))["days"])
}

func TestValidator(t *testing.T) {
	v := NewValidator().
		Fields(Required("a", Text, "")).
		Check(false, "b", "bad b").
		Check(true, "c", "never")
	err := v.Err()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, FieldErrors{"a": MsgRequired, "b": "bad b"}, verr.Fields)
	assert.Contains(t, err.Error(), "a, b")

	assert.NoError(t, NewValidator().Err())
}

func TestFieldErrors(t *testing.T) {
	fe := FieldErrors{}
	fe.Add("x", "first")
	fe.Add("x", "second")
	assert.Equal(t, "first", fe["x"])
	fe.Merge(FieldErrors{"x": "server", "y": "y"})
	assert.Equal(t, "server", fe["x"])
	fe.Clear("x")
	assert.False(t, fe.Has("x"))
	assert.Equal(t, []string{"y"}, fe.Names())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		kind   FailureKind
		status int
		msg    string
	}{{
		name:   "client validation",
		err:    Invalid("amount", "bad"),
		kind:   KindValidation,
		status: http.StatusUnprocessableEntity,
	}, {
		name: "server validation",
		err: &rest.APIError{StatusCode: 400, Message: "Validation Error", ErrorSources: []rest.ErrorSource{
			{Path: "storeName", Message: "Store name already exists"},
		}},
		kind:   KindServerValidation,
		status: http.StatusUnprocessableEntity,
		msg:    "Validation Error",
	}, {
		name:   "business",
		err:    fmt.Errorf("add customer: %w", &rest.APIError{StatusCode: 409, Message: "Duplicate store"}),
		kind:   KindBusiness,
		status: http.StatusConflict,
		msg:    "Duplicate store",
	}, {
		name:   "business from 5xx",
		err:    &rest.APIError{StatusCode: 500, Message: "Something broke"},
		kind:   KindBusiness,
		status: http.StatusBadRequest,
		msg:    "Something broke",
	}, {
		name:   "api error without message",
		err:    &rest.APIError{StatusCode: 401},
		kind:   KindUnexpected,
		status: http.StatusBadGateway,
		msg:    MsgUnexpected,
	}, {
		name:   "forbidden",
		err:    fmt.Errorf("add prospect: %w", Forbidden("Only admins can add prospects.")),
		kind:   KindBusiness,
		status: http.StatusForbidden,
		msg:    "Only admins can add prospects.",
	}, {
		name:   "not found",
		err:    jujuerrors.NotFoundf("product %q", "p1"),
		kind:   KindBusiness,
		status: http.StatusNotFound,
		msg:    `Product "p1" not found`,
	}, {
		name:   "network",
		err:    errors.New("dial tcp: connection refused"),
		kind:   KindUnexpected,
		status: http.StatusBadGateway,
		msg:    MsgUnexpected,
	}}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := Classify(tc.err)
			assert.Equal(t, tc.kind, f.Kind)
			assert.Equal(t, tc.status, f.HTTPStatus())
			if tc.msg != "" {
				assert.Contains(t, f.Message, tc.msg)
			}
		})
	}
}

func TestServerErrorsMergeIntoFieldErrors(t *testing.T) {
	errs := FieldErrors{"storePhone": MsgPhone}
	f := Classify(&rest.APIError{StatusCode: 400, Message: "Validation Error", ErrorSources: []rest.ErrorSource{
		{Path: "storeName", Message: "Store name already exists"},
	}})
	msg := f.ApplyTo(errs)
	assert.Equal(t, "Validation Error", msg)
	assert.Equal(t, FieldErrors{
		"storePhone": MsgPhone,
		"storeName":  "Store name already exists",
	}, errs)

	errs = FieldErrors{}
	assert.Empty(t, Classify(Invalid("a", "b")).ApplyTo(errs))
	assert.Equal(t, "b", errs["a"])
}
