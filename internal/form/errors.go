package form

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/juju/errors"

	"github.com/georgemunganga/printa-dashboard/internal/rest"
)

// MsgUnexpected is shown for failures that carry no usable message.
const MsgUnexpected = "An unexpected error occurred."

// ValidationError reports field errors found before any request was sent.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid fields: %s", strings.Join(e.Fields.Names(), ", "))
}

// Invalid returns a ValidationError for a single field.
func Invalid(field, msg string) error {
	return &ValidationError{Fields: FieldErrors{field: msg}}
}

// RuleError is a business rule violation detected locally, shown as a
// global message.
type RuleError struct {
	Status  int
	Message string
}

func (e *RuleError) Error() string { return e.Message }

// Rule returns a RuleError answered with 400.
func Rule(msg string) error { return &RuleError{Status: http.StatusBadRequest, Message: msg} }

// Forbidden returns a RuleError for an operation the caller's role may not perform.
func Forbidden(msg string) error { return &RuleError{Status: http.StatusForbidden, Message: msg} }

// FailureKind tells how a failure is presented.
type FailureKind string

const (
	// KindValidation is a client-side field error; no request was made.
	KindValidation FailureKind = "validation"
	// KindServerValidation carries field errors returned by the server.
	KindServerValidation FailureKind = "server_validation"
	// KindBusiness is a global message without field errors.
	KindBusiness FailureKind = "business"
	// KindUnexpected covers network failures and unreadable responses.
	KindUnexpected FailureKind = "unexpected"
)

// Failure is the presentable form of an error.
type Failure struct {
	Kind    FailureKind `json:"kind"`
	Message string      `json:"error"`
	Fields  FieldErrors `json:"fieldErrors,omitempty"`
	// Status is the upstream HTTP status, when there was one.
	Status int `json:"-"`
}

// HTTPStatus is the status used when the failure is returned by the local API.
func (f Failure) HTTPStatus() int {
	switch f.Kind {
	case KindValidation, KindServerValidation:
		return http.StatusUnprocessableEntity
	case KindBusiness:
		if f.Status >= 400 && f.Status < 500 {
			return f.Status
		}
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

// Classify sorts err into one of the failure kinds. Server field errors are
// keyed by their path so they merge with client errors.
func Classify(err error) Failure {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return Failure{Kind: KindValidation, Message: "Please fix the highlighted fields.", Fields: verr.Fields}
	}

	var ruleErr *RuleError
	if errors.As(err, &ruleErr) {
		return Failure{Kind: KindBusiness, Message: ruleErr.Message, Status: ruleErr.Status}
	}

	var apiErr *rest.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HasFieldErrors() {
			fields := FieldErrors{}
			for _, src := range apiErr.ErrorSources {
				fields.Add(src.Path, src.Message)
			}
			msg := apiErr.Message
			if msg == "" {
				msg = "Please fix the highlighted fields."
			}
			return Failure{Kind: KindServerValidation, Message: msg, Fields: fields, Status: apiErr.StatusCode}
		}
		if apiErr.Message != "" {
			return Failure{Kind: KindBusiness, Message: apiErr.Message, Status: apiErr.StatusCode}
		}
		return Failure{Kind: KindUnexpected, Message: MsgUnexpected, Status: apiErr.StatusCode}
	}

	switch {
	case errors.Is(err, errors.Forbidden):
		return Failure{Kind: KindBusiness, Message: errorMessage(err), Status: http.StatusForbidden}
	case errors.Is(err, errors.NotFound):
		return Failure{Kind: KindBusiness, Message: errorMessage(err), Status: http.StatusNotFound}
	case errors.Is(err, errors.NotValid), errors.Is(err, errors.BadRequest):
		return Failure{Kind: KindBusiness, Message: errorMessage(err), Status: http.StatusBadRequest}
	}
	return Failure{Kind: KindUnexpected, Message: MsgUnexpected}
}

// ApplyTo merges the failure's field errors into errs and returns the global
// message to show, if any.
func (f Failure) ApplyTo(errs FieldErrors) string {
	if len(f.Fields) > 0 {
		errs.Merge(f.Fields)
		if f.Kind == KindValidation {
			return ""
		}
	}
	return f.Message
}

func errorMessage(err error) string {
	msg := err.Error()
	if msg == "" {
		return MsgUnexpected
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
