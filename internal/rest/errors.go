package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorSource is one field-level validation failure reported by the server.
type ErrorSource struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// APIError is returned for every non-2xx response. A 401 is not special-cased.
type APIError struct {
	StatusCode   int           `json:"-"`
	Success      bool          `json:"success"`
	Message      string        `json:"message"`
	ErrorSources []ErrorSource `json:"errorSources,omitempty"`
	// Body is the raw response, for services that report errors in
	// another shape.
	Body []byte `json:"-"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server responded %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("server responded %d: %s", e.StatusCode, e.Message)
}

// HasFieldErrors reports whether the server attached field-level errors.
func (e *APIError) HasFieldErrors() bool { return len(e.ErrorSources) > 0 }

func decodeAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, apiErr); err != nil {
			apiErr = &APIError{}
		}
	}
	apiErr.StatusCode = status
	apiErr.Body = body
	return apiErr
}
