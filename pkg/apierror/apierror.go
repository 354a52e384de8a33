package apierror

import (
	"fmt"
	"net/http"
)

// APIError is an error that already knows how it should be rendered to an
// HTTP client. Handlers return it when the failure is a request problem
// rather than a domain condition.
type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	HTTPStatus int    `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches two APIErrors by code, so sentinel-style comparisons work with
// errors.Is.
func (e *APIError) Is(target error) bool {
	other, ok := target.(*APIError)
	return ok && other != nil && e != nil && e.Code == other.Code
}

func New(code string, message string, details string, status int) *APIError {
	return &APIError{Code: code, Message: message, Details: details, HTTPStatus: status}
}

func BadRequest(message string) *APIError {
	return New("BAD_REQUEST", message, "", http.StatusBadRequest)
}
