package menuboard

import (
	"fmt"
	"net/http"

	"github.com/kailas-cloud/menuboard/internal/domain"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound            = domain.ErrNotFound
	ErrRestaurantNotFound  = domain.ErrRestaurantNotFound
	ErrMenuItemNotFound    = domain.ErrMenuItemNotFound
	ErrUserNotFound        = domain.ErrUserNotFound
	ErrAlreadyExists       = domain.ErrAlreadyExists
	ErrEmailTaken          = domain.ErrEmailTaken
	ErrDuplicateRestaurant = domain.ErrDuplicateRestaurant
	ErrInvalidInput        = domain.ErrInvalidInput
	ErrUnauthorized        = domain.ErrUnauthorized
	ErrInvalidCredentials  = domain.ErrInvalidCredentials
	ErrForbidden           = domain.ErrForbidden
	ErrRateLimited         = domain.ErrRateLimited
)

// FieldError is a rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int          `json:"-"`
	Code       string       `json:"code"`
	Message    string       `json:"message"`
	Fields     []FieldError `json:"fields,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("menuboard: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("menuboard: HTTP %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Unwrap exposes the sentinels matching the status and code, so
// errors.Is(err, ErrNotFound) works for every kind of missing resource.
func (e *APIError) Unwrap() []error {
	var out []error
	switch e.Code {
	case "restaurant_not_found":
		out = append(out, ErrRestaurantNotFound)
	case "menu_item_not_found":
		out = append(out, ErrMenuItemNotFound)
	case "user_not_found":
		out = append(out, ErrUserNotFound)
	case "email_taken":
		out = append(out, ErrEmailTaken)
	case "duplicate_restaurant":
		out = append(out, ErrDuplicateRestaurant)
	case "invalid_credentials":
		out = append(out, ErrInvalidCredentials)
	}

	switch e.StatusCode {
	case http.StatusNotFound:
		out = append(out, ErrNotFound)
	case http.StatusConflict:
		out = append(out, ErrAlreadyExists)
	case http.StatusBadRequest:
		out = append(out, ErrInvalidInput)
	case http.StatusUnauthorized:
		out = append(out, ErrUnauthorized)
	case http.StatusForbidden:
		out = append(out, ErrForbidden)
	case http.StatusTooManyRequests:
		out = append(out, ErrRateLimited)
	}
	return out
}
