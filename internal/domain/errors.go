package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrRestaurantNotFound signals a missing or invisible restaurant.
	ErrRestaurantNotFound = errors.New("restaurant not found")
	// ErrMenuItemNotFound signals a missing menu item.
	ErrMenuItemNotFound = errors.New("menu item not found")
	// ErrUserNotFound signals a missing user.
	ErrUserNotFound = errors.New("user not found")
	// ErrAlreadyExists signals a duplicate resource.
	ErrAlreadyExists = errors.New("already exists")
	// ErrEmailTaken signals a registration with an email already in use.
	ErrEmailTaken = errors.New("email already registered")
	// ErrDuplicateRestaurant signals a restaurant with the same name nearby.
	ErrDuplicateRestaurant = errors.New("restaurant with this name already exists nearby")
	// ErrInvalidInput signals a request that failed validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthorized signals a missing or invalid credential.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidCredentials signals a failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden signals an authenticated caller acting on someone else's resource.
	ErrForbidden = errors.New("forbidden")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
)

// InputError wraps ErrInvalidInput with a field-level reason.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }

// NewInputError creates an invalid input error for a field.
func NewInputError(field, reason string) error {
	return &InputError{Field: field, Reason: reason}
}
