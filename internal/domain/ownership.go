package domain

import "fmt"

// OwnershipPolicy decides who may modify a restaurant and its menu.
type OwnershipPolicy string

const (
	// OwnershipStrict allows only the creator to modify.
	OwnershipStrict OwnershipPolicy = "strict"
	// OwnershipOpen allows any authenticated user to modify.
	OwnershipOpen OwnershipPolicy = "open"
)

// ParseOwnershipPolicy parses a policy name. Empty selects strict.
func ParseOwnershipPolicy(s string) (OwnershipPolicy, error) {
	switch OwnershipPolicy(s) {
	case "", OwnershipStrict:
		return OwnershipStrict, nil
	case OwnershipOpen:
		return OwnershipOpen, nil
	default:
		return "", fmt.Errorf("unknown ownership policy %q", s)
	}
}

// Authorize checks whether p may modify a resource owned by ownerID.
func (o OwnershipPolicy) Authorize(p Principal, ownerID string) error {
	if p.UserID == "" {
		return ErrUnauthorized
	}
	if o == OwnershipOpen || p.UserID == ownerID {
		return nil
	}
	return ErrForbidden
}
