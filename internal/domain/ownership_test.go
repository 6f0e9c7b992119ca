package domain

import (
	"errors"
	"testing"
)

func TestParseOwnershipPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    OwnershipPolicy
		wantErr bool
	}{
		{"", OwnershipStrict, false},
		{"strict", OwnershipStrict, false},
		{"open", OwnershipOpen, false},
		{"loose", "", true},
	}
	for _, tt := range tests {
		got, err := ParseOwnershipPolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOwnershipPolicy(%q) err = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseOwnershipPolicy(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAuthorize(t *testing.T) {
	owner := Principal{UserID: "u1"}
	other := Principal{UserID: "u2"}

	tests := []struct {
		name   string
		policy OwnershipPolicy
		p      Principal
		want   error
	}{
		{"strict owner", OwnershipStrict, owner, nil},
		{"strict other", OwnershipStrict, other, ErrForbidden},
		{"strict anonymous", OwnershipStrict, Principal{}, ErrUnauthorized},
		{"open other", OwnershipOpen, other, nil},
		{"open anonymous", OwnershipOpen, Principal{}, ErrUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.policy.Authorize(tt.p, "u1")
			if !errors.Is(err, tt.want) && err != tt.want {
				t.Errorf("Authorize = %v, want %v", err, tt.want)
			}
		})
	}
}
