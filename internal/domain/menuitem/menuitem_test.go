package menuitem

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/kailas-cloud/menuboard/internal/domain"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func TestNew_Defaults(t *testing.T) {
	m, err := New("m1", "u1", Params{RestaurantID: "r1", Name: " Masala Dosa ", Price: 80}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Name() != "Masala Dosa" {
		t.Errorf("Name() = %q", m.Name())
	}
	if m.Currency() != DefaultCurrency {
		t.Errorf("Currency() = %q, want %q", m.Currency(), DefaultCurrency)
	}
	if !m.IsAvailable() {
		t.Error("IsAvailable() = false, want true (default)")
	}
	if m.RestaurantID() != "r1" || m.CreatedBy() != "u1" {
		t.Errorf("unexpected refs: %+v", m.Snapshot())
	}
}

func TestNew_ZeroPriceAllowed(t *testing.T) {
	m, err := New("m1", "u1", Params{RestaurantID: "r1", Name: "Water", Price: 0, Currency: "usd"}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Currency() != "USD" {
		t.Errorf("Currency() = %q", m.Currency())
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name string
		p    Params
	}{
		{"no restaurant", Params{Name: "x"}},
		{"blank name", Params{RestaurantID: "r1", Name: " "}},
		{"negative price", Params{RestaurantID: "r1", Name: "x", Price: -1}},
		{"nan price", Params{RestaurantID: "r1", Name: "x", Price: math.NaN()}},
		{"bad currency", Params{RestaurantID: "r1", Name: "x", Currency: "RUPEE"}},
		{"pipe in category", Params{RestaurantID: "r1", Name: "x", Category: "Rice|Curry"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("m1", "u1", tt.p, now)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestApply(t *testing.T) {
	m, _ := New("m1", "u1", Params{RestaurantID: "r1", Name: "Idli", Price: 40}, now)
	p, err := NewPatch(PatchParams{Price: ptr(45.0), Available: ptr(false), Category: ptr(" Breakfast ")})
	if err != nil {
		t.Fatalf("NewPatch: %v", err)
	}
	got, err := m.Apply(p, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got.Price() != 45 || got.IsAvailable() || got.Category() != "Breakfast" {
		t.Errorf("unexpected result: %+v", got.Snapshot())
	}
	if m.Price() != 40 {
		t.Error("Apply mutated the receiver")
	}
}

func TestApply_NegativePrice(t *testing.T) {
	m, _ := New("m1", "u1", Params{RestaurantID: "r1", Name: "Idli", Price: 40}, now)
	p, _ := NewPatch(PatchParams{Price: ptr(-5.0)})
	if _, err := m.Apply(p, now); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestNewPatch_Empty(t *testing.T) {
	if _, err := NewPatch(PatchParams{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}
