package request

import (
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/menuboard/internal/domain"
	"github.com/kailas-cloud/menuboard/internal/domain/geo"
	"github.com/kailas-cloud/menuboard/internal/domain/restaurant"
	"github.com/kailas-cloud/menuboard/internal/domain/search/page"
)

func TestNew_Defaults(t *testing.T) {
	r, err := New(domain.Anonymous(), "  dosa ", "", page.New(0, 0, page.DefaultLimits()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Query() != "dosa" {
		t.Errorf("Query() = %q", r.Query())
	}
	if r.Type() != "" {
		t.Errorf("Type() = %q, want any", r.Type())
	}
	if r.Near() != nil {
		t.Error("Near() should be nil for listing")
	}
	if r.Page().Limit() != page.DefaultLimit {
		t.Errorf("Limit() = %d", r.Page().Limit())
	}
}

func TestNew_TypeFilter(t *testing.T) {
	r, err := New(domain.Anonymous(), "", "teashop", page.New(1, 10, page.DefaultLimits()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Type() != restaurant.TypeTeashop {
		t.Errorf("Type() = %q", r.Type())
	}
	if _, err := New(domain.Anonymous(), "", "bar", page.Page{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("unknown type err = %v", err)
	}
}

func TestNew_QueryTooLong(t *testing.T) {
	_, err := New(domain.Anonymous(), strings.Repeat("q", MaxQueryLength+1), "", page.Page{})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestNewNearby_Radius(t *testing.T) {
	center := geo.Point{Lat: 12.97, Lng: 77.59}
	bounds := Radius{Default: 5000, Max: 50000}
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"default", 0, 5000},
		{"explicit", 1200, 1200},
		{"capped", 80000, 50000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewNearby(domain.Anonymous(), center, tt.in, bounds, "", "", 200)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.Near() == nil || r.Near().RadiusMeters != tt.want {
				t.Errorf("radius = %v, want %v", r.Near(), tt.want)
			}
			if r.Page().Limit() != 200 {
				t.Errorf("Limit() = %d, want 200", r.Page().Limit())
			}
		})
	}
}

func TestNewNearby_InvalidCenter(t *testing.T) {
	_, err := NewNearby(domain.Anonymous(), geo.Point{Lat: 100, Lng: 0}, 0, Radius{}, "", "", 10)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}
