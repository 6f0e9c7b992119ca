package geo

import (
	"math"
	"testing"
)

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		lat, lon float64
		valid    bool
	}{
		{0, 0, true},
		{90, 180, true},
		{-90, -180, true},
		{91, 0, false},
		{0, 181, false},
		{-91, 0, false},
		{0, -181, false},
	}
	for _, tt := range tests {
		if got := ValidateCoordinates(tt.lat, tt.lon); got != tt.valid {
			t.Errorf("ValidateCoordinates(%f, %f) = %v, want %v", tt.lat, tt.lon, got, tt.valid)
		}
	}
}

func TestCircle_Validate(t *testing.T) {
	tests := []struct {
		name    string
		c       Circle
		wantErr bool
	}{
		{"ok", Circle{Center: Point{Lat: 10, Lng: 10}, RadiusMeters: 100}, false},
		{"bad lng", Circle{Center: Point{Lat: 10, Lng: 200}, RadiusMeters: 100}, true},
		{"negative radius", Circle{Center: Point{}, RadiusMeters: -1}, true},
		{"nan radius", Circle{Center: Point{}, RadiusMeters: math.NaN()}, true},
		{"inf radius", Circle{Center: Point{}, RadiusMeters: math.Inf(1)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
