package geo

import (
	"errors"
	"fmt"
	"math"
)

// Point is a WGS84 coordinate in degrees.
type Point struct {
	Lat float64
	Lng float64
}

// Validate checks that the point lies within valid latitude/longitude bounds.
func (p Point) Validate() error {
	if !ValidateCoordinates(p.Lat, p.Lng) {
		return fmt.Errorf("invalid coordinates: lat=%f lng=%f", p.Lat, p.Lng)
	}
	return nil
}

// Circle is a search area: every point within RadiusMeters of Center.
type Circle struct {
	Center       Point
	RadiusMeters float64
}

// Validate checks the center coordinates and that the radius is positive.
func (c Circle) Validate() error {
	if err := c.Center.Validate(); err != nil {
		return err
	}
	if c.RadiusMeters <= 0 || math.IsNaN(c.RadiusMeters) || math.IsInf(c.RadiusMeters, 0) {
		return errors.New("radius must be a positive number of meters")
	}
	return nil
}

// ValidateCoordinates checks that latitude is in [-90,90] and longitude in [-180,180].
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
