package request

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/menuboard/internal/domain"
	"github.com/kailas-cloud/menuboard/internal/domain/geo"
	"github.com/kailas-cloud/menuboard/internal/domain/restaurant"
	"github.com/kailas-cloud/menuboard/internal/domain/search/page"
)

// MaxQueryLength is the maximum allowed search text length.
const MaxQueryLength = 256

// Radius defaults in meters.
const (
	DefaultRadiusMeters = 5000
	MaxRadiusMeters     = 50000
)

// Radius bounds the nearby search area.
type Radius struct {
	Default float64
	Max     float64
}

// Request is a validated restaurant discovery query.
type Request struct {
	query     string
	placeType restaurant.Type
	page      page.Page
	near      *geo.Circle
	viewer    domain.Viewer
}

// New validates a listing query. An empty placeType matches every type.
func New(viewer domain.Viewer, query, placeType string, pg page.Page) (Request, error) {
	query = strings.TrimSpace(query)
	if len(query) > MaxQueryLength {
		return Request{}, domain.NewInputError("search", fmt.Sprintf("too long (max %d chars)", MaxQueryLength))
	}
	var t restaurant.Type
	if strings.TrimSpace(placeType) != "" {
		var err error
		if t, err = restaurant.ParseType(placeType); err != nil {
			return Request{}, err
		}
	}
	return Request{query: query, placeType: t, page: pg, viewer: viewer}, nil
}

// NewNearby validates a proximity query. A non-positive radius takes r.Default
// and anything above r.Max is capped.
func NewNearby(
	viewer domain.Viewer, center geo.Point, radiusMeters float64, r Radius,
	query, placeType string, maxResults int,
) (Request, error) {
	if err := center.Validate(); err != nil {
		return Request{}, domain.NewInputError("lat/lng", err.Error())
	}
	if r.Default <= 0 {
		r.Default = DefaultRadiusMeters
	}
	if r.Max <= 0 {
		r.Max = MaxRadiusMeters
	}
	if radiusMeters <= 0 {
		radiusMeters = r.Default
	}
	if radiusMeters > r.Max {
		radiusMeters = r.Max
	}
	req, err := New(viewer, query, placeType, page.New(1, maxResults, page.Limits{Default: maxResults, Max: maxResults}))
	if err != nil {
		return Request{}, err
	}
	req.near = &geo.Circle{Center: center, RadiusMeters: radiusMeters}
	return req, nil
}

// Query returns the trimmed search text, empty for no text filter.
func (r *Request) Query() string { return r.query }

// Type returns the place type filter, empty for any.
func (r *Request) Type() restaurant.Type { return r.placeType }

// Page returns the page window.
func (r *Request) Page() page.Page { return r.page }

// Near returns the proximity area, nil for plain listing.
func (r *Request) Near() *geo.Circle { return r.near }

// Viewer returns who is asking.
func (r *Request) Viewer() domain.Viewer { return r.viewer }
