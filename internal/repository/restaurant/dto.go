package restaurant

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/kailas-cloud/menuboard/internal/domain/geo"
	domrest "github.com/kailas-cloud/menuboard/internal/domain/restaurant"
)

// Visibility tag values.
const (
	visibilityPublic  = "public"
	visibilityPrivate = "private"
)

type locationDoc struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// restaurantDoc is the JSON document stored per restaurant.
// Geo holds "lng,lat" for the GEO index; NameKey is a digest of the
// normalized name for exact duplicate lookups.
type restaurantDoc struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	NameKey     string       `json:"name_key"`
	Description string       `json:"description,omitempty"`
	Address     string       `json:"address,omitempty"`
	Location    *locationDoc `json:"location,omitempty"`
	Geo         string       `json:"geo,omitempty"`
	Phone       string       `json:"phone,omitempty"`
	Website     string       `json:"website,omitempty"`
	Tags        []string     `json:"tags"`
	Visibility  string       `json:"visibility"`
	OwnerID     string       `json:"owner_id"`
	ImageURL    string       `json:"image_url,omitempty"`
	Type        string       `json:"type"`
	CreatedAt   int64        `json:"created_at"` // unix millis
	UpdatedAt   int64        `json:"updated_at"` // unix millis
}

func toDoc(r *domrest.Restaurant) restaurantDoc {
	d := restaurantDoc{
		ID:          r.ID(),
		Name:        r.Name(),
		NameKey:     nameKey(r.Name()),
		Description: r.Description(),
		Address:     r.Address(),
		Phone:       r.Phone(),
		Website:     r.Website(),
		Tags:        r.Tags(),
		Visibility:  visibilityPrivate,
		OwnerID:     r.OwnerID(),
		ImageURL:    r.ImageURL(),
		Type:        string(r.Type()),
		CreatedAt:   r.CreatedAt().UnixMilli(),
		UpdatedAt:   r.UpdatedAt().UnixMilli(),
	}
	if d.Tags == nil {
		d.Tags = []string{}
	}
	if r.IsPublic() {
		d.Visibility = visibilityPublic
	}
	if loc := r.Location(); loc != nil {
		d.Location = &locationDoc{Lat: loc.Lat, Lng: loc.Lng}
		d.Geo = geoValue(loc.Lng, loc.Lat)
	}
	return d
}

func fromDoc(d *restaurantDoc) domrest.Restaurant {
	s := domrest.Snapshot{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Address:     d.Address,
		Phone:       d.Phone,
		Website:     d.Website,
		Tags:        d.Tags,
		Public:      d.Visibility == visibilityPublic,
		OwnerID:     d.OwnerID,
		ImageURL:    d.ImageURL,
		Type:        domrest.Type(d.Type),
		CreatedAt:   time.UnixMilli(d.CreatedAt).UTC(),
		UpdatedAt:   time.UnixMilli(d.UpdatedAt).UTC(),
	}
	if d.Location != nil {
		s.Location = &geo.Point{Lat: d.Location.Lat, Lng: d.Location.Lng}
	}
	if len(s.Tags) == 0 {
		s.Tags = nil
	}
	return domrest.Reconstruct(s)
}

func geoValue(lng, lat float64) string {
	return strconv.FormatFloat(lng, 'f', -1, 64) + "," + strconv.FormatFloat(lat, 'f', -1, 64)
}

// nameKey returns a hex digest of the normalized name. A digest keeps the TAG
// value free of separators and query syntax.
func nameKey(name string) string {
	sum := sha256.Sum256([]byte(domrest.NormalizeName(name)))
	return hex.EncodeToString(sum[:16])
}
