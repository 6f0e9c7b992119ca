package restaurant

import (
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/menuboard/internal/domain"
	"github.com/kailas-cloud/menuboard/internal/domain/geo"
)

// Field limits.
const (
	MaxNameLength        = 200
	MaxDescriptionLength = 2000
	MaxAddressLength     = 500
	MaxTags              = 20
	MaxTagLength         = 50
)

// Type is the kind of place.
type Type string

// Place types.
const (
	TypeRestaurant Type = "restaurant"
	TypeCafe       Type = "cafe"
	TypeTeashop    Type = "teashop"
	TypeOther      Type = "other"
)

// IsValid checks if the type is one of the supported values.
func (t Type) IsValid() bool {
	return t == TypeRestaurant || t == TypeCafe || t == TypeTeashop || t == TypeOther
}

// ParseType parses a place type. Empty input yields TypeRestaurant.
func ParseType(s string) (Type, error) {
	if s == "" {
		return TypeRestaurant, nil
	}
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", domain.NewInputError("type", fmt.Sprintf("unknown type %q", s))
	}
	return t, nil
}

// Params are the client-supplied attributes of a new restaurant.
type Params struct {
	Name        string
	Description string
	Address     string
	Location    *geo.Point
	Phone       string
	Website     string
	Tags        []string
	Public      *bool // nil means public
	ImageURL    string
	Type        Type
}

// Restaurant is the restaurant aggregate.
type Restaurant struct {
	id          string
	name        string
	description string
	address     string
	location    *geo.Point
	phone       string
	website     string
	tags        []string
	public      bool
	ownerID     string
	imageURL    string
	kind        Type
	createdAt   time.Time
	updatedAt   time.Time
}

// New validates and creates a Restaurant owned by ownerID.
func New(id, ownerID string, p Params, now time.Time) (Restaurant, error) {
	if id == "" {
		return Restaurant{}, fmt.Errorf("restaurant ID is required")
	}
	if ownerID == "" {
		return Restaurant{}, domain.ErrUnauthorized
	}
	kind := p.Type
	if kind == "" {
		kind = TypeRestaurant
	}
	public := true
	if p.Public != nil {
		public = *p.Public
	}
	r := Restaurant{
		id:          id,
		name:        strings.TrimSpace(p.Name),
		description: strings.TrimSpace(p.Description),
		address:     strings.TrimSpace(p.Address),
		location:    clonePoint(p.Location),
		phone:       strings.TrimSpace(p.Phone),
		website:     strings.TrimSpace(p.Website),
		tags:        normalizeTags(p.Tags),
		public:      public,
		ownerID:     ownerID,
		imageURL:    strings.TrimSpace(p.ImageURL),
		kind:        kind,
		createdAt:   now,
		updatedAt:   now,
	}
	if err := r.validate(); err != nil {
		return Restaurant{}, err
	}
	return r, nil
}

// Snapshot is the flat stored form of a restaurant.
type Snapshot struct {
	ID          string
	Name        string
	Description string
	Address     string
	Location    *geo.Point
	Phone       string
	Website     string
	Tags        []string
	Public      bool
	OwnerID     string
	ImageURL    string
	Type        Type
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Reconstruct creates a Restaurant without validation (storage hydration).
func Reconstruct(s Snapshot) Restaurant {
	kind := s.Type
	if kind == "" {
		kind = TypeRestaurant
	}
	return Restaurant{
		id: s.ID, name: s.Name, description: s.Description, address: s.Address,
		location: s.Location, phone: s.Phone, website: s.Website, tags: s.Tags,
		public: s.Public, ownerID: s.OwnerID, imageURL: s.ImageURL, kind: kind,
		createdAt: s.CreatedAt, updatedAt: s.UpdatedAt,
	}
}

// Snapshot returns the flat form of the restaurant.
func (r *Restaurant) Snapshot() Snapshot {
	return Snapshot{
		ID: r.id, Name: r.name, Description: r.description, Address: r.address,
		Location: clonePoint(r.location), Phone: r.phone, Website: r.website,
		Tags: append([]string(nil), r.tags...), Public: r.public, OwnerID: r.ownerID,
		ImageURL: r.imageURL, Type: r.kind, CreatedAt: r.createdAt, UpdatedAt: r.updatedAt,
	}
}

// ID returns the restaurant identifier.
func (r *Restaurant) ID() string { return r.id }

// Name returns the display name.
func (r *Restaurant) Name() string { return r.name }

// NormalizedName returns the case-folded name used for duplicate detection.
func (r *Restaurant) NormalizedName() string { return NormalizeName(r.name) }

// Description returns the free-text description.
func (r *Restaurant) Description() string { return r.description }

// Address returns the street address.
func (r *Restaurant) Address() string { return r.address }

// Location returns the coordinates, nil when unknown.
func (r *Restaurant) Location() *geo.Point { return r.location }

// Phone returns the contact phone.
func (r *Restaurant) Phone() string { return r.phone }

// Website returns the website URL.
func (r *Restaurant) Website() string { return r.website }

// Tags returns the labels.
func (r *Restaurant) Tags() []string { return r.tags }

// IsPublic reports whether anonymous viewers may see the restaurant.
func (r *Restaurant) IsPublic() bool { return r.public }

// OwnerID returns the id of the creating user.
func (r *Restaurant) OwnerID() string { return r.ownerID }

// ImageURL returns the image URL.
func (r *Restaurant) ImageURL() string { return r.imageURL }

// Type returns the place type.
func (r *Restaurant) Type() Type { return r.kind }

// CreatedAt returns the creation time.
func (r *Restaurant) CreatedAt() time.Time { return r.createdAt }

// UpdatedAt returns the last modification time.
func (r *Restaurant) UpdatedAt() time.Time { return r.updatedAt }

// IsOwnedBy reports whether userID created the restaurant.
func (r *Restaurant) IsOwnedBy(userID string) bool {
	return userID != "" && r.ownerID == userID
}

// VisibleTo reports whether a viewer may read the restaurant.
// Private restaurants are visible only to their owner.
func (r *Restaurant) VisibleTo(v domain.Viewer) bool {
	return r.public || r.IsOwnedBy(v.UserID())
}

// Apply returns a copy with the patch applied and validated.
func (r *Restaurant) Apply(p Patch, now time.Time) (Restaurant, error) {
	next := *r
	next.tags = append([]string(nil), r.tags...)
	if p.name != nil {
		next.name = strings.TrimSpace(*p.name)
	}
	if p.description != nil {
		next.description = strings.TrimSpace(*p.description)
	}
	if p.address != nil {
		next.address = strings.TrimSpace(*p.address)
	}
	if p.location != nil {
		next.location = clonePoint(p.location)
	}
	if p.phone != nil {
		next.phone = strings.TrimSpace(*p.phone)
	}
	if p.website != nil {
		next.website = strings.TrimSpace(*p.website)
	}
	if p.tags != nil {
		next.tags = normalizeTags(*p.tags)
	}
	if p.public != nil {
		next.public = *p.public
	}
	if p.imageURL != nil {
		next.imageURL = strings.TrimSpace(*p.imageURL)
	}
	if p.kind != nil {
		next.kind = *p.kind
	}
	if err := next.validate(); err != nil {
		return Restaurant{}, err
	}
	next.updatedAt = now
	return next, nil
}

func (r *Restaurant) validate() error {
	if r.name == "" {
		return domain.NewInputError("name", "is required")
	}
	if len(r.name) > MaxNameLength {
		return domain.NewInputError("name", fmt.Sprintf("too long (max %d)", MaxNameLength))
	}
	if len(r.description) > MaxDescriptionLength {
		return domain.NewInputError("description", fmt.Sprintf("too long (max %d)", MaxDescriptionLength))
	}
	if len(r.address) > MaxAddressLength {
		return domain.NewInputError("address", fmt.Sprintf("too long (max %d)", MaxAddressLength))
	}
	if r.location != nil {
		if err := r.location.Validate(); err != nil {
			return domain.NewInputError("location", err.Error())
		}
	}
	if len(r.tags) > MaxTags {
		return domain.NewInputError("tags", fmt.Sprintf("too many tags (max %d)", MaxTags))
	}
	for _, t := range r.tags {
		if len(t) > MaxTagLength {
			return domain.NewInputError("tags", fmt.Sprintf("tag %q too long (max %d)", t, MaxTagLength))
		}
	}
	if !r.kind.IsValid() {
		return domain.NewInputError("type", fmt.Sprintf("unknown type %q", r.kind))
	}
	return nil
}

// NormalizeName trims and lower-cases a name for comparison.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func normalizeTags(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func clonePoint(p *geo.Point) *geo.Point {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// Nearby is a restaurant with its distance from a search center.
type Nearby struct {
	Restaurant     Restaurant
	DistanceMeters float64
}
