package restaurant

import (
	"github.com/kailas-cloud/menuboard/internal/domain"
	"github.com/kailas-cloud/menuboard/internal/domain/geo"
)

// PatchParams holds the optional fields of a partial update.
// Nil fields are unchanged.
type PatchParams struct {
	Name        *string
	Description *string
	Address     *string
	Location    *geo.Point
	Phone       *string
	Website     *string
	Tags        *[]string
	Public      *bool
	ImageURL    *string
	Type        *Type
}

// Patch is a partial restaurant update.
type Patch struct {
	name        *string
	description *string
	address     *string
	location    *geo.Point
	phone       *string
	website     *string
	tags        *[]string
	public      *bool
	imageURL    *string
	kind        *Type
}

// NewPatch creates a Patch. At least one field must be provided.
func NewPatch(p PatchParams) (Patch, error) {
	if p.Name == nil && p.Description == nil && p.Address == nil && p.Location == nil &&
		p.Phone == nil && p.Website == nil && p.Tags == nil && p.Public == nil &&
		p.ImageURL == nil && p.Type == nil {
		return Patch{}, domain.NewInputError("", "at least one field must be provided")
	}
	return Patch{
		name: p.Name, description: p.Description, address: p.Address, location: p.Location,
		phone: p.Phone, website: p.Website, tags: p.Tags, public: p.Public,
		imageURL: p.ImageURL, kind: p.Type,
	}, nil
}

// ChangesIdentity reports whether the patch touches the name or location,
// which requires a fresh duplicate check.
func (p Patch) ChangesIdentity() bool { return p.name != nil || p.location != nil }
