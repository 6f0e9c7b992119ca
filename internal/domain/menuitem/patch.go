package menuitem

import "github.com/kailas-cloud/menuboard/internal/domain"

// PatchParams holds the optional fields of a partial update.
// Nil fields are unchanged. The owning restaurant cannot be changed.
type PatchParams struct {
	Name        *string
	Description *string
	Price       *float64
	Currency    *string
	Category    *string
	ImageURL    *string
	Available   *bool
}

// Patch is a partial menu item update.
type Patch struct {
	name        *string
	description *string
	price       *float64
	currency    *string
	category    *string
	imageURL    *string
	available   *bool
}

// NewPatch creates a Patch. At least one field must be provided.
func NewPatch(p PatchParams) (Patch, error) {
	if p.Name == nil && p.Description == nil && p.Price == nil && p.Currency == nil &&
		p.Category == nil && p.ImageURL == nil && p.Available == nil {
		return Patch{}, domain.NewInputError("", "at least one field must be provided")
	}
	return Patch{
		name: p.Name, description: p.Description, price: p.Price, currency: p.Currency,
		category: p.Category, imageURL: p.ImageURL, available: p.Available,
	}, nil
}
