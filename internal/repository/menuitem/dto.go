package menuitem

import (
	"time"

	dommenu "github.com/kailas-cloud/menuboard/internal/domain/menuitem"
)

// menuItemDoc is the JSON document stored per menu item.
type menuItemDoc struct {
	ID           string  `json:"id"`
	RestaurantID string  `json:"restaurant_id"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	Category     string  `json:"category"`
	ImageURL     string  `json:"image_url,omitempty"`
	Available    bool    `json:"available"`
	CreatedBy    string  `json:"created_by"`
	CreatedAt    int64   `json:"created_at"` // unix millis
	UpdatedAt    int64   `json:"updated_at"` // unix millis
}

func toDoc(m *dommenu.MenuItem) menuItemDoc {
	return menuItemDoc{
		ID:           m.ID(),
		RestaurantID: m.RestaurantID(),
		Name:         m.Name(),
		Description:  m.Description(),
		Price:        m.Price(),
		Currency:     m.Currency(),
		Category:     m.Category(),
		ImageURL:     m.ImageURL(),
		Available:    m.IsAvailable(),
		CreatedBy:    m.CreatedBy(),
		CreatedAt:    m.CreatedAt().UnixMilli(),
		UpdatedAt:    m.UpdatedAt().UnixMilli(),
	}
}

func fromDoc(d *menuItemDoc) dommenu.MenuItem {
	return dommenu.Reconstruct(dommenu.Snapshot{
		ID:           d.ID,
		RestaurantID: d.RestaurantID,
		Name:         d.Name,
		Description:  d.Description,
		Price:        d.Price,
		Currency:     d.Currency,
		Category:     d.Category,
		ImageURL:     d.ImageURL,
		Available:    d.Available,
		CreatedBy:    d.CreatedBy,
		CreatedAt:    time.UnixMilli(d.CreatedAt).UTC(),
		UpdatedAt:    time.UnixMilli(d.UpdatedAt).UTC(),
	})
}
