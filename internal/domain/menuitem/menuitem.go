package menuitem

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/kailas-cloud/menuboard/internal/domain"
)

// Field limits and defaults.
const (
	DefaultCurrency      = "INR"
	MaxNameLength        = 200
	MaxDescriptionLength = 1000
	MaxCategoryLength    = 100
)

// Params are the client-supplied attributes of a new menu item.
type Params struct {
	RestaurantID string
	Name         string
	Description  string
	Price        float64
	Currency     string
	Category     string
	ImageURL     string
	Available    *bool // nil means available
}

// MenuItem is a priced entry on a restaurant's menu.
type MenuItem struct {
	id           string
	restaurantID string
	name         string
	description  string
	price        float64
	currency     string
	category     string
	imageURL     string
	available    bool
	createdBy    string
	createdAt    time.Time
	updatedAt    time.Time
}

// New validates and creates a MenuItem.
func New(id, createdBy string, p Params, now time.Time) (MenuItem, error) {
	if id == "" {
		return MenuItem{}, fmt.Errorf("menu item ID is required")
	}
	if createdBy == "" {
		return MenuItem{}, domain.ErrUnauthorized
	}
	if p.RestaurantID == "" {
		return MenuItem{}, domain.NewInputError("restaurant_id", "is required")
	}
	available := true
	if p.Available != nil {
		available = *p.Available
	}
	m := MenuItem{
		id:           id,
		restaurantID: p.RestaurantID,
		name:         strings.TrimSpace(p.Name),
		description:  strings.TrimSpace(p.Description),
		price:        p.Price,
		currency:     normalizeCurrency(p.Currency),
		category:     strings.TrimSpace(p.Category),
		imageURL:     strings.TrimSpace(p.ImageURL),
		available:    available,
		createdBy:    createdBy,
		createdAt:    now,
		updatedAt:    now,
	}
	if err := m.validate(); err != nil {
		return MenuItem{}, err
	}
	return m, nil
}

// Snapshot is the flat stored form of a menu item.
type Snapshot struct {
	ID           string
	RestaurantID string
	Name         string
	Description  string
	Price        float64
	Currency     string
	Category     string
	ImageURL     string
	Available    bool
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Reconstruct creates a MenuItem without validation (storage hydration).
func Reconstruct(s Snapshot) MenuItem {
	return MenuItem{
		id: s.ID, restaurantID: s.RestaurantID, name: s.Name, description: s.Description,
		price: s.Price, currency: normalizeCurrency(s.Currency), category: s.Category,
		imageURL: s.ImageURL, available: s.Available, createdBy: s.CreatedBy,
		createdAt: s.CreatedAt, updatedAt: s.UpdatedAt,
	}
}

// Snapshot returns the flat form of the menu item.
func (m *MenuItem) Snapshot() Snapshot {
	return Snapshot{
		ID: m.id, RestaurantID: m.restaurantID, Name: m.name, Description: m.description,
		Price: m.price, Currency: m.currency, Category: m.category, ImageURL: m.imageURL,
		Available: m.available, CreatedBy: m.createdBy, CreatedAt: m.createdAt, UpdatedAt: m.updatedAt,
	}
}

// ID returns the menu item identifier.
func (m *MenuItem) ID() string { return m.id }

// RestaurantID returns the owning restaurant id.
func (m *MenuItem) RestaurantID() string { return m.restaurantID }

// Name returns the dish name.
func (m *MenuItem) Name() string { return m.name }

// Description returns the dish description.
func (m *MenuItem) Description() string { return m.description }

// Price returns the non-negative price.
func (m *MenuItem) Price() float64 { return m.price }

// Currency returns the ISO currency code.
func (m *MenuItem) Currency() string { return m.currency }

// Category returns the menu section, possibly empty.
func (m *MenuItem) Category() string { return m.category }

// ImageURL returns the image URL.
func (m *MenuItem) ImageURL() string { return m.imageURL }

// IsAvailable reports whether the dish can currently be ordered.
func (m *MenuItem) IsAvailable() bool { return m.available }

// CreatedBy returns the id of the creating user.
func (m *MenuItem) CreatedBy() string { return m.createdBy }

// CreatedAt returns the creation time.
func (m *MenuItem) CreatedAt() time.Time { return m.createdAt }

// UpdatedAt returns the last modification time.
func (m *MenuItem) UpdatedAt() time.Time { return m.updatedAt }

// Apply returns a copy with the patch applied and validated.
func (m *MenuItem) Apply(p Patch, now time.Time) (MenuItem, error) {
	next := *m
	if p.name != nil {
		next.name = strings.TrimSpace(*p.name)
	}
	if p.description != nil {
		next.description = strings.TrimSpace(*p.description)
	}
	if p.price != nil {
		next.price = *p.price
	}
	if p.currency != nil {
		next.currency = normalizeCurrency(*p.currency)
	}
	if p.category != nil {
		next.category = strings.TrimSpace(*p.category)
	}
	if p.imageURL != nil {
		next.imageURL = strings.TrimSpace(*p.imageURL)
	}
	if p.available != nil {
		next.available = *p.available
	}
	if err := next.validate(); err != nil {
		return MenuItem{}, err
	}
	next.updatedAt = now
	return next, nil
}

func (m *MenuItem) validate() error {
	if m.name == "" {
		return domain.NewInputError("name", "is required")
	}
	if len(m.name) > MaxNameLength {
		return domain.NewInputError("name", fmt.Sprintf("too long (max %d)", MaxNameLength))
	}
	if len(m.description) > MaxDescriptionLength {
		return domain.NewInputError("description", fmt.Sprintf("too long (max %d)", MaxDescriptionLength))
	}
	if m.price < 0 || math.IsNaN(m.price) || math.IsInf(m.price, 0) {
		return domain.NewInputError("price", "must be a non-negative number")
	}
	if len(m.currency) != 3 {
		return domain.NewInputError("currency", "must be a 3-letter code")
	}
	if len(m.category) > MaxCategoryLength {
		return domain.NewInputError("category", fmt.Sprintf("too long (max %d)", MaxCategoryLength))
	}
	if strings.Contains(m.category, "|") {
		return domain.NewInputError("category", `must not contain "|"`)
	}
	return nil
}

func normalizeCurrency(c string) string {
	c = strings.ToUpper(strings.TrimSpace(c))
	if c == "" {
		return DefaultCurrency
	}
	return c
}
