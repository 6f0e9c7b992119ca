package menuboard

import "time"

// User is a registered account.
type User struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// Location is a WGS84 coordinate in degrees.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place types.
const (
	TypeRestaurant = "restaurant"
	TypeCafe       = "cafe"
	TypeTeashop    = "teashop"
	TypeOther      = "other"
)

// Restaurant is a listed place.
type Restaurant struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	Location    *Location `json:"location"`
	Phone       string    `json:"phone"`
	Website     string    `json:"website"`
	Tags        []string  `json:"tags"`
	IsPublic    bool      `json:"is_public"`
	CreatedBy   string    `json:"created_by"`
	ImageURL    string    `json:"image_url"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	// DistanceMeters is set by Nearby only.
	DistanceMeters *float64 `json:"distance_m,omitempty"`
}

// RestaurantPage is one page of a restaurant listing.
type RestaurantPage struct {
	Items []Restaurant `json:"items"`
	Total int          `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
	Pages int          `json:"pages"`
}

// ListParams filter and paginate a restaurant listing. Zero values use server defaults.
type ListParams struct {
	Search string
	Type   string
	Page   int
	Limit  int
}

// NearbyParams describe a proximity search. Distance is in meters, zero uses the server default.
type NearbyParams struct {
	Lat      float64
	Lng      float64
	Distance float64
	Search   string
	Type     string
}

// CreateRestaurantInput is the body of a new restaurant. IsPublic nil means public.
type CreateRestaurantInput struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Address     string    `json:"address,omitempty"`
	Location    *Location `json:"location,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Website     string    `json:"website,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	IsPublic    *bool     `json:"is_public,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Type        string    `json:"type,omitempty"`
}

// UpdateRestaurantInput is a partial update. Nil fields are left unchanged.
type UpdateRestaurantInput struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Address     *string   `json:"address,omitempty"`
	Location    *Location `json:"location,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	Website     *string   `json:"website,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	IsPublic    *bool     `json:"is_public,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
	Type        *string   `json:"type,omitempty"`
}

// MenuItem is a priced dish on a restaurant's menu.
type MenuItem struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	Currency     string    `json:"currency"`
	Category     string    `json:"category"`
	ImageURL     string    `json:"image_url"`
	Available    bool      `json:"available"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MenuFilter narrows a menu listing.
type MenuFilter struct {
	Category string
	Search   string
}

// CreateMenuItemInput is the body of a new menu item. Available nil means available.
type CreateMenuItemInput struct {
	RestaurantID string  `json:"restaurant_id"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency,omitempty"`
	Category     string  `json:"category,omitempty"`
	ImageURL     string  `json:"image_url,omitempty"`
	Available    *bool   `json:"available,omitempty"`
}

// UpdateMenuItemInput is a partial update. Nil fields are left unchanged.
type UpdateMenuItemInput struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Currency    *string  `json:"currency,omitempty"`
	Category    *string  `json:"category,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
	Available   *bool    `json:"available,omitempty"`
}

// Ptr returns a pointer to v, handy for partial updates.
func Ptr[T any](v T) *T { return &v }
