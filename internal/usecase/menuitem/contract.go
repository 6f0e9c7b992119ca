package menuitem

import (
	"context"

	dommenu "github.com/kailas-cloud/menuboard/internal/domain/menuitem"
	domrest "github.com/kailas-cloud/menuboard/internal/domain/restaurant"
)

// Repository defines the storage contract for menu items.
type Repository interface {
	Create(ctx context.Context, m *dommenu.MenuItem) error
	Get(ctx context.Context, id string) (dommenu.MenuItem, error)
	Update(ctx context.Context, m *dommenu.MenuItem) error
	Delete(ctx context.Context, id string) error
	ListByRestaurant(ctx context.Context, restaurantID string, f dommenu.ListFilter) ([]dommenu.MenuItem, error)
	Categories(ctx context.Context, restaurantID string) ([]string, error)
}

// RestaurantReader loads the restaurant owning a menu.
type RestaurantReader interface {
	Get(ctx context.Context, id string) (domrest.Restaurant, error)
}
