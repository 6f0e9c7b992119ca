package restaurant

import (
	"context"

	"github.com/kailas-cloud/menuboard/internal/domain/geo"
	domrest "github.com/kailas-cloud/menuboard/internal/domain/restaurant"
	"github.com/kailas-cloud/menuboard/internal/domain/search/request"
)

// Repository defines the storage contract for restaurants.
type Repository interface {
	Create(ctx context.Context, r *domrest.Restaurant) error
	Get(ctx context.Context, id string) (domrest.Restaurant, error)
	Update(ctx context.Context, r *domrest.Restaurant) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, req *request.Request) ([]domrest.Restaurant, int, error)
	Nearby(ctx context.Context, req *request.Request) ([]domrest.Nearby, error)
	ListByOwner(ctx context.Context, ownerID string, limit int) ([]domrest.Restaurant, error)
	FindDuplicate(ctx context.Context, name string, near *geo.Circle, excludeID string) (bool, error)
}

// MenuCleaner removes the menu of a deleted restaurant.
type MenuCleaner interface {
	DeleteByRestaurant(ctx context.Context, restaurantID string) (int, error)
}
