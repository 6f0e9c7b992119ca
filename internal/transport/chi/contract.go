package chi

import (
	"context"

	"github.com/kailas-cloud/menuboard/internal/domain"
	dommenu "github.com/kailas-cloud/menuboard/internal/domain/menuitem"
	domrest "github.com/kailas-cloud/menuboard/internal/domain/restaurant"
	"github.com/kailas-cloud/menuboard/internal/domain/search/page"
	domuser "github.com/kailas-cloud/menuboard/internal/domain/user"
	authuc "github.com/kailas-cloud/menuboard/internal/usecase/auth"
	healthuc "github.com/kailas-cloud/menuboard/internal/usecase/health"
	restaurantuc "github.com/kailas-cloud/menuboard/internal/usecase/restaurant"
)

// Authenticator resolves a bearer token into a principal.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.Principal, error)
}

// AuthService handles registration, login and profile lookups.
type AuthService interface {
	Authenticator
	Register(ctx context.Context, email, password, name string) (authuc.Session, error)
	Login(ctx context.Context, email, password string) (authuc.Session, error)
	Profile(ctx context.Context, p domain.Principal) (domuser.User, error)
}

// RestaurantService handles restaurant discovery and management.
type RestaurantService interface {
	Create(ctx context.Context, p domain.Principal, params domrest.Params) (domrest.Restaurant, error)
	List(ctx context.Context, viewer domain.Viewer, q restaurantuc.ListQuery) (page.Result[domrest.Restaurant], error)
	Nearby(ctx context.Context, viewer domain.Viewer, q restaurantuc.NearbyQuery) ([]restaurantuc.Nearby, error)
	Get(ctx context.Context, viewer domain.Viewer, id string) (domrest.Restaurant, error)
	Mine(ctx context.Context, p domain.Principal) ([]domrest.Restaurant, error)
	Update(ctx context.Context, p domain.Principal, id string, params domrest.PatchParams) (domrest.Restaurant, error)
	Delete(ctx context.Context, p domain.Principal, id string) error
}

// MenuService handles menu items.
type MenuService interface {
	Create(ctx context.Context, p domain.Principal, params dommenu.Params) (dommenu.MenuItem, error)
	ListByRestaurant(ctx context.Context, viewer domain.Viewer, restaurantID, category, search string) ([]dommenu.MenuItem, error)
	Categories(ctx context.Context, viewer domain.Viewer, restaurantID string) ([]string, error)
	Get(ctx context.Context, viewer domain.Viewer, id string) (dommenu.MenuItem, error)
	Update(ctx context.Context, p domain.Principal, id string, params dommenu.PatchParams) (dommenu.MenuItem, error)
	Delete(ctx context.Context, p domain.Principal, id string) error
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}
