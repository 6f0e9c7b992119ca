package menuitem

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kailas-cloud/menuboard/internal/domain"
	dommenu "github.com/kailas-cloud/menuboard/internal/domain/menuitem"
	domrest "github.com/kailas-cloud/menuboard/internal/domain/restaurant"
)

// DefaultMaxItems bounds a single menu listing.
const DefaultMaxItems = 1000

// MaxSearchLength is the longest accepted menu search text.
const MaxSearchLength = 256

// Service handles menu item CRUD. Access follows the owning restaurant:
// visibility for reads, the ownership policy for writes.
type Service struct {
	repo        Repository
	restaurants RestaurantReader
	policy      domain.OwnershipPolicy
	maxItems    int
	now         func() time.Time
	newID       func() string
}

// New creates a menu item service.
func New(repo Repository, restaurants RestaurantReader) *Service {
	return &Service{
		repo:        repo,
		restaurants: restaurants,
		policy:      domain.OwnershipStrict,
		maxItems:    DefaultMaxItems,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// WithPolicy sets the ownership policy for writes.
func (s *Service) WithPolicy(p domain.OwnershipPolicy) *Service {
	if p != "" {
		s.policy = p
	}
	return s
}

// WithMaxItems bounds menu listings.
func (s *Service) WithMaxItems(n int) *Service {
	if n > 0 {
		s.maxItems = n
	}
	return s
}

// WithClock overrides the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithIDGenerator overrides id generation.
func (s *Service) WithIDGenerator(gen func() string) *Service {
	s.newID = gen
	return s
}

// Create adds an item to a restaurant the principal may modify.
func (s *Service) Create(ctx context.Context, p domain.Principal, params dommenu.Params) (dommenu.MenuItem, error) {
	if p.UserID == "" {
		return dommenu.MenuItem{}, domain.ErrUnauthorized
	}
	if params.RestaurantID == "" {
		return dommenu.MenuItem{}, domain.NewInputError("restaurant_id", "is required")
	}
	if _, err := s.writableRestaurant(ctx, p, params.RestaurantID); err != nil {
		return dommenu.MenuItem{}, err
	}
	item, err := dommenu.New(s.newID(), p.UserID, params, s.now().UTC())
	if err != nil {
		return dommenu.MenuItem{}, err
	}
	if err := s.repo.Create(ctx, &item); err != nil {
		return dommenu.MenuItem{}, fmt.Errorf("create menu item: %w", err)
	}
	return item, nil
}

// ListByRestaurant returns the menu sorted by category, then name.
func (s *Service) ListByRestaurant(
	ctx context.Context, viewer domain.Viewer, restaurantID, category, search string,
) ([]dommenu.MenuItem, error) {
	search = strings.TrimSpace(search)
	if len(search) > MaxSearchLength {
		return nil, domain.NewInputError("search", fmt.Sprintf("too long (max %d chars)", MaxSearchLength))
	}
	if _, err := s.visibleRestaurant(ctx, viewer, restaurantID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListByRestaurant(ctx, restaurantID, dommenu.ListFilter{
		Category: strings.TrimSpace(category),
		Search:   search,
		Limit:    s.maxItems,
	})
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	slices.SortStableFunc(items, func(a, b dommenu.MenuItem) int {
		return cmp.Or(
			cmp.Compare(a.Category(), b.Category()),
			cmp.Compare(a.Name(), b.Name()),
		)
	})
	return items, nil
}

// Categories returns the distinct non-empty categories of a menu, sorted.
func (s *Service) Categories(ctx context.Context, viewer domain.Viewer, restaurantID string) ([]string, error) {
	if _, err := s.visibleRestaurant(ctx, viewer, restaurantID); err != nil {
		return nil, err
	}
	values, err := s.repo.Categories(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("menu categories: %w", err)
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

// Get returns an item of a restaurant visible to the viewer.
func (s *Service) Get(ctx context.Context, viewer domain.Viewer, id string) (dommenu.MenuItem, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return dommenu.MenuItem{}, fmt.Errorf("get menu item: %w", err)
	}
	if _, err := s.visibleRestaurant(ctx, viewer, item.RestaurantID()); err != nil {
		if errors.Is(err, domain.ErrRestaurantNotFound) {
			return dommenu.MenuItem{}, domain.ErrMenuItemNotFound
		}
		return dommenu.MenuItem{}, err
	}
	return item, nil
}

// Update applies a partial update under the owning restaurant's policy.
func (s *Service) Update(ctx context.Context, p domain.Principal, id string, params dommenu.PatchParams) (dommenu.MenuItem, error) {
	current, err := s.writableItem(ctx, p, id)
	if err != nil {
		return dommenu.MenuItem{}, err
	}
	patch, err := dommenu.NewPatch(params)
	if err != nil {
		return dommenu.MenuItem{}, err
	}
	next, err := current.Apply(patch, s.now().UTC())
	if err != nil {
		return dommenu.MenuItem{}, err
	}
	if err := s.repo.Update(ctx, &next); err != nil {
		return dommenu.MenuItem{}, fmt.Errorf("update menu item: %w", err)
	}
	return next, nil
}

// Delete removes an item under the owning restaurant's policy.
func (s *Service) Delete(ctx context.Context, p domain.Principal, id string) error {
	if _, err := s.writableItem(ctx, p, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	return nil
}

func (s *Service) writableItem(ctx context.Context, p domain.Principal, id string) (dommenu.MenuItem, error) {
	if p.UserID == "" {
		return dommenu.MenuItem{}, domain.ErrUnauthorized
	}
	item, err := s.Get(ctx, domain.ViewerOf(p), id)
	if err != nil {
		return dommenu.MenuItem{}, err
	}
	if _, err := s.writableRestaurant(ctx, p, item.RestaurantID()); err != nil {
		return dommenu.MenuItem{}, err
	}
	return item, nil
}

func (s *Service) writableRestaurant(ctx context.Context, p domain.Principal, id string) (domrest.Restaurant, error) {
	rest, err := s.visibleRestaurant(ctx, domain.ViewerOf(p), id)
	if err != nil {
		return domrest.Restaurant{}, err
	}
	if err := s.policy.Authorize(p, rest.OwnerID()); err != nil {
		return domrest.Restaurant{}, err
	}
	return rest, nil
}

func (s *Service) visibleRestaurant(ctx context.Context, viewer domain.Viewer, id string) (domrest.Restaurant, error) {
	rest, err := s.restaurants.Get(ctx, id)
	if err != nil {
		return domrest.Restaurant{}, fmt.Errorf("get restaurant: %w", err)
	}
	if !rest.VisibleTo(viewer) {
		return domrest.Restaurant{}, domain.ErrRestaurantNotFound
	}
	return rest, nil
}
