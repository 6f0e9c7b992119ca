package restaurant

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/menuboard/internal/domain"
	"github.com/kailas-cloud/menuboard/internal/domain/geo"
	domrest "github.com/kailas-cloud/menuboard/internal/domain/restaurant"
	"github.com/kailas-cloud/menuboard/internal/domain/search/page"
	"github.com/kailas-cloud/menuboard/internal/domain/search/request"
	"github.com/kailas-cloud/menuboard/internal/logger"
)

// Defaults for discovery and duplicate detection.
const (
	DefaultDuplicateRadiusMeters = 100
	DefaultMaxNearbyResults      = 200
	DefaultMineLimit             = 1000
)

// ListQuery is a paginated listing request.
type ListQuery struct {
	Search string
	Type   string
	Page   int
	Limit  int
}

// NearbyQuery is a proximity request. A zero Distance takes the default radius.
type NearbyQuery struct {
	Lat      float64
	Lng      float64
	Distance float64
	Search   string
	Type     string
}

// Nearby is a restaurant with its distance from the query center.
type Nearby = domrest.Nearby

// Service handles restaurant CRUD and discovery.
type Service struct {
	repo            Repository
	menus           MenuCleaner
	policy          domain.OwnershipPolicy
	limits          page.Limits
	radius          request.Radius
	duplicateRadius float64
	maxNearby       int
	mineLimit       int
	now             func() time.Time
	newID           func() string
}

// New creates a restaurant service.
func New(repo Repository, menus MenuCleaner) *Service {
	return &Service{
		repo:            repo,
		menus:           menus,
		policy:          domain.OwnershipStrict,
		limits:          page.DefaultLimits(),
		radius:          request.Radius{Default: request.DefaultRadiusMeters, Max: request.MaxRadiusMeters},
		duplicateRadius: DefaultDuplicateRadiusMeters,
		maxNearby:       DefaultMaxNearbyResults,
		mineLimit:       DefaultMineLimit,
		now:             time.Now,
		newID:           uuid.NewString,
	}
}

// WithPolicy sets the ownership policy for updates and deletes.
func (s *Service) WithPolicy(p domain.OwnershipPolicy) *Service {
	if p != "" {
		s.policy = p
	}
	return s
}

// WithPagination configures page size limits.
func (s *Service) WithPagination(defaultPageSize, maxPageSize int) *Service {
	if defaultPageSize > 0 {
		s.limits.Default = defaultPageSize
	}
	if maxPageSize > 0 {
		s.limits.Max = maxPageSize
	}
	return s
}

// WithGeo configures nearby radius bounds, the duplicate radius and the result cap.
func (s *Service) WithGeo(defaultRadius, maxRadius, duplicateRadius float64, maxResults int) *Service {
	if defaultRadius > 0 {
		s.radius.Default = defaultRadius
	}
	if maxRadius > 0 {
		s.radius.Max = maxRadius
	}
	if duplicateRadius > 0 {
		s.duplicateRadius = duplicateRadius
	}
	if maxResults > 0 {
		s.maxNearby = maxResults
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

// Create validates and stores a restaurant owned by the principal.
func (s *Service) Create(ctx context.Context, p domain.Principal, params domrest.Params) (domrest.Restaurant, error) {
	if p.UserID == "" {
		return domrest.Restaurant{}, domain.ErrUnauthorized
	}
	rest, err := domrest.New(s.newID(), p.UserID, params, s.now().UTC())
	if err != nil {
		return domrest.Restaurant{}, err
	}
	if err := s.checkDuplicate(ctx, &rest); err != nil {
		return domrest.Restaurant{}, err
	}
	if err := s.repo.Create(ctx, &rest); err != nil {
		return domrest.Restaurant{}, fmt.Errorf("create restaurant: %w", err)
	}

	logger.FromContext(ctx).Info("Restaurant created",
		zap.String("restaurant_id", rest.ID()),
		zap.String("owner_id", p.UserID),
	)
	return rest, nil
}

// List returns one page of restaurants visible to the viewer, newest first.
func (s *Service) List(ctx context.Context, viewer domain.Viewer, q ListQuery) (page.Result[domrest.Restaurant], error) {
	pg := page.New(q.Page, q.Limit, s.limits)
	if !pg.InRange() {
		return page.Result[domrest.Restaurant]{}, domain.NewInputError("page",
			fmt.Sprintf("must not start past result %d", page.MaxOffset))
	}
	req, err := request.New(viewer, q.Search, q.Type, pg)
	if err != nil {
		return page.Result[domrest.Restaurant]{}, err
	}
	items, total, err := s.repo.Search(ctx, &req)
	if err != nil {
		return page.Result[domrest.Restaurant]{}, fmt.Errorf("list restaurants: %w", err)
	}
	return page.Result[domrest.Restaurant]{Items: items, Total: total, Page: pg}, nil
}

// Nearby returns visible restaurants within the radius, closest first.
func (s *Service) Nearby(ctx context.Context, viewer domain.Viewer, q NearbyQuery) ([]Nearby, error) {
	center := geo.Point{Lat: q.Lat, Lng: q.Lng}
	req, err := request.NewNearby(viewer, center, q.Distance, s.radius, q.Search, q.Type, s.maxNearby)
	if err != nil {
		return nil, err
	}
	found, err := s.repo.Nearby(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("nearby restaurants: %w", err)
	}
	return found, nil
}

// Get returns a restaurant. Private restaurants of other users are reported as missing.
func (s *Service) Get(ctx context.Context, viewer domain.Viewer, id string) (domrest.Restaurant, error) {
	rest, err := s.repo.Get(ctx, id)
	if err != nil {
		return domrest.Restaurant{}, fmt.Errorf("get restaurant: %w", err)
	}
	if !rest.VisibleTo(viewer) {
		return domrest.Restaurant{}, domain.ErrRestaurantNotFound
	}
	return rest, nil
}

// Mine returns the principal's restaurants, newest first.
func (s *Service) Mine(ctx context.Context, p domain.Principal) ([]domrest.Restaurant, error) {
	if p.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	items, err := s.repo.ListByOwner(ctx, p.UserID, s.mineLimit)
	if err != nil {
		return nil, fmt.Errorf("list own restaurants: %w", err)
	}
	return items, nil
}

// Update applies a partial update under the ownership policy.
func (s *Service) Update(
	ctx context.Context, p domain.Principal, id string, params domrest.PatchParams,
) (domrest.Restaurant, error) {
	current, err := s.writable(ctx, p, id)
	if err != nil {
		return domrest.Restaurant{}, err
	}
	patch, err := domrest.NewPatch(params)
	if err != nil {
		return domrest.Restaurant{}, err
	}
	next, err := current.Apply(patch, s.now().UTC())
	if err != nil {
		return domrest.Restaurant{}, err
	}
	if patch.ChangesIdentity() {
		if err := s.checkDuplicate(ctx, &next); err != nil {
			return domrest.Restaurant{}, err
		}
	}
	if err := s.repo.Update(ctx, &next); err != nil {
		return domrest.Restaurant{}, fmt.Errorf("update restaurant: %w", err)
	}
	return next, nil
}

// Delete removes a restaurant and its menu under the ownership policy.
func (s *Service) Delete(ctx context.Context, p domain.Principal, id string) error {
	if _, err := s.writable(ctx, p, id); err != nil {
		return err
	}
	n, err := s.menus.DeleteByRestaurant(ctx, id)
	if err != nil {
		return fmt.Errorf("delete menu of %s: %w", id, err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete restaurant: %w", err)
	}

	logger.FromContext(ctx).Info("Restaurant deleted",
		zap.String("restaurant_id", id),
		zap.Int("menu_items_deleted", n),
	)
	return nil
}

// writable loads a restaurant the principal may modify.
func (s *Service) writable(ctx context.Context, p domain.Principal, id string) (domrest.Restaurant, error) {
	if p.UserID == "" {
		return domrest.Restaurant{}, domain.ErrUnauthorized
	}
	rest, err := s.Get(ctx, domain.ViewerOf(p), id)
	if err != nil {
		return domrest.Restaurant{}, err
	}
	if err := s.policy.Authorize(p, rest.OwnerID()); err != nil {
		return domrest.Restaurant{}, err
	}
	return rest, nil
}

// checkDuplicate rejects a same-named restaurant within the duplicate radius,
// or anywhere when the restaurant has no location.
func (s *Service) checkDuplicate(ctx context.Context, rest *domrest.Restaurant) error {
	var near *geo.Circle
	if loc := rest.Location(); loc != nil {
		near = &geo.Circle{Center: *loc, RadiusMeters: s.duplicateRadius}
	}
	dup, err := s.repo.FindDuplicate(ctx, rest.Name(), near, rest.ID())
	if err != nil {
		return fmt.Errorf("check duplicate: %w", err)
	}
	if dup {
		return domain.ErrDuplicateRestaurant
	}
	return nil
}
