package restaurant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/kailas-cloud/menuboard/internal/db"
	"github.com/kailas-cloud/menuboard/internal/domain"
	"github.com/kailas-cloud/menuboard/internal/domain/geo"
	domrest "github.com/kailas-cloud/menuboard/internal/domain/restaurant"
	"github.com/kailas-cloud/menuboard/internal/domain/search/filter"
	"github.com/kailas-cloud/menuboard/internal/domain/search/request"
)

// store is the consumer interface for restaurants (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONSetNX(ctx context.Context, key string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Del(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	Search(ctx context.Context, q *db.Query) (*db.SearchResult, error)
	SearchNear(ctx context.Context, q *db.NearQuery) ([]db.NearEntry, error)
}

// Repo implements usecase/restaurant.Repository.
type Repo struct {
	store  store
	prefix string
}

// New creates a restaurant repository. keyPrefix namespaces all keys (e.g. "menuboard:").
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, prefix: keyPrefix}
}

// EnsureIndex creates the search index when it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, r.IndexName())
	if err != nil {
		return fmt.Errorf("check index %s: %w", r.IndexName(), err)
	}
	if exists {
		return nil
	}
	def, err := buildIndex(r.IndexName(), r.docPrefix())
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}
	if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create index %s: %w", def.Name, err)
	}
	return nil
}

// Create stores a new restaurant. Fails with ErrAlreadyExists on id collision.
func (r *Repo) Create(ctx context.Context, rest *domrest.Restaurant) error {
	data, err := json.Marshal(toDoc(rest))
	if err != nil {
		return fmt.Errorf("marshal restaurant: %w", err)
	}
	key := r.docKey(rest.ID())
	if err := r.store.JSONSetNX(ctx, key, data); err != nil {
		if errors.Is(err, db.ErrKeyExists) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("json.set nx %s: %w", key, err)
	}
	return nil
}

// Get returns a restaurant by id.
func (r *Repo) Get(ctx context.Context, id string) (domrest.Restaurant, error) {
	key := r.docKey(id)
	raw, err := r.store.JSONGet(ctx, key, "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domrest.Restaurant{}, domain.ErrRestaurantNotFound
		}
		return domrest.Restaurant{}, fmt.Errorf("json.get %s: %w", key, err)
	}

	var docs []restaurantDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return domrest.Restaurant{}, fmt.Errorf("unmarshal restaurant %s: %w", id, err)
	}
	if len(docs) == 0 {
		return domrest.Restaurant{}, domain.ErrRestaurantNotFound
	}
	return fromDoc(&docs[0]), nil
}

// Update overwrites an existing restaurant document.
func (r *Repo) Update(ctx context.Context, rest *domrest.Restaurant) error {
	key := r.docKey(rest.ID())
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrRestaurantNotFound
	}
	data, err := json.Marshal(toDoc(rest))
	if err != nil {
		return fmt.Errorf("marshal restaurant: %w", err)
	}
	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return fmt.Errorf("json.set %s: %w", key, err)
	}
	return nil
}

// Delete removes a restaurant document.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := r.docKey(id)
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// Search runs a discovery listing sorted by creation time, newest first.
func (r *Repo) Search(ctx context.Context, req *request.Request) ([]domrest.Restaurant, int, error) {
	expr, err := discoveryFilter(req)
	if err != nil {
		return nil, 0, err
	}
	q := &db.Query{
		IndexName:    r.IndexName(),
		Text:         req.Query(),
		TextFields:   textFields,
		Filters:      expr,
		Offset:       req.Page().Skip(),
		Limit:        req.Page().Limit(),
		SortBy:       fieldCreatedAt,
		SortDesc:     true,
		ReturnFields: []string{"$"},
	}
	return r.search(ctx, q)
}

// Nearby returns visible restaurants inside the request circle, closest
// first, with distances computed by the store.
func (r *Repo) Nearby(ctx context.Context, req *request.Request) ([]domrest.Nearby, error) {
	c := req.Near()
	if c == nil {
		return nil, domain.NewInputError("location", "search center is required")
	}
	expr, err := discoveryFilter(req)
	if err != nil {
		return nil, err
	}
	hits, err := r.store.SearchNear(ctx, &db.NearQuery{
		IndexName:  r.IndexName(),
		Text:       req.Query(),
		TextFields: textFields,
		Filters:    expr,
		GeoField:   fieldLocation,
		Center:     c.Center,
		Limit:      req.Page().Limit(),
	})
	if err != nil {
		return nil, fmt.Errorf("search nearby restaurants: %w", err)
	}

	out := make([]domrest.Nearby, 0, len(hits))
	for _, h := range hits {
		var d restaurantDoc
		if err := json.Unmarshal([]byte(h.Document), &d); err != nil {
			return nil, fmt.Errorf("unmarshal nearby restaurant: %w", err)
		}
		out = append(out, domrest.Nearby{Restaurant: fromDoc(&d), DistanceMeters: h.DistanceMeters})
	}
	return out, nil
}

// ListByOwner returns restaurants created by ownerID, newest first.
func (r *Repo) ListByOwner(ctx context.Context, ownerID string, limit int) ([]domrest.Restaurant, error) {
	owner, err := filter.NewMatch(fieldOwner, ownerID)
	if err != nil {
		return nil, fmt.Errorf("owner filter: %w", err)
	}
	expr, err := filter.NewExpression([]filter.Condition{owner}, nil, nil)
	if err != nil {
		return nil, err
	}
	items, _, err := r.search(ctx, &db.Query{
		IndexName:    r.IndexName(),
		Filters:      expr,
		SortBy:       fieldCreatedAt,
		SortDesc:     true,
		Limit:        limit,
		ReturnFields: []string{"$"},
	})
	return items, err
}

// FindDuplicate reports whether another restaurant has the same normalized
// name. With near set, only restaurants inside the circle count.
func (r *Repo) FindDuplicate(ctx context.Context, name string, near *geo.Circle, excludeID string) (bool, error) {
	byName, err := filter.NewMatch(fieldNameKey, nameKey(name))
	if err != nil {
		return false, fmt.Errorf("name filter: %w", err)
	}
	must := []filter.Condition{byName}
	if near != nil {
		radius, err := filter.NewRadius(fieldLocation, *near)
		if err != nil {
			return false, domain.NewInputError("location", err.Error())
		}
		must = append(must, radius)
	}
	expr, err := filter.NewExpression(must, nil, nil)
	if err != nil {
		return false, err
	}

	res, err := r.store.Search(ctx, &db.Query{
		IndexName: r.IndexName(),
		Filters:   expr,
		Limit:     2,
		KeysOnly:  true,
	})
	if err != nil {
		return false, fmt.Errorf("search duplicates: %w", err)
	}
	for _, e := range res.Entries {
		if r.idFromKey(e.Key) != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *Repo) search(ctx context.Context, q *db.Query) ([]domrest.Restaurant, int, error) {
	res, err := r.store.Search(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("search restaurants: %w", err)
	}
	if res == nil || len(res.Entries) == 0 {
		total := 0
		if res != nil {
			total = res.Total
		}
		return []domrest.Restaurant{}, total, nil
	}

	out := make([]domrest.Restaurant, 0, len(res.Entries))
	for _, e := range res.Entries {
		raw := e.Fields["$"]
		if raw == "" {
			continue
		}
		var d restaurantDoc
		if err := json.Unmarshal([]byte(raw), &d); err != nil {
			return nil, 0, fmt.Errorf("unmarshal %s: %w", e.Key, err)
		}
		if d.ID == "" {
			d.ID = r.idFromKey(e.Key)
		}
		out = append(out, fromDoc(&d))
	}
	return out, res.Total, nil
}

// discoveryFilter applies visibility (public, or public-or-own for
// authenticated viewers) plus the optional type and proximity filters.
func discoveryFilter(req *request.Request) (filter.Expression, error) {
	public, err := filter.NewMatch(fieldVisibility, visibilityPublic)
	if err != nil {
		return filter.Expression{}, err
	}

	var must, should []filter.Condition
	if uid := req.Viewer().UserID(); uid != "" {
		own, err := filter.NewMatch(fieldOwner, uid)
		if err != nil {
			return filter.Expression{}, err
		}
		should = []filter.Condition{public, own}
	} else {
		must = append(must, public)
	}

	if t := req.Type(); t != "" {
		byType, err := filter.NewMatch(fieldType, string(t))
		if err != nil {
			return filter.Expression{}, err
		}
		must = append(must, byType)
	}

	if c := req.Near(); c != nil {
		radius, err := filter.NewRadius(fieldLocation, *c)
		if err != nil {
			return filter.Expression{}, domain.NewInputError("location", err.Error())
		}
		must = append(must, radius)
	}

	return filter.NewExpression(must, should, nil)
}

// Key layout: {prefix}restaurant:{id}, index {prefix}restaurants:idx

func (r *Repo) docKey(id string) string {
	return r.docPrefix() + id
}

func (r *Repo) docPrefix() string {
	return r.prefix + "restaurant:"
}

// IndexName returns the search index name.
func (r *Repo) IndexName() string {
	return r.prefix + "restaurants:idx"
}

func (r *Repo) idFromKey(key string) string {
	return strings.TrimPrefix(key, r.docPrefix())
}
