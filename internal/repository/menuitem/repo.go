package menuitem

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/kailas-cloud/menuboard/internal/db"
	"github.com/kailas-cloud/menuboard/internal/domain"
	dommenu "github.com/kailas-cloud/menuboard/internal/domain/menuitem"
	"github.com/kailas-cloud/menuboard/internal/domain/search/filter"
)

// deleteBatchSize bounds keys fetched per round of a cascading delete.
const deleteBatchSize = 500

// store is the consumer interface for menu items (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONSetNX(ctx context.Context, key string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Del(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	Search(ctx context.Context, q *db.Query) (*db.SearchResult, error)
	Distinct(ctx context.Context, q *db.DistinctQuery) ([]string, error)
}

// Repo implements usecase/menuitem.Repository.
type Repo struct {
	store  store
	prefix string
}

// New creates a menu item repository. keyPrefix namespaces all keys (e.g. "menuboard:").
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

// Create stores a new menu item.
func (r *Repo) Create(ctx context.Context, m *dommenu.MenuItem) error {
	data, err := json.Marshal(toDoc(m))
	if err != nil {
		return fmt.Errorf("marshal menu item: %w", err)
	}
	key := r.docKey(m.ID())
	if err := r.store.JSONSetNX(ctx, key, data); err != nil {
		if errors.Is(err, db.ErrKeyExists) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("json.set nx %s: %w", key, err)
	}
	return nil
}

// Get returns a menu item by id.
func (r *Repo) Get(ctx context.Context, id string) (dommenu.MenuItem, error) {
	key := r.docKey(id)
	raw, err := r.store.JSONGet(ctx, key, "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return dommenu.MenuItem{}, domain.ErrMenuItemNotFound
		}
		return dommenu.MenuItem{}, fmt.Errorf("json.get %s: %w", key, err)
	}

	var docs []menuItemDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return dommenu.MenuItem{}, fmt.Errorf("unmarshal menu item %s: %w", id, err)
	}
	if len(docs) == 0 {
		return dommenu.MenuItem{}, domain.ErrMenuItemNotFound
	}
	return fromDoc(&docs[0]), nil
}

// Update overwrites an existing menu item document.
func (r *Repo) Update(ctx context.Context, m *dommenu.MenuItem) error {
	key := r.docKey(m.ID())
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrMenuItemNotFound
	}
	data, err := json.Marshal(toDoc(m))
	if err != nil {
		return fmt.Errorf("marshal menu item: %w", err)
	}
	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return fmt.Errorf("json.set %s: %w", key, err)
	}
	return nil
}

// Delete removes a menu item document.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := r.docKey(id)
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// ListByRestaurant returns the items of one restaurant matching f, unordered.
func (r *Repo) ListByRestaurant(ctx context.Context, restaurantID string, f dommenu.ListFilter) ([]dommenu.MenuItem, error) {
	must, err := r.restaurantConditions(restaurantID)
	if err != nil {
		return nil, err
	}
	if f.Category != "" {
		cat, err := filter.NewMatch(fieldCategory, f.Category)
		if err != nil {
			return nil, domain.NewInputError("category", err.Error())
		}
		must = append(must, cat)
	}
	expr, err := filter.NewExpression(must, nil, nil)
	if err != nil {
		return nil, err
	}

	res, err := r.store.Search(ctx, &db.Query{
		IndexName:    r.IndexName(),
		Text:         f.Search,
		TextFields:   textFields,
		Filters:      expr,
		Limit:        f.Limit,
		ReturnFields: []string{"$"},
	})
	if err != nil {
		return nil, fmt.Errorf("search menu items: %w", err)
	}

	items := make([]dommenu.MenuItem, 0, len(res.Entries))
	for _, e := range res.Entries {
		raw := e.Fields["$"]
		if raw == "" {
			continue
		}
		var d menuItemDoc
		if err := json.Unmarshal([]byte(raw), &d); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", e.Key, err)
		}
		if d.ID == "" {
			d.ID = strings.TrimPrefix(e.Key, r.docPrefix())
		}
		items = append(items, fromDoc(&d))
	}
	return items, nil
}

// Categories returns the distinct category values of a restaurant's menu.
func (r *Repo) Categories(ctx context.Context, restaurantID string) ([]string, error) {
	must, err := r.restaurantConditions(restaurantID)
	if err != nil {
		return nil, err
	}
	expr, err := filter.NewExpression(must, nil, nil)
	if err != nil {
		return nil, err
	}
	values, err := r.store.Distinct(ctx, &db.DistinctQuery{
		IndexName: r.IndexName(),
		Filters:   expr,
		Field:     fieldCategory,
	})
	if err != nil {
		return nil, fmt.Errorf("distinct categories: %w", err)
	}
	return values, nil
}

// DeleteByRestaurant removes every menu item of a restaurant and returns the count.
func (r *Repo) DeleteByRestaurant(ctx context.Context, restaurantID string) (int, error) {
	must, err := r.restaurantConditions(restaurantID)
	if err != nil {
		return 0, err
	}
	expr, err := filter.NewExpression(must, nil, nil)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for {
		res, err := r.store.Search(ctx, &db.Query{
			IndexName: r.IndexName(),
			Filters:   expr,
			Limit:     deleteBatchSize,
			KeysOnly:  true,
		})
		if err != nil {
			return deleted, fmt.Errorf("search menu items of %s: %w", restaurantID, err)
		}
		if len(res.Entries) == 0 {
			return deleted, nil
		}
		keys := make([]string, 0, len(res.Entries))
		for _, e := range res.Entries {
			keys = append(keys, e.Key)
		}
		if err := r.store.Del(ctx, keys...); err != nil {
			return deleted, fmt.Errorf("del menu items of %s: %w", restaurantID, err)
		}
		deleted += len(keys)
		if len(res.Entries) < deleteBatchSize {
			return deleted, nil
		}
	}
}

func (r *Repo) restaurantConditions(restaurantID string) ([]filter.Condition, error) {
	byRestaurant, err := filter.NewMatch(fieldRestaurant, restaurantID)
	if err != nil {
		return nil, domain.NewInputError("restaurant_id", err.Error())
	}
	return []filter.Condition{byRestaurant}, nil
}

// Key layout: {prefix}menu_item:{id}, index {prefix}menu_items:idx

func (r *Repo) docKey(id string) string {
	return r.docPrefix() + id
}

func (r *Repo) docPrefix() string {
	return r.prefix + "menu_item:"
}

// IndexName returns the search index name.
func (r *Repo) IndexName() string {
	return r.prefix + "menu_items:idx"
}
