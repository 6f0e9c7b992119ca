package menuitem

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/kailas-cloud/menuboard/internal/domain"
	dommenu "github.com/kailas-cloud/menuboard/internal/domain/menuitem"
	domrest "github.com/kailas-cloud/menuboard/internal/domain/restaurant"
)

// --- Mocks ---

type mockRepo struct {
	items      map[string]dommenu.MenuItem
	categories []string
	lastFilter dommenu.ListFilter
	deleted    []string
}

func (m *mockRepo) Create(_ context.Context, item *dommenu.MenuItem) error {
	m.items[item.ID()] = *item
	return nil
}

func (m *mockRepo) Get(_ context.Context, id string) (dommenu.MenuItem, error) {
	item, ok := m.items[id]
	if !ok {
		return dommenu.MenuItem{}, domain.ErrMenuItemNotFound
	}
	return item, nil
}

func (m *mockRepo) Update(_ context.Context, item *dommenu.MenuItem) error {
	m.items[item.ID()] = *item
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	delete(m.items, id)
	return nil
}

func (m *mockRepo) ListByRestaurant(_ context.Context, restaurantID string, f dommenu.ListFilter) ([]dommenu.MenuItem, error) {
	m.lastFilter = f
	var out []dommenu.MenuItem
	for _, item := range m.items {
		if item.RestaurantID() == restaurantID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *mockRepo) Categories(_ context.Context, _ string) ([]string, error) {
	return m.categories, nil
}

type mockRestaurants struct {
	items map[string]domrest.Restaurant
}

func (m *mockRestaurants) Get(_ context.Context, id string) (domrest.Restaurant, error) {
	r, ok := m.items[id]
	if !ok {
		return domrest.Restaurant{}, domain.ErrRestaurantNotFound
	}
	return r, nil
}

var (
	owner    = domain.Principal{UserID: "u1"}
	stranger = domain.Principal{UserID: "u2"}
	testNow  = time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
)

func newTestService(t *testing.T) (*Service, *mockRepo) {
	t.Helper()
	public, private := true, false
	rests := &mockRestaurants{items: map[string]domrest.Restaurant{}}
	for id, pub := range map[string]*bool{"pub": &public, "priv": &private} {
		r, err := domrest.New(id, "u1", domrest.Params{Name: id, Public: pub}, testNow)
		if err != nil {
			t.Fatalf("seed restaurant: %v", err)
		}
		rests.items[id] = r
	}
	repo := &mockRepo{items: map[string]dommenu.MenuItem{}}
	seq := 0
	svc := New(repo, rests).
		WithClock(func() time.Time { return testNow }).
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("m%d", seq)
		})
	return svc, repo
}

func seedItem(t *testing.T, repo *mockRepo, id, restaurantID, name, category string) {
	t.Helper()
	item, err := dommenu.New(id, "u1", dommenu.Params{
		RestaurantID: restaurantID, Name: name, Price: 10, Category: category,
	}, testNow)
	if err != nil {
		t.Fatalf("seed item: %v", err)
	}
	repo.items[id] = item
}

// --- Create ---

func TestCreate_Success(t *testing.T) {
	svc, repo := newTestService(t)

	item, err := svc.Create(context.Background(), owner, dommenu.Params{RestaurantID: "pub", Name: "Idli", Price: 40})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.ID() != "m1" || item.Currency() != "INR" || !item.IsAvailable() || item.CreatedBy() != "u1" {
		t.Errorf("unexpected item: %+v", item.Snapshot())
	}
	if _, ok := repo.items["m1"]; !ok {
		t.Error("item not stored")
	}
}

func TestCreate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		p      domain.Principal
		params dommenu.Params
		want   error
	}{
		{"anonymous", domain.Principal{}, dommenu.Params{RestaurantID: "pub", Name: "x"}, domain.ErrUnauthorized},
		{"no restaurant id", owner, dommenu.Params{Name: "x"}, domain.ErrInvalidInput},
		{"missing restaurant", owner, dommenu.Params{RestaurantID: "nope", Name: "x"}, domain.ErrRestaurantNotFound},
		{"private of other", stranger, dommenu.Params{RestaurantID: "priv", Name: "x"}, domain.ErrRestaurantNotFound},
		{"not owner", stranger, dommenu.Params{RestaurantID: "pub", Name: "x"}, domain.ErrForbidden},
		{"negative price", owner, dommenu.Params{RestaurantID: "pub", Name: "x", Price: -1}, domain.ErrInvalidInput},
		{"blank name", owner, dommenu.Params{RestaurantID: "pub", Name: " "}, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t)
			if _, err := svc.Create(context.Background(), tt.p, tt.params); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestCreate_OpenPolicy(t *testing.T) {
	svc, _ := newTestService(t)
	svc.WithPolicy(domain.OwnershipOpen)
	if _, err := svc.Create(context.Background(), stranger, dommenu.Params{RestaurantID: "pub", Name: "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// --- List / Categories ---

func TestListByRestaurant_Sorted(t *testing.T) {
	svc, repo := newTestService(t)
	seedItem(t, repo, "a", "pub", "Vada", "Snacks")
	seedItem(t, repo, "b", "pub", "Chai", "Beverages")
	seedItem(t, repo, "c", "pub", "Coffee", "Beverages")
	seedItem(t, repo, "d", "pub", "Bonda", "Snacks")
	seedItem(t, repo, "e", "other", "Lassi", "Beverages")

	items, err := svc.ListByRestaurant(context.Background(), domain.Anonymous(), "pub", " Snacks ", " vada ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var names []string
	for i := range items {
		names = append(names, items[i].Name())
	}
	want := []string{"Chai", "Coffee", "Bonda", "Vada"}
	if fmt.Sprint(names) != fmt.Sprint(want) {
		t.Errorf("order = %v, want %v", names, want)
	}
	if repo.lastFilter.Category != "Snacks" || repo.lastFilter.Search != "vada" || repo.lastFilter.Limit != DefaultMaxItems {
		t.Errorf("filter = %+v", repo.lastFilter)
	}
}

func TestListByRestaurant_PrivateHidden(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	if _, err := svc.ListByRestaurant(ctx, domain.Anonymous(), "priv", "", ""); !errors.Is(err, domain.ErrRestaurantNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
	if _, err := svc.ListByRestaurant(ctx, domain.ViewerOf(owner), "priv", "", ""); err != nil {
		t.Errorf("owner: unexpected error %v", err)
	}
}

func TestCategories_DistinctSorted(t *testing.T) {
	svc, repo := newTestService(t)
	repo.categories = []string{"Snacks", "", "Beverages", " ", "Snacks"}

	got, err := svc.Categories(context.Background(), domain.Anonymous(), "pub")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fmt.Sprint(got) != "[Beverages Snacks]" {
		t.Errorf("categories = %v", got)
	}
}

// --- Get / Update / Delete ---

func TestGet_ItemOfPrivateRestaurant(t *testing.T) {
	svc, repo := newTestService(t)
	seedItem(t, repo, "a", "priv", "Dosa", "Mains")

	if _, err := svc.Get(context.Background(), domain.Anonymous(), "a"); !errors.Is(err, domain.ErrMenuItemNotFound) {
		t.Errorf("expected ErrMenuItemNotFound, got %v", err)
	}
	if _, err := svc.Get(context.Background(), domain.ViewerOf(owner), "a"); err != nil {
		t.Errorf("owner: unexpected error %v", err)
	}
}

func TestUpdate(t *testing.T) {
	svc, repo := newTestService(t)
	seedItem(t, repo, "a", "pub", "Dosa", "Mains")
	price := 55.0
	unavailable := false

	got, err := svc.Update(context.Background(), owner, "a", dommenu.PatchParams{Price: &price, Available: &unavailable})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Price() != 55 || got.IsAvailable() {
		t.Errorf("unexpected item: %+v", got.Snapshot())
	}

	if _, err := svc.Update(context.Background(), stranger, "a", dommenu.PatchParams{Price: &price}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Update(context.Background(), owner, "a", dommenu.PatchParams{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	svc, repo := newTestService(t)
	seedItem(t, repo, "a", "pub", "Dosa", "Mains")

	if err := svc.Delete(context.Background(), stranger, "a"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), owner, "a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.deleted) != 1 {
		t.Errorf("deleted = %v", repo.deleted)
	}
	if err := svc.Delete(context.Background(), owner, "a"); !errors.Is(err, domain.ErrMenuItemNotFound) {
		t.Errorf("expected ErrMenuItemNotFound, got %v", err)
	}
}
