package chi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kailas-cloud/menuboard/internal/domain"
	dommenu "github.com/kailas-cloud/menuboard/internal/domain/menuitem"
	domrest "github.com/kailas-cloud/menuboard/internal/domain/restaurant"
	"github.com/kailas-cloud/menuboard/internal/domain/search/page"
	domuser "github.com/kailas-cloud/menuboard/internal/domain/user"
	authuc "github.com/kailas-cloud/menuboard/internal/usecase/auth"
	healthuc "github.com/kailas-cloud/menuboard/internal/usecase/health"
	restaurantuc "github.com/kailas-cloud/menuboard/internal/usecase/restaurant"
)

const testToken = "good-token"

var (
	testNow       = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	testPrincipal = domain.Principal{UserID: "u1", Email: "a@b.co", Name: "Asha"}
)

// --- auth ---

type mockAuth struct {
	registerFn func(ctx context.Context, email, password, name string) (authuc.Session, error)
	loginFn    func(ctx context.Context, email, password string) (authuc.Session, error)
	profileFn  func(ctx context.Context, p domain.Principal) (domuser.User, error)
	authFn     func(ctx context.Context, token string) (domain.Principal, error)
}

func (m *mockAuth) Register(ctx context.Context, email, password, name string) (authuc.Session, error) {
	return m.registerFn(ctx, email, password, name)
}

func (m *mockAuth) Login(ctx context.Context, email, password string) (authuc.Session, error) {
	return m.loginFn(ctx, email, password)
}

func (m *mockAuth) Profile(ctx context.Context, p domain.Principal) (domuser.User, error) {
	return m.profileFn(ctx, p)
}

func (m *mockAuth) Authenticate(ctx context.Context, token string) (domain.Principal, error) {
	if m.authFn != nil {
		return m.authFn(ctx, token)
	}
	if token == testToken {
		return testPrincipal, nil
	}
	return domain.Principal{}, domain.ErrUnauthorized
}

// --- restaurants ---

type mockRestaurants struct {
	createFn func(ctx context.Context, p domain.Principal, params domrest.Params) (domrest.Restaurant, error)
	listFn   func(ctx context.Context, v domain.Viewer, q restaurantuc.ListQuery) (page.Result[domrest.Restaurant], error)
	nearbyFn func(ctx context.Context, v domain.Viewer, q restaurantuc.NearbyQuery) ([]restaurantuc.Nearby, error)
	getFn    func(ctx context.Context, v domain.Viewer, id string) (domrest.Restaurant, error)
	mineFn   func(ctx context.Context, p domain.Principal) ([]domrest.Restaurant, error)
	updateFn func(ctx context.Context, p domain.Principal, id string, params domrest.PatchParams) (domrest.Restaurant, error)
	deleteFn func(ctx context.Context, p domain.Principal, id string) error
}

func (m *mockRestaurants) Create(
	ctx context.Context, p domain.Principal, params domrest.Params,
) (domrest.Restaurant, error) {
	return m.createFn(ctx, p, params)
}

func (m *mockRestaurants) List(
	ctx context.Context, v domain.Viewer, q restaurantuc.ListQuery,
) (page.Result[domrest.Restaurant], error) {
	return m.listFn(ctx, v, q)
}

func (m *mockRestaurants) Nearby(
	ctx context.Context, v domain.Viewer, q restaurantuc.NearbyQuery,
) ([]restaurantuc.Nearby, error) {
	return m.nearbyFn(ctx, v, q)
}

func (m *mockRestaurants) Get(ctx context.Context, v domain.Viewer, id string) (domrest.Restaurant, error) {
	return m.getFn(ctx, v, id)
}

func (m *mockRestaurants) Mine(ctx context.Context, p domain.Principal) ([]domrest.Restaurant, error) {
	return m.mineFn(ctx, p)
}

func (m *mockRestaurants) Update(
	ctx context.Context, p domain.Principal, id string, params domrest.PatchParams,
) (domrest.Restaurant, error) {
	return m.updateFn(ctx, p, id, params)
}

func (m *mockRestaurants) Delete(ctx context.Context, p domain.Principal, id string) error {
	return m.deleteFn(ctx, p, id)
}

// --- menu ---

type mockMenu struct {
	createFn     func(ctx context.Context, p domain.Principal, params dommenu.Params) (dommenu.MenuItem, error)
	listFn       func(ctx context.Context, v domain.Viewer, rid, category, search string) ([]dommenu.MenuItem, error)
	categoriesFn func(ctx context.Context, v domain.Viewer, rid string) ([]string, error)
	getFn        func(ctx context.Context, v domain.Viewer, id string) (dommenu.MenuItem, error)
	updateFn     func(ctx context.Context, p domain.Principal, id string, params dommenu.PatchParams) (dommenu.MenuItem, error)
	deleteFn     func(ctx context.Context, p domain.Principal, id string) error
}

func (m *mockMenu) Create(ctx context.Context, p domain.Principal, params dommenu.Params) (dommenu.MenuItem, error) {
	return m.createFn(ctx, p, params)
}

func (m *mockMenu) ListByRestaurant(
	ctx context.Context, v domain.Viewer, rid, category, search string,
) ([]dommenu.MenuItem, error) {
	return m.listFn(ctx, v, rid, category, search)
}

func (m *mockMenu) Categories(ctx context.Context, v domain.Viewer, rid string) ([]string, error) {
	return m.categoriesFn(ctx, v, rid)
}

func (m *mockMenu) Get(ctx context.Context, v domain.Viewer, id string) (dommenu.MenuItem, error) {
	return m.getFn(ctx, v, id)
}

func (m *mockMenu) Update(
	ctx context.Context, p domain.Principal, id string, params dommenu.PatchParams,
) (dommenu.MenuItem, error) {
	return m.updateFn(ctx, p, id, params)
}

func (m *mockMenu) Delete(ctx context.Context, p domain.Principal, id string) error {
	return m.deleteFn(ctx, p, id)
}

// --- health ---

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(context.Context) healthuc.Report { return m.report }

// --- helpers ---

type testDeps struct {
	auth        *mockAuth
	restaurants *mockRestaurants
	menu        *mockMenu
	health      *mockHealth
	opts        Options
}

func newTestHandler(t *testing.T, d testDeps) http.Handler {
	t.Helper()
	if d.auth == nil {
		d.auth = &mockAuth{}
	}
	if d.restaurants == nil {
		d.restaurants = &mockRestaurants{}
	}
	if d.menu == nil {
		d.menu = &mockMenu{}
	}
	if d.health == nil {
		d.health = &mockHealth{report: healthuc.Report{Status: healthuc.Healthy}}
	}
	return NewServer(d.auth, d.restaurants, d.menu, d.health, nil, d.opts).Handler()
}

func doRequest(t *testing.T, h http.Handler, method, target, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader = http.NoBody
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func testRestaurant(t *testing.T, id, owner string, public bool) domrest.Restaurant {
	t.Helper()
	r, err := domrest.New(id, owner, domrest.Params{Name: "Chai Point", Public: &public}, testNow)
	if err != nil {
		t.Fatalf("build restaurant: %v", err)
	}
	return r
}

func testMenuItem(t *testing.T, id, restaurantID, name, category string) dommenu.MenuItem {
	t.Helper()
	m, err := dommenu.New(id, "u1", dommenu.Params{
		RestaurantID: restaurantID, Name: name, Price: 120, Category: category,
	}, testNow)
	if err != nil {
		t.Fatalf("build menu item: %v", err)
	}
	return m
}

func testUser(t *testing.T) domuser.User {
	t.Helper()
	u, err := domuser.New("u1", "a@b.co", "Asha", "$2a$hash", testNow)
	if err != nil {
		t.Fatalf("build user: %v", err)
	}
	return u
}
