package menuboard

import (
	"context"
	"net/http"
	"net/url"
)

// MenuItemService manages menu items.
type MenuItemService struct {
	c *Client
}

type menuItemList struct {
	Items []MenuItem `json:"items"`
	Count int        `json:"count"`
}

// ListByRestaurant returns a restaurant's menu sorted by category, then name.
func (s *MenuItemService) ListByRestaurant(ctx context.Context, restaurantID string, f MenuFilter) ([]MenuItem, error) {
	q := url.Values{}
	setString(q, "category", f.Category)
	setString(q, "search", f.Search)

	var out menuItemList
	err := s.c.do(ctx, call{
		op:     "menu.list",
		method: http.MethodGet,
		path:   []string{"menu-items", "restaurant", restaurantID},
		query:  q,
		auth:   authOptional,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Items, nil
}

// Categories returns the distinct categories of a restaurant's menu.
func (s *MenuItemService) Categories(ctx context.Context, restaurantID string) ([]string, error) {
	var out struct {
		Categories []string `json:"categories"`
	}
	err := s.c.do(ctx, call{
		op:     "menu.categories",
		method: http.MethodGet,
		path:   []string{"menu-items", "restaurant", restaurantID, "categories"},
		auth:   authOptional,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Categories, nil
}

// Get returns a menu item by ID.
func (s *MenuItemService) Get(ctx context.Context, id string) (*MenuItem, error) {
	var m MenuItem
	err := s.c.do(ctx, call{
		op:     "menu.get",
		method: http.MethodGet,
		path:   []string{"menu-items", id},
		auth:   authOptional,
	}, &m)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create adds a menu item to a restaurant.
func (s *MenuItemService) Create(ctx context.Context, in CreateMenuItemInput) (*MenuItem, error) {
	var m MenuItem
	err := s.c.do(ctx, call{
		op:     "menu.create",
		method: http.MethodPost,
		path:   []string{"menu-items"},
		body:   in,
		auth:   authRequired,
	}, &m)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Update applies a partial update.
func (s *MenuItemService) Update(ctx context.Context, id string, in UpdateMenuItemInput) (*MenuItem, error) {
	var m MenuItem
	err := s.c.do(ctx, call{
		op:     "menu.update",
		method: http.MethodPatch,
		path:   []string{"menu-items", id},
		body:   in,
		auth:   authRequired,
	}, &m)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Delete removes a menu item.
func (s *MenuItemService) Delete(ctx context.Context, id string) error {
	return s.c.do(ctx, call{
		op:     "menu.delete",
		method: http.MethodDelete,
		path:   []string{"menu-items", id},
		auth:   authRequired,
	}, nil)
}
