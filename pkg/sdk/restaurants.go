package menuboard

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// RestaurantService manages restaurants.
type RestaurantService struct {
	c *Client
}

type restaurantList struct {
	Items []Restaurant `json:"items"`
	Count int          `json:"count"`
}

// List returns one page of restaurants visible to the current session.
func (s *RestaurantService) List(ctx context.Context, p ListParams) (*RestaurantPage, error) {
	q := url.Values{}
	setString(q, "search", p.Search)
	setString(q, "type", p.Type)
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}

	var page RestaurantPage
	err := s.c.do(ctx, call{
		op:     "restaurants.list",
		method: http.MethodGet,
		path:   []string{"restaurants"},
		query:  q,
		auth:   authOptional,
	}, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// Nearby returns restaurants around a point, closest first.
func (s *RestaurantService) Nearby(ctx context.Context, p NearbyParams) ([]Restaurant, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(p.Lat, 'f', -1, 64))
	q.Set("lng", strconv.FormatFloat(p.Lng, 'f', -1, 64))
	if p.Distance > 0 {
		q.Set("distance", strconv.FormatFloat(p.Distance, 'f', -1, 64))
	}
	setString(q, "search", p.Search)
	setString(q, "type", p.Type)

	var out restaurantList
	err := s.c.do(ctx, call{
		op:     "restaurants.nearby",
		method: http.MethodGet,
		path:   []string{"restaurants", "nearby"},
		query:  q,
		auth:   authOptional,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Items, nil
}

// Mine returns the restaurants created by the logged-in user.
func (s *RestaurantService) Mine(ctx context.Context) ([]Restaurant, error) {
	var out restaurantList
	err := s.c.do(ctx, call{
		op:     "restaurants.mine",
		method: http.MethodGet,
		path:   []string{"restaurants", "my"},
		auth:   authRequired,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Items, nil
}

// Get returns a restaurant by ID.
func (s *RestaurantService) Get(ctx context.Context, id string) (*Restaurant, error) {
	var r Restaurant
	err := s.c.do(ctx, call{
		op:     "restaurants.get",
		method: http.MethodGet,
		path:   []string{"restaurants", id},
		auth:   authOptional,
	}, &r)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Create adds a restaurant owned by the logged-in user.
func (s *RestaurantService) Create(ctx context.Context, in CreateRestaurantInput) (*Restaurant, error) {
	var r Restaurant
	err := s.c.do(ctx, call{
		op:     "restaurants.create",
		method: http.MethodPost,
		path:   []string{"restaurants"},
		body:   in,
		auth:   authRequired,
	}, &r)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Update applies a partial update.
func (s *RestaurantService) Update(ctx context.Context, id string, in UpdateRestaurantInput) (*Restaurant, error) {
	var r Restaurant
	err := s.c.do(ctx, call{
		op:     "restaurants.update",
		method: http.MethodPatch,
		path:   []string{"restaurants", id},
		body:   in,
		auth:   authRequired,
	}, &r)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Delete removes a restaurant and its menu.
func (s *RestaurantService) Delete(ctx context.Context, id string) error {
	return s.c.do(ctx, call{
		op:     "restaurants.delete",
		method: http.MethodDelete,
		path:   []string{"restaurants", id},
		auth:   authRequired,
	}, nil)
}

func setString(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
