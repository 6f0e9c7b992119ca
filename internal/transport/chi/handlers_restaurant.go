package chi

import (
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kailas-cloud/menuboard/internal/domain"
	restaurantuc "github.com/kailas-cloud/menuboard/internal/usecase/restaurant"
)

// ListRestaurants handles GET /api/restaurants.
func (s *Server) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pageNum, err := intParam(q, "page")
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	limit, err := intParam(q, "limit")
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	res, err := s.restaurants.List(r.Context(), domain.ViewerFromContext(r.Context()), restaurantuc.ListQuery{
		Search: q.Get("search"),
		Type:   q.Get("type"),
		Page:   pageNum,
		Limit:  limit,
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, restaurantPageToResponse(&res))
}

// NearbyRestaurants handles GET /api/restaurants/nearby.
func (s *Server) NearbyRestaurants(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, err := floatParam(q, "lat", true)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	lng, err := floatParam(q, "lng", true)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	distance, err := floatParam(q, "distance", false)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	found, err := s.restaurants.Nearby(r.Context(), domain.ViewerFromContext(r.Context()), restaurantuc.NearbyQuery{
		Lat:      lat,
		Lng:      lng,
		Distance: distance,
		Search:   q.Get("search"),
		Type:     q.Get("type"),
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, nearbyToResponse(found))
}

// MyRestaurants handles GET /api/restaurants/my.
func (s *Server) MyRestaurants(w http.ResponseWriter, r *http.Request) {
	p, ok := s.mustPrincipal(w, r)
	if !ok {
		return
	}

	rs, err := s.restaurants.Mine(r.Context(), p)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, restaurantsToResponse(rs))
}

// CreateRestaurant handles POST /api/restaurants.
func (s *Server) CreateRestaurant(w http.ResponseWriter, r *http.Request) {
	p, ok := s.mustPrincipal(w, r)
	if !ok {
		return
	}
	var req createRestaurantRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	rest, err := s.restaurants.Create(r.Context(), p, req.params())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/restaurants/"+url.PathEscape(rest.ID()))
	writeJSON(w, http.StatusCreated, restaurantToResponse(&rest))
}

// GetRestaurant handles GET /api/restaurants/{id}.
func (s *Server) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	rest, err := s.restaurants.Get(r.Context(), domain.ViewerFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, restaurantToResponse(&rest))
}

// UpdateRestaurant handles PATCH /api/restaurants/{id}.
func (s *Server) UpdateRestaurant(w http.ResponseWriter, r *http.Request) {
	p, ok := s.mustPrincipal(w, r)
	if !ok {
		return
	}
	var req updateRestaurantRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	rest, err := s.restaurants.Update(r.Context(), p, chi.URLParam(r, "id"), req.params())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, restaurantToResponse(&rest))
}

// DeleteRestaurant handles DELETE /api/restaurants/{id}.
func (s *Server) DeleteRestaurant(w http.ResponseWriter, r *http.Request) {
	p, ok := s.mustPrincipal(w, r)
	if !ok {
		return
	}

	if err := s.restaurants.Delete(r.Context(), p, chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// intParam parses an optional integer query parameter. Missing yields 0.
func intParam(q url.Values, name string) (int, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewInputError(name, "must be an integer")
	}
	return v, nil
}

// floatParam parses a float query parameter. Missing optional values yield 0.
func floatParam(q url.Values, name string, required bool) (float64, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		if required {
			return 0, domain.NewInputError(name, "is required")
		}
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, domain.NewInputError(name, "must be a number")
	}
	return v, nil
}
