package chi

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/kailas-cloud/menuboard/internal/domain"
)

// CreateMenuItem handles POST /api/menu-items.
func (s *Server) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	p, ok := s.mustPrincipal(w, r)
	if !ok {
		return
	}
	var req createMenuItemRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	item, err := s.menu.Create(r.Context(), p, req.params())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/menu-items/"+url.PathEscape(item.ID()))
	writeJSON(w, http.StatusCreated, menuItemToResponse(&item))
}

// ListMenuItems handles GET /api/menu-items/restaurant/{restaurantID}.
func (s *Server) ListMenuItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := s.menu.ListByRestaurant(r.Context(), domain.ViewerFromContext(r.Context()),
		chi.URLParam(r, "restaurantID"), q.Get("category"), q.Get("search"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, menuItemsToResponse(items))
}

// MenuCategories handles GET /api/menu-items/restaurant/{restaurantID}/categories.
func (s *Server) MenuCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.menu.Categories(r.Context(), domain.ViewerFromContext(r.Context()), chi.URLParam(r, "restaurantID"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if cats == nil {
		cats = []string{}
	}

	writeJSON(w, http.StatusOK, categoriesResponse{Categories: cats})
}

// GetMenuItem handles GET /api/menu-items/{id}.
func (s *Server) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	item, err := s.menu.Get(r.Context(), domain.ViewerFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, menuItemToResponse(&item))
}

// UpdateMenuItem handles PATCH /api/menu-items/{id}.
func (s *Server) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	p, ok := s.mustPrincipal(w, r)
	if !ok {
		return
	}
	var req updateMenuItemRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	item, err := s.menu.Update(r.Context(), p, chi.URLParam(r, "id"), req.params())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, menuItemToResponse(&item))
}

// DeleteMenuItem handles DELETE /api/menu-items/{id}.
func (s *Server) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	p, ok := s.mustPrincipal(w, r)
	if !ok {
		return
	}

	if err := s.menu.Delete(r.Context(), p, chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
