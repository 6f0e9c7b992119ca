package chi

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/kailas-cloud/menuboard/internal/domain"
	"github.com/kailas-cloud/menuboard/internal/validation"
)

// decodeBody reads a JSON body into v and validates its tags.
// It writes the error response itself and reports whether to continue.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return false
	}
	if err := validation.Struct(v); err != nil {
		s.handleDomainError(w, r, err)
		return false
	}
	return true
}

// mustPrincipal returns the caller on routes behind RequireAuth.
func (s *Server) mustPrincipal(w http.ResponseWriter, r *http.Request) (domain.Principal, bool) {
	p, ok := principal(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "authentication required")
	}
	return p, ok
}

// Register handles POST /api/auth/register.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	sess, err := s.auth.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	setUserID(r.Context(), sess.User.ID())
	writeJSON(w, http.StatusCreated, sessionToResponse(&sess))
}

// Login handles POST /api/auth/login.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	sess, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	setUserID(r.Context(), sess.User.ID())
	writeJSON(w, http.StatusOK, sessionToResponse(&sess))
}

// Profile handles GET /api/auth/profile.
func (s *Server) Profile(w http.ResponseWriter, r *http.Request) {
	p, ok := s.mustPrincipal(w, r)
	if !ok {
		return
	}

	u, err := s.auth.Profile(r.Context(), p)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, userToResponse(&u, true))
}
