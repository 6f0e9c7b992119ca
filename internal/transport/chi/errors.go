package chi

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/kailas-cloud/menuboard/internal/domain"
	"github.com/kailas-cloud/menuboard/internal/logger"
	"github.com/kailas-cloud/menuboard/internal/validation"
)

// errorCode is the machine-readable code of an error response.
type errorCode string

// Error codes.
const (
	codeBadRequest       errorCode = "bad_request"
	codeValidationFailed errorCode = "validation_failed"
	codeUnauthorized     errorCode = "unauthorized"
	codeInvalidCreds     errorCode = "invalid_credentials"
	codeForbidden        errorCode = "forbidden"
	codeNotFound         errorCode = "not_found"
	codeRestaurantNF     errorCode = "restaurant_not_found"
	codeMenuItemNF       errorCode = "menu_item_not_found"
	codeUserNF           errorCode = "user_not_found"
	codeAlreadyExists    errorCode = "already_exists"
	codeEmailTaken       errorCode = "email_taken"
	codeDuplicate        errorCode = "duplicate_restaurant"
	codeRateLimited      errorCode = "rate_limited"
	codeInternalError    errorCode = "internal_error"
)

type errorResponse struct {
	Code    errorCode    `json:"code"`
	Message string       `json:"message"`
	Fields  []fieldError `json:"fields,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

func defaultErrorHandlers() []errorHandler {
	return []errorHandler{
		inputErrorHandler,
		sentinelHandler(domain.ErrRestaurantNotFound, http.StatusNotFound, codeRestaurantNF),
		sentinelHandler(domain.ErrMenuItemNotFound, http.StatusNotFound, codeMenuItemNF),
		sentinelHandler(domain.ErrUserNotFound, http.StatusNotFound, codeUserNF),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrEmailTaken, http.StatusConflict, codeEmailTaken),
		sentinelHandler(domain.ErrDuplicateRestaurant, http.StatusConflict, codeDuplicate),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, codeAlreadyExists),
		sentinelHandler(domain.ErrInvalidCredentials, http.StatusUnauthorized, codeInvalidCreds),
		sentinelHandler(domain.ErrUnauthorized, http.StatusUnauthorized, codeUnauthorized),
		sentinelHandler(domain.ErrForbidden, http.StatusForbidden, codeForbidden),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, codeRateLimited),
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrRestaurantNotFound,
		domain.ErrMenuItemNotFound,
		domain.ErrUserNotFound,
		domain.ErrNotFound,
		domain.ErrEmailTaken,
		domain.ErrDuplicateRestaurant,
		domain.ErrAlreadyExists,
		domain.ErrInvalidCredentials,
		domain.ErrUnauthorized,
		domain.ErrForbidden,
		domain.ErrRateLimited,
		domain.ErrInvalidInput,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// inputErrorHandler handles ErrInvalidInput with field-level details.
// Both request validation and domain invariant errors carry safe messages.
func inputErrorHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrInvalidInput) {
		return false
	}
	resp := errorResponse{Code: codeValidationFailed, Message: msg}

	var verr *validation.Error
	var ierr *domain.InputError
	switch {
	case errors.As(err, &verr):
		resp.Message = verr.Error()
		for _, f := range verr.Fields {
			resp.Fields = append(resp.Fields, fieldError{Field: f.Field, Message: f.Message})
		}
	case errors.As(err, &ierr):
		resp.Message = ierr.Error()
		if ierr.Field != "" {
			resp.Fields = []fieldError{{Field: ierr.Field, Message: ierr.Reason}}
		}
	}
	writeJSON(w, http.StatusBadRequest, resp)
	return true
}
