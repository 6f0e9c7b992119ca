package chi

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/menuboard/internal/domain"
	"github.com/kailas-cloud/menuboard/internal/logger"
)

const bearerPrefix = "Bearer "

// OptionalAuth attaches the principal of a valid bearer token to the request.
// Requests without an Authorization header pass through anonymously. A header
// that is present but invalid is rejected so clients notice expired sessions.
func OptionalAuth(a Authenticator) func(http.Handler) http.Handler {
	return bearerAuth(a, false)
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(a Authenticator) func(http.Handler) http.Handler {
	return bearerAuth(a, true)
}

func bearerAuth(a Authenticator, required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				if required {
					writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing authorization header")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			if !strings.HasPrefix(header, bearerPrefix) {
				writeError(w, http.StatusUnauthorized, codeUnauthorized, "authorization header must use Bearer scheme")
				return
			}

			token := strings.TrimSpace(header[len(bearerPrefix):])
			if token == "" {
				writeError(w, http.StatusUnauthorized, codeUnauthorized, "empty bearer token")
				return
			}

			p, err := a.Authenticate(r.Context(), token)
			if err != nil {
				if !errors.Is(err, domain.ErrUnauthorized) {
					logger.FromContext(r.Context()).Error("authenticate", zap.Error(err))
					writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
					return
				}
				writeError(w, http.StatusUnauthorized, codeUnauthorized, "invalid or expired token")
				return
			}

			ctx := domain.ContextWithPrincipal(r.Context(), p)
			setUserID(ctx, p.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// principal returns the authenticated caller. Handlers behind RequireAuth
// always have one.
func principal(r *http.Request) (domain.Principal, bool) {
	return domain.PrincipalFromContext(r.Context())
}
