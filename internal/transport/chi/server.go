package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/menuboard/internal/metrics"
	healthuc "github.com/kailas-cloud/menuboard/internal/usecase/health"
)

// DefaultMaxBodyBytes caps request bodies when Options leaves it unset.
const DefaultMaxBodyBytes = 1 << 20

// Options configure the HTTP surface.
type Options struct {
	CORSOrigins          []string
	CORSAllowCredentials bool
	AuthRatePerMinute    int
	MaxBodyBytes         int64
}

// Server serves the menuboard REST API over chi.
type Server struct {
	auth          AuthService
	restaurants   RestaurantService
	menu          MenuService
	health        HealthChecker
	logger        *zap.Logger
	opts          Options
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	auth AuthService,
	restaurants RestaurantService,
	menu MenuService,
	health HealthChecker,
	logger *zap.Logger,
	opts Options,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxBodyBytes == 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &Server{
		auth:          auth,
		restaurants:   restaurants,
		menu:          menu,
		health:        health,
		logger:        logger,
		opts:          opts,
		errorHandlers: defaultErrorHandlers(),
	}
}

// Handler builds the router with the full middleware stack.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(s.logger))
	r.Use(metrics.Middleware())
	r.Use(corsMiddleware(s.opts.CORSOrigins, s.opts.CORSAllowCredentials))
	r.Use(bodyLimit(s.opts.MaxBodyBytes))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeBadRequest, "method not allowed")
	})

	r.Get("/health", s.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	optional := OptionalAuth(s.auth)
	required := RequireAuth(s.auth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(authRateLimit(s.opts.AuthRatePerMinute))
				r.Post("/register", s.Register)
				r.Post("/login", s.Login)
			})
			r.With(required).Get("/profile", s.Profile)
		})

		r.Route("/restaurants", func(r chi.Router) {
			r.With(optional).Get("/", s.ListRestaurants)
			r.With(optional).Get("/nearby", s.NearbyRestaurants)
			r.With(required).Get("/my", s.MyRestaurants)
			r.With(required).Post("/", s.CreateRestaurant)
			r.With(optional).Get("/{id}", s.GetRestaurant)
			r.With(required).Patch("/{id}", s.UpdateRestaurant)
			r.With(required).Delete("/{id}", s.DeleteRestaurant)
		})

		r.Route("/menu-items", func(r chi.Router) {
			r.With(required).Post("/", s.CreateMenuItem)
			r.With(optional).Get("/restaurant/{restaurantID}", s.ListMenuItems)
			r.With(optional).Get("/restaurant/{restaurantID}/categories", s.MenuCategories)
			r.With(optional).Get("/{id}", s.GetMenuItem)
			r.With(required).Patch("/{id}", s.UpdateMenuItem)
			r.With(required).Delete("/{id}", s.DeleteMenuItem)
		})
	})

	return r
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}
