// Package router assembles the gin engine: global middleware, the public and
// authenticated route groups, and the health endpoint.
package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ledgerbook/backend/internal/infrastructure/logger"
	"github.com/ledgerbook/backend/internal/interfaces/http/dto"
	"github.com/ledgerbook/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// PublicRouteRegistrar registers routes reachable without a token
type PublicRouteRegistrar interface {
	RegisterPublicRoutes(rg *gin.RouterGroup)
}

// HealthCheck reports whether a dependency is reachable
type HealthCheck func(ctx context.Context) error

// Router manages HTTP route registration
type Router struct {
	engine      *gin.Engine
	apiVersion  string
	logger      *zap.Logger
	auth        gin.HandlerFunc
	cors        middleware.CORSConfig
	security    middleware.SecurityConfig
	tracing     middleware.TracingConfig
	maxBodySize int64
	limiter     *middleware.RateLimiter
	health      map[string]HealthCheck
	public      []PublicRouteRegistrar
	registrars  []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// WithLogger sets the logger used by the request log and panic recovery
func WithLogger(log *zap.Logger) RouterOption {
	return func(r *Router) {
		r.logger = log
	}
}

// WithAuth sets the middleware guarding the authenticated group
func WithAuth(auth gin.HandlerFunc) RouterOption {
	return func(r *Router) {
		r.auth = auth
	}
}

// WithCORS overrides the CORS policy
func WithCORS(cfg middleware.CORSConfig) RouterOption {
	return func(r *Router) {
		r.cors = cfg
	}
}

// WithSecurity overrides the security headers
func WithSecurity(cfg middleware.SecurityConfig) RouterOption {
	return func(r *Router) {
		r.security = cfg
	}
}

// WithTracing enables otelgin request spans
func WithTracing(cfg middleware.TracingConfig) RouterOption {
	return func(r *Router) {
		r.tracing = cfg
	}
}

// WithBodyLimit caps request bodies; zero disables the cap
func WithBodyLimit(maxBytes int64) RouterOption {
	return func(r *Router) {
		r.maxBodySize = maxBytes
	}
}

// WithRateLimiter applies a per-client fixed-window limit to the API
func WithRateLimiter(limiter *middleware.RateLimiter) RouterOption {
	return func(r *Router) {
		r.limiter = limiter
	}
}

// WithHealthCheck adds a named dependency check to /health
func WithHealthCheck(name string, check HealthCheck) RouterOption {
	return func(r *Router) {
		r.health[name] = check
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
		logger:     zap.NewNop(),
		cors:       middleware.DefaultCORSConfig(),
		security:   middleware.DefaultSecurityConfig(),
		health:     make(map[string]HealthCheck),
		public:     make([]PublicRouteRegistrar, 0),
		registrars: make([]RouteRegistrar, 0),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// RegisterPublic adds routes mounted outside the authenticated group
func (r *Router) RegisterPublic(registrar PublicRouteRegistrar) *Router {
	r.public = append(r.public, registrar)
	return r
}

// Register adds a RouteRegistrar to be registered later
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup installs the middleware chain and registers all routes with the engine.
// RequestID runs before the request logger so every log line carries the id.
func (r *Router) Setup() {
	middleware.SetupValidator()

	r.engine.Use(
		logger.Recovery(r.logger),
		middleware.RequestID(),
		logger.GinMiddleware(r.logger),
		middleware.CORSWithConfig(r.cors),
		middleware.SecureWithConfig(r.security),
		middleware.BodyLimit(r.maxBodySize),
	)
	r.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeNotFound, "Route not found", c.GetString(middleware.RequestIDKey)))
	})
	r.engine.GET("/health", r.healthHandler)

	api := r.engine.Group("/api/" + r.apiVersion)
	if r.limiter != nil {
		api.Use(middleware.RateLimit(r.limiter))
	}
	api.Use(middleware.TracingWithConfig(r.tracing))

	for _, registrar := range r.public {
		registrar.RegisterPublicRoutes(api)
	}

	protected := api.Group("")
	if r.auth != nil {
		protected.Use(r.auth)
	}
	protected.Use(middleware.SpanAttributes())
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(protected)
	}
}

func (r *Router) healthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := make(map[string]string, len(r.health))
	healthy := true
	for name, check := range r.health {
		if err := check(ctx); err != nil {
			logger.Enrich(ctx, r.logger).Warn("Health check failed", zap.String("check", name), zap.Error(err))
			checks[name] = "unavailable"
			healthy = false
			continue
		}
		checks[name] = "ok"
	}

	if !healthy {
		resp := dto.NewErrorResponseWithRequestID(dto.ErrCodeServiceUnavailable, "Service degraded", c.GetString(middleware.RequestIDKey))
		resp.Data = gin.H{"status": "degraded", "checks": checks}
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok", "checks": checks}))
}
