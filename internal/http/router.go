// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, and the session layer.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Session cookie handling confined to middleware and auth handlers
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-car-backend/internal/auth"
	"github.com/tbourn/go-car-backend/internal/config"
	"github.com/tbourn/go-car-backend/internal/domain"
	"github.com/tbourn/go-car-backend/internal/httperr"
	"github.com/tbourn/go-car-backend/internal/http/handlers"
	"github.com/tbourn/go-car-backend/internal/http/middleware"
	"github.com/tbourn/go-car-backend/internal/repo"
	"github.com/tbourn/go-car-backend/internal/services"
)

// carRepoShim adapts the repository free functions to the services.CarRepo
// interface expected by the CarService. This keeps services decoupled from
// the concrete repo package while reusing existing functions.
type carRepoShim struct{}

func (carRepoShim) CreateCar(ctx context.Context, db *gorm.DB, car *domain.Car) (*domain.Car, error) {
	return repo.CreateCar(ctx, db, car)
}

func (carRepoShim) ListCars(ctx context.Context, db *gorm.DB, limit, offset int) ([]domain.Car, error) {
	return repo.ListCars(ctx, db, limit, offset)
}

func (carRepoShim) GetCar(ctx context.Context, db *gorm.DB, id string) (*domain.Car, error) {
	return repo.GetCar(ctx, db, id)
}

func (carRepoShim) UpdateCar(ctx context.Context, db *gorm.DB, id string, patch domain.CarPatch) (*domain.Car, error) {
	return repo.UpdateCar(ctx, db, id, patch)
}

func (carRepoShim) DeleteCar(ctx context.Context, db *gorm.DB, id string) error {
	return repo.DeleteCar(ctx, db, id)
}

// reviewRepoShim adapts the review repository functions to
// services.ReviewRepo.
type reviewRepoShim struct{}

func (reviewRepoShim) CreateReview(ctx context.Context, db *gorm.DB, rev *domain.Review) (*domain.Review, error) {
	return repo.CreateReview(ctx, db, rev)
}

func (reviewRepoShim) ListReviews(ctx context.Context, db *gorm.DB, limit, offset int) ([]domain.Review, error) {
	return repo.ListReviews(ctx, db, limit, offset)
}

func (reviewRepoShim) GetReview(ctx context.Context, db *gorm.DB, id string) (*domain.Review, error) {
	return repo.GetReview(ctx, db, id)
}

func (reviewRepoShim) UpdateReview(ctx context.Context, db *gorm.DB, id string, patch domain.ReviewPatch) (*domain.Review, error) {
	return repo.UpdateReview(ctx, db, id, patch)
}

func (reviewRepoShim) DeleteReview(ctx context.Context, db *gorm.DB, id string) error {
	return repo.DeleteReview(ctx, db, id)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. gzip compression
//  8. CORS and Security headers
//  9. Session loader (cookie → server-side session)
//
// The authorization gate (RequireAuth) is attached per-route to the
// mutating car/review endpoints only.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, store auth.Store, provider auth.Provider, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction (session cookies masked by default)
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Compress JSON responses
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 8) CORS posture
	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Credentials are allowed only against the explicit allowlist so the
		// session cookie can cross origins.
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// 9) Resolve the session cookie on every request
	r.Use(middleware.Session(store, cfg.Session.Secret))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		fallbackError(c, http.StatusNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		fallbackError(c, http.StatusMethodNotAllowed, "method not allowed")
	})

	// Home and liveness
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to the Home page of the Car API"})
	})
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (requires the generated docs package, imported in main)
	if cfg.SwaggerEnabled {
		r.GET("/api-docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db, flow ← provider/store
	carSvc := services.NewCarService(db, carRepoShim{})
	reviewSvc := services.NewReviewService(db, reviewRepoShim{})
	flow := auth.NewFlow(provider, store)
	h := handlers.New(carSvc, reviewSvc, flow, handlers.Options{
		Production:      cfg.Production,
		SessionSecret:   cfg.Session.Secret,
		SessionTTL:      cfg.Session.TTL,
		FailureRedirect: cfg.Auth.FailureRedirect,
	})

	// Auth flow
	r.GET("/login", h.Login)
	r.GET("/github/callback", h.Callback)
	r.GET("/logout", h.Logout)

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Cars: reads are public, writes require a session identity
		api.GET("/cars", h.ListCars)
		api.GET("/cars/:id", h.GetCar)
		api.POST("/cars", middleware.RequireAuth(), h.CreateCar)
		api.PUT("/cars/:id", middleware.RequireAuth(), h.UpdateCar)
		api.DELETE("/cars/:id", middleware.RequireAuth(), h.DeleteCar)

		// Reviews mirror cars
		api.GET("/reviews", h.ListReviews)
		api.GET("/reviews/:id", h.GetReview)
		api.POST("/reviews", middleware.RequireAuth(), h.CreateReview)
		api.PUT("/reviews/:id", middleware.RequireAuth(), h.UpdateReview)
		api.DELETE("/reviews/:id", middleware.RequireAuth(), h.DeleteReview)
	}
}

// fallbackError writes the standard error envelope for router-level
// failures (unknown route or method).
func fallbackError(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, gin.H{
		"request_id": c.Writer.Header().Get("X-Request-ID"),
		"code":       httperr.CodeFor(status),
		"error":      detail,
	})
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
