// Package httpapi wires the HTTP transport (Gin) to the book service,
// middleware, and route handlers. It centralizes cross-cutting concerns:
// tracing, correlation IDs, logging, panic recovery, metrics, compression,
// CORS, security headers, idempotency, and rate limiting.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate the correlation id
//  3. Logger: structured access logs
//  4. Recovery: capture panics after the logger
//  5. Body size limiter
//  6. Gzip compression
//  7. Metrics
//  8. Idempotency (before the rate limiter so replays bypass it)
//  9. Rate limiter
//  10. CORS and security headers
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/dkoutsos/go-library-backend/internal/config"
	"github.com/dkoutsos/go-library-backend/internal/http/handlers"
	"github.com/dkoutsos/go-library-backend/internal/http/middleware"
	"github.com/dkoutsos/go-library-backend/internal/repo"
	"github.com/dkoutsos/go-library-backend/internal/services"
)

// RegisterRoutes attaches all middleware and endpoints to the given Gin
// engine and mounts the catalogue API under cfg.APIBasePath.
func RegisterRoutes(r *gin.Engine, books *services.BookService, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured access logging
	r.Use(middleware.Logger())

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Response compression
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) Idempotency for unsafe POSTs (borrow/return retries)
	replays := repo.NewReplayCache(cfg.IdempotencyTTL)
	r.Use(middleware.Idempotency(middleware.IdempotencyOptions{MaxLen: 200}, replays))

	// 9) Token-bucket rate limiter per client IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClientIP())
	r.Use(rl.Handler())

	// 10) CORS posture (allow all when no origins configured)
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.HeaderIdempotencyKey},
		ExposeHeaders: []string{"X-Request-ID", "Location", "Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORS.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	// Security headers (HSTS only when enabled and the request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (opt-in)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	h := handlers.New(books)

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		api.GET("/book", h.ListBooks)
		api.GET("/book/search", h.SearchBooks)
		api.GET("/book/borrowed", h.ListBorrowed)
		api.GET("/book/:id", h.GetBook)
		api.POST("/book", h.AddBook)
		api.POST("/book/:id/borrow", h.BorrowBook)
		api.POST("/book/:id/return", h.ReturnBook)
		api.POST("/book/return-record/:borrowRecordId", h.ReturnRecord)
	}
}

// limitBody caps the request body size for all endpoints using
// http.MaxBytesReader; oversized bodies error on read downstream.
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
