package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Aidin1998/trivia/api/responses"
	"github.com/Aidin1998/trivia/internal/trivia"
	"github.com/Aidin1998/trivia/pkg/errors"
	"github.com/Aidin1998/trivia/pkg/metrics"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	limiter "github.com/ulule/limiter/v3"
	ginlimiter "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memory "github.com/ulule/limiter/v3/drivers/store/memory"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Options configures optional server behaviour.
type Options struct {
	// ServiceName names the otel server spans.
	ServiceName string
	// RateLimit is a limiter rate such as "100-M"; empty disables it.
	RateLimit string
	// RateLimitStore holds the counters; nil uses an in-memory store.
	RateLimitStore limiter.Store
	// Health is called by GET /health; nil always reports ok.
	Health HealthCheck
}

// Server represents the API server
type Server struct {
	router      *gin.Engine
	logger      *zap.Logger
	trivia      *trivia.Handler
	health      HealthCheck
	rateLimiter gin.HandlerFunc
}

// NewServer creates a new API server around the trivia handler
func NewServer(logger *zap.Logger, triviaHandler *trivia.Handler, opts Options) (*Server, error) {
	server := &Server{
		logger: logger,
		trivia: triviaHandler,
		health: opts.Health,
	}

	if opts.ServiceName == "" {
		opts.ServiceName = "trivia-api"
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true

	// Add middleware
	router.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(logger, true))
	router.Use(otelgin.Middleware(opts.ServiceName))
	router.Use(requestIDMiddleware())
	router.Use(metricsMiddleware())

	// Configure CORS. PUT is advertised although no route accepts it.
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "PUT", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "Authorization"},
		ExposeHeaders:   []string{"Content-Length", responses.RequestIDHeader},
		MaxAge:          12 * time.Hour,
	}))

	if opts.RateLimit != "" {
		rate, err := limiter.NewRateFromFormatted(opts.RateLimit)
		if err != nil {
			return nil, fmt.Errorf("invalid rate limit %q: %w", opts.RateLimit, err)
		}
		store := opts.RateLimitStore
		if store == nil {
			store = memory.NewStore()
		}
		server.rateLimiter = ginlimiter.NewMiddleware(
			limiter.New(store, rate),
			ginlimiter.WithLimitReachedHandler(func(c *gin.Context) {
				responses.Error(c, errors.TooManyRequests)
			}),
			ginlimiter.WithErrorHandler(func(c *gin.Context, err error) {
				logger.Warn("Rate limit store failed", zap.Error(err))
				responses.Error(c, errors.Unavailable.Wrap(err))
			}),
		)
	}

	router.NoRoute(func(c *gin.Context) {
		responses.Error(c, errors.NotFound)
	})
	router.NoMethod(func(c *gin.Context) {
		responses.Error(c, errors.MethodNotAllowed)
	})

	server.router = router
	server.registerRoutes()
	return server, nil
}

// Router returns the internal Gin engine for testing purposes
func (s *Server) Router() *gin.Engine {
	return s.router
}

// HTTPServer wraps the router in an *http.Server listening on addr.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.router.Group("")
	if s.rateLimiter != nil {
		api.Use(s.rateLimiter)
	}
	trivia.Routes(api, s.trivia)
}

// healthCheck handles the health check endpoint
func (s *Server) healthCheck(c *gin.Context) {
	if s.health != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.health(ctx); err != nil {
			s.logger.Warn("Health check failed", zap.Error(err))
			responses.Error(c, errors.Unavailable.Wrap(err))
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC(),
	})
}

// requestIDMiddleware echoes X-Request-ID or assigns a new one.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(responses.RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(responses.RequestIDKey, id)
		c.Header(responses.RequestIDHeader, id)
		c.Next()
	}
}

// metricsMiddleware records request counts and latency by route template.
func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPLatency.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
