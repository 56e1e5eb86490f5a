package handler

import (
	"marketplace-sync/internal/adapter/http/middleware"
	"marketplace-sync/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const (
	jsonBodyLimit = 1 << 20
	// multipartOverhead covers boundaries and part headers around the file.
	multipartOverhead = 64 << 10
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Marketplace    ports.MarketplaceService
	Journal        ports.OperationRepository // nil = /operations disabled
	RateLimitStore middleware.Limiter        // nil = rate limiting disabled
	RateLimit      middleware.RateLimitRule
	MaxImageSize   int64
	Gatherer       prometheus.Gatherer // nil = /metrics disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))

	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// Throttle everything that reaches the ledger or the pinning service.
	var write gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if deps.RateLimitStore != nil && deps.RateLimit.Limit > 0 {
		write = middleware.RateLimiter(deps.RateLimitStore, "write", deps.RateLimit, deps.Logger)
	}

	v1 := r.Group("/api/v1")

	sessionHandler := NewSessionHandler(deps.Marketplace)
	session := v1.Group("/session")
	{
		session.GET("", sessionHandler.Get)
		session.POST("/refresh", write, sessionHandler.Refresh)
	}

	imageHandler := NewImageHandler(deps.Marketplace, deps.MaxImageSize)
	v1.POST("/images", middleware.MaxBodySize(deps.MaxImageSize+multipartOverhead), write, imageHandler.Upload)

	itemHandler := NewItemHandler(deps.Marketplace)
	items := v1.Group("/items", middleware.MaxBodySize(jsonBodyLimit))
	{
		items.GET("", itemHandler.List)
		items.GET("/for-sale", itemHandler.ForSale)
		items.GET("/owned", itemHandler.Owned)
		items.GET("/:id", itemHandler.Get)
		items.POST("", write, itemHandler.Create)
		items.POST("/:id/purchase", write, itemHandler.Purchase)
		items.PUT("/:id/transfer-target", itemHandler.SetTransferTarget)
		items.POST("/:id/transfer", write, itemHandler.Transfer)
	}

	if deps.Journal != nil {
		opHandler := NewOperationHandler(deps.Journal)
		ops := v1.Group("/operations")
		{
			ops.GET("", opHandler.List)
			ops.GET("/:id", opHandler.Get)
		}
	}

	return r
}
