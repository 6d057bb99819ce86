package handler

import (
	"dealer-payment-service/config"
	"dealer-payment-service/internal/adapter/http/middleware"
	redisStore "dealer-payment-service/internal/adapter/storage/redis"
	"dealer-payment-service/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	PaymentSvc     ports.PaymentService
	ReconSvc       ports.ReconciliationService
	TokenSvc       ports.TokenService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	SePayCfg       config.SePayConfig
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep, verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// API v1 routes
	v1 := r.Group("/api/v1")

	// --- Caller-facing payment API ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	paymentHandler := NewPaymentHandler(deps.PaymentSvc, deps.SePayCfg)
	payments := v1.Group("/payments")
	{
		payments.POST("", jwtAuth, rl("payments"), paymentHandler.CreatePayment)
		payments.GET("/:code", rl("status"), paymentHandler.GetStatus)
		payments.GET("/:code/qr", rl("qr"), paymentHandler.GetQR)
	}

	// --- Gateway callbacks (authenticated by signature, never by JWT) ---
	callbackHandler := NewCallbackHandler(deps.ReconSvc, deps.Logger)
	callbacks := v1.Group("/callbacks")
	{
		callbacks.GET("/vnpay/ipn", callbackHandler.VNPayIPN)
		callbacks.GET("/vnpay/return", callbackHandler.VNPayReturn)
		callbacks.POST("/sepay", callbackHandler.SePayWebhook)
	}

	return r
}
