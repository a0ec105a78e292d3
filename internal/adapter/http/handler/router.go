package handler

import (
	"razorpay-integration/internal/adapter/http/middleware"
	"razorpay-integration/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	LinkSvc        ports.PaymentLinkService
	CallbackSvc    ports.CallbackService
	HealthCheckers []ports.HealthChecker
	Mode           string // gin mode: debug, release, test
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	if deps.Mode != "" {
		gin.SetMode(deps.Mode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Razorpay redirects the payer here after payment. GET because the link
	// is created with callback_method "get".
	callbackHandler := NewCallbackHandler(deps.CallbackSvc)
	r.GET("/razorpay_payment_status", callbackHandler.Confirm)

	// API v1 routes
	v1 := r.Group("/api/v1")

	linkHandler := NewPaymentLinkHandler(deps.LinkSvc)
	links := v1.Group("/payment-links")
	{
		links.POST("", linkHandler.CreateLink)
		links.GET("/:link_id", linkHandler.GetLink)
	}

	payments := v1.Group("/payments")
	{
		payments.GET("/:payment_id", linkHandler.GetPayment)
		payments.POST("/:payment_id/refund", linkHandler.Refund)
	}

	return r
}
