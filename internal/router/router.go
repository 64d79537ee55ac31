package router // package router defines how HTTP routes are registered for verify-mock

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"go.uber.org/zap"

	"github.com/iliyamo/revticket-testdata/internal/handler"    // handlers that implement the endpoints
	"github.com/iliyamo/revticket-testdata/internal/middleware" // identity resolution for payment routes
)

// RegisterRoutes registers the health check.  db may be nil when
// verify-mock runs without a database.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
	e.GET("/healthz", handler.Health(db))
}

// RegisterPayment registers the Razorpay endpoints under /api/razorpay.
// Every request first passes through the Identity middleware, which
// resolves the caller from X-User-Id or a Bearer token signed with
// jwtSecret, and then through limiter.
func RegisterPayment(e *echo.Echo, p *handler.PaymentHandler, jwtSecret string, limiter echo.MiddlewareFunc, log *zap.Logger) {
	g := e.Group("/api/razorpay")
	g.Use(middleware.Identity(jwtSecret, log))
	g.Use(limiter)
	// Confirms a checkout; the generated test_payment_request.json targets this route.
	g.POST("/verify-payment", p.VerifyPayment)
	g.POST("/payment-failed", p.PaymentFailed)
}
