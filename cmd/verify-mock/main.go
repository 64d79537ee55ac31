// Command verify-mock serves a local stand-in for the payment service's
// Razorpay endpoints so generated test requests can be exercised without
// the full backend.
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/revticket-testdata/internal/cache"
	"github.com/iliyamo/revticket-testdata/internal/config"
	"github.com/iliyamo/revticket-testdata/internal/database"
	"github.com/iliyamo/revticket-testdata/internal/handler"
	"github.com/iliyamo/revticket-testdata/internal/logger"
	"github.com/iliyamo/revticket-testdata/internal/middleware"
	"github.com/iliyamo/revticket-testdata/internal/queue"
	"github.com/iliyamo/revticket-testdata/internal/repository"
	"github.com/iliyamo/revticket-testdata/internal/router"
)

func main() {
	cfg, err := config.Load() // Load environment config
	if err != nil {
		panic(err)
	}
	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := &handler.PaymentHandler{
		KeySecret:       cfg.RazorpayKeySecret,
		AllowMockOrders: cfg.AllowMockOrders,
		Log:             log,
	}

	// The database is optional; without it showtime and seat checks are skipped.
	var pinger handler.Pinger
	db, err := database.Open(cfg.DB, 5)
	if err != nil {
		log.Warn("database unavailable; showtime and seat checks disabled", zap.Error(err))
	} else {
		defer func(db *sql.DB) { _ = db.Close() }(db)
		pinger = db
		h.Showtimes = repository.NewShowtimeRepo(db)
		h.Seats = repository.NewSeatRepo(db)
	}

	// Redis backs the booking store and the rate limiter; both degrade without it.
	limiter := middleware.RateLimit(cfg.RateLimit, nil, log)
	if rdb := config.NewRedisClient(cfg.Redis); rdb != nil {
		defer func() { _ = rdb.Close() }()
		h.Bookings = cache.NewRedisBookingStore(rdb, cfg.Redis.Prefix, cfg.BookingTTL)
		limiter = middleware.RateLimit(cfg.RateLimit, rdb, log)
		log.Info("booking store: redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		h.Bookings = cache.NewMemoryBookingStore()
		log.Info("booking store: memory")
	}

	if cfg.QueueEnabled {
		h.Events = queue.NewPublisher(cfg.RabbitURL, log)
	}
	if cfg.QueueConsumerEnabled {
		go func() {
			bl := queue.BookingLog{Dir: "logs"}
			if err := queue.Consume(ctx, cfg.RabbitURL, bl, log); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("booking consumer stopped", zap.Error(err))
			}
		}()
	}

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	router.RegisterRoutes(e, pinger)
	router.RegisterPayment(e, h, cfg.JWTSecret, limiter, log)

	addr := ":" + cfg.Port
	go func() {
		log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}
