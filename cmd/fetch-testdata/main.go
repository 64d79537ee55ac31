// Command fetch-testdata samples real rows from the revticket database and
// writes a ready-to-send request body for POST /api/razorpay/verify-payment.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"go.uber.org/zap"

	"github.com/iliyamo/revticket-testdata/internal/config"
	"github.com/iliyamo/revticket-testdata/internal/database"
	"github.com/iliyamo/revticket-testdata/internal/generator"
	"github.com/iliyamo/revticket-testdata/internal/logger"
	"github.com/iliyamo/revticket-testdata/internal/model"
	"github.com/iliyamo/revticket-testdata/internal/queue"
	"github.com/iliyamo/revticket-testdata/internal/report"
	"github.com/iliyamo/revticket-testdata/internal/repository"
	"github.com/iliyamo/revticket-testdata/internal/utils"
)

func main() {
	os.Exit(run())
}

func run() (code int) {
	out := flag.String("out", "", "output file (overrides OUTPUT_FILE)")
	baseURL := flag.String("base-url", "", "payment service base URL (overrides API_BASE_URL)")
	noToken := flag.Bool("no-token", false, "print the token placeholder even when JWT_SECRET is set")
	flag.Parse()

	console := report.NewConsole(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		console.Failure(err, nil)
		return 1
	}
	if *out != "" {
		cfg.OutputFile = *out
	}
	if *baseURL != "" {
		cfg.APIBaseURL = *baseURL
	}

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		console.Failure(err, nil)
		return 1
	}
	defer func() { _ = log.Sync() }()

	console.Banner()

	db, err := database.Open(cfg.DB, 2)
	if err != nil {
		console.ConnectFailed(err)
		log.Error("database unavailable", zap.Error(err))
		return 1
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := &generator.Runner{
		Showtimes:  repository.NewShowtimeRepo(db),
		Seats:      repository.NewSeatRepo(db),
		Users:      repository.NewUserRepo(db),
		Console:    console,
		BaseURL:    cfg.APIBaseURL,
		OutputFile: cfg.OutputFile,
		Log:        log,
	}
	if cfg.JWTSecret != "" && !*noToken {
		r.Token = func(u model.User) (string, error) {
			tok, err := utils.NewAccessToken(cfg.JWTSecret, u.ID.String(), model.RoleUser, cfg.JWTTTLMin)
			return tok.Token, err
		}
	}
	if cfg.QueueEnabled {
		r.Sinks = append(r.Sinks, generator.QueueSink{
			Publisher: queue.NewPublisher(cfg.RabbitURL, log),
			Queue:     queue.TestRequestQueue,
		})
	}

	defer func() {
		if p := recover(); p != nil {
			console.Failure(fmt.Errorf("%v", p), debug.Stack())
			log.Error("panic during generation", zap.Any("panic", p))
			code = 1
		}
	}()

	outcome, err := r.Run(ctx)
	if err != nil {
		console.Failure(err, debug.Stack())
		log.Error("generation failed", zap.Error(err), zap.Stack("stack"))
		return 1
	}
	log.Debug("run finished", zap.Stringer("outcome", outcome))
	return 0
}
