package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"

	qrmod "github.com/dmitrymomot/qrkit/modules/qr"
	"github.com/dmitrymomot/qrkit/pkg/config"
	"github.com/dmitrymomot/qrkit/pkg/httpserver"
	"github.com/dmitrymomot/qrkit/pkg/logger"
	"github.com/dmitrymomot/qrkit/pkg/ratelimiter"
	qrsvc "github.com/dmitrymomot/qrkit/svc/qr"
)

// Version information set via ldflags during build.
var (
	Version   = "dev"
	BuildDate = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	envFile := flag.String("env", "", "Optional .env file to load before reading the environment")
	flag.Parse()

	if *showVersion {
		fmt.Printf("qrkit %s (built %s)\n", Version, BuildDate)
		return
	}

	if err := run(*envFile); err != nil {
		slog.Error("qrkit stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(envFile string) error {
	if envFile != "" {
		if err := config.LoadEnv(envFile); err != nil {
			return err
		}
	}

	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := logger.New(
		logger.WithConfig(cfg.Log),
		logger.WithAttr(slog.String("version", Version)),
		logger.WithContextExtractors(logger.RequestIDExtractor()),
	)
	logger.SetAsDefault(log)

	if err := cfg.Settings.Validate(); err != nil {
		return fmt.Errorf("invalid QR_* settings: %w", err)
	}

	ctx := context.Background()
	b, err := openBackends(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer b.close()

	opts := []qrsvc.Option{qrsvc.WithLogger(log)}
	if b.files != nil {
		opts = append(opts, qrsvc.WithFileStorage(b.files))
	}
	svc := qrsvc.NewService(cfg.Settings, b.store, opts...)

	var limiter *ratelimiter.Bucket
	if cfg.RateLimit.Enabled {
		limiter, err = ratelimiter.NewBucket(ratelimiter.NewMemoryStore(cfg.RateLimit.MaxClients), cfg.RateLimit)
		if err != nil {
			return err
		}
	}

	r := chi.NewRouter()
	r.Mount("/", qrmod.Router(qrmod.RouterOptions{
		Service:   svc,
		Logger:    log,
		Readiness: b.checks,
		Files:     b.fileRoute,
		RateLimit: limiter,
	}))

	srv := httpserver.NewFromConfig(cfg.HTTP,
		httpserver.WithLogger(log),
		httpserver.WithStartHook(func(log *slog.Logger, addr string) {
			log.Info("http server started", slog.String("addr", addr))
		}),
		httpserver.WithStopHook(func(log *slog.Logger) {
			log.Info("http server stopped")
		}),
	)
	return srv.Run(ctx, r)
}
