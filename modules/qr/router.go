package qr

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/qrkit/handler"
	"github.com/dmitrymomot/qrkit/pkg/binder"
	"github.com/dmitrymomot/qrkit/pkg/cache"
	"github.com/dmitrymomot/qrkit/pkg/httpserver"
	"github.com/dmitrymomot/qrkit/pkg/ratelimiter"
	qrsvc "github.com/dmitrymomot/qrkit/svc/qr"
)

// SessionHeader selects the preview session of a client.
const SessionHeader = "X-Session-ID"

const (
	defaultMaxSessions      = 1024
	defaultReadinessTimeout = 5 * time.Second
	defaultMaxJSONBytes     = 1 << 20
	formOverhead            = 64 << 10
)

// RouterOptions configures the qr module. Service is required.
type RouterOptions struct {
	Service *qrsvc.Service
	Logger  *slog.Logger

	// MaxSessions caps live preview sessions; the least recently used is
	// closed when the cap is hit.
	MaxSessions int

	// Readiness lists the dependency probes served on /readyz.
	Readiness        map[string]httpserver.Check
	ReadinessTimeout time.Duration

	// Files, when set, is mounted under /files/ to serve stored images.
	Files http.Handler

	// RateLimit, when set, limits /generate, /preview and /scan per client IP.
	RateLimit *ratelimiter.Bucket
}

// Router creates the qr module router.
//
// Example:
//
//	svc := qr.NewService(settings, store)
//	r := chi.NewRouter()
//	r.Mount("/", qrmod.Router(qrmod.RouterOptions{Service: svc}))
func Router(opts RouterOptions) chi.Router {
	if opts.Service == nil {
		panic("qr: RouterOptions.Service is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = defaultMaxSessions
	}
	if opts.ReadinessTimeout <= 0 {
		opts.ReadinessTimeout = defaultReadinessTimeout
	}

	h := &handlers{
		svc: opts.Service,
		log: opts.Logger,
		sessions: cache.NewLRU[string, *qrsvc.Session](opts.MaxSessions,
			cache.WithOnEvict(func(_ string, s *qrsvc.Session) { s.Close() })),
		errorHandler: handler.NewErrorHandler(opts.Logger, ErrorMappers()...),
	}
	// multipart framing and the lat/lng fields ride on top of the image
	formLimit := opts.Service.Settings().MaxUploadSize
	if formLimit > 0 {
		formLimit += formOverhead
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", httpserver.LivenessHandler())
	r.Get("/readyz", httpserver.ReadinessHandler(opts.Logger, opts.ReadinessTimeout, opts.Readiness))
	if opts.Files != nil {
		r.Handle("/files/*", http.StripPrefix("/files/", opts.Files))
	}

	r.Post("/classify", handler.Wrap(h.classify,
		handler.WithBinders[classifyRequest](binder.JSON(defaultMaxJSONBytes)),
		handler.WithErrorHandler[classifyRequest](h.errorHandler)))
	r.Post("/format", handler.Wrap(h.format,
		handler.WithBinders[qrsvc.GenerateRequest](binder.JSON(defaultMaxJSONBytes)),
		handler.WithErrorHandler[qrsvc.GenerateRequest](h.errorHandler)))
	r.Group(func(r chi.Router) {
		if opts.RateLimit != nil {
			r.Use(ratelimiter.Middleware(opts.RateLimit, ratelimiter.ClientIP(), opts.Logger))
		}
		r.Post("/generate", handler.Wrap(h.generate,
			handler.WithBinders[generateRequest](binder.JSON(defaultMaxJSONBytes), binder.Query()),
			handler.WithErrorHandler[generateRequest](h.errorHandler)))
		r.Post("/preview", handler.Wrap(h.preview,
			handler.WithBinders[qrsvc.GenerateRequest](binder.JSON(defaultMaxJSONBytes)),
			handler.WithErrorHandler[qrsvc.GenerateRequest](h.errorHandler)))
		r.Post("/scan", handler.Wrap(h.scan,
			handler.WithBinders[scanRequest](binder.Form(formLimit)),
			handler.WithErrorHandler[scanRequest](h.errorHandler)))
	})

	r.Route("/history", func(r chi.Router) {
		r.Get("/", handler.Wrap(h.listHistory,
			handler.WithBinders[historyQuery](binder.Query()),
			handler.WithErrorHandler[historyQuery](h.errorHandler)))
		r.Delete("/", handler.Wrap(h.clearHistory,
			handler.WithErrorHandler[struct{}](h.errorHandler)))
		r.Delete("/{id}", handler.Wrap(h.removeHistory,
			handler.WithErrorHandler[struct{}](h.errorHandler)))
	})
	r.Get("/stats", handler.Wrap(h.stats,
		handler.WithErrorHandler[struct{}](h.errorHandler)))

	return r
}
