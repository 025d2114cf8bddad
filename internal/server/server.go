package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/reviewboard/internal/app"
	"github.com/nfrund/reviewboard/internal/config"
	"github.com/nfrund/reviewboard/internal/metrics"
	appmw "github.com/nfrund/reviewboard/internal/middleware"
	"github.com/nfrund/reviewboard/internal/module"
	"github.com/nfrund/reviewboard/internal/pubsub"
	"github.com/nfrund/reviewboard/internal/registry"
	"github.com/nfrund/reviewboard/internal/rendering"
	"github.com/nfrund/reviewboard/internal/reviewclient"
	"github.com/nfrund/reviewboard/internal/reviews"
	"github.com/nfrund/reviewboard/web"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E        *echo.Echo
	Cfg      *config.Config
	Registry *registry.Registry

	bridge  *pubsub.WatermillBridge
	modules []module.Module
	cancel  context.CancelFunc
}

// Option configures a Server.
type Option func(*serverOptions)

type serverOptions struct {
	fetcher reviews.Fetcher
	version string
}

// WithFetcher replaces the HTTP review client, mainly for tests.
func WithFetcher(f reviews.Fetcher) Option {
	return func(o *serverOptions) { o.fetcher = f }
}

// WithVersion sets the version reported in the backend User-Agent.
func WithVersion(v string) Option {
	return func(o *serverOptions) { o.version = v }
}

// New wires every dependency, registers the modules and mounts their routes.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Server, error) {
	if err := cfg.RequireSessionSecret(); err != nil {
		return nil, err
	}

	o := serverOptions{version: "dev"}
	for _, opt := range opts {
		opt(&o)
	}

	fetcher := o.fetcher
	if fetcher == nil {
		client, err := NewReviewClient(cfg, o.version)
		if err != nil {
			return nil, err
		}
		fetcher = client
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	setupErrorHandling(e)

	e.Use(middleware.RequestID())
	e.Use(appmw.Logger)
	e.Use(requestLogger())
	e.Use(middleware.Recover())

	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))

	e.StaticFS("/static", echo.MustSubFS(web.FS, "static"))

	renderer := rendering.NewUniversalRenderer()
	e.Renderer = renderer

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics.MustRegister(promRegistry)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{})))

	bridge := pubsub.NewWatermillBridge()

	reg := registry.New(cfg)
	registry.Set(reg, registry.ReviewFetcherKey, fetcher)
	registry.Set[pubsub.Publisher](reg, registry.PublisherKey, bridge)
	registry.Set[pubsub.Subscriber](reg, registry.SubscriberKey, bridge)
	registry.Set[rendering.Renderer](reg, registry.RendererKey, renderer)

	s := &Server{
		E:        e,
		Cfg:      cfg,
		Registry: reg,
		bridge:   bridge,
		modules: app.NewModules(app.Dependencies{
			Config:     cfg,
			Fetcher:    fetcher,
			Publisher:  bridge,
			Subscriber: bridge,
			Renderer:   renderer,
		}),
	}

	ctx, s.cancel = context.WithCancel(ctx)
	if err := s.bootModules(ctx); err != nil {
		s.cancel()
		_ = bridge.Close()
		return nil, err
	}
	return s, nil
}

// NewReviewClient builds the backend client with the standard middleware chain.
func NewReviewClient(cfg *config.Config, version string) (*reviewclient.Client, error) {
	client, err := reviewclient.New(cfg.BackendBaseURL,
		reviewclient.WithTimeout(cfg.FetchTimeout),
		reviewclient.WithMiddleware(
			reviewclient.UserAgent("reviewboard", version),
			reviewclient.Logging(slog.Default().With("component", "review_client")),
			reviewclient.Metrics(),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create review client: %w", err)
	}
	return client, nil
}

// requestLogger logs one line per request through slog.
func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.Round(time.Microsecond),
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				slog.Warn("Request failed", append(attrs, "error", v.Error)...)
				return nil
			}
			slog.Debug("Request handled", attrs...)
			return nil
		},
	})
}
