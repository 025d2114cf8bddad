// Package reviews serves the review board: a server rendered page whose panel
// follows one live view per browser session.
package reviews

import (
	"context"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/reviewboard/internal/middleware"
	"github.com/nfrund/reviewboard/internal/module"
	"github.com/nfrund/reviewboard/internal/modules/reviews/components"
	"github.com/nfrund/reviewboard/internal/pubsub"
	"github.com/nfrund/reviewboard/internal/registry"
	"github.com/nfrund/reviewboard/internal/rendering"
	"github.com/nfrund/reviewboard/internal/reviews"
	"golang.org/x/text/language"
)

// Registry keys published by this module.
const (
	ViewStoreKey registry.Key[*ViewStore]     = "reviews.view_store"
	StatusKey    registry.Key[*StatusTracker] = "reviews.status"
)

// ReviewsModule implements the module.Module interface for the review board.
type ReviewsModule struct {
	module.BaseModule
	deps    Dependencies
	store   *ViewStore
	status  *StatusTracker
	handler *Handler
	cancel  context.CancelFunc
}

// Dependencies holds all the services that the ReviewsModule requires to operate.
type Dependencies struct {
	Fetcher            reviews.Fetcher
	Publisher          pubsub.Publisher
	Subscriber         pubsub.Subscriber
	Renderer           rendering.Renderer
	Location           *time.Location
	Locale             language.Tag
	SessionIdleTTL     time.Duration
	RetryRatePerMinute int
}

// New creates a new instance of the ReviewsModule, injecting its dependencies.
func New(deps Dependencies) *ReviewsModule {
	m := &ReviewsModule{deps: deps}
	m.store = NewViewStore(deps.SessionIdleTTL, func(id string) *reviews.View {
		return reviews.NewView(deps.Fetcher,
			reviews.WithID(id),
			reviews.WithPublisher(deps.Publisher),
			reviews.WithLogger(slog.Default().With("component", "review_view")),
		)
	})
	m.status = NewStatusTracker(deps.Subscriber)
	m.handler = NewHandler(m.store, m.status, deps.Renderer, components.PanelOptions{
		Location: deps.Location,
		Locale:   deps.Locale,
	})
	return m
}

// Name returns the module name.
func (m *ReviewsModule) Name() string {
	return "reviews"
}

// Register exposes the view store and status tracker to other modules.
func (m *ReviewsModule) Register(reg *registry.Registry) error {
	registry.Set(reg, ViewStoreKey, m.store)
	registry.Set(reg, StatusKey, m.status)
	return nil
}

// Boot starts the status subscriber and the idle view janitor, then mounts the routes.
func (m *ReviewsModule) Boot(ctx context.Context, g *echo.Group, reg *registry.Registry) error {
	ctx, m.cancel = context.WithCancel(ctx)

	if m.deps.Subscriber != nil {
		go m.status.Start(ctx)
	}
	if m.deps.SessionIdleTTL > 0 {
		go m.store.Run(ctx, sweepInterval(m.deps.SessionIdleTTL))
	}

	slog.Info("Booting ReviewsModule: Setting up routes...")
	g.GET("/", m.handler.PageGet)
	g.GET(components.PanelPath, m.handler.PanelGet)
	g.POST(components.RetryPath, m.handler.RetryPost, middleware.RateLimiter(m.deps.RetryRatePerMinute))
	g.GET("/api/reviews/status", m.handler.StatusGet)

	return nil
}

// Shutdown tears down every live view.
func (m *ReviewsModule) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down ReviewsModule...")
	if m.cancel != nil {
		m.cancel()
	}
	m.store.Close()
	return nil
}

func sweepInterval(ttl time.Duration) time.Duration {
	interval := ttl / 4
	if interval < time.Second {
		interval = time.Second
	}
	return interval
}
