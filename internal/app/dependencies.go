package app

import (
	"github.com/nfrund/reviewboard/internal/config"
	"github.com/nfrund/reviewboard/internal/modules/reviews"
	"github.com/nfrund/reviewboard/internal/pubsub"
	"github.com/nfrund/reviewboard/internal/rendering"
	core "github.com/nfrund/reviewboard/internal/reviews"
)

// Dependencies holds the core services that are required by the application's modules.
// This struct is passed from the main application entrypoint to wire up the modules.
type Dependencies struct {
	Config     *config.Config
	Fetcher    core.Fetcher
	Publisher  pubsub.Publisher
	Subscriber pubsub.Subscriber
	Renderer   rendering.Renderer
}

// reviewsDeps creates the dependency struct for the reviews module.
func reviewsDeps(deps Dependencies) reviews.Dependencies {
	return reviews.Dependencies{
		Fetcher:            deps.Fetcher,
		Publisher:          deps.Publisher,
		Subscriber:         deps.Subscriber,
		Renderer:           deps.Renderer,
		Location:           deps.Config.Location(),
		Locale:             deps.Config.Locale(),
		SessionIdleTTL:     deps.Config.SessionIdleTTL,
		RetryRatePerMinute: deps.Config.RetryRatePerMinute,
	}
}
