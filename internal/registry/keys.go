package registry

import (
	"github.com/nfrund/reviewboard/internal/pubsub"
	"github.com/nfrund/reviewboard/internal/rendering"
	"github.com/nfrund/reviewboard/internal/reviews"
)

// Core service keys shared by every module.
const (
	ReviewFetcherKey Key[reviews.Fetcher]    = "core.review_fetcher"
	PublisherKey     Key[pubsub.Publisher]   = "core.publisher"
	SubscriberKey    Key[pubsub.Subscriber]  = "core.subscriber"
	RendererKey      Key[rendering.Renderer] = "core.renderer"
)
