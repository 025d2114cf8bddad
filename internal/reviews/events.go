package reviews

import (
	"time"

	"github.com/nfrund/reviewboard/internal/pubsub"
)

// Fetch outcomes carried by FetchCompleted.
const (
	OutcomeReady  = "ready"
	OutcomeEmpty  = "empty"
	OutcomeFailed = "failed"
)

// FetchCompleted is published whenever a view applies the result of a fetch.
type FetchCompleted struct {
	ViewID      string    `json:"view_id"`
	Outcome     string    `json:"outcome"`
	Count       int       `json:"count"`
	Error       string    `json:"error,omitempty"`
	DurationMS  int64     `json:"duration_ms"`
	CompletedAt time.Time `json:"completed_at"`
}

// TopicFetchCompleted carries FetchCompleted events.
var TopicFetchCompleted = pubsub.NewEvent[FetchCompleted](
	"reviews.fetch.completed",
	"A review view finished fetching the review collection",
)
