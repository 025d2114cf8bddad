package reviews

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nfrund/reviewboard/internal/metrics"
	"github.com/nfrund/reviewboard/internal/pubsub"
	"github.com/nfrund/reviewboard/internal/reviews"
)

// StatusReport summarizes the fetch outcomes seen since startup.
type StatusReport struct {
	Fetches         int        `json:"fetches"`
	Ready           int        `json:"ready"`
	Empty           int        `json:"empty"`
	Failed          int        `json:"failed"`
	LastOutcome     string     `json:"last_outcome,omitempty"`
	LastCount       int        `json:"last_count"`
	LastError       string     `json:"last_error,omitempty"`
	LastCompletedAt *time.Time `json:"last_completed_at,omitempty"`
	ActiveViews     int        `json:"active_views"`
}

// StatusTracker consumes fetch completion events.
type StatusTracker struct {
	subscriber pubsub.Subscriber
	logger     *slog.Logger

	mu     sync.RWMutex
	report StatusReport
}

// NewStatusTracker creates a tracker reading from subscriber.
func NewStatusTracker(subscriber pubsub.Subscriber) *StatusTracker {
	return &StatusTracker{
		subscriber: subscriber,
		logger:     slog.Default().With("component", "review_status_subscriber"),
	}
}

// Start subscribes to fetch completions and blocks until ctx is done.
func (t *StatusTracker) Start(ctx context.Context) {
	t.logger.Info("Starting review status subscriber")

	err := pubsub.Subscribe(ctx, t.subscriber, reviews.TopicFetchCompleted, t.Record)
	if err != nil {
		t.logger.Error("Failed to subscribe to fetch completions", "error", err)
		return
	}

	<-ctx.Done()
	t.logger.Info("Review status subscriber shutting down")
}

// Record folds one fetch completion into the report.
func (t *StatusTracker) Record(_ context.Context, e reviews.FetchCompleted) error {
	metrics.ObserveFetchOutcome(e.Outcome)

	t.mu.Lock()
	defer t.mu.Unlock()

	t.report.Fetches++
	switch e.Outcome {
	case reviews.OutcomeReady:
		t.report.Ready++
	case reviews.OutcomeEmpty:
		t.report.Empty++
	case reviews.OutcomeFailed:
		t.report.Failed++
	}

	// Events may arrive out of order.
	if t.report.LastCompletedAt != nil && e.CompletedAt.Before(*t.report.LastCompletedAt) {
		return nil
	}
	at := e.CompletedAt
	t.report.LastCompletedAt = &at
	t.report.LastOutcome = e.Outcome
	t.report.LastCount = e.Count
	t.report.LastError = e.Error
	return nil
}

// Report returns a snapshot.
func (t *StatusTracker) Report() StatusReport {
	t.mu.RLock()
	defer t.mu.RUnlock()

	r := t.report
	if r.LastCompletedAt != nil {
		at := *r.LastCompletedAt
		r.LastCompletedAt = &at
	}
	return r
}
