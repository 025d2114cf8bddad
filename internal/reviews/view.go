package reviews

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/nfrund/reviewboard/internal/pubsub"
)

var closedChan = func() chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}()

// View is a live review board view. It owns one State and mutates it only from
// its lifecycle operations and from the continuation of the fetch it started.
//
// A View is safe for concurrent use.
type View struct {
	id      string
	fetcher Fetcher
	pub     pubsub.Publisher
	logger  *slog.Logger

	mu     sync.Mutex
	state  State
	seq    uint64
	active bool
	cancel context.CancelFunc
	ctx    context.Context
	done   chan struct{} // closed when the most recent attempt finishes
}

// Option configures a View.
type Option func(*View)

// WithID sets the identifier reported in events and logs.
func WithID(id string) Option {
	return func(v *View) { v.id = id }
}

// WithPublisher publishes a FetchCompleted event for every applied result.
func WithPublisher(p pubsub.Publisher) Option {
	return func(v *View) { v.pub = p }
}

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(v *View) { v.logger = l }
}

// NewView creates an inactive view in the initial loading state.
func NewView(fetcher Fetcher, opts ...Option) *View {
	v := &View{
		fetcher: fetcher,
		state:   Initial(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ID returns the view identifier.
func (v *View) ID() string {
	return v.id
}

// State returns a copy of the current view model.
func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	s := v.state
	s.Reviews = slices.Clone(s.Reviews)
	return s
}

// Active reports whether the view is between Activate and Deactivate.
func (v *View) Active() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.active
}

// Activate runs the initialization fetch once per activation. Calling it on an
// active view does nothing and returns the completion channel of the attempt
// in flight (or an already closed channel).
func (v *View) Activate() <-chan struct{} {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.active {
		if v.done == nil {
			return closedChan
		}
		return v.done
	}
	v.active = true
	v.ctx, v.cancel = context.WithCancel(context.Background())
	return v.startLocked()
}

// Fetch starts one attempt to load the review collection and returns a channel
// closed once that attempt has finished. The loading flag is set and any error
// is cleared before Fetch returns. Fetch on an inactive view is ignored.
func (v *View) Fetch() <-chan struct{} {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.active {
		return closedChan
	}
	return v.startLocked()
}

// Retry is the user-triggered form of Fetch.
func (v *View) Retry() <-chan struct{} {
	return v.Fetch()
}

// Deactivate tears the view down. An attempt still in flight is canceled and
// its result is never applied.
func (v *View) Deactivate() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.active {
		return
	}
	v.active = false
	v.cancel()
}

// Wait blocks until no attempt is in flight or ctx is done.
func (v *View) Wait(ctx context.Context) error {
	for {
		v.mu.Lock()
		done := v.done
		v.mu.Unlock()

		if done == nil {
			return nil
		}
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}

		// A newer attempt may have started while we waited.
		v.mu.Lock()
		latest := v.done
		v.mu.Unlock()
		if latest == done {
			return nil
		}
	}
}

func (v *View) startLocked() <-chan struct{} {
	v.seq++
	v.state = v.state.Begin()
	done := make(chan struct{})
	v.done = done
	go v.run(v.ctx, v.seq, done)
	return done
}

func (v *View) run(ctx context.Context, seq uint64, done chan struct{}) {
	defer close(done)

	start := time.Now()
	reviews, err := v.fetcher.FetchReviews(ctx)
	elapsed := time.Since(start)

	v.mu.Lock()
	if !v.active || seq != v.seq {
		active := v.active
		v.mu.Unlock()
		v.logger.Debug("Discarding superseded fetch result", "view_id", v.id, "seq", seq, "active", active)
		return
	}
	if err != nil {
		v.state = v.state.Fail()
	} else {
		v.state = v.state.Succeed(reviews)
	}
	phase := v.state.Phase()
	count := len(v.state.Reviews)
	v.mu.Unlock()

	event := FetchCompleted{
		ViewID:      v.id,
		Count:       count,
		DurationMS:  elapsed.Milliseconds(),
		CompletedAt: time.Now().UTC(),
	}
	switch phase {
	case PhaseError:
		event.Outcome = OutcomeFailed
		event.Error = err.Error()
		v.logger.Error("Error fetching reviews", "view_id", v.id, "error", err)
	case PhaseEmpty:
		event.Outcome = OutcomeEmpty
	default:
		event.Outcome = OutcomeReady
	}

	if v.pub != nil {
		if perr := pubsub.Publish(context.Background(), v.pub, TopicFetchCompleted, v.id, event); perr != nil {
			v.logger.Warn("Failed to publish fetch event", "view_id", v.id, "error", perr)
		}
	}
}
