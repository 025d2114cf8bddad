// Package reviews holds the review board view model: the tri-state
// loading/error/ready state, its transitions and the lifecycle of a live view.
package reviews

import (
	"context"

	"github.com/nfrund/reviewboard/internal/domain"
)

// FetchFailureMessage is shown for every kind of fetch failure.
const FetchFailureMessage = "Failed to fetch reviews. Make sure the backend server is running on port 8000."

// Text shared by every front-end.
const (
	LoadingText  = "Loading reviews..."
	EmptyHeading = "No reviews yet"
	EmptyHint    = `Send a "Hi" to your WhatsApp Sandbox number to start collecting reviews!`
	RetryLabel   = "Retry"
)

// Fetcher retrieves the review collection. Implementations perform a single
// attempt and report failures as errors; the view never inspects them further.
type Fetcher interface {
	FetchReviews(ctx context.Context) ([]domain.Review, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context) ([]domain.Review, error)

// FetchReviews calls f(ctx).
func (f FetcherFunc) FetchReviews(ctx context.Context) ([]domain.Review, error) {
	return f(ctx)
}

// Phase is what the view currently displays.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseError
	PhaseEmpty
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhaseEmpty:
		return "empty"
	case PhaseReady:
		return "ready"
	default:
		return "unknown"
	}
}

// State is the view model.
type State struct {
	Reviews []domain.Review
	Loading bool
	Err     string
}

// Initial is the state of a view that has not finished its first fetch.
func Initial() State {
	return State{Reviews: []domain.Review{}, Loading: true}
}

// Begin marks a fetch as in flight. The error is cleared in the same step so
// loading and error are never shown together.
func (s State) Begin() State {
	s.Loading = true
	s.Err = ""
	return s
}

// Succeed replaces the collection wholesale.
func (s State) Succeed(reviews []domain.Review) State {
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return State{Reviews: reviews}
}

// Fail records a fetch failure and keeps the previous collection.
func (s State) Fail() State {
	s.Loading = false
	s.Err = FetchFailureMessage
	return s
}

// Phase applies the render precedence: loading, then error, then empty, then ready.
func (s State) Phase() Phase {
	switch {
	case s.Loading:
		return PhaseLoading
	case s.Err != "":
		return PhaseError
	case len(s.Reviews) == 0:
		return PhaseEmpty
	default:
		return PhaseReady
	}
}
