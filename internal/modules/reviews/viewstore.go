package reviews

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/nfrund/reviewboard/internal/metrics"
	"github.com/nfrund/reviewboard/internal/reviews"
)

// ViewFactory builds an inactive view for a session view ID.
type ViewFactory func(id string) *reviews.View

type viewEntry struct {
	view     *reviews.View
	lastSeen time.Time
}

// ViewStore keeps one live view per browser session. Views idle for longer
// than the TTL are deactivated and dropped by Sweep.
type ViewStore struct {
	factory ViewFactory
	ttl     time.Duration
	now     func() time.Time
	logger  *slog.Logger

	mu     sync.Mutex
	views  map[string]*viewEntry
	closed bool
}

// NewViewStore creates an empty store.
func NewViewStore(ttl time.Duration, factory ViewFactory) *ViewStore {
	return &ViewStore{
		factory: factory,
		ttl:     ttl,
		now:     time.Now,
		logger:  slog.Default().With("component", "review_view_store"),
		views:   make(map[string]*viewEntry),
	}
}

// ErrStoreClosed is returned once the store has been closed.
var ErrStoreClosed = errors.New("review view store is closed")

// Mount replaces whatever view is stored under id with a freshly activated one.
// The previous view, if any, is torn down first.
func (s *ViewStore) Mount(id string) (*reviews.View, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrStoreClosed
	}
	v := s.factory(id)
	old := s.views[id]
	s.views[id] = &viewEntry{view: v, lastSeen: s.now()}
	s.updateGaugeLocked()
	s.mu.Unlock()

	if old != nil {
		old.view.Deactivate()
	}
	v.Activate()
	return v, nil
}

// Acquire returns the view stored under id, mounting a new one when none
// exists. mounted reports whether the view was just mounted and therefore
// already runs its initialization fetch.
func (s *ViewStore) Acquire(id string) (v *reviews.View, mounted bool, err error) {
	if v, ok := s.Lookup(id); ok {
		return v, false, nil
	}
	v, err = s.Mount(id)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// Lookup returns the view stored under id and marks it as recently used.
func (s *ViewStore) Lookup(id string) (*reviews.View, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.views[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = s.now()
	return e.view, true
}

// Remove tears down and forgets the view stored under id.
func (s *ViewStore) Remove(id string) bool {
	s.mu.Lock()
	e, ok := s.views[id]
	if ok {
		delete(s.views, id)
		s.updateGaugeLocked()
	}
	s.mu.Unlock()

	if ok {
		e.view.Deactivate()
	}
	return ok
}

// Len returns the number of stored views.
func (s *ViewStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.views)
}

// Sweep deactivates every view idle for longer than the TTL and returns how
// many were removed.
func (s *ViewStore) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	var expired []*reviews.View
	for id, e := range s.views {
		if e.lastSeen.Before(cutoff) {
			expired = append(expired, e.view)
			delete(s.views, id)
		}
	}
	if len(expired) > 0 {
		s.updateGaugeLocked()
	}
	s.mu.Unlock()

	for _, v := range expired {
		v.Deactivate()
	}
	if len(expired) > 0 {
		s.logger.Debug("Swept idle review views", "count", len(expired))
	}
	return len(expired)
}

// Run sweeps every interval until ctx is done, then closes the store.
func (s *ViewStore) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.Close()
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Close deactivates every view. Later calls to Mount fail with ErrStoreClosed.
func (s *ViewStore) Close() {
	s.mu.Lock()
	views := s.views
	s.views = make(map[string]*viewEntry)
	s.closed = true
	s.updateGaugeLocked()
	s.mu.Unlock()

	for _, e := range views {
		e.view.Deactivate()
	}
}

func (s *ViewStore) updateGaugeLocked() {
	metrics.ActiveViews.Set(float64(len(s.views)))
}
