package reviews

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/reviewboard/internal/middleware"
	"github.com/nfrund/reviewboard/internal/modules/reviews/components"
	"github.com/nfrund/reviewboard/internal/rendering"
	"github.com/nfrund/reviewboard/internal/reviews"
)

const (
	// SessionName is the cookie session holding the view binding.
	SessionName = "reviewboard"

	sessionKeyViewID = "view_id"

	defaultPanelWait = 30 * time.Second
)

// Handler serves the review board page and its htmx fragments.
type Handler struct {
	store     *ViewStore
	status    *StatusTracker
	renderer  rendering.Renderer
	panelOpts components.PanelOptions
	panelWait time.Duration
}

// NewHandler creates a review board handler.
func NewHandler(store *ViewStore, status *StatusTracker, r rendering.Renderer, opts components.PanelOptions) *Handler {
	return &Handler{
		store:     store,
		status:    status,
		renderer:  r,
		panelOpts: opts,
		panelWait: defaultPanelWait,
	}
}

// PageGet mounts a fresh view for the session and renders the full page.
// Reloading the page tears down the previous view.
func (h *Handler) PageGet(c echo.Context) error {
	id, err := h.sessionViewID(c)
	if err != nil {
		return err
	}
	v, err := h.store.Mount(id)
	if err != nil {
		return storeError(err)
	}
	return h.renderer.RenderPage(c, http.StatusOK, components.Page(components.Panel(v.State(), h.panelOpts)))
}

// PanelGet waits for the session's in-flight fetch to settle and renders the panel.
func (h *Handler) PanelGet(c echo.Context) error {
	v, _, err := h.sessionView(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.panelWait)
	defer cancel()
	if err := v.Wait(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		// The client went away.
		return nil
	}
	return h.renderer.RenderPage(c, http.StatusOK, components.Panel(v.State(), h.panelOpts))
}

// RetryPost starts a new fetch and returns the loading panel.
func (h *Handler) RetryPost(c echo.Context) error {
	v, mounted, err := h.sessionView(c)
	if err != nil {
		return err
	}
	// A freshly mounted view is already fetching.
	if !mounted {
		v.Retry()
	}
	middleware.FromContext(c.Request().Context()).Info("Review fetch retried", "view_id", v.ID())
	return h.renderer.RenderPage(c, http.StatusOK, components.Panel(v.State(), h.panelOpts))
}

// StatusGet reports aggregated fetch outcomes as JSON.
func (h *Handler) StatusGet(c echo.Context) error {
	report := h.status.Report()
	report.ActiveViews = h.store.Len()
	return c.JSON(http.StatusOK, report)
}

// sessionView returns the session's view, mounting one when the session has
// none stored.
func (h *Handler) sessionView(c echo.Context) (*reviews.View, bool, error) {
	id, err := h.sessionViewID(c)
	if err != nil {
		return nil, false, err
	}
	v, mounted, err := h.store.Acquire(id)
	if err != nil {
		return nil, false, storeError(err)
	}
	return v, mounted, nil
}

func storeError(err error) error {
	if errors.Is(err, ErrStoreClosed) {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Review board is shutting down").SetInternal(err)
	}
	return err
}

// sessionViewID returns the view ID bound to the session, binding a new one
// when the session has none.
func (h *Handler) sessionViewID(c echo.Context) (string, error) {
	sess, err := session.Get(SessionName, c)
	if err != nil && sess == nil {
		return "", err
	}
	// A cookie that no longer decodes yields a new session; keep going with it.
	if id, ok := sess.Values[sessionKeyViewID].(string); ok && id != "" {
		return id, nil
	}

	id := uuid.NewString()
	sess.Values[sessionKeyViewID] = id
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return "", err
	}
	return id, nil
}
