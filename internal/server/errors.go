package server

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	appmw "github.com/nfrund/reviewboard/internal/middleware"
)

// setupErrorHandling installs an error handler that logs unhandled errors with
// a stack trace and hides their details from the client.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			if he.Internal != nil {
				appmw.FromContext(c.Request().Context()).Warn("HTTP error", "status", he.Code, "error", he.Internal)
			}
			e.DefaultHTTPErrorHandler(err, c)
			return
		}

		appmw.FromContext(c.Request().Context()).Error("Internal Server Error (Unhandled)",
			"error", err.Error(),
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"stack_trace", string(debug.Stack()),
		)
		e.DefaultHTTPErrorHandler(echo.NewHTTPError(http.StatusInternalServerError), c)
	}
}
