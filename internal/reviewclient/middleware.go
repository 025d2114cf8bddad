package reviewclient

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/nfrund/reviewboard/internal/metrics"
)

// UserAgent sets the User-Agent header to "<app>/<version>".
func UserAgent(app, version string) MiddlewareFunc {
	userAgent := fmt.Sprintf("%s/%s", app, version)
	return func(next Responder) Responder {
		return func(req *http.Request) (*http.Response, error) {
			req.Header.Set("User-Agent", userAgent)
			return next(req)
		}
	}
}

// Logging logs every backend round trip at debug level and failures at warn.
func Logging(logger *slog.Logger) MiddlewareFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next Responder) Responder {
		return func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next(req)
			if err != nil {
				logger.WarnContext(req.Context(), "Backend request failed",
					"method", req.Method,
					"url", req.URL.String(),
					"duration", time.Since(start),
					"error", err,
				)
				return resp, err
			}
			logger.DebugContext(req.Context(), "Backend request completed",
				"method", req.Method,
				"url", req.URL.String(),
				"status", resp.StatusCode,
				"duration", time.Since(start),
			)
			return resp, nil
		}
	}
}

// Metrics records request duration and status in prometheus.
func Metrics() MiddlewareFunc {
	return func(next Responder) Responder {
		return func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next(req)
			status := 0
			if err == nil && resp != nil {
				status = resp.StatusCode
			}
			metrics.ObserveBackendRequest(req.Method, req.URL.Path, status, start)
			return resp, err
		}
	}
}
