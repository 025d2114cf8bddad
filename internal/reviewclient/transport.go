package reviewclient

import (
	"net"
	"net/http"
	"runtime"
	"time"
)

// Responder is a callback that receives an http request and returns a response.
type Responder func(*http.Request) (*http.Response, error)

// MiddlewareFunc wraps a Responder with extra behaviour.
type MiddlewareFunc func(next Responder) Responder

// chain is an http.RoundTripper that runs every request through the
// configured middleware before handing it to the base transport.
type chain struct {
	base       http.RoundTripper
	middleware []MiddlewareFunc
}

// RoundTrip executes a single HTTP transaction.
func (c *chain) RoundTrip(req *http.Request) (*http.Response, error) {
	h := Responder(c.base.RoundTrip)
	for i := len(c.middleware) - 1; i >= 0; i-- {
		h = c.middleware[i](h)
	}
	return h(req)
}

// DefaultPooledTransport returns a new http.Transport with similar default
// values to http.DefaultTransport. The review client talks to a single origin
// for the lifetime of the process, so connections are pooled.
func DefaultPooledTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
		MaxIdleConnsPerHost:   runtime.GOMAXPROCS(0) + 1,
	}
}
