package rendering

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

func TestRenderComponent(t *testing.T) {
	r := NewUniversalRenderer()

	out, err := r.RenderComponent(context.Background(), h.P(h.Class("note"), g.Text("a < b")))
	require.NoError(t, err)
	assert.Equal(t, `<p class="note">a &lt; b</p>`, string(out))

	_, err = r.RenderComponent(context.Background(), "plain string")
	assert.ErrorContains(t, err, "unsupported component type")

	_, err = r.RenderComponent(context.Background(), nil)
	assert.Error(t, err)
}

func TestRenderPage(t *testing.T) {
	e := echo.New()
	r := NewUniversalRenderer()
	e.Renderer = r

	e.GET("/page", func(c echo.Context) error {
		return r.RenderPage(c, http.StatusAccepted, h.Div(g.Text("hello")))
	})
	e.GET("/render", func(c echo.Context) error {
		return c.Render(http.StatusOK, "", h.Span(g.Text("via echo")))
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/page", nil))
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, echo.MIMETextHTMLCharsetUTF8, rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "<div>hello</div>", rec.Body.String())

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/render", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<span>via echo</span>", rec.Body.String())
}
