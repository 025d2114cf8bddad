package components

import (
	"time"

	"github.com/nfrund/reviewboard/internal/domain"
	"github.com/nfrund/reviewboard/internal/reviews"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"
)

// Routes the panel talks to.
const (
	PanelPath = "/reviews/panel"
	RetryPath = "/reviews/retry"

	panelID = "reviews-panel"
)

// Visible strings.
const (
	LoadingText  = reviews.LoadingText
	EmptyHeading = reviews.EmptyHeading
	RetryLabel   = reviews.RetryLabel

	reviewMaxWidth = "max-width: 300px"
)

// PanelOptions controls locale dependent rendering.
type PanelOptions struct {
	Location *time.Location
	Locale   language.Tag
}

// Panel renders the review area for a view state. It is a pure function of
// its arguments. While loading, the panel asks htmx to fetch its settled
// replacement as soon as it is swapped in.
func Panel(state reviews.State, opts PanelOptions) g.Node {
	switch state.Phase() {
	case reviews.PhaseLoading:
		return h.Div(
			h.ID(panelID),
			h.Class("reviews-table"),
			g.Attr("data-phase", reviews.PhaseLoading.String()),
			hx.Get(PanelPath),
			hx.Trigger("load"),
			hx.Swap("outerHTML"),
			h.Div(h.Class("loading"), g.Text(LoadingText)),
		)
	case reviews.PhaseError:
		return panelShell(reviews.PhaseError,
			h.Div(
				h.Class("error"),
				g.Text(state.Err),
				h.Button(
					h.Type("button"),
					h.Class("retry-button"),
					hx.Post(RetryPath),
					hx.Target("#"+panelID),
					hx.Swap("outerHTML"),
					g.Text(RetryLabel),
				),
			),
		)
	case reviews.PhaseEmpty:
		return panelShell(reviews.PhaseEmpty,
			h.Div(
				h.Class("empty-state"),
				h.H3(g.Text(EmptyHeading)),
				h.P(g.Text(reviews.EmptyHint)),
				h.Div(h.Class("empty-icon"), g.Text("💬")),
			),
		)
	default:
		return panelShell(reviews.PhaseReady,
			reviewTable(state.Reviews, opts),
			h.P(h.Class("summary"), g.Text(countLabel(len(state.Reviews), opts.Locale))),
		)
	}
}

func panelShell(phase reviews.Phase, children ...g.Node) g.Node {
	return h.Div(
		h.ID(panelID),
		h.Class("reviews-table"),
		g.Attr("data-phase", phase.String()),
		g.Group(children),
	)
}

func reviewTable(list []domain.Review, opts PanelOptions) g.Node {
	return h.Table(
		h.THead(
			h.Tr(
				h.Th(g.Text("User Name")),
				h.Th(g.Text("Product")),
				h.Th(g.Text("Review")),
				h.Th(g.Text("Timestamp")),
				h.Th(g.Text("Contact")),
			),
		),
		h.TBody(
			g.Map(list, func(r domain.Review) g.Node {
				return ReviewRow(r, opts.Location)
			}),
		),
	)
}

// ReviewRow renders one review. The review body is width-limited for display only.
func ReviewRow(r domain.Review, loc *time.Location) g.Node {
	return h.Tr(
		g.Attr("data-key", r.ID.String()),
		h.Td(h.Strong(g.Text(r.UserName))),
		h.Td(g.Text(r.ProductName)),
		h.Td(h.Class("review-body"), h.Style(reviewMaxWidth), g.Text(r.ProductReview)),
		h.Td(h.Class("timestamp"), h.Style("white-space: nowrap"), g.Text(reviews.FormatTimestamp(r.CreatedAt, loc))),
		h.Td(h.Class("contact"), h.Style("color: #666; font-size: 0.9em; font-family: monospace"), g.Text(r.ContactNumber)),
	)
}

func countLabel(n int, locale language.Tag) string {
	if locale == language.Und {
		locale = language.AmericanEnglish
	}
	p := message.NewPrinter(locale)
	if n == 1 {
		return p.Sprintf("Showing %d review", n)
	}
	return p.Sprintf("Showing %d reviews", n)
}
