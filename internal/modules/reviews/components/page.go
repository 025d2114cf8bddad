package components

import (
	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"
)

// Title is the document and header title.
const Title = "WhatsApp Review Collector"

const htmxScript = "https://unpkg.com/htmx.org@2.0.4"

// Page renders the complete review board document around a panel.
func Page(panel g.Node) g.Node {
	return c.HTML5(c.HTML5Props{
		Title:    Title,
		Language: "en",
		Head: []g.Node{
			h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
			h.Link(h.Rel("stylesheet"), h.Href("/static/styles.css")),
			h.Script(h.Src(htmxScript), h.Defer()),
		},
		Body: []g.Node{
			h.Div(
				h.Class("container"),
				h.Div(
					h.Class("header"),
					h.Div(h.Class("whatsapp-icon"), g.Text("📱")),
					h.H1(g.Text(Title)),
					h.P(g.Text("Product reviews collected via WhatsApp messages")),
				),
				panel,
			),
		},
	})
}
