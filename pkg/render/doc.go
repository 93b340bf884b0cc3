// Package render serializes vdom trees into the HTML Marquee serves.
//
// The renderer produces the one full-page document a session starts from;
// after that the page only changes through patches, so the markup written
// here must carry everything the thin client needs to wire itself up:
//
//   - data-key attributes for elements with stable keys
//   - data-hid attributes for elements that were assigned hydration IDs
//   - data-on-<event> markers telling the client which DOM events to relay
//   - a CSRF meta tag the client presents during the WebSocket handshake
//   - the thin client script tag
//
// Hydration IDs are not assigned here. The mount pipeline runs the binding
// scan and vdom.AssignHIDs over the tree first; by the time the renderer
// sees a node its refs are final. Rendering the same tree twice therefore
// produces the same bytes.
//
// # Basic Usage
//
// To render a node tree to a string:
//
//	r := render.NewRenderer(render.RendererConfig{})
//	html, err := r.RenderToString(node)
//
// Event handlers found on the tree are collected during rendering, keyed
// "ref_event" (e.g. "menu-trigger_onclick"), and retrieved via Handlers().
// The session installs that map as its dispatch table.
//
// # Full Pages
//
//	page := render.PageData{
//	    Body:      body,
//	    Title:     "Marquee",
//	    CSRFToken: token,
//	}
//	err := r.RenderPage(w, page)
//
// For handlers writing to an http.ResponseWriter, StreamingRenderer flushes
// the head before the body is serialized.
//
// # Security
//
// Text and attribute values are always escaped. Raw nodes bypass escaping
// and must only carry trusted markup.
package render
