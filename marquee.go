// Package marquee is the public API for the Marquee page-behavior runtime.
//
// Marquee serves marketing pages whose behavior lives on the server: the
// page is built as a vdom tree, rendered to HTML, and a thin JavaScript
// client relays DOM events over a WebSocket while the server answers with
// binary DOM patches. The App type bundles page rendering, the session
// server, the embedded client and static file serving behind one
// http.Handler.
//
//	app, err := marquee.New(site.New(), marquee.Config{
//		Addr:   ":8080",
//		Static: marquee.StaticConfig{Dir: "public", Prefix: "/static/"},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	log.Fatal(app.Run(""))
package marquee

import (
	"github.com/marquee-dev/marquee/pkg/server"
	"github.com/marquee-dev/marquee/pkg/vdom"
)

// Ctx is the per-event context passed to behavior handlers.
type Ctx = server.Ctx

// Session is one live client connection.
type Session = server.Session

// Event is a client event enriched with session context.
type Event = server.Event

// FormData provides access to submitted form fields.
type FormData = server.FormData

// Middleware wraps event dispatch around every handler.
type Middleware = server.Middleware

// Handler is the normalized event handler signature.
type Handler = server.Handler

// VNode is a node of the server-side element tree.
type VNode = vdom.VNode

// Props holds element attributes and event handlers.
type Props = vdom.Props
