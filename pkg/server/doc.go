// Package server hosts live sessions over WebSocket connections.
//
// A session is created per connection after a binary handshake and lives
// until the connection drops or the server shuts down. Sessions are
// stateless from the client's point of view: there is no resume, no
// acknowledgement tracking and no reconnect negotiation. A client that
// loses its connection reloads the page and handshakes again.
//
// Each session runs three goroutines:
//
//   - ReadLoop: reads frames from the WebSocket and queues events
//   - WriteLoop: sends heartbeat pings
//   - EventLoop: dispatches events to handlers and flushes patches
//
// Handlers are collected from the mounted page tree. Every element prop
// whose key starts with "on" and whose value is a function becomes a
// handler, keyed by the element's ref and the event name ("h3_onclick").
// When an event arrives, the matching handler runs with a Ctx; patches the
// handler applies through the Ctx are flushed to the client as a single
// frame once the handler returns.
//
// Basic usage:
//
//	srv, err := server.New(server.DefaultServerConfig().WithCSRFSecret(secret))
//	if err != nil { ... }
//	srv.SetPage(func(path string) (*vdom.VNode, error) {
//		return buildPage(path)
//	})
//	mux.Handle("/_marquee/ws", srv.WebSocketHandler())
//	mux.Handle("/_marquee/client.js", srv.ClientHandler())
//
// The server does not own an http.Server; the application composes the
// handlers into its own router and calls Shutdown during teardown.
package server
