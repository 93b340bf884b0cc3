// Package vdom provides the element tree Marquee pages are built from.
//
// A VNode tree is the server's in-memory representation of the page. It is
// rendered to HTML exactly once per page mount; behaviors then mutate the
// live DOM through patches, so there is no diffing and no re-render.
//
// # Core Types
//
// VNode represents elements, text, fragments, and raw HTML. Props holds
// attributes and event handlers. Attr and EventHandler are used to build
// Props.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H1(Text("Title")),
//	    P(Text("Content")),
//	    OnClick(handler),
//	)
//
// # Refs
//
// Interactive elements receive hydration IDs (AssignHIDs) that link server
// handlers to client DOM nodes. Elements that behaviors must address across
// renders carry stable keys (Key), which render as data-key attributes and
// survive markup reordering. Ref reports the best available address for a
// node: stable key, then hydration ID, then element id.
package vdom
