// Package site builds the stock marketing page: a single-page agency
// site whose header, sections, and contact form carry the markup the
// behavior layer binds to. Site.Page is a server.PageFunc; every call
// produces a fresh, fully wired tree, so handler closures and menu
// state are never shared between sessions.
package site
