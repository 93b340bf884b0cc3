package behavior

import "strings"

// ScrollDecision is the outcome of activating a fragment-style link: either
// scroll smoothly to a section or do nothing at all. There is no fallback
// jump; an unresolvable fragment is simply inert.
type ScrollDecision struct {
	// Scroll reports whether a scroll should happen.
	Scroll bool

	// Target is the section identifier to scroll to when Scroll is true.
	Target string
}

// NoScroll is the inert decision.
var NoScroll = ScrollDecision{}

// IsFragmentHref reports whether href is a fragment-style link, i.e. an
// in-page reference rather than a navigation to another document. Only
// these links are bound at setup time; everything else keeps the host's
// default navigation.
func IsFragmentHref(href string) bool {
	return strings.HasPrefix(href, "#")
}

// Fragment extracts the section identifier from a fragment-style href.
// The second result is false for non-fragment hrefs and for the bare "#"
// self reference.
func Fragment(href string) (string, bool) {
	if !IsFragmentHref(href) {
		return "", false
	}
	id := href[1:]
	if id == "" {
		return "", false
	}
	return id, true
}

// ResolveFragment decides what clicking a fragment link does. exists
// answers whether a section identifier is present in the document; it is
// consulted only for well-formed fragments. Empty fragments, the bare
// marker, and unknown targets all resolve to NoScroll.
func ResolveFragment(href string, exists func(id string) bool) ScrollDecision {
	id, ok := Fragment(href)
	if !ok {
		return NoScroll
	}
	if exists == nil || !exists(id) {
		return NoScroll
	}
	return ScrollDecision{Scroll: true, Target: id}
}
