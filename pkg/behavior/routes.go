package behavior

import (
	"sort"
	"strings"
)

// Well-known section identifiers of the stock page.
const (
	SectionContact   = "contact"
	SectionPortfolio = "portfolio"
)

// Route is the scroll destination attached to a recognized button label.
type Route struct {
	// Section is the identifier of the section to scroll to.
	Section string
}

// RouteTable maps exact visible button labels to routes. The table is
// fixed at construction and never mutated at runtime.
type RouteTable map[string]Route

// DefaultRoutes returns the recognized label set of the stock page:
// call-to-action buttons route to the contact section, the portfolio
// teaser routes to the portfolio section.
func DefaultRoutes() RouteTable {
	return RouteTable{
		"Get Started": {Section: SectionContact},
		"Get a Quote": {Section: SectionContact},
		"View Work":   {Section: SectionPortfolio},
	}
}

// Lookup resolves a button's visible text to a route. The text is trimmed
// of surrounding whitespace, then compared exactly and case-sensitively;
// there is no fuzzy or localized matching. Unrecognized labels get no
// route.
func (t RouteTable) Lookup(text string) (Route, bool) {
	r, ok := t[strings.TrimSpace(text)]
	return r, ok
}

// Labels returns the recognized labels in sorted order, for reports.
func (t RouteTable) Labels() []string {
	labels := make([]string, 0, len(t))
	for l := range t {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}
