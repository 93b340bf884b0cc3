package behavior

// MenuState is which side of the toggle a collapsible panel is on.
type MenuState int

const (
	// MenuClosed means the panel is hidden.
	MenuClosed MenuState = iota

	// MenuOpen means the panel is shown as an open overlay.
	MenuOpen
)

// String returns the state name for logging.
func (s MenuState) String() string {
	if s == MenuOpen {
		return "open"
	}
	return "closed"
}

// MenuGroup is the attribute group of a collapsible panel: the class set
// that jointly expresses "open overlay" and the marker set that expresses
// "hidden". A panel is only ever fully in one of the two states; the group
// is applied and removed in lockstep, never class by class.
type MenuGroup struct {
	// Shown is the open-overlay class set (display mode, layout direction,
	// positioning, width, background, shadow, padding).
	Shown []string

	// Hidden is the marker set for the closed state.
	Hidden []string
}

// DefaultMenuGroup matches the stock mobile navigation overlay: a flex
// column pinned directly under a 4rem header, full width, on a white
// shadowed card.
var DefaultMenuGroup = MenuGroup{
	Shown:  []string{"flex", "flex-col", "absolute", "top-16", "left-0", "w-full", "bg-white", "shadow-md", "p-4"},
	Hidden: []string{"hidden"},
}

// StateOf classifies a class list. A list is MenuOpen only when every Shown
// class is present and no Hidden marker is; everything else, including a
// partially applied group, counts as MenuClosed, so the next toggle
// normalizes it to the full open form.
func (g MenuGroup) StateOf(classes []string) MenuState {
	has := make(map[string]bool, len(classes))
	for _, c := range classes {
		has[c] = true
	}
	for _, c := range g.Hidden {
		if has[c] {
			return MenuClosed
		}
	}
	for _, c := range g.Shown {
		if !has[c] {
			return MenuClosed
		}
	}
	return MenuOpen
}

// contains reports whether needle is in the group's combined class sets.
func (g MenuGroup) contains(needle string) bool {
	for _, c := range g.Shown {
		if c == needle {
			return true
		}
	}
	for _, c := range g.Hidden {
		if c == needle {
			return true
		}
	}
	return false
}

// Panel tracks one collapsible panel's class list through toggle
// activations. Both the open and the closed class lists are fixed at
// construction, so every toggle swaps between exactly two complete forms
// and a double toggle restores the authored list verbatim.
type Panel struct {
	group  MenuGroup
	state  MenuState
	open   []string
	closed []string
}

// NewPanel builds a Panel from the class list authored in the markup.
// When the authored list is closed (the common case) it is kept byte for
// byte as the closed form; an authored open list is kept as the open form.
// Stray group classes on a mixed list are stripped so the panel can never
// re-enter a partially toggled state.
func NewPanel(group MenuGroup, authored []string) *Panel {
	p := &Panel{group: group, state: group.StateOf(authored)}

	if p.state == MenuOpen {
		p.open = copyClasses(authored)
		p.closed = group.swap(authored, group.Shown, group.Hidden)
	} else {
		p.closed = group.swap(authored, group.Shown, nil)
		p.open = group.swap(p.closed, group.Hidden, group.Shown)
	}
	return p
}

// swap removes every class in strip from list and appends any missing
// class from add, preserving the order of everything it does not touch.
func (g MenuGroup) swap(list, strip, add []string) []string {
	drop := make(map[string]bool, len(strip))
	for _, c := range strip {
		drop[c] = true
	}

	out := make([]string, 0, len(list)+len(add))
	seen := make(map[string]bool, len(list))
	for _, c := range list {
		if drop[c] {
			continue
		}
		out = append(out, c)
		seen[c] = true
	}
	for _, c := range add {
		if !seen[c] {
			out = append(out, c)
		}
	}
	return out
}

// State returns the panel's current side of the toggle.
func (p *Panel) State() MenuState {
	return p.state
}

// Classes returns the panel's current full class list.
func (p *Panel) Classes() []string {
	if p.state == MenuOpen {
		return copyClasses(p.open)
	}
	return copyClasses(p.closed)
}

// Toggle flips the panel to the other state and returns the complete class
// list for that state. The returned list is always one of the two fixed
// forms; callers apply it as a single class attribute write so the panel
// never renders an intermediate mix.
func (p *Panel) Toggle() (MenuState, []string) {
	if p.state == MenuOpen {
		p.state = MenuClosed
	} else {
		p.state = MenuOpen
	}
	return p.state, p.Classes()
}

func copyClasses(classes []string) []string {
	out := make([]string, len(classes))
	copy(out, classes)
	return out
}
