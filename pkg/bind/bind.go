package bind

import (
	"context"
	"log/slog"

	"github.com/marquee-dev/marquee/pkg/behavior"
	"github.com/marquee-dev/marquee/pkg/vdom"
)

// Feature names used in the setup report.
const (
	FeatureMenu    = "menu"
	FeatureScroll  = "scroll"
	FeatureForm    = "form"
	FeatureButtons = "buttons"
)

// Apply wires the stock behavior set onto a prepared page tree: the
// mobile menu toggle, smooth fragment scrolling, the contact form, and
// label-routed buttons. It then assigns hydration IDs so every bound
// element is addressable, and returns the setup report.
//
// The page passed in is the ready document, so Apply runs the full
// two-phase lifecycle itself: register, signal ready, run. The setups
// execute in a fixed order for determinism but none depends on another
// having run.
func Apply(ctx context.Context, page *vdom.VNode, logger *slog.Logger) (behavior.Report, error) {
	if logger == nil {
		logger = slog.Default()
	}

	registry := behavior.NewRegistry()
	registry.Register(FeatureMenu, Menu(page))
	registry.Register(FeatureScroll, Scroll(page))
	registry.Register(FeatureForm, Form(page))
	registry.Register(FeatureButtons, Buttons(page, behavior.DefaultRoutes()))

	logger.Info("behavior setup starting", "features", 4)

	registry.SignalReady()
	report, err := registry.Run(ctx)

	vdom.AssignHIDs(page, vdom.NewHIDGenerator())

	logger.Info("behavior setup complete",
		"handlers", report.Handlers(),
		"inactive", report.Inactive(),
	)
	return report, err
}

// attach adds an event handler prop to a node, making it interactive.
func attach(n *vdom.VNode, eh vdom.EventHandler) {
	if n.Props == nil {
		n.Props = make(vdom.Props)
	}
	n.Props[eh.Event] = eh.Handler
}

// sectionIndex is the set of element ids captured at scan time. Fragments
// resolve against this snapshot, not against the live tree.
type sectionIndex map[string]bool

func indexSections(page *vdom.VNode) sectionIndex {
	index := make(sectionIndex)
	page.Walk(func(n *vdom.VNode) bool {
		if id := n.AttrText("id"); id != "" {
			index[id] = true
		}
		return true
	})
	return index
}

func (idx sectionIndex) contains(id string) bool { return idx[id] }
