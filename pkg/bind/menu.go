package bind

import (
	"github.com/marquee-dev/marquee/pkg/behavior"
	"github.com/marquee-dev/marquee/pkg/protocol"
	"github.com/marquee-dev/marquee/pkg/server"
	"github.com/marquee-dev/marquee/pkg/vdom"
)

// Stable keys the stock markup carries on the menu elements.
const (
	// TriggerKey addresses the hamburger button.
	TriggerKey = "menu-trigger"

	// PanelKey addresses the collapsible navigation panel.
	PanelKey = "mobile-menu"
)

// Menu returns the setup that wires the mobile navigation toggle. The
// trigger and panel are located by their stable keys; with either absent
// the feature stays inactive. Each click flips the panel between its two
// complete class forms with a single set-classes patch, so the panel is
// never rendered partially toggled and a double toggle restores the
// authored class list exactly.
func Menu(page *vdom.VNode) behavior.SetupFunc {
	return func() (int, error) {
		trigger := vdom.FindByKey(page, TriggerKey)
		panelNode := vdom.FindByKey(page, PanelKey)
		if trigger == nil || panelNode == nil {
			return 0, nil
		}

		panel := behavior.NewPanel(behavior.DefaultMenuGroup, panelNode.ClassList())
		panelRef := panelNode.Ref()

		attach(trigger, vdom.OnClick(func(ctx server.Ctx) {
			state, classes := panel.Toggle()
			ctx.Apply(protocol.NewSetClassesPatch(panelRef, classes))
			ctx.Logger().Debug("menu toggled", "state", state)
		}))
		return 1, nil
	}
}
