package bind

import (
	"github.com/marquee-dev/marquee/pkg/behavior"
	"github.com/marquee-dev/marquee/pkg/protocol"
	"github.com/marquee-dev/marquee/pkg/server"
	"github.com/marquee-dev/marquee/pkg/vdom"
)

// Buttons returns the setup that routes call-to-action buttons to their
// sections. Buttons are matched by visible label against the route
// table; labels the table does not know, including the form's submit
// button and the menu trigger, are passed over so other features keep
// exclusive ownership of them.
func Buttons(page *vdom.VNode, table behavior.RouteTable) behavior.SetupFunc {
	return func() (int, error) {
		count := 0
		page.Walk(func(n *vdom.VNode) bool {
			if n.Kind != vdom.KindElement || n.Tag != "button" {
				return true
			}
			route, ok := table.Lookup(n.TextContent())
			if !ok {
				return true
			}

			target := route.Section
			attach(n, vdom.OnClick(func(ctx server.Ctx) {
				ctx.Apply(protocol.NewScrollToPatch(target, protocol.ScrollSmooth))
			}))
			count++
			return true
		})
		return count, nil
	}
}
