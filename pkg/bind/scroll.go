package bind

import (
	"github.com/marquee-dev/marquee/pkg/behavior"
	"github.com/marquee-dev/marquee/pkg/protocol"
	"github.com/marquee-dev/marquee/pkg/server"
	"github.com/marquee-dev/marquee/pkg/vdom"
)

// Scroll returns the setup that wires smooth scrolling for in-page
// anchors. Every anchor whose href is a fragment reference gets a click
// handler; hrefs that point at other documents are left alone so normal
// navigation still works. Each fragment is resolved against the set of
// section ids captured at scan time, and anchors whose target is bare
// or unknown keep their handler but produce no patch when clicked.
func Scroll(page *vdom.VNode) behavior.SetupFunc {
	return func() (int, error) {
		sections := indexSections(page)

		count := 0
		page.Walk(func(n *vdom.VNode) bool {
			if n.Kind != vdom.KindElement || n.Tag != "a" {
				return true
			}
			href := n.AttrText("href")
			if !behavior.IsFragmentHref(href) {
				return true
			}

			decision := behavior.ResolveFragment(href, sections.contains)
			attach(n, vdom.OnClick(func(ctx server.Ctx) {
				if !decision.Scroll {
					return
				}
				ctx.Apply(protocol.NewScrollToPatch(decision.Target, protocol.ScrollSmooth))
			}))
			count++
			return true
		})
		return count, nil
	}
}
