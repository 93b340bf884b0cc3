package bind

import (
	"testing"

	"github.com/marquee-dev/marquee/pkg/behavior"
	"github.com/marquee-dev/marquee/pkg/protocol"
	"github.com/marquee-dev/marquee/pkg/server"
	"github.com/marquee-dev/marquee/pkg/vdom"
)

func buttonsPage() *vdom.VNode {
	return vdom.Div(
		vdom.Button("Get Started"),
		vdom.Button("View Work"),
		vdom.Button("  Get a Quote  "),
		vdom.Button(vdom.Span("View"), vdom.Span(" Work")),
		vdom.Button(vdom.Type("submit"), "Send Message"),
		vdom.Button("Learn More"),
		vdom.Button(vdom.Key(TriggerKey), "☰"),
	)
}

func TestButtonsBindRecognizedLabels(t *testing.T) {
	page := buttonsPage()

	n, err := Buttons(page, behavior.DefaultRoutes())()
	if err != nil {
		t.Fatalf("setup error = %v", err)
	}
	// Two plain labels, one padded, one split across spans.
	if n != 4 {
		t.Errorf("setup registered %d handlers, want 4", n)
	}

	for _, label := range []string{"Send Message", "Learn More", "☰"} {
		btn := findButton(page, label)
		if btn == nil {
			t.Fatalf("button %q not found", label)
		}
		if _, bound := btn.Props["onclick"]; bound {
			t.Errorf("button %q got a click handler", label)
		}
	}
}

func TestButtonsScrollToRoute(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Get Started", behavior.SectionContact},
		{"View Work", behavior.SectionPortfolio},
		{"Get a Quote", behavior.SectionContact},
	}

	page := buttonsPage()
	if _, err := Buttons(page, behavior.DefaultRoutes())(); err != nil {
		t.Fatalf("setup error = %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			tc := server.NewTestCtx()
			clickHandler(t, findButton(page, tt.label))(tc)

			patches := tc.Patches()
			if len(patches) != 1 {
				t.Fatalf("got %d patches, want 1", len(patches))
			}
			p := patches[0]
			if p.Op != protocol.PatchScrollTo {
				t.Errorf("op = %v, want ScrollTo", p.Op)
			}
			if p.Ref != tt.want {
				t.Errorf("ref = %q, want %q", p.Ref, tt.want)
			}
			if p.Behavior != protocol.ScrollSmooth {
				t.Errorf("behavior = %v, want smooth", p.Behavior)
			}
		})
	}
}

func TestButtonsNestedLabel(t *testing.T) {
	page := vdom.Div(vdom.Button(vdom.Span("View"), vdom.Span(" Work")))
	if _, err := Buttons(page, behavior.DefaultRoutes())(); err != nil {
		t.Fatalf("setup error = %v", err)
	}

	tc := server.NewTestCtx()
	clickHandler(t, findButton(page, "View Work"))(tc)

	patches := tc.Patches()
	if len(patches) != 1 || patches[0].Ref != behavior.SectionPortfolio {
		t.Errorf("patches = %+v, want one ScrollTo %q", patches, behavior.SectionPortfolio)
	}
}

func TestButtonsEmptyTable(t *testing.T) {
	n, err := Buttons(buttonsPage(), behavior.RouteTable{})()
	if err != nil {
		t.Fatalf("setup error = %v", err)
	}
	if n != 0 {
		t.Errorf("setup registered %d handlers, want 0", n)
	}
}
