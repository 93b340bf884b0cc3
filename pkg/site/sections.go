package site

import (
	"github.com/marquee-dev/marquee/pkg/behavior"
	"github.com/marquee-dev/marquee/pkg/bind"
	"github.com/marquee-dev/marquee/pkg/vdom"
)

// navItems are the section links shown in both the desktop nav and the
// mobile panel.
var navItems = []struct {
	label string
	href  string
}{
	{"Home", "#home"},
	{"Services", "#services"},
	{"Portfolio", "#portfolio"},
	{"About", "#about"},
	{"Contact", "#contact"},
}

func (s *Site) build() *vdom.VNode {
	return vdom.Div(vdom.Class("min-h-screen bg-gray-50 text-gray-900"),
		s.header(),
		vdom.Main(
			s.hero(),
			s.services(),
			s.portfolio(),
			s.about(),
			s.contact(),
		),
		s.footer(),
	)
}

func (s *Site) header() *vdom.VNode {
	return vdom.Header(vdom.Class("sticky top-0 z-50 h-16 bg-white shadow-sm"),
		vdom.Div(vdom.Class("mx-auto flex h-full max-w-5xl items-center justify-between px-4"),
			vdom.A(vdom.Href("#home"), vdom.Class("text-xl font-bold"), s.name),
			desktopNav(),
			vdom.Button(
				vdom.Key(bind.TriggerKey),
				vdom.Class("md:hidden text-2xl"),
				vdom.AriaLabel("Toggle navigation"),
				vdom.AriaControls("mobile-menu"),
				"☰",
			),
		),
		mobilePanel(),
	)
}

func desktopNav() *vdom.VNode {
	links := make([]*vdom.VNode, 0, len(navItems))
	for _, item := range navItems {
		links = append(links, vdom.A(
			vdom.Href(item.href),
			vdom.Class("text-gray-600 hover:text-gray-900"),
			item.label,
		))
	}
	return vdom.Nav(vdom.Class("hidden md:flex items-center gap-6"), links)
}

// mobilePanel starts hidden; the menu feature swaps its class list
// wholesale on toggle, so only the links carry their own styling.
func mobilePanel() *vdom.VNode {
	links := make([]*vdom.VNode, 0, len(navItems))
	for _, item := range navItems {
		links = append(links, vdom.A(
			vdom.Href(item.href),
			vdom.Class("block py-2 text-gray-700 hover:text-gray-900"),
			item.label,
		))
	}
	return vdom.Nav(
		vdom.Key(bind.PanelKey),
		vdom.ID("mobile-menu"),
		vdom.Class("hidden"),
		links,
	)
}

func (s *Site) hero() *vdom.VNode {
	return vdom.Section(vdom.ID("home"), vdom.Class("bg-white"),
		vdom.Div(vdom.Class("mx-auto max-w-5xl px-4 py-24 text-center"),
			vdom.H1(vdom.Class("text-5xl font-bold tracking-tight"),
				"Websites that work as hard as you do"),
			vdom.P(vdom.Class("mx-auto mt-6 max-w-2xl text-lg text-gray-600"),
				"We design, build, and launch fast marketing sites for small teams. No templates, no bloat."),
			vdom.Div(vdom.Class("mt-10 flex justify-center gap-4"),
				vdom.Button(vdom.Class("rounded bg-blue-600 px-6 py-3 font-semibold text-white hover:bg-blue-700"),
					"Get Started"),
				vdom.Button(vdom.Class("rounded border border-gray-300 px-6 py-3 font-semibold hover:bg-gray-100"),
					"View Work"),
			),
		),
	)
}

func (s *Site) services() *vdom.VNode {
	return vdom.Section(vdom.ID("services"), vdom.Class("py-20"),
		vdom.Div(vdom.Class("mx-auto max-w-5xl px-4"),
			vdom.H2(vdom.Class("text-center text-3xl font-bold"), "What we do"),
			vdom.Div(vdom.Class("mt-12 grid gap-8 md:grid-cols-3"),
				serviceCard("Design",
					"Clean, fast layouts built around your message, not a template."),
				serviceCard("Development",
					"Hand-built pages that load quickly and hold up under real traffic."),
				serviceCard("Launch & care",
					"Hosting, analytics, and small fixes handled long after go-live."),
			),
			vdom.Div(vdom.Class("mt-12 text-center"),
				vdom.P(vdom.Class("text-gray-600"), "Have a project in mind?"),
				vdom.Button(vdom.Class("mt-4 rounded bg-blue-600 px-6 py-3 font-semibold text-white hover:bg-blue-700"),
					"Get a Quote"),
			),
		),
	)
}

func serviceCard(title, blurb string) *vdom.VNode {
	return vdom.Div(vdom.Class("rounded-lg bg-white p-6 shadow-sm"),
		vdom.H3(vdom.Class("text-xl font-semibold"), title),
		vdom.P(vdom.Class("mt-2 text-gray-600"), blurb),
	)
}

func (s *Site) portfolio() *vdom.VNode {
	projects := []struct {
		name  string
		blurb string
	}{
		{"Harbor & Main", "Storefront and brand refresh for a waterfront retailer."},
		{"Fieldnote", "Marketing site and docs hub for a field-research startup."},
		{"Copper Kitchen", "Menu, hours, and reservations for a neighborhood bistro."},
	}

	cards := make([]*vdom.VNode, 0, len(projects))
	for _, p := range projects {
		cards = append(cards, vdom.Div(vdom.Class("rounded-lg bg-white p-6 shadow-sm"),
			vdom.H3(vdom.Class("text-xl font-semibold"), p.name),
			vdom.P(vdom.Class("mt-2 text-gray-600"), p.blurb),
		))
	}

	return vdom.Section(vdom.ID("portfolio"), vdom.Class("bg-white py-20"),
		vdom.Div(vdom.Class("mx-auto max-w-5xl px-4"),
			vdom.H2(vdom.Class("text-center text-3xl font-bold"), "Selected work"),
			vdom.Div(vdom.Class("mt-12 grid gap-8 md:grid-cols-3"), cards),
		),
	)
}

func (s *Site) about() *vdom.VNode {
	return vdom.Section(vdom.ID("about"), vdom.Class("py-20"),
		vdom.Div(vdom.Class("mx-auto max-w-3xl px-4 text-center"),
			vdom.H2(vdom.Class("text-3xl font-bold"), "About us"),
			vdom.P(vdom.Class("mt-6 text-lg text-gray-600"),
				"We are a small studio that has shipped sites for retail, hospitality, and software teams. We keep projects small and timelines short, and we stay reachable after launch."),
		),
	)
}

// contact renders the form with novalidate so submissions always reach
// the behavior layer; validation outcomes and acknowledgements are its
// job, not the browser's.
func (s *Site) contact() *vdom.VNode {
	inputClass := vdom.Class("w-full rounded border border-gray-300 px-4 py-3")

	return vdom.Section(vdom.ID("contact"), vdom.Class("bg-white py-20"),
		vdom.Div(vdom.Class("mx-auto max-w-xl px-4"),
			vdom.H2(vdom.Class("text-center text-3xl font-bold"), "Get in touch"),
			vdom.P(vdom.Class("mt-4 text-center text-gray-600"),
				"Tell us what you are building and we will get back to you within two business days."),
			vdom.Form(vdom.Class("mt-10 space-y-4"), vdom.Novalidate(),
				vdom.Input(vdom.Type("text"), vdom.Name("name"),
					vdom.Placeholder(behavior.PlaceholderName), inputClass),
				vdom.Input(vdom.Type("email"), vdom.Name("email"),
					vdom.Placeholder(behavior.PlaceholderEmail), inputClass),
				vdom.Input(vdom.Type("text"), vdom.Name("subject"),
					vdom.Placeholder(behavior.PlaceholderSubject), inputClass),
				vdom.Textarea(vdom.Name("message"), vdom.Rows(5),
					vdom.Placeholder("Your Message"), inputClass),
				vdom.Button(vdom.Type("submit"),
					vdom.Class("w-full rounded bg-blue-600 px-6 py-3 font-semibold text-white hover:bg-blue-700"),
					"Send Message"),
			),
		),
	)
}

func (s *Site) footer() *vdom.VNode {
	return vdom.Footer(vdom.Class("bg-gray-900 py-8 text-center text-sm text-gray-400"),
		vdom.P("© 2026 "+s.name+". All rights reserved."),
	)
}
