package vdom

import (
	"reflect"
	"testing"
)

func TestIsInteractive(t *testing.T) {
	handler := func() {}

	tests := []struct {
		name string
		node *VNode
		want bool
	}{
		{"nil", nil, false},
		{"plain_div", Div(), false},
		{"with_onclick", Button(OnClick(handler)), true},
		{"with_onsubmit", Form(OnSubmit(handler)), true},
		{"attr_only", Div(Class("card")), false},
		{"text_node", Text("hi"), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.node.IsInteractive(); got != tc.want {
				t.Errorf("IsInteractive() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRefPrefersStableKey(t *testing.T) {
	node := Button(Key("menu-trigger"), ID("hamburger"))
	node.HID = "h7"

	if got := node.Ref(); got != "menu-trigger" {
		t.Errorf("Ref() = %q, want key", got)
	}
}

func TestRefFallsBackToHIDThenID(t *testing.T) {
	node := Button(ID("hamburger"))
	node.HID = "h7"
	if got := node.Ref(); got != "h7" {
		t.Errorf("Ref() = %q, want HID", got)
	}

	node.HID = ""
	if got := node.Ref(); got != "hamburger" {
		t.Errorf("Ref() = %q, want id", got)
	}

	if got := Div().Ref(); got != "" {
		t.Errorf("Ref() on unaddressable node = %q, want empty", got)
	}
}

func TestAttrText(t *testing.T) {
	node := Input(Type("text"), Placeholder("Your Name"), Required())

	if got := node.AttrText("placeholder"); got != "Your Name" {
		t.Errorf("AttrText(placeholder) = %q", got)
	}
	if got := node.AttrText("required"); got != "true" {
		t.Errorf("AttrText(required) = %q", got)
	}
	if got := node.AttrText("missing"); got != "" {
		t.Errorf("AttrText(missing) = %q, want empty", got)
	}
}

func TestClassList(t *testing.T) {
	node := Nav(Class("hidden"))
	if got := node.ClassList(); !reflect.DeepEqual(got, []string{"hidden"}) {
		t.Errorf("ClassList() = %v", got)
	}

	multi := Div(Class("flex", "flex-col", "p-4"))
	want := []string{"flex", "flex-col", "p-4"}
	if got := multi.ClassList(); !reflect.DeepEqual(got, want) {
		t.Errorf("ClassList() = %v, want %v", got, want)
	}

	if got := Div().ClassList(); len(got) != 0 {
		t.Errorf("ClassList() on classless node = %v", got)
	}
}

func TestTextContent(t *testing.T) {
	node := Button(
		Span(Class("icon")),
		Text(" Get Started "),
		Strong(Text("now")),
	)

	if got := node.TextContent(); got != " Get Started now" {
		t.Errorf("TextContent() = %q", got)
	}
}

func TestTextContentSkipsRaw(t *testing.T) {
	node := Div(Raw("<b>markup</b>"), Text("visible"))
	if got := node.TextContent(); got != "visible" {
		t.Errorf("TextContent() = %q, want %q", got, "visible")
	}
}

func TestWalkOrderAndStop(t *testing.T) {
	tree := Div(
		H1(Text("a")),
		P(Text("b")),
	)

	var tags []string
	tree.Walk(func(n *VNode) bool {
		if n.Kind == KindElement {
			tags = append(tags, n.Tag)
		}
		return true
	})
	if !reflect.DeepEqual(tags, []string{"div", "h1", "p"}) {
		t.Errorf("walk order = %v", tags)
	}

	visited := 0
	completed := tree.Walk(func(n *VNode) bool {
		visited++
		return visited < 2
	})
	if completed {
		t.Error("Walk() = true after early stop")
	}
	if visited != 2 {
		t.Errorf("visited = %d, want 2", visited)
	}
}

func TestVKindString(t *testing.T) {
	tests := []struct {
		kind VKind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{KindFragment, "Fragment"},
		{KindRaw, "Raw"},
		{VKind(99), "Unknown"},
	}

	for _, tc := range tests {
		if got := tc.kind.String(); got != tc.want {
			t.Errorf("VKind(%d).String() = %q, want %q", tc.kind, got, tc.want)
		}
	}
}
