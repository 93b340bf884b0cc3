package vdom

import (
	"fmt"
	"strings"
)

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement  VKind = iota // <div>, <button>, etc.
	KindText                  // Plain text node
	KindFragment              // Grouping without wrapper
	KindRaw                   // Raw HTML (dangerous)
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// VNode is a node of the server-side element tree.
type VNode struct {
	Kind     VKind    // Node type
	Tag      string   // Element tag name (e.g., "div")
	Props    Props    // Attributes and event handlers
	Children []*VNode // Child nodes
	Key      string   // Stable key, rendered as data-key
	Text     string   // For KindText and KindRaw
	HID      string   // Hydration ID (assigned during render)
}

// Props holds attributes and event handlers.
type Props map[string]any

// IsInteractive returns true if this node has event handlers and needs a HID.
func (v *VNode) IsInteractive() bool {
	if v == nil || v.Kind != KindElement {
		return false
	}
	for key := range v.Props {
		if strings.HasPrefix(key, "on") {
			return true
		}
	}
	return false
}

// Ref returns the best patch address for this node: stable key, then
// hydration ID, then element id. Empty when the node has none, in which
// case it cannot be targeted by patches.
func (v *VNode) Ref() string {
	if v == nil {
		return ""
	}
	if v.Key != "" {
		return v.Key
	}
	if v.HID != "" {
		return v.HID
	}
	return v.AttrText("id")
}

// AttrText returns the node's attribute value rendered as a string.
// Missing attributes and non-element nodes return "".
func (v *VNode) AttrText(key string) string {
	if v == nil || v.Kind != KindElement {
		return ""
	}
	val, ok := v.Props[key]
	if !ok || val == nil {
		return ""
	}
	switch t := val.(type) {
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", t)
	}
}

// ClassList returns the node's classes split on whitespace.
func (v *VNode) ClassList() []string {
	return strings.Fields(v.AttrText("class"))
}

// TextContent returns the concatenated text of the node and its descendants,
// in document order. Raw nodes are excluded; their content is opaque markup.
func (v *VNode) TextContent() string {
	var b strings.Builder
	v.appendText(&b)
	return b.String()
}

func (v *VNode) appendText(b *strings.Builder) {
	if v == nil {
		return
	}
	if v.Kind == KindText {
		b.WriteString(v.Text)
		return
	}
	for _, child := range v.Children {
		child.appendText(b)
	}
}

// Walk visits the node and its descendants in document order. The visit
// stops early when fn returns false. Walk reports whether the full tree was
// visited.
func (v *VNode) Walk(fn func(*VNode) bool) bool {
	if v == nil {
		return true
	}
	if !fn(v) {
		return false
	}
	for _, child := range v.Children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler represents an event handler.
type EventHandler struct {
	Event   string // "onclick", "oninput", etc.
	Handler any    // Function to call
}
