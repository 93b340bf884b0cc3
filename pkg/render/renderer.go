package render

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/marquee-dev/marquee/pkg/vdom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables indented output with one element per line. Development
	// only; it inflates the payload and the added whitespace can shift
	// inline layout.
	Pretty bool

	// Indent is the string used per indentation level in pretty mode.
	// Defaults to two spaces.
	Indent string
}

// Renderer serializes vdom trees to HTML and collects the event handlers it
// encounters along the way. A Renderer is not safe for concurrent use; each
// session mounts with its own.
type Renderer struct {
	config   RendererConfig
	handlers map[string]any
}

// NewRenderer creates a Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{
		config:   config,
		handlers: make(map[string]any),
	}
}

// RenderToString renders a node tree to an HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a node tree to the given writer.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	return r.renderNode(w, node, 0)
}

// Handlers returns the event handlers collected during rendering, keyed
// "ref_event" (e.g. "menu-trigger_onclick", "h2_onsubmit"). The ref is the
// node's stable key, falling back to its hydration ID, then its element id,
// matching how the thin client addresses events.
func (r *Renderer) Handlers() map[string]any {
	return r.handlers
}

// Reset clears the collected handlers so the Renderer can be reused.
func (r *Renderer) Reset() {
	r.handlers = make(map[string]any)
}

// renderNode dispatches on node kind.
func (r *Renderer) renderNode(w io.Writer, node *vdom.VNode, depth int) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(w, node, depth)
	case vdom.KindText:
		return r.renderText(w, node)
	case vdom.KindFragment:
		return r.renderFragment(w, node, depth)
	case vdom.KindRaw:
		return r.renderRaw(w, node)
	default:
		return fmt.Errorf("unknown node kind: %d", node.Kind)
	}
}

// renderElement renders an HTML element with its attributes and children.
func (r *Renderer) renderElement(w io.Writer, node *vdom.VNode, depth int) error {
	tag := node.Tag

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, "<%s", tag); err != nil {
		return err
	}

	if err := r.renderAttributes(w, node); err != nil {
		return err
	}
	if err := r.renderMarkers(w, node); err != nil {
		return err
	}
	r.collectHandlers(node)

	// Void elements close here; any children were authoring mistakes and
	// are dropped.
	if vdom.IsVoidElement(tag) {
		if _, err := w.Write([]byte{'>'}); err != nil {
			return err
		}
		if r.config.Pretty {
			w.Write([]byte{'\n'})
		}
		return nil
	}

	if _, err := w.Write([]byte{'>'}); err != nil {
		return err
	}

	hasBlockChildren := len(node.Children) > 0 && !isInlineElement(tag)
	if r.config.Pretty && hasBlockChildren {
		w.Write([]byte{'\n'})
	}

	for _, child := range node.Children {
		if err := r.renderNode(w, child, depth+1); err != nil {
			return err
		}
	}

	if r.config.Pretty && hasBlockChildren {
		r.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, "</%s>", tag); err != nil {
		return err
	}
	if r.config.Pretty {
		w.Write([]byte{'\n'})
	}

	return nil
}

// renderText renders a text node with HTML escaping.
func (r *Renderer) renderText(w io.Writer, node *vdom.VNode) error {
	_, err := io.WriteString(w, escapeHTML(node.Text))
	return err
}

// renderFragment renders a fragment's children without a wrapper element.
func (r *Renderer) renderFragment(w io.Writer, node *vdom.VNode, depth int) error {
	for _, child := range node.Children {
		if err := r.renderNode(w, child, depth); err != nil {
			return err
		}
	}
	return nil
}

// renderRaw renders raw HTML without escaping.
func (r *Renderer) renderRaw(w io.Writer, node *vdom.VNode) error {
	_, err := io.WriteString(w, node.Text)
	return err
}

// renderAttributes renders the element's regular attributes in sorted order
// for deterministic output. Event handler props are skipped; renderMarkers
// turns those into data-on markers.
func (r *Renderer) renderAttributes(w io.Writer, node *vdom.VNode) error {
	if len(node.Props) == 0 {
		return nil
	}

	keys := make([]string, 0, len(node.Props))
	for key := range node.Props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := node.Props[key]

		if strings.HasPrefix(key, "on") && isHandler(value) {
			continue
		}

		if isBooleanAttr(key) {
			if on, ok := value.(bool); ok {
				if on {
					if _, err := fmt.Fprintf(w, " %s", key); err != nil {
						return err
					}
				}
				continue
			}
		}

		strValue := attrToString(value)
		if strValue == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, ` %s="%s"`, key, escapeAttr(strValue)); err != nil {
			return err
		}
	}

	return nil
}

// renderMarkers renders the wiring attributes the thin client reads: the
// stable key, the hydration ID, and one data-on marker per handler. Event
// names are sorted for deterministic output.
func (r *Renderer) renderMarkers(w io.Writer, node *vdom.VNode) error {
	if node.Key != "" {
		if _, err := fmt.Fprintf(w, ` data-key="%s"`, escapeAttr(node.Key)); err != nil {
			return err
		}
	}
	if node.HID != "" {
		if _, err := fmt.Fprintf(w, ` data-hid="%s"`, escapeAttr(node.HID)); err != nil {
			return err
		}
	}

	var events []string
	for key, value := range node.Props {
		if strings.HasPrefix(key, "on") && isHandler(value) {
			events = append(events, strings.ToLower(key[2:]))
		}
	}
	sort.Strings(events)
	for _, event := range events {
		if _, err := fmt.Fprintf(w, ` data-on-%s="true"`, event); err != nil {
			return err
		}
	}

	return nil
}

// collectHandlers stores the node's handlers under its ref. Nodes without a
// ref cannot be addressed by events, so their handlers are unreachable and
// dropped; AssignHIDs prevents that for any interactive node.
func (r *Renderer) collectHandlers(node *vdom.VNode) {
	ref := node.Ref()
	if ref == "" {
		return
	}
	for key, value := range node.Props {
		if strings.HasPrefix(key, "on") && isHandler(value) {
			r.handlers[ref+"_"+key] = value
		}
	}
}

// isHandler returns true if the prop value is a callable handler. String
// values under on* keys render as plain attributes instead.
func isHandler(value any) bool {
	if value == nil {
		return false
	}
	return reflect.TypeOf(value).Kind() == reflect.Func
}

// attrToString converts an attribute value to a string.
func attrToString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case int:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%d", v)
	case float64:
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// writeIndent writes indentation for pretty printing.
func (r *Renderer) writeIndent(w io.Writer, depth int) {
	for i := 0; i < depth; i++ {
		io.WriteString(w, r.config.Indent)
	}
}
