package bind

import (
	"github.com/marquee-dev/marquee/pkg/behavior"
	"github.com/marquee-dev/marquee/pkg/protocol"
	"github.com/marquee-dev/marquee/pkg/server"
	"github.com/marquee-dev/marquee/pkg/toast"
	"github.com/marquee-dev/marquee/pkg/vdom"
)

// fieldBinding pairs the key a control's value travels under on the wire
// with the ref used to patch the control afterwards.
type fieldBinding struct {
	wireKey string
	ref     string
}

// Form returns the setup that wires the contact form. The first form in
// the tree is bound; its controls are classified into the four contact
// fields by name attribute, falling back to placeholder text for markup
// that never names its inputs. On submit the collected values are
// validated as a unit: a rejected submission keeps every typed value and
// focuses the first missing field, an accepted one clears all four
// controls. Either way the visitor is told what happened through a toast.
func Form(page *vdom.VNode) behavior.SetupFunc {
	return func() (int, error) {
		form := findForm(page)
		if form == nil {
			return 0, nil
		}
		bindings := bindFields(form)

		attach(form, vdom.OnSubmit(func(ctx server.Ctx, fields server.FormData) {
			submission := behavior.Submission{
				Name:    fields.Get(bindings[behavior.FieldName].wireKey),
				Email:   fields.Get(bindings[behavior.FieldEmail].wireKey),
				Subject: fields.Get(bindings[behavior.FieldSubject].wireKey),
				Message: fields.Get(bindings[behavior.FieldMessage].wireKey),
			}
			outcome := behavior.Evaluate(submission)

			if !outcome.Valid {
				toast.Error(ctx, outcome.Message)
				if ref := bindings[outcome.Missing[0]].ref; ref != "" {
					ctx.Apply(protocol.NewFocusPatch(ref))
				}
				ctx.Logger().Debug("contact submission rejected", "missing", len(outcome.Missing))
				return
			}

			toast.Success(ctx, outcome.Message)
			for _, f := range behavior.Fields {
				if ref := bindings[f].ref; ref != "" {
					ctx.Apply(protocol.NewSetValuePatch(ref, ""))
				}
			}
			ctx.Logger().Info("contact submission received")
		}))
		return 1, nil
	}
}

// findForm returns the first form element in document order, or nil.
func findForm(page *vdom.VNode) *vdom.VNode {
	var form *vdom.VNode
	page.Walk(func(n *vdom.VNode) bool {
		if n.Kind == vdom.KindElement && n.Tag == "form" {
			form = n
			return false
		}
		return true
	})
	return form
}

// bindFields scans a form's controls and maps each contact field to the
// control that carries it. The first matching control wins; controls
// that would serialize under an empty key are skipped because the client
// never sends them.
func bindFields(form *vdom.VNode) map[behavior.Field]fieldBinding {
	bindings := make(map[behavior.Field]fieldBinding, len(behavior.Fields))

	claim := func(f behavior.Field, n *vdom.VNode) {
		if _, taken := bindings[f]; taken {
			return
		}
		key := wireKey(n)
		if key == "" {
			return
		}
		bindings[f] = fieldBinding{wireKey: key, ref: claimRef(n, f)}
	}

	form.Walk(func(n *vdom.VNode) bool {
		if n.Kind != vdom.KindElement {
			return true
		}
		switch n.Tag {
		case "input":
			if f, ok := inputField(n); ok {
				claim(f, n)
			}
		case "textarea":
			claim(behavior.FieldMessage, n)
		}
		return true
	})
	return bindings
}

// wireKey mirrors how the client serializes a control: under its name
// attribute, or its placeholder when no name is set.
func wireKey(n *vdom.VNode) string {
	if name := n.AttrText("name"); name != "" {
		return name
	}
	return n.AttrText("placeholder")
}

// claimRef returns the control's ref, assigning the field name as its
// key first when the control has no addressable identity of its own.
func claimRef(n *vdom.VNode, f behavior.Field) string {
	if ref := n.Ref(); ref != "" {
		return ref
	}
	n.Key = string(f)
	return n.Key
}

// inputField classifies a text input into one of the contact fields,
// by name attribute first and placeholder text second.
func inputField(n *vdom.VNode) (behavior.Field, bool) {
	switch n.AttrText("name") {
	case "name":
		return behavior.FieldName, true
	case "email":
		return behavior.FieldEmail, true
	case "subject":
		return behavior.FieldSubject, true
	}
	switch n.AttrText("placeholder") {
	case behavior.PlaceholderName:
		return behavior.FieldName, true
	case behavior.PlaceholderEmail:
		return behavior.FieldEmail, true
	case behavior.PlaceholderSubject:
		return behavior.FieldSubject, true
	}
	return "", false
}
