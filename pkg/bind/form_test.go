package bind

import (
	"encoding/json"
	"testing"

	"github.com/marquee-dev/marquee/pkg/behavior"
	"github.com/marquee-dev/marquee/pkg/protocol"
	"github.com/marquee-dev/marquee/pkg/server"
	"github.com/marquee-dev/marquee/pkg/toast"
	"github.com/marquee-dev/marquee/pkg/vdom"
)

func formPage() *vdom.VNode {
	return vdom.Div(
		vdom.Form(
			vdom.Input(vdom.Name("name"), vdom.Placeholder("Your Name")),
			vdom.Input(vdom.Name("email"), vdom.Placeholder("Your Email")),
			vdom.Input(vdom.Name("subject"), vdom.Placeholder("Subject")),
			vdom.Textarea(vdom.Name("message")),
			vdom.Button(vdom.Type("submit"), "Send Message"),
		),
	)
}

type toastPayload struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// decodeToast unpacks the detail of an Emit patch or fails the test.
func decodeToast(t *testing.T, p protocol.Patch) toastPayload {
	t.Helper()
	if p.Op != protocol.PatchEmit {
		t.Fatalf("op = %v, want Emit", p.Op)
	}
	if p.Key != toast.EventName {
		t.Fatalf("event = %q, want %q", p.Key, toast.EventName)
	}
	var payload toastPayload
	if err := json.Unmarshal([]byte(p.Value), &payload); err != nil {
		t.Fatalf("detail %q: %v", p.Value, err)
	}
	return payload
}

func TestFormSubmitAccepted(t *testing.T) {
	page := formPage()

	n, err := Form(page)()
	if err != nil {
		t.Fatalf("setup error = %v", err)
	}
	if n != 1 {
		t.Fatalf("setup registered %d handlers, want 1", n)
	}

	tc := server.NewTestCtx()
	submitHandler(t, findForm(page))(tc, server.NewFormData(map[string]string{
		"name":    "Ada",
		"email":   "ada@example.com",
		"subject": "Project inquiry",
		"message": "Hello there",
	}))

	patches := tc.Patches()
	if len(patches) != 5 {
		t.Fatalf("got %d patches, want 5", len(patches))
	}

	payload := decodeToast(t, patches[0])
	if payload.Kind != "success" {
		t.Errorf("kind = %q, want success", payload.Kind)
	}
	want := "Thank you Ada! Your message has been received. We'll get back to you at ada@example.com soon!"
	if payload.Message != want {
		t.Errorf("message = %q, want %q", payload.Message, want)
	}

	wantRefs := []string{"name", "email", "subject", "message"}
	for i, ref := range wantRefs {
		p := patches[i+1]
		if p.Op != protocol.PatchSetValue {
			t.Errorf("patch %d op = %v, want SetValue", i+1, p.Op)
		}
		if p.Ref != ref {
			t.Errorf("patch %d ref = %q, want %q", i+1, p.Ref, ref)
		}
		if p.Value != "" {
			t.Errorf("patch %d value = %q, want empty", i+1, p.Value)
		}
	}
}

func TestFormSubmitRejected(t *testing.T) {
	page := formPage()
	if _, err := Form(page)(); err != nil {
		t.Fatalf("setup error = %v", err)
	}

	tc := server.NewTestCtx()
	submitHandler(t, findForm(page))(tc, server.NewFormData(map[string]string{
		"name":    "Ada",
		"email":   "ada@example.com",
		"subject": "Project inquiry",
		"message": "",
	}))

	patches := tc.Patches()
	if len(patches) != 2 {
		t.Fatalf("got %d patches, want 2", len(patches))
	}

	payload := decodeToast(t, patches[0])
	if payload.Kind != "error" {
		t.Errorf("kind = %q, want error", payload.Kind)
	}
	if payload.Message != behavior.FillAllMessage {
		t.Errorf("message = %q, want %q", payload.Message, behavior.FillAllMessage)
	}

	if patches[1].Op != protocol.PatchFocus {
		t.Errorf("op = %v, want Focus", patches[1].Op)
	}
	if patches[1].Ref != "message" {
		t.Errorf("focus ref = %q, want %q", patches[1].Ref, "message")
	}
}

// A rejected submission must not touch the typed values.
func TestFormRejectionKeepsValues(t *testing.T) {
	page := formPage()
	if _, err := Form(page)(); err != nil {
		t.Fatalf("setup error = %v", err)
	}

	tc := server.NewTestCtx()
	submitHandler(t, findForm(page))(tc, server.NewFormData(map[string]string{
		"name": "Ada",
	}))

	for _, p := range tc.Patches() {
		if p.Op == protocol.PatchSetValue {
			t.Errorf("unexpected SetValue on %q", p.Ref)
		}
	}
}

func TestFormFocusesFirstMissingField(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
		want   string
	}{
		{
			name:   "all empty",
			fields: map[string]string{},
			want:   "name",
		},
		{
			name: "email and message empty",
			fields: map[string]string{
				"name":    "Ada",
				"subject": "Hi",
			},
			want: "email",
		},
		{
			name: "only subject empty",
			fields: map[string]string{
				"name":    "Ada",
				"email":   "ada@example.com",
				"message": "Hello",
			},
			want: "subject",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := formPage()
			if _, err := Form(page)(); err != nil {
				t.Fatalf("setup error = %v", err)
			}

			tc := server.NewTestCtx()
			submitHandler(t, findForm(page))(tc, server.NewFormData(tt.fields))

			patches := tc.Patches()
			if len(patches) != 2 {
				t.Fatalf("got %d patches, want 2", len(patches))
			}
			if patches[1].Op != protocol.PatchFocus || patches[1].Ref != tt.want {
				t.Errorf("focus = %v %q, want Focus %q", patches[1].Op, patches[1].Ref, tt.want)
			}
		})
	}
}

// Markup that never names its controls still binds through placeholder
// text, mirroring how the client serializes such controls.
func TestFormPlaceholderFallback(t *testing.T) {
	page := vdom.Div(
		vdom.Form(
			vdom.Input(vdom.Placeholder("Your Name")),
			vdom.Input(vdom.Placeholder("Your Email")),
			vdom.Input(vdom.Placeholder("Subject")),
			vdom.Textarea(vdom.Placeholder("Tell us about your project")),
			vdom.Button(vdom.Type("submit"), "Send Message"),
		),
	)
	if _, err := Form(page)(); err != nil {
		t.Fatalf("setup error = %v", err)
	}

	tc := server.NewTestCtx()
	submitHandler(t, findForm(page))(tc, server.NewFormData(map[string]string{
		"Your Name":                  "Ada",
		"Your Email":                 "ada@example.com",
		"Subject":                    "Hi",
		"Tell us about your project": "Hello",
	}))

	patches := tc.Patches()
	if len(patches) != 5 {
		t.Fatalf("got %d patches, want 5", len(patches))
	}
	if payload := decodeToast(t, patches[0]); payload.Kind != "success" {
		t.Errorf("kind = %q, want success", payload.Kind)
	}
	// Refless controls are addressed by the keys claimed during the scan.
	if got, want := patches[1].Ref, "name"; got != want {
		t.Errorf("first reset ref = %q, want %q", got, want)
	}
}

func TestFormAbsent(t *testing.T) {
	n, err := Form(vdom.Div(vdom.P("no form here")))()
	if err != nil {
		t.Fatalf("setup error = %v", err)
	}
	if n != 0 {
		t.Errorf("setup registered %d handlers, want 0", n)
	}
}

func TestFormBindsFirstFormOnly(t *testing.T) {
	first := vdom.Form(vdom.Input(vdom.Name("name")))
	second := vdom.Form(vdom.Input(vdom.Name("name")))
	page := vdom.Div(first, second)

	n, err := Form(page)()
	if err != nil {
		t.Fatalf("setup error = %v", err)
	}
	if n != 1 {
		t.Fatalf("setup registered %d handlers, want 1", n)
	}
	if _, bound := first.Props["onsubmit"]; !bound {
		t.Error("first form not bound")
	}
	if _, bound := second.Props["onsubmit"]; bound {
		t.Error("second form bound")
	}
}
