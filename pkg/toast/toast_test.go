package toast_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/marquee-dev/marquee/pkg/protocol"
	"github.com/marquee-dev/marquee/pkg/server"
	"github.com/marquee-dev/marquee/pkg/toast"
)

// emittedDetail decodes the single queued toast patch.
func emittedDetail(t *testing.T, tc *server.TestCtx) map[string]any {
	t.Helper()
	patches := tc.Patches()
	if len(patches) != 1 {
		t.Fatalf("patches = %d, want 1", len(patches))
	}
	p := patches[0]
	if p.Op != protocol.PatchEmit {
		t.Fatalf("op = %v, want Emit", p.Op)
	}
	if p.Ref != "" {
		t.Fatalf("ref = %q, want empty (document target)", p.Ref)
	}
	if p.Key != toast.EventName {
		t.Fatalf("event name = %q, want %q", p.Key, toast.EventName)
	}
	var detail map[string]any
	if err := json.Unmarshal([]byte(p.Value), &detail); err != nil {
		t.Fatalf("detail is not valid JSON: %v", err)
	}
	return detail
}

func TestSuccess(t *testing.T) {
	tc := server.NewTestCtx()

	toast.Success(tc, "Your message has been received.")

	detail := emittedDetail(t, tc)
	if detail["kind"] != "success" {
		t.Errorf("kind = %v, want success", detail["kind"])
	}
	if detail["message"] != "Your message has been received." {
		t.Errorf("message = %v", detail["message"])
	}
}

func TestError(t *testing.T) {
	tc := server.NewTestCtx()

	toast.Error(tc, "Please fill in all fields before submitting.")

	detail := emittedDetail(t, tc)
	if detail["kind"] != "error" {
		t.Errorf("kind = %v, want error", detail["kind"])
	}
}

func TestInfo(t *testing.T) {
	tc := server.NewTestCtx()

	toast.Info(tc, "We usually reply within a day.")

	if detail := emittedDetail(t, tc); detail["kind"] != "info" {
		t.Errorf("kind = %v, want info", detail["kind"])
	}
}

func TestShowFor(t *testing.T) {
	tc := server.NewTestCtx()

	toast.ShowFor(tc, toast.KindSuccess, "Saved", 8*time.Second)

	detail := emittedDetail(t, tc)
	// JSON numbers decode as float64.
	if detail["duration"] != float64(8000) {
		t.Errorf("duration = %v, want 8000", detail["duration"])
	}
}

func TestCustom(t *testing.T) {
	tc := server.NewTestCtx()

	toast.Custom(tc, map[string]any{
		"kind":    "success",
		"message": "Uploaded",
		"action":  "view",
	})

	if detail := emittedDetail(t, tc); detail["action"] != "view" {
		t.Errorf("action = %v, want view", detail["action"])
	}
}
