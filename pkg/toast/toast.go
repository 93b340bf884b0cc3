package toast

import (
	"time"

	"github.com/marquee-dev/marquee/pkg/server"
)

// EventName is the DOM event dispatched for toasts. The embedded client
// listens for it on the document.
const EventName = "marquee:toast"

// Kind selects the toast styling.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"

	// KindInfo renders with the neutral style.
	KindInfo Kind = "info"
)

// Show displays a toast notification.
//
// The client receives a CustomEvent on the document with:
//   - event.type = "marquee:toast"
//   - event.detail = { kind: "success|error|info", message: "..." }
func Show(ctx server.Ctx, kind Kind, message string) {
	ctx.Emit("", EventName, map[string]any{
		"kind":    string(kind),
		"message": message,
	})
}

// Success shows a success toast.
//
//	toast.Success(ctx, "Your message has been received.")
func Success(ctx server.Ctx, message string) {
	Show(ctx, KindSuccess, message)
}

// Error shows an error toast.
//
//	toast.Error(ctx, "Please fill in all fields before submitting.")
func Error(ctx server.Ctx, message string) {
	Show(ctx, KindError, message)
}

// Info shows a neutral toast.
//
//	toast.Info(ctx, "We usually reply within a day.")
func Info(ctx server.Ctx, message string) {
	Show(ctx, KindInfo, message)
}

// ShowFor shows a toast that stays visible for the given duration instead
// of the client default.
func ShowFor(ctx server.Ctx, kind Kind, message string, duration time.Duration) {
	ctx.Emit("", EventName, map[string]any{
		"kind":     string(kind),
		"message":  message,
		"duration": duration.Milliseconds(),
	})
}

// Custom shows a toast with a caller-built detail payload. Use this when
// a page-side listener expects extra fields.
func Custom(ctx server.Ctx, detail map[string]any) {
	ctx.Emit("", EventName, detail)
}
