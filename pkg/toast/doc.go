// Package toast provides feedback notifications for marquee pages.
//
// Toasts ride the generic ctx.Emit mechanism rather than a dedicated
// protocol opcode: the server dispatches a custom DOM event on the
// document and the client renders it. The embedded thin client ships a
// minimal overlay that listens for the event, so toasts work with no
// page-side code at all.
//
// Apps that want their own look can listen for the same event and
// render with any library:
//
//	window.addEventListener("marquee:toast", (e) => {
//	    const { kind, message } = e.detail;
//	    showCustomToast(kind, message);
//	});
//
// Server-side usage:
//
//	func submitContact(ctx server.Ctx, form server.FormData) {
//	    if form.Get("email") == "" {
//	        toast.Error(ctx, "Please fill in all fields before submitting.")
//	        return
//	    }
//	    toast.Success(ctx, "Your message has been received.")
//	}
package toast
