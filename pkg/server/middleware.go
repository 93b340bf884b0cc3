package server

// Middleware wraps event dispatch. Middleware added to the server runs
// around every handler in every session, outermost first.
type Middleware func(next Handler) Handler

// Compose wraps h with the given middleware. The first middleware in the
// list becomes the outermost layer.
func Compose(h Handler, mw ...Middleware) Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}
