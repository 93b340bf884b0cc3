// Package bind wires behavior decisions onto rendered pages.
//
// Each feature is a one-time static scan over a prepared element tree:
// locate the elements the feature owns, attach session event handlers,
// report how many were bound. The handlers translate pkg/behavior
// decisions into protocol patches. Elements added after the scan are not
// covered, and a feature whose elements are absent stays silently
// inactive.
//
// Apply bundles the stock feature set behind the two-phase ready
// lifecycle and is what the app mounts:
//
//	page := site.Page()
//	report, err := bind.Apply(ctx, page, logger)
//
// The individual setups compose with behavior.Registry directly when a
// page needs a custom route table or a subset of features.
package bind
