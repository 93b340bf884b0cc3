// Package behavior is the pure decision core of Marquee.
//
// Every page behavior (toggling the mobile navigation panel, smooth
// in-page scrolling, contact form validation, button-label routing) is
// expressed here as a plain function or small state machine over plain
// values: class lists, fragment strings, field snapshots, label tables.
// Nothing in this package touches an element tree, a session, or the wire
// protocol; pkg/bind adapts these decisions to rendered pages.
//
// The package also provides the two-phase ready lifecycle (Lifecycle) and
// the setup registry (Registry) that a page bootstrap composes: signal
// ready exactly once, then run the registered feature setups in order,
// each independent of the others.
package behavior
