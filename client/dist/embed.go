// Package clientdist embeds the built thin client bundle.
package clientdist

import _ "embed"

// MarqueeJS is the thin client JavaScript bundle.
//
// It is served by the server at "/_marquee/client.js".
//
//go:embed marquee.js
var MarqueeJS []byte
