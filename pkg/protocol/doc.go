// Package protocol implements the binary wire protocol between the Marquee
// server and its thin client.
//
// The protocol carries DOM events from browser to server and DOM patches from
// server to browser over a WebSocket connection. It is optimized for minimal
// bandwidth and fast encoding/decoding: no reflection, direct byte
// manipulation.
//
// # Wire Format
//
// All messages are framed with a 4-byte header:
//
//	┌─────────────┬──────────────┬───────────────────────────────┐
//	│ Frame Type  │ Flags        │ Payload Length                │
//	│ (1 byte)    │ (1 byte)     │ (2 bytes, big-endian)         │
//	└─────────────┴──────────────┴───────────────────────────────┘
//
// # Frame Types
//
//   - FrameHandshake (0x00): Connection setup
//   - FrameEvent (0x01): Client → Server events
//   - FramePatches (0x02): Server → Client patches
//   - FrameControl (0x03): Control messages (ping, close)
//   - FrameError (0x04): Error message
//
// # Encoding
//
// The protocol uses several encoding strategies:
//
//   - Varint: Compact encoding for small integers (protobuf-style)
//   - ZigZag: Signed integers encoded as unsigned varints
//   - Length-prefixed: Strings and byte arrays prefixed with varint length
//   - Big-endian: Fixed-width integers (uint16, uint32, uint64)
//
// # Refs
//
// Both events and patches address elements by ref, a short string the client
// resolves against the live DOM in order: stable key (data-key), hydration ID
// (data-hid), then element id. Hydration IDs are assigned in render order and
// shift when markup changes; stable keys and element ids survive reordering,
// so behavior code that must target an element it did not receive the event
// from should prefer them.
//
// # Events
//
// Events are sent from client to server when user interactions occur. Each
// event includes a sequence number, event type, target ref, and type-specific
// payload. A click event for ref "h3" encodes in about 6 bytes.
//
// # Patches
//
// Patches are sent from server to client to update the DOM. Each patch
// includes an operation, target ref, and operation-specific data. All patches
// in one frame are applied in a single animation frame, so a multi-patch
// frame is atomic as far as the user can observe. PatchSetClasses replaces an
// element's entire class list in one operation for state flips that must
// never be seen half-applied.
//
// # Handshake
//
// Connection establishment uses ClientHello and ServerHello messages:
//
//	Client                          Server
//	  │                                │
//	  │──── ClientHello ─────────────>│
//	  │     (version, csrf, path)     │
//	  │                                │
//	  │<──── ServerHello ─────────────│
//	  │     (status, session id)      │
//	  │                                │
//
// Sessions are one-shot: there is no resume or patch replay. A client that
// reconnects performs a fresh handshake and the server mounts the page again.
//
// # Control Messages
//
//   - Ping/Pong: Heartbeat for connection health
//   - Close: Graceful session termination with a reason code
package protocol
