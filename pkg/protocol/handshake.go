package protocol

// HandshakeStatus represents the result of a handshake.
type HandshakeStatus uint8

const (
	HandshakeOK              HandshakeStatus = 0x00
	HandshakeVersionMismatch HandshakeStatus = 0x01
	HandshakeInvalidCSRF     HandshakeStatus = 0x02
	HandshakeSessionLimit    HandshakeStatus = 0x03 // Server at max sessions
	HandshakeInvalidFormat   HandshakeStatus = 0x04 // Malformed handshake message
	HandshakeInternalError   HandshakeStatus = 0x05 // Server error
)

// String returns the string representation of the handshake status.
func (hs HandshakeStatus) String() string {
	switch hs {
	case HandshakeOK:
		return "OK"
	case HandshakeVersionMismatch:
		return "VersionMismatch"
	case HandshakeInvalidCSRF:
		return "InvalidCSRF"
	case HandshakeSessionLimit:
		return "SessionLimit"
	case HandshakeInvalidFormat:
		return "InvalidFormat"
	case HandshakeInternalError:
		return "InternalError"
	default:
		return "Unknown"
	}
}

// ProtocolVersion represents a protocol version as major.minor.
type ProtocolVersion struct {
	Major uint8
	Minor uint8
}

// CurrentVersion is the current protocol version.
var CurrentVersion = ProtocolVersion{Major: 1, Minor: 0}

// ClientHello is sent by the client after the WebSocket connection is
// established. Path names the page the client is on; the server mounts the
// behavior set for that path. There is no session resume, so no sequence
// numbers travel in the handshake.
type ClientHello struct {
	Version   ProtocolVersion // Protocol version
	CSRFToken string          // CSRF token for validation
	Path      string          // Page path the client rendered
}

// ServerHello is the server's response to ClientHello.
type ServerHello struct {
	Status    HandshakeStatus // Handshake result
	SessionID string          // Assigned session ID (empty on failure)
}

// EncodeClientHello encodes a ClientHello to bytes.
func EncodeClientHello(ch *ClientHello) []byte {
	e := NewEncoder()
	EncodeClientHelloTo(e, ch)
	return e.Bytes()
}

// EncodeClientHelloTo encodes a ClientHello using the provided encoder.
func EncodeClientHelloTo(e *Encoder, ch *ClientHello) {
	e.WriteByte(ch.Version.Major)
	e.WriteByte(ch.Version.Minor)
	e.WriteString(ch.CSRFToken)
	e.WriteString(ch.Path)
}

// DecodeClientHello decodes a ClientHello from bytes.
func DecodeClientHello(data []byte) (*ClientHello, error) {
	d := NewDecoder(data)
	return DecodeClientHelloFrom(d)
}

// DecodeClientHelloFrom decodes a ClientHello from a decoder.
func DecodeClientHelloFrom(d *Decoder) (*ClientHello, error) {
	ch := &ClientHello{}
	var err error

	major, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	minor, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	ch.Version = ProtocolVersion{Major: major, Minor: minor}

	ch.CSRFToken, err = d.ReadString()
	if err != nil {
		return nil, err
	}

	ch.Path, err = d.ReadString()
	if err != nil {
		return nil, err
	}

	return ch, nil
}

// EncodeServerHello encodes a ServerHello to bytes.
func EncodeServerHello(sh *ServerHello) []byte {
	e := NewEncoder()
	EncodeServerHelloTo(e, sh)
	return e.Bytes()
}

// EncodeServerHelloTo encodes a ServerHello using the provided encoder.
func EncodeServerHelloTo(e *Encoder, sh *ServerHello) {
	e.WriteByte(byte(sh.Status))
	e.WriteString(sh.SessionID)
}

// DecodeServerHello decodes a ServerHello from bytes.
func DecodeServerHello(data []byte) (*ServerHello, error) {
	d := NewDecoder(data)
	return DecodeServerHelloFrom(d)
}

// DecodeServerHelloFrom decodes a ServerHello from a decoder.
func DecodeServerHelloFrom(d *Decoder) (*ServerHello, error) {
	sh := &ServerHello{}
	var err error

	status, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	sh.Status = HandshakeStatus(status)

	sh.SessionID, err = d.ReadString()
	if err != nil {
		return nil, err
	}

	return sh, nil
}

// NewClientHello creates a new ClientHello with the current version.
func NewClientHello(csrfToken, path string) *ClientHello {
	return &ClientHello{
		Version:   CurrentVersion,
		CSRFToken: csrfToken,
		Path:      path,
	}
}

// NewServerHello creates a new successful ServerHello.
func NewServerHello(sessionID string) *ServerHello {
	return &ServerHello{
		Status:    HandshakeOK,
		SessionID: sessionID,
	}
}

// NewServerHelloError creates a ServerHello with an error status.
func NewServerHelloError(status HandshakeStatus) *ServerHello {
	return &ServerHello{
		Status: status,
	}
}
