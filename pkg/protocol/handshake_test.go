package protocol

import "testing"

func TestClientHelloRoundTrip(t *testing.T) {
	ch := NewClientHello("token-abc123", "/")

	decoded, err := DecodeClientHello(EncodeClientHello(ch))
	if err != nil {
		t.Fatalf("DecodeClientHello() error = %v", err)
	}

	if decoded.Version != CurrentVersion {
		t.Errorf("Version = %+v, want %+v", decoded.Version, CurrentVersion)
	}
	if decoded.CSRFToken != "token-abc123" {
		t.Errorf("CSRFToken = %q", decoded.CSRFToken)
	}
	if decoded.Path != "/" {
		t.Errorf("Path = %q, want /", decoded.Path)
	}
}

func TestClientHelloCarriesPath(t *testing.T) {
	ch := NewClientHello("t", "/pricing")

	decoded, err := DecodeClientHello(EncodeClientHello(ch))
	if err != nil {
		t.Fatalf("DecodeClientHello() error = %v", err)
	}
	if decoded.Path != "/pricing" {
		t.Errorf("Path = %q, want /pricing", decoded.Path)
	}
}

func TestServerHelloRoundTrip(t *testing.T) {
	sh := NewServerHello("sess-42")

	decoded, err := DecodeServerHello(EncodeServerHello(sh))
	if err != nil {
		t.Fatalf("DecodeServerHello() error = %v", err)
	}
	if decoded.Status != HandshakeOK {
		t.Errorf("Status = %v, want OK", decoded.Status)
	}
	if decoded.SessionID != "sess-42" {
		t.Errorf("SessionID = %q", decoded.SessionID)
	}
}

func TestServerHelloError(t *testing.T) {
	sh := NewServerHelloError(HandshakeInvalidCSRF)

	decoded, err := DecodeServerHello(EncodeServerHello(sh))
	if err != nil {
		t.Fatalf("DecodeServerHello() error = %v", err)
	}
	if decoded.Status != HandshakeInvalidCSRF {
		t.Errorf("Status = %v, want InvalidCSRF", decoded.Status)
	}
	if decoded.SessionID != "" {
		t.Errorf("SessionID = %q, want empty", decoded.SessionID)
	}
}

func TestDecodeClientHelloTruncated(t *testing.T) {
	data := EncodeClientHello(NewClientHello("tok", "/"))

	for cut := 0; cut < len(data); cut++ {
		if _, err := DecodeClientHello(data[:cut]); err == nil {
			t.Errorf("DecodeClientHello() with %d/%d bytes succeeded, want error", cut, len(data))
		}
	}
}

func TestHandshakeStatusString(t *testing.T) {
	tests := []struct {
		hs   HandshakeStatus
		want string
	}{
		{HandshakeOK, "OK"},
		{HandshakeVersionMismatch, "VersionMismatch"},
		{HandshakeInvalidCSRF, "InvalidCSRF"},
		{HandshakeSessionLimit, "SessionLimit"},
		{HandshakeInvalidFormat, "InvalidFormat"},
		{HandshakeInternalError, "InternalError"},
		{HandshakeStatus(0xEE), "Unknown"},
	}

	for _, tc := range tests {
		if got := tc.hs.String(); got != tc.want {
			t.Errorf("HandshakeStatus(%d).String() = %q, want %q", tc.hs, got, tc.want)
		}
	}
}
