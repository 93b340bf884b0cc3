package protocol

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestFrameEncodeDecode(t *testing.T) {
	tests := []struct {
		name    string
		frame   Frame
		wantLen int // expected total length including header
	}{
		{
			name: "empty_payload",
			frame: Frame{
				Type:    FrameEvent,
				Flags:   0,
				Payload: []byte{},
			},
			wantLen: FrameHeaderSize,
		},
		{
			name: "with_payload",
			frame: Frame{
				Type:    FramePatches,
				Flags:   0,
				Payload: []byte{0x01, 0x02, 0x03},
			},
			wantLen: FrameHeaderSize + 3,
		},
		{
			name: "with_flags",
			frame: Frame{
				Type:    FrameControl,
				Flags:   FlagCompressed | FlagPriority,
				Payload: []byte("test"),
			},
			wantLen: FrameHeaderSize + 4,
		},
		{
			name: "handshake",
			frame: Frame{
				Type:    FrameHandshake,
				Payload: []byte{0x01, 0x00}, // Version 1.0
			},
			wantLen: FrameHeaderSize + 2,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			encoded := tc.frame.Encode()
			if len(encoded) != tc.wantLen {
				t.Errorf("Encode() length = %d, want %d", len(encoded), tc.wantLen)
			}

			if FrameType(encoded[0]) != tc.frame.Type {
				t.Errorf("encoded type = %v, want %v", FrameType(encoded[0]), tc.frame.Type)
			}
			if FrameFlags(encoded[1]) != tc.frame.Flags {
				t.Errorf("encoded flags = %v, want %v", FrameFlags(encoded[1]), tc.frame.Flags)
			}

			decoded, err := DecodeFrame(encoded)
			if err != nil {
				t.Fatalf("DecodeFrame() error = %v", err)
			}

			if decoded.Type != tc.frame.Type {
				t.Errorf("decoded type = %v, want %v", decoded.Type, tc.frame.Type)
			}
			if decoded.Flags != tc.frame.Flags {
				t.Errorf("decoded flags = %v, want %v", decoded.Flags, tc.frame.Flags)
			}
			if !bytes.Equal(decoded.Payload, tc.frame.Payload) {
				t.Errorf("decoded payload = %v, want %v", decoded.Payload, tc.frame.Payload)
			}
		})
	}
}

func TestFrameEncodeTo(t *testing.T) {
	f := &Frame{
		Type:    FrameEvent,
		Flags:   FlagPriority,
		Payload: []byte{0x01, 0x02, 0x03},
	}

	e := NewEncoder()
	f.EncodeTo(e)

	direct := f.Encode()
	if !bytes.Equal(e.Bytes(), direct) {
		t.Errorf("EncodeTo() = %v, want %v", e.Bytes(), direct)
	}
}

func TestDecodeFrameHeader(t *testing.T) {
	data := []byte{0x02, 0x01, 0x00, 0x10} // FramePatches, FlagCompressed, length 16

	ft, flags, length, err := DecodeFrameHeader(data)
	if err != nil {
		t.Fatalf("DecodeFrameHeader() error = %v", err)
	}
	if ft != FramePatches {
		t.Errorf("Type = %v, want FramePatches", ft)
	}
	if flags != FlagCompressed {
		t.Errorf("Flags = %v, want FlagCompressed", flags)
	}
	if length != 16 {
		t.Errorf("Length = %d, want 16", length)
	}
}

func TestDecodeFrameTruncated(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short_header", []byte{0x01, 0x00}},
		{"payload_missing", []byte{0x01, 0x00, 0x00, 0x05, 0xAA}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeFrame(tc.data); !errors.Is(err, io.ErrUnexpectedEOF) {
				t.Errorf("DecodeFrame() error = %v, want io.ErrUnexpectedEOF", err)
			}
		})
	}
}

func TestReadWriteFrame(t *testing.T) {
	var buf bytes.Buffer

	out := NewFrame(FramePatches, []byte{0xDE, 0xAD})
	if err := WriteFrame(&buf, out); err != nil {
		t.Fatalf("WriteFrame() error = %v", err)
	}

	in, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame() error = %v", err)
	}
	if in.Type != FramePatches || !bytes.Equal(in.Payload, out.Payload) {
		t.Errorf("ReadFrame() = %+v, want %+v", in, out)
	}
}

func TestWriteFrameTooLarge(t *testing.T) {
	f := NewFrame(FramePatches, make([]byte, MaxPayloadSize+1))
	if err := WriteFrame(io.Discard, f); !errors.Is(err, ErrFrameTooLarge) {
		t.Errorf("WriteFrame() error = %v, want ErrFrameTooLarge", err)
	}
}

func TestFrameTypeString(t *testing.T) {
	tests := []struct {
		ft   FrameType
		want string
	}{
		{FrameHandshake, "Handshake"},
		{FrameEvent, "Event"},
		{FramePatches, "Patches"},
		{FrameControl, "Control"},
		{FrameError, "Error"},
		{FrameType(0xEE), "Unknown"},
	}

	for _, tc := range tests {
		if got := tc.ft.String(); got != tc.want {
			t.Errorf("FrameType(%d).String() = %q, want %q", tc.ft, got, tc.want)
		}
	}
}
