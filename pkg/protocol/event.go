package protocol

import "errors"

// EventType identifies the type of client event.
type EventType uint8

// Event type constants.
const (
	// Pointer events (0x01-0x0F)
	EventClick EventType = 0x01

	// Form events (0x10-0x1F)
	EventInput  EventType = 0x10
	EventChange EventType = 0x11
	EventSubmit EventType = 0x12
)

// String returns the string representation of the event type.
func (et EventType) String() string {
	switch et {
	case EventClick:
		return "Click"
	case EventInput:
		return "Input"
	case EventChange:
		return "Change"
	case EventSubmit:
		return "Submit"
	default:
		return "Unknown"
	}
}

// SubmitEventData contains form submission data.
// Fields are keyed by the control's name attribute; controls without a name
// fall back to their placeholder text so legacy markup still round-trips.
type SubmitEventData struct {
	Fields map[string]string
}

// Event represents a decoded event from the client.
type Event struct {
	Seq     uint64
	Type    EventType
	Ref     string // Target element ref (hydration ID, stable key, or element id)
	Payload any    // Type-specific payload (nil for Click)
}

// Event encoding errors.
var (
	ErrInvalidEventType = errors.New("protocol: invalid event type")
	ErrInvalidPayload   = errors.New("protocol: invalid event payload")
)

// EncodeEvent encodes an event to bytes.
func EncodeEvent(e *Event) []byte {
	enc := NewEncoder()
	EncodeEventTo(enc, e)
	return enc.Bytes()
}

// EncodeEventTo encodes an event using the provided encoder.
func EncodeEventTo(enc *Encoder, e *Event) {
	enc.WriteUvarint(e.Seq)
	enc.WriteByte(byte(e.Type))
	enc.WriteString(e.Ref)

	switch e.Type {
	case EventClick:
		// No payload

	case EventInput, EventChange:
		// String payload
		if s, ok := e.Payload.(string); ok {
			enc.WriteString(s)
		} else {
			enc.WriteString("")
		}

	case EventSubmit:
		data, ok := e.Payload.(*SubmitEventData)
		if !ok || data == nil {
			enc.WriteUvarint(0)
		} else {
			enc.WriteUvarint(uint64(len(data.Fields)))
			for k, v := range data.Fields {
				enc.WriteString(k)
				enc.WriteString(v)
			}
		}
	}
}

// DecodeEvent decodes an event from bytes.
func DecodeEvent(data []byte) (*Event, error) {
	d := NewDecoder(data)
	return DecodeEventFrom(d)
}

// DecodeEventFrom decodes an event from a decoder.
func DecodeEventFrom(d *Decoder) (*Event, error) {
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}

	typeByte, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	eventType := EventType(typeByte)

	ref, err := d.ReadString()
	if err != nil {
		return nil, err
	}

	e := &Event{
		Seq:  seq,
		Type: eventType,
		Ref:  ref,
	}

	// Decode payload based on event type
	switch eventType {
	case EventClick:
		// No payload

	case EventInput, EventChange:
		s, err := d.ReadString()
		if err != nil {
			return nil, err
		}
		e.Payload = s

	case EventSubmit:
		count, err := d.ReadCollectionCount()
		if err != nil {
			return nil, err
		}
		fields := make(map[string]string, count)
		for i := 0; i < count; i++ {
			k, err := d.ReadString()
			if err != nil {
				return nil, err
			}
			v, err := d.ReadString()
			if err != nil {
				return nil, err
			}
			fields[k] = v
		}
		e.Payload = &SubmitEventData{Fields: fields}

	default:
		// Unknown event type - keep the envelope and let dispatch drop it.
		// Skip any remaining bytes for forward compatibility.
	}

	return e, nil
}

// Value returns the string payload for Input/Change events, or "" otherwise.
func (e *Event) Value() string {
	if s, ok := e.Payload.(string); ok {
		return s
	}
	return ""
}

// Submit returns the submit payload, or nil if this is not a submit event.
func (e *Event) Submit() *SubmitEventData {
	if data, ok := e.Payload.(*SubmitEventData); ok {
		return data
	}
	return nil
}
