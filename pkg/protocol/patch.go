package protocol

// PatchOp is the type of patch operation.
type PatchOp uint8

// Patch operation constants.
const (
	// Content and attribute operations (0x01-0x0F)
	PatchSetText    PatchOp = 0x01 // Update text content
	PatchSetAttr    PatchOp = 0x02 // Set attribute
	PatchRemoveAttr PatchOp = 0x03 // Remove attribute
	PatchSetValue   PatchOp = 0x04 // Set input value
	PatchFocus      PatchOp = 0x05 // Focus element

	// Class operations (0x10-0x1F)
	PatchAddClass    PatchOp = 0x10 // Add CSS class
	PatchRemoveClass PatchOp = 0x11 // Remove CSS class
	PatchSetClasses  PatchOp = 0x12 // Replace the entire class list atomically

	// Behavior operations (0x20-0x2F)
	PatchScrollTo PatchOp = 0x20 // Smooth-scroll element into view
	PatchEmit     PatchOp = 0x21 // Dispatch custom DOM event with JSON detail
)

// String returns the string representation of the patch operation.
func (op PatchOp) String() string {
	switch op {
	case PatchSetText:
		return "SetText"
	case PatchSetAttr:
		return "SetAttr"
	case PatchRemoveAttr:
		return "RemoveAttr"
	case PatchSetValue:
		return "SetValue"
	case PatchFocus:
		return "Focus"
	case PatchAddClass:
		return "AddClass"
	case PatchRemoveClass:
		return "RemoveClass"
	case PatchSetClasses:
		return "SetClasses"
	case PatchScrollTo:
		return "ScrollTo"
	case PatchEmit:
		return "Emit"
	default:
		return "Unknown"
	}
}

// ScrollBehavior represents the scroll behavior for PatchScrollTo.
type ScrollBehavior uint8

const (
	ScrollInstant ScrollBehavior = 0
	ScrollSmooth  ScrollBehavior = 1
)

// String returns the string representation of the scroll behavior.
func (sb ScrollBehavior) String() string {
	if sb == ScrollSmooth {
		return "smooth"
	}
	return "instant"
}

// Patch represents a single DOM operation.
//
// Ref addresses the target element; the client resolves it against
// data-hid, then data-key, then element id. SetClasses carries the full
// replacement class list in Values so a state flip lands in one operation.
type Patch struct {
	Op       PatchOp
	Ref      string         // Target element ref
	Key      string         // Attribute key / event name
	Value    string         // Value for text/attr/value, event detail JSON
	Values   []string       // Full class list for SetClasses
	Behavior ScrollBehavior // For ScrollTo
}

// PatchFrame represents a batch of patches with a server sequence number.
// The client applies every patch in the frame within a single animation
// frame, so the batch is atomic as far as the user can observe.
type PatchFrame struct {
	Seq     uint64
	Patches []Patch
}

// EncodePatches encodes a patch frame to bytes.
func EncodePatches(pf *PatchFrame) []byte {
	e := NewEncoder()
	EncodePatchesTo(e, pf)
	return e.Bytes()
}

// EncodePatchesTo encodes a patch frame using the provided encoder.
func EncodePatchesTo(e *Encoder, pf *PatchFrame) {
	e.WriteUvarint(pf.Seq)
	e.WriteUvarint(uint64(len(pf.Patches)))

	for i := range pf.Patches {
		encodePatch(e, &pf.Patches[i])
	}
}

// encodePatch encodes a single patch.
func encodePatch(e *Encoder, p *Patch) {
	e.WriteByte(byte(p.Op))
	e.WriteString(p.Ref)

	switch p.Op {
	case PatchSetText, PatchSetValue:
		e.WriteString(p.Value)

	case PatchSetAttr:
		e.WriteString(p.Key)
		e.WriteString(p.Value)

	case PatchRemoveAttr:
		e.WriteString(p.Key)

	case PatchFocus:
		// No additional data

	case PatchAddClass, PatchRemoveClass:
		e.WriteString(p.Value)

	case PatchSetClasses:
		e.WriteUvarint(uint64(len(p.Values)))
		for _, c := range p.Values {
			e.WriteString(c)
		}

	case PatchScrollTo:
		e.WriteByte(byte(p.Behavior))

	case PatchEmit:
		e.WriteString(p.Key)   // Event name
		e.WriteString(p.Value) // Event detail (JSON)
	}
}

// DecodePatches decodes a patch frame from bytes.
func DecodePatches(data []byte) (*PatchFrame, error) {
	d := NewDecoder(data)
	return DecodePatchesFrom(d)
}

// DecodePatchesFrom decodes a patch frame from a decoder.
func DecodePatchesFrom(d *Decoder) (*PatchFrame, error) {
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}

	count, err := d.ReadCollectionCount()
	if err != nil {
		return nil, err
	}

	patches := make([]Patch, count)
	for i := 0; i < count; i++ {
		if err := decodePatch(d, &patches[i]); err != nil {
			return nil, err
		}
	}

	return &PatchFrame{
		Seq:     seq,
		Patches: patches,
	}, nil
}

// decodePatch decodes a single patch.
func decodePatch(d *Decoder, p *Patch) error {
	opByte, err := d.ReadByte()
	if err != nil {
		return err
	}
	p.Op = PatchOp(opByte)

	p.Ref, err = d.ReadString()
	if err != nil {
		return err
	}

	switch p.Op {
	case PatchSetText, PatchSetValue:
		p.Value, err = d.ReadString()

	case PatchSetAttr:
		p.Key, err = d.ReadString()
		if err != nil {
			return err
		}
		p.Value, err = d.ReadString()

	case PatchRemoveAttr:
		p.Key, err = d.ReadString()

	case PatchFocus:
		// No additional data

	case PatchAddClass, PatchRemoveClass:
		p.Value, err = d.ReadString()

	case PatchSetClasses:
		var n int
		n, err = d.ReadCollectionCount()
		if err != nil {
			return err
		}
		values := make([]string, n)
		for i := 0; i < n; i++ {
			values[i], err = d.ReadString()
			if err != nil {
				return err
			}
		}
		p.Values = values

	case PatchScrollTo:
		var beh byte
		beh, err = d.ReadByte()
		p.Behavior = ScrollBehavior(beh)

	case PatchEmit:
		p.Key, err = d.ReadString()
		if err != nil {
			return err
		}
		p.Value, err = d.ReadString()

	default:
		// Unknown patch op - skip for forward compatibility
	}

	return err
}

// NewSetTextPatch creates a SetText patch.
func NewSetTextPatch(ref, text string) Patch {
	return Patch{Op: PatchSetText, Ref: ref, Value: text}
}

// NewSetAttrPatch creates a SetAttr patch.
func NewSetAttrPatch(ref, key, value string) Patch {
	return Patch{Op: PatchSetAttr, Ref: ref, Key: key, Value: value}
}

// NewRemoveAttrPatch creates a RemoveAttr patch.
func NewRemoveAttrPatch(ref, key string) Patch {
	return Patch{Op: PatchRemoveAttr, Ref: ref, Key: key}
}

// NewSetValuePatch creates a SetValue patch.
func NewSetValuePatch(ref, value string) Patch {
	return Patch{Op: PatchSetValue, Ref: ref, Value: value}
}

// NewFocusPatch creates a Focus patch.
func NewFocusPatch(ref string) Patch {
	return Patch{Op: PatchFocus, Ref: ref}
}

// NewAddClassPatch creates an AddClass patch.
func NewAddClassPatch(ref, class string) Patch {
	return Patch{Op: PatchAddClass, Ref: ref, Value: class}
}

// NewRemoveClassPatch creates a RemoveClass patch.
func NewRemoveClassPatch(ref, class string) Patch {
	return Patch{Op: PatchRemoveClass, Ref: ref, Value: class}
}

// NewSetClassesPatch creates a SetClasses patch replacing the full class list.
func NewSetClassesPatch(ref string, classes []string) Patch {
	return Patch{Op: PatchSetClasses, Ref: ref, Values: classes}
}

// NewScrollToPatch creates a ScrollTo patch aligning the element's top edge
// with the viewport top.
func NewScrollToPatch(ref string, behavior ScrollBehavior) Patch {
	return Patch{Op: PatchScrollTo, Ref: ref, Behavior: behavior}
}

// NewEmitPatch creates an Emit patch dispatching a custom DOM event on the
// target element (document when ref is empty).
func NewEmitPatch(ref, eventName, detail string) Patch {
	return Patch{Op: PatchEmit, Ref: ref, Key: eventName, Value: detail}
}
