package channelvoice2

import "github.com/danmuck/midi2/protocol"

// AttributeType selects how the 16-bit note attribute data is read.
type AttributeType uint8

const (
	AttributeNone AttributeType = iota
	AttributeManufacturerSpecific
	AttributeProfileSpecific
	AttributePitch7_9
)

func (t AttributeType) String() string {
	switch t {
	case AttributeNone:
		return "none"
	case AttributeManufacturerSpecific:
		return "manufacturer-specific"
	case AttributeProfileSpecific:
		return "profile-specific"
	case AttributePitch7_9:
		return "pitch-7.9"
	default:
		return "invalid"
	}
}

// Attribute is the optional per-note attribute of note on/off messages.
type Attribute struct {
	Type AttributeType
	Data uint16
}

// Pitch7_9 builds a pitch attribute: a 7-bit note number plus a 9-bit
// fraction of a semitone.
func Pitch7_9(note uint8, fraction uint16) Attribute {
	return Attribute{Type: AttributePitch7_9, Data: uint16(note&0x7F)<<9 | fraction&0x1FF}
}

// Note is the integer part of a pitch 7.9 attribute.
func (a Attribute) Note() uint8 { return uint8(a.Data >> 9) }

// Fraction is the 9-bit fractional part of a pitch 7.9 attribute.
func (a Attribute) Fraction() uint16 { return a.Data & 0x1FF }

var errAttributeType = protocol.InvalidData("unknown note attribute type")

// attributeCodec reads the type octet and data half-word as one 24-bit
// value: type in the high byte.
type attributeCodec struct{}

func (attributeCodec) Check(raw uint32) error {
	if raw>>16 > uint32(AttributePitch7_9) {
		return errAttributeType
	}
	return nil
}

func (attributeCodec) Decode(raw uint32) Attribute {
	return Attribute{Type: AttributeType(raw >> 16), Data: uint16(raw)}
}

func (attributeCodec) Encode(a Attribute) (uint32, error) {
	if a.Type > AttributePitch7_9 {
		return 0, errAttributeType
	}
	if a.Type == AttributeNone && a.Data != 0 {
		return 0, protocol.ErrOutOfRange
	}
	return uint32(a.Type)<<16 | uint32(a.Data), nil
}
