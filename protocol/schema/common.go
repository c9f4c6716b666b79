package schema

import "github.com/danmuck/midi2/protocol"

// Schemas shared across message categories.
var (
	TypeSchema        = Define("type", Ump(0xF000_0000), Bytes())
	GroupSchema       = Define("group", Ump(0x0F00_0000), Bytes())
	VoiceStatusSchema = Define("status", Ump(0x00F0_0000), Bytes(0xF0))
	ChannelSchema     = Define("channel", Ump(0x000F_0000), Bytes(0x0F))
	SystemSchema      = Define("status", Ump(0x00FF_0000), Bytes(0xFF))
)

var (
	Group   = New(GroupSchema, Uint[uint8]{})
	Channel = New(ChannelSchema, Uint[uint8]{})
)

// Constant defines a discriminant property: validation fails with err unless
// the bits hold value, and builders write value by default.
func Constant(s Schema, value uint32, err error) Property[uint32] {
	return New(s, Fixed(value, err)).WithDefault(value)
}

// MessageType is the UMP message-type nibble property for type t.
func MessageType(t uint32) Property[uint32] {
	return Constant(TypeSchema, t, protocol.ErrWrongMessageType)
}

// VoiceStatus is the channel-voice opcode nibble property.
func VoiceStatus(op uint32) Property[uint32] {
	return Constant(VoiceStatusSchema, op, protocol.ErrWrongStatus)
}

// SystemStatus is the system common / real-time status octet property.
func SystemStatus(status uint32) Property[uint32] {
	return Constant(SystemSchema, status, protocol.ErrWrongStatus)
}

// U7 and friends are shorthands for unsigned properties.
func U7(name string, ump UmpMasks, bytes ByteMasks, opts ...Option) Property[uint8] {
	return New(Define(name, ump, bytes, opts...), Uint[uint8]{})
}

// U8 is the same shorthand for fields that fill a whole octet.
func U8(name string, ump UmpMasks, bytes ByteMasks, opts ...Option) Property[uint8] {
	return New(Define(name, ump, bytes, opts...), Uint[uint8]{})
}

func U16(name string, ump UmpMasks, opts ...Option) Property[uint16] {
	return New(Define(name, ump, Bytes(), opts...), Uint[uint16]{})
}

func U32(name string, ump UmpMasks, opts ...Option) Property[uint32] {
	return New(Define(name, ump, Bytes(), opts...), Uint[uint32]{})
}

func Flag(name string, ump UmpMasks) Property[bool] {
	return New(Define(name, ump, Bytes()), Bool{})
}
