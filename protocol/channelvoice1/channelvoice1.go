// Package channelvoice1 implements MIDI 1.0 channel voice messages in both
// wire forms: UMP message type 0x2 and byte-stream statuses 0x80 to 0xEF.
package channelvoice1

import (
	"github.com/danmuck/midi2/protocol"
	"github.com/danmuck/midi2/protocol/bits"
	"github.com/danmuck/midi2/protocol/buffer"
	"github.com/danmuck/midi2/protocol/message"
	"github.com/danmuck/midi2/protocol/schema"
)

const Type = 0x2

// Opcodes held in the status nibble.
const (
	StatusNoteOff         = 0x8
	StatusNoteOn          = 0x9
	StatusKeyPressure     = 0xA
	StatusControlChange   = 0xB
	StatusProgramChange   = 0xC
	StatusChannelPressure = 0xD
	StatusPitchBend       = 0xE
)

var (
	note        = schema.U7("note", schema.Ump(0x0000_7F00), schema.Bytes(0, 0x7F))
	velocity    = schema.U7("velocity", schema.Ump(0x0000_007F), schema.Bytes(0, 0, 0x7F))
	pressure    = schema.U7("pressure", schema.Ump(0x0000_007F), schema.Bytes(0, 0, 0x7F))
	control     = schema.U7("control", schema.Ump(0x0000_7F00), schema.Bytes(0, 0x7F))
	controlData = schema.U7("control data", schema.Ump(0x0000_007F), schema.Bytes(0, 0, 0x7F))
	program     = schema.U7("program", schema.Ump(0x0000_7F00), schema.Bytes(0, 0x7F))
	chPressure  = schema.U7("pressure", schema.Ump(0x0000_7F00), schema.Bytes(0, 0x7F))
	bend        = schema.New(
		schema.Define("bend", schema.Ump(0x0000_7F7F), schema.Bytes(0, 0x7F, 0x7F), schema.WithOrder(schema.LSBFirst)),
		schema.Uint[uint16]{},
	).WithDefault(0x2000)
)

func define(name string, op uint32, bytes int, fields ...schema.Field) *message.Descriptor {
	head := []schema.Field{schema.MessageType(Type), schema.VoiceStatus(op), schema.Group, schema.Channel}
	return message.Define(name, 1, bytes, append(head, fields...), message.WithDataBytes())
}

var (
	NoteOffKind         = define("NoteOff", StatusNoteOff, 3, note, velocity)
	NoteOnKind          = define("NoteOn", StatusNoteOn, 3, note, velocity)
	KeyPressureKind     = define("KeyPressure", StatusKeyPressure, 3, note, pressure)
	ControlChangeKind   = define("ControlChange", StatusControlChange, 3, control, controlData)
	ProgramChangeKind   = define("ProgramChange", StatusProgramChange, 2, program)
	ChannelPressureKind = define("ChannelPressure", StatusChannelPressure, 2, chPressure)
	PitchBendKind       = define("PitchBend", StatusPitchBend, 3, bend)
)

// Kind returns the descriptor for a status nibble, or nil.
func Kind(op uint8) *message.Descriptor {
	switch op {
	case StatusNoteOff:
		return NoteOffKind
	case StatusNoteOn:
		return NoteOnKind
	case StatusKeyPressure:
		return KeyPressureKind
	case StatusControlChange:
		return ControlChangeKind
	case StatusProgramChange:
		return ProgramChangeKind
	case StatusChannelPressure:
		return ChannelPressureKind
	case StatusPitchBend:
		return PitchBendKind
	default:
		return nil
	}
}

// Message is any MIDI 1.0 channel voice message.
type Message[U buffer.Unit] interface {
	message.Shape[U]
	Group() uint8
	Channel() uint8
	channelVoice1()
}

type voice[U buffer.Unit] struct{ message.Message[U] }

func (voice[U]) channelVoice1() {}

// Group is always zero in the byte-stream form.
func (m voice[U]) Group() uint8 { return message.Get(m.Message, schema.Group) }

func (m voice[U]) Channel() uint8 { return message.Get(m.Message, schema.Channel) }

type voiceBuilder[U buffer.Unit] struct{ *message.Builder[U] }

// SetGroup is a no-op in the byte-stream form.
func (b voiceBuilder[U]) SetGroup(v uint8) { message.Set(b.Builder, schema.Group, v) }

func (b voiceBuilder[U]) SetChannel(v uint8) { message.Set(b.Builder, schema.Channel, v) }

type NoteOff[U buffer.Unit] struct{ voice[U] }

func (m NoteOff[U]) Note() uint8     { return message.Get(m.Message, note) }
func (m NoteOff[U]) Velocity() uint8 { return message.Get(m.Message, velocity) }

type NoteOffBuilder[U buffer.Unit] struct{ voiceBuilder[U] }

func NewNoteOff[U buffer.Unit](buf buffer.Mutable[U]) NoteOffBuilder[U] {
	return NoteOffBuilder[U]{voiceBuilder[U]{message.NewBuilder(NoteOffKind, buf)}}
}

func (b NoteOffBuilder[U]) SetNote(v uint8)     { message.Set(b.Builder, note, v) }
func (b NoteOffBuilder[U]) SetVelocity(v uint8) { message.Set(b.Builder, velocity, v) }

func (b NoteOffBuilder[U]) Build() (NoteOff[U], error) {
	return message.Wrap(b.Builder, func(m message.Message[U]) NoteOff[U] { return NoteOff[U]{voice[U]{m}} })
}

func ParseNoteOff[U buffer.Unit](data []U) (NoteOff[U], error) {
	return message.As(NoteOffKind, data, func(m message.Message[U]) NoteOff[U] { return NoteOff[U]{voice[U]{m}} })
}

type NoteOn[U buffer.Unit] struct{ voice[U] }

func (m NoteOn[U]) Note() uint8     { return message.Get(m.Message, note) }
func (m NoteOn[U]) Velocity() uint8 { return message.Get(m.Message, velocity) }

type NoteOnBuilder[U buffer.Unit] struct{ voiceBuilder[U] }

func NewNoteOn[U buffer.Unit](buf buffer.Mutable[U]) NoteOnBuilder[U] {
	return NoteOnBuilder[U]{voiceBuilder[U]{message.NewBuilder(NoteOnKind, buf)}}
}

func (b NoteOnBuilder[U]) SetNote(v uint8)     { message.Set(b.Builder, note, v) }
func (b NoteOnBuilder[U]) SetVelocity(v uint8) { message.Set(b.Builder, velocity, v) }

func (b NoteOnBuilder[U]) Build() (NoteOn[U], error) {
	return message.Wrap(b.Builder, func(m message.Message[U]) NoteOn[U] { return NoteOn[U]{voice[U]{m}} })
}

func ParseNoteOn[U buffer.Unit](data []U) (NoteOn[U], error) {
	return message.As(NoteOnKind, data, func(m message.Message[U]) NoteOn[U] { return NoteOn[U]{voice[U]{m}} })
}

// KeyPressure is polyphonic aftertouch.
type KeyPressure[U buffer.Unit] struct{ voice[U] }

func (m KeyPressure[U]) Note() uint8     { return message.Get(m.Message, note) }
func (m KeyPressure[U]) Pressure() uint8 { return message.Get(m.Message, pressure) }

type KeyPressureBuilder[U buffer.Unit] struct{ voiceBuilder[U] }

func NewKeyPressure[U buffer.Unit](buf buffer.Mutable[U]) KeyPressureBuilder[U] {
	return KeyPressureBuilder[U]{voiceBuilder[U]{message.NewBuilder(KeyPressureKind, buf)}}
}

func (b KeyPressureBuilder[U]) SetNote(v uint8)     { message.Set(b.Builder, note, v) }
func (b KeyPressureBuilder[U]) SetPressure(v uint8) { message.Set(b.Builder, pressure, v) }

func (b KeyPressureBuilder[U]) Build() (KeyPressure[U], error) {
	return message.Wrap(b.Builder, func(m message.Message[U]) KeyPressure[U] { return KeyPressure[U]{voice[U]{m}} })
}

func ParseKeyPressure[U buffer.Unit](data []U) (KeyPressure[U], error) {
	return message.As(KeyPressureKind, data, func(m message.Message[U]) KeyPressure[U] { return KeyPressure[U]{voice[U]{m}} })
}

type ControlChange[U buffer.Unit] struct{ voice[U] }

func (m ControlChange[U]) Control() uint8     { return message.Get(m.Message, control) }
func (m ControlChange[U]) ControlData() uint8 { return message.Get(m.Message, controlData) }

type ControlChangeBuilder[U buffer.Unit] struct{ voiceBuilder[U] }

func NewControlChange[U buffer.Unit](buf buffer.Mutable[U]) ControlChangeBuilder[U] {
	return ControlChangeBuilder[U]{voiceBuilder[U]{message.NewBuilder(ControlChangeKind, buf)}}
}

func (b ControlChangeBuilder[U]) SetControl(v uint8)     { message.Set(b.Builder, control, v) }
func (b ControlChangeBuilder[U]) SetControlData(v uint8) { message.Set(b.Builder, controlData, v) }

func (b ControlChangeBuilder[U]) Build() (ControlChange[U], error) {
	return message.Wrap(b.Builder, func(m message.Message[U]) ControlChange[U] { return ControlChange[U]{voice[U]{m}} })
}

func ParseControlChange[U buffer.Unit](data []U) (ControlChange[U], error) {
	return message.As(ControlChangeKind, data, func(m message.Message[U]) ControlChange[U] { return ControlChange[U]{voice[U]{m}} })
}

type ProgramChange[U buffer.Unit] struct{ voice[U] }

func (m ProgramChange[U]) Program() uint8 { return message.Get(m.Message, program) }

type ProgramChangeBuilder[U buffer.Unit] struct{ voiceBuilder[U] }

func NewProgramChange[U buffer.Unit](buf buffer.Mutable[U]) ProgramChangeBuilder[U] {
	return ProgramChangeBuilder[U]{voiceBuilder[U]{message.NewBuilder(ProgramChangeKind, buf)}}
}

func (b ProgramChangeBuilder[U]) SetProgram(v uint8) { message.Set(b.Builder, program, v) }

func (b ProgramChangeBuilder[U]) Build() (ProgramChange[U], error) {
	return message.Wrap(b.Builder, func(m message.Message[U]) ProgramChange[U] { return ProgramChange[U]{voice[U]{m}} })
}

func ParseProgramChange[U buffer.Unit](data []U) (ProgramChange[U], error) {
	return message.As(ProgramChangeKind, data, func(m message.Message[U]) ProgramChange[U] { return ProgramChange[U]{voice[U]{m}} })
}

// ChannelPressure is channel-wide aftertouch.
type ChannelPressure[U buffer.Unit] struct{ voice[U] }

func (m ChannelPressure[U]) Pressure() uint8 { return message.Get(m.Message, chPressure) }

type ChannelPressureBuilder[U buffer.Unit] struct{ voiceBuilder[U] }

func NewChannelPressure[U buffer.Unit](buf buffer.Mutable[U]) ChannelPressureBuilder[U] {
	return ChannelPressureBuilder[U]{voiceBuilder[U]{message.NewBuilder(ChannelPressureKind, buf)}}
}

func (b ChannelPressureBuilder[U]) SetPressure(v uint8) { message.Set(b.Builder, chPressure, v) }

func (b ChannelPressureBuilder[U]) Build() (ChannelPressure[U], error) {
	return message.Wrap(b.Builder, func(m message.Message[U]) ChannelPressure[U] {
		return ChannelPressure[U]{voice[U]{m}}
	})
}

func ParseChannelPressure[U buffer.Unit](data []U) (ChannelPressure[U], error) {
	return message.As(ChannelPressureKind, data, func(m message.Message[U]) ChannelPressure[U] {
		return ChannelPressure[U]{voice[U]{m}}
	})
}

// PitchBend carries a 14-bit bend where 0x2000 is centre.
type PitchBend[U buffer.Unit] struct{ voice[U] }

func (m PitchBend[U]) Bend() uint16 { return message.Get(m.Message, bend) }

type PitchBendBuilder[U buffer.Unit] struct{ voiceBuilder[U] }

// NewPitchBend starts a pitch bend at centre.
func NewPitchBend[U buffer.Unit](buf buffer.Mutable[U]) PitchBendBuilder[U] {
	return PitchBendBuilder[U]{voiceBuilder[U]{message.NewBuilder(PitchBendKind, buf)}}
}

func (b PitchBendBuilder[U]) SetBend(v uint16) { message.Set(b.Builder, bend, v) }

func (b PitchBendBuilder[U]) Build() (PitchBend[U], error) {
	return message.Wrap(b.Builder, func(m message.Message[U]) PitchBend[U] { return PitchBend[U]{voice[U]{m}} })
}

func ParsePitchBend[U buffer.Unit](data []U) (PitchBend[U], error) {
	return message.As(PitchBendKind, data, func(m message.Message[U]) PitchBend[U] { return PitchBend[U]{voice[U]{m}} })
}

func wrap[U buffer.Unit](m message.Message[U]) Message[U] {
	v := voice[U]{m}
	switch m.Descriptor() {
	case NoteOffKind:
		return NoteOff[U]{v}
	case NoteOnKind:
		return NoteOn[U]{v}
	case KeyPressureKind:
		return KeyPressure[U]{v}
	case ControlChangeKind:
		return ControlChange[U]{v}
	case ProgramChangeKind:
		return ProgramChange[U]{v}
	case ChannelPressureKind:
		return ChannelPressure[U]{v}
	case PitchBendKind:
		return PitchBend[U]{v}
	default:
		panic("channelvoice1: foreign descriptor " + m.Descriptor().Name())
	}
}

var errUnknownStatus = protocol.InvalidData("unknown channel voice status")

// Opcode reads the status nibble without validating anything else. data
// must not be empty.
func Opcode[U buffer.Unit](data []U) uint8 {
	if w, ok := any(data).([]uint32); ok {
		return bits.Nibble(w[0], 2)
	}
	return uint8(data[0]) >> 4
}

// Parse routes data to the message named by its status nibble.
func Parse[U buffer.Unit](data []U) (Message[U], error) {
	if len(data) == 0 {
		return nil, protocol.ErrSliceTooShort
	}
	d := Kind(Opcode(data))
	if d == nil {
		return nil, errUnknownStatus
	}
	m, err := message.Parse(d, data)
	if err != nil {
		return nil, err
	}
	return wrap(m), nil
}

func unwrap[U buffer.Unit](m message.Shape[U]) message.Message[U] {
	return message.Unchecked(m.Descriptor(), m.Data())
}

// ToUmp translates a byte-stream message into a UMP packet on group.
func ToUmp(m Message[uint8], group uint8, buf buffer.Mutable[uint32]) (Message[uint32], error) {
	b := message.Translate(unwrap[uint8](m), buf)
	message.Set(b, schema.Group, group)
	out, err := b.Build()
	if err != nil {
		return nil, err
	}
	return wrap(out), nil
}

// ToBytes translates a UMP packet into its byte-stream form. The group is
// dropped.
func ToBytes(m Message[uint32], buf buffer.Mutable[uint8]) (Message[uint8], error) {
	out, err := message.Translate(unwrap[uint32](m), buf).Build()
	if err != nil {
		return nil, err
	}
	return wrap(out), nil
}
