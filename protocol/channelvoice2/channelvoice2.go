// Package channelvoice2 implements MIDI 2.0 channel voice messages (UMP
// message type 0x4). They have no byte-stream form.
package channelvoice2

import (
	"github.com/danmuck/midi2/protocol"
	"github.com/danmuck/midi2/protocol/bits"
	"github.com/danmuck/midi2/protocol/message"
	"github.com/danmuck/midi2/protocol/schema"
)

const Type = 0x4

const (
	StatusRegisteredPerNoteController  = 0x0
	StatusAssignablePerNoteController  = 0x1
	StatusRegisteredController         = 0x2
	StatusAssignableController         = 0x3
	StatusRelativeRegisteredController = 0x4
	StatusRelativeAssignableController = 0x5
	StatusPerNotePitchBend             = 0x6
	StatusNoteOff                      = 0x8
	StatusNoteOn                       = 0x9
	StatusKeyPressure                  = 0xA
	StatusControlChange                = 0xB
	StatusProgramChange                = 0xC
	StatusChannelPressure              = 0xD
	StatusChannelPitchBend             = 0xE
	StatusPerNoteManagement            = 0xF
)

var (
	note      = schema.U7("note", schema.Ump(0x0000_7F00), schema.Bytes())
	index7    = schema.U7("index", schema.Ump(0x0000_007F), schema.Bytes())
	index8    = schema.U8("index", schema.Ump(0x0000_00FF), schema.Bytes())
	bank      = schema.U7("bank", schema.Ump(0x0000_7F00), schema.Bytes())
	control   = schema.U7("control", schema.Ump(0x0000_7F00), schema.Bytes())
	data32    = schema.U32("data", schema.Ump(0, 0xFFFF_FFFF))
	velocity  = schema.U16("velocity", schema.Ump(0, 0xFFFF_0000))
	attribute = schema.New[Attribute](schema.Define("attribute", schema.Ump(0x0000_00FF, 0x0000_FFFF), schema.Bytes()), attributeCodec{})

	bankValid   = schema.Flag("bank valid", schema.Ump(0x0000_0001))
	program     = schema.U7("program", schema.Ump(0, 0x7F00_0000), schema.Bytes())
	programBank = schema.New(schema.Define("bank", schema.Ump(0, 0x0000_7F7F), schema.Bytes()), schema.Uint[uint16]{})

	detach = schema.Flag("detach", schema.Ump(0x0000_0002))
	reset  = schema.Flag("reset", schema.Ump(0x0000_0001))

	bend = schema.U32("bend", schema.Ump(0, 0xFFFF_FFFF)).WithDefault(0x8000_0000)
)

func define(name string, op uint32, fields ...schema.Field) *message.Descriptor {
	head := []schema.Field{schema.MessageType(Type), schema.VoiceStatus(op), schema.Group, schema.Channel}
	return message.Define(name, 2, 0, append(head, fields...))
}

var (
	RegisteredPerNoteControllerKind  = define("RegisteredPerNoteController", StatusRegisteredPerNoteController, note, index8, data32)
	AssignablePerNoteControllerKind  = define("AssignablePerNoteController", StatusAssignablePerNoteController, note, index8, data32)
	RegisteredControllerKind         = define("RegisteredController", StatusRegisteredController, bank, index7, data32)
	AssignableControllerKind         = define("AssignableController", StatusAssignableController, bank, index7, data32)
	RelativeRegisteredControllerKind = define("RelativeRegisteredController", StatusRelativeRegisteredController, bank, index7, data32)
	RelativeAssignableControllerKind = define("RelativeAssignableController", StatusRelativeAssignableController, bank, index7, data32)
	PerNotePitchBendKind             = define("PerNotePitchBend", StatusPerNotePitchBend, note, bend)
	NoteOffKind                      = define("NoteOff", StatusNoteOff, note, attribute, velocity)
	NoteOnKind                       = define("NoteOn", StatusNoteOn, note, attribute, velocity)
	KeyPressureKind                  = define("KeyPressure", StatusKeyPressure, note, data32)
	ControlChangeKind                = define("ControlChange", StatusControlChange, control, data32)
	ProgramChangeKind                = define("ProgramChange", StatusProgramChange, bankValid, program, programBank)
	ChannelPressureKind              = define("ChannelPressure", StatusChannelPressure, data32)
	ChannelPitchBendKind             = define("ChannelPitchBend", StatusChannelPitchBend, bend)
	PerNoteManagementKind            = define("PerNoteManagement", StatusPerNoteManagement, note, detach, reset)
)

// Kind returns the descriptor for a status nibble, or nil.
func Kind(op uint8) *message.Descriptor {
	switch op {
	case StatusRegisteredPerNoteController:
		return RegisteredPerNoteControllerKind
	case StatusAssignablePerNoteController:
		return AssignablePerNoteControllerKind
	case StatusRegisteredController:
		return RegisteredControllerKind
	case StatusAssignableController:
		return AssignableControllerKind
	case StatusRelativeRegisteredController:
		return RelativeRegisteredControllerKind
	case StatusRelativeAssignableController:
		return RelativeAssignableControllerKind
	case StatusPerNotePitchBend:
		return PerNotePitchBendKind
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
	case StatusChannelPitchBend:
		return ChannelPitchBendKind
	case StatusPerNoteManagement:
		return PerNoteManagementKind
	default:
		return nil
	}
}

// Message is any MIDI 2.0 channel voice message.
type Message interface {
	message.Shape[uint32]
	Group() uint8
	Channel() uint8
	channelVoice2()
}

type voice struct{ message.Message[uint32] }

func (voice) channelVoice2() {}

func (m voice) Group() uint8   { return message.Get(m.Message, schema.Group) }
func (m voice) Channel() uint8 { return message.Get(m.Message, schema.Channel) }

type voiceBuilder struct{ *message.Builder[uint32] }

func (b voiceBuilder) SetGroup(v uint8)   { message.Set(b.Builder, schema.Group, v) }
func (b voiceBuilder) SetChannel(v uint8) { message.Set(b.Builder, schema.Channel, v) }

// noted is embedded by every per-note message.
type noted struct{ voice }

func (m noted) Note() uint8 { return message.Get(m.Message, note) }

type notedBuilder struct{ voiceBuilder }

func (b notedBuilder) SetNote(v uint8) { message.Set(b.Builder, note, v) }

// controller is the shape shared by the four bank/index controller kinds.
type controller struct{ voice }

func (m controller) Bank() uint8  { return message.Get(m.Message, bank) }
func (m controller) Index() uint8 { return message.Get(m.Message, index7) }

type controllerBuilder struct{ voiceBuilder }

func (b controllerBuilder) SetBank(v uint8)  { message.Set(b.Builder, bank, v) }
func (b controllerBuilder) SetIndex(v uint8) { message.Set(b.Builder, index7, v) }

// perNoteController is the shape shared by the two per-note controller kinds.
type perNoteController struct{ noted }

func (m perNoteController) Index() uint8           { return message.Get(m.Message, index8) }
func (m perNoteController) ControllerData() uint32 { return message.Get(m.Message, data32) }

type perNoteControllerBuilder struct{ notedBuilder }

func (b perNoteControllerBuilder) SetIndex(v uint8)           { message.Set(b.Builder, index8, v) }
func (b perNoteControllerBuilder) SetControllerData(v uint32) { message.Set(b.Builder, data32, v) }

type RegisteredPerNoteController struct{ perNoteController }

type AssignablePerNoteController struct{ perNoteController }

// RegisteredController is a registered parameter number (RPN) change.
type RegisteredController struct{ controller }

func (m RegisteredController) ControllerData() uint32 { return message.Get(m.Message, data32) }

// AssignableController is a non-registered parameter number (NRPN) change.
type AssignableController struct{ controller }

func (m AssignableController) ControllerData() uint32 { return message.Get(m.Message, data32) }

// RelativeRegisteredController adds a signed delta to an RPN.
type RelativeRegisteredController struct{ controller }

func (m RelativeRegisteredController) ControllerData() int32 {
	return int32(message.Get(m.Message, data32))
}

// RelativeAssignableController adds a signed delta to an NRPN.
type RelativeAssignableController struct{ controller }

func (m RelativeAssignableController) ControllerData() int32 {
	return int32(message.Get(m.Message, data32))
}

// PerNotePitchBend carries a 32-bit bend where 0x8000_0000 is centre.
type PerNotePitchBend struct{ noted }

func (m PerNotePitchBend) Bend() uint32 { return message.Get(m.Message, bend) }

type NoteOff struct{ noted }

func (m NoteOff) Velocity() uint16     { return message.Get(m.Message, velocity) }
func (m NoteOff) Attribute() Attribute { return message.Get(m.Message, attribute) }

type NoteOn struct{ noted }

func (m NoteOn) Velocity() uint16     { return message.Get(m.Message, velocity) }
func (m NoteOn) Attribute() Attribute { return message.Get(m.Message, attribute) }

// KeyPressure is polyphonic aftertouch.
type KeyPressure struct{ noted }

func (m KeyPressure) Pressure() uint32 { return message.Get(m.Message, data32) }

type ControlChange struct{ voice }

func (m ControlChange) Control() uint8      { return message.Get(m.Message, control) }
func (m ControlChange) ControlData() uint32 { return message.Get(m.Message, data32) }

type ProgramChange struct{ voice }

func (m ProgramChange) Program() uint8 { return message.Get(m.Message, program) }

// Bank reports the 14-bit bank and whether the sender marked it valid.
func (m ProgramChange) Bank() (uint16, bool) {
	return message.Get(m.Message, programBank), message.Get(m.Message, bankValid)
}

type ChannelPressure struct{ voice }

func (m ChannelPressure) Pressure() uint32 { return message.Get(m.Message, data32) }

// ChannelPitchBend carries a 32-bit bend where 0x8000_0000 is centre.
type ChannelPitchBend struct{ voice }

func (m ChannelPitchBend) Bend() uint32 { return message.Get(m.Message, bend) }

type PerNoteManagement struct{ noted }

func (m PerNoteManagement) Detach() bool { return message.Get(m.Message, detach) }
func (m PerNoteManagement) Reset() bool  { return message.Get(m.Message, reset) }

func wrap(m message.Message[uint32]) Message {
	v := voice{m}
	n := noted{v}
	switch m.Descriptor() {
	case RegisteredPerNoteControllerKind:
		return RegisteredPerNoteController{perNoteController{n}}
	case AssignablePerNoteControllerKind:
		return AssignablePerNoteController{perNoteController{n}}
	case RegisteredControllerKind:
		return RegisteredController{controller{v}}
	case AssignableControllerKind:
		return AssignableController{controller{v}}
	case RelativeRegisteredControllerKind:
		return RelativeRegisteredController{controller{v}}
	case RelativeAssignableControllerKind:
		return RelativeAssignableController{controller{v}}
	case PerNotePitchBendKind:
		return PerNotePitchBend{n}
	case NoteOffKind:
		return NoteOff{n}
	case NoteOnKind:
		return NoteOn{n}
	case KeyPressureKind:
		return KeyPressure{n}
	case ControlChangeKind:
		return ControlChange{v}
	case ProgramChangeKind:
		return ProgramChange{v}
	case ChannelPressureKind:
		return ChannelPressure{v}
	case ChannelPitchBendKind:
		return ChannelPitchBend{v}
	case PerNoteManagementKind:
		return PerNoteManagement{n}
	default:
		panic("channelvoice2: foreign descriptor " + m.Descriptor().Name())
	}
}

var errUnknownStatus = protocol.InvalidData("unknown midi2 channel voice status")

// Parse routes data to the message named by its status nibble.
func Parse(data []uint32) (Message, error) {
	if len(data) == 0 {
		return nil, protocol.ErrSliceTooShort
	}
	if bits.Nibble(data[0], 0) != Type {
		return nil, protocol.ErrWrongMessageType
	}
	d := Kind(bits.Nibble(data[0], 2))
	if d == nil {
		return nil, errUnknownStatus
	}
	m, err := message.Parse(d, data)
	if err != nil {
		return nil, err
	}
	return wrap(m), nil
}

// ParseAs parses data and asserts the result is a T.
func ParseAs[T Message](data []uint32) (T, error) {
	var zero T
	m, err := Parse(data)
	if err != nil {
		return zero, err
	}
	t, ok := m.(T)
	if !ok {
		return zero, protocol.ErrWrongStatus
	}
	return t, nil
}
