// Package systemcommon implements system common and system real-time
// messages: UMP message type 0x1 and byte-stream statuses 0xF1 to 0xFF.
package systemcommon

import (
	"github.com/danmuck/midi2/protocol"
	"github.com/danmuck/midi2/protocol/bits"
	"github.com/danmuck/midi2/protocol/buffer"
	"github.com/danmuck/midi2/protocol/message"
	"github.com/danmuck/midi2/protocol/schema"
)

const Type = 0x1

const (
	StatusTimeCode            = 0xF1
	StatusSongPositionPointer = 0xF2
	StatusSongSelect          = 0xF3
	StatusTuneRequest         = 0xF6
	StatusTimingClock         = 0xF8
	StatusStart               = 0xFA
	StatusContinue            = 0xFB
	StatusStop                = 0xFC
	StatusActiveSensing       = 0xFE
	StatusReset               = 0xFF
)

var (
	timeCode = schema.U7("time code", schema.Ump(0x0000_7F00), schema.Bytes(0, 0x7F))
	song     = schema.U7("song", schema.Ump(0x0000_7F00), schema.Bytes(0, 0x7F))
	position = schema.New(
		schema.Define("position", schema.Ump(0x0000_7F7F), schema.Bytes(0, 0x7F, 0x7F), schema.WithOrder(schema.LSBFirst)),
		schema.Uint[uint16]{},
	)
)

func define(name string, status uint32, bytes int, fields ...schema.Field) *message.Descriptor {
	head := []schema.Field{schema.MessageType(Type), schema.SystemStatus(status), schema.Group}
	return message.Define(name, 1, bytes, append(head, fields...), message.WithDataBytes())
}

var (
	TimeCodeKind            = define("TimeCode", StatusTimeCode, 2, timeCode)
	SongPositionPointerKind = define("SongPositionPointer", StatusSongPositionPointer, 3, position)
	SongSelectKind          = define("SongSelect", StatusSongSelect, 2, song)
	TuneRequestKind         = define("TuneRequest", StatusTuneRequest, 1)
	TimingClockKind         = define("TimingClock", StatusTimingClock, 1)
	StartKind               = define("Start", StatusStart, 1)
	ContinueKind            = define("Continue", StatusContinue, 1)
	StopKind                = define("Stop", StatusStop, 1)
	ActiveSensingKind       = define("ActiveSensing", StatusActiveSensing, 1)
	ResetKind               = define("Reset", StatusReset, 1)
)

// Kind returns the descriptor for a status byte, or nil when the status is
// not a system common or real-time message.
func Kind(status uint8) *message.Descriptor {
	switch status {
	case StatusTimeCode:
		return TimeCodeKind
	case StatusSongPositionPointer:
		return SongPositionPointerKind
	case StatusSongSelect:
		return SongSelectKind
	case StatusTuneRequest:
		return TuneRequestKind
	case StatusTimingClock:
		return TimingClockKind
	case StatusStart:
		return StartKind
	case StatusContinue:
		return ContinueKind
	case StatusStop:
		return StopKind
	case StatusActiveSensing:
		return ActiveSensingKind
	case StatusReset:
		return ResetKind
	default:
		return nil
	}
}

// Message is any system common or real-time message.
type Message[U buffer.Unit] interface {
	message.Shape[U]
	Group() uint8
	systemCommon()
}

type common[U buffer.Unit] struct{ message.Message[U] }

func (common[U]) systemCommon() {}

// Group is always zero in the byte-stream form.
func (m common[U]) Group() uint8 { return message.Get(m.Message, schema.Group) }

type commonBuilder[U buffer.Unit] struct{ *message.Builder[U] }

// SetGroup is a no-op in the byte-stream form.
func (b commonBuilder[U]) SetGroup(v uint8) { message.Set(b.Builder, schema.Group, v) }

type TimeCode[U buffer.Unit] struct{ common[U] }

// TimeCode is the quarter-frame message type and value nibbles.
func (m TimeCode[U]) TimeCode() uint8 { return message.Get(m.Message, timeCode) }

type TimeCodeBuilder[U buffer.Unit] struct{ commonBuilder[U] }

func NewTimeCode[U buffer.Unit](buf buffer.Mutable[U]) TimeCodeBuilder[U] {
	return TimeCodeBuilder[U]{commonBuilder[U]{message.NewBuilder(TimeCodeKind, buf)}}
}

func (b TimeCodeBuilder[U]) SetTimeCode(v uint8) { message.Set(b.Builder, timeCode, v) }

func (b TimeCodeBuilder[U]) Build() (TimeCode[U], error) {
	return message.Wrap(b.Builder, func(m message.Message[U]) TimeCode[U] { return TimeCode[U]{common[U]{m}} })
}

func ParseTimeCode[U buffer.Unit](data []U) (TimeCode[U], error) {
	return message.As(TimeCodeKind, data, func(m message.Message[U]) TimeCode[U] { return TimeCode[U]{common[U]{m}} })
}

type SongPositionPointer[U buffer.Unit] struct{ common[U] }

// Position counts MIDI beats (sixteenth notes) since the start of the song.
func (m SongPositionPointer[U]) Position() uint16 { return message.Get(m.Message, position) }

type SongPositionPointerBuilder[U buffer.Unit] struct{ commonBuilder[U] }

func NewSongPositionPointer[U buffer.Unit](buf buffer.Mutable[U]) SongPositionPointerBuilder[U] {
	return SongPositionPointerBuilder[U]{commonBuilder[U]{message.NewBuilder(SongPositionPointerKind, buf)}}
}

func (b SongPositionPointerBuilder[U]) SetPosition(v uint16) { message.Set(b.Builder, position, v) }

func (b SongPositionPointerBuilder[U]) Build() (SongPositionPointer[U], error) {
	return message.Wrap(b.Builder, func(m message.Message[U]) SongPositionPointer[U] {
		return SongPositionPointer[U]{common[U]{m}}
	})
}

func ParseSongPositionPointer[U buffer.Unit](data []U) (SongPositionPointer[U], error) {
	return message.As(SongPositionPointerKind, data, func(m message.Message[U]) SongPositionPointer[U] {
		return SongPositionPointer[U]{common[U]{m}}
	})
}

type SongSelect[U buffer.Unit] struct{ common[U] }

func (m SongSelect[U]) Song() uint8 { return message.Get(m.Message, song) }

type SongSelectBuilder[U buffer.Unit] struct{ commonBuilder[U] }

func NewSongSelect[U buffer.Unit](buf buffer.Mutable[U]) SongSelectBuilder[U] {
	return SongSelectBuilder[U]{commonBuilder[U]{message.NewBuilder(SongSelectKind, buf)}}
}

func (b SongSelectBuilder[U]) SetSong(v uint8) { message.Set(b.Builder, song, v) }

func (b SongSelectBuilder[U]) Build() (SongSelect[U], error) {
	return message.Wrap(b.Builder, func(m message.Message[U]) SongSelect[U] { return SongSelect[U]{common[U]{m}} })
}

func ParseSongSelect[U buffer.Unit](data []U) (SongSelect[U], error) {
	return message.As(SongSelectKind, data, func(m message.Message[U]) SongSelect[U] { return SongSelect[U]{common[U]{m}} })
}

// Status-only messages.
type (
	TuneRequest[U buffer.Unit]   struct{ common[U] }
	TimingClock[U buffer.Unit]   struct{ common[U] }
	Start[U buffer.Unit]         struct{ common[U] }
	Continue[U buffer.Unit]      struct{ common[U] }
	Stop[U buffer.Unit]          struct{ common[U] }
	ActiveSensing[U buffer.Unit] struct{ common[U] }
	Reset[U buffer.Unit]         struct{ common[U] }
)

// StatusBuilder builds any status-only message. Build returns the typed
// message through the package-level union.
type StatusBuilder[U buffer.Unit] struct{ commonBuilder[U] }

// NewStatus starts a status-only message. Statuses that carry data fail
// the builder with ErrWrongStatus.
func NewStatus[U buffer.Unit](status uint8, buf buffer.Mutable[U]) StatusBuilder[U] {
	d := Kind(status)
	if d == nil || d == TimeCodeKind || d == SongPositionPointerKind || d == SongSelectKind {
		b := message.NewBuilder(TuneRequestKind, buf)
		b.Fail(protocol.ErrWrongStatus)
		return StatusBuilder[U]{commonBuilder[U]{b}}
	}
	return StatusBuilder[U]{commonBuilder[U]{message.NewBuilder(d, buf)}}
}

func (b StatusBuilder[U]) Build() (Message[U], error) {
	m, err := b.Builder.Build()
	if err != nil {
		return nil, err
	}
	return wrap(m), nil
}

func wrap[U buffer.Unit](m message.Message[U]) Message[U] {
	c := common[U]{m}
	switch m.Descriptor() {
	case TimeCodeKind:
		return TimeCode[U]{c}
	case SongPositionPointerKind:
		return SongPositionPointer[U]{c}
	case SongSelectKind:
		return SongSelect[U]{c}
	case TuneRequestKind:
		return TuneRequest[U]{c}
	case TimingClockKind:
		return TimingClock[U]{c}
	case StartKind:
		return Start[U]{c}
	case ContinueKind:
		return Continue[U]{c}
	case StopKind:
		return Stop[U]{c}
	case ActiveSensingKind:
		return ActiveSensing[U]{c}
	case ResetKind:
		return Reset[U]{c}
	default:
		panic("systemcommon: foreign descriptor " + m.Descriptor().Name())
	}
}

var errUnknownStatus = protocol.InvalidData("unknown system common status")

// Status reads the status octet without validating anything else. data must
// not be empty.
func Status[U buffer.Unit](data []U) uint8 {
	if w, ok := any(data).([]uint32); ok {
		return bits.Octet(w[0], 1)
	}
	return uint8(data[0])
}

// Parse routes data to the message named by its status.
func Parse[U buffer.Unit](data []U) (Message[U], error) {
	if len(data) == 0 {
		return nil, protocol.ErrSliceTooShort
	}
	d := Kind(Status(data))
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
