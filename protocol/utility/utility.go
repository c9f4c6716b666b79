// Package utility implements the UMP utility messages (message type 0x0).
// Utility messages carry no group; the group nibble is reserved and written
// as zero.
package utility

import (
	"github.com/danmuck/midi2/protocol"
	"github.com/danmuck/midi2/protocol/bits"
	"github.com/danmuck/midi2/protocol/buffer"
	"github.com/danmuck/midi2/protocol/message"
	"github.com/danmuck/midi2/protocol/schema"
)

const Type = 0x0

const (
	StatusNoOp                 = 0x0
	StatusJitterReductionClock = 0x1
	StatusJitterReductionStamp = 0x2
	StatusDeltaClockstampTPQ   = 0x3
	StatusDeltaClockstamp      = 0x4
)

var (
	statusSchema = schema.Define("status", schema.Ump(0x00F0_0000), schema.Bytes())
	time16       = schema.U16("time", schema.Ump(0x0000_FFFF))
	ticks20      = schema.U32("ticks", schema.Ump(0x000F_FFFF))
)

func status(code uint32) schema.Property[uint32] {
	return schema.Constant(statusSchema, code, protocol.ErrWrongStatus)
}

var (
	NoOpKind = message.Define("NoOp", 1, 0, []schema.Field{
		schema.MessageType(Type), status(StatusNoOp),
	})
	JitterReductionClockKind = message.Define("JitterReductionClock", 1, 0, []schema.Field{
		schema.MessageType(Type), status(StatusJitterReductionClock), time16,
	})
	JitterReductionTimestampKind = message.Define("JitterReductionTimestamp", 1, 0, []schema.Field{
		schema.MessageType(Type), status(StatusJitterReductionStamp), time16,
	})
	DeltaClockstampTPQKind = message.Define("DeltaClockstampTPQ", 1, 0, []schema.Field{
		schema.MessageType(Type), status(StatusDeltaClockstampTPQ), time16,
	})
	DeltaClockstampKind = message.Define("DeltaClockstamp", 1, 0, []schema.Field{
		schema.MessageType(Type), status(StatusDeltaClockstamp), ticks20,
	})
)

// Message is any utility message.
type Message interface {
	message.Shape[uint32]
	utility()
}

type NoOp struct{ message.Message[uint32] }

func (NoOp) utility() {}

func ParseNoOp(data []uint32) (NoOp, error) {
	return message.As(NoOpKind, data, func(m message.Message[uint32]) NoOp { return NoOp{m} })
}

// NewNoOp builds a NoOp into buf.
func NewNoOp(buf buffer.Mutable[uint32]) (NoOp, error) {
	return message.Wrap(message.NewBuilder(NoOpKind, buf), func(m message.Message[uint32]) NoOp { return NoOp{m} })
}

// timed is the shape shared by the three 16-bit time messages.
type timed struct{ message.Message[uint32] }

func (m timed) Time() uint16 { return message.Get(m.Message, time16) }

type timedBuilder struct{ *message.Builder[uint32] }

func (b timedBuilder) SetTime(v uint16) { message.Set(b.Builder, time16, v) }

// JitterReductionClock carries the sender's clock time in 1/31250 s units.
type JitterReductionClock struct{ timed }

func (JitterReductionClock) utility() {}

func ParseJitterReductionClock(data []uint32) (JitterReductionClock, error) {
	return message.As(JitterReductionClockKind, data, func(m message.Message[uint32]) JitterReductionClock {
		return JitterReductionClock{timed{m}}
	})
}

type JitterReductionClockBuilder struct{ timedBuilder }

func NewJitterReductionClock(buf buffer.Mutable[uint32]) JitterReductionClockBuilder {
	return JitterReductionClockBuilder{timedBuilder{message.NewBuilder(JitterReductionClockKind, buf)}}
}

func (b JitterReductionClockBuilder) Build() (JitterReductionClock, error) {
	return message.Wrap(b.Builder, func(m message.Message[uint32]) JitterReductionClock {
		return JitterReductionClock{timed{m}}
	})
}

// JitterReductionTimestamp stamps the message that follows it.
type JitterReductionTimestamp struct{ timed }

func (JitterReductionTimestamp) utility() {}

func ParseJitterReductionTimestamp(data []uint32) (JitterReductionTimestamp, error) {
	return message.As(JitterReductionTimestampKind, data, func(m message.Message[uint32]) JitterReductionTimestamp {
		return JitterReductionTimestamp{timed{m}}
	})
}

type JitterReductionTimestampBuilder struct{ timedBuilder }

func NewJitterReductionTimestamp(buf buffer.Mutable[uint32]) JitterReductionTimestampBuilder {
	return JitterReductionTimestampBuilder{timedBuilder{message.NewBuilder(JitterReductionTimestampKind, buf)}}
}

func (b JitterReductionTimestampBuilder) Build() (JitterReductionTimestamp, error) {
	return message.Wrap(b.Builder, func(m message.Message[uint32]) JitterReductionTimestamp {
		return JitterReductionTimestamp{timed{m}}
	})
}

// DeltaClockstampTPQ declares the ticks-per-quarter-note resolution of
// subsequent delta clockstamps.
type DeltaClockstampTPQ struct{ timed }

func (DeltaClockstampTPQ) utility() {}

func ParseDeltaClockstampTPQ(data []uint32) (DeltaClockstampTPQ, error) {
	return message.As(DeltaClockstampTPQKind, data, func(m message.Message[uint32]) DeltaClockstampTPQ {
		return DeltaClockstampTPQ{timed{m}}
	})
}

type DeltaClockstampTPQBuilder struct{ timedBuilder }

func NewDeltaClockstampTPQ(buf buffer.Mutable[uint32]) DeltaClockstampTPQBuilder {
	return DeltaClockstampTPQBuilder{timedBuilder{message.NewBuilder(DeltaClockstampTPQKind, buf)}}
}

func (b DeltaClockstampTPQBuilder) Build() (DeltaClockstampTPQ, error) {
	return message.Wrap(b.Builder, func(m message.Message[uint32]) DeltaClockstampTPQ {
		return DeltaClockstampTPQ{timed{m}}
	})
}

// DeltaClockstamp is the tick delta since the previous event.
type DeltaClockstamp struct{ message.Message[uint32] }

func (DeltaClockstamp) utility() {}

func (m DeltaClockstamp) Ticks() uint32 { return message.Get(m.Message, ticks20) }

func ParseDeltaClockstamp(data []uint32) (DeltaClockstamp, error) {
	return message.As(DeltaClockstampKind, data, func(m message.Message[uint32]) DeltaClockstamp {
		return DeltaClockstamp{m}
	})
}

type DeltaClockstampBuilder struct{ *message.Builder[uint32] }

func NewDeltaClockstamp(buf buffer.Mutable[uint32]) DeltaClockstampBuilder {
	return DeltaClockstampBuilder{message.NewBuilder(DeltaClockstampKind, buf)}
}

// SetTicks fails the builder with ErrOutOfRange past 20 bits.
func (b DeltaClockstampBuilder) SetTicks(v uint32) { message.Set(b.Builder, ticks20, v) }

func (b DeltaClockstampBuilder) Build() (DeltaClockstamp, error) {
	return message.Wrap(b.Builder, func(m message.Message[uint32]) DeltaClockstamp { return DeltaClockstamp{m} })
}

func union[T Message](m T, err error) (Message, error) {
	if err != nil {
		return nil, err
	}
	return m, nil
}

var errUnknownStatus = protocol.InvalidData("unknown utility status")

// Parse routes data to the utility message named by its status nibble.
func Parse(data []uint32) (Message, error) {
	if len(data) == 0 {
		return nil, protocol.ErrSliceTooShort
	}
	if bits.Nibble(data[0], 0) != Type {
		return nil, protocol.ErrWrongMessageType
	}
	switch bits.Nibble(data[0], 2) {
	case StatusNoOp:
		return union(ParseNoOp(data))
	case StatusJitterReductionClock:
		return union(ParseJitterReductionClock(data))
	case StatusJitterReductionStamp:
		return union(ParseJitterReductionTimestamp(data))
	case StatusDeltaClockstampTPQ:
		return union(ParseDeltaClockstampTPQ(data))
	case StatusDeltaClockstamp:
		return union(ParseDeltaClockstamp(data))
	default:
		return nil, errUnknownStatus
	}
}
