// Package sysex7 implements 7-bit system exclusive messages: segmented UMP
// packets of message type 0x3, and the byte-stream form 0xF0 ... 0xF7.
package sysex7

import (
	"iter"
	"slices"

	"github.com/danmuck/midi2/protocol"
	"github.com/danmuck/midi2/protocol/buffer"
	"github.com/danmuck/midi2/protocol/message"
	"github.com/danmuck/midi2/protocol/schema"
	"github.com/danmuck/midi2/protocol/segment"
)

const (
	Type  = 0x3
	Begin = 0xF0
	End   = 0xF7
)

var countSchema = schema.Define("count", schema.Ump(0x000F_0000), schema.Bytes())

// Format is the UMP packet layout: two words, up to six payload bytes.
var Format = segment.Format{
	Words:    2,
	Role:     schema.Define("role", schema.Ump(0x00F0_0000), schema.Bytes()),
	Header:   0xFF00_0000,
	Offset:   2,
	Capacity: 6,
	Count:    &countSchema,
	Seven:    true,
}

var (
	errUnterminated = protocol.InvalidData("sysex not terminated")
	errDataByte     = protocol.InvalidData("payload byte out of range")

	begin = schema.Constant(schema.Define("begin", schema.Ump(), schema.Bytes(0xFF)), Begin, protocol.ErrWrongStatus)
)

// Kind describes both forms. UMP data must start with a Complete or Start
// packet; byte data must start with 0xF0.
var Kind = message.Define("Sysex7", 2, 2,
	[]schema.Field{schema.MessageType(Type), schema.Group, begin},
	message.WithCheck(check),
	message.WithSize(size),
)

func check(u buffer.Units) error {
	if u.Kind() == buffer.Word {
		return Format.Validate(u)
	}
	for _, b := range u.Bytes[1:] {
		if b == End {
			return nil
		}
		if b > 0x7F {
			return errDataByte
		}
	}
	return errUnterminated
}

func size(u buffer.Units) int {
	if u.Kind() == buffer.Word {
		return Format.Size(u)
	}
	return slices.Index(u.Bytes[1:], End) + 2
}

// Sysex7 is a complete system exclusive message.
type Sysex7[U buffer.Unit] struct{ message.Message[U] }

// Group is always zero in the byte-stream form.
func (m Sysex7[U]) Group() uint8 { return message.Get(m.Message, schema.Group) }

// Payload yields the data bytes between the framing. Each call restarts.
func (m Sysex7[U]) Payload() iter.Seq[byte] {
	switch d := any(m.Data()).(type) {
	case []uint32:
		return Format.Payload(d)
	case []uint8:
		return slices.Values(d[1 : len(d)-1])
	}
	return func(func(byte) bool) {}
}

func (m Sysex7[U]) PayloadLen() int {
	if d, ok := any(m.Data()).([]uint8); ok {
		return len(d) - 2
	}
	return Format.Len(buffer.Unwrap[uint32](m.Units()))
}

func Parse[U buffer.Unit](data []U) (Sysex7[U], error) {
	return message.As(Kind, data, func(m message.Message[U]) Sysex7[U] { return Sysex7[U]{m} })
}

// Builder collects a payload and writes it on Build, chunked into packets
// for UMP storage or framed by 0xF0/0xF7 for byte storage.
type Builder[U buffer.Unit] struct {
	*message.Builder[U]
	payload []byte
}

func New[U buffer.Unit](buf buffer.Mutable[U]) *Builder[U] {
	return &Builder[U]{Builder: message.NewBuilder(Kind, buf)}
}

// SetGroup is a no-op in the byte-stream form.
func (b *Builder[U]) SetGroup(v uint8) { message.Set(b.Builder, schema.Group, v) }

// SetPayload replaces the payload. Bytes above 0x7F fail the builder.
func (b *Builder[U]) SetPayload(data []byte) {
	for _, v := range data {
		if v > 0x7F {
			b.Fail(errDataByte)
			return
		}
	}
	b.payload = slices.Clone(data)
}

func (b *Builder[U]) Build() (Sysex7[U], error) {
	b.Edit(func(buf buffer.Mutable[U]) error {
		if words, ok := any(buf).(buffer.Mutable[uint32]); ok {
			return Format.Write(words, b.payload)
		}
		bytes := any(buf).(buffer.Mutable[uint8])
		if err := bytes.Resize(len(b.payload) + 2); err != nil {
			return err
		}
		out := bytes.Units()
		out[0] = Begin
		copy(out[1:], b.payload)
		out[len(out)-1] = End
		return nil
	})
	return message.Wrap(b.Builder, func(m message.Message[U]) Sysex7[U] { return Sysex7[U]{m} })
}

// ToUmp re-chunks a byte-stream message into UMP packets on group.
func ToUmp(m Sysex7[uint8], group uint8, buf buffer.Mutable[uint32]) (Sysex7[uint32], error) {
	b := New(buf)
	b.SetGroup(group)
	b.SetPayload(slices.Collect(m.Payload()))
	return b.Build()
}

// ToBytes frames the payload of a UMP message with 0xF0/0xF7.
func ToBytes(m Sysex7[uint32], buf buffer.Mutable[uint8]) (Sysex7[uint8], error) {
	b := New(buf)
	b.SetPayload(slices.Collect(m.Payload()))
	return b.Build()
}
