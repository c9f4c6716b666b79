// Package sysex8 implements 8-bit system exclusive messages (UMP message
// type 0x5). Every packet repeats a stream id so that several transfers can
// interleave on one group.
package sysex8

import (
	"iter"
	"slices"

	"github.com/danmuck/midi2/protocol/buffer"
	"github.com/danmuck/midi2/protocol/message"
	"github.com/danmuck/midi2/protocol/schema"
	"github.com/danmuck/midi2/protocol/segment"
)

const Type = 0x5

var countSchema = schema.Define("count", schema.Ump(0x000F_0000), schema.Bytes())

// Format is the UMP packet layout. The count nibble includes the stream id
// byte, so a packet carries at most 13 payload bytes.
var Format = segment.Format{
	Words:     4,
	Role:      schema.Define("role", schema.Ump(0x00F0_0000), schema.Bytes()),
	Header:    0xFF00_FF00,
	Offset:    3,
	Capacity:  13,
	Count:     &countSchema,
	CountBias: 1,
}

var streamID = schema.New(schema.Define("stream id", schema.Ump(0x0000_FF00), schema.Bytes()), schema.Uint[uint8]{})

var Kind = message.Define("Sysex8", 4, 0,
	[]schema.Field{schema.MessageType(Type), schema.Group, streamID},
	message.WithCheck(Format.Validate),
	message.WithSize(Format.Size),
)

type Sysex8 struct{ message.Message[uint32] }

func (m Sysex8) Group() uint8    { return message.Get(m.Message, schema.Group) }
func (m Sysex8) StreamID() uint8 { return message.Get(m.Message, streamID) }

// Payload yields the data bytes across every packet. Each call restarts.
func (m Sysex8) Payload() iter.Seq[byte] { return Format.Payload(m.Data()) }

func (m Sysex8) PayloadLen() int { return Format.Len(m.Data()) }

func Parse(data []uint32) (Sysex8, error) {
	return message.As(Kind, data, func(m message.Message[uint32]) Sysex8 { return Sysex8{m} })
}

// Builder collects a payload and chunks it into packets on Build.
type Builder struct {
	*message.Builder[uint32]
	payload []byte
}

func New(buf buffer.Mutable[uint32]) *Builder {
	return &Builder{Builder: message.NewBuilder(Kind, buf)}
}

func (b *Builder) SetGroup(v uint8)       { message.Set(b.Builder, schema.Group, v) }
func (b *Builder) SetStreamID(v uint8)    { message.Set(b.Builder, streamID, v) }
func (b *Builder) SetPayload(data []byte) { b.payload = slices.Clone(data) }

func (b *Builder) Build() (Sysex8, error) {
	b.Edit(func(buf buffer.Mutable[uint32]) error { return Format.Write(buf, b.payload) })
	return message.Wrap(b.Builder, func(m message.Message[uint32]) Sysex8 { return Sysex8{m} })
}
