// Package umpstream implements UMP stream messages (message type 0xF):
// endpoint and function block discovery, stream configuration, names and
// clip markers. Stream messages carry no group.
package umpstream

import (
	"iter"
	"slices"

	"github.com/danmuck/midi2/protocol"
	"github.com/danmuck/midi2/protocol/bits"
	"github.com/danmuck/midi2/protocol/buffer"
	"github.com/danmuck/midi2/protocol/message"
	"github.com/danmuck/midi2/protocol/schema"
	"github.com/danmuck/midi2/protocol/segment"
)

const Type = 0xF

const (
	StatusEndpointDiscovery               = 0x00
	StatusEndpointInfo                    = 0x01
	StatusDeviceIdentity                  = 0x02
	StatusEndpointName                    = 0x03
	StatusProductInstanceID               = 0x04
	StatusStreamConfigurationRequest      = 0x05
	StatusStreamConfigurationNotification = 0x06
	StatusFunctionBlockDiscovery          = 0x10
	StatusFunctionBlockInfo               = 0x11
	StatusFunctionBlockName               = 0x12
	StatusStartOfClip                     = 0x20
	StatusEndOfClip                       = 0x21
)

var (
	roleSchema   = schema.Define("format", schema.Ump(0x0C00_0000), schema.Bytes())
	statusSchema = schema.Define("status", schema.Ump(0x03FF_0000), schema.Bytes())

	complete = schema.Constant(roleSchema, uint32(segment.Complete), protocol.ErrPacketSequence)
)

func status(code uint32) schema.Property[uint32] {
	return schema.Constant(statusSchema, code, protocol.ErrWrongStatus)
}

// packetWords is the size of every UMP stream packet on the wire.
const packetWords = 4

// define builds a single-packet kind. Parsing needs only the words its
// fields reach; builders always emit the whole packet.
func define(name string, code uint32, fields ...schema.Field) *message.Descriptor {
	fields = append([]schema.Field{schema.MessageType(Type), status(code), complete}, fields...)
	minimum := 1
	for _, f := range fields {
		minimum = max(minimum, f.MinSize(buffer.Word))
	}
	return message.Define(name, minimum, 0, fields,
		message.WithSize(func(u buffer.Units) int { return min(u.Len(), packetWords) }),
	)
}

// newBuilder starts a single-packet message padded to the full packet.
func newBuilder(d *message.Descriptor, buf buffer.Mutable[uint32]) *message.Builder[uint32] {
	b := message.NewBuilder(d, buf)
	b.Edit(func(buf buffer.Mutable[uint32]) error { return buf.Resize(packetWords) })
	return b
}

// NameFormat carries endpoint names and product instance ids: 14 bytes per
// packet from octet 2 of word 0.
var NameFormat = segment.Format{
	Words:    4,
	Role:     roleSchema,
	Header:   0xF3FF_0000,
	Offset:   2,
	Capacity: 14,
}

// BlockNameFormat carries function block names: octet 2 of word 0 holds the
// block number, leaving 13 bytes per packet.
var BlockNameFormat = segment.Format{
	Words:    4,
	Role:     roleSchema,
	Header:   0xF3FF_FF00,
	Offset:   3,
	Capacity: 13,
}

func defineText(name string, code uint32, f segment.Format, fields ...schema.Field) *message.Descriptor {
	head := []schema.Field{schema.MessageType(Type), status(code)}
	return message.Define(name, packetWords, 0, append(head, fields...),
		message.WithCheck(f.Validate),
		message.WithSize(f.Size),
	)
}

// Message is any UMP stream message.
type Message interface {
	message.Shape[uint32]
	umpStream()
}

type stream struct{ message.Message[uint32] }

func (stream) umpStream() {}

var errUnknownStatus = protocol.InvalidData("unknown ump stream status")

// Kind returns the descriptor for a 10-bit status, or nil.
func Kind(status uint16) *message.Descriptor {
	switch status {
	case StatusEndpointDiscovery:
		return EndpointDiscoveryKind
	case StatusEndpointInfo:
		return EndpointInfoKind
	case StatusDeviceIdentity:
		return DeviceIdentityKind
	case StatusEndpointName:
		return EndpointNameKind
	case StatusProductInstanceID:
		return ProductInstanceIDKind
	case StatusStreamConfigurationRequest:
		return StreamConfigurationRequestKind
	case StatusStreamConfigurationNotification:
		return StreamConfigurationNotificationKind
	case StatusFunctionBlockDiscovery:
		return FunctionBlockDiscoveryKind
	case StatusFunctionBlockInfo:
		return FunctionBlockInfoKind
	case StatusFunctionBlockName:
		return FunctionBlockNameKind
	case StatusStartOfClip:
		return StartOfClipKind
	case StatusEndOfClip:
		return EndOfClipKind
	default:
		return nil
	}
}

func wrap(m message.Message[uint32]) Message {
	s := stream{m}
	switch m.Descriptor() {
	case EndpointDiscoveryKind:
		return EndpointDiscovery{s}
	case EndpointInfoKind:
		return EndpointInfo{s}
	case DeviceIdentityKind:
		return DeviceIdentity{s}
	case EndpointNameKind:
		return EndpointName{named{s, NameFormat}}
	case ProductInstanceIDKind:
		return ProductInstanceID{named{s, NameFormat}}
	case StreamConfigurationRequestKind:
		return StreamConfigurationRequest{configuration{s}}
	case StreamConfigurationNotificationKind:
		return StreamConfigurationNotification{configuration{s}}
	case FunctionBlockDiscoveryKind:
		return FunctionBlockDiscovery{s}
	case FunctionBlockInfoKind:
		return FunctionBlockInfo{s}
	case FunctionBlockNameKind:
		return FunctionBlockName{named{s, BlockNameFormat}}
	case StartOfClipKind:
		return StartOfClip{s}
	case EndOfClipKind:
		return EndOfClip{s}
	default:
		panic("umpstream: foreign descriptor " + m.Descriptor().Name())
	}
}

// Status reads the 10-bit status without validating anything else. data
// must not be empty.
func Status(data []uint32) uint16 {
	return uint16(bits.Field(data[0], 16, 10))
}

// Parse routes data to the message named by its status.
func Parse(data []uint32) (Message, error) {
	if len(data) == 0 {
		return nil, protocol.ErrSliceTooShort
	}
	if bits.Nibble(data[0], 0) != Type {
		return nil, protocol.ErrWrongMessageType
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

// named is the shape shared by the three name messages.
type named struct {
	stream
	format segment.Format
}

// Payload yields the name bytes with padding removed. Each call restarts.
func (m named) Payload() iter.Seq[byte] { return m.format.Payload(m.Data()) }

func (m named) PayloadLen() int { return m.format.Len(m.Data()) }

// Name returns the payload as a string. Names are UTF-8 on the wire.
func (m named) Name() string { return string(slices.Collect(m.Payload())) }

type namedBuilder struct {
	*message.Builder[uint32]
	format segment.Format
	name   []byte
}

func (b *namedBuilder) SetName(s string) { b.name = []byte(s) }

func (b *namedBuilder) build() (Message, error) {
	b.Edit(func(buf buffer.Mutable[uint32]) error { return b.format.Write(buf, b.name) })
	m, err := b.Builder.Build()
	if err != nil {
		return nil, err
	}
	return wrap(m), nil
}
