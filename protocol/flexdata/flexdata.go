// Package flexdata implements flex data messages (UMP message type 0xD):
// tempo, time signature, metronome and key signature settings plus
// segmented metadata and performance text.
package flexdata

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

const Type = 0xD

// Status banks.
const (
	BankSetup       = 0x00
	BankMetadata    = 0x01
	BankPerformance = 0x02
)

// Setup bank statuses.
const (
	StatusSetTempo         = 0x00
	StatusSetTimeSignature = 0x01
	StatusSetMetronome     = 0x02
	StatusSetKeySignature  = 0x05
)

// Address selects whether a message applies to one channel or the whole
// group.
type Address uint8

const (
	AddressChannel Address = 0
	AddressGroup   Address = 1
)

var (
	errAddress = protocol.InvalidData("invalid flex data address")

	roleSchema   = schema.Define("format", schema.Ump(0x00C0_0000), schema.Bytes())
	bankSchema   = schema.Define("bank", schema.Ump(0x0000_FF00), schema.Bytes())
	statusSchema = schema.Define("status", schema.Ump(0x0000_00FF), schema.Bytes())

	complete = schema.Constant(roleSchema, uint32(segment.Complete), protocol.ErrPacketSequence)
	address  = schema.New(schema.Define("address", schema.Ump(0x0030_0000), schema.Bytes()),
		schema.OneOf(errAddress, AddressChannel, AddressGroup)).WithDefault(AddressGroup)

	tempo         = schema.U32("tempo", schema.Ump(0, 0xFFFF_FFFF))
	numerator     = schema.U8("numerator", schema.Ump(0, 0xFF00_0000), schema.Bytes())
	denominator   = schema.U8("denominator", schema.Ump(0, 0x00FF_0000), schema.Bytes())
	thirtySeconds = schema.U8("32nd notes", schema.Ump(0, 0x0000_FF00), schema.Bytes())

	clicks       = schema.U8("clocks per click", schema.Ump(0, 0xFF00_0000), schema.Bytes())
	accent1      = schema.U8("bar accent 1", schema.Ump(0, 0x00FF_0000), schema.Bytes())
	accent2      = schema.U8("bar accent 2", schema.Ump(0, 0x0000_FF00), schema.Bytes())
	accent3      = schema.U8("bar accent 3", schema.Ump(0, 0x0000_00FF), schema.Bytes())
	subdivision1 = schema.U8("subdivision clicks 1", schema.Ump(0, 0, 0xFF00_0000), schema.Bytes())
	subdivision2 = schema.U8("subdivision clicks 2", schema.Ump(0, 0, 0x00FF_0000), schema.Bytes())

	sharpsFlats = schema.New(schema.Define("sharps flats", schema.Ump(0, 0xF000_0000), schema.Bytes()), schema.Signed{Width: 4})
	tonic       = schema.New[Tonic](schema.Define("tonic", schema.Ump(0, 0x0F00_0000), schema.Bytes()), tonicCodec{}).WithDefault(C)
)

func header(bank, status uint32) []schema.Field {
	return []schema.Field{
		schema.MessageType(Type),
		schema.Group,
		address,
		schema.Channel,
		schema.Constant(bankSchema, bank, protocol.ErrWrongStatus),
		schema.Constant(statusSchema, status, protocol.ErrWrongStatus),
	}
}

func define(name string, status uint32, fields ...schema.Field) *message.Descriptor {
	head := append(header(BankSetup, status), complete)
	return message.Define(name, 4, 0, append(head, fields...))
}

var (
	SetTempoKind         = define("SetTempo", StatusSetTempo, tempo)
	SetTimeSignatureKind = define("SetTimeSignature", StatusSetTimeSignature, numerator, denominator, thirtySeconds)
	SetMetronomeKind     = define("SetMetronome", StatusSetMetronome, clicks, accent1, accent2, accent3, subdivision1, subdivision2)
	SetKeySignatureKind  = define("SetKeySignature", StatusSetKeySignature, sharpsFlats, tonic)
)

// TextFormat is the packet layout of text messages: 12 zero-padded bytes
// per packet starting at word 1.
var TextFormat = segment.Format{
	Words:    4,
	Role:     roleSchema,
	Header:   0xFF3F_FFFF,
	Offset:   4,
	Capacity: 12,
}

var errTextBank = protocol.InvalidData("not a text bank")

var textBank = schema.New(bankSchema, schema.OneOf[uint8](errTextBank, BankMetadata, BankPerformance)).WithDefault(BankMetadata)

var textStatus = schema.New(statusSchema, schema.Uint[uint8]{})

var TextKind = message.Define("Text", 4, 0,
	[]schema.Field{schema.MessageType(Type), schema.Group, address, schema.Channel, textBank, textStatus},
	message.WithCheck(TextFormat.Validate),
	message.WithSize(TextFormat.Size),
)

// Message is any flex data message.
type Message interface {
	message.Shape[uint32]
	Group() uint8
	Channel() (uint8, bool)
	flexData()
}

type flex struct{ message.Message[uint32] }

func (flex) flexData() {}

func (m flex) Group() uint8 { return message.Get(m.Message, schema.Group) }

// Channel reports the addressed channel. ok is false for group-wide
// messages.
func (m flex) Channel() (ch uint8, ok bool) {
	if message.Get(m.Message, address) != AddressChannel {
		return 0, false
	}
	return message.Get(m.Message, schema.Channel), true
}

type flexBuilder struct{ *message.Builder[uint32] }

func (b flexBuilder) SetGroup(v uint8) { message.Set(b.Builder, schema.Group, v) }

// SetChannel addresses the message to one channel. Messages address the
// whole group by default.
func (b flexBuilder) SetChannel(v uint8) {
	message.Set(b.Builder, address, AddressChannel)
	message.Set(b.Builder, schema.Channel, v)
}

// SetTempo carries the quarter-note duration in units of 10 ns.
type SetTempo struct{ flex }

func (m SetTempo) Tempo() uint32 { return message.Get(m.Message, tempo) }

type SetTempoBuilder struct{ flexBuilder }

func NewSetTempo(buf buffer.Mutable[uint32]) SetTempoBuilder {
	return SetTempoBuilder{flexBuilder{message.NewBuilder(SetTempoKind, buf)}}
}

func (b SetTempoBuilder) SetTempo(v uint32) { message.Set(b.Builder, tempo, v) }

func (b SetTempoBuilder) Build() (SetTempo, error) {
	return message.Wrap(b.Builder, func(m message.Message[uint32]) SetTempo { return SetTempo{flex{m}} })
}

type SetTimeSignature struct{ flex }

func (m SetTimeSignature) Numerator() uint8 { return message.Get(m.Message, numerator) }

// Denominator is a negative power of two: 2 means quarter notes.
func (m SetTimeSignature) Denominator() uint8 { return message.Get(m.Message, denominator) }

func (m SetTimeSignature) ThirtySecondNotes() uint8 { return message.Get(m.Message, thirtySeconds) }

type SetTimeSignatureBuilder struct{ flexBuilder }

func NewSetTimeSignature(buf buffer.Mutable[uint32]) SetTimeSignatureBuilder {
	return SetTimeSignatureBuilder{flexBuilder{message.NewBuilder(SetTimeSignatureKind, buf)}}
}

func (b SetTimeSignatureBuilder) SetNumerator(v uint8)   { message.Set(b.Builder, numerator, v) }
func (b SetTimeSignatureBuilder) SetDenominator(v uint8) { message.Set(b.Builder, denominator, v) }
func (b SetTimeSignatureBuilder) SetThirtySecondNotes(v uint8) {
	message.Set(b.Builder, thirtySeconds, v)
}

func (b SetTimeSignatureBuilder) Build() (SetTimeSignature, error) {
	return message.Wrap(b.Builder, func(m message.Message[uint32]) SetTimeSignature {
		return SetTimeSignature{flex{m}}
	})
}

type SetMetronome struct{ flex }

func (m SetMetronome) ClocksPerClick() uint8 { return message.Get(m.Message, clicks) }

// BarAccents returns the three bar accent parts.
func (m SetMetronome) BarAccents() [3]uint8 {
	return [3]uint8{
		message.Get(m.Message, accent1),
		message.Get(m.Message, accent2),
		message.Get(m.Message, accent3),
	}
}

func (m SetMetronome) SubdivisionClicks() [2]uint8 {
	return [2]uint8{message.Get(m.Message, subdivision1), message.Get(m.Message, subdivision2)}
}

type SetMetronomeBuilder struct{ flexBuilder }

func NewSetMetronome(buf buffer.Mutable[uint32]) SetMetronomeBuilder {
	return SetMetronomeBuilder{flexBuilder{message.NewBuilder(SetMetronomeKind, buf)}}
}

func (b SetMetronomeBuilder) SetClocksPerClick(v uint8) { message.Set(b.Builder, clicks, v) }

func (b SetMetronomeBuilder) SetBarAccents(v [3]uint8) {
	message.Set(b.Builder, accent1, v[0])
	message.Set(b.Builder, accent2, v[1])
	message.Set(b.Builder, accent3, v[2])
}

func (b SetMetronomeBuilder) SetSubdivisionClicks(v [2]uint8) {
	message.Set(b.Builder, subdivision1, v[0])
	message.Set(b.Builder, subdivision2, v[1])
}

func (b SetMetronomeBuilder) Build() (SetMetronome, error) {
	return message.Wrap(b.Builder, func(m message.Message[uint32]) SetMetronome { return SetMetronome{flex{m}} })
}

type SetKeySignature struct{ flex }

// SharpsFlats is positive for sharps and negative for flats.
func (m SetKeySignature) SharpsFlats() int8 { return message.Get(m.Message, sharpsFlats) }
func (m SetKeySignature) Tonic() Tonic      { return message.Get(m.Message, tonic) }

type SetKeySignatureBuilder struct{ flexBuilder }

// NewSetKeySignature starts a key signature in C.
func NewSetKeySignature(buf buffer.Mutable[uint32]) SetKeySignatureBuilder {
	return SetKeySignatureBuilder{flexBuilder{message.NewBuilder(SetKeySignatureKind, buf)}}
}

func (b SetKeySignatureBuilder) SetSharpsFlats(v int8) { message.Set(b.Builder, sharpsFlats, v) }
func (b SetKeySignatureBuilder) SetTonic(v Tonic)      { message.Set(b.Builder, tonic, v) }

func (b SetKeySignatureBuilder) Build() (SetKeySignature, error) {
	return message.Wrap(b.Builder, func(m message.Message[uint32]) SetKeySignature {
		return SetKeySignature{flex{m}}
	})
}

// Text is a metadata or performance text event split over as many packets
// as the text needs.
type Text struct{ flex }

func (m Text) Bank() uint8   { return message.Get(m.Message, textBank) }
func (m Text) Status() uint8 { return message.Get(m.Message, textStatus) }

// Payload yields the text bytes with padding removed. Each call restarts.
func (m Text) Payload() iter.Seq[byte] { return TextFormat.Payload(m.Data()) }

func (m Text) PayloadLen() int { return TextFormat.Len(m.Data()) }

func (m Text) Text() string { return string(slices.Collect(m.Payload())) }

type TextBuilder struct {
	flexBuilder
	text []byte
}

func NewText(buf buffer.Mutable[uint32]) *TextBuilder {
	return &TextBuilder{flexBuilder: flexBuilder{message.NewBuilder(TextKind, buf)}}
}

func (b *TextBuilder) SetBank(v uint8)   { message.Set(b.Builder, textBank, v) }
func (b *TextBuilder) SetStatus(v uint8) { message.Set(b.Builder, textStatus, v) }
func (b *TextBuilder) SetText(s string)  { b.text = []byte(s) }

func (b *TextBuilder) Build() (Text, error) {
	b.Edit(func(buf buffer.Mutable[uint32]) error { return TextFormat.Write(buf, b.text) })
	return message.Wrap(b.Builder, func(m message.Message[uint32]) Text { return Text{flex{m}} })
}

var errUnknownStatus = protocol.InvalidData("unknown flex data status")

func kind(bank, status uint8) *message.Descriptor {
	switch bank {
	case BankSetup:
		switch status {
		case StatusSetTempo:
			return SetTempoKind
		case StatusSetTimeSignature:
			return SetTimeSignatureKind
		case StatusSetMetronome:
			return SetMetronomeKind
		case StatusSetKeySignature:
			return SetKeySignatureKind
		}
	case BankMetadata, BankPerformance:
		return TextKind
	}
	return nil
}

func wrap(m message.Message[uint32]) Message {
	f := flex{m}
	switch m.Descriptor() {
	case SetTempoKind:
		return SetTempo{f}
	case SetTimeSignatureKind:
		return SetTimeSignature{f}
	case SetMetronomeKind:
		return SetMetronome{f}
	case SetKeySignatureKind:
		return SetKeySignature{f}
	case TextKind:
		return Text{f}
	default:
		panic("flexdata: foreign descriptor " + m.Descriptor().Name())
	}
}

// Parse routes data by its status bank and status.
func Parse(data []uint32) (Message, error) {
	if len(data) == 0 {
		return nil, protocol.ErrSliceTooShort
	}
	if bits.Nibble(data[0], 0) != Type {
		return nil, protocol.ErrWrongMessageType
	}
	d := kind(bits.Octet(data[0], 2), bits.Octet(data[0], 3))
	if d == nil {
		return nil, errUnknownStatus
	}
	m, err := message.Parse(d, data)
	if err != nil {
		return nil, err
	}
	return wrap(m), nil
}
