// Package ump routes Universal MIDI Packets to their message category by the
// type nibble of the first word, and splits word streams into messages.
//
// Parse and Next return the Message interface and allocate once per message
// to box the typed value. Use a category's typed parser where that matters.
package ump

import (
	"github.com/rs/zerolog/log"

	"github.com/danmuck/midi2/protocol"
	"github.com/danmuck/midi2/protocol/bits"
	"github.com/danmuck/midi2/protocol/channelvoice1"
	"github.com/danmuck/midi2/protocol/channelvoice2"
	"github.com/danmuck/midi2/protocol/flexdata"
	"github.com/danmuck/midi2/protocol/message"
	"github.com/danmuck/midi2/protocol/sysex7"
	"github.com/danmuck/midi2/protocol/sysex8"
	"github.com/danmuck/midi2/protocol/systemcommon"
	"github.com/danmuck/midi2/protocol/umpstream"
	"github.com/danmuck/midi2/protocol/utility"
)

// Category is a UMP message type.
type Category uint8

const (
	Utility       Category = 0x0
	SystemCommon  Category = 0x1
	ChannelVoice1 Category = 0x2
	Sysex7        Category = 0x3
	ChannelVoice2 Category = 0x4
	Sysex8        Category = 0x5
	FlexData      Category = 0xD
	Stream        Category = 0xF
)

func (c Category) String() string {
	switch c {
	case Utility:
		return "utility"
	case SystemCommon:
		return "system common"
	case ChannelVoice1:
		return "midi1 channel voice"
	case Sysex7:
		return "sysex7"
	case ChannelVoice2:
		return "midi2 channel voice"
	case Sysex8:
		return "sysex8"
	case FlexData:
		return "flex data"
	case Stream:
		return "ump stream"
	default:
		return "reserved"
	}
}

// Defined reports whether c names a category this codec decodes.
func (c Category) Defined() bool { return c.String() != "reserved" }

var packetWords = [16]int{1, 1, 1, 2, 2, 4, 1, 1, 2, 2, 2, 3, 3, 4, 4, 4}

// PacketSize is the number of words in one packet of message type t. It is
// defined for reserved types too, so a reader can skip packets it does not
// understand.
func PacketSize(t uint8) int { return packetWords[t&0xF] }

// TypeOf reads the message type nibble. data must not be empty.
func TypeOf(data []uint32) Category { return Category(bits.Nibble(data[0], 0)) }

// Message is any decoded UMP message. Concrete values are the message types
// of the category packages, e.g. channelvoice2.NoteOn or sysex7.Sysex7[uint32].
type Message interface {
	message.Shape[uint32]
}

// CategoryOf reports the category of a decoded message.
func CategoryOf(m Message) Category { return TypeOf(m.Data()) }

func union[T message.Shape[uint32]](m T, err error) (Message, error) {
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Parse decodes the message at the head of data. Segmented messages consume
// as many packets as their role sequence spans; trailing words are ignored.
func Parse(data []uint32) (Message, error) {
	if len(data) == 0 {
		return nil, protocol.ErrSliceTooShort
	}
	m, err := parse(data)
	if err != nil {
		log.Debug().
			Err(err).
			Stringer("category", TypeOf(data)).
			Hex("word", word(data[0])).
			Msg("ump: rejected packet")
	}
	return m, err
}

func parse(data []uint32) (Message, error) {
	switch TypeOf(data) {
	case Utility:
		return union(utility.Parse(data))
	case SystemCommon:
		return union(systemcommon.Parse(data))
	case ChannelVoice1:
		return union(channelvoice1.Parse(data))
	case Sysex7:
		return union(sysex7.Parse(data))
	case ChannelVoice2:
		return union(channelvoice2.Parse(data))
	case Sysex8:
		return union(sysex8.Parse(data))
	case FlexData:
		return union(flexdata.Parse(data))
	case Stream:
		return union(umpstream.Parse(data))
	default:
		return nil, protocol.ErrUnknownType
	}
}

func word(w uint32) []byte {
	return []byte{byte(w >> 24), byte(w >> 16), byte(w >> 8), byte(w)}
}

// Next decodes the message at the head of data and returns the words after
// it. On error rest skips the first packet, so a reader can resynchronise by
// calling Next again.
func Next(data []uint32) (m Message, rest []uint32, err error) {
	if len(data) == 0 {
		return nil, nil, protocol.ErrSliceTooShort
	}
	m, err = Parse(data)
	if err != nil {
		return nil, data[min(PacketSize(uint8(TypeOf(data))), len(data)):], err
	}
	return m, data[len(m.Data()):], nil
}
