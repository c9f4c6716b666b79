// Package bytestream routes MIDI 1.0 byte-stream messages by their status
// byte, splits byte streams into messages and translates between the byte
// stream and UMP for the kinds both forms share.
//
// Running status is not supported: every message must start with its status
// byte. A status byte where a data byte belongs fails with
// protocol.ErrDataByte, and Next resumes at that status.
//
// Parse and Next allocate once per message to box the typed value into
// Message.
package bytestream

import (
	"github.com/rs/zerolog/log"

	"github.com/danmuck/midi2/protocol"
	"github.com/danmuck/midi2/protocol/buffer"
	"github.com/danmuck/midi2/protocol/channelvoice1"
	"github.com/danmuck/midi2/protocol/message"
	"github.com/danmuck/midi2/protocol/sysex7"
	"github.com/danmuck/midi2/protocol/systemcommon"
	"github.com/danmuck/midi2/protocol/ump"
)

// Message is any decoded byte-stream message: a channelvoice1.Message[uint8],
// a systemcommon.Message[uint8] or a sysex7.Sysex7[uint8].
type Message interface {
	message.Shape[uint8]
}

var (
	errRunningStatus = protocol.InvalidData("running status not supported")
	errStrayEnd      = protocol.InvalidData("end of exclusive without begin")
)

// CategoryOf maps a status byte to the UMP category carrying the same
// message. ok is false for data bytes and 0xF7.
func CategoryOf(status uint8) (c ump.Category, ok bool) {
	switch {
	case status < 0x80:
		return 0, false
	case status < 0xF0:
		return ump.ChannelVoice1, true
	case status == sysex7.Begin:
		return ump.Sysex7, true
	case status == sysex7.End:
		return 0, false
	default:
		return ump.SystemCommon, true
	}
}

func union[T message.Shape[uint8]](m T, err error) (Message, error) {
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Parse decodes the message at the head of data. Trailing bytes are ignored.
func Parse(data []uint8) (Message, error) {
	if len(data) == 0 {
		return nil, protocol.ErrSliceTooShort
	}
	m, err := parse(data)
	if err != nil {
		log.Debug().Err(err).Hex("status", data[:1]).Msg("bytestream: rejected message")
	}
	return m, err
}

func parse(data []uint8) (Message, error) {
	c, ok := CategoryOf(data[0])
	if !ok {
		if data[0] == sysex7.End {
			return nil, errStrayEnd
		}
		return nil, errRunningStatus
	}
	switch c {
	case ump.ChannelVoice1:
		return union(channelvoice1.Parse(data))
	case ump.Sysex7:
		return union(sysex7.Parse(data))
	default:
		return union(systemcommon.Parse(data))
	}
}

// Next decodes the message at the head of data and returns the bytes after
// it. On error rest starts at the next status byte, dropping the data bytes
// of the rejected message.
func Next(data []uint8) (m Message, rest []uint8, err error) {
	if len(data) == 0 {
		return nil, nil, protocol.ErrSliceTooShort
	}
	m, err = Parse(data)
	if err != nil {
		return nil, data[resync(data):], err
	}
	return m, data[len(m.Data()):], nil
}

func resync(data []uint8) int {
	for i := 1; i < len(data); i++ {
		if data[i] >= 0x80 {
			return i
		}
	}
	return len(data)
}

// ToUmp translates m into its UMP form on group.
func ToUmp(m Message, group uint8, buf buffer.Mutable[uint32]) (ump.Message, error) {
	switch m := m.(type) {
	case channelvoice1.Message[uint8]:
		return union32(channelvoice1.ToUmp(m, group, buf))
	case systemcommon.Message[uint8]:
		return union32(systemcommon.ToUmp(m, group, buf))
	case sysex7.Sysex7[uint8]:
		return union32(sysex7.ToUmp(m, group, buf))
	default:
		return nil, protocol.ErrUnsupportedUnit
	}
}

// ToBytes translates a UMP message into the byte stream. Only MIDI 1.0
// channel voice, system common and sysex7 messages have a byte form; every
// other kind fails with protocol.ErrUnsupportedUnit.
func ToBytes(m ump.Message, buf buffer.Mutable[uint8]) (Message, error) {
	switch m := m.(type) {
	case channelvoice1.Message[uint32]:
		return union(channelvoice1.ToBytes(m, buf))
	case systemcommon.Message[uint32]:
		return union(systemcommon.ToBytes(m, buf))
	case sysex7.Sysex7[uint32]:
		return union(sysex7.ToBytes(m, buf))
	default:
		return nil, protocol.ErrUnsupportedUnit
	}
}

func union32[T message.Shape[uint32]](m T, err error) (ump.Message, error) {
	if err != nil {
		return nil, err
	}
	return m, nil
}
