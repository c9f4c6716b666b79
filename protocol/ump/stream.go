package ump

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/danmuck/midi2/protocol"
)

var ErrMessageTooLarge = errors.New("ump: segmented message exceeds limit")

// Limits bounds the memory a Reader spends on one segmented message.
type Limits struct {
	MaxMessageWords int
}

func DefaultLimits() Limits {
	return Limits{MaxMessageWords: 64 * 1024}
}

// Reader decodes messages from a stream of big-endian UMP words. Each
// message it returns owns its words.
type Reader struct {
	r       io.Reader
	limits  Limits
	pending []uint32
}

func NewReader(r io.Reader, limits Limits) *Reader {
	return &Reader{r: r, limits: limits}
}

func (r *Reader) readPacket() ([]uint32, error) {
	if r.pending != nil {
		p := r.pending
		r.pending = nil
		return p, nil
	}
	var head [4]byte
	if _, err := io.ReadFull(r.r, head[:]); err != nil {
		return nil, err
	}
	first := binary.BigEndian.Uint32(head[:])
	n := PacketSize(uint8(first >> 28))
	packet := make([]uint32, n)
	packet[0] = first
	if n > 1 {
		rest := make([]byte, 4*(n-1))
		if _, err := io.ReadFull(r.r, rest); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
		for i := 1; i < n; i++ {
			packet[i] = binary.BigEndian.Uint32(rest[4*(i-1):])
		}
	}
	return packet, nil
}

// ReadMessage returns the next message. Packets of a segmented message are
// read until its sequence ends; a packet of another type cuts the sequence
// short and is kept for the next call. Decode failures consume the rejected
// packets and leave the Reader usable. io.EOF is returned only at a packet
// boundary.
func (r *Reader) ReadMessage() (Message, error) {
	data, err := r.readPacket()
	if err != nil {
		return nil, err
	}
	typ := TypeOf(data)
	for {
		m, err := Parse(data)
		if !errors.Is(err, protocol.ErrSliceTooShort) {
			return m, err
		}
		if len(data) >= r.limits.MaxMessageWords {
			return nil, ErrMessageTooLarge
		}
		next, err := r.readPacket()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
		if TypeOf(next) != typ {
			r.pending = next
			return nil, protocol.ErrPacketSequence
		}
		data = append(data, next...)
	}
}

// WriteMessage writes the words of m big endian.
func WriteMessage(w io.Writer, m Message) error {
	data := m.Data()
	buf := make([]byte, 4*len(data))
	for i, v := range data {
		binary.BigEndian.PutUint32(buf[4*i:], v)
	}
	_, err := w.Write(buf)
	return err
}
