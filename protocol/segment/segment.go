// Package segment models payloads split across fixed-size UMP packets.
//
// Every packet of a segmented message carries a role marker. A payload that
// fits in one packet is sent as a single Complete packet; longer payloads are
// sent as Start, zero or more Continue, then End.
package segment

import (
	"iter"

	"github.com/danmuck/midi2/protocol"
	"github.com/danmuck/midi2/protocol/bits"
	"github.com/danmuck/midi2/protocol/buffer"
	"github.com/danmuck/midi2/protocol/schema"
)

// Role is the position of a packet within a segmented message.
type Role uint8

const (
	Complete Role = iota
	Start
	Continue
	End
)

func (r Role) String() string {
	switch r {
	case Complete:
		return "complete"
	case Start:
		return "start"
	case Continue:
		return "continue"
	case End:
		return "end"
	default:
		return "invalid"
	}
}

// RoleOf is the role of packet i in a message of n packets.
func RoleOf(i, n int) Role {
	switch {
	case n <= 1:
		return Complete
	case i == 0:
		return Start
	case i == n-1:
		return End
	default:
		return Continue
	}
}

// Roles lists the packet roles of an n-packet message.
func Roles(n int) []Role {
	n = max(n, 1)
	out := make([]Role, n)
	for i := range out {
		out[i] = RoleOf(i, n)
	}
	return out
}

var errPayloadByte = protocol.InvalidData("payload byte out of range")

// Format describes one segmented packet layout. Byte positions count from the
// most significant octet of the first word of a packet.
type Format struct {
	// Words per packet.
	Words int
	// Role is the field holding the packet role.
	Role schema.Schema
	// Header masks the bits of word 0 every packet must repeat.
	Header uint32
	// Offset is the byte position of the first payload byte.
	Offset int
	// Capacity is the number of payload bytes per packet.
	Capacity int
	// Count, when set, holds the number of valid bytes in a packet plus
	// CountBias. Without it the payload region is zero padded and zero
	// bytes are skipped when reading.
	Count     *schema.Schema
	CountBias int
	// Seven restricts payload bytes to 7 bits.
	Seven bool
}

// Packets is the number of packets needed for length payload bytes.
func (f Format) Packets(length int) int {
	if length <= f.Capacity {
		return 1
	}
	return (length + f.Capacity - 1) / f.Capacity
}

func (f Format) role(p buffer.Units) (Role, bool) {
	raw, _ := f.Role.Extract(p)
	return Role(raw), raw <= uint32(End)
}

func (f Format) count(p buffer.Units) (int, bool) {
	if f.Count == nil {
		return f.Capacity, true
	}
	raw, _ := f.Count.Extract(p)
	n := int(raw) - f.CountBias
	return n, n >= 0 && n <= f.Capacity
}

func byteAt(words []uint32, i int) uint8 {
	return bits.Octet(words[i/4], i%4)
}

func setByte(words []uint32, i int, v uint8) {
	words[i/4] = bits.SetOctet(words[i/4], i%4, v)
}

// Validate checks the packet sequence at the head of u: the role sequence,
// the repeated header bits and every packet's count and payload.
func (f Format) Validate(u buffer.Units) error {
	if u.Kind() != buffer.Word {
		return protocol.ErrUnsupportedUnit
	}
	words := u.Words
	if len(words) < f.Words {
		return protocol.ErrSliceTooShort
	}
	header := words[0] & f.Header
	for i := 0; ; i++ {
		start := i * f.Words
		if len(words) < start+f.Words {
			return protocol.ErrSliceTooShort
		}
		packet := words[start : start+f.Words]
		role, ok := f.role(buffer.View(packet))
		if !ok {
			return protocol.ErrPacketSequence
		}
		if packet[0]&f.Header != header {
			return protocol.ErrPacketSequence
		}
		if err := f.checkPayload(packet); err != nil {
			return err
		}
		switch {
		case i == 0 && role == Complete:
			return nil
		case i == 0 && role == Start:
		case i > 0 && role == Continue:
		case i > 0 && role == End:
			return nil
		default:
			return protocol.ErrPacketSequence
		}
	}
}

func (f Format) checkPayload(packet []uint32) error {
	n, ok := f.count(buffer.View(packet))
	if !ok {
		return protocol.ErrPacketSequence
	}
	if !f.Seven {
		return nil
	}
	for j := range n {
		if byteAt(packet, f.Offset+j) > 0x7F {
			return errPayloadByte
		}
	}
	return nil
}

// Size is the number of words of the validated message at the head of u.
func (f Format) Size(u buffer.Units) int {
	words := u.Words
	for i := 0; (i+1)*f.Words <= len(words); i++ {
		role, _ := f.role(buffer.View(words[i*f.Words : (i+1)*f.Words]))
		if role == Complete || role == End {
			return (i + 1) * f.Words
		}
	}
	return len(words)
}

// Payload yields the payload bytes of a validated message in order. Each
// call restarts from the first packet.
func (f Format) Payload(words []uint32) iter.Seq[byte] {
	return func(yield func(byte) bool) {
		for start := 0; start+f.Words <= len(words); start += f.Words {
			packet := words[start : start+f.Words]
			n, _ := f.count(buffer.View(packet))
			for j := range n {
				b := byteAt(packet, f.Offset+j)
				if f.Count == nil && b == 0 {
					continue
				}
				if !yield(b) {
					return
				}
			}
		}
	}
}

// Len is the payload length of a validated message.
func (f Format) Len(words []uint32) int {
	n := 0
	for range f.Payload(words) {
		n++
	}
	return n
}

// Write chunks payload across packets. The first packet already in buf is
// the template: its header bits are repeated in every packet, while its role,
// count and payload region are overwritten. Packets are filled last to first
// so the template is copied before it is rewritten; Write never allocates
// beyond what buf.Resize needs.
func (f Format) Write(buf buffer.Mutable[uint32], payload []byte) error {
	if len(buf.Units()) < f.Words {
		return protocol.ErrSliceTooShort
	}
	if f.Seven {
		for _, b := range payload {
			if b > 0x7F {
				return errPayloadByte
			}
		}
	}
	head := buf.Units()[:f.Words]
	for j := range f.Capacity {
		setByte(head, f.Offset+j, 0)
	}

	n := f.Packets(len(payload))
	if err := buf.Resize(n * f.Words); err != nil {
		return err
	}
	words := buf.Units()
	for i := n - 1; i >= 0; i-- {
		packet := words[i*f.Words : (i+1)*f.Words]
		if i > 0 {
			copy(packet, words[:f.Words])
		}
		p := buffer.View(packet)
		f.Role.Insert(p, uint32(RoleOf(i, n)))
		chunk := payload[min(i*f.Capacity, len(payload)):min((i+1)*f.Capacity, len(payload))]
		if f.Count != nil {
			f.Count.Insert(p, uint32(len(chunk)+f.CountBias))
		}
		for j, b := range chunk {
			setByte(packet, f.Offset+j, b)
		}
	}
	return nil
}
