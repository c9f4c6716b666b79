// Package schema binds logical message fields to their bit placement in each
// wire form and pairs that placement with a semantic type.
//
// A Schema is defined once per logical field and shared by every message that
// carries the field, so bit placement is never re-derived per message.
package schema

import (
	"fmt"

	"github.com/danmuck/midi2/protocol/bits"
	"github.com/danmuck/midi2/protocol/buffer"
)

// Order decides how the runs of a multi-run field combine into one value.
type Order uint8

const (
	// MSBFirst: the first run in wire order holds the most significant bits.
	MSBFirst Order = iota
	// LSBFirst: the first run in wire order holds the least significant bits,
	// as in MIDI 1.0 14-bit values split over two data bytes.
	LSBFirst
)

// UmpMasks holds one mask per word of a UMP packet. A zero mask means the
// field has no bits in that word.
type UmpMasks [4]uint32

// ByteMasks holds one mask per byte offset of a MIDI 1.0 message.
type ByteMasks [3]uint8

// Ump builds UmpMasks from up to four word masks.
func Ump(masks ...uint32) UmpMasks {
	var m UmpMasks
	copy(m[:], masks)
	return m
}

// Bytes builds ByteMasks from up to three byte masks.
func Bytes(masks ...uint8) ByteMasks {
	var m ByteMasks
	copy(m[:], masks)
	return m
}

type place struct {
	index  int
	offset uint
	width  uint
}

type layout struct {
	runs  []place
	width uint
	order Order
	size  int
}

func (l layout) present() bool { return len(l.runs) > 0 }

func compile(masks []uint32, order Order) layout {
	l := layout{order: order}
	for i, m := range masks {
		for _, r := range bits.Runs(m) {
			l.runs = append(l.runs, place{index: i, offset: r.Offset, width: r.Width})
			l.width += r.Width
			l.size = i + 1
		}
	}
	if l.width > 32 {
		panic(fmt.Sprintf("schema: field wider than 32 bits (%d)", l.width))
	}
	return l
}

func (l layout) extract(at func(int) uint32) uint32 {
	var v uint32
	if l.order == MSBFirst {
		for _, p := range l.runs {
			v = v<<p.width | bits.Field(at(p.index), p.offset, p.width)
		}
		return v
	}
	var shift uint
	for _, p := range l.runs {
		v |= bits.Field(at(p.index), p.offset, p.width) << shift
		shift += p.width
	}
	return v
}

func (l layout) insert(v uint32, rw func(int, func(uint32) uint32)) {
	if l.order == MSBFirst {
		for i := len(l.runs) - 1; i >= 0; i-- {
			p := l.runs[i]
			part := v
			rw(p.index, func(w uint32) uint32 { return bits.SetField(w, p.offset, p.width, part) })
			v >>= p.width
		}
		return
	}
	for _, p := range l.runs {
		part := v
		rw(p.index, func(w uint32) uint32 { return bits.SetField(w, p.offset, p.width, part) })
		v >>= p.width
	}
}

// Schema is the compile-time placement of one logical field in both wire
// forms.
type Schema struct {
	name  string
	ump   layout
	bytes layout
}

type options struct {
	order Order
}

// Option adjusts a Schema at definition time.
type Option func(*options)

// WithOrder sets the run order for both wire forms.
func WithOrder(o Order) Option {
	return func(opts *options) { opts.order = o }
}

// Define compiles a Schema. Pass Bytes() for UMP-only fields and Ump() for
// byte-only fields.
func Define(name string, ump UmpMasks, bytes ByteMasks, opts ...Option) Schema {
	var cfg options
	for _, opt := range opts {
		opt(&cfg)
	}
	wide := make([]uint32, len(bytes))
	for i, b := range bytes {
		wide[i] = uint32(b)
	}
	return Schema{
		name:  name,
		ump:   compile(ump[:], cfg.order),
		bytes: compile(wide, cfg.order),
	}
}

func (s Schema) Name() string { return s.name }

func (s Schema) layout(k buffer.Kind) layout {
	if k == buffer.Word {
		return s.ump
	}
	return s.bytes
}

// Has reports whether the field is present in wire form k.
func (s Schema) Has(k buffer.Kind) bool { return s.layout(k).present() }

// Width is the field width in bits for wire form k.
func (s Schema) Width(k buffer.Kind) uint { return s.layout(k).width }

// MinSize is the number of units a buffer needs for this field to be
// addressable in wire form k.
func (s Schema) MinSize(k buffer.Kind) int { return s.layout(k).size }

// Extract reads the raw field value. ok is false when the field is absent from
// u's wire form. The caller guarantees u holds at least MinSize units.
func (s Schema) Extract(u buffer.Units) (v uint32, ok bool) {
	l := s.layout(u.Kind())
	if !l.present() {
		return 0, false
	}
	if u.Kind() == buffer.Word {
		return l.extract(func(i int) uint32 { return u.Words[i] }), true
	}
	return l.extract(func(i int) uint32 { return uint32(u.Bytes[i]) }), true
}

// Insert writes the low Width bits of v with a read-modify-write on the masked
// bits only. It returns false when the field is absent from u's wire form.
func (s Schema) Insert(u buffer.Units, v uint32) bool {
	l := s.layout(u.Kind())
	if !l.present() {
		return false
	}
	if u.Kind() == buffer.Word {
		l.insert(v, func(i int, f func(uint32) uint32) { u.Words[i] = f(u.Words[i]) })
		return true
	}
	l.insert(v, func(i int, f func(uint32) uint32) { u.Bytes[i] = uint8(f(uint32(u.Bytes[i]))) })
	return true
}
