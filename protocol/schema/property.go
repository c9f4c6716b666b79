package schema

import (
	"github.com/danmuck/midi2/protocol"
	"github.com/danmuck/midi2/protocol/bits"
	"github.com/danmuck/midi2/protocol/buffer"
)

// Codec maps raw field bits to a semantic value.
//
// Check is the read-path domain check. Decode is only called on raw values
// that passed Check and never fails. Encode is the write-path check and runs
// before any bits are touched.
type Codec[V any] interface {
	Check(raw uint32) error
	Decode(raw uint32) V
	Encode(v V) (uint32, error)
}

// Field is the type-erased view of a Property used by message descriptors to
// validate, default-fill, translate and describe fields in order.
type Field interface {
	Name() string
	Has(k buffer.Kind) bool
	MinSize(k buffer.Kind) int
	Validate(u buffer.Units) error
	WriteDefault(u buffer.Units)
	Raw(u buffer.Units) (uint32, bool)
	PutRaw(u buffer.Units, raw uint32) error
	Value(u buffer.Units) any
}

// Property pairs a Schema with a semantic type.
type Property[V any] struct {
	schema Schema
	codec  Codec[V]
	def    V
}

// New defines a property whose default is the zero V.
func New[V any](s Schema, c Codec[V]) Property[V] {
	return Property[V]{schema: s, codec: c}
}

// WithDefault returns a copy of p whose builder default is v.
func (p Property[V]) WithDefault(v V) Property[V] {
	p.def = v
	return p
}

func (p Property[V]) Name() string              { return p.schema.name }
func (p Property[V]) Schema() Schema            { return p.schema }
func (p Property[V]) Has(k buffer.Kind) bool    { return p.schema.Has(k) }
func (p Property[V]) MinSize(k buffer.Kind) int { return p.schema.MinSize(k) }
func (p Property[V]) Default() V                { return p.def }

// Validate inspects only the bits this property owns.
func (p Property[V]) Validate(u buffer.Units) error {
	raw, ok := p.schema.Extract(u)
	if !ok {
		return nil
	}
	return p.codec.Check(raw)
}

// Read extracts the value without checks. Fields absent from u's wire form
// read as the default.
func (p Property[V]) Read(u buffer.Units) V {
	raw, ok := p.schema.Extract(u)
	if !ok {
		return p.def
	}
	return p.codec.Decode(raw)
}

// Check validates v for writing without touching any buffer.
func (p Property[V]) Check(v V) error {
	_, err := p.encode(v)
	return err
}

func (p Property[V]) encode(v V) (uint32, error) {
	raw, err := p.codec.Encode(v)
	if err != nil {
		return 0, err
	}
	width := p.schema.ump.width
	if !p.schema.ump.present() {
		width = p.schema.bytes.width
	}
	if _, ok := bits.Narrow(raw, width); !ok {
		return 0, protocol.ErrOutOfRange
	}
	return raw, nil
}

// Write checks v then stores it. Sibling fields sharing a unit are left
// untouched. Writing to a wire form that lacks the field is a no-op.
func (p Property[V]) Write(u buffer.Units, v V) error {
	raw, err := p.encode(v)
	if err != nil {
		return err
	}
	p.schema.Insert(u, raw)
	return nil
}

func (p Property[V]) WriteDefault(u buffer.Units) {
	if raw, err := p.encode(p.def); err == nil {
		p.schema.Insert(u, raw)
	}
}

func (p Property[V]) Raw(u buffer.Units) (uint32, bool) {
	return p.schema.Extract(u)
}

// PutRaw stores a raw value taken from the other wire form after checking it
// against this property's domain.
func (p Property[V]) PutRaw(u buffer.Units, raw uint32) error {
	if _, ok := bits.Narrow(raw, p.schema.Width(u.Kind())); !ok {
		return protocol.ErrOutOfRange
	}
	if err := p.codec.Check(raw); err != nil {
		return err
	}
	p.schema.Insert(u, raw)
	return nil
}

func (p Property[V]) Value(u buffer.Units) any {
	return p.Read(u)
}
