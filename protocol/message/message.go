package message

import (
	"fmt"
	"slices"
	"strings"

	"github.com/danmuck/midi2/protocol/buffer"
	"github.com/danmuck/midi2/protocol/schema"
)

// Ownership records which backend a message's units live in.
type Ownership uint8

const (
	Borrowed Ownership = iota
	OwnedFixed
	OwnedGrowable
)

func (o Ownership) String() string {
	switch o {
	case Borrowed:
		return "borrowed"
	case OwnedFixed:
		return "owned-fixed"
	case OwnedGrowable:
		return "owned-growable"
	default:
		return "unknown"
	}
}

// Shape is the read-only contract shared by every message regardless of
// ownership.
type Shape[U buffer.Unit] interface {
	Data() []U
	Descriptor() *Descriptor
}

// Message is a decoded message of one kind. The zero value is not a valid
// message.
type Message[U buffer.Unit] struct {
	desc *Descriptor
	data []U
	own  Ownership
}

// Parse validates data against d and returns a borrowed message over the
// head of data. It never copies.
func Parse[U buffer.Unit](d *Descriptor, data []U) (Message[U], error) {
	u := buffer.View(data)
	if err := d.Validate(u); err != nil {
		return Message[U]{}, err
	}
	return Unchecked(d, data), nil
}

// Unchecked wraps data without validating it. Behaviour on data that did not
// pass d.Validate is undefined.
func Unchecked[U buffer.Unit](d *Descriptor, data []U) Message[U] {
	return Message[U]{desc: d, data: data[:d.Size(buffer.View(data))], own: Borrowed}
}

// Data returns the message's logical units, never the spare capacity of the
// backing storage.
func (m Message[U]) Data() []U { return m.data }

func (m Message[U]) Descriptor() *Descriptor { return m.desc }

func (m Message[U]) Ownership() Ownership { return m.own }

// Kind is the wire form of the message.
func (m Message[U]) Kind() buffer.Kind { return buffer.KindOf[U]() }

// Units is a type-erased view of Data.
func (m Message[U]) Units() buffer.Units { return buffer.View(m.data) }

func (m Message[U]) String() string {
	if m.desc == nil {
		return "<invalid>"
	}
	var sb strings.Builder
	sb.WriteString(m.desc.name)
	sb.WriteByte('[')
	for i, v := range m.data {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if m.Kind() == buffer.Word {
			fmt.Fprintf(&sb, "%08X", uint32(v))
		} else {
			fmt.Fprintf(&sb, "%02X", uint8(v))
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

// Get reads p from m. m has been validated, so the read cannot fail.
func Get[U buffer.Unit, V any](m Message[U], p schema.Property[V]) V {
	return p.Read(buffer.View(m.data))
}

// Equal reports whether a and b are the same kind with identical units.
func Equal[U buffer.Unit](a, b Shape[U]) bool {
	return a.Descriptor() == b.Descriptor() && slices.Equal(a.Data(), b.Data())
}

// As parses data as d and wraps the result in a typed message.
func As[T any, U buffer.Unit](d *Descriptor, data []U, wrap func(Message[U]) T) (T, error) {
	m, err := Parse(d, data)
	if err != nil {
		var zero T
		return zero, err
	}
	return wrap(m), nil
}

// Wrap finishes b and wraps the result in a typed message.
func Wrap[T any, U buffer.Unit](b *Builder[U], wrap func(Message[U]) T) (T, error) {
	m, err := b.Build()
	if err != nil {
		var zero T
		return zero, err
	}
	return wrap(m), nil
}
