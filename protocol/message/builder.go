package message

import (
	"github.com/danmuck/midi2/protocol"
	"github.com/danmuck/midi2/protocol/buffer"
	"github.com/danmuck/midi2/protocol/schema"
)

// Builder constructs a message in caller-chosen storage. It holds either an
// in-progress buffer or the first error encountered; once an error is
// captured every setter is a no-op and Build returns that error.
type Builder[U buffer.Unit] struct {
	desc *Descriptor
	buf  buffer.Mutable[U]
	err  error
}

// NewBuilder sizes buf to d's minimum and writes every field's default,
// including constant type and status codes.
func NewBuilder[U buffer.Unit](d *Descriptor, buf buffer.Mutable[U]) *Builder[U] {
	b := &Builder[U]{desc: d, buf: buf}
	k := buffer.KindOf[U]()
	if !d.Supports(k) {
		b.err = protocol.ErrUnsupportedUnit
		return b
	}
	if err := buf.Resize(d.MinSize(k)); err != nil {
		b.err = err
		return b
	}
	clear(buf.Units())
	u := buffer.View(buf.Units())
	for _, f := range d.fields {
		f.WriteDefault(u)
	}
	return b
}

// Set writes v to p unless the builder has already failed.
func Set[U buffer.Unit, V any](b *Builder[U], p schema.Property[V], v V) {
	if b.err != nil {
		return
	}
	if err := p.Write(buffer.View(b.buf.Units()), v); err != nil {
		b.err = err
	}
}

// Edit runs fn against the storage unless the builder has already failed.
// Payload writers use it to grow the buffer.
func (b *Builder[U]) Edit(fn func(buf buffer.Mutable[U]) error) {
	if b.err != nil {
		return
	}
	if err := fn(b.buf); err != nil {
		b.err = err
	}
}

// Fail records err unless an earlier error is already held.
func (b *Builder[U]) Fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *Builder[U]) Err() error { return b.err }

// Build re-validates the assembled units and returns the owned message.
func (b *Builder[U]) Build() (Message[U], error) {
	if b.err != nil {
		return Message[U]{}, b.err
	}
	data := b.buf.Units()
	u := buffer.View(data)
	if err := b.desc.Validate(u); err != nil {
		return Message[U]{}, err
	}
	return Message[U]{desc: b.desc, data: data[:b.desc.Size(u)], own: ownership(b.buf)}, nil
}

func ownership[U buffer.Unit](buf buffer.Mutable[U]) Ownership {
	if _, ok := buf.(*buffer.Growable[U]); ok {
		return OwnedGrowable
	}
	return OwnedFixed
}
