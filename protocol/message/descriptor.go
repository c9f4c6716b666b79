// Package message composes schema properties into complete messages.
//
// A Descriptor is the declarative table for one message kind: its minimum
// size in each wire form and its ordered fields. Message is the decoded,
// ownership-qualified value; Builder is the fallible constructor.
package message

import (
	"fmt"

	"github.com/danmuck/midi2/protocol"
	"github.com/danmuck/midi2/protocol/buffer"
	"github.com/danmuck/midi2/protocol/schema"
)

// Descriptor describes one message kind.
type Descriptor struct {
	name     string
	minUmp   int
	minBytes int
	fields   []schema.Field
	checks   []func(buffer.Units) error
	size     func(buffer.Units) int
	sevenBit bool
}

// Option customizes a Descriptor at definition time.
type Option func(*Descriptor)

// WithCheck appends a whole-message validation step that runs after every
// field has validated.
func WithCheck(check func(buffer.Units) error) Option {
	return func(d *Descriptor) { d.checks = append(d.checks, check) }
}

// WithDataBytes marks every byte-form unit after the status as a MIDI 1.0
// data byte. A unit with the high bit set is a status byte and fails
// validation with ErrDataByte, so a truncated message never swallows the
// status of the one after it.
func WithDataBytes() Option {
	return func(d *Descriptor) { d.sevenBit = true }
}

// WithSize sets the logical length of a validated variable-length message.
// Without it a message occupies exactly its minimum size.
func WithSize(size func(buffer.Units) int) Option {
	return func(d *Descriptor) { d.size = size }
}

// Define builds a descriptor. A zero minimum size means the kind has no
// representation in that wire form. Fields are validated in the order given.
func Define(name string, minUmp, minBytes int, fields []schema.Field, opts ...Option) *Descriptor {
	d := &Descriptor{name: name, minUmp: minUmp, minBytes: minBytes, fields: fields}
	for _, opt := range opts {
		opt(d)
	}
	for _, f := range fields {
		for _, k := range []buffer.Kind{buffer.Word, buffer.Byte} {
			if d.Supports(k) && f.MinSize(k) > d.MinSize(k) {
				panic(fmt.Sprintf("message: %s field %s needs %d units in %s form, minimum is %d",
					name, f.Name(), f.MinSize(k), k, d.MinSize(k)))
			}
		}
	}
	return d
}

func (d *Descriptor) Name() string { return d.name }

func (d *Descriptor) String() string { return d.name }

// MinSize is the minimum number of units the kind occupies in wire form k.
func (d *Descriptor) MinSize(k buffer.Kind) int {
	if k == buffer.Word {
		return d.minUmp
	}
	return d.minBytes
}

// Supports reports whether the kind exists in wire form k.
func (d *Descriptor) Supports(k buffer.Kind) bool {
	return d.MinSize(k) > 0
}

// Fields returns the ordered field table.
func (d *Descriptor) Fields() []schema.Field {
	return d.fields
}

// Validate runs every field's validation in order and stops at the first
// failure. u may be longer than the message.
func (d *Descriptor) Validate(u buffer.Units) error {
	k := u.Kind()
	if !d.Supports(k) {
		return protocol.ErrUnsupportedUnit
	}
	if u.Len() < d.MinSize(k) {
		return protocol.ErrSliceTooShort
	}
	if d.sevenBit && k == buffer.Byte {
		for _, b := range u.Bytes[1:d.minBytes] {
			if b&0x80 != 0 {
				return protocol.ErrDataByte
			}
		}
	}
	for _, f := range d.fields {
		if err := f.Validate(u); err != nil {
			return err
		}
	}
	for _, check := range d.checks {
		if err := check(u); err != nil {
			return err
		}
	}
	return nil
}

// Size is the logical length of the validated message at the head of u.
func (d *Descriptor) Size(u buffer.Units) int {
	if d.size != nil {
		return d.size(u)
	}
	return d.MinSize(u.Kind())
}
