package schema

import (
	"slices"

	"github.com/danmuck/midi2/protocol"
	"github.com/danmuck/midi2/protocol/bits"
)

// Unsigned is any unsigned integer value type a field can hold.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32
}

// Uint is the codec for plain unsigned fields. Range is enforced by the
// owning property's width.
type Uint[V Unsigned] struct{}

func (Uint[V]) Check(uint32) error         { return nil }
func (Uint[V]) Decode(raw uint32) V        { return V(raw) }
func (Uint[V]) Encode(v V) (uint32, error) { return uint32(v), nil }

// Bool is the codec for single-bit flags.
type Bool struct{}

func (Bool) Check(uint32) error     { return nil }
func (Bool) Decode(raw uint32) bool { return raw != 0 }
func (Bool) Encode(v bool) (uint32, error) {
	if v {
		return 1, nil
	}
	return 0, nil
}

// Enum accepts only the listed values.
type Enum[V Unsigned] struct {
	values []V
	err    error
}

// OneOf builds an Enum codec. err is returned for any bit pattern outside
// values and should be a preallocated protocol.InvalidData.
func OneOf[V Unsigned](err error, values ...V) Enum[V] {
	return Enum[V]{values: values, err: err}
}

func (e Enum[V]) Check(raw uint32) error {
	if !slices.Contains(e.values, V(raw)) || uint32(V(raw)) != raw {
		return e.err
	}
	return nil
}

func (e Enum[V]) Decode(raw uint32) V { return V(raw) }

func (e Enum[V]) Encode(v V) (uint32, error) {
	if !slices.Contains(e.values, v) {
		return 0, e.err
	}
	return uint32(v), nil
}

// Const is the codec for fixed discriminants (message type, status). The
// builder writes the value automatically and callers cannot change it.
type Const struct {
	value uint32
	err   error
}

func Fixed(value uint32, err error) Const {
	return Const{value: value, err: err}
}

func (c Const) Check(raw uint32) error {
	if raw != c.value {
		return c.err
	}
	return nil
}

func (c Const) Decode(uint32) uint32 { return c.value }

func (c Const) Encode(v uint32) (uint32, error) {
	if v != c.value {
		return 0, c.err
	}
	return v, nil
}

// Signed is the codec for two's complement fields of Width bits.
type Signed struct {
	Width uint
}

func (Signed) Check(uint32) error { return nil }

func (s Signed) Decode(raw uint32) int8 {
	return int8(bits.SignExtend(raw, s.Width))
}

func (s Signed) Encode(v int8) (uint32, error) {
	lo := -(1 << (s.Width - 1))
	hi := 1<<(s.Width-1) - 1
	if int(v) < lo || int(v) > hi {
		return 0, protocol.ErrOutOfRange
	}
	return uint32(int32(v)) & bits.Mask(s.Width), nil
}
