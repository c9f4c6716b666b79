// Package buffer defines the two wire units and the storage backends that
// hold sequences of them.
//
// Backends:
// - Slice: borrowed, read-only view over caller memory (zero copy)
// - Fixed: owned, fixed capacity; growth past capacity fails
// - Growable: owned, heap backed; grows on demand
package buffer

import "github.com/danmuck/midi2/protocol"

// Unit is a wire atom: a 32-bit UMP word or an 8-bit MIDI 1.0 byte.
type Unit interface {
	uint32 | uint8
}

// Kind names a unit type at runtime.
type Kind uint8

const (
	Word Kind = iota + 1
	Byte
)

func (k Kind) String() string {
	switch k {
	case Word:
		return "ump"
	case Byte:
		return "bytes"
	default:
		return "unknown"
	}
}

// KindOf reports the Kind of the unit type parameter.
func KindOf[U Unit]() Kind {
	var zero U
	switch any(zero).(type) {
	case uint32:
		return Word
	default:
		return Byte
	}
}

// Buffer is the read capability every backend shares. Units returns the
// logical sequence, which may be shorter than the physical allocation.
type Buffer[U Unit] interface {
	Units() []U
}

// Mutable is a Buffer that can be written and resized.
type Mutable[U Unit] interface {
	Buffer[U]
	// Resize sets the logical length to n units, zero filling any units
	// exposed by growth. Fixed storage fails with ErrBufferOverflow when n
	// exceeds its capacity.
	Resize(n int) error
	Cap() int
}

// Slice is a borrowed view. It never copies and is never mutated by the
// codec.
type Slice[U Unit] []U

func (s Slice[U]) Units() []U { return s }

// Fixed is owned storage with a capacity set at construction.
type Fixed[U Unit] struct {
	store []U
	n     int
}

// NewFixed allocates fixed storage of capacity units.
func NewFixed[U Unit](capacity int) *Fixed[U] {
	return &Fixed[U]{store: make([]U, capacity)}
}

// Over adopts storage (typically a slice of a caller's array) as fixed
// storage. The caller must not use storage independently afterwards.
func Over[U Unit](storage []U) *Fixed[U] {
	return &Fixed[U]{store: storage[:len(storage):len(storage)]}
}

func (f *Fixed[U]) Units() []U { return f.store[:f.n] }

func (f *Fixed[U]) Cap() int { return len(f.store) }

func (f *Fixed[U]) Resize(n int) error {
	if n < 0 || n > len(f.store) {
		return protocol.ErrBufferOverflow
	}
	if n > f.n {
		clear(f.store[f.n:n])
	}
	f.n = n
	return nil
}

// Growable is owned heap storage.
type Growable[U Unit] struct {
	store []U
}

// NewGrowable returns empty growable storage.
func NewGrowable[U Unit]() *Growable[U] {
	return &Growable[U]{}
}

func (g *Growable[U]) Units() []U { return g.store }

func (g *Growable[U]) Cap() int { return cap(g.store) }

func (g *Growable[U]) Resize(n int) error {
	if n < 0 {
		return protocol.ErrBufferOverflow
	}
	if n <= len(g.store) {
		g.store = g.store[:n]
		return nil
	}
	old := len(g.store)
	if n > cap(g.store) {
		grown := make([]U, n, max(n, 2*cap(g.store)))
		copy(grown, g.store)
		g.store = grown
		return nil
	}
	g.store = g.store[:n]
	clear(g.store[old:])
	return nil
}

// Copy resizes dst to len(src) and copies src into it.
func Copy[U Unit](dst Mutable[U], src []U) error {
	if err := dst.Resize(len(src)); err != nil {
		return err
	}
	copy(dst.Units(), src)
	return nil
}
