package message

import (
	"github.com/danmuck/midi2/protocol/buffer"
)

// Rebuffer copies m's logical units into dst, a backend of the same unit
// type. Growable targets always succeed; fixed targets fail with
// ErrBufferOverflow when too small.
func Rebuffer[U buffer.Unit](m Message[U], dst buffer.Mutable[U]) (Message[U], error) {
	if err := buffer.Copy(dst, m.data); err != nil {
		return Message[U]{}, err
	}
	return Message[U]{desc: m.desc, data: dst.Units(), own: ownership(dst)}, nil
}

// Owned returns m re-homed into growable storage. Go always has a heap, so
// unlike Rebuffer this cannot fail.
func Owned[U buffer.Unit](m Message[U]) Message[U] {
	if m.own == OwnedGrowable {
		return m
	}
	g := buffer.NewGrowable[U]()
	out, _ := Rebuffer(m, g)
	return out
}

// Translate re-derives every field of m from its decoded value and writes it
// under the target wire form's schema. Fields the source form lacks keep
// their defaults; the returned builder lets the caller set them (typically
// the UMP group) before Build.
func Translate[S, D buffer.Unit](m Message[S], dst buffer.Mutable[D]) *Builder[D] {
	b := NewBuilder(m.desc, dst)
	if b.err != nil {
		return b
	}
	src := buffer.View(m.data)
	out := buffer.View(dst.Units())
	for _, f := range m.desc.fields {
		if !f.Has(out.Kind()) {
			continue
		}
		raw, ok := f.Raw(src)
		if !ok {
			continue
		}
		if err := f.PutRaw(out, raw); err != nil {
			b.err = err
			return b
		}
	}
	return b
}
