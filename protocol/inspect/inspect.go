// Package inspect flattens decoded messages into plain records for tooling:
// the kind, its category, the wire form, every field value in declaration
// order and the payload of segmented messages.
package inspect

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/danmuck/midi2/protocol/buffer"
	"github.com/danmuck/midi2/protocol/bytestream"
	"github.com/danmuck/midi2/protocol/message"
	"github.com/danmuck/midi2/protocol/ump"
)

// Field is one decoded field value.
type Field struct {
	Name  string `json:"name" msgpack:"name"`
	Value any    `json:"value" msgpack:"value"`
}

// Record describes one message.
type Record struct {
	Kind     string  `json:"kind" msgpack:"kind"`
	Category string  `json:"category" msgpack:"category"`
	Unit     string  `json:"unit" msgpack:"unit"`
	Data     string  `json:"data" msgpack:"data"`
	Fields   []Field `json:"fields" msgpack:"fields"`
	Payload  []byte  `json:"payload,omitempty" msgpack:"payload,omitempty"`
}

type payloader interface {
	Payload() iter.Seq[byte]
}

// Describe reads every field of m that its wire form carries. m must be a
// validated message, e.g. the result of ump.Parse or bytestream.Parse.
func Describe[U buffer.Unit](m message.Shape[U]) Record {
	data := m.Data()
	u := buffer.View(data)
	d := m.Descriptor()
	r := Record{
		Kind:     d.Name(),
		Category: category(u),
		Unit:     u.Kind().String(),
		Data:     hex(u),
	}
	for _, f := range d.Fields() {
		if !f.Has(u.Kind()) {
			continue
		}
		r.Fields = append(r.Fields, Field{Name: f.Name(), Value: f.Value(u)})
	}
	if p, ok := m.(payloader); ok {
		r.Payload = slices.Collect(p.Payload())
	}
	return r
}

func category(u buffer.Units) string {
	if u.Kind() == buffer.Word {
		return ump.TypeOf(u.Words).String()
	}
	c, ok := bytestream.CategoryOf(u.Bytes[0])
	if !ok {
		return "unknown"
	}
	return c.String()
}

func hex(u buffer.Units) string {
	var sb strings.Builder
	if u.Kind() == buffer.Word {
		for i, w := range u.Words {
			if i > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%08X", w)
		}
		return sb.String()
	}
	for i, b := range u.Bytes {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", b)
	}
	return sb.String()
}

// String renders r on one line: kind, data and name=value pairs.
func (r Record) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s) [%s]", r.Kind, r.Category, r.Data)
	for _, f := range r.Fields {
		fmt.Fprintf(&sb, " %s=%v", strings.ReplaceAll(f.Name, " ", "_"), f.Value)
	}
	if len(r.Payload) > 0 {
		fmt.Fprintf(&sb, " payload=% X", r.Payload)
	}
	return sb.String()
}
