package flexdata

import "github.com/danmuck/midi2/protocol"

// Tonic is the key-signature tonic note.
type Tonic uint8

const (
	NonStandard Tonic = iota
	A
	B
	C
	D
	E
	F
	G
)

func (t Tonic) String() string {
	if t == NonStandard {
		return "non-standard"
	}
	if t > G {
		return "invalid"
	}
	return string(rune('A' + t - A))
}

var errTonic = protocol.InvalidData("couldn't interpret tonic field")

type tonicCodec struct{}

func (tonicCodec) Check(raw uint32) error {
	if raw > uint32(G) {
		return errTonic
	}
	return nil
}

func (tonicCodec) Decode(raw uint32) Tonic { return Tonic(raw) }

func (tonicCodec) Encode(t Tonic) (uint32, error) {
	if t > G {
		return 0, errTonic
	}
	return uint32(t), nil
}
