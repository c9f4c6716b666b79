// Package bits provides nibble, octet and bit-field access on a single
// 32-bit word. Nibble and octet indices count from the most significant end,
// matching how UMP fields are documented (nibble 0 is the message type).
package bits

// Mask returns a mask of width low bits.
func Mask(width uint) uint32 {
	if width >= 32 {
		return 0xFFFF_FFFF
	}
	return 1<<width - 1
}

// Field reads width bits starting at bit offset (LSB = 0).
func Field(w uint32, offset, width uint) uint32 {
	return (w >> offset) & Mask(width)
}

// SetField writes the low width bits of v at offset, leaving the rest of w
// untouched. Bits of v above width are dropped.
func SetField(w uint32, offset, width uint, v uint32) uint32 {
	m := Mask(width) << offset
	return w&^m | (v<<offset)&m
}

func Nibble(w uint32, i int) uint8 {
	return uint8(Field(w, uint(28-4*i), 4))
}

func SetNibble(w uint32, i int, v uint8) uint32 {
	return SetField(w, uint(28-4*i), 4, uint32(v))
}

func Octet(w uint32, i int) uint8 {
	return uint8(Field(w, uint(24-8*i), 8))
}

func SetOctet(w uint32, i int, v uint8) uint32 {
	return SetField(w, uint(24-8*i), 8, uint32(v))
}

// Half reads 16-bit half i (0 = high half).
func Half(w uint32, i int) uint16 {
	return uint16(Field(w, uint(16-16*i), 16))
}

func SetHalf(w uint32, i int, v uint16) uint32 {
	return SetField(w, uint(16-16*i), 16, uint32(v))
}

// Truncate drops bits above width. Use it only where the value is already
// known to fit, e.g. on mask-derived reads.
func Truncate(v uint32, width uint) uint32 {
	return v & Mask(width)
}

// Narrow returns v if it fits in width bits; ok is false otherwise.
func Narrow(v uint32, width uint) (uint32, bool) {
	if v&^Mask(width) != 0 {
		return 0, false
	}
	return v, true
}

// Run is one contiguous block of set bits in a mask.
type Run struct {
	Offset uint
	Width  uint
}

// Runs splits mask into contiguous runs, most significant first.
func Runs(mask uint32) []Run {
	var out []Run
	for bit := 31; bit >= 0; {
		if mask&(1<<uint(bit)) == 0 {
			bit--
			continue
		}
		top := bit
		for bit >= 0 && mask&(1<<uint(bit)) != 0 {
			bit--
		}
		out = append(out, Run{Offset: uint(bit + 1), Width: uint(top - bit)})
	}
	return out
}

// SignExtend interprets the low width bits of v as two's complement.
func SignExtend(v uint32, width uint) int32 {
	shift := 32 - width
	return int32(v<<shift) >> shift
}
