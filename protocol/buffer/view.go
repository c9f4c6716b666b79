package buffer

// Units is a transient, type-erased view over one of the two wire forms.
// Only the slice matching Kind is meaningful. Passing it by value does not
// allocate.
type Units struct {
	kind  Kind
	Words []uint32
	Bytes []uint8
}

// View wraps data without copying.
func View[U Unit](data []U) Units {
	switch d := any(data).(type) {
	case []uint32:
		return Units{kind: Word, Words: d}
	case []uint8:
		return Units{kind: Byte, Bytes: d}
	}
	return Units{}
}

func (u Units) Kind() Kind { return u.kind }

func (u Units) Len() int {
	if u.kind == Word {
		return len(u.Words)
	}
	return len(u.Bytes)
}

// Head returns the first n units as a new view.
func (u Units) Head(n int) Units {
	if u.kind == Word {
		return Units{kind: Word, Words: u.Words[:n]}
	}
	return Units{kind: Byte, Bytes: u.Bytes[:n]}
}

// Unwrap returns the view as the typed slice it was built from.
func Unwrap[U Unit](u Units) []U {
	var zero U
	switch any(zero).(type) {
	case uint32:
		return any(u.Words).([]U)
	default:
		return any(u.Bytes).([]U)
	}
}
