package protocol

import "errors"

var (
	ErrInvalidData    = errors.New("protocol: invalid data")
	ErrBufferOverflow = errors.New("protocol: buffer overflow")
)

// DataError reports bits that do not encode a legal value. Reason is a
// static diagnostic; codec packages build their DataErrors once at init.
type DataError struct {
	Reason string
}

func (e *DataError) Error() string {
	return "protocol: invalid data: " + e.Reason
}

func (e *DataError) Is(target error) bool {
	return target == ErrInvalidData
}

// InvalidData returns a DataError for reason. Call it from package-level
// variable declarations so the hot path returns a preallocated value.
func InvalidData(reason string) error {
	return &DataError{Reason: reason}
}

// Reason extracts the diagnostic carried by err, if any.
func Reason(err error) string {
	var de *DataError
	if errors.As(err, &de) {
		return de.Reason
	}
	return ""
}

// Shared reasons used across the codec packages.
var (
	ErrSliceTooShort    = InvalidData("slice too short")
	ErrWrongMessageType = InvalidData("incorrect message type")
	ErrWrongStatus      = InvalidData("incorrect status")
	ErrOutOfRange       = InvalidData("value out of range")
	ErrUnknownType      = InvalidData("unknown message type")
	ErrUnknownStatus    = InvalidData("unknown status")
	ErrPacketSequence   = InvalidData("invalid packet sequence")
	ErrDataByte         = InvalidData("status byte in data position")
	ErrUnsupportedUnit  = InvalidData("message has no representation in this unit type")
)
