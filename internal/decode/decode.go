// internal/decode/decode.go
package decode

import (
	"errors"
	"math"
	"strings"
)

// DataType selects the wire layout of a word block.
type DataType int

const (
	Float32 DataType = iota
	Int64Scaled
	Unknown
)

// Parse maps a free-text data type tag to a DataType.
// Case-insensitive, total: anything unrecognized is Unknown.
func Parse(tag string) DataType {
	t := strings.ToLower(tag)
	switch {
	case strings.Contains(t, "float"):
		return Float32
	case strings.Contains(t, "long long"):
		return Int64Scaled
	default:
		return Unknown
	}
}

// WordCount is the number of 16-bit registers one value occupies.
// Unknown follows the float rule.
func (dt DataType) WordCount() int {
	if dt == Int64Scaled {
		return 4
	}
	return 2
}

func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Int64Scaled:
		return "int64"
	default:
		return "unknown"
	}
}

var (
	ErrShortBlock      = errors.New("decode: short block")
	ErrUnsupportedType = errors.New("decode: unsupported type")
)

// Decode interprets a word block as a single numeric value.
//
// Word order is little endian (low word first); byte order within each
// word is big endian. This layout is device-defined and MUST NOT change.
func Decode(words []uint16, dt DataType) (float64, error) {
	switch dt {
	case Float32:
		if len(words) < 2 {
			return 0, ErrShortBlock
		}
		return decodeFloat32(words), nil
	case Int64Scaled:
		if len(words) < 4 {
			return 0, ErrShortBlock
		}
		return decodeInt64(words), nil
	default:
		// Unknown type: try the float layout.
		if len(words) >= 2 {
			return decodeFloat32(words), nil
		}
		return 0, ErrUnsupportedType
	}
}

func decodeFloat32(w []uint16) float64 {
	bits := uint32(w[1])<<16 | uint32(w[0])
	return float64(math.Float32frombits(bits))
}

func decodeInt64(w []uint16) float64 {
	bits := uint64(w[3])<<48 | uint64(w[2])<<32 | uint64(w[1])<<16 | uint64(w[0])
	return float64(int64(bits))
}
