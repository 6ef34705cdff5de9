// Package codec implements the little-endian primitives and the compact size
// integer used by the Bitcoin transaction encoding.
package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrMalformedLength is returned when a buffer is shorter than the field it declares.
var ErrMalformedLength = errors.New("malformed length")

const (
	compactSizeMarker16 = 0xfd
	compactSizeMarker32 = 0xfe
	compactSizeMarker64 = 0xff
)

// CompactSizeLen returns the number of bytes EncodeCompactSize produces for n.
func CompactSizeLen(n uint64) int {
	switch {
	case n < compactSizeMarker16:
		return 1
	case n <= math.MaxUint16:
		return 3
	case n <= math.MaxUint32:
		return 5
	default:
		return 9
	}
}

// EncodeCompactSize encodes n: values below 253 as a single byte, larger ones as
// a 0xfd/0xfe/0xff marker followed by a 2/4/8-byte little-endian value.
func EncodeCompactSize(n uint64) []byte {
	return AppendCompactSize(make([]byte, 0, CompactSizeLen(n)), n)
}

// AppendCompactSize appends the compact size encoding of n to dst.
func AppendCompactSize(dst []byte, n uint64) []byte {
	switch {
	case n < compactSizeMarker16:
		return append(dst, byte(n))
	case n <= math.MaxUint16:
		dst = append(dst, compactSizeMarker16)
		return binary.LittleEndian.AppendUint16(dst, uint16(n))
	case n <= math.MaxUint32:
		dst = append(dst, compactSizeMarker32)
		return binary.LittleEndian.AppendUint32(dst, uint32(n))
	default:
		dst = append(dst, compactSizeMarker64)
		return binary.LittleEndian.AppendUint64(dst, n)
	}
}

// DecodeCompactSize reads a compact size integer from the start of b and returns
// the value together with the number of bytes consumed. Non-canonical encodings
// are accepted; only truncation is an error.
func DecodeCompactSize(b []byte) (n uint64, size int, err error) {
	if len(b) == 0 {
		return 0, 0, fmt.Errorf("compact size marker: %w", ErrMalformedLength)
	}

	switch marker := b[0]; marker {
	case compactSizeMarker16:
		size = 3
	case compactSizeMarker32:
		size = 5
	case compactSizeMarker64:
		size = 9
	default:
		return uint64(marker), 1, nil
	}

	if len(b) < size {
		return 0, 0, fmt.Errorf("compact size needs %d bytes, have %d: %w", size, len(b), ErrMalformedLength)
	}

	switch size {
	case 3:
		n = uint64(binary.LittleEndian.Uint16(b[1:3]))
	case 5:
		n = uint64(binary.LittleEndian.Uint32(b[1:5]))
	default:
		n = binary.LittleEndian.Uint64(b[1:9])
	}
	return n, size, nil
}
