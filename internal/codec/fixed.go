package codec

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// AppendUint32LE appends v as 4 little-endian bytes.
func AppendUint32LE(dst []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(dst, v)
}

// AppendUint64LE appends v as 8 little-endian bytes.
func AppendUint64LE(dst []byte, v uint64) []byte {
	return binary.LittleEndian.AppendUint64(dst, v)
}

// AppendInt64LE appends v as 8 little-endian bytes in two's complement.
func AppendInt64LE(dst []byte, v int64) []byte {
	return binary.LittleEndian.AppendUint64(dst, uint64(v))
}

// Uint32LE reads a little-endian uint32 from the start of b.
func Uint32LE(b []byte) (uint32, error) {
	if len(b) < 4 {
		return 0, fmt.Errorf("uint32 needs 4 bytes, have %d: %w", len(b), ErrMalformedLength)
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Uint64LE reads a little-endian uint64 from the start of b.
func Uint64LE(b []byte) (uint64, error) {
	if len(b) < 8 {
		return 0, fmt.Errorf("uint64 needs 8 bytes, have %d: %w", len(b), ErrMalformedLength)
	}
	return binary.LittleEndian.Uint64(b), nil
}

// Int64LE reads a little-endian two's complement int64 from the start of b.
func Int64LE(b []byte) (int64, error) {
	v, err := Uint64LE(b)
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}

// ReverseBytes returns a reversed copy of b.
func ReverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[len(b)-1-i] = c
	}
	return out
}

// HashFromDisplay parses a hash in display order (as shown by explorers and
// bitcoind) into wire order.
func HashFromDisplay(s string) (chainhash.Hash, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return chainhash.Hash{}, fmt.Errorf("decode hash %q: %w", s, err)
	}
	if len(raw) != chainhash.HashSize {
		return chainhash.Hash{}, fmt.Errorf("hash %q has %d bytes, want %d: %w", s, len(raw), chainhash.HashSize, ErrMalformedLength)
	}

	var h chainhash.Hash
	copy(h[:], ReverseBytes(raw))
	return h, nil
}

// DisplayHash renders a wire-order hash in display order as lowercase hex.
func DisplayHash(h chainhash.Hash) string {
	return hex.EncodeToString(ReverseBytes(h[:]))
}
