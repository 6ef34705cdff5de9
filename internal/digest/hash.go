// Package digest provides the two hash constructions used by Bitcoin
// transactions: double SHA-256 and hash160.
package digest

import (
	"crypto/sha256"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // hash160 is defined on RIPEMD-160.
)

// Hash160Size is the length of a hash160 digest.
const Hash160Size = ripemd160.Size

// DoubleSHA256 returns SHA-256(SHA-256(b)).
func DoubleSHA256(b []byte) [32]byte {
	return chainhash.DoubleHashH(b)
}

// Hash160 returns RIPEMD-160(SHA-256(b)).
func Hash160(b []byte) [Hash160Size]byte {
	sum := sha256.Sum256(b)
	h := ripemd160.New()
	_, _ = h.Write(sum[:])

	var out [Hash160Size]byte
	copy(out[:], h.Sum(nil))
	return out
}
