package verify

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/digest"
	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/sighash"
)

const (
	compactSigLen            = 64
	recoverableCompactSigLen = 65
)

// SignatureChecker checks sig over digest against pubKey.
type SignatureChecker func(digest [32]byte, sig, pubKey []byte) error

// VerifyPKH reports whether hash160(pubKey) equals expected.
func VerifyPKH(pubKey, expected []byte) bool {
	h := digest.Hash160(pubKey)
	return bytes.Equal(h[:], expected)
}

// SplitSigHashType strips the trailing hash type byte from a script or witness signature.
func SplitSigHashType(sig []byte) ([]byte, sighash.Type, error) {
	if len(sig) == 0 {
		return nil, 0, fmt.Errorf("empty signature: %w", ErrMalformedSignature)
	}
	return sig[:len(sig)-1], sighash.Type(sig[len(sig)-1]), nil
}

// VerifySignature checks an ECDSA signature over digest. sig is strict DER, or when it is not
// DER, a 64-byte r||s pair or a 65-byte recoverable compact signature. pubKey is a 33-byte
// compressed or 65-byte uncompressed secp256k1 point.
func VerifySignature(digest [32]byte, sig, pubKey []byte) error {
	pub, err := btcec.ParsePubKey(pubKey)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPublicKey, err)
	}

	parsed, derErr := ecdsa.ParseDERSignature(sig)
	if derErr == nil {
		if !parsed.Verify(digest[:], pub) {
			return ErrSignatureMismatch
		}
		return nil
	}

	switch len(sig) {
	case compactSigLen:
		var r, s btcec.ModNScalar
		if r.SetByteSlice(sig[:32]) || s.SetByteSlice(sig[32:]) || r.IsZero() || s.IsZero() {
			return fmt.Errorf("compact signature scalar out of range: %w", ErrMalformedSignature)
		}
		if !ecdsa.NewSignature(&r, &s).Verify(digest[:], pub) {
			return ErrSignatureMismatch
		}
		return nil
	case recoverableCompactSigLen:
		recovered, _, err := ecdsa.RecoverCompact(sig, digest[:])
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedSignature, err)
		}
		if !recovered.IsEqual(pub) {
			return ErrSignatureMismatch
		}
		return nil
	default:
		return fmt.Errorf("%w: %v", ErrMalformedSignature, derErr)
	}
}
