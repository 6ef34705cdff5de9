// Package verify checks the signatures of standard transaction inputs.
package verify

import (
	"errors"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/codec"
	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/sighash"
)

// Reason classifies why an input failed or could not be verified.
type Reason string

const (
	ReasonNone                  Reason = ""
	ReasonMalformedLength       Reason = "malformed_length"
	ReasonMalformedSignature    Reason = "malformed_signature"
	ReasonMalformedPublicKey    Reason = "malformed_public_key"
	ReasonScriptHashMismatch    Reason = "script_hash_mismatch"
	ReasonSignatureMismatch     Reason = "signature_mismatch"
	ReasonUnsupportedScriptKind Reason = "unsupported_script_kind"
	ReasonMissingPreviousOutput Reason = "missing_previous_output"
	ReasonEmptyTransaction      Reason = "empty_transaction"
)

var (
	ErrMalformedLength       = codec.ErrMalformedLength
	ErrMalformedSignature    = errors.New("malformed signature")
	ErrMalformedPublicKey    = errors.New("malformed public key")
	ErrScriptHashMismatch    = errors.New("script hash mismatch")
	ErrSignatureMismatch     = errors.New("signature mismatch")
	ErrUnsupportedScriptKind = errors.New("unsupported script kind")
	ErrMissingPreviousOutput = sighash.ErrMissingPreviousOutput
	ErrEmptyTransaction      = model.ErrEmptyTransaction
)

var reasons = []struct {
	err    error
	reason Reason
}{
	{err: ErrEmptyTransaction, reason: ReasonEmptyTransaction},
	{err: ErrMissingPreviousOutput, reason: ReasonMissingPreviousOutput},
	{err: ErrUnsupportedScriptKind, reason: ReasonUnsupportedScriptKind},
	{err: ErrScriptHashMismatch, reason: ReasonScriptHashMismatch},
	{err: ErrMalformedPublicKey, reason: ReasonMalformedPublicKey},
	{err: ErrMalformedSignature, reason: ReasonMalformedSignature},
	{err: ErrSignatureMismatch, reason: ReasonSignatureMismatch},
	{err: ErrMalformedLength, reason: ReasonMalformedLength},
}

// ReasonOf maps an error onto the reason taxonomy. Errors outside the taxonomy map to
// ReasonMalformedLength.
func ReasonOf(err error) Reason {
	if err == nil {
		return ReasonNone
	}
	var verr *Error
	if errors.As(err, &verr) {
		return verr.Reason
	}
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.reason
		}
	}
	return ReasonMalformedLength
}

// Status is the verdict for an input or a transaction.
type Status string

const (
	Valid      Status = "valid"
	Invalid    Status = "invalid"
	Unverified Status = "unverified"
)

// Error describes a failed or unverified input. InputIndex is -1 for transaction-level problems.
type Error struct {
	Reason     Reason
	InputIndex int
	Outpoint   model.Outpoint
	Err        error
}

func newError(idx int, outpoint model.Outpoint, err error) *Error {
	return &Error{
		Reason:     ReasonOf(err),
		InputIndex: idx,
		Outpoint:   outpoint,
		Err:        err,
	}
}

func (e *Error) Error() string {
	if e.InputIndex < 0 {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("input %d (%s): %s: %v", e.InputIndex, e.Outpoint, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
