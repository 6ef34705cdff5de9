// Package sighash builds the message digests that transaction signatures commit to.
package sighash

import (
	"errors"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/model"
)

// Type is the signature hash type appended to a signature.
type Type uint32

const (
	All          Type = 0x01
	None         Type = 0x02
	Single       Type = 0x03
	AnyOneCanPay Type = 0x80

	baseMask Type = 0x1f
)

var (
	// ErrInputIndex is returned when the input being signed does not exist.
	ErrInputIndex = errors.New("input index out of range")
	// ErrMissingPreviousOutput is returned when a segwit digest needs the spent amount and it is unknown.
	ErrMissingPreviousOutput = errors.New("missing previous output")
	// ErrNoMatchingOutput is returned by LegacyPreimage for SIGHASH_SINGLE without an output at the input's index.
	ErrNoMatchingOutput = errors.New("no output for SIGHASH_SINGLE")
)

func (t Type) base() Type {
	return t & baseMask
}

func (t Type) anyoneCanPay() bool {
	return t&AnyOneCanPay != 0
}

func (t Type) String() string {
	var name string
	switch t.base() {
	case All:
		name = "ALL"
	case None:
		name = "NONE"
	case Single:
		name = "SINGLE"
	default:
		name = fmt.Sprintf("0x%02x", uint32(t.base()))
	}
	if t.anyoneCanPay() {
		name += "|ANYONECANPAY"
	}
	return name
}

func checkIndex(tx *model.Transaction, idx int) error {
	if idx < 0 || idx >= len(tx.Inputs) {
		return fmt.Errorf("input %d of %d: %w", idx, len(tx.Inputs), ErrInputIndex)
	}
	return nil
}
