package mempool

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"go.uber.org/multierr"
)

var (
	ErrMissingField = errors.New("missing field")
	ErrInvalidField = errors.New("invalid field")
)

type checkOptions struct {
	allowMissingPrevouts bool
}

// CheckOption relaxes CheckStructure.
type CheckOption func(*checkOptions)

// AllowMissingPrevouts accepts non-coinbase inputs without a prevout, for callers that look
// previous outputs up elsewhere.
func AllowMissingPrevouts() CheckOption {
	return func(o *checkOptions) {
		o.allowMissingPrevouts = true
	}
}

// CheckStructure reports every structural problem of the record. Keys are checked for
// presence, so zero values such as "vout": 0 and "sequence": 0 are accepted.
func CheckStructure(r *Record, opts ...CheckOption) error {
	var o checkOptions
	for _, opt := range opts {
		opt(&o)
	}

	var err error
	if r.Version == nil {
		err = multierr.Append(err, missing("version"))
	}
	if r.LockTime == nil {
		err = multierr.Append(err, missing("locktime"))
	}
	if len(r.Vin) == 0 {
		err = multierr.Append(err, missing("vin"))
	}
	if len(r.Vout) == 0 {
		err = multierr.Append(err, missing("vout"))
	}
	if r.TxID != "" {
		err = multierr.Append(err, checkHash("txid", r.TxID))
	}

	for i, vin := range r.Vin {
		err = multierr.Append(err, checkInput(fmt.Sprintf("vin[%d]", i), vin, o))
	}
	for i, vout := range r.Vout {
		field := fmt.Sprintf("vout[%d]", i)
		err = multierr.Append(err, checkScript(field+".scriptpubkey", vout.ScriptPubKey))
		err = multierr.Append(err, checkValue(field+".value", vout.Value))
	}
	return err
}

func checkInput(field string, vin RecordInput, o checkOptions) error {
	var err error
	if vin.IsCoinbase == nil {
		err = multierr.Append(err, missing(field+".is_coinbase"))
	}
	if vin.Sequence == nil {
		err = multierr.Append(err, missing(field+".sequence"))
	}
	if vin.TxID == nil {
		err = multierr.Append(err, missing(field+".txid"))
	} else {
		err = multierr.Append(err, checkHash(field+".txid", *vin.TxID))
	}
	if vin.Vout == nil {
		err = multierr.Append(err, missing(field+".vout"))
	}
	if vin.ScriptSig != nil {
		err = multierr.Append(err, checkHex(field+".scriptsig", *vin.ScriptSig))
	}
	for i, item := range vin.Witness {
		err = multierr.Append(err, checkHex(fmt.Sprintf("%s.witness[%d]", field, i), item))
	}

	if vin.IsCoinbase != nil && *vin.IsCoinbase {
		return err
	}

	if deref(vin.ScriptSig) == "" && len(vin.Witness) == 0 {
		err = multierr.Append(err, fmt.Errorf("%s: neither scriptsig nor witness: %w", field, ErrMissingField))
	}
	if vin.Prevout == nil {
		if o.allowMissingPrevouts {
			return err
		}
		return multierr.Append(err, missing(field+".prevout"))
	}
	err = multierr.Append(err, checkScript(field+".prevout.scriptpubkey", vin.Prevout.ScriptPubKey))
	return multierr.Append(err, checkValue(field+".prevout.value", vin.Prevout.Value))
}

func checkScript(field string, script *string) error {
	if script == nil {
		return missing(field)
	}
	return checkHex(field, *script)
}

func checkValue(field string, value *int64) error {
	switch {
	case value == nil:
		return missing(field)
	case *value < 0:
		return fmt.Errorf("%s: negative amount %d: %w", field, *value, ErrInvalidField)
	}
	return nil
}

func checkHex(field, s string) error {
	if _, err := hex.DecodeString(s); err != nil {
		return fmt.Errorf("%s: %v: %w", field, err, ErrInvalidField)
	}
	return nil
}

func checkHash(field, s string) error {
	if len(s) != 2*chainhash.HashSize {
		return fmt.Errorf("%s: %d hex chars, want %d: %w", field, len(s), 2*chainhash.HashSize, ErrInvalidField)
	}
	return checkHex(field, s)
}

func missing(field string) error {
	return fmt.Errorf("%s: %w", field, ErrMissingField)
}
