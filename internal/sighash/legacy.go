package sighash

import (
	"errors"

	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/codec"
	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/digest"
	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/model"
)

// singleBugDigest is the digest signed when SIGHASH_SINGLE has no output at the input's index.
var singleBugDigest = [32]byte{0x01}

// LegacyPreimage builds the pre-segwit signature preimage of input idx. The transaction is
// copied first; tx is never modified. scriptCode replaces the script of the signed input and
// every other input script is emptied.
func LegacyPreimage(tx *model.Transaction, idx int, scriptCode []byte, hashType Type) ([]byte, error) {
	if err := checkIndex(tx, idx); err != nil {
		return nil, err
	}
	if hashType.base() == Single && idx >= len(tx.Outputs) {
		return nil, ErrNoMatchingOutput
	}

	txCopy := tx.Clone()
	for i := range txCopy.Inputs {
		if i == idx {
			txCopy.Inputs[i].UnlockingScript = scriptCode
		} else {
			txCopy.Inputs[i].UnlockingScript = nil
		}
	}

	switch hashType.base() {
	case None:
		txCopy.Outputs = txCopy.Outputs[:0]
		zeroOtherSequences(txCopy, idx)
	case Single:
		txCopy.Outputs = txCopy.Outputs[:idx+1]
		for i := 0; i < idx; i++ {
			txCopy.Outputs[i] = model.Output{Value: -1}
		}
		zeroOtherSequences(txCopy, idx)
	}

	if hashType.anyoneCanPay() {
		txCopy.Inputs = txCopy.Inputs[idx : idx+1]
	}

	return codec.AppendUint32LE(txCopy.SerializeLegacy(), uint32(hashType)), nil
}

// Legacy returns the pre-segwit signature digest of input idx, used by P2PKH and P2SH inputs.
func Legacy(tx *model.Transaction, idx int, scriptCode []byte, hashType Type) ([32]byte, error) {
	preimage, err := LegacyPreimage(tx, idx, scriptCode, hashType)
	if errors.Is(err, ErrNoMatchingOutput) {
		return singleBugDigest, nil
	}
	if err != nil {
		return [32]byte{}, err
	}
	return digest.DoubleSHA256(preimage), nil
}

func zeroOtherSequences(tx *model.Transaction, idx int) {
	for i := range tx.Inputs {
		if i != idx {
			tx.Inputs[i].Sequence = 0
		}
	}
}
