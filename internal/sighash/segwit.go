package sighash

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/codec"
	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/digest"
	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/model"
)

// SegwitHashes holds the BIP-143 midstate hashes shared by every input of a transaction.
type SegwitHashes struct {
	Prevouts chainhash.Hash
	Sequence chainhash.Hash
	Outputs  chainhash.Hash
}

// NewSegwitHashes computes the midstate hashes once per transaction.
func NewSegwitHashes(tx *model.Transaction) *SegwitHashes {
	prevouts := make([]byte, 0, len(tx.Inputs)*(chainhash.HashSize+4))
	sequences := make([]byte, 0, len(tx.Inputs)*4)
	for i := range tx.Inputs {
		in := &tx.Inputs[i]
		prevouts = append(prevouts, in.PreviousOutpoint.TxID[:]...)
		prevouts = codec.AppendUint32LE(prevouts, in.PreviousOutpoint.Vout)
		sequences = codec.AppendUint32LE(sequences, in.Sequence)
	}

	var outputs []byte
	for i := range tx.Outputs {
		outputs = model.AppendOutput(outputs, &tx.Outputs[i])
	}

	return &SegwitHashes{
		Prevouts: digest.DoubleSHA256(prevouts),
		Sequence: digest.DoubleSHA256(sequences),
		Outputs:  digest.DoubleSHA256(outputs),
	}
}

// P2WPKHScriptCode returns the length-prefixed script code committed to by a P2WPKH input.
func P2WPKHScriptCode(program []byte) []byte {
	out := make([]byte, 0, 26)
	out = append(out, 0x19, txscript.OP_DUP, txscript.OP_HASH160, txscript.OP_DATA_20)
	out = append(out, program...)
	return append(out, txscript.OP_EQUALVERIFY, txscript.OP_CHECKSIG)
}

// SegwitPreimage builds the BIP-143 preimage of input idx. scriptCode must already carry its
// length prefix. hashes may be nil, in which case they are computed from tx.
func SegwitPreimage(tx *model.Transaction, idx int, scriptCode []byte, amount int64, hashType Type, hashes *SegwitHashes) ([]byte, error) {
	if err := checkIndex(tx, idx); err != nil {
		return nil, err
	}
	if hashes == nil {
		hashes = NewSegwitHashes(tx)
	}

	var zero chainhash.Hash
	hashPrevouts, hashSequence, hashOutputs := hashes.Prevouts, hashes.Sequence, hashes.Outputs
	if hashType.anyoneCanPay() {
		hashPrevouts = zero
	}
	if hashType.anyoneCanPay() || hashType.base() == Single || hashType.base() == None {
		hashSequence = zero
	}
	switch {
	case hashType.base() == Single && idx < len(tx.Outputs):
		hashOutputs = digest.DoubleSHA256(model.AppendOutput(nil, &tx.Outputs[idx]))
	case hashType.base() == Single || hashType.base() == None:
		hashOutputs = zero
	}

	in := &tx.Inputs[idx]
	preimage := make([]byte, 0, 4+3*chainhash.HashSize+chainhash.HashSize+4+len(scriptCode)+8+4+4+4)
	preimage = codec.AppendUint32LE(preimage, tx.Version)
	preimage = append(preimage, hashPrevouts[:]...)
	preimage = append(preimage, hashSequence[:]...)
	preimage = append(preimage, in.PreviousOutpoint.TxID[:]...)
	preimage = codec.AppendUint32LE(preimage, in.PreviousOutpoint.Vout)
	preimage = append(preimage, scriptCode...)
	preimage = codec.AppendInt64LE(preimage, amount)
	preimage = codec.AppendUint32LE(preimage, in.Sequence)
	preimage = append(preimage, hashOutputs[:]...)
	preimage = codec.AppendUint32LE(preimage, tx.LockTime)
	preimage = codec.AppendUint32LE(preimage, uint32(hashType))
	return preimage, nil
}

// Segwit returns the BIP-143 digest of input idx.
func Segwit(tx *model.Transaction, idx int, scriptCode []byte, amount int64, hashType Type, hashes *SegwitHashes) ([32]byte, error) {
	preimage, err := SegwitPreimage(tx, idx, scriptCode, amount, hashType, hashes)
	if err != nil {
		return [32]byte{}, err
	}
	return digest.DoubleSHA256(preimage), nil
}

// P2WPKH returns the BIP-143 digest of a P2WPKH input spending program, taking the amount
// from the input's previous output.
func P2WPKH(tx *model.Transaction, idx int, program []byte, hashType Type, hashes *SegwitHashes) ([32]byte, error) {
	if err := checkIndex(tx, idx); err != nil {
		return [32]byte{}, err
	}
	prev := tx.Inputs[idx].PreviousOutput
	if prev == nil {
		return [32]byte{}, fmt.Errorf("input %d: %w", idx, ErrMissingPreviousOutput)
	}
	return Segwit(tx, idx, P2WPKHScriptCode(program), prev.Value, hashType, hashes)
}
