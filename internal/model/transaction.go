package model

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/codec"
	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/digest"
)

// ErrEmptyTransaction is returned for transactions without inputs or without outputs.
var ErrEmptyTransaction = errors.New("empty transaction")

// Outpoint references an output of an earlier transaction. TxID is kept in wire order.
type Outpoint struct {
	TxID chainhash.Hash
	Vout uint32
}

// String renders the outpoint as "<display txid>:<vout>".
func (o Outpoint) String() string {
	return fmt.Sprintf("%s:%d", codec.DisplayHash(o.TxID), o.Vout)
}

// Output is a transaction output. TypeLabel carries the script type reported by the data
// source, when it reported one.
type Output struct {
	Value         int64
	LockingScript []byte
	TypeLabel     string
}

// Input spends PreviousOutpoint. PreviousOutput is the output being spent; it is nil for
// coinbase inputs and for inputs whose prevout was not supplied.
type Input struct {
	PreviousOutpoint Outpoint
	UnlockingScript  []byte
	Witness          [][]byte
	Sequence         uint32
	IsCoinbase       bool
	PreviousOutput   *Output
}

// Transaction is a bitcoin transaction together with the outputs its inputs spend.
type Transaction struct {
	Version  uint32
	LockTime uint32
	Inputs   []Input
	Outputs  []Output
}

// CheckSpendable reports ErrEmptyTransaction when the transaction has no inputs or no outputs.
func (tx *Transaction) CheckSpendable() error {
	switch {
	case len(tx.Inputs) == 0:
		return fmt.Errorf("no inputs: %w", ErrEmptyTransaction)
	case len(tx.Outputs) == 0:
		return fmt.Errorf("no outputs: %w", ErrEmptyTransaction)
	}
	return nil
}

// SerializeLegacy encodes the transaction without the segwit marker, flag and witness data.
func (tx *Transaction) SerializeLegacy() []byte {
	buf := make([]byte, 0, tx.legacySize())

	buf = codec.AppendUint32LE(buf, tx.Version)
	buf = codec.AppendCompactSize(buf, uint64(len(tx.Inputs)))
	for i := range tx.Inputs {
		in := &tx.Inputs[i]
		buf = append(buf, in.PreviousOutpoint.TxID[:]...)
		buf = codec.AppendUint32LE(buf, in.PreviousOutpoint.Vout)
		buf = codec.AppendCompactSize(buf, uint64(len(in.UnlockingScript)))
		buf = append(buf, in.UnlockingScript...)
		buf = codec.AppendUint32LE(buf, in.Sequence)
	}
	buf = codec.AppendCompactSize(buf, uint64(len(tx.Outputs)))
	for i := range tx.Outputs {
		buf = AppendOutput(buf, &tx.Outputs[i])
	}
	return codec.AppendUint32LE(buf, tx.LockTime)
}

// AppendOutput appends the wire encoding of out: value followed by the length-prefixed script.
func AppendOutput(dst []byte, out *Output) []byte {
	dst = codec.AppendInt64LE(dst, out.Value)
	dst = codec.AppendCompactSize(dst, uint64(len(out.LockingScript)))
	return append(dst, out.LockingScript...)
}

func (tx *Transaction) legacySize() int {
	size := 8 + codec.CompactSizeLen(uint64(len(tx.Inputs))) + codec.CompactSizeLen(uint64(len(tx.Outputs)))
	for i := range tx.Inputs {
		n := len(tx.Inputs[i].UnlockingScript)
		size += chainhash.HashSize + 8 + codec.CompactSizeLen(uint64(n)) + n
	}
	for i := range tx.Outputs {
		n := len(tx.Outputs[i].LockingScript)
		size += 8 + codec.CompactSizeLen(uint64(n)) + n
	}
	return size
}

// TxID returns the transaction id in wire order.
func (tx *Transaction) TxID() chainhash.Hash {
	return digest.DoubleSHA256(tx.SerializeLegacy())
}

// TxIDString returns the transaction id in display order as lowercase hex.
func (tx *Transaction) TxIDString() string {
	return codec.DisplayHash(tx.TxID())
}

// Clone returns a deep copy of the transaction.
func (tx *Transaction) Clone() *Transaction {
	out := &Transaction{
		Version:  tx.Version,
		LockTime: tx.LockTime,
		Inputs:   make([]Input, len(tx.Inputs)),
		Outputs:  make([]Output, len(tx.Outputs)),
	}
	for i, in := range tx.Inputs {
		in.UnlockingScript = cloneBytes(in.UnlockingScript)
		if in.Witness != nil {
			witness := make([][]byte, len(in.Witness))
			for j, item := range in.Witness {
				witness[j] = cloneBytes(item)
			}
			in.Witness = witness
		}
		if in.PreviousOutput != nil {
			prev := *in.PreviousOutput
			prev.LockingScript = cloneBytes(prev.LockingScript)
			in.PreviousOutput = &prev
		}
		out.Inputs[i] = in
	}
	for i, o := range tx.Outputs {
		o.LockingScript = cloneBytes(o.LockingScript)
		out.Outputs[i] = o
	}
	return out
}

// MsgTx converts the transaction into btcd's wire representation, witness included.
func (tx *Transaction) MsgTx() *wire.MsgTx {
	msg := wire.NewMsgTx(int32(tx.Version))
	msg.LockTime = tx.LockTime
	for _, in := range tx.Inputs {
		txIn := wire.NewTxIn(wire.NewOutPoint(&in.PreviousOutpoint.TxID, in.PreviousOutpoint.Vout), cloneBytes(in.UnlockingScript), nil)
		txIn.Sequence = in.Sequence
		if len(in.Witness) > 0 {
			txIn.Witness = make(wire.TxWitness, len(in.Witness))
			for j, item := range in.Witness {
				txIn.Witness[j] = cloneBytes(item)
			}
		}
		msg.AddTxIn(txIn)
	}
	for _, out := range tx.Outputs {
		msg.AddTxOut(wire.NewTxOut(out.Value, cloneBytes(out.LockingScript)))
	}
	return msg
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte{}, b...)
}
