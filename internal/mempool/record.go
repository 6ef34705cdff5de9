// Package mempool reads transaction records in the esplora JSON layout and turns them into
// model transactions.
package mempool

import (
	"encoding/hex"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/codec"
	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/model"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Record is one transaction as served by esplora-style explorers. Pointer fields distinguish a
// missing key from a zero value.
type Record struct {
	TxID     string         `json:"txid,omitempty"`
	Version  *uint32        `json:"version"`
	LockTime *uint32        `json:"locktime"`
	Vin      []RecordInput  `json:"vin"`
	Vout     []RecordOutput `json:"vout"`
	Size     *uint32        `json:"size,omitempty"`
	Weight   *uint32        `json:"weight,omitempty"`
	Fee      *int64         `json:"fee,omitempty"`
}

// RecordInput is an entry of vin.
type RecordInput struct {
	TxID                  *string        `json:"txid"`
	Vout                  *uint32        `json:"vout"`
	Prevout               *RecordPrevout `json:"prevout"`
	ScriptSig             *string        `json:"scriptsig"`
	ScriptSigAsm          string         `json:"scriptsig_asm,omitempty"`
	Witness               []string       `json:"witness,omitempty"`
	IsCoinbase            *bool          `json:"is_coinbase"`
	Sequence              *uint32        `json:"sequence"`
	InnerRedeemScriptAsm  string         `json:"inner_redeemscript_asm,omitempty"`
	InnerWitnessScriptAsm string         `json:"inner_witnessscript_asm,omitempty"`
}

// RecordPrevout is the output spent by an input.
type RecordPrevout struct {
	ScriptPubKey        *string `json:"scriptpubkey"`
	ScriptPubKeyAsm     string  `json:"scriptpubkey_asm,omitempty"`
	ScriptPubKeyType    string  `json:"scriptpubkey_type,omitempty"`
	ScriptPubKeyAddress string  `json:"scriptpubkey_address,omitempty"`
	Value               *int64  `json:"value"`
}

// RecordOutput is an entry of vout.
type RecordOutput struct {
	ScriptPubKey        *string `json:"scriptpubkey"`
	ScriptPubKeyAsm     string  `json:"scriptpubkey_asm,omitempty"`
	ScriptPubKeyType    string  `json:"scriptpubkey_type,omitempty"`
	ScriptPubKeyAddress string  `json:"scriptpubkey_address,omitempty"`
	Value               *int64  `json:"value"`
}

// Decode parses a JSON record. Fields of the wrong JSON type are decode errors.
func Decode(data []byte) (*Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return &rec, nil
}

// Transaction converts the record. It expects a record that passed CheckStructure and only
// fails on undecodable hex.
func (r *Record) Transaction() (*model.Transaction, error) {
	tx := &model.Transaction{
		Version:  deref(r.Version),
		LockTime: deref(r.LockTime),
		Inputs:   make([]model.Input, 0, len(r.Vin)),
		Outputs:  make([]model.Output, 0, len(r.Vout)),
	}

	for i, vin := range r.Vin {
		in, err := vin.input()
		if err != nil {
			return nil, fmt.Errorf("vin[%d]: %w", i, err)
		}
		tx.Inputs = append(tx.Inputs, in)
	}

	for i, vout := range r.Vout {
		script, err := decodeHex(deref(vout.ScriptPubKey))
		if err != nil {
			return nil, fmt.Errorf("vout[%d].scriptpubkey: %w", i, err)
		}
		tx.Outputs = append(tx.Outputs, model.Output{
			Value:         deref(vout.Value),
			LockingScript: script,
			TypeLabel:     vout.ScriptPubKeyType,
		})
	}
	return tx, nil
}

func (r RecordInput) input() (model.Input, error) {
	in := model.Input{
		Sequence:   deref(r.Sequence),
		IsCoinbase: deref(r.IsCoinbase),
	}

	if r.TxID != nil {
		txid, err := codec.HashFromDisplay(*r.TxID)
		if err != nil {
			return model.Input{}, fmt.Errorf("txid: %w", err)
		}
		in.PreviousOutpoint = model.Outpoint{TxID: txid, Vout: deref(r.Vout)}
	}

	scriptSig, err := decodeHex(deref(r.ScriptSig))
	if err != nil {
		return model.Input{}, fmt.Errorf("scriptsig: %w", err)
	}
	in.UnlockingScript = scriptSig

	if len(r.Witness) > 0 {
		in.Witness = make([][]byte, len(r.Witness))
		for i, item := range r.Witness {
			if in.Witness[i], err = decodeHex(item); err != nil {
				return model.Input{}, fmt.Errorf("witness[%d]: %w", i, err)
			}
		}
	}

	if r.Prevout != nil && !in.IsCoinbase {
		script, err := decodeHex(deref(r.Prevout.ScriptPubKey))
		if err != nil {
			return model.Input{}, fmt.Errorf("prevout.scriptpubkey: %w", err)
		}
		in.PreviousOutput = &model.Output{
			Value:         deref(r.Prevout.Value),
			LockingScript: script,
			TypeLabel:     r.Prevout.ScriptPubKeyType,
		}
	}
	return in, nil
}

func decodeHex(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	return hex.DecodeString(s)
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
