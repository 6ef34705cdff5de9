package verify

import (
	"encoding/hex"
	"os"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/digest"
	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/mempool"
	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/script"
	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/sighash"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("decode hex %q: %v", s, err)
	}
	return b
}

func testKey(seed byte) (*btcec.PrivateKey, []byte) {
	var raw [32]byte
	raw[31] = seed
	priv, pub := btcec.PrivKeyFromBytes(raw[:])
	return priv, pub.SerializeCompressed()
}

func signDigest(priv *btcec.PrivateKey, d [32]byte, hashType sighash.Type) []byte {
	return append(ecdsa.Sign(priv, d[:]).Serialize(), byte(hashType))
}

func pushScript(t *testing.T, items ...[]byte) []byte {
	t.Helper()
	b := txscript.NewScriptBuilder()
	for _, item := range items {
		b.AddData(item)
	}
	s, err := b.Script()
	if err != nil {
		t.Fatalf("build script: %v", err)
	}
	return s
}

func p2pkhScript(pubKey []byte) []byte {
	h := digest.Hash160(pubKey)
	return script.P2PKHScriptCode(h[:])
}

func p2wpkhScript(pubKey []byte) []byte {
	h := digest.Hash160(pubKey)
	return append([]byte{txscript.OP_0, txscript.OP_DATA_20}, h[:]...)
}

func p2shScript(redeem []byte) []byte {
	h := digest.Hash160(redeem)
	out := append([]byte{txscript.OP_HASH160, txscript.OP_DATA_20}, h[:]...)
	return append(out, txscript.OP_EQUAL)
}

func multisigScript(t *testing.T, required int, pubKeys ...[]byte) []byte {
	t.Helper()
	b := txscript.NewScriptBuilder().AddInt64(int64(required))
	for _, pk := range pubKeys {
		b.AddData(pk)
	}
	s, err := b.AddInt64(int64(len(pubKeys))).AddOp(txscript.OP_CHECKMULTISIG).Script()
	if err != nil {
		t.Fatalf("build multisig script: %v", err)
	}
	return s
}

// spendingTx builds an unsigned transaction spending one output per locking script.
func spendingTx(prevScripts ...[]byte) *model.Transaction {
	tx := &model.Transaction{
		Version:  2,
		LockTime: 0,
		Outputs: []model.Output{
			{Value: 40_000, LockingScript: mustP2PKHOutput()},
			{Value: 9_000, LockingScript: []byte{txscript.OP_RETURN}},
		},
	}
	for i, s := range prevScripts {
		var prevTxID chainhash.Hash
		prevTxID[0] = byte(i + 1)
		tx.Inputs = append(tx.Inputs, model.Input{
			PreviousOutpoint: model.Outpoint{TxID: prevTxID, Vout: uint32(i)},
			Sequence:         0xfffffffd,
			PreviousOutput:   &model.Output{Value: int64(10_000 * (i + 1)), LockingScript: s},
		})
	}
	return tx
}

func mustP2PKHOutput() []byte {
	_, pub := testKey(99)
	return p2pkhScript(pub)
}

func signP2PKH(t *testing.T, tx *model.Transaction, idx int, priv *btcec.PrivateKey, pubKey []byte) {
	t.Helper()
	d, err := sighash.Legacy(tx, idx, tx.Inputs[idx].PreviousOutput.LockingScript, sighash.All)
	if err != nil {
		t.Fatalf("legacy digest: %v", err)
	}
	tx.Inputs[idx].UnlockingScript = pushScript(t, signDigest(priv, d, sighash.All), pubKey)
}

func signP2WPKH(t *testing.T, tx *model.Transaction, idx int, priv *btcec.PrivateKey, pubKey []byte) {
	t.Helper()
	h := digest.Hash160(pubKey)
	d, err := sighash.P2WPKH(tx, idx, h[:], sighash.All, nil)
	if err != nil {
		t.Fatalf("segwit digest: %v", err)
	}
	tx.Inputs[idx].Witness = [][]byte{signDigest(priv, d, sighash.All), pubKey}
}

// executeWithBtcd runs btcd's script engine over every input as an independent check of the
// transactions the tests build.
func executeWithBtcd(t *testing.T, tx *model.Transaction) error {
	t.Helper()
	msg := tx.MsgTx()
	prevOuts := make(map[wire.OutPoint]*wire.TxOut, len(tx.Inputs))
	for i, in := range tx.Inputs {
		prevOuts[msg.TxIn[i].PreviousOutPoint] = wire.NewTxOut(in.PreviousOutput.Value, in.PreviousOutput.LockingScript)
	}
	fetcher := txscript.NewMultiPrevOutFetcher(prevOuts)
	hashes := txscript.NewTxSigHashes(msg, fetcher)

	for i, in := range tx.Inputs {
		engine, err := txscript.NewEngine(in.PreviousOutput.LockingScript, msg, i,
			txscript.StandardVerifyFlags, nil, hashes, in.PreviousOutput.Value, fetcher)
		if err != nil {
			return err
		}
		if err := engine.Execute(); err != nil {
			return err
		}
	}
	return nil
}

func loadMultisigFixture(t *testing.T) *model.Transaction {
	t.Helper()
	data, err := os.ReadFile("testdata/p2sh_multisig.json")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	rec, err := mempool.Decode(data)
	if err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	tx, err := rec.Transaction()
	if err != nil {
		t.Fatalf("convert fixture: %v", err)
	}
	return tx
}
