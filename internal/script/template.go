package script

import (
	"github.com/btcsuite/btcd/txscript"
)

const (
	p2pkhLen = 25
	p2shLen  = 23

	minWitnessProgramLen = 2
	maxWitnessProgramLen = 40
)

func isP2PKH(s []byte) bool {
	return len(s) == p2pkhLen &&
		s[0] == txscript.OP_DUP &&
		s[1] == txscript.OP_HASH160 &&
		s[2] == txscript.OP_DATA_20 &&
		s[23] == txscript.OP_EQUALVERIFY &&
		s[24] == txscript.OP_CHECKSIG
}

func isP2SH(s []byte) bool {
	return len(s) == p2shLen &&
		s[0] == txscript.OP_HASH160 &&
		s[1] == txscript.OP_DATA_20 &&
		s[22] == txscript.OP_EQUAL
}

// PubKeyHash returns the 20-byte hash a P2PKH script pays to.
func PubKeyHash(lockingScript []byte) ([]byte, bool) {
	if !isP2PKH(lockingScript) {
		return nil, false
	}
	return lockingScript[3:23], true
}

// ScriptHash returns the 20-byte redeem script hash a P2SH script commits to.
func ScriptHash(lockingScript []byte) ([]byte, bool) {
	if !isP2SH(lockingScript) {
		return nil, false
	}
	return lockingScript[2:22], true
}

// WitnessProgram splits a segwit locking script into its version and program.
func WitnessProgram(lockingScript []byte) (version int, program []byte, ok bool) {
	if len(lockingScript) < 2+minWitnessProgramLen || len(lockingScript) > 2+maxWitnessProgramLen {
		return 0, nil, false
	}
	if int(lockingScript[1]) != len(lockingScript)-2 {
		return 0, nil, false
	}
	switch op := lockingScript[0]; {
	case op == txscript.OP_0:
		version = 0
	case op >= txscript.OP_1 && op <= txscript.OP_16:
		version = int(op-txscript.OP_1) + 1
	default:
		return 0, nil, false
	}
	return version, lockingScript[2:], true
}

// P2PKHScriptCode builds the P2PKH locking script paying to pubKeyHash.
func P2PKHScriptCode(pubKeyHash []byte) []byte {
	out := make([]byte, 0, p2pkhLen)
	out = append(out, txscript.OP_DUP, txscript.OP_HASH160, txscript.OP_DATA_20)
	out = append(out, pubKeyHash...)
	return append(out, txscript.OP_EQUALVERIFY, txscript.OP_CHECKSIG)
}
