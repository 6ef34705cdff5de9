package script

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/txscript"
)

var (
	// ErrNonPushOpcode is returned when a script expected to only push data executes an opcode.
	ErrNonPushOpcode = errors.New("non-push opcode")
	// ErrNotMultisig is returned for redeem scripts that are not OP_m <keys> OP_n OP_CHECKMULTISIG.
	ErrNotMultisig = errors.New("not a multisig script")
)

// Pushes parses a push-only script into the items it pushes. OP_0 pushes an empty item and
// OP_1NEGATE, OP_1..OP_16 push their numeric value as a single byte.
func Pushes(s []byte) ([][]byte, error) {
	var items [][]byte
	tokenizer := txscript.MakeScriptTokenizer(0, s)
	for tokenizer.Next() {
		op := tokenizer.Opcode()
		switch {
		case op == txscript.OP_0:
			items = append(items, []byte{})
		case op <= txscript.OP_PUSHDATA4:
			items = append(items, tokenizer.Data())
		case op == txscript.OP_1NEGATE:
			items = append(items, []byte{0x81})
		case op >= txscript.OP_1 && op <= txscript.OP_16:
			items = append(items, []byte{smallInt(op)})
		default:
			return nil, fmt.Errorf("opcode 0x%02x at offset %d: %w", op, tokenizer.ByteIndex(), ErrNonPushOpcode)
		}
	}
	if err := tokenizer.Err(); err != nil {
		return nil, fmt.Errorf("tokenize script: %w", err)
	}
	return items, nil
}

// Multisig is a parsed OP_m <pubkey>... OP_n OP_CHECKMULTISIG script.
type Multisig struct {
	Required int
	PubKeys  [][]byte
}

// ParseMultisig parses a bare multisig script.
func ParseMultisig(s []byte) (*Multisig, error) {
	tokenizer := txscript.MakeScriptTokenizer(0, s)

	if !tokenizer.Next() || !isSmallInt(tokenizer.Opcode()) {
		if err := tokenizer.Err(); err != nil {
			return nil, fmt.Errorf("tokenize script: %w", err)
		}
		return nil, fmt.Errorf("missing required signature count: %w", ErrNotMultisig)
	}
	required := int(smallInt(tokenizer.Opcode()))

	var keys [][]byte
	total := -1
	for tokenizer.Next() {
		op := tokenizer.Opcode()
		if isSmallInt(op) {
			total = int(smallInt(op))
			break
		}
		data := tokenizer.Data()
		if len(data) != 33 && len(data) != 65 {
			return nil, fmt.Errorf("public key %d has %d bytes: %w", len(keys), len(data), ErrNotMultisig)
		}
		keys = append(keys, data)
	}
	if err := tokenizer.Err(); err != nil {
		return nil, fmt.Errorf("tokenize script: %w", err)
	}
	if total < 0 {
		return nil, fmt.Errorf("missing public key count: %w", ErrNotMultisig)
	}
	if !tokenizer.Next() || tokenizer.Opcode() != txscript.OP_CHECKMULTISIG {
		if err := tokenizer.Err(); err != nil {
			return nil, fmt.Errorf("tokenize script: %w", err)
		}
		return nil, fmt.Errorf("missing OP_CHECKMULTISIG: %w", ErrNotMultisig)
	}
	if tokenizer.Next() || tokenizer.Err() != nil {
		return nil, fmt.Errorf("trailing opcodes after OP_CHECKMULTISIG: %w", ErrNotMultisig)
	}
	if total != len(keys) {
		return nil, fmt.Errorf("declares %d keys, has %d: %w", total, len(keys), ErrNotMultisig)
	}
	if required < 1 || required > total {
		return nil, fmt.Errorf("requires %d of %d signatures: %w", required, total, ErrNotMultisig)
	}
	return &Multisig{Required: required, PubKeys: keys}, nil
}

func isSmallInt(op byte) bool {
	return op >= txscript.OP_1 && op <= txscript.OP_16
}

func smallInt(op byte) byte {
	return op - txscript.OP_1 + 1
}
