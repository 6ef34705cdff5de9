package verify

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/digest"
	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/script"
	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/sighash"
)

func (v *Verifier) verifyP2SH(ctx *txContext, idx int, prev *model.Output) error {
	scriptHash, ok := script.ScriptHash(prev.LockingScript)
	if !ok {
		return fmt.Errorf("locking script carries no script hash: %w", ErrScriptHashMismatch)
	}

	items, err := unlockingPushes(ctx.tx.Inputs[idx].UnlockingScript)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return fmt.Errorf("unlocking script pushes no redeem script: %w", ErrMalformedSignature)
	}
	redeem := items[len(items)-1]

	if h := digest.Hash160(redeem); !bytes.Equal(h[:], scriptHash) {
		return fmt.Errorf("hash160 of redeem script is %x, want %x: %w", h, scriptHash, ErrScriptHashMismatch)
	}

	if version, program, ok := script.WitnessProgram(redeem); ok && version == 0 && len(program) == digest.Hash160Size {
		if len(items) != 1 {
			return fmt.Errorf("nested witness spend pushes %d items: %w", len(items), ErrMalformedSignature)
		}
		return v.checkWitnessKeyHash(ctx, idx, program)
	}

	if len(ctx.tx.Inputs[idx].Witness) > 0 {
		return fmt.Errorf("non-witness input carries a witness: %w", ErrMalformedSignature)
	}

	multisig, err := script.ParseMultisig(redeem)
	if errors.Is(err, script.ErrNotMultisig) {
		return fmt.Errorf("redeem script hash matches, redeem script not checked: %w", ErrUnsupportedScriptKind)
	}
	if err != nil {
		return fmt.Errorf("redeem script: %w: %w", ErrMalformedLength, err)
	}
	return v.checkMultisig(ctx, idx, redeem, multisig, items[:len(items)-1])
}

// checkMultisig checks OP_0 <sig>... against the redeem script's keys the way OP_CHECKMULTISIG
// does: every signature must match a key that comes after the key matched by the previous one.
func (v *Verifier) checkMultisig(ctx *txContext, idx int, redeem []byte, multisig *script.Multisig, pushes [][]byte) error {
	if len(pushes) == 0 || len(pushes[0]) != 0 {
		return fmt.Errorf("multisig unlocking script lacks the leading OP_0: %w", ErrMalformedSignature)
	}
	sigs := pushes[1:]
	if len(sigs) != multisig.Required {
		return fmt.Errorf("multisig unlocking script has %d signatures, want %d: %w", len(sigs), multisig.Required, ErrMalformedSignature)
	}

	keyIdx := 0
	for i, sig := range sigs {
		der, hashType, err := SplitSigHashType(sig)
		if err != nil {
			return fmt.Errorf("signature %d: %w", i, err)
		}
		d, err := sighash.Legacy(ctx.tx, idx, redeem, hashType)
		if err != nil {
			return err
		}

		var lastErr error
		matched := false
		for keyIdx < len(multisig.PubKeys) {
			lastErr = v.checkSignature(d, der, multisig.PubKeys[keyIdx])
			keyIdx++
			if lastErr == nil {
				matched = true
				break
			}
		}
		if !matched {
			if errors.Is(lastErr, ErrMalformedSignature) {
				return fmt.Errorf("signature %d: %w", i, lastErr)
			}
			return fmt.Errorf("signature %d matches none of the remaining public keys: %w", i, ErrSignatureMismatch)
		}
	}
	return nil
}
