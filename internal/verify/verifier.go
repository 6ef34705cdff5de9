package verify

import (
	"errors"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/digest"
	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/script"
	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/sighash"
)

// InputOutcome is the verdict for one input. Err is set unless Status is Valid.
type InputOutcome struct {
	Index    int
	Outpoint model.Outpoint
	Kind     script.Kind
	Coinbase bool
	Status   Status
	Err      *Error
}

// Outcome is the verdict for a transaction. Inputs lists the inputs checked before the first
// invalid one. Err names the first invalid input, or the first unverified one when none failed.
type Outcome struct {
	TxID   string
	Status Status
	Inputs []InputOutcome
	Err    *Error
}

// Reason returns the failure reason, if any.
func (o Outcome) Reason() Reason {
	if o.Err == nil {
		return ReasonNone
	}
	return o.Err.Reason
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithSignatureChecker replaces the ECDSA check used for every signature.
func WithSignatureChecker(checker SignatureChecker) Option {
	return func(v *Verifier) {
		v.checkSignature = checker
	}
}

// Verifier verifies P2PKH, P2WPKH and P2SH inputs. It holds no mutable state and is safe for
// concurrent use.
type Verifier struct {
	checkSignature SignatureChecker
}

// NewVerifier constructs a Verifier using VerifySignature unless overridden.
func NewVerifier(opts ...Option) *Verifier {
	v := &Verifier{checkSignature: VerifySignature}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

type txContext struct {
	tx     *model.Transaction
	hashes *sighash.SegwitHashes
}

func (c *txContext) segwitHashes() *sighash.SegwitHashes {
	if c.hashes == nil {
		c.hashes = sighash.NewSegwitHashes(c.tx)
	}
	return c.hashes
}

// VerifyTransaction verifies every input and stops at the first invalid one. Coinbase inputs
// are exempt. A transaction is Invalid if any input is, otherwise Unverified if any input could
// not be checked, otherwise Valid.
func (v *Verifier) VerifyTransaction(tx *model.Transaction) Outcome {
	out := Outcome{TxID: tx.TxIDString(), Status: Valid}
	if err := tx.CheckSpendable(); err != nil {
		out.Status = Invalid
		out.Err = newError(-1, model.Outpoint{}, err)
		return out
	}

	ctx := &txContext{tx: tx}
	for i := range tx.Inputs {
		res := v.verifyInput(ctx, i)
		out.Inputs = append(out.Inputs, res)
		switch res.Status {
		case Invalid:
			out.Status = Invalid
			out.Err = res.Err
			return out
		case Unverified:
			if out.Status == Valid {
				out.Status = Unverified
				out.Err = res.Err
			}
		}
	}
	return out
}

// VerifyInput verifies input idx of tx.
func (v *Verifier) VerifyInput(tx *model.Transaction, idx int) InputOutcome {
	if idx < 0 || idx >= len(tx.Inputs) {
		return InputOutcome{
			Index:  idx,
			Status: Invalid,
			Err:    newError(idx, model.Outpoint{}, fmt.Errorf("input %d of %d: %w", idx, len(tx.Inputs), ErrMalformedLength)),
		}
	}
	return v.verifyInput(&txContext{tx: tx}, idx)
}

func (v *Verifier) verifyInput(ctx *txContext, idx int) InputOutcome {
	in := &ctx.tx.Inputs[idx]
	res := InputOutcome{Index: idx, Outpoint: in.PreviousOutpoint, Coinbase: in.IsCoinbase, Status: Valid}
	if in.IsCoinbase {
		return res
	}

	prev := in.PreviousOutput
	if prev == nil {
		res.Status = Invalid
		res.Err = newError(idx, in.PreviousOutpoint, ErrMissingPreviousOutput)
		return res
	}

	res.Kind = script.ClassifyLabeled(prev.LockingScript, prev.TypeLabel)

	var err error
	switch res.Kind {
	case script.P2PKH:
		err = v.verifyP2PKH(ctx, idx, prev)
	case script.P2WPKH:
		err = v.verifyP2WPKH(ctx, idx, prev)
	case script.P2SH:
		err = v.verifyP2SH(ctx, idx, prev)
	default:
		err = fmt.Errorf("%s spend: %w", res.Kind, ErrUnsupportedScriptKind)
	}

	switch {
	case err == nil:
	case errors.Is(err, ErrUnsupportedScriptKind):
		res.Status = Unverified
		res.Err = newError(idx, in.PreviousOutpoint, err)
	default:
		res.Status = Invalid
		res.Err = newError(idx, in.PreviousOutpoint, err)
	}
	return res
}

func (v *Verifier) verifyP2PKH(ctx *txContext, idx int, prev *model.Output) error {
	pubKeyHash, ok := script.PubKeyHash(prev.LockingScript)
	if !ok {
		return fmt.Errorf("locking script carries no pubkey hash: %w", ErrScriptHashMismatch)
	}
	if len(ctx.tx.Inputs[idx].Witness) > 0 {
		return fmt.Errorf("non-witness input carries a witness: %w", ErrMalformedSignature)
	}

	items, err := unlockingPushes(ctx.tx.Inputs[idx].UnlockingScript)
	if err != nil {
		return err
	}
	if len(items) != 2 {
		return fmt.Errorf("unlocking script has %d items, want signature and public key: %w", len(items), ErrMalformedSignature)
	}
	sig, pubKey := items[0], items[1]

	if !VerifyPKH(pubKey, pubKeyHash) {
		return fmt.Errorf("hash160 of public key differs from %x: %w", pubKeyHash, ErrScriptHashMismatch)
	}
	return v.checkLegacy(ctx, idx, prev.LockingScript, sig, pubKey)
}

func (v *Verifier) verifyP2WPKH(ctx *txContext, idx int, prev *model.Output) error {
	version, program, ok := script.WitnessProgram(prev.LockingScript)
	if !ok || version != 0 || len(program) != digest.Hash160Size {
		return fmt.Errorf("locking script carries no witness pubkey hash: %w", ErrScriptHashMismatch)
	}
	if len(ctx.tx.Inputs[idx].UnlockingScript) > 0 {
		return fmt.Errorf("native witness spend carries an unlocking script: %w", ErrMalformedSignature)
	}
	return v.checkWitnessKeyHash(ctx, idx, program)
}

// checkWitnessKeyHash verifies a [signature, public key] witness against a 20-byte program.
func (v *Verifier) checkWitnessKeyHash(ctx *txContext, idx int, program []byte) error {
	witness := ctx.tx.Inputs[idx].Witness
	if len(witness) != 2 {
		return fmt.Errorf("witness has %d items, want signature and public key: %w", len(witness), ErrMalformedSignature)
	}
	sig, pubKey := witness[0], witness[1]

	if !VerifyPKH(pubKey, program) {
		return fmt.Errorf("hash160 of public key differs from witness program %x: %w", program, ErrScriptHashMismatch)
	}

	der, hashType, err := SplitSigHashType(sig)
	if err != nil {
		return err
	}
	d, err := sighash.P2WPKH(ctx.tx, idx, program, hashType, ctx.segwitHashes())
	if err != nil {
		return err
	}
	return v.checkSignature(d, der, pubKey)
}

func (v *Verifier) checkLegacy(ctx *txContext, idx int, scriptCode, sig, pubKey []byte) error {
	der, hashType, err := SplitSigHashType(sig)
	if err != nil {
		return err
	}
	d, err := sighash.Legacy(ctx.tx, idx, scriptCode, hashType)
	if err != nil {
		return err
	}
	return v.checkSignature(d, der, pubKey)
}

func unlockingPushes(s []byte) ([][]byte, error) {
	items, err := script.Pushes(s)
	switch {
	case err == nil:
		return items, nil
	case errors.Is(err, script.ErrNonPushOpcode):
		return nil, fmt.Errorf("unlocking script: %w: %w", ErrMalformedSignature, err)
	default:
		return nil, fmt.Errorf("unlocking script: %w: %w", ErrMalformedLength, err)
	}
}
