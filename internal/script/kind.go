// Package script classifies locking scripts and extracts the pieces of standard scripts
// needed for signature verification.
package script

import (
	"strings"

	"github.com/btcsuite/btcd/txscript"
)

// Kind is the standard script template a locking script follows.
type Kind int

const (
	Other Kind = iota
	P2PKH
	P2WPKH
	P2SH
	P2TR
)

var kindNames = map[Kind]string{
	Other:  "other",
	P2PKH:  "p2pkh",
	P2WPKH: "p2wpkh",
	P2SH:   "p2sh",
	P2TR:   "p2tr",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "other"
}

// labels maps the script type names used by esplora-style explorers and by bitcoind/btcd
// onto kinds. A label found here is trusted over the pattern rules.
var labels = map[string]Kind{
	"p2pkh":     P2PKH,
	"v0_p2wpkh": P2WPKH,
	"p2sh":      P2SH,
	"v1_p2tr":   P2TR,

	"p2pk":                 Other,
	"v0_p2wsh":             Other,
	"multisig":             Other,
	"op_return":            Other,
	"provably_unspendable": Other,
	"empty":                Other,
	"unknown":              Other,

	txscript.PubKeyHashTy.String():          P2PKH,
	txscript.WitnessV0PubKeyHashTy.String(): P2WPKH,
	txscript.ScriptHashTy.String():          P2SH,
	txscript.WitnessV1TaprootTy.String():    P2TR,
	txscript.NonStandardTy.String():         Other,
	txscript.PubKeyTy.String():              Other,
	txscript.WitnessV0ScriptHashTy.String(): Other,
	txscript.NullDataTy.String():            Other,
	txscript.WitnessUnknownTy.String():      Other,
}

// KindFromLabel resolves a script type label. The second result is false for unknown labels.
func KindFromLabel(label string) (Kind, bool) {
	kind, ok := labels[strings.ToLower(strings.TrimSpace(label))]
	return kind, ok
}

// Classify derives the kind of a locking script from its shape.
func Classify(lockingScript []byte) Kind {
	switch {
	case isP2PKH(lockingScript):
		return P2PKH
	case isP2SH(lockingScript):
		return P2SH
	}
	if version, program, ok := WitnessProgram(lockingScript); ok {
		switch {
		case version == 0 && len(program) == 20:
			return P2WPKH
		case version == 1 && len(program) == 32:
			return P2TR
		}
	}
	return Other
}

// ClassifyLabeled prefers a recognised label and falls back to Classify.
func ClassifyLabeled(lockingScript []byte, label string) Kind {
	if kind, ok := KindFromLabel(label); ok {
		return kind
	}
	return Classify(lockingScript)
}

// ReportPriority is the order in which kinds claim a transaction for reporting.
var ReportPriority = []Kind{P2PKH, P2WPKH, P2TR}

// ReportKind picks the single kind a transaction is counted under: the first entry of
// ReportPriority carried by any of its inputs. A transaction that mixes input kinds is
// reported under one of them only. The second result is false when no input matches.
func ReportKind(kinds []Kind) (Kind, bool) {
	for _, candidate := range ReportPriority {
		for _, kind := range kinds {
			if kind == candidate {
				return candidate, true
			}
		}
	}
	return Other, false
}
