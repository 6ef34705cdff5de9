package verify

import (
	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/script"
)

// InputKinds classifies the output spent by every input, in input order. Coinbase inputs and
// inputs without a previous output are reported as script.Other.
func InputKinds(tx *model.Transaction) []script.Kind {
	kinds := make([]script.Kind, len(tx.Inputs))
	for i := range tx.Inputs {
		in := &tx.Inputs[i]
		if in.IsCoinbase || in.PreviousOutput == nil {
			kinds[i] = script.Other
			continue
		}
		kinds[i] = script.ClassifyLabeled(in.PreviousOutput.LockingScript, in.PreviousOutput.TypeLabel)
	}
	return kinds
}
