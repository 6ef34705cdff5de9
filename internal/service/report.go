package service

import (
	"sync"

	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/script"
	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/verify"
)

// Report summarises one verification run.
type Report struct {
	Files        int
	Rejected     int
	Valid        int
	Invalid      int
	Unverified   int
	Accepted     int
	TxIDMismatch int
	// ByKind counts accepted transactions under the kind chosen by script.ReportKind.
	ByKind map[script.Kind]int
}

type reportBuilder struct {
	mu     sync.Mutex
	report Report
}

func newReportBuilder(files int) *reportBuilder {
	return &reportBuilder{report: Report{Files: files, ByKind: make(map[script.Kind]int)}}
}

func (b *reportBuilder) reject() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.report.Rejected++
}

func (b *reportBuilder) record(status verify.Status, kinds []script.Kind, mismatch, accepted bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch status {
	case verify.Valid:
		b.report.Valid++
	case verify.Invalid:
		b.report.Invalid++
	case verify.Unverified:
		b.report.Unverified++
	}
	if mismatch {
		b.report.TxIDMismatch++
	}
	if !accepted {
		return
	}
	b.report.Accepted++
	if kind, ok := script.ReportKind(kinds); ok {
		b.report.ByKind[kind]++
	}
}

func (b *reportBuilder) snapshot() Report {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := b.report
	out.ByKind = make(map[script.Kind]int, len(b.report.ByKind))
	for kind, n := range b.report.ByKind {
		out.ByKind[kind] = n
	}
	return out
}
