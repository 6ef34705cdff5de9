package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-txverify/pkg/batcher"
)

// VerdictSink buffers verdicts and writes them to the repository in batches.
type VerdictSink struct {
	batcher *batcher.Batcher[model.Verdict]
}

// NewVerdictSink constructs a sink flushing every flushSize verdicts or flushInterval,
// at most rps flushes per second.
func NewVerdictSink(
	logger *zap.Logger,
	repo VerdictRepository,
	metrics FlushMetrics,
	flushSize int,
	flushInterval time.Duration,
	rps int,
) *VerdictSink {
	flush := func(ctx context.Context, verdicts []model.Verdict) error {
		err := repo.InsertVerdicts(ctx, verdicts)
		metrics.ObserveFlush(err, len(verdicts))
		return err
	}
	return &VerdictSink{batcher: batcher.New(logger, flush, flushSize, flushInterval, rps)}
}

// Start begins background flushing.
func (s *VerdictSink) Start(ctx context.Context) {
	s.batcher.Start(ctx)
}

// Stop flushes queued verdicts and stops the sink.
func (s *VerdictSink) Stop() {
	s.batcher.Stop()
}

// Add queues a verdict.
func (s *VerdictSink) Add(ctx context.Context, verdict model.Verdict) error {
	return s.batcher.Add(ctx, verdict)
}
