package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/mempool"
	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/prevout"
	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/script"
	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/verify"
	"github.com/goodnatureofminers/blockinsight7000-txverify/pkg/safe"
	"github.com/goodnatureofminers/blockinsight7000-txverify/pkg/workerpool"
)

const defaultWorkers = 4

// VerificationConfig controls a VerificationService.
type VerificationConfig struct {
	Network          model.Network
	Workers          int
	AcceptUnverified bool
	AnnotateTxID     bool
}

// VerificationService verifies a directory of mempool records and copies the accepted ones.
type VerificationService struct {
	store    RecordStore
	verifier *verify.Verifier
	resolver PrevoutResolver
	verdicts VerdictRecorder
	metrics  Metrics
	logger   *zap.Logger
	cfg      VerificationConfig
	params   *chaincfg.Params
}

// NewVerificationService builds the service. resolver and verdicts may be nil.
func NewVerificationService(
	store RecordStore,
	verifier *verify.Verifier,
	resolver PrevoutResolver,
	verdicts VerdictRecorder,
	metrics Metrics,
	logger *zap.Logger,
	cfg VerificationConfig,
) (*VerificationService, error) {
	params, err := cfg.Network.ChainParams()
	if err != nil {
		return nil, err
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	return &VerificationService{
		store:    store,
		verifier: verifier,
		resolver: resolver,
		verdicts: verdicts,
		metrics:  metrics,
		logger:   logger,
		cfg:      cfg,
		params:   params,
	}, nil
}

// Run verifies every record in inputDir. Records that pass are copied into validDir. Bad
// records are counted and logged; only I/O failures on validDir and cancellation stop the run.
func (s *VerificationService) Run(ctx context.Context, inputDir, validDir string) (Report, error) {
	paths, err := s.store.List(inputDir)
	if err != nil {
		return Report{}, err
	}

	s.logger.Info("verifying records",
		zap.String("input_dir", inputDir),
		zap.String("valid_dir", validDir),
		zap.Int("files", len(paths)),
		zap.Int("workers", s.cfg.Workers),
	)

	report := newReportBuilder(len(paths))
	err = workerpool.Process(ctx, s.cfg.Workers, paths, func(ctx context.Context, path string) error {
		return s.processFile(ctx, path, validDir, report)
	})
	return report.snapshot(), err
}

func (s *VerificationService) processFile(ctx context.Context, path, validDir string, report *reportBuilder) error {
	started := time.Now()
	logger := s.logger.With(zap.String("file", filepath.Base(path)))

	rec, raw, err := s.store.Load(path)
	if err != nil {
		logger.Warn("record not readable", zap.Error(err))
		s.reject(report, "load")
		return nil
	}
	var checkOpts []mempool.CheckOption
	if s.resolver != nil {
		checkOpts = append(checkOpts, mempool.AllowMissingPrevouts())
	}
	if err := mempool.CheckStructure(rec, checkOpts...); err != nil {
		logger.Warn("record failed structural check", zap.Errors("problems", multierr.Errors(err)))
		s.reject(report, "structure")
		return nil
	}
	tx, err := rec.Transaction()
	if err != nil {
		logger.Warn("record not convertible", zap.Error(err))
		s.reject(report, "convert")
		return nil
	}

	if s.resolver != nil {
		if err := s.resolver.Resolve(ctx, tx); err != nil {
			switch {
			case ctx.Err() != nil:
				return ctx.Err()
			case errors.Is(err, prevout.ErrTransactionNotFound), errors.Is(err, prevout.ErrOutputNotFound):
				logger.Warn("previous output unavailable", zap.Error(err))
			default:
				logger.Error("previous outputs not resolved", zap.Error(err))
				s.reject(report, "resolve")
				return nil
			}
		}
	}

	outcome := s.verifier.VerifyTransaction(tx)
	for _, in := range outcome.Inputs {
		s.metrics.ObserveInput(in.Kind.String(), string(in.Status))
	}

	mismatch := rec.TxID != "" && !strings.EqualFold(rec.TxID, outcome.TxID)
	accepted := !mismatch &&
		(outcome.Status == verify.Valid || (outcome.Status == verify.Unverified && s.cfg.AcceptUnverified))

	s.logOutcome(logger, outcome, rec.TxID, mismatch)

	if accepted {
		dest, err := s.store.CopyTo(path, raw, validDir)
		if err != nil {
			return fmt.Errorf("copy accepted record: %w", err)
		}
		if s.cfg.AnnotateTxID {
			if err := s.store.AnnotateTxID(dest, outcome.TxID); err != nil {
				return fmt.Errorf("annotate accepted record: %w", err)
			}
		}
	}

	kinds := verify.InputKinds(tx)
	report.record(outcome.Status, kinds, mismatch, accepted)
	s.metrics.ObserveTransaction(string(outcome.Status), string(outcome.Reason()), started)

	if s.verdicts == nil {
		return nil
	}
	verdict, err := s.verdict(filepath.Base(path), tx, outcome, kinds)
	if err != nil {
		logger.Warn("verdict not recorded", zap.Error(err))
		return nil
	}
	return s.verdicts.Add(ctx, verdict)
}

func (s *VerificationService) reject(report *reportBuilder, stage string) {
	report.reject()
	s.metrics.ObserveRejected(stage)
}

func (s *VerificationService) logOutcome(logger *zap.Logger, outcome verify.Outcome, declared string, mismatch bool) {
	fields := []zap.Field{
		zap.String("txid", outcome.TxID),
		zap.String("status", string(outcome.Status)),
	}
	if outcome.Err != nil {
		fields = append(fields,
			zap.String("reason", string(outcome.Err.Reason)),
			zap.Int("input_index", outcome.Err.InputIndex),
			zap.Error(outcome.Err.Err),
		)
		if outcome.Err.InputIndex >= 0 {
			fields = append(fields, zap.Stringer("outpoint", outcome.Err.Outpoint))
		}
	}

	if mismatch {
		logger.Warn("declared txid differs from computed txid", append(fields, zap.String("declared_txid", declared))...)
		return
	}
	switch outcome.Status {
	case verify.Invalid:
		logger.Warn("transaction invalid", fields...)
	case verify.Unverified:
		logger.Info("transaction unverified", fields...)
	default:
		logger.Debug("transaction valid", fields...)
	}
}

func (s *VerificationService) verdict(file string, tx *model.Transaction, outcome verify.Outcome, kinds []script.Kind) (model.Verdict, error) {
	inputCount, err := safe.Uint32(len(tx.Inputs))
	if err != nil {
		return model.Verdict{}, fmt.Errorf("input count: %w", err)
	}
	outputCount, err := safe.Uint32(len(tx.Outputs))
	if err != nil {
		return model.Verdict{}, fmt.Errorf("output count: %w", err)
	}

	v := model.Verdict{
		Network:     s.cfg.Network,
		TxID:        outcome.TxID,
		File:        file,
		Status:      string(outcome.Status),
		Reason:      string(outcome.Reason()),
		InputIndex:  -1,
		Kind:        script.Other.String(),
		InputCount:  inputCount,
		OutputCount: outputCount,
		VerifiedAt:  time.Now().UTC(),
	}
	if kind, ok := script.ReportKind(kinds); ok {
		v.Kind = kind.String()
	}
	if outcome.Err != nil {
		if v.InputIndex, err = safe.Int32(outcome.Err.InputIndex); err != nil {
			return model.Verdict{}, fmt.Errorf("input index: %w", err)
		}
		if outcome.Err.InputIndex >= 0 {
			v.Outpoint = outcome.Err.Outpoint.String()
		}
	}
	for i := range tx.Outputs {
		v.Addresses = append(v.Addresses, model.Addresses(tx.Outputs[i].LockingScript, s.params)...)
	}
	return v, nil
}
