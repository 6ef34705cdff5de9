package service

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/mempool"
	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	RecordStore interface {
		List(dir string) ([]string, error)
		Load(path string) (*mempool.Record, []byte, error)
		CopyTo(path string, data []byte, dir string) (string, error)
		AnnotateTxID(path, txid string) error
	}
	PrevoutResolver interface {
		Resolve(ctx context.Context, tx *model.Transaction) error
	}
	VerdictRecorder interface {
		Add(ctx context.Context, verdict model.Verdict) error
	}
	VerdictRepository interface {
		InsertVerdicts(ctx context.Context, verdicts []model.Verdict) error
	}
	Metrics interface {
		ObserveTransaction(status, reason string, started time.Time)
		ObserveInput(kind, status string)
		ObserveRejected(stage string)
	}
	FlushMetrics interface {
		ObserveFlush(err error, size int)
	}
)
