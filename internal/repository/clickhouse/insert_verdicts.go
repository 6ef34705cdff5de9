package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/model"
)

// InsertVerdicts stores verdicts in ClickHouse.
func (r *Repository) InsertVerdicts(ctx context.Context, verdicts []model.Verdict) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_verdicts", firstNetwork(verdicts), err, start)
	}()

	if len(verdicts) == 0 {
		return nil
	}

	const query = `
INSERT INTO tx_verdicts (
	network,
	txid,
	file,
	status,
	reason,
	input_index,
	outpoint,
	kind,
	input_count,
	output_count,
	addresses,
	verified_at
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare verdicts batch: %w", err)
	}

	for _, v := range verdicts {
		addresses := v.Addresses
		if addresses == nil {
			addresses = []string{}
		}
		if err = batch.Append(
			string(v.Network),
			v.TxID,
			v.File,
			v.Status,
			v.Reason,
			v.InputIndex,
			v.Outpoint,
			v.Kind,
			v.InputCount,
			v.OutputCount,
			addresses,
			v.VerifiedAt,
		); err != nil {
			return fmt.Errorf("append verdict: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert verdicts: %w", err)
	}
	return nil
}

func firstNetwork(verdicts []model.Verdict) model.Network {
	if len(verdicts) == 0 {
		return ""
	}
	return verdicts[0].Network
}
