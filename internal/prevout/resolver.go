// Package prevout fills in the outputs spent by a transaction's inputs by querying a bitcoin node.
package prevout

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/codec"
	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/model"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

var (
	ErrTransactionNotFound = errors.New("previous transaction not found")
	ErrOutputNotFound      = errors.New("previous output not found")
)

type (
	RPCClient interface {
		GetRawTransactionVerbose(txHash *chainhash.Hash) (*btcjson.TxRawResult, error)
	}
)

// Resolver looks up previous outputs through getrawtransaction. The node needs txindex for
// outputs that are already spent.
type Resolver struct {
	client   RPCClient
	limiter  ratelimit.Limiter
	attempts int
	backoff  time.Duration
	logger   *zap.Logger
}

// NewResolver constructs a Resolver. A non-positive rps disables request pacing.
func NewResolver(logger *zap.Logger, client RPCClient, rps, attempts int, backoff time.Duration) *Resolver {
	limiter := ratelimit.NewUnlimited()
	if rps > 0 {
		limiter = ratelimit.New(rps)
	}
	return &Resolver{
		client:   client,
		limiter:  limiter,
		attempts: attempts,
		backoff:  backoff,
		logger:   logger,
	}
}

// Resolve sets PreviousOutput on every non-coinbase input that lacks one. Each previous
// transaction is fetched once per call. Inputs resolved before a failure keep their output.
func (r *Resolver) Resolve(ctx context.Context, tx *model.Transaction) error {
	fetched := make(map[chainhash.Hash]*btcjson.TxRawResult)

	for i := range tx.Inputs {
		in := &tx.Inputs[i]
		if in.IsCoinbase || in.PreviousOutput != nil {
			continue
		}

		txid := in.PreviousOutpoint.TxID
		raw, ok := fetched[txid]
		if !ok {
			var err error
			if raw, err = r.fetch(ctx, txid); err != nil {
				return fmt.Errorf("input %d: %w", i, err)
			}
			fetched[txid] = raw
		}

		out, err := outputAt(raw, in.PreviousOutpoint.Vout)
		if err != nil {
			return fmt.Errorf("input %d (%s): %w", i, in.PreviousOutpoint, err)
		}
		in.PreviousOutput = out
	}
	return nil
}

func (r *Resolver) fetch(ctx context.Context, txid chainhash.Hash) (*btcjson.TxRawResult, error) {
	var raw *btcjson.TxRawResult
	err := clock.Retry(ctx, r.attempts, r.backoff, func() error {
		r.limiter.Take()

		var err error
		raw, err = r.client.GetRawTransactionVerbose(&txid)
		var rpcErr *btcjson.RPCError
		if errors.As(err, &rpcErr) && rpcErr.Code == btcjson.ErrRPCNoTxInfo {
			return clock.Permanent(fmt.Errorf("%s: %w", codec.DisplayHash(txid), ErrTransactionNotFound))
		}
		if err != nil {
			r.logger.Warn("getrawtransaction failed",
				zap.String("txid", codec.DisplayHash(txid)),
				zap.Error(err),
			)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("%s: %w", codec.DisplayHash(txid), ErrTransactionNotFound)
	}
	return raw, nil
}

func outputAt(raw *btcjson.TxRawResult, vout uint32) (*model.Output, error) {
	for _, out := range raw.Vout {
		if out.N != vout {
			continue
		}

		script, err := hex.DecodeString(out.ScriptPubKey.Hex)
		if err != nil {
			return nil, fmt.Errorf("decode scriptPubKey: %w", err)
		}
		amount, err := btcutil.NewAmount(out.Value)
		if err != nil {
			return nil, fmt.Errorf("convert value %v: %w", out.Value, err)
		}
		if amount < 0 {
			return nil, fmt.Errorf("negative amount: %d", amount)
		}
		return &model.Output{
			Value:         int64(amount),
			LockingScript: script,
			TypeLabel:     out.ScriptPubKey.Type,
		}, nil
	}
	return nil, ErrOutputNotFound
}
