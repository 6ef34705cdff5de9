package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/mempool"
	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/model"
	rpcclient2 "github.com/goodnatureofminers/blockinsight7000-txverify/internal/pkg/btcd/rpcclient"
	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/prevout"
	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/repository/clickhouse"
	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/service"
	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/verify"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type config struct {
	MempoolDir       string        `long:"mempool-dir" env:"TXVERIFY_MEMPOOL_DIR" description:"directory of transaction JSON records" required:"true"`
	ValidDir         string        `long:"valid-dir" env:"TXVERIFY_VALID_DIR" description:"directory accepted records are copied to" default:"valid-mempool"`
	Network          model.Network `long:"network" env:"TXVERIFY_NETWORK" description:"network name" default:"mainnet"`
	Workers          int           `long:"workers" env:"TXVERIFY_WORKERS" description:"number of records verified concurrently" default:"4"`
	AcceptUnverified bool          `long:"accept-unverified" env:"TXVERIFY_ACCEPT_UNVERIFIED" description:"also copy records whose inputs could not all be checked"`
	AnnotateTxID     bool          `long:"annotate-txid" env:"TXVERIFY_ANNOTATE_TXID" description:"insert the computed txid into copied records that lack one"`
	RPCURL           string        `long:"rpc-url" env:"TXVERIFY_RPC_URL" description:"Bitcoin RPC URL used to look up missing prevouts; empty disables lookups"`
	RPCUser          string        `long:"rpc-user" env:"TXVERIFY_RPC_USER" description:"Bitcoin RPC username"`
	RPCPassword      string        `long:"rpc-password" env:"TXVERIFY_RPC_PASSWORD" description:"Bitcoin RPC password"`
	RPCRPS           int           `long:"rpc-rps" env:"TXVERIFY_RPC_RPS" description:"maximum RPC requests per second, 0 for unlimited" default:"50"`
	RPCAttempts      int           `long:"rpc-attempts" env:"TXVERIFY_RPC_ATTEMPTS" description:"attempts per RPC request" default:"3"`
	RPCBackoff       time.Duration `long:"rpc-backoff" env:"TXVERIFY_RPC_BACKOFF" description:"wait before the first RPC retry, doubled on each retry" default:"500ms"`
	ClickhouseDSN    string        `long:"clickhouse-dsn" env:"TXVERIFY_CLICKHOUSE_DSN" description:"ClickHouse DSN for verdicts; empty disables persistence"`
	FlushSize        int           `long:"flush-size" env:"TXVERIFY_FLUSH_SIZE" description:"verdicts per ClickHouse batch" default:"500"`
	FlushInterval    time.Duration `long:"flush-interval" env:"TXVERIFY_FLUSH_INTERVAL" description:"maximum time verdicts wait before a flush" default:"5s"`
	MetricsAddr      string        `long:"metrics-addr" env:"TXVERIFY_METRICS_ADDR" description:"address for metrics server; empty disables it"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger.With(zap.String("network", string(cfg.Network)))); err != nil {
		logger.Fatal("transaction verification failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	if cfg.MetricsAddr != "" {
		startMetricsServer(ctx, cfg.MetricsAddr, logger)
	}

	var resolver service.PrevoutResolver
	if cfg.RPCURL != "" {
		rpcClient, err := newRPCClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
		if err != nil {
			return fmt.Errorf("init rpc client: %w", err)
		}
		defer func() {
			rpcClient.Shutdown()
			rpcClient.WaitForShutdown()
		}()

		rpc := rpcclient2.NewObservedClient(rpcClient, metrics.NewRPCClient(cfg.Network))
		height, err := rpc.GetBlockCount()
		if err != nil {
			return fmt.Errorf("reach bitcoin node: %w", err)
		}
		logger.Info("prevout lookups enabled", zap.Int64("node_height", height))
		resolver = prevout.NewResolver(logger.Named("prevout"), rpc, cfg.RPCRPS, cfg.RPCAttempts, cfg.RPCBackoff)
	}

	var verdicts service.VerdictRecorder
	if cfg.ClickhouseDSN != "" {
		repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository())
		if err != nil {
			return fmt.Errorf("init repository: %w", err)
		}
		defer func() {
			if err := repo.Close(); err != nil {
				logger.Error("failed to close repository", zap.Error(err))
			}
		}()

		sink := service.NewVerdictSink(logger.Named("verdicts"), repo, metrics.NewVerifier(cfg.Network), cfg.FlushSize, cfg.FlushInterval, 0)
		// Detached from ctx: Stop still flushes verdicts queued before an interrupt.
		sink.Start(context.WithoutCancel(ctx))
		defer sink.Stop()
		verdicts = sink
	}

	svc, err := service.NewVerificationService(
		mempool.NewStore(),
		verify.NewVerifier(),
		resolver,
		verdicts,
		metrics.NewVerifier(cfg.Network),
		logger,
		service.VerificationConfig{
			Network:          cfg.Network,
			Workers:          cfg.Workers,
			AcceptUnverified: cfg.AcceptUnverified,
			AnnotateTxID:     cfg.AnnotateTxID,
		},
	)
	if err != nil {
		return err
	}

	report, err := svc.Run(ctx, cfg.MempoolDir, cfg.ValidDir)
	logReport(logger, report)
	return err
}

func logReport(logger *zap.Logger, report service.Report) {
	fields := []zap.Field{
		zap.Int("files", report.Files),
		zap.Int("rejected", report.Rejected),
		zap.Int("valid", report.Valid),
		zap.Int("invalid", report.Invalid),
		zap.Int("unverified", report.Unverified),
		zap.Int("accepted", report.Accepted),
		zap.Int("txid_mismatch", report.TxIDMismatch),
	}

	kinds := make([]string, 0, len(report.ByKind))
	counts := make(map[string]int, len(report.ByKind))
	for kind, n := range report.ByKind {
		kinds = append(kinds, kind.String())
		counts[kind.String()] = n
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		fields = append(fields, zap.Int("accepted_"+kind, counts[kind]))
	}

	logger.Info("verification finished", fields...)
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}

func newRPCClient(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	return rpcclient.New(&rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}, nil)
}
