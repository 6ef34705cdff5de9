package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-txverify/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	verifierTransactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "tx_verifier",
		Name:      "transactions_total",
		Help:      "Count of verified transactions by verdict.",
	}, []string{"network", "status", "reason"})

	verifierTransactionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "tx_verifier",
		Name:      "transaction_duration_seconds",
		Help:      "Duration of processing a single transaction file.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	verifierInputsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "tx_verifier",
		Name:      "inputs_total",
		Help:      "Count of evaluated inputs by script kind and status.",
	}, []string{"network", "kind", "status"})

	verifierRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "tx_verifier",
		Name:      "rejected_total",
		Help:      "Count of records rejected before verification.",
	}, []string{"network", "stage"})

	verifierFlushTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "tx_verifier",
		Name:      "verdict_flush_total",
		Help:      "Count of verdict batch flushes.",
	}, []string{"network", "status"})

	verifierFlushSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "tx_verifier",
		Name:      "verdict_flush_size",
		Help:      "Number of verdicts written per flush.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1..2048
	}, []string{"network"})
)

// Verifier tracks metrics of the verification service.
type Verifier struct {
	network model.Network
}

// NewVerifier constructs a Verifier metrics collector.
func NewVerifier(network model.Network) *Verifier {
	if network == "" {
		network = "unknown"
	}
	return &Verifier{network: network}
}

// ObserveTransaction records the verdict of one transaction and how long it took.
func (m Verifier) ObserveTransaction(status, reason string, started time.Time) {
	verifierTransactionsTotal.WithLabelValues(string(m.network), status, reason).Inc()
	verifierTransactionDuration.WithLabelValues(string(m.network), status).Observe(time.Since(started).Seconds())
}

// ObserveInput records the outcome of one evaluated input.
func (m Verifier) ObserveInput(kind, status string) {
	verifierInputsTotal.WithLabelValues(string(m.network), kind, status).Inc()
}

// ObserveRejected records a record dropped at the given stage (load, structure, convert).
func (m Verifier) ObserveRejected(stage string) {
	verifierRejectedTotal.WithLabelValues(string(m.network), stage).Inc()
}

// ObserveFlush records a verdict batch write.
func (m Verifier) ObserveFlush(err error, size int) {
	verifierFlushTotal.WithLabelValues(string(m.network), statusOf(err)).Inc()
	if err == nil {
		verifierFlushSize.WithLabelValues(string(m.network)).Observe(float64(size))
	}
}
