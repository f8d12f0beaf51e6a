package zkproof

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus 指标：证明、验证、批量队列和密钥初始化
var (
	proofsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wes",
		Subsystem: "attestation",
		Name:      "proofs_total",
		Help:      "Total number of proof generation attempts by circuit family and outcome.",
	}, []string{"family", "outcome"})

	provingDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "wes",
		Subsystem: "attestation",
		Name:      "proving_duration_seconds",
		Help:      "Duration of successful Groth16 proof generation.",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
	}, []string{"family"})

	verificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wes",
		Subsystem: "attestation",
		Name:      "verifications_total",
		Help:      "Total number of proof verifications by circuit family and result.",
	}, []string{"family", "result"})

	verifyCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "wes",
		Subsystem: "attestation",
		Name:      "verify_cache_hits_total",
		Help:      "Number of verifications answered from the result cache.",
	})

	batchEvictionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "wes",
		Subsystem: "attestation",
		Name:      "batch_evictions_total",
		Help:      "Number of unproven batch items dropped on overflow.",
	})

	batchQueueDepth = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "wes",
		Subsystem: "attestation",
		Name:      "batch_queue_depth",
		Help:      "Current number of items waiting in the batch queue.",
	})

	keyInitsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wes",
		Subsystem: "attestation",
		Name:      "key_inits_total",
		Help:      "Key pair initializations by circuit family and source (cache or setup).",
	}, []string{"family", "source"})
)

func init() {
	prometheus.MustRegister(
		proofsTotal,
		provingDuration,
		verificationsTotal,
		verifyCacheHits,
		batchEvictionsTotal,
		batchQueueDepth,
		keyInitsTotal,
	)
}
