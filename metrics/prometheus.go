package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pool chain metrics collector
// Provides comprehensive metrics for monitoring

var (
	// Singleton collector
	collector     *Collector
	collectorOnce sync.Once
)

// Collector holds all pool chain metrics
type Collector struct {
	// Lifecycle metrics
	PoolStage        prometheus.Gauge
	StageTransitions *prometheus.CounterVec

	// Fundraising metrics
	DepositsTotal     prometheus.Counter
	DepositValueUSD   prometheus.Counter
	CollectedValueUSD prometheus.Gauge
	TargetValueUSD    prometheus.Gauge

	// Share metrics
	SharesSupply prometheus.Gauge
	VaultsTotal  prometheus.Gauge

	// Exit queue metrics
	ExitQueueDepth    prometheus.Gauge
	ExitQueueShares   prometheus.Gauge
	ExitRequestsTotal prometheus.Counter
	ExitCancelsTotal  prometheus.Counter
	ExitPaymentsTotal *prometheus.CounterVec
	ExitPaymentFunded prometheus.Gauge
	ExitSettleLatency prometheus.Histogram

	// Distribution metrics
	DistributionsTotal *prometheus.CounterVec
	DistributedValue   *prometheus.CounterVec
	RoyaltyPaid        *prometheus.CounterVec
	OperatorPaid       *prometheus.CounterVec
	ClaimsTotal        *prometheus.CounterVec
	ClaimedValue       *prometheus.CounterVec

	// Curve metrics
	CurveLevel     prometheus.Gauge
	CurvePrice     prometheus.Gauge
	CurveTotalSold prometheus.Gauge
	CurveSales     prometheus.Counter
	CurveProceeds  *prometheus.CounterVec

	// Oracle metrics
	OraclePrice     *prometheus.GaugeVec
	OracleDeviation *prometheus.GaugeVec

	// System metrics
	BlockHeight      prometheus.Gauge
	EndBlockDuration prometheus.Histogram
}

// GetCollector returns the singleton metrics collector
func GetCollector() *Collector {
	collectorOnce.Do(func() {
		collector = newCollector()
	})
	return collector
}

// newCollector creates a new metrics collector
func newCollector() *Collector {
	c := &Collector{}

	// Lifecycle metrics
	c.PoolStage = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pocchain",
			Subsystem: "pool",
			Name:      "stage",
			Help:      "Current pool lifecycle stage (enum ordinal)",
		},
	)

	c.StageTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pocchain",
			Subsystem: "pool",
			Name:      "stage_transitions_total",
			Help:      "Total lifecycle stage transitions",
		},
		[]string{"from", "to"},
	)

	// Fundraising metrics
	c.DepositsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pocchain",
			Subsystem: "fundraising",
			Name:      "deposits_total",
			Help:      "Total fundraising deposits accepted",
		},
	)

	c.DepositValueUSD = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pocchain",
			Subsystem: "fundraising",
			Name:      "deposit_value_usd",
			Help:      "Cumulative USD value of fundraising deposits",
		},
	)

	c.CollectedValueUSD = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pocchain",
			Subsystem: "fundraising",
			Name:      "collected_usd",
			Help:      "Current collected USD value",
		},
	)

	c.TargetValueUSD = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pocchain",
			Subsystem: "fundraising",
			Name:      "target_usd",
			Help:      "Fundraising USD target",
		},
	)

	// Share metrics
	c.SharesSupply = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pocchain",
			Subsystem: "shares",
			Name:      "supply",
			Help:      "Total economic share supply",
		},
	)

	c.VaultsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pocchain",
			Subsystem: "shares",
			Name:      "vaults",
			Help:      "Number of registered vaults",
		},
	)

	// Exit queue metrics
	c.ExitQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pocchain",
			Subsystem: "exit_queue",
			Name:      "depth",
			Help:      "Number of queued exit entries",
		},
	)

	c.ExitQueueShares = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pocchain",
			Subsystem: "exit_queue",
			Name:      "shares",
			Help:      "Total shares queued for exit",
		},
	)

	c.ExitRequestsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pocchain",
			Subsystem: "exit_queue",
			Name:      "requests_total",
			Help:      "Total exit requests",
		},
	)

	c.ExitCancelsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pocchain",
			Subsystem: "exit_queue",
			Name:      "cancels_total",
			Help:      "Total exit cancellations",
		},
	)

	c.ExitPaymentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pocchain",
			Subsystem: "exit_queue",
			Name:      "payments_total",
			Help:      "Total exit-queue settlement payouts",
		},
		[]string{"denom"},
	)

	c.ExitPaymentFunded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pocchain",
			Subsystem: "exit_queue",
			Name:      "funded_remaining",
			Help:      "Remaining funded allocation for the current round",
		},
	)

	c.ExitSettleLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "pocchain",
			Subsystem: "exit_queue",
			Name:      "settle_latency_ms",
			Help:      "Exit queue processing latency in milliseconds",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250},
		},
	)

	// Distribution metrics
	c.DistributionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pocchain",
			Subsystem: "distribution",
			Name:      "passes_total",
			Help:      "Total profit distribution passes",
		},
		[]string{"token"},
	)

	c.DistributedValue = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pocchain",
			Subsystem: "distribution",
			Name:      "distributed_value",
			Help:      "Total value moved through the waterfall",
		},
		[]string{"token"},
	)

	c.RoyaltyPaid = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pocchain",
			Subsystem: "distribution",
			Name:      "royalty_paid",
			Help:      "Total royalty paid",
		},
		[]string{"token"},
	)

	c.OperatorPaid = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pocchain",
			Subsystem: "distribution",
			Name:      "operator_paid",
			Help:      "Total operator profit share paid",
		},
		[]string{"token"},
	)

	c.ClaimsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pocchain",
			Subsystem: "distribution",
			Name:      "claims_total",
			Help:      "Total reward claims",
		},
		[]string{"token"},
	)

	c.ClaimedValue = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pocchain",
			Subsystem: "distribution",
			Name:      "claimed_value",
			Help:      "Total value claimed by holders",
		},
		[]string{"token"},
	)

	// Curve metrics
	c.CurveLevel = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pocchain",
			Subsystem: "curve",
			Name:      "level",
			Help:      "Current bonding-curve level",
		},
	)

	c.CurvePrice = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pocchain",
			Subsystem: "curve",
			Name:      "price",
			Help:      "Current level price",
		},
	)

	c.CurveTotalSold = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pocchain",
			Subsystem: "curve",
			Name:      "total_sold",
			Help:      "Cumulative units sold on the curve",
		},
	)

	c.CurveSales = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pocchain",
			Subsystem: "curve",
			Name:      "sales_total",
			Help:      "Total curve sale transactions",
		},
	)

	c.CurveProceeds = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pocchain",
			Subsystem: "curve",
			Name:      "proceeds",
			Help:      "Total sale proceeds by collateral denom",
		},
		[]string{"denom"},
	)

	// Oracle metrics
	c.OraclePrice = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "pocchain",
			Subsystem: "oracle",
			Name:      "price",
			Help:      "Current oracle price",
		},
		[]string{"denom"},
	)

	c.OracleDeviation = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "pocchain",
			Subsystem: "oracle",
			Name:      "deviation_bips",
			Help:      "Last observed swap-vs-oracle deviation in basis points",
		},
		[]string{"denom"},
	)

	// System metrics
	c.BlockHeight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pocchain",
			Subsystem: "system",
			Name:      "block_height",
			Help:      "Current block height",
		},
	)

	c.EndBlockDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "pocchain",
			Subsystem: "system",
			Name:      "endblock_duration_ms",
			Help:      "Pool EndBlocker duration in milliseconds",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250},
		},
	)

	// Register all metrics
	c.registerAll()

	return c
}

// registerAll registers all metrics with Prometheus
func (c *Collector) registerAll() {
	// Lifecycle metrics
	prometheus.MustRegister(c.PoolStage)
	prometheus.MustRegister(c.StageTransitions)

	// Fundraising metrics
	prometheus.MustRegister(c.DepositsTotal)
	prometheus.MustRegister(c.DepositValueUSD)
	prometheus.MustRegister(c.CollectedValueUSD)
	prometheus.MustRegister(c.TargetValueUSD)

	// Share metrics
	prometheus.MustRegister(c.SharesSupply)
	prometheus.MustRegister(c.VaultsTotal)

	// Exit queue metrics
	prometheus.MustRegister(c.ExitQueueDepth)
	prometheus.MustRegister(c.ExitQueueShares)
	prometheus.MustRegister(c.ExitRequestsTotal)
	prometheus.MustRegister(c.ExitCancelsTotal)
	prometheus.MustRegister(c.ExitPaymentsTotal)
	prometheus.MustRegister(c.ExitPaymentFunded)
	prometheus.MustRegister(c.ExitSettleLatency)

	// Distribution metrics
	prometheus.MustRegister(c.DistributionsTotal)
	prometheus.MustRegister(c.DistributedValue)
	prometheus.MustRegister(c.RoyaltyPaid)
	prometheus.MustRegister(c.OperatorPaid)
	prometheus.MustRegister(c.ClaimsTotal)
	prometheus.MustRegister(c.ClaimedValue)

	// Curve metrics
	prometheus.MustRegister(c.CurveLevel)
	prometheus.MustRegister(c.CurvePrice)
	prometheus.MustRegister(c.CurveTotalSold)
	prometheus.MustRegister(c.CurveSales)
	prometheus.MustRegister(c.CurveProceeds)

	// Oracle metrics
	prometheus.MustRegister(c.OraclePrice)
	prometheus.MustRegister(c.OracleDeviation)

	// System metrics
	prometheus.MustRegister(c.BlockHeight)
	prometheus.MustRegister(c.EndBlockDuration)
}

// ============ Recording Helpers ============

// RecordStageTransition records a lifecycle transition
func (c *Collector) RecordStageTransition(from, to string, ordinal int) {
	c.StageTransitions.WithLabelValues(from, to).Inc()
	c.PoolStage.Set(float64(ordinal))
}

// RecordDeposit records an accepted fundraising deposit
func (c *Collector) RecordDeposit(usdValue float64) {
	c.DepositsTotal.Inc()
	c.DepositValueUSD.Add(usdValue)
}

// RecordExitRequest records a new exit-queue entry
func (c *Collector) RecordExitRequest() {
	c.ExitRequestsTotal.Inc()
}

// RecordExitCancel records a cancelled exit-queue entry
func (c *Collector) RecordExitCancel() {
	c.ExitCancelsTotal.Inc()
}

// RecordExitPayment records an exit settlement payout
func (c *Collector) RecordExitPayment(denom string, amount float64) {
	c.ExitPaymentsTotal.WithLabelValues(denom).Add(amount)
}

// ObserveExitSettle records one exit-queue processing pass duration
func (c *Collector) ObserveExitSettle(ms float64) {
	c.ExitSettleLatency.Observe(ms)
}

// RecordDistribution records one waterfall pass
func (c *Collector) RecordDistribution(token string, total, royalty, operator float64) {
	c.DistributionsTotal.WithLabelValues(token).Inc()
	c.DistributedValue.WithLabelValues(token).Add(total)
	c.RoyaltyPaid.WithLabelValues(token).Add(royalty)
	c.OperatorPaid.WithLabelValues(token).Add(operator)
}

// RecordClaim records a holder reward claim
func (c *Collector) RecordClaim(token string, amount float64) {
	c.ClaimsTotal.WithLabelValues(token).Inc()
	c.ClaimedValue.WithLabelValues(token).Add(amount)
}

// RecordCurveSale records a curve sale
func (c *Collector) RecordCurveSale(denom string, proceeds float64, level uint64, price float64, totalSold float64) {
	c.CurveSales.Inc()
	c.CurveProceeds.WithLabelValues(denom).Add(proceeds)
	c.CurveLevel.Set(float64(level))
	c.CurvePrice.Set(price)
	c.CurveTotalSold.Set(totalSold)
}

// RecordOraclePrice records an observed oracle price
func (c *Collector) RecordOraclePrice(denom string, price float64) {
	c.OraclePrice.WithLabelValues(denom).Set(price)
}

// RecordOracleDeviation records the last swap-vs-oracle deviation
func (c *Collector) RecordOracleDeviation(denom string, deviationBips float64) {
	c.OracleDeviation.WithLabelValues(denom).Set(deviationBips)
}

// UpdatePoolGauges updates the per-block ledger gauges
func (c *Collector) UpdatePoolGauges(blockHeight int64, stage int, sharesSupply, queuedShares float64, queueDepth, vaults int, fundedRemaining float64) {
	c.BlockHeight.Set(float64(blockHeight))
	c.PoolStage.Set(float64(stage))
	c.SharesSupply.Set(sharesSupply)
	c.ExitQueueShares.Set(queuedShares)
	c.ExitQueueDepth.Set(float64(queueDepth))
	c.VaultsTotal.Set(float64(vaults))
	c.ExitPaymentFunded.Set(fundedRemaining)
}

// ObserveEndBlock records one pool EndBlocker pass duration
func (c *Collector) ObserveEndBlock(ms float64) {
	c.EndBlockDuration.Observe(ms)
}

// ============ HTTP Handler ============

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for measuring latency
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ElapsedMs returns the elapsed time in milliseconds
func (t *Timer) ElapsedMs() float64 {
	return float64(time.Since(t.start).Microseconds()) / 1000.0
}
