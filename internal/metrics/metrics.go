package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Simulation Metrics
var (
	TicksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTicksTotal,
			Help: HelpTextTicksTotal,
		},
	)

	TickDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameTickDuration,
			Help:    HelpTextTickDuration,
			Buckets: TickLatencyBuckets,
		},
	)

	TickErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTickErrors,
			Help: HelpTextTickErrors,
		},
	)

	OrdersGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameOrdersGenerated,
			Help: HelpTextOrdersGenerated,
		},
		[]string{LabelCategory},
	)

	OrdersAccepted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameOrdersAccepted,
			Help: HelpTextOrdersAccepted,
		},
		[]string{LabelSource},
	)

	OrdersCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameOrdersCompleted,
			Help: HelpTextOrdersCompleted,
		},
		[]string{LabelSource},
	)

	OrdersFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameOrdersFailed,
			Help: HelpTextOrdersFailed,
		},
		[]string{LabelSource},
	)

	OrdersRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameOrdersRejected,
			Help: HelpTextOrdersRejected,
		},
		[]string{LabelSource},
	)

	Stockouts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameStockouts,
			Help: HelpTextStockouts,
		},
	)

	PayrollRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePayrollRuns,
			Help: HelpTextPayrollRuns,
		},
	)

	Overdrafts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameOverdrafts,
			Help: HelpTextOverdrafts,
		},
	)

	RecruitsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRecruitsGenerated,
			Help: HelpTextRecruitsGenerated,
		},
	)

	BusinessesTracked = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameBusinessesTracked,
			Help: HelpTextBusinessesTracked,
		},
	)

	RevenueCentsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRevenueCentsTotal,
			Help: HelpTextRevenueCentsTotal,
		},
	)

	ExpensesCentsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameExpensesCentsTotal,
			Help: HelpTextExpensesCentsTotal,
		},
	)
)
