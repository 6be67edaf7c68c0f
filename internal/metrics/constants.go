package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Simulation metric names
const (
	MetricNameTicksTotal         = "simulation_ticks_total"
	MetricNameTickDuration       = "simulation_tick_duration_seconds"
	MetricNameTickErrors         = "simulation_tick_errors_total"
	MetricNameOrdersGenerated    = "orders_generated_total"
	MetricNameOrdersAccepted     = "orders_accepted_total"
	MetricNameOrdersCompleted    = "orders_completed_total"
	MetricNameOrdersFailed       = "orders_failed_total"
	MetricNameOrdersRejected     = "orders_rejected_total"
	MetricNameStockouts          = "stockouts_total"
	MetricNamePayrollRuns        = "payroll_runs_total"
	MetricNameOverdrafts         = "overdrafts_total"
	MetricNameRecruitsGenerated  = "recruits_generated_total"
	MetricNameBusinessesTracked  = "businesses_tracked"
	MetricNameRevenueCentsTotal  = "revenue_cents_total"
	MetricNameExpensesCentsTotal = "expenses_cents_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Simulation metric help text
const (
	HelpTextTicksTotal         = "Total number of simulation ticks executed"
	HelpTextTickDuration       = "Simulation tick duration in seconds"
	HelpTextTickErrors         = "Total number of simulation ticks that logged an error"
	HelpTextOrdersGenerated    = "Total number of synthetic orders generated"
	HelpTextOrdersAccepted     = "Total number of orders accepted"
	HelpTextOrdersCompleted    = "Total number of orders completed"
	HelpTextOrdersFailed       = "Total number of orders failed"
	HelpTextOrdersRejected     = "Total number of orders rejected"
	HelpTextStockouts          = "Total number of stockout failures"
	HelpTextPayrollRuns        = "Total number of payroll settlements"
	HelpTextOverdrafts         = "Total number of overdraft warnings"
	HelpTextRecruitsGenerated  = "Total number of recruitment candidates generated"
	HelpTextBusinessesTracked  = "Number of businesses currently simulated"
	HelpTextRevenueCentsTotal  = "Total revenue recorded by the ledger in cents"
	HelpTextExpensesCentsTotal = "Total expenses recorded by the ledger in cents"
)

// ============================================================================
// Label Names
// ============================================================================

const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelSource   = "source" // "manual" or "auto"
	LabelCategory = "category"
)

// Label values distinguishing human commands from scheduler automation
const (
	SourceManual = "manual"
	SourceAuto   = "auto"
)

// HTTPLatencyBuckets are the histogram buckets for request latency
var HTTPLatencyBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}

// TickLatencyBuckets are the histogram buckets for tick duration
var TickLatencyBuckets = []float64{.001, .005, .01, .05, .1, .5, 1, 5}
