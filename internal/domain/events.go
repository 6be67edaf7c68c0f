package domain

// Event type name constants shared between the event bus and its consumers
const (
	EventTypeOrderAccepted    = "order.accepted"
	EventTypeOrderRejected    = "order.rejected"
	EventTypeOrderCompleted   = "order.completed"
	EventTypeOrderFailed      = "order.failed"
	EventTypeOrdersGenerated  = "orders.generated"
	EventTypeRecruitsArrived  = "recruits.arrived"
	EventTypePayrollProcessed = "payroll.processed"
	EventTypeOverdraftWarning = "overdraft.warning"
	EventTypeStockoutWarning  = "stockout.warning"
	EventTypeLedgerApplied    = "ledger.applied"
)
