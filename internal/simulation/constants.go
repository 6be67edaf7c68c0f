package simulation

// Gate names for per-business cooldown tracking
const (
	GateRecruitment = "recruitment"
	GateOrderGen    = "order_gen"
	GateAutoWork    = "auto_work"
	GateWage        = "wage"
	GatePayroll     = "payroll"
)

// Order generation tuning
const (
	// BaseOrdersPerGeneration is the expected order count at demand weight 1.0
	BaseOrdersPerGeneration = 1.0

	// MaxOrdersPerGeneration caps how many orders one generation pass creates
	MaxOrdersPerGeneration = 2

	MaxItemsPerOrder   = 2
	MaxQuantityPerItem = 2
)

// Log messages
const (
	LogMsgTickFailed          = "Business tick failed"
	LogMsgBusinessGone        = "Business no longer exists, stopped tracking"
	LogMsgCatalogMiss         = "Unknown business type, skipping simulation"
	LogMsgOrdersGenerated     = "Orders generated"
	LogMsgPoolRefreshed       = "Recruitment pool refreshed"
	LogMsgAutoAccepted        = "Order auto-accepted"
	LogMsgAutoWorkDone        = "Auto-work pass applied"
	LogMsgWagesAccrued        = "Wages accrued"
	LogMsgPayrollSettled      = "Payroll settled"
	LogMsgOverdraft           = "Cash overdrawn after payroll"
	LogMsgLostRace            = "Order transition lost race, skipping"
	LogMsgStepFailed          = "Tick step failed, will retry next tick"
	LogMsgTickQueueFull       = "Worker queue full, dropping tick"
	LogMsgSchedulerStarted    = "Simulation scheduler started"
	LogMsgSchedulerStopped    = "Simulation scheduler stopped"
	LogMsgBusinessRegistered  = "Business registered with scheduler"
	LogMsgBusinessPaused      = "Business simulation paused"
	LogMsgBusinessResumed     = "Business simulation resumed"
	LogMsgPublishFailed       = "Failed to publish simulation event"
	LogMsgCreateOrdersFailed  = "Failed to persist generated orders"
	LogMsgUnregisteredUnknown = "Unregister requested for untracked business"
)

// Error message formats
const (
	ErrMsgGetBusinessFailed = "failed to load business for tick: %w"
	ErrMsgNotTracked        = "business is not tracked by the scheduler"
)
