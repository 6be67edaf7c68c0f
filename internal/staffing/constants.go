package staffing

// Candidate generation parameters
const (
	// MinCandidatesPerRefresh/Max bound how many applicants arrive per refresh
	MinCandidatesPerRefresh = 2
	MaxCandidatesPerRefresh = 3

	// Base stat roll range for new candidates
	MinBaseStat = 40
	MaxBaseStat = 80

	// RoleStatBias is added to the role's favored stat at generation
	RoleStatBias = 15

	// SalaryCentsPerStatPoint converts the base stat roll into a daily salary
	SalaryCentsPerStatPoint = 150
)

// Auto-work parameters
const (
	// WorkPowerDivisorX2 is the doubled divisor for the throughput rule
	// N = max(1, floor(employees / 1.5)), computed as employees*2/3.
	WorkPowerDivisorX2 = 3

	// QualityNoiseRange bounds the random quality noise around the roster
	// average: noise is drawn uniformly from [-10, +10].
	QualityNoiseRange = 10
)

// Satisfaction and reputation tuning for auto-work outcomes
const (
	// RatingSatisfactionPivot centers the per-order satisfaction delta:
	// rating 3 is neutral, 5 stars +2, 1 star -2.
	RatingSatisfactionPivot = 3

	// GoodRatingThreshold earns a reputation point on completion
	GoodRatingThreshold = 4

	StockoutSatisfactionPenalty = 2
)

// Log messages
const (
	LogMsgPoolRefreshed   = "Recruitment pool refreshed"
	LogMsgAutoWorkPass    = "Auto-work pass finished"
	LogMsgWagesSettled    = "Wages settled"
	LogMsgCandidateHired  = "Candidate hired"
	LogMsgEmployeeDropped = "Employee removed from roster"
)
