package domain

// Bounds enforced by the ledger and recruitment logic
const (
	MaxPercentScale = 100

	// MaxRecruitmentPool caps the candidate pool; oldest excess is trimmed
	MaxRecruitmentPool = 10

	// MaxReviews caps the review list; reviews are newest first
	MaxReviews = 20

	// DefaultMaxConcurrentOrders applies to businesses with no staff
	DefaultMaxConcurrentOrders = 3
)

// Wage accrual constants. One accrual adds salaryPerDay/WageAccrualsPerDay
// to the unpaid wages bucket, so a full day of accruals equals one day's
// salary.
const (
	WageAccrualsPerDay = 8

	MoraleDecayUnpaid      = 1
	MoraleDecayDeepArrears = 2

	// DeepArrearsMultiple is how many days of unpaid salary count as deep
	// arrears and trigger the extra morale penalty
	DeepArrearsMultiple = 2
)

// Simulated day bounds: the sim-hour wraps from SimDayEndHour back to
// SimDayStartHour instead of running a full 24h clock.
const (
	SimDayStartHour = 6
	SimDayEndHour   = 23
)
