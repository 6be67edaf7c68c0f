package order

// Rating scale
const (
	MinRating          = 1
	MaxRating          = 5
	TopRatingThreshold = 95
)

// Tip policy: nothing at or below the threshold, ramping linearly to
// TipMaxPercent of order value at quality 100
const (
	TipQualityThreshold = 70
	TipMaxPercent       = 20
)

// Reputation penalties
const (
	// RejectPenaltyDivisorCents converts order value to rejection penalty
	// points: one point per 10 dollars turned away.
	RejectPenaltyDivisorCents = 1000
	MinRejectPenalty          = 1
	MaxRejectPenalty          = 4

	FailPenaltyBase = 5
	StockoutPenalty = 8
)
