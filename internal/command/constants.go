package command

// New businesses start at a neutral standing
const (
	StartingReputation   = 50
	StartingSatisfaction = 50
)

// DefaultManualQuality applies when an operator completes an order with no
// staff and no explicit quality override
const DefaultManualQuality = 70

// Error message formats
const (
	ErrFmtShortStock = "%w: need %d x '%s', have %d"
)

// Log messages
const (
	LogMsgBusinessCreated = "Business created"
	LogMsgCandidateHired  = "Candidate hired"
	LogMsgPenaltyFailed   = "Failed to apply rejection penalty"
	LogMsgDeltaFailed     = "Failed to apply completion delta"
	LogMsgPublishFailed   = "Failed to publish command event"
)
