package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidStatus     = "Invalid status filter '%s'. Valid options: pending, accepted, in_progress, completed, failed, rejected"

	// Business operation error messages
	ErrMsgCreateBusinessFailed = "Failed to create business"
	ErrMsgGetBusinessFailed    = "Failed to get business"
	ErrMsgListTypesFailed      = "Failed to list business types"

	// Order operation error messages
	ErrMsgListOrdersFailed    = "Failed to list orders"
	ErrMsgAcceptOrderFailed   = "Failed to accept order"
	ErrMsgRejectOrderFailed   = "Failed to reject order"
	ErrMsgCompleteOrderFailed = "Failed to complete order"

	// Staffing error messages
	ErrMsgHireFailed = "Failed to hire candidate"

	// Simulation control error messages
	ErrMsgPauseFailed  = "Failed to pause simulation"
	ErrMsgResumeFailed = "Failed to resume simulation"
	ErrMsgStatusFailed = "Failed to get simulation status"
)

// Success messages for API responses
const (
	MsgBusinessCreatedSuccess = "Business created successfully"
	MsgOrderAcceptedSuccess   = "Order accepted"
	MsgOrderRejectedSuccess   = "Order rejected"
	MsgOrderCompletedSuccess  = "Order completed"
	MsgCandidateHiredSuccess  = "Candidate hired successfully"
	MsgSimulationPaused       = "Simulation paused"
	MsgSimulationResumed      = "Simulation resumed"
)
