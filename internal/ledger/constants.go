package ledger

// Error message formats
const (
	ErrMsgBeginTxFailed = "failed to begin ledger transaction: %w"
	ErrMsgUpdateFailed  = "failed to update business state: %w"
	ErrMsgCommitFailed  = "failed to commit ledger transaction: %w"
)

// Log messages
const (
	LogMsgDeltaApplied  = "Ledger delta applied"
	LogMsgPublishFailed = "Failed to publish ledger event"
)
