package postgres

// Error message prefixes for wrapped persistence errors
const (
	ErrMsgFailedToBeginTx      = "failed to begin transaction"
	ErrMsgFailedToMarshalState = "failed to marshal business state"
	ErrMsgFailedToScanBusiness = "failed to scan business row"
	ErrMsgFailedToScanOrder    = "failed to scan order row"
	ErrMsgFailedToInsertOrders = "failed to insert orders"
	ErrMsgFailedToUpdateOrder  = "failed to update order"
	ErrMsgInvalidBusinessID    = "invalid business id"
	ErrMsgInvalidOrderID       = "invalid order id"
)
