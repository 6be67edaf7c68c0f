package catalog

// Error message formats for the loader
const (
	ErrMsgReadConfigFailed  = "failed to read catalog config: %w"
	ErrMsgParseConfigFailed = "failed to parse catalog config: %w"
	ErrMsgConfigNil         = "config is nil"
	ErrMsgNoTypesDefined    = "no business types defined"

	ErrFmtDuplicateProduct = "%w: business type '%s' has duplicate product '%s'"
	ErrFmtBadConsumption   = "%w: business type '%s' product '%s' consumes inventory but has no units per sale"
)

// Log messages
const (
	LogMsgCatalogLoaded = "Business type catalog loaded"
	LogMsgCatalogMiss   = "Business type not found, simulation disabled for business"
)
