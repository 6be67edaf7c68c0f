package narrator

import "time"

// Default configuration values
const (
	// DefaultURL is the default WebSocket URL for the narration overlay
	DefaultURL = "ws://127.0.0.1:7711/"

	// DefaultReconnectDelay is the initial delay before attempting to reconnect
	DefaultReconnectDelay = 1 * time.Second

	// MaxReconnectDelay is the maximum delay between reconnection attempts
	MaxReconnectDelay = 30 * time.Second

	// ReconnectMultiplier is the multiplier for exponential backoff
	ReconnectMultiplier = 2.0

	// MaxConsecutiveFailures is how many attempts happen before going dormant
	MaxConsecutiveFailures = 10

	// WriteTimeout is the timeout for writing messages
	WriteTimeout = 10 * time.Second

	// ReadBufferSize is the WebSocket read buffer size
	ReadBufferSize = 4096

	// WriteBufferSize is the WebSocket write buffer size
	WriteBufferSize = 4096
)

// Message types on the overlay protocol
const (
	MessageNarrate      = "Narrate"
	MessageAuthenticate = "Authenticate"
)

// Response status values
const (
	StatusOK = "ok"
)

// Narration tones. A business type's guide carries one of these; unknown
// tones fall back to ToneNeutral.
const (
	ToneWarm    = "warm"
	ToneUpbeat  = "upbeat"
	ToneDry     = "dry"
	ToneNeutral = "neutral"
	ToneWarning = "warning"
)

// Log messages
const (
	LogMsgConnecting     = "Connecting to narrator overlay"
	LogMsgConnected      = "Connected to narrator overlay"
	LogMsgReconnecting   = "Reconnecting to narrator overlay"
	LogMsgRestored       = "Narrator overlay connection restored"
	LogMsgAuthRequired   = "Narrator overlay requires authentication"
	LogMsgAuthSuccess    = "Narrator overlay authentication successful"
	LogMsgNarrationSent  = "Narration sent"
	LogMsgNarrateFailed  = "Failed to push narration"
	LogMsgReadError      = "Error reading from narrator overlay"
	LogMsgClientStopped  = "Narrator client stopped"
	LogMsgGivingUp       = "Narrator overlay unreachable, entering dormant mode"
	LogMsgDormantRetry   = "Narrator dormant, retrying connection due to incoming event"
	LogMsgWaking         = "Narrator waking from dormant mode"
	LogMsgSubscribed     = "Narrator subscribed to simulation events"
	LogMsgGuideUnknown   = "No guide found for business, using neutral narrator"
	LogMsgBadPayloadType = "Unexpected event payload type"
)
