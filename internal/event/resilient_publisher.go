package event

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/hustlehq/tycoonsim/internal/logger"
)

// ResilientConfig configures the ResilientPublisher
type ResilientConfig struct {
	MaxRetries     int
	RetryDelay     time.Duration
	DeadLetterPath string
}

// DefaultResilientConfig returns the standard retry policy
func DefaultResilientConfig() ResilientConfig {
	return ResilientConfig{
		MaxRetries:     RetryMaxAttempts,
		RetryDelay:     RetryInitialDelay,
		DeadLetterPath: "deadletter.jsonl",
	}
}

// ResilientPublisher wraps an event Bus with retry logic and a dead-letter
// file. Narration must never block or crash a simulation tick, so the first
// failure detaches into a background retry loop and the caller sees nil.
type ResilientPublisher struct {
	inner  Bus
	config ResilientConfig
	mu     sync.Mutex // Protects dead-letter file writes
	wg     sync.WaitGroup
}

// NewResilientPublisher creates a new ResilientPublisher
func NewResilientPublisher(inner Bus, config ResilientConfig) *ResilientPublisher {
	return &ResilientPublisher{
		inner:  inner,
		config: config,
	}
}

// Publish attempts to publish an event. On failure it schedules background
// retries and returns nil immediately; the caller is decoupled from delivery.
func (p *ResilientPublisher) Publish(ctx context.Context, evt Event) error {
	if err := p.inner.Publish(ctx, evt); err == nil {
		return nil
	} else {
		logger.FromContext(ctx).Warn(LogMsgEventPublishFailed,
			"event_type", evt.Type,
			"error", err,
			"retries", p.config.MaxRetries)
	}

	p.wg.Add(1)
	go p.retryLoop(evt)
	return nil
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}

// Wait blocks until all in-flight retry loops finish. Test helper and
// shutdown hook.
func (p *ResilientPublisher) Wait() {
	p.wg.Wait()
}

func (p *ResilientPublisher) retryLoop(evt Event) {
	defer p.wg.Done()

	// Detached context: the originating tick is long gone.
	ctx := context.Background()
	log := logger.FromContext(ctx)

	for attempt := 1; attempt <= p.config.MaxRetries; attempt++ {
		time.Sleep(CalculateRetryDelay(p.config.RetryDelay, attempt))

		if err := p.inner.Publish(ctx, evt); err == nil {
			log.Info(LogMsgEventRetrySucceeded, "event_type", evt.Type, "attempt", attempt)
			return
		} else {
			log.Warn(LogMsgEventRetryFailed, "event_type", evt.Type, "attempt", attempt, "error", err)
		}
	}

	log.Error(LogMsgEventRetryExhausted, "event_type", evt.Type)
	p.writeToDeadLetter(ctx, evt)
}

type deadLetterEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Event     Event     `json:"event"`
}

func (p *ResilientPublisher) writeToDeadLetter(ctx context.Context, evt Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	log := logger.FromContext(ctx)

	f, err := os.OpenFile(p.config.DeadLetterPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DeadLetterFilePermissions)
	if err != nil {
		log.Error(LogMsgDeadLetterFailed, "error", err, "path", p.config.DeadLetterPath)
		return
	}
	defer f.Close()

	entry := deadLetterEntry{Timestamp: time.Now(), Event: evt}
	if err := json.NewEncoder(f).Encode(entry); err != nil {
		log.Error(LogMsgDeadLetterFailed, "error", err)
		return
	}
	log.Info(LogMsgDeadLetterWritten, "event_type", evt.Type)
}
