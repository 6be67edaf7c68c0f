// Package narrator turns simulation events into in-character narration lines
// and pushes them to an external overlay over WebSocket. The overlay is
// optional equipment: when it is down the client backs off, eventually goes
// dormant, and wakes on the next narration attempt.
package narrator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Narration is one rendered line pushed to the overlay
type Narration struct {
	BusinessID string `json:"business_id"`
	Guide      string `json:"guide"`
	Tone       string `json:"tone"`
	Line       string `json:"line"`
}

// Client manages the WebSocket connection to the narration overlay
type Client struct {
	url      string
	password string
	conn     *websocket.Conn
	mu       sync.RWMutex
	shutdown chan struct{}
	wg       sync.WaitGroup

	connected bool
	dormant   bool

	// wakeup triggers reconnection from dormant mode
	wakeup chan struct{}
}

// request is the overlay wire envelope
type request struct {
	Request string `json:"request"`
	ID      string `json:"id"`
	Body    any    `json:"body,omitempty"`
}

type response struct {
	Status string `json:"status"`
	ID     string `json:"id"`
	Error  string `json:"error,omitempty"`
}

// authChallenge is the overlay's opening authentication handshake
type authChallenge struct {
	Info struct {
		Authentication struct {
			Challenge string `json:"challenge"`
			Salt      string `json:"salt"`
		} `json:"authentication"`
	} `json:"info"`
}

// NewClient creates a new overlay WebSocket client
func NewClient(url, password string) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		url:      url,
		password: password,
		shutdown: make(chan struct{}),
		wakeup:   make(chan struct{}, 1),
	}
}

// Start begins the WebSocket connection with auto-reconnect
func (c *Client) Start(ctx context.Context) {
	c.wg.Add(1)
	go c.connectLoop(ctx)
}

// Stop gracefully shuts down the client
func (c *Client) Stop() {
	close(c.shutdown)
	c.wg.Wait()

	c.mu.Lock()
	if c.conn != nil {
		c.conn.Close()
	}
	c.mu.Unlock()
}

// IsConnected returns whether the client is currently connected
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// Push sends one narration line to the overlay
func (c *Client) Push(n Narration) error {
	c.mu.RLock()
	isDormant := c.dormant
	c.mu.RUnlock()

	if isDormant {
		slog.Debug(LogMsgDormantRetry)
		select {
		case c.wakeup <- struct{}{}:
		default:
		}
		return fmt.Errorf("narrator overlay dormant, reconnection triggered")
	}

	if !c.IsConnected() {
		return fmt.Errorf("not connected to narrator overlay")
	}

	req := request{
		Request: MessageNarrate,
		ID:      uuid.New().String(),
		Body:    n,
	}

	if err := c.send(req); err != nil {
		slog.Error(LogMsgNarrateFailed, "guide", n.Guide, "error", err)
		return err
	}

	slog.Debug(LogMsgNarrationSent, "guide", n.Guide, "tone", n.Tone)
	return nil
}

func (c *Client) connectLoop(ctx context.Context) {
	defer c.wg.Done()

	backoff := DefaultReconnectDelay
	consecutiveFailures := 0

	for {
		select {
		case <-c.shutdown:
			slog.Info(LogMsgClientStopped)
			return
		case <-ctx.Done():
			slog.Info(LogMsgClientStopped)
			return
		default:
		}

		err := c.connect(ctx)
		if err != nil {
			consecutiveFailures++
			c.setConnected(false)

			if consecutiveFailures >= MaxConsecutiveFailures {
				if stop := c.sleepDormant(ctx, &consecutiveFailures, &backoff); stop {
					return
				}
				continue
			}

			// Log the first few failures, then periodically, to avoid spam.
			if consecutiveFailures <= 3 || consecutiveFailures%100 == 0 {
				slog.Warn(LogMsgReconnecting,
					"error", err,
					"backoff", backoff,
					"consecutive_failures", consecutiveFailures)
			}

			select {
			case <-time.After(backoff):
				backoff = time.Duration(float64(backoff) * ReconnectMultiplier)
				if backoff > MaxReconnectDelay {
					backoff = MaxReconnectDelay
				}
			case <-c.shutdown:
				return
			case <-ctx.Done():
				return
			}
		} else {
			if consecutiveFailures > 0 {
				slog.Info(LogMsgRestored, "after_failures", consecutiveFailures)
			}
			backoff = DefaultReconnectDelay
			consecutiveFailures = 0
			c.mu.Lock()
			c.dormant = false
			c.mu.Unlock()
		}
	}
}

// sleepDormant parks the client until a narration attempt wakes it
func (c *Client) sleepDormant(ctx context.Context, consecutiveFailures *int, backoff *time.Duration) bool {
	c.mu.Lock()
	c.dormant = true
	c.mu.Unlock()

	slog.Warn(LogMsgGivingUp,
		"consecutive_failures", *consecutiveFailures,
		"max_allowed", MaxConsecutiveFailures)

	select {
	case <-c.wakeup:
		slog.Info(LogMsgWaking)
		c.mu.Lock()
		c.dormant = false
		c.mu.Unlock()
		*backoff = DefaultReconnectDelay
		*consecutiveFailures = 0
		return false
	case <-c.shutdown:
		return true
	case <-ctx.Done():
		return true
	}
}

func (c *Client) connect(ctx context.Context) error {
	slog.Info(LogMsgConnecting, "url", c.url)

	dialer := websocket.Dialer{
		ReadBufferSize:  ReadBufferSize,
		WriteBufferSize: WriteBufferSize,
	}

	conn, resp, err := dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("failed to connect: %w (status: %s)", err, resp.Status)
		}
		return fmt.Errorf("failed to connect: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	// The overlay sends an auth challenge first when a password is set. A
	// short deadline covers overlays with auth disabled that send nothing.
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	_ = conn.SetReadDeadline(time.Time{})

	if err == nil {
		var challenge authChallenge
		if err := json.Unmarshal(msg, &challenge); err == nil {
			if challenge.Info.Authentication.Challenge != "" {
				slog.Info(LogMsgAuthRequired)
				if err := c.authenticate(challenge); err != nil {
					conn.Close()
					return fmt.Errorf("authentication failed: %w", err)
				}
				slog.Info(LogMsgAuthSuccess)
			}
		}
	}

	c.setConnected(true)
	slog.Info(LogMsgConnected, "url", c.url)

	return c.readLoop(ctx)
}

func (c *Client) authenticate(challenge authChallenge) error {
	if c.password == "" {
		return fmt.Errorf("password required but not configured")
	}

	authReq := struct {
		Request        string `json:"request"`
		ID             string `json:"id"`
		Authentication string `json:"authentication"`
	}{
		Request: MessageAuthenticate,
		ID:      uuid.New().String(),
		Authentication: GenerateAuthHash(
			c.password,
			challenge.Info.Authentication.Salt,
			challenge.Info.Authentication.Challenge,
		),
	}

	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if err := conn.WriteJSON(authReq); err != nil {
		return fmt.Errorf("failed to send auth request: %w", err)
	}

	_, msg, err := conn.ReadMessage()
	if err != nil {
		return fmt.Errorf("failed to read auth response: %w", err)
	}

	var resp response
	if err := json.Unmarshal(msg, &resp); err != nil {
		return fmt.Errorf("failed to parse auth response: %w", err)
	}
	if resp.Status != StatusOK {
		return fmt.Errorf("auth rejected: %s", resp.Error)
	}
	return nil
}

func (c *Client) readLoop(ctx context.Context) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	for {
		select {
		case <-c.shutdown:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			slog.Warn(LogMsgReadError, "error", err)
			return err
		}
		// The overlay only acks; nothing to route.
	}
}

func (c *Client) send(req request) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return fmt.Errorf("no connection")
	}

	_ = conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
	return conn.WriteJSON(req)
}

func (c *Client) setConnected(connected bool) {
	c.mu.Lock()
	c.connected = connected
	c.mu.Unlock()
}
