package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

type ctxKey string

const (
	requestIDKey  ctxKey = "requestID"
	businessIDKey ctxKey = "businessID"
	clientIPKey   ctxKey = "clientIP"
)

// GenerateRequestID creates a new UUID for tracing requests and ticks.
func GenerateRequestID() string {
	return uuid.NewString()
}

// WithRequestID returns a new context containing the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext extracts the request ID from the context, if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(requestIDKey)
	if v == nil {
		return "", false
	}
	if id, ok := v.(string); ok {
		return id, true
	}
	return "", false
}

// WithBusinessID returns a new context scoped to a business, so every log
// line from one simulation tick carries the business it acted on.
func WithBusinessID(ctx context.Context, businessID string) context.Context {
	return context.WithValue(ctx, businessIDKey, businessID)
}

// BusinessIDFromContext extracts the business ID from the context, if present.
func BusinessIDFromContext(ctx context.Context) (string, bool) {
	if id, ok := ctx.Value(businessIDKey).(string); ok {
		return id, true
	}
	return "", false
}

// WithClientIP returns a new context carrying the resolved client IP, set
// once by the security middleware.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey, ip)
}

// ClientIPFromContext extracts the client IP from the context, if present.
func ClientIPFromContext(ctx context.Context) (string, bool) {
	if ip, ok := ctx.Value(clientIPKey).(string); ok {
		return ip, true
	}
	return "", false
}

// FromContext returns a logger that includes the request_id, business_id,
// and client_ip attributes when present.
func FromContext(ctx context.Context) *slog.Logger {
	log := slog.Default()
	if id, ok := RequestIDFromContext(ctx); ok {
		log = log.With(AttrKeyRequestID, id)
	}
	if id, ok := BusinessIDFromContext(ctx); ok {
		log = log.With(AttrKeyBusinessID, id)
	}
	if ip, ok := ClientIPFromContext(ctx); ok {
		log = log.With(AttrKeyClientIP, ip)
	}
	return log
}

// InitLogger installs the default slog logger per the supplied config.
func InitLogger(cfg Config) {
	opts := &slog.HandlerOptions{
		Level:     cfg.LogLevel(),
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if cfg.IsJSON() {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	log := slog.New(handler.WithAttrs(cfg.BaseAttributes()))
	slog.SetDefault(log)
}
