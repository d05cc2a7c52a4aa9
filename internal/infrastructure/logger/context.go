package logger

import (
	"context"

	"go.uber.org/zap"
)

// contextKey is a type for context keys used by the logger package
type contextKey string

const (
	// LoggerKey is the context key for the logger
	LoggerKey contextKey = "logger"
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"
	// OfficerIDKey is the context key for the authenticated officer's
	// external identifier
	OfficerIDKey contextKey = "officer_id"
)

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext retrieves the logger from context, returns a no-op logger if
// not found
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithRequestID adds the request ID to context and returns an enriched logger
func WithRequestID(ctx context.Context, logger *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, RequestIDKey, requestID)
	enriched := logger.With(zap.String("request_id", requestID))
	return WithContext(ctx, enriched), enriched
}

// WithOfficerID adds the officer's external ID to context and returns an
// enriched logger
func WithOfficerID(ctx context.Context, logger *zap.Logger, officerID string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, OfficerIDKey, officerID)
	enriched := logger.With(zap.String("officer_id", officerID))
	return WithContext(ctx, enriched), enriched
}

// GetRequestID retrieves the request ID from context
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// GetOfficerID retrieves the officer's external ID from context
func GetOfficerID(ctx context.Context) string {
	if id, ok := ctx.Value(OfficerIDKey).(string); ok {
		return id
	}
	return ""
}
