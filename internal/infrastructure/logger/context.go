package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type contextKey string

const (
	LoggerKey    contextKey = "logger"
	RequestIDKey contextKey = "request_id"
	SessionIDKey contextKey = "session_id" // cart session cookie
	UserIDKey    contextKey = "user_id"
)

// identifiers are copied onto every entry written through L, in this order
var identifiers = []contextKey{RequestIDKey, SessionIDKey, UserIDKey}

// WithContext stores logger in ctx
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext returns the stored logger or a no-op logger
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(LoggerKey).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}

// withIdentifier records value under key and stores a logger that carries it
func withIdentifier(ctx context.Context, base *zap.Logger, key contextKey, value string) (context.Context, *zap.Logger) {
	enriched := base.With(zap.String(string(key), value))
	ctx = context.WithValue(ctx, key, value)
	return WithContext(ctx, enriched), enriched
}

func identifier(ctx context.Context, key contextKey) string {
	v, _ := ctx.Value(key).(string)
	return v
}

func WithRequestID(ctx context.Context, base *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	return withIdentifier(ctx, base, RequestIDKey, requestID)
}

func WithSessionID(ctx context.Context, base *zap.Logger, sessionID string) (context.Context, *zap.Logger) {
	return withIdentifier(ctx, base, SessionIDKey, sessionID)
}

func WithUserID(ctx context.Context, base *zap.Logger, userID string) (context.Context, *zap.Logger) {
	return withIdentifier(ctx, base, UserIDKey, userID)
}

func GetRequestID(ctx context.Context) string { return identifier(ctx, RequestIDKey) }
func GetSessionID(ctx context.Context) string { return identifier(ctx, SessionIDKey) }
func GetUserID(ctx context.Context) string    { return identifier(ctx, UserIDKey) }

// GetTraceID is empty when ctx carries no valid span
func GetTraceID(ctx context.Context) string {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		return sc.TraceID().String()
	}
	return ""
}

func GetSpanID(ctx context.Context) string {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		return sc.SpanID().String()
	}
	return ""
}

// WithTraceContext adds trace_id and span_id when ctx carries a valid span
func WithTraceContext(ctx context.Context, l *zap.Logger) *zap.Logger {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return l
	}
	return l.With(
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	)
}

// ContextLogger writes entries tagged with the trace and the request, cart
// session and user identifiers found in its context.
//
//	logger.L(ctx).Info("Order placed", zap.String("order_number", n))
type ContextLogger struct {
	ctx    context.Context
	logger *zap.Logger
}

// L uses the logger stored in ctx
func L(ctx context.Context) *ContextLogger {
	return &ContextLogger{ctx: ctx, logger: FromContext(ctx)}
}

// WithLogger uses l instead of the logger stored in ctx
func WithLogger(ctx context.Context, l *zap.Logger) *ContextLogger {
	return &ContextLogger{ctx: ctx, logger: l}
}

func (cl *ContextLogger) base() *zap.Logger {
	if cl.logger == nil {
		return zap.NewNop()
	}
	return cl.logger
}

func (cl *ContextLogger) enriched() *zap.Logger {
	fields := make([]zap.Field, 0, len(identifiers))
	for _, key := range identifiers {
		if v := identifier(cl.ctx, key); v != "" {
			fields = append(fields, zap.String(string(key), v))
		}
	}
	return WithTraceContext(cl.ctx, cl.base()).With(fields...)
}

// With returns a child carrying extra fields
func (cl *ContextLogger) With(fields ...zap.Field) *ContextLogger {
	return &ContextLogger{ctx: cl.ctx, logger: cl.base().With(fields...)}
}

func (cl *ContextLogger) Debug(msg string, fields ...zap.Field) { cl.enriched().Debug(msg, fields...) }
func (cl *ContextLogger) Info(msg string, fields ...zap.Field)  { cl.enriched().Info(msg, fields...) }
func (cl *ContextLogger) Warn(msg string, fields ...zap.Field)  { cl.enriched().Warn(msg, fields...) }
func (cl *ContextLogger) Error(msg string, fields ...zap.Field) { cl.enriched().Error(msg, fields...) }

// Zap exposes the enriched logger for APIs that take a *zap.Logger
func (cl *ContextLogger) Zap() *zap.Logger {
	return cl.enriched()
}
