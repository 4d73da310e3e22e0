package log

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kubev2v/transcription-service/pkg/requestid"
)

// StructuredLogger emits one log line per operation step, tagged with the
// component name and the request id found in the context.
type StructuredLogger struct {
	name  string
	level zapcore.Level
}

// NewDebugLogger returns a logger whose step lines are written at debug level.
// Errors are always written at error level.
func NewDebugLogger(name string) *StructuredLogger {
	return &StructuredLogger{name: name, level: zapcore.DebugLevel}
}

// NewInfoLogger returns a logger whose step lines are written at info level.
func NewInfoLogger(name string) *StructuredLogger {
	return &StructuredLogger{name: name, level: zapcore.InfoLevel}
}

func (l *StructuredLogger) WithContext(ctx context.Context) *ContextLogger {
	return &ContextLogger{parent: l, requestID: requestid.FromContext(ctx)}
}

type ContextLogger struct {
	parent    *StructuredLogger
	requestID string
}

func (c *ContextLogger) Operation(name string) *OperationBuilder {
	return &OperationBuilder{logger: c, operation: name}
}

type OperationBuilder struct {
	logger    *ContextLogger
	operation string
	fields    []zap.Field
}

func (b *OperationBuilder) WithString(key, value string) *OperationBuilder {
	b.fields = append(b.fields, zap.String(key, value))
	return b
}

func (b *OperationBuilder) WithInt(key string, value int) *OperationBuilder {
	b.fields = append(b.fields, zap.Int(key, value))
	return b
}

func (b *OperationBuilder) WithUUID(key string, value uuid.UUID) *OperationBuilder {
	b.fields = append(b.fields, zap.String(key, value.String()))
	return b
}

func (b *OperationBuilder) WithParam(key string, value any) *OperationBuilder {
	b.fields = append(b.fields, zap.Any(key, value))
	return b
}

// Build starts the operation clock and logs the operation start.
func (b *OperationBuilder) Build() *OperationTracer {
	t := &OperationTracer{
		logger:    b.logger,
		operation: b.operation,
		fields:    b.fields,
		start:     time.Now(),
	}
	t.entry("started", t.logger.parent.level).Log()
	return t
}

type OperationTracer struct {
	logger    *ContextLogger
	operation string
	fields    []zap.Field
	start     time.Time
}

func (t *OperationTracer) Step(name string) *Entry {
	return t.entry(name, t.logger.parent.level)
}

func (t *OperationTracer) Success() *Entry {
	e := t.entry("success", t.logger.parent.level)
	e.fields = append(e.fields, zap.Duration("duration", time.Since(t.start)))
	return e
}

func (t *OperationTracer) Error(err error) *Entry {
	e := t.entry("error", zapcore.ErrorLevel)
	e.fields = append(e.fields, zap.Error(err), zap.Duration("duration", time.Since(t.start)))
	return e
}

func (t *OperationTracer) entry(step string, level zapcore.Level) *Entry {
	fields := make([]zap.Field, 0, len(t.fields)+3)
	fields = append(fields, zap.String("operation", t.operation), zap.String("step", step))
	if t.logger.requestID != "" {
		fields = append(fields, zap.String("request_id", t.logger.requestID))
	}
	fields = append(fields, t.fields...)
	return &Entry{name: t.logger.parent.name, level: level, fields: fields}
}

// Entry is a single log line under construction.
type Entry struct {
	name   string
	level  zapcore.Level
	fields []zap.Field
}

func (e *Entry) WithString(key, value string) *Entry {
	e.fields = append(e.fields, zap.String(key, value))
	return e
}

func (e *Entry) WithInt(key string, value int) *Entry {
	e.fields = append(e.fields, zap.Int(key, value))
	return e
}

func (e *Entry) WithUUID(key string, value uuid.UUID) *Entry {
	e.fields = append(e.fields, zap.String(key, value.String()))
	return e
}

func (e *Entry) WithParam(key string, value any) *Entry {
	e.fields = append(e.fields, zap.Any(key, value))
	return e
}

func (e *Entry) Log() {
	logger := zap.L().Named(e.name)
	if ce := logger.Check(e.level, e.name); ce != nil {
		ce.Write(e.fields...)
	}
}
