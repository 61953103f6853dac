package logger

import (
	"context"

	"go.uber.org/zap"
)

// Standard field names for consistent structured logging.
// Use these constants instead of raw strings to ensure consistency.
const (
	FieldRunID  = "run_id"
	FieldStage  = "stage"
	FieldOutput = "output"

	FieldPath   = "path"
	FieldFile   = "file"
	FieldLine   = "line"
	FieldDir    = "dir"
	FieldTarget = "target"

	FieldIcon     = "icon"
	FieldCategory = "category"
	FieldVersion  = "version"

	FieldCount      = "count"
	FieldTotalCount = "total_count"
	FieldInvalid    = "invalid"
	FieldDurationMS = "duration_ms"

	FieldError   = "error"
	FieldCommand = "command"
)

type contextKey string

const (
	runIDKey contextKey = "logger_run_id"
	stageKey contextKey = "logger_stage"
)

// WithRunID adds a pipeline run ID to the context for logging
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// WithStage adds the current pipeline stage to the context for logging
func WithStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, stageKey, stage)
}

// FieldsFromContext extracts logging fields from context.
// Returns key-value pairs suitable for use with Infow/Errorw/etc.
func FieldsFromContext(ctx context.Context) []interface{} {
	var fields []interface{}

	if runID, ok := ctx.Value(runIDKey).(string); ok && runID != "" {
		fields = append(fields, FieldRunID, runID)
	}
	if stage, ok := ctx.Value(stageKey).(string); ok && stage != "" {
		fields = append(fields, FieldStage, stage)
	}

	return fields
}

// FromContext returns base enriched with the fields carried by ctx.
func FromContext(ctx context.Context, base *zap.SugaredLogger) *zap.SugaredLogger {
	if base == nil {
		base = Logger
	}
	fields := FieldsFromContext(ctx)
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
//	syn := synth.New(rules, opts, logger.ComponentLogger("synth"))
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.SugaredLogger) *zap.SugaredLogger {
	if l == nil {
		return zap.NewNop().Sugar()
	}
	return l
}
