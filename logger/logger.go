package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global logger instance
	Logger *zap.SugaredLogger
	// Flag to track if JSON output is enabled
	JSONOutput bool
	// verbosity is the -v count, gating output categories
	verbosity int
)

func init() {
	// Safe no-op logger until Initialize runs, so library use never panics
	Logger = zap.NewNop().Sugar()
}

// Initialize sets up the global logger.
// jsonOutput selects zap's production JSON encoding; otherwise the minimal
// console encoder writes to stderr so generated output on stdout stays clean.
func Initialize(jsonOutput bool, verbosity int) error {
	JSONOutput = jsonOutput
	SetVerbosity(verbosity)
	level := VerbosityToLevel(verbosity)

	if theme := os.Getenv("ICONFORGE_LOG_THEME"); theme != "" {
		SetTheme(theme)
	}

	var zapLogger *zap.Logger
	var err error

	if jsonOutput {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(level)
		config.OutputPaths = []string{"stderr"}
		zapLogger, err = config.Build()
	} else {
		zapLogger = zap.New(
			zapcore.NewCore(
				newMinimalEncoder(),
				zapcore.AddSync(os.Stderr),
				level,
			),
		)
	}

	if err != nil {
		return err
	}

	Logger = zapLogger.Sugar()
	return nil
}

// Cleanup flushes any buffered log entries
func Cleanup() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

// Infow logs an info message with structured fields
func Infow(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Infow(msg, keysAndValues...)
	}
}

// Warnw logs a warning message with structured fields
func Warnw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Warnw(msg, keysAndValues...)
	}
}

// Errorw logs an error message with structured fields
func Errorw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Errorw(msg, keysAndValues...)
	}
}

// Debugw logs a debug message with structured fields
func Debugw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Debugw(msg, keysAndValues...)
	}
}
