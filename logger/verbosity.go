package logger

import "go.uber.org/zap/zapcore"

// Verbosity level constants for CLI flag counts.
//
// Example usage:
//
//	if logger.ShouldOutput(verbosity, logger.OutputFileScan) {
//	    fmt.Printf("scanning %s\n", path)
//	}
const (
	VerbosityUser  = 0 // No flags: results, warnings and errors only
	VerbosityInfo  = 1 // -v: + stage progress and summaries
	VerbosityDebug = 2 // -vv: + per-file decisions, config details
	VerbosityTrace = 3 // -vvv: + every scanned literal
)

// VerbosityToLevel maps verbosity flags (-v, -vv, etc.) to zap log levels
//
// Mapping:
//
//	0 (none)  -> WarnLevel
//	1 (-v)    -> InfoLevel
//	2+ (-vv)  -> DebugLevel
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch {
	case verbosity <= VerbosityUser:
		return zapcore.WarnLevel
	case verbosity == VerbosityInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// LevelName returns a human-readable name for verbosity level
func LevelName(verbosity int) string {
	switch verbosity {
	case VerbosityUser:
		return "User"
	case VerbosityInfo:
		return "Info (-v)"
	case VerbosityDebug:
		return "Debug (-vv)"
	case VerbosityTrace:
		return "Trace (-vvv)"
	default:
		if verbosity > VerbosityTrace {
			return "Trace (-vvv+)"
		}
		return "Unknown"
	}
}
