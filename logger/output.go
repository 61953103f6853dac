package logger

import "go.uber.org/zap"

// Output controls what categories of information are shown at each verbosity level.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed regardless of severity.
//
//	0 (default) - Validation report, errors with hints, final status
//	1 (-v)      - + Stage progress, artifact summaries
//	2 (-vv)     - + Config loaded, per-icon tag/category decisions
//	3 (-vvv)    - + Every scanned file and candidate literal

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults    OutputCategory = iota // Validation report, check result
	OutputErrors                           // Errors with hints
	OutputUserStatus                       // Final success/failure status

	// Level 1 (-v)
	OutputProgress  // Stage progress ("synthesized 1432 icons")
	OutputArtifacts // Written file paths

	// Level 2 (-vv)
	OutputConfig    // Config values loaded/applied
	OutputDecisions // Per-icon tag/category derivation

	// Level 3 (-vvv)
	OutputFileScan   // Every scanned source file
	OutputCandidates // Every candidate literal
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	OutputResults:    VerbosityUser,
	OutputErrors:     VerbosityUser,
	OutputUserStatus: VerbosityUser,

	OutputProgress:  VerbosityInfo,
	OutputArtifacts: VerbosityInfo,

	OutputConfig:    VerbosityDebug,
	OutputDecisions: VerbosityDebug,

	OutputFileScan:   VerbosityTrace,
	OutputCandidates: VerbosityTrace,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		return verbosity >= VerbosityTrace
	}
	return verbosity >= minLevel
}

var categoryNames = map[OutputCategory]string{
	OutputResults:    "results",
	OutputErrors:     "errors",
	OutputUserStatus: "status",
	OutputProgress:   "progress",
	OutputArtifacts:  "artifacts",
	OutputConfig:     "config",
	OutputDecisions:  "decisions",
	OutputFileScan:   "file-scan",
	OutputCandidates: "candidates",
}

// CategoryName returns the human-readable name for an output category
func CategoryName(category OutputCategory) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return "unknown"
}

// SetVerbosity sets the -v count that Enabled and Output compare against.
// Initialize calls it.
func SetVerbosity(v int) {
	verbosity = v
}

// Enabled reports whether category is shown at the current verbosity
func Enabled(category OutputCategory) bool {
	return ShouldOutput(verbosity, category)
}

// Output logs msg at info level when category is enabled, tagged with the
// category name. A nil logger uses the global one.
func Output(log *zap.SugaredLogger, category OutputCategory, msg string, keysAndValues ...interface{}) {
	if !Enabled(category) {
		return
	}
	if log == nil {
		log = Logger
	}
	log.Infow(msg, append([]interface{}{FieldOutput, CategoryName(category)}, keysAndValues...)...)
}
