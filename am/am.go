package am

import (
	"path/filepath"

	"github.com/spf13/viper"
)

// ConfigFileName is the project config looked up in the project root
const ConfigFileName = "iconforge.toml"

// Config represents an iconforge project configuration
type Config struct {
	Project  ProjectConfig  `mapstructure:"project"`
	Paths    PathsConfig    `mapstructure:"paths"`
	Synth    SynthConfig    `mapstructure:"synth"`
	Generate GenerateConfig `mapstructure:"generate"`
	Manifest ManifestConfig `mapstructure:"manifest"`
	Validate ValidateConfig `mapstructure:"validate"`
	Build    BuildConfig    `mapstructure:"build"`
	Watch    WatchConfig    `mapstructure:"watch"`

	// Root is the absolute project root; relative paths resolve against it
	Root string `mapstructure:"-"`
	// File is the config file that was read, empty when running on defaults
	File string `mapstructure:"-"`

	v       *viper.Viper
	sources map[string]SourceInfo
}

// ProjectConfig identifies the project and the tool versions it accepts
type ProjectConfig struct {
	Requires string `mapstructure:"requires"` // semver constraint on the iconforge version
	Version  string `mapstructure:"version"`  // catalog version propagated into generated artifacts
}

// PathsConfig locates inputs and outputs, relative to the project root
type PathsConfig struct {
	Source   string `mapstructure:"source"`   // directory of svg files (non-recursive)
	Metadata string `mapstructure:"metadata"` // metadata store directory
	Include  string `mapstructure:"include"`  // output directory for C++ headers
	Manifest string `mapstructure:"manifest"` // .qrc output file
	Stamp    string `mapstructure:"stamp"`    // completion marker touched after a successful build

	// Optimized receives a whitespace- and comment-stripped copy of every
	// svg; empty disables it
	Optimized string `mapstructure:"optimized"`
}

// SynthConfig configures metadata synthesis
type SynthConfig struct {
	Extension string `mapstructure:"extension"`  // matched case-sensitively (default: .svg)
	SVGPrefix string `mapstructure:"svg_prefix"` // directory prefix of svg_file entries (default: svg)
	Rules     string `mapstructure:"rules"`      // optional keyword table replacing the built-in one
	Workers   int    `mapstructure:"workers"`    // per-file derivation goroutines (default: 1)
	Sidecars  bool   `mapstructure:"sidecars"`   // merge <name>.json next to <name>.svg (default: true)
}

// GenerateConfig configures identifier and table generation
type GenerateConfig struct {
	Languages     []string `mapstructure:"languages"`      // cpp, go
	Namespace     string   `mapstructure:"namespace"`      // C++ namespace
	GoPackage     string   `mapstructure:"go_package"`     // Go package clause
	GoDir         string   `mapstructure:"go_dir"`         // Go output directory
	DigitPrefix   string   `mapstructure:"digit_prefix"`   // prepended to symbols starting with a digit
	KeywordPrefix string   `mapstructure:"keyword_prefix"` // prepended to symbols that are reserved words
}

// ManifestConfig configures the resource manifest
type ManifestConfig struct {
	Prefix string `mapstructure:"prefix"` // qresource prefix (default: /icons)
}

// ValidateConfig configures the usage validator
type ValidateConfig struct {
	Dirs         []string            `mapstructure:"dirs"`          // source trees scanned when none are given
	Extensions   []string            `mapstructure:"extensions"`    // file extensions scanned
	Include      []string            `mapstructure:"include"`       // doublestar globs; empty = everything
	Exclude      []string            `mapstructure:"exclude"`       // doublestar globs
	Exclusions   []string            `mapstructure:"exclusions"`    // words added to the built-in exclusion list
	Synonyms     map[string][]string `mapstructure:"synonyms"`      // entries added to the built-in synonym table
	CallPatterns []string            `mapstructure:"call_patterns"` // regexes with one capture group
}

// BuildConfig configures the build orchestrator
type BuildConfig struct {
	Hooks []string `mapstructure:"hooks"` // commands run after generation, in order
}

// WatchConfig configures watch mode
type WatchConfig struct {
	DebounceMS           int `mapstructure:"debounce_ms"`             // quiet period before a rebuild
	MaxRebuildsPerMinute int `mapstructure:"max_rebuilds_per_minute"` // 0 = unlimited
}

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)

// Resolve returns p joined to the project root unless it is already absolute
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, filepath.FromSlash(p))
}

// SourceDir returns the absolute svg source directory
func (c *Config) SourceDir() string { return c.Resolve(c.Paths.Source) }

// MetadataDir returns the absolute metadata store directory
func (c *Config) MetadataDir() string { return c.Resolve(c.Paths.Metadata) }

// IncludeDir returns the absolute C++ header output directory
func (c *Config) IncludeDir() string { return c.Resolve(c.Paths.Include) }

// ManifestPath returns the absolute .qrc output path
func (c *Config) ManifestPath() string { return c.Resolve(c.Paths.Manifest) }

// StampPath returns the absolute completion marker path
func (c *Config) StampPath() string { return c.Resolve(c.Paths.Stamp) }

// OptimizedDir returns the absolute optimized svg directory, or "" when disabled
func (c *Config) OptimizedDir() string { return c.Resolve(c.Paths.Optimized) }

// GoDir returns the absolute Go output directory
func (c *Config) GoDir() string { return c.Resolve(c.Generate.GoDir) }

// Settings returns every effective setting as a nested map
func (c *Config) Settings() map[string]interface{} {
	if c.v == nil {
		v := viper.New()
		SetDefaults(v)
		return v.AllSettings()
	}
	return c.v.AllSettings()
}
