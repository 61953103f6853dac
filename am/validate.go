package am

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/teranos/iconforge/errors"
	"github.com/teranos/iconforge/version"
)

// KnownLanguages lists the generator targets a config may name
var KnownLanguages = []string{"cpp", "go"}

var (
	cppNamespacePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(::[A-Za-z_][A-Za-z0-9_]*)*$`)
	goPackagePattern    = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
)

func invalid(format string, args ...interface{}) error {
	return errors.Wrapf(errors.ErrInvalidConfig, format, args...)
}

// Check reports the first invalid setting as an ErrInvalidConfig
func (c *Config) Check() error {
	if err := version.Satisfies(c.Project.Requires); err != nil {
		return err
	}

	// Paths are required; an empty path would resolve to the project root itself
	for _, p := range []struct{ key, value string }{
		{"paths.source", c.Paths.Source},
		{"paths.metadata", c.Paths.Metadata},
		{"paths.include", c.Paths.Include},
		{"paths.manifest", c.Paths.Manifest},
		{"paths.stamp", c.Paths.Stamp},
	} {
		if strings.TrimSpace(p.value) == "" {
			return invalid("%s cannot be empty", p.key)
		}
	}

	if c.Paths.Optimized != "" && filepath.Clean(c.OptimizedDir()) == filepath.Clean(c.SourceDir()) {
		return errors.WithHint(invalid("paths.optimized cannot be the source directory"),
			"point it at a separate directory, e.g. resources/icons/optimized")
	}

	if !strings.HasPrefix(c.Synth.Extension, ".") || len(c.Synth.Extension) < 2 {
		return invalid("synth.extension must look like \".svg\", got %q", c.Synth.Extension)
	}
	if c.Synth.Workers < 1 {
		return invalid("synth.workers must be >= 1, got %d", c.Synth.Workers)
	}

	for _, lang := range c.Languages() {
		if !isKnownLanguage(lang) {
			return errors.WithHintf(invalid("generate.languages: unknown language %q", lang),
				"supported languages: %s", strings.Join(KnownLanguages, ", "))
		}
	}
	if !cppNamespacePattern.MatchString(c.Generate.Namespace) {
		return invalid("generate.namespace %q is not a valid C++ namespace", c.Generate.Namespace)
	}
	if !goPackagePattern.MatchString(c.Generate.GoPackage) {
		return invalid("generate.go_package %q is not a valid Go package name", c.Generate.GoPackage)
	}
	if c.Generate.DigitPrefix == "" || c.Generate.KeywordPrefix == "" {
		return invalid("generate.digit_prefix and generate.keyword_prefix cannot be empty")
	}

	if !strings.HasPrefix(c.Manifest.Prefix, "/") {
		return invalid("manifest.prefix must start with \"/\", got %q", c.Manifest.Prefix)
	}

	for _, ext := range c.Validate.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return invalid("validate.extensions entry %q must start with \".\"", ext)
		}
	}
	for _, pattern := range c.Validate.CallPatterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return errors.WithDetail(invalid("validate.call_patterns entry %q does not compile", pattern), err.Error())
		}
		if re.NumSubexp() != 1 {
			return invalid("validate.call_patterns entry %q must have exactly one capture group", pattern)
		}
	}

	for i, hook := range c.Build.Hooks {
		if strings.TrimSpace(hook) == "" {
			return invalid("build.hooks[%d] is empty", i)
		}
	}

	// Watch: 0 debounce = rebuild immediately, 0 rate = unlimited, negative = invalid
	if c.Watch.DebounceMS < 0 {
		return invalid("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS)
	}
	if c.Watch.MaxRebuildsPerMinute < 0 {
		return invalid("watch.max_rebuilds_per_minute must be >= 0, got %d", c.Watch.MaxRebuildsPerMinute)
	}

	return nil
}

func isKnownLanguage(lang string) bool {
	for _, known := range KnownLanguages {
		if lang == known {
			return true
		}
	}
	return false
}
