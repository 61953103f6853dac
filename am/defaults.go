package am

import (
	"fmt"

	"github.com/spf13/viper"
)

// Default values shared with code that runs without a loaded config
const (
	DefaultCatalogVersion = "1.0.0"
	DefaultSourceDir      = "resources/icons/svg"
	DefaultMetadataDir    = "resources/icons/metadata"
	DefaultIncludeDir     = "include/Iconforge"
	DefaultManifestPath   = "resources/icons/icons.qrc"
	DefaultStampPath      = ".iconforge.stamp"
	DefaultExtension      = ".svg"
	DefaultSVGPrefix      = "svg"
	DefaultManifestPrefix = "/icons"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("project.requires", "")
	v.SetDefault("project.version", DefaultCatalogVersion)

	v.SetDefault("paths.source", DefaultSourceDir)
	v.SetDefault("paths.metadata", DefaultMetadataDir)
	v.SetDefault("paths.include", DefaultIncludeDir)
	v.SetDefault("paths.manifest", DefaultManifestPath)
	v.SetDefault("paths.stamp", DefaultStampPath)
	v.SetDefault("paths.optimized", "")

	v.SetDefault("synth.extension", DefaultExtension)
	v.SetDefault("synth.svg_prefix", DefaultSVGPrefix)
	v.SetDefault("synth.rules", "")
	v.SetDefault("synth.workers", 1) // sequential
	v.SetDefault("synth.sidecars", true)

	v.SetDefault("generate.languages", []string{"cpp"})
	v.SetDefault("generate.namespace", "icons")
	v.SetDefault("generate.go_package", "icons")
	v.SetDefault("generate.go_dir", "icons")
	v.SetDefault("generate.digit_prefix", "Icon_")
	v.SetDefault("generate.keyword_prefix", "icon_")

	v.SetDefault("manifest.prefix", DefaultManifestPrefix)

	v.SetDefault("validate.dirs", []string{"examples", "tests"})
	v.SetDefault("validate.extensions", []string{".cpp", ".h", ".hpp", ".cc", ".cxx"})
	v.SetDefault("validate.include", []string{})
	v.SetDefault("validate.exclude", []string{})
	v.SetDefault("validate.exclusions", []string{})
	v.SetDefault("validate.synonyms", map[string][]string{})
	v.SetDefault("validate.call_patterns", []string{})

	v.SetDefault("build.hooks", []string{})

	v.SetDefault("watch.debounce_ms", 300)
	v.SetDefault("watch.max_rebuilds_per_minute", 30)
}

// Languages returns the configured generator targets (default: cpp)
func (c *Config) Languages() []string {
	if len(c.Generate.Languages) == 0 {
		return []string{"cpp"}
	}
	return c.Generate.Languages
}

// CatalogVersion returns the catalog version string (default: 1.0.0)
func (c *Config) CatalogVersion() string {
	if c.Project.Version == "" {
		return DefaultCatalogVersion
	}
	return c.Project.Version
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Root: %s, Source: %s, Metadata: %s, Languages: %v}",
		c.Root, c.Paths.Source, c.Paths.Metadata, c.Languages())
}
