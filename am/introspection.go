package am

import (
	"os"
	"sort"

	"github.com/spf13/viper"
)

// ConfigSource represents where a configuration value came from
type ConfigSource string

const (
	SourceDefault     ConfigSource = "default"
	SourceProject     ConfigSource = "project"     // iconforge.toml or --config
	SourceDotEnv      ConfigSource = "dotenv"      // .env in the project root
	SourceEnvironment ConfigSource = "environment" // ICONFORGE_* env vars
)

// SettingInfo contains metadata about a configuration setting
type SettingInfo struct {
	Key        string       `json:"key" yaml:"key"`
	Value      interface{}  `json:"value" yaml:"value"`
	Source     ConfigSource `json:"source" yaml:"source"`
	SourcePath string       `json:"source_path,omitempty" yaml:"source_path,omitempty"` // File path or env var name
}

// ConfigIntrospection provides metadata about the active configuration
type ConfigIntrospection struct {
	ConfigFile string        `json:"config_file" yaml:"config_file"`
	Settings   []SettingInfo `json:"settings" yaml:"settings"`
}

// SourceInfo tracks where a configuration value originated
type SourceInfo struct {
	Source ConfigSource
	Path   string // File path or environment variable name
}

// Introspect lists every effective setting with the source it came from,
// sorted by key
func (c *Config) Introspect() *ConfigIntrospection {
	introspection := &ConfigIntrospection{
		ConfigFile: c.File,
		Settings:   make([]SettingInfo, 0),
	}
	flattenSettingsWithSources(c.Settings(), "", introspection, c.sources)
	return introspection
}

// Summary counts settings per source
func (c *Config) Summary() map[ConfigSource]int {
	counts := map[ConfigSource]int{
		SourceDefault:     0,
		SourceProject:     0,
		SourceDotEnv:      0,
		SourceEnvironment: 0,
	}
	for _, setting := range c.Introspect().Settings {
		counts[setting.Source]++
	}
	return counts
}

// markSettingsFromSource records source as the origin of every leaf key in settings
func markSettingsFromSource(settings map[string]interface{}, prefix string, source ConfigSource, path string, sourceMap map[string]SourceInfo) {
	for key, value := range settings {
		fullKey := joinKey(prefix, key)
		if nested, ok := value.(map[string]interface{}); ok && !isFreeformTable(fullKey) {
			markSettingsFromSource(nested, fullKey, source, path, sourceMap)
			continue
		}
		sourceMap[fullKey] = SourceInfo{Source: source, Path: path}
	}
}

// applyEnvironment records env vars that override a leaf key and sets the
// .env value of every key the real environment leaves empty
func applyEnvironment(v *viper.Viper, settings map[string]interface{}, prefix string, dotenv map[string]string, dotenvPath string, sourceMap map[string]SourceInfo) {
	for key, value := range settings {
		fullKey := joinKey(prefix, key)
		if nested, ok := value.(map[string]interface{}); ok && !isFreeformTable(fullKey) {
			applyEnvironment(v, nested, fullKey, dotenv, dotenvPath, sourceMap)
			continue
		}
		envKey := EnvKey(fullKey)
		if os.Getenv(envKey) != "" {
			sourceMap[fullKey] = SourceInfo{Source: SourceEnvironment, Path: envKey}
			continue
		}
		if dotValue, ok := dotenv[envKey]; ok {
			v.Set(fullKey, dotValue)
			sourceMap[fullKey] = SourceInfo{Source: SourceDotEnv, Path: dotenvPath}
		}
	}
}

// flattenSettingsWithSources flattens settings and assigns sources from sourceMap
func flattenSettingsWithSources(settings map[string]interface{}, prefix string, introspection *ConfigIntrospection, sourceMap map[string]SourceInfo) {
	// Sort keys for deterministic iteration
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := settings[key]
		fullKey := joinKey(prefix, key)

		if nestedMap, ok := value.(map[string]interface{}); ok && !isFreeformTable(fullKey) {
			flattenSettingsWithSources(nestedMap, fullKey, introspection, sourceMap)
			continue
		}

		sourceInfo := SourceInfo{Source: SourceDefault, Path: "built-in default"}
		if si, ok := sourceMap[fullKey]; ok {
			sourceInfo = si
		}

		introspection.Settings = append(introspection.Settings, SettingInfo{
			Key:        fullKey,
			Value:      value,
			Source:     sourceInfo.Source,
			SourcePath: sourceInfo.Path,
		})
	}
}

// isFreeformTable reports keys whose table value is data, not more settings
func isFreeformTable(key string) bool {
	return key == "validate.synonyms"
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
