package am

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkSettingsFromSource(t *testing.T) {
	t.Run("Nested settings", func(t *testing.T) {
		settings := map[string]interface{}{
			"paths": map[string]interface{}{
				"source":   "art/svg",
				"metadata": "art/meta",
			},
			"synth": map[string]interface{}{
				"workers": 4,
			},
		}

		sourceMap := make(map[string]SourceInfo)
		markSettingsFromSource(settings, "", SourceProject, "/p/iconforge.toml", sourceMap)

		assert.Len(t, sourceMap, 3)
		assert.Equal(t, SourceProject, sourceMap["paths.source"].Source)
		assert.Equal(t, SourceProject, sourceMap["synth.workers"].Source)
		assert.Equal(t, "/p/iconforge.toml", sourceMap["paths.metadata"].Path)
	})

	t.Run("Synonym table is one setting", func(t *testing.T) {
		settings := map[string]interface{}{
			"validate": map[string]interface{}{
				"synonyms": map[string]interface{}{
					"edit": []interface{}{"pencil"},
					"home": []interface{}{"house"},
				},
			},
		}

		sourceMap := make(map[string]SourceInfo)
		markSettingsFromSource(settings, "", SourceProject, "/p/iconforge.toml", sourceMap)

		assert.Len(t, sourceMap, 1)
		assert.Contains(t, sourceMap, "validate.synonyms")
	})
}

func TestIntrospect(t *testing.T) {
	root := t.TempDir()
	configPath := filepath.Join(root, ConfigFileName)
	require.NoError(t, os.WriteFile(configPath, []byte(`
[paths]
source = "art/svg"

[generate]
namespace = "app"
`), 0644))
	t.Setenv("ICONFORGE_GENERATE_NAMESPACE", "ui")

	cfg, err := Load(root, "")
	require.NoError(t, err)

	intro := cfg.Introspect()
	assert.Equal(t, configPath, intro.ConfigFile)

	byKey := make(map[string]SettingInfo)
	var keys []string
	for _, s := range intro.Settings {
		byKey[s.Key] = s
		keys = append(keys, s.Key)
	}
	assert.IsIncreasing(t, keys, "settings are sorted by key")

	assert.Equal(t, SourceProject, byKey["paths.source"].Source)
	assert.Equal(t, configPath, byKey["paths.source"].SourcePath)
	assert.Equal(t, "art/svg", byKey["paths.source"].Value)

	// Environment beats the file
	assert.Equal(t, SourceEnvironment, byKey["generate.namespace"].Source)
	assert.Equal(t, "ICONFORGE_GENERATE_NAMESPACE", byKey["generate.namespace"].SourcePath)
	assert.Equal(t, "ui", cfg.Generate.Namespace)

	assert.Equal(t, SourceDefault, byKey["synth.workers"].Source)
	assert.Contains(t, byKey, "validate.synonyms")

	summary := cfg.Summary()
	assert.Equal(t, 1, summary[SourceProject])
	assert.Equal(t, 1, summary[SourceEnvironment])
	assert.Positive(t, summary[SourceDefault])
}

func TestIntrospectDotEnv(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, DotEnvFile), []byte("ICONFORGE_PATHS_STAMP=build/icons.stamp\n"), 0644))
	t.Setenv("ICONFORGE_PATHS_STAMP", "")

	cfg, err := Load(root, "")
	require.NoError(t, err)

	var stamp SettingInfo
	for _, s := range cfg.Introspect().Settings {
		if s.Key == "paths.stamp" {
			stamp = s
		}
	}
	assert.Equal(t, SourceDotEnv, stamp.Source)
	assert.Equal(t, filepath.Join(root, DotEnvFile), stamp.SourcePath)
	assert.Equal(t, filepath.Join(cfg.Root, "build", "icons.stamp"), cfg.StampPath())
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "ICONFORGE_WATCH_DEBOUNCE_MS", EnvKey("watch.debounce_ms"))
}
