package am

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/teranos/iconforge/errors"
	"github.com/teranos/iconforge/logger"
)

// Output formats accepted by Render
const (
	FormatTOML = "toml"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// createBackup creates rotating backups (.back1, .back2, .back3) before overwriting config
func createBackup(configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil // No file to backup
	}

	back3 := configPath + ".back3"
	back2 := configPath + ".back2"
	back1 := configPath + ".back1"

	if err := os.Remove(back3); err != nil && !os.IsNotExist(err) {
		logger.Warnw("Failed to delete old config backup", logger.FieldPath, back3, logger.FieldError, err)
	}

	if _, err := os.Stat(back2); err == nil {
		if err := os.Rename(back2, back3); err != nil {
			return errors.Wrap(err, "failed to rotate .back2 to .back3")
		}
	}

	if _, err := os.Stat(back1); err == nil {
		if err := os.Rename(back1, back2); err != nil {
			return errors.Wrap(err, "failed to rotate .back1 to .back2")
		}
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}

	if err := os.WriteFile(back1, content, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}

	return nil
}

// DefaultTOML renders the default configuration as TOML
func DefaultTOML() ([]byte, error) {
	v := viper.New()
	SetDefaults(v)
	return Render(v.AllSettings(), FormatTOML)
}

// WriteDefault writes the default configuration to path. An existing file is
// only replaced when force is set, after rotating it into .back1.
func WriteDefault(path string, force bool) error {
	if _, err := os.Stat(path); err == nil {
		if !force {
			return errors.WithHint(
				errors.Newf("config file %s already exists", path),
				"pass --force to overwrite it (the current file is kept as .back1)")
		}
		if err := createBackup(path); err != nil {
			return errors.Wrap(err, "failed to create backup")
		}
	}

	data, err := DefaultTOML()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), DefaultDirPermissions); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", path)
	}
	if err := os.WriteFile(path, data, DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "failed to write config %s", path)
	}
	return nil
}

// Render marshals settings in one of the supported formats
func Render(settings interface{}, format string) ([]byte, error) {
	switch format {
	case FormatTOML, "":
		data, err := toml.Marshal(settings)
		return data, errors.Wrap(err, "failed to marshal toml")
	case FormatJSON:
		data, err := json.MarshalIndent(settings, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal json")
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(settings)
		return data, errors.Wrap(err, "failed to marshal yaml")
	default:
		return nil, errors.Newf("unknown format %q (want toml, json or yaml)", format)
	}
}
