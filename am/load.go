package am

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/teranos/iconforge/errors"
)

// EnvPrefix is the prefix of environment overrides (ICONFORGE_PATHS_SOURCE, ...)
const EnvPrefix = "ICONFORGE"

// DotEnvFile is loaded from the project root before the environment is read
const DotEnvFile = ".env"

// Load reads the configuration of the project rooted at root.
// configPath overrides <root>/iconforge.toml; when it is empty and the
// project has no config file, defaults apply. Nothing is cached: every call
// reads the files and environment again.
func Load(root, configPath string) (*Config, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve project root %s", root)
	}
	if info, err := os.Stat(absRoot); err != nil || !info.IsDir() {
		return nil, errors.NewMissingInput("project root", absRoot)
	}

	sources := make(map[string]SourceInfo)

	dotenvPath := filepath.Join(absRoot, DotEnvFile)
	dotenv, err := readDotEnv(dotenvPath)
	if err != nil {
		return nil, err
	}

	v := newViper()

	file, explicit := configPath, configPath != ""
	if !explicit {
		file = filepath.Join(absRoot, ConfigFileName)
	} else if !filepath.IsAbs(file) {
		file = filepath.Join(absRoot, file)
	}

	if _, statErr := os.Stat(file); statErr == nil {
		if err := mergeConfigFile(v, file, sources); err != nil {
			return nil, err
		}
	} else if explicit {
		return nil, errors.NewMissingInput("config file", file)
	} else {
		file = ""
	}

	applyEnvironment(v, v.AllSettings(), "", dotenv, dotenvPath, sources)

	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, err
	}
	cfg.Root = absRoot
	cfg.File = file
	cfg.sources = sources

	if err := cfg.Check(); err != nil {
		if file != "" {
			return nil, errors.WithDetailf(err, "config file: %s", file)
		}
		return nil, err
	}
	return cfg, nil
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.WithDetail(errors.Wrap(errors.ErrInvalidConfig, "failed to unmarshal config"), err.Error())
	}
	config.v = v
	return &config, nil
}

// Defaults returns a configuration holding only default values, rooted at root
func Defaults(root string) *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	if err != nil {
		// defaults always decode
		panic(err)
	}
	cfg.Root = root
	return cfg
}

// newViper initializes Viper with defaults and environment binding
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// mergeConfigFile reads a TOML file into v and records it as the source of every key it sets
func mergeConfigFile(v *viper.Viper, path string, sources map[string]SourceInfo) error {
	tempViper := viper.New()
	tempViper.SetConfigFile(path)
	tempViper.SetConfigType("toml")

	if err := tempViper.ReadInConfig(); err != nil {
		return errors.WithDetail(
			errors.Wrapf(errors.ErrInvalidConfig, "failed to read config file %s", path),
			err.Error())
	}

	settings := tempViper.AllSettings()
	markSettingsFromSource(settings, "", SourceProject, path, sources)
	if err := v.MergeConfigMap(settings); err != nil {
		return errors.Wrapf(err, "failed to merge config file %s", path)
	}
	v.SetConfigFile(path)
	return nil
}

// readDotEnv parses a .env file into a map. The process environment is
// left alone; Load layers the values under the real environment itself.
// A missing file is not an error.
func readDotEnv(path string) (map[string]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, nil
	}

	values, err := godotenv.Read(path)
	if err != nil {
		return nil, errors.WithDetail(
			errors.Wrapf(errors.ErrInvalidConfig, "failed to parse %s", path),
			err.Error())
	}
	return values, nil
}

// EnvKey returns the environment variable that overrides a dotted config key
func EnvKey(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}
