package am

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/teranos/qntx-dims/errors"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "QNTX_DIMS"

// ConfigFileName is the file searched in system, user and project locations
const ConfigFileName = "dims.toml"

var (
	mu            sync.Mutex
	globalConfig  *Config
	viperInstance *viper.Viper

	// ConfigSources records, per dotted key, the file that last set it
	// during the most recent load
	ConfigSources = map[string]SourceInfo{}
)

// Load reads the configuration using Viper. The result is cached until
// Reset.
func Load() (*Config, error) {
	mu.Lock()
	defer mu.Unlock()
	if globalConfig != nil {
		return globalConfig, nil
	}

	v := initViper()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	globalConfig = &config
	return globalConfig, nil
}

// GetViper returns the Viper instance for advanced configuration access
func GetViper() *viper.Viper {
	mu.Lock()
	defer mu.Unlock()
	return initViper()
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}

// LoadFromFile loads configuration from a specific file path over the
// defaults, ignoring other files and the environment
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal config from %s", configPath)
	}
	return &config, nil
}

// Reset clears the cached configuration
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	globalConfig = nil
	viperInstance = nil
	ConfigSources = map[string]SourceInfo{}
}

// initViper initializes Viper with configuration sources and defaults.
// Callers hold mu.
func initViper() *viper.Viper {
	if viperInstance != nil {
		return viperInstance
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	BindEnvVars(v)
	SetDefaults(v)

	ConfigSources = mergeConfigFiles(v, configPaths())

	viperInstance = v
	return v
}

type configPath struct {
	path   string
	source ConfigSource
}

// configPaths lists candidate files in precedence order, lowest first
func configPaths() []configPath {
	paths := []configPath{{filepath.Join("/etc/qntx", ConfigFileName), SourceSystem}}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, configPath{filepath.Join(home, ".qntx", ConfigFileName), SourceUser})
	}
	if project := findProjectConfig(); project != "" {
		paths = append(paths, configPath{project, SourceProject})
	}
	return paths
}

// findProjectConfig walks up from the working directory looking for
// dims.toml and returns the first one found, or ""
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// mergeConfigFiles merges the existing files into v in order and returns
// the source of every key a file set
func mergeConfigFiles(v *viper.Viper, paths []configPath) map[string]SourceInfo {
	sources := map[string]SourceInfo{}
	for _, p := range paths {
		if _, err := os.Stat(p.path); err != nil {
			continue
		}
		file := viper.New()
		file.SetConfigFile(p.path)
		file.SetConfigType("toml")
		if err := file.ReadInConfig(); err != nil {
			continue
		}
		for _, key := range file.AllKeys() {
			v.Set(key, file.Get(key))
			sources[key] = SourceInfo{Source: p.source, Path: p.path}
		}
	}
	return sources
}

// Get returns a configuration value using dot notation
func Get(key string) interface{} {
	return GetViper().Get(key)
}

// GetString returns a configuration value as string using dot notation
func GetString(key string) string {
	return GetViper().GetString(key)
}

// ConfigFiles returns the existing config files in precedence order,
// lowest first
func ConfigFiles() []string {
	var files []string
	for _, p := range configPaths() {
		if _, err := os.Stat(p.path); err == nil {
			files = append(files, p.path)
		}
	}
	return files
}
