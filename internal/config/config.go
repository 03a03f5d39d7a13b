package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// SupportedConfigVersions lists the config schema versions this build reads.
var SupportedConfigVersions = []int{1}

// Config is the complete DMCA configuration (v1 schema).
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	Clustering ClusteringConfig `json:"clustering" mapstructure:"clustering"`
	Filter     FilterConfig     `json:"filter" mapstructure:"filter"`
	Logging    LoggingConfig    `json:"logging" mapstructure:"logging"`
	Storage    StorageConfig    `json:"storage" mapstructure:"storage"`
	Export     ExportConfig     `json:"export" mapstructure:"export"`
}

// ClusteringConfig controls the clustering engine.
type ClusteringConfig struct {
	// FlushFinal emits the trailing band cluster and its final element.
	// Disable for compatibility with pipelines that drop both.
	FlushFinal bool `json:"flushFinal" mapstructure:"flushFinal"`

	// DisplayScale multiplies cluster radii in visualizer output.
	DisplayScale float64 `json:"displayScale" mapstructure:"displayScale"`
}

// FilterConfig controls symbol filtering.
type FilterConfig struct {
	// ProfilePath points at an optional TOML filter profile.
	ProfilePath string `json:"profilePath" mapstructure:"profilePath"`

	// MinLength is the minimum symbol length kept by the filter. Zero leaves
	// the filter's own minimum (3, or the profile's min_length) in place.
	MinLength int `json:"minLength" mapstructure:"minLength"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// StorageConfig controls run persistence.
type StorageConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Path    string `json:"path" mapstructure:"path"`
}

// ExportConfig controls archive export.
type ExportConfig struct {
	Compress bool `json:"compress" mapstructure:"compress"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Clustering: ClusteringConfig{
			FlushFinal:   true,
			DisplayScale: 1000,
		},
		Filter: FilterConfig{
			ProfilePath: "",
			MinLength:   3,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
		Storage: StorageConfig{
			Enabled: true,
			Path:    ".dmca/dmca.db",
		},
		Export: ExportConfig{
			Compress: true,
		},
	}
}

// EnvOverride records one environment variable that changed the loaded config.
type EnvOverride struct {
	EnvVar string
	Path   string
	Value  string
}

// envVarMappings maps environment variables to config paths.
var envVarMappings = map[string]string{
	"DMCA_LOG_LEVEL":                "logging.level",
	"DMCA_LOG_FORMAT":               "logging.format",
	"DMCA_CLUSTERING_FLUSH_FINAL":   "clustering.flushFinal",
	"DMCA_CLUSTERING_DISPLAY_SCALE": "clustering.displayScale",
	"DMCA_FILTER_PROFILE_PATH":      "filter.profilePath",
	"DMCA_FILTER_MIN_LENGTH":        "filter.minLength",
	"DMCA_STORAGE_ENABLED":          "storage.enabled",
	"DMCA_STORAGE_PATH":             "storage.path",
	"DMCA_EXPORT_COMPRESS":          "export.compress",
}

// GetSupportedEnvVars returns the environment variables the loader honors.
func GetSupportedEnvVars() []string {
	vars := make([]string, 0, len(envVarMappings))
	for v := range envVarMappings {
		vars = append(vars, v)
	}
	return vars
}

// applyOverride sets a single config value by dotted path. Returns false for
// unknown paths or mismatched value types.
func applyOverride(cfg *Config, path string, value interface{}) bool {
	parts := strings.Split(path, ".")
	if len(parts) != 2 {
		return false
	}

	switch parts[0] {
	case "logging":
		s, ok := value.(string)
		if !ok {
			return false
		}
		switch parts[1] {
		case "level":
			cfg.Logging.Level = s
		case "format":
			cfg.Logging.Format = s
		default:
			return false
		}
	case "clustering":
		switch parts[1] {
		case "flushFinal":
			b, ok := value.(bool)
			if !ok {
				return false
			}
			cfg.Clustering.FlushFinal = b
		case "displayScale":
			f, ok := value.(float64)
			if !ok {
				return false
			}
			cfg.Clustering.DisplayScale = f
		default:
			return false
		}
	case "filter":
		switch parts[1] {
		case "profilePath":
			s, ok := value.(string)
			if !ok {
				return false
			}
			cfg.Filter.ProfilePath = s
		case "minLength":
			n, ok := value.(int)
			if !ok {
				return false
			}
			cfg.Filter.MinLength = n
		default:
			return false
		}
	case "storage":
		switch parts[1] {
		case "enabled":
			b, ok := value.(bool)
			if !ok {
				return false
			}
			cfg.Storage.Enabled = b
		case "path":
			s, ok := value.(string)
			if !ok {
				return false
			}
			cfg.Storage.Path = s
		default:
			return false
		}
	case "export":
		if parts[1] != "compress" {
			return false
		}
		b, ok := value.(bool)
		if !ok {
			return false
		}
		cfg.Export.Compress = b
	default:
		return false
	}
	return true
}

// applyEnvOverrides walks envVarMappings and applies every set variable,
// returning the overrides that took effect. Unparseable values are skipped.
func applyEnvOverrides(cfg *Config) []EnvOverride {
	var overrides []EnvOverride
	for envVar, path := range envVarMappings {
		raw, ok := os.LookupEnv(envVar)
		if !ok || raw == "" {
			continue
		}

		var value interface{}
		switch path {
		case "clustering.flushFinal", "storage.enabled", "export.compress":
			b, err := strconv.ParseBool(raw)
			if err != nil {
				continue
			}
			value = b
		case "clustering.displayScale":
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				continue
			}
			value = f
		case "filter.minLength":
			n, err := strconv.Atoi(raw)
			if err != nil {
				continue
			}
			value = n
		default:
			value = raw
		}

		if applyOverride(cfg, path, value) {
			overrides = append(overrides, EnvOverride{EnvVar: envVar, Path: path, Value: raw})
		}
	}
	return overrides
}

// LoadResult bundles the loaded config with where it came from.
type LoadResult struct {
	Config       *Config
	ConfigPath   string
	UsedDefaults bool
	EnvOverrides []EnvOverride
}

// LoadConfigWithDetails loads configuration from DMCA_CONFIG_PATH or
// <workDir>/.dmca/config.json, falling back to defaults, and reports the
// source and any environment overrides.
func LoadConfigWithDetails(workDir string) (*LoadResult, error) {
	result := &LoadResult{}

	if custom := os.Getenv("DMCA_CONFIG_PATH"); custom != "" {
		cfg, err := loadConfigFromPath(custom)
		if err != nil {
			return nil, err
		}
		result.Config = cfg
		result.ConfigPath = custom
	} else {
		v := viper.New()
		v.SetConfigName("config")
		v.SetConfigType("json")
		v.AddConfigPath(filepath.Join(workDir, ".dmca"))

		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, err
			}
			result.Config = DefaultConfig()
			result.UsedDefaults = true
		} else {
			cfg := DefaultConfig()
			if err := v.Unmarshal(cfg); err != nil {
				return nil, err
			}
			result.Config = cfg
			result.ConfigPath = v.ConfigFileUsed()
		}
	}

	result.EnvOverrides = applyEnvOverrides(result.Config)
	return result, nil
}

// LoadConfig loads configuration from <workDir>/.dmca/config.json, returning
// defaults when no file exists. Environment overrides are applied last.
func LoadConfig(workDir string) (*Config, error) {
	result, err := LoadConfigWithDetails(workDir)
	if err != nil {
		return nil, err
	}
	return result.Config, nil
}

// loadConfigFromPath reads a config file from an explicit location.
func loadConfigFromPath(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to <workDir>/.dmca/config.json.
func (c *Config) Save(workDir string) error {
	configPath := filepath.Join(workDir, ".dmca", "config.json")

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(configPath, data, 0644)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	supported := false
	for _, v := range SupportedConfigVersions {
		if c.Version == v {
			supported = true
			break
		}
	}
	if !supported {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}

	if c.Clustering.DisplayScale <= 0 {
		return &ConfigError{Field: "clustering.displayScale", Message: "must be positive"}
	}
	if c.Filter.MinLength < 0 {
		return &ConfigError{Field: "filter.minLength", Message: "must not be negative"}
	}
	switch c.Logging.Format {
	case "human", "json":
	default:
		return &ConfigError{Field: "logging.format", Message: "must be 'human' or 'json'"}
	}
	return nil
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
