package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config contains all runtime options for the opbop CLI.
type Config struct {
	Service ServiceConfig `mapstructure:"service" yaml:"service"`
	HTTP    HTTPConfig    `mapstructure:"http" yaml:"http"`
	Cache   CacheConfig   `mapstructure:"cache" yaml:"cache"`
	Prefs   PrefsConfig   `mapstructure:"prefs" yaml:"prefs"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// ServiceConfig identifies the remote summarization service.
type ServiceConfig struct {
	Endpoint          string  `mapstructure:"endpoint" yaml:"endpoint"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" yaml:"requests_per_second"`
	Burst             int     `mapstructure:"burst" yaml:"burst"`
}

// HTTPConfig holds transport settings for the service call.
type HTTPConfig struct {
	Timeout      time.Duration `mapstructure:"timeout" yaml:"timeout"`
	UserAgent    string        `mapstructure:"user_agent" yaml:"user_agent"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes" yaml:"max_body_bytes"`
	HTTPProxy    string        `mapstructure:"http_proxy" yaml:"http_proxy"`
	HTTPSProxy   string        `mapstructure:"https_proxy" yaml:"https_proxy"`
}

// CacheConfig holds response cache settings.
type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled" yaml:"enabled"`
	Dir       string        `mapstructure:"dir" yaml:"dir"`
	MemoryTTL time.Duration `mapstructure:"memory_ttl" yaml:"memory_ttl"`
	DiskTTL   time.Duration `mapstructure:"disk_ttl" yaml:"disk_ttl"`
}

// PrefsConfig locates the persisted preference store.
type PrefsConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// LoggingConfig holds log settings.
type LoggingConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// DefaultConfig returns the built-in configuration defaults.
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	baseDir := filepath.Join(home, ".opbop")

	return &Config{
		Service: ServiceConfig{
			Endpoint:          "https://opbop.herokuapp.com/api/dothething",
			RequestsPerSecond: 1,
			Burst:             3,
		},
		HTTP: HTTPConfig{
			Timeout:      60 * time.Second,
			UserAgent:    "OpBop/0.1 (+https://github.com/opbop/opbop)",
			MaxBodyBytes: 2_000_000,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       filepath.Join(baseDir, "cache"),
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Prefs: PrefsConfig{
			Path: filepath.Join(baseDir, "prefs.json"),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
