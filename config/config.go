// Package config implements queuectl's keyed, JSON-persisted configuration
// store, grounded on original_source/queuectl/config.py's Config class:
// a defaults map, get/set/reset with numeric validation, and a
// merge-with-defaults load that tolerates an absent or corrupt file.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Recognized configuration keys (spec.md §6).
const (
	KeyMaxRetries              = "max_retries"
	KeyBackoffBase             = "backoff_base"
	KeyBackoffMaxDelay         = "backoff_max_delay"
	KeyWorkerPollInterval      = "worker_poll_interval"
	KeyWorkerHeartbeatInterval = "worker_heartbeat_interval"
	KeyJobTimeout              = "job_timeout"
	KeyDbPath                  = "db_path"
	KeyLogLevel                = "log_level"
)

// numericKeys lists the keys that must hold a non-negative integer.
var numericKeys = map[string]bool{
	KeyMaxRetries:              true,
	KeyBackoffBase:             true,
	KeyBackoffMaxDelay:         true,
	KeyWorkerPollInterval:      true,
	KeyWorkerHeartbeatInterval: true,
	KeyJobTimeout:              true,
}

var defaults = map[string]any{
	KeyMaxRetries:              3,
	KeyBackoffBase:             2,
	KeyBackoffMaxDelay:         3600,
	KeyWorkerPollInterval:      1,
	KeyWorkerHeartbeatInterval: 5,
	KeyJobTimeout:              300,
	KeyDbPath:                  "queuectl.db",
	KeyLogLevel:                "INFO",
}

// Config is a keyed configuration store persisted as a JSON document on
// disk. An absent or corrupt file falls back to in-memory defaults.
type Config struct {
	v    *viper.Viper
	path string
}

// Load reads configuration from path, merging in defaults for any missing
// key. If the file is absent or cannot be parsed, Load falls back to
// defaults in-memory without returning an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	// An absent or corrupt config file is not an error here: v already
	// holds the defaults set above, matching config.py's "merge with
	// defaults" load.
	_ = v.ReadInConfig()
	return &Config{v: v, path: path}, nil
}

// Get returns the raw value configured for key, or its default.
func (c *Config) Get(key string) any {
	return c.v.Get(key)
}

// GetAll returns every recognized key with its current value.
func (c *Config) GetAll() map[string]any {
	ret := make(map[string]any, len(defaults))
	for k := range defaults {
		ret[k] = c.v.Get(k)
	}
	return ret
}

// Set validates and stores a value for key, then persists the full
// configuration to disk.
//
// Numeric keys must parse as a non-negative integer; invalid writes are
// rejected without modifying the in-memory store.
func (c *Config) Set(key string, value string) error {
	if _, known := defaults[key]; !known {
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	if numericKeys[key] {
		n, err := parseNonNegativeInt(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", key, err)
		}
		c.v.Set(key, n)
	} else {
		c.v.Set(key, value)
	}
	return c.save()
}

// Reset restores every key to its default value and persists the result.
func (c *Config) Reset() error {
	for k, val := range defaults {
		c.v.Set(k, val)
	}
	return c.save()
}

func (c *Config) save() error {
	return c.v.WriteConfigAs(c.path)
}

func parseNonNegativeInt(s string) (int, error) {
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("must be non-negative")
	}
	return n, nil
}

// MaxRetries returns the configured default retry budget.
func (c *Config) MaxRetries() uint32 { return uint32(c.v.GetInt(KeyMaxRetries)) }

// BackoffBase returns the configured backoff base.
func (c *Config) BackoffBase() uint64 { return uint64(c.v.GetInt(KeyBackoffBase)) }

// BackoffMaxDelay returns the configured max backoff delay.
func (c *Config) BackoffMaxDelay() time.Duration {
	return time.Duration(c.v.GetInt(KeyBackoffMaxDelay)) * time.Second
}

// WorkerPollInterval returns the configured poll interval.
func (c *Config) WorkerPollInterval() time.Duration {
	return time.Duration(c.v.GetInt(KeyWorkerPollInterval)) * time.Second
}

// WorkerHeartbeatInterval returns the configured heartbeat interval.
func (c *Config) WorkerHeartbeatInterval() time.Duration {
	return time.Duration(c.v.GetInt(KeyWorkerHeartbeatInterval)) * time.Second
}

// JobTimeout returns the configured per-job execution timeout.
func (c *Config) JobTimeout() time.Duration {
	return time.Duration(c.v.GetInt(KeyJobTimeout)) * time.Second
}

// DbPath returns the configured database file path.
func (c *Config) DbPath() string { return c.v.GetString(KeyDbPath) }

// LogLevel returns the configured log level.
func (c *Config) LogLevel() string { return c.v.GetString(KeyLogLevel) }
