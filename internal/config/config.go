// Package config loads vignette.yaml and overlays VIGNETTE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/aretw0/vignette/internal/logging"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "vignette.yaml"

const envPrefix = "VIGNETTE_"

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Config is the project configuration.
type Config struct {
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`

	// Catalog is a YAML/JSON catalog file or a directory of block documents.
	// Empty means the built-in catalog.
	Catalog string `yaml:"catalog" mapstructure:"catalog"`
	Scenery string `yaml:"scenery" mapstructure:"scenery"`
	Assets  string `yaml:"assets" mapstructure:"assets"`

	Store StoreConfig `yaml:"store" mapstructure:"store"`
	HTTP  HTTPConfig  `yaml:"http" mapstructure:"http"`
}

type StoreConfig struct {
	Backend string      `yaml:"backend" mapstructure:"backend"`
	Path    string      `yaml:"path" mapstructure:"path"`
	Redis   RedisConfig `yaml:"redis" mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr" mapstructure:"addr"`
	Password string        `yaml:"password" mapstructure:"password"`
	DB       int           `yaml:"db" mapstructure:"db"`
	Prefix   string        `yaml:"prefix" mapstructure:"prefix"`
	TTL      time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// Default returns the configuration used when no file or environment is present.
func Default() *Config {
	return &Config{
		LogLevel: "warn",
		Store: StoreConfig{
			Backend: BackendMemory,
			Path:    ".vignette/scripts",
			Redis:   RedisConfig{Addr: "localhost:6379"},
		},
		HTTP: HTTPConfig{Addr: ":8080"},
	}
}

// Load reads path over the defaults, then applies the environment. A missing file
// is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(os.Environ()); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// envKeys maps variable suffixes to config paths.
var envKeys = map[string][]string{
	"LOG_LEVEL":      {"log_level"},
	"CATALOG":        {"catalog"},
	"SCENERY":        {"scenery"},
	"ASSETS":         {"assets"},
	"STORE_BACKEND":  {"store", "backend"},
	"STORE_PATH":     {"store", "path"},
	"REDIS_ADDR":     {"store", "redis", "addr"},
	"REDIS_PASSWORD": {"store", "redis", "password"},
	"REDIS_DB":       {"store", "redis", "db"},
	"REDIS_PREFIX":   {"store", "redis", "prefix"},
	"REDIS_TTL":      {"store", "redis", "ttl"},
	"HTTP_ADDR":      {"http", "addr"},
}

// ApplyEnv overlays VIGNETTE_* entries of environ ("KEY=value") onto c.
func (c *Config) ApplyEnv(environ []string) error {
	overlay := map[string]any{}
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, envPrefix) {
			continue
		}
		path, known := envKeys[strings.TrimPrefix(key, envPrefix)]
		if !known {
			continue
		}
		setPath(overlay, path, value)
	}
	if len(overlay) == 0 {
		return nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		Result:           c,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(overlay); err != nil {
		return fmt.Errorf("invalid %s environment: %w", envPrefix+"*", err)
	}
	return nil
}

func setPath(m map[string]any, path []string, value string) {
	for _, k := range path[:len(path)-1] {
		next, ok := m[k].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[k] = next
		}
		m = next
	}
	m[path[len(path)-1]] = value
}

// Validate reports unsupported values.
func (c *Config) Validate() error {
	var errs []error
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	switch c.Store.Backend {
	case BackendMemory, BackendFile, BackendRedis:
	default:
		errs = append(errs, fmt.Errorf("unknown store backend %q", c.Store.Backend))
	}
	if c.Store.Redis.TTL < 0 {
		errs = append(errs, errors.New("redis ttl cannot be negative"))
	}
	return errors.Join(errs...)
}
