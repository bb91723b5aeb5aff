// Package config holds the runtime configuration of the versionforge CLI and
// HTTP service.
//
// Configuration is an explicit value. Nothing in the core packages reads the
// environment or a global; the CLI loads a [Config] and hands the relevant
// parts to the components it constructs.
//
// A config file is TOML:
//
//	log_level = "debug"
//
//	[cache]
//	backend = "redis"
//	ttl = "24h"
//
//	[redis]
//	addr = "localhost:6379"
//
//	[matrix]
//	key = "platform"
//
//	[server]
//	addr = ":8080"
//	read_timeout = "5s"
package config

import (
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/versionforge/pkg/errors"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Duration is a time.Duration that reads and writes Go duration strings
// such as "90s" or "24h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config is the complete runtime configuration.
type Config struct {
	LogLevel string       `toml:"log_level"`
	Cache    CacheConfig  `toml:"cache"`
	Redis    RedisConfig  `toml:"redis"`
	Matrix   MatrixConfig `toml:"matrix"`
	Server   ServerConfig `toml:"server"`
}

// CacheConfig selects where persisted matrices live.
type CacheConfig struct {
	Backend string   `toml:"backend"`
	Dir     string   `toml:"dir"` // empty means the CLI's XDG cache directory
	TTL     Duration `toml:"ttl"`

	// Namespace scopes every key, so several ecosystems can share one
	// backend. Empty means unscoped.
	Namespace string `toml:"namespace"`
}

// RedisConfig is used when Cache.Backend is "redis".
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// MatrixConfig names the persisted compatibility matrix.
type MatrixConfig struct {
	Key string `toml:"key"`
}

// ServerConfig configures `versionforge serve`.
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		LogLevel: "info",
		Cache: CacheConfig{
			Backend: BackendFile,
			TTL:     Duration{24 * time.Hour},
		},
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "versionforge:",
		},
		Matrix: MatrixConfig{Key: "default"},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  Duration{10 * time.Second},
			WriteTimeout: Duration{30 * time.Second},
		},
	}
}

// Load reads the TOML file at path on top of [Default]. An empty path or a
// missing file yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	return cfg, nil
}

// Parse decodes TOML data on top of [Default] and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field values.
func (c Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "log_level must be debug, info, warn or error, got %q", c.LogLevel)
	}
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Redis.Addr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "redis backend requires redis.addr")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	if c.Cache.Namespace != "" {
		if err := errors.ValidateComponentName(c.Cache.Namespace); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "cache.namespace")
		}
	}
	if c.Redis.DB < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "redis.db must not be negative")
	}
	if err := errors.ValidateComponentName(c.Matrix.Key); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "matrix.key")
	}
	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server.addr must not be empty")
	}
	if c.Server.ReadTimeout.Duration < 0 || c.Server.WriteTimeout.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server timeouts must not be negative")
	}
	return nil
}

// Encode writes cfg as TOML.
func (c Config) Encode() ([]byte, error) {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return []byte(b.String()), nil
}
