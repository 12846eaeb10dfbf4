// Package config resolves CLI configuration from an optional YAML file, a
// .env file and the process environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formwizard/pkg/persistence"
	"github.com/goliatone/go-formwizard/pkg/validation"
)

const (
	defaultEnvFile   = ".env"
	defaultStoreDir  = ".formwizard"
	defaultLogLevel  = "info"
	defaultLogFormat = "console"
)

// Environment variable names.
const (
	EnvStore         = "FORMWIZARD_STORE"
	EnvStoreDir      = "FORMWIZARD_STORE_DIR"
	EnvRedisAddr     = "FORMWIZARD_REDIS_ADDR"
	EnvRedisPassword = "FORMWIZARD_REDIS_PASSWORD"
	EnvRedisDB       = "FORMWIZARD_REDIS_DB"
	EnvLocale        = "FORMWIZARD_LOCALE"
	EnvDefinitions   = "FORMWIZARD_DEFINITIONS"
	EnvLogLevel      = "LOG_LEVEL"
	EnvLogFormat     = "LOG_FORMAT"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Config captures the CLI runtime configuration.
type Config struct {
	Store       StoreConfig `yaml:"store"`
	Locale      string      `yaml:"locale"`
	Definitions string      `yaml:"definitions"`
	Log         LogConfig   `yaml:"log"`
}

// StoreConfig selects where wizard progress is kept.
type StoreConfig struct {
	Kind          string        `yaml:"kind"`
	Dir           string        `yaml:"dir"`
	RedisAddr     string        `yaml:"redisAddr"`
	RedisPassword string        `yaml:"redisPassword"`
	RedisDB       int           `yaml:"redisDB"`
	TTL           time.Duration `yaml:"ttl"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ValidationError lists the settings that are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: invalid settings [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the invalid setting names.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	file         string
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithFile reads a YAML config file before environment overrides apply. A
// missing file is an error.
func WithFile(path string) Option {
	return func(o *loaderOptions) {
		o.file = path
	}
}

// WithEnvFile overrides the .env path. An empty path disables it.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects explicit environment values that take precedence over
// the process environment.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv ignores the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Store: StoreConfig{
			Kind: StoreFile,
			Dir:  defaultStoreDir,
			TTL:  persistence.MaxAge,
		},
		Locale: validation.LocaleArabic,
		Log: LogConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}

// Load resolves configuration with the precedence defaults < file < .env <
// process environment < explicit env map.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	cfg := Default()
	if options.file != "" {
		data, err := os.ReadFile(options.file)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", options.file, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", options.file, err)
		}
	}

	env, err := environment(options)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.applyEnv(env); err != nil {
		return Config{}, err
	}
	cfg.Store.Kind = strings.ToLower(strings.TrimSpace(cfg.Store.Kind))
	cfg.Locale = strings.ToLower(strings.TrimSpace(cfg.Locale))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func environment(options loaderOptions) (map[string]string, error) {
	values := make(map[string]string)
	if options.envFile != "" {
		dotEnv, err := godotenv.Read(options.envFile)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("config: read %s: %w", options.envFile, err)
		default:
			for k, v := range dotEnv {
				values[k] = v
			}
		}
	}
	if options.useSystemEnv {
		for _, key := range []string{EnvStore, EnvStoreDir, EnvRedisAddr, EnvRedisPassword, EnvRedisDB, EnvLocale, EnvDefinitions, EnvLogLevel, EnvLogFormat} {
			if value, ok := os.LookupEnv(key); ok {
				values[key] = value
			}
		}
	}
	for k, v := range options.envMap {
		values[k] = v
	}
	return values, nil
}

func (c *Config) applyEnv(env map[string]string) error {
	set := func(key string, dst *string) {
		if value := strings.TrimSpace(env[key]); value != "" {
			*dst = value
		}
	}
	set(EnvStore, &c.Store.Kind)
	set(EnvStoreDir, &c.Store.Dir)
	set(EnvRedisAddr, &c.Store.RedisAddr)
	set(EnvRedisPassword, &c.Store.RedisPassword)
	set(EnvLocale, &c.Locale)
	set(EnvDefinitions, &c.Definitions)
	set(EnvLogLevel, &c.Log.Level)
	set(EnvLogFormat, &c.Log.Format)

	if raw := strings.TrimSpace(env[EnvRedisDB]); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvRedisDB, err)
		}
		c.Store.RedisDB = db
	}
	return nil
}

// Validate reports settings that cannot work together.
func (c Config) Validate() error {
	var invalid []string
	switch c.Store.Kind {
	case StoreMemory:
	case StoreFile:
		if strings.TrimSpace(c.Store.Dir) == "" {
			invalid = append(invalid, "store.dir")
		}
	case StoreRedis:
		if strings.TrimSpace(c.Store.RedisAddr) == "" {
			invalid = append(invalid, "store.redisAddr")
		}
	default:
		invalid = append(invalid, "store.kind")
	}
	if c.Store.TTL < 0 {
		invalid = append(invalid, "store.ttl")
	}
	switch c.Locale {
	case validation.LocaleArabic, validation.LocaleEnglish:
	default:
		invalid = append(invalid, "locale")
	}
	if len(invalid) > 0 {
		return &ValidationError{fields: invalid}
	}
	return nil
}
