// Package config loads remoteui settings from YAML and REMOTEUI_* environment
// variables and turns them into localizer and cache options.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"

	remoteui "github.com/goliatone/go-remoteui"
	"github.com/goliatone/go-remoteui/pkg/activity"
	"github.com/goliatone/go-remoteui/pkg/cache"
	"github.com/goliatone/go-remoteui/pkg/logging/zaplog"
)

// EnvPrefix prefixes every environment override, e.g. REMOTEUI_CACHE_NAMESPACE.
const EnvPrefix = "REMOTEUI"

type Settings struct {
	DefaultLocale string           `mapstructure:"default_locale"`
	Platform      string           `mapstructure:"platform"`
	SDKVersion    string           `mapstructure:"sdk_version"`
	Engine        string           `mapstructure:"engine"`
	Cache         CacheSettings    `mapstructure:"cache"`
	Redis         RedisSettings    `mapstructure:"redis"`
	Logging       LoggingSettings  `mapstructure:"logging"`
	Activity      ActivitySettings `mapstructure:"activity"`
}

type CacheSettings struct {
	Namespace string `mapstructure:"namespace"`
	Backend   string `mapstructure:"backend"`
}

type RedisSettings struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type LoggingSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ActivitySettings struct {
	Enabled bool   `mapstructure:"enabled"`
	Channel string `mapstructure:"channel"`
}

// LoadOption configures Load.
type LoadOption func(*loadConfig)

type loadConfig struct {
	file   string
	dotenv []string
}

// WithFile reads settings from a YAML file. A missing file is an error.
func WithFile(path string) LoadOption {
	return func(cfg *loadConfig) {
		cfg.file = path
	}
}

// WithDotEnv seeds the process environment from the given .env files before
// reading overrides. Missing files are skipped; variables already set win.
func WithDotEnv(paths ...string) LoadOption {
	return func(cfg *loadConfig) {
		cfg.dotenv = append(cfg.dotenv, paths...)
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("default_locale", "en")
	v.SetDefault("platform", "")
	v.SetDefault("sdk_version", "")
	v.SetDefault("engine", "expr")
	v.SetDefault("cache.namespace", cache.DefaultNamespace)
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("activity.enabled", false)
	v.SetDefault("activity.channel", activity.DefaultChannel)
}

// Load resolves settings from defaults, an optional YAML file and the
// environment, in increasing precedence.
func Load(opts ...LoadOption) (Settings, error) {
	cfg := loadConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	for _, path := range cfg.dotenv {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return Settings{}, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cfg.file != "" {
		v.SetConfigFile(cfg.file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("config: read %s: %w", cfg.file, err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return Settings{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// Validate checks values Load cannot coerce.
func (s Settings) Validate() error {
	var errs []error
	switch strings.ToLower(s.Engine) {
	case "", "expr", "cel", "js":
	default:
		errs = append(errs, fmt.Errorf("config: unknown engine %q", s.Engine))
	}
	switch strings.ToLower(s.Cache.Backend) {
	case "", "memory", "redis":
	default:
		errs = append(errs, fmt.Errorf("config: unknown cache backend %q", s.Cache.Backend))
	}
	return errors.Join(errs...)
}

// Locale returns the configured default locale.
func (s Settings) Locale() remoteui.LocaleID {
	locale := remoteui.ParseLocale(s.DefaultLocale)
	if locale.IsZero() {
		return remoteui.DefaultLocale
	}
	return locale
}

// LocalizerOptions returns the localizer options described by s.
func (s Settings) LocalizerOptions(extra ...remoteui.Option) []remoteui.Option {
	opts := []remoteui.Option{
		remoteui.WithEngine(s.Engine),
		remoteui.WithPlatform(s.Platform),
		remoteui.WithSDKVersion(s.SDKVersion),
	}
	return append(opts, extra...)
}

// ActivityConfig returns the emitter configuration described by s.
func (s Settings) ActivityConfig() activity.Config {
	return activity.Config{Enabled: s.Activity.Enabled, Channel: s.Activity.Channel}
}

// CacheOptions returns the cache options described by s. Hooks are only
// attached when activity is enabled.
func (s Settings) CacheOptions(hooks ...activity.ActivityHook) []cache.Option {
	return []cache.Option{
		cache.WithNamespace(s.Cache.Namespace),
		cache.WithDefaultLocale(s.Locale()),
		cache.WithEmitter(activity.NewEmitter(activity.Hooks(hooks), s.ActivityConfig())),
	}
}

// RedisOptions returns the redis client options described by s.
func (s Settings) RedisOptions() *redis.Options {
	return &redis.Options{
		Addr:     s.Redis.Address,
		Password: s.Redis.Password,
		DB:       s.Redis.DB,
	}
}

// CacheStore builds the configured store. The returned close function
// releases any connection and is never nil.
func (s Settings) CacheStore() (cache.Store, func() error, error) {
	if !strings.EqualFold(s.Cache.Backend, "redis") {
		return cache.NewMemoryStore(), func() error { return nil }, nil
	}
	client := redis.NewClient(s.RedisOptions())
	store, err := cache.NewRedisStore(client)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	return store, client.Close, nil
}

// Logger builds the zap-backed logger described by s.
func (s Settings) Logger() (zaplog.Logger, error) {
	return zaplog.NewStructured(s.Logging.Level, s.Logging.Format)
}
