package cache

import (
	"strings"

	remoteui "github.com/goliatone/go-remoteui"
	"github.com/goliatone/go-remoteui/pkg/activity"
)

// DefaultNamespace prefixes keys when WithNamespace is not used.
const DefaultNamespace = "remoteui"

// Option configures a Cache.
type Option func(*config)

type config struct {
	namespace     string
	defaultLocale remoteui.LocaleID
	logger        remoteui.Logger
	emitter       *activity.Emitter
	actorID       string
}

func newConfig(opts []Option) config {
	cfg := config{
		namespace:     DefaultNamespace,
		defaultLocale: remoteui.DefaultLocale,
		logger:        remoteui.NopLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithNamespace isolates this cache's keys from other caches sharing a store.
func WithNamespace(namespace string) Option {
	return func(cfg *config) {
		namespace = strings.Trim(strings.TrimSpace(namespace), "/")
		if namespace != "" {
			cfg.namespace = namespace
		}
	}
}

// WithDefaultLocale sets the system default locale accepted by Lookup when
// default-locale fallback is allowed.
func WithDefaultLocale(locale remoteui.LocaleID) Option {
	return func(cfg *config) {
		if !locale.IsZero() {
			cfg.defaultLocale = locale
		}
	}
}

// WithLogger attaches a logger. A nil logger disables logging.
func WithLogger(logger remoteui.Logger) Option {
	return func(cfg *config) {
		if logger == nil {
			cfg.logger = remoteui.NopLogger{}
			return
		}
		cfg.logger = logger
	}
}

// WithEmitter sends cache activity through emitter.
func WithEmitter(emitter *activity.Emitter) Option {
	return func(cfg *config) {
		cfg.emitter = emitter
	}
}

// WithActivityHooks is shorthand for an enabled emitter on the default channel.
func WithActivityHooks(hooks ...activity.ActivityHook) Option {
	return func(cfg *config) {
		cfg.emitter = activity.NewEmitter(activity.Hooks(hooks), activity.Config{Enabled: true})
	}
}

// WithActor stamps emitted events with actorID.
func WithActor(actorID string) Option {
	return func(cfg *config) {
		cfg.actorID = strings.TrimSpace(actorID)
	}
}
