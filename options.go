package remoteui

import "strings"

// Option configures a Localizer.
type Option func(*localizerConfig)

type localizerConfig struct {
	evaluator Evaluator
	engine    string
	cache     ProgramCache
	functions *FunctionRegistry
	logger    Logger
	condition ConditionContext
	errs      []error
}

func newLocalizerConfig(opts []Option) localizerConfig {
	cfg := localizerConfig{logger: NopLogger{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithEvaluator sets the engine used for `if` element rules. It takes
// precedence over WithEngine.
func WithEvaluator(evaluator Evaluator) Option {
	return func(cfg *localizerConfig) {
		cfg.evaluator = evaluator
	}
}

// WithEngine selects a built in rule engine by name: "expr", "cel" or "js".
func WithEngine(engine string) Option {
	return func(cfg *localizerConfig) {
		cfg.engine = strings.ToLower(strings.TrimSpace(engine))
	}
}

// WithProgramCache shares compiled rule programs across Localize calls.
func WithProgramCache(cache ProgramCache) Option {
	return func(cfg *localizerConfig) {
		cfg.cache = cache
	}
}

// WithLogger attaches a logger. A nil logger disables logging.
func WithLogger(logger Logger) Option {
	return func(cfg *localizerConfig) {
		if logger == nil {
			cfg.logger = NopLogger{}
			return
		}
		cfg.logger = logger
	}
}

// WithPlatform sets the platform name matched by `if` elements, e.g. "ios".
func WithPlatform(platform string) Option {
	return func(cfg *localizerConfig) {
		cfg.condition.Platform = platform
	}
}

// WithSDKVersion sets the semantic version matched by `if` version constraints.
func WithSDKVersion(version string) Option {
	return func(cfg *localizerConfig) {
		cfg.condition.SDKVersion = version
	}
}

// WithConditionArgs exposes args to rule expressions.
func WithConditionArgs(args map[string]any) Option {
	return func(cfg *localizerConfig) {
		cfg.condition.Args = cloneAnyMap(args)
	}
}

// WithConditionMetadata exposes metadata to rule expressions.
func WithConditionMetadata(metadata map[string]any) Option {
	return func(cfg *localizerConfig) {
		cfg.condition.Metadata = cloneAnyMap(metadata)
	}
}

func cloneAnyMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
